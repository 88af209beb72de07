package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"giftmart/internal/common"
	"giftmart/internal/services"
)

const maxUploadSize = 10 << 20 // 10 MiB

type UploadHandlers struct {
	storage services.StorageService
}

func NewUploadHandlers(storage services.StorageService) *UploadHandlers {
	return &UploadHandlers{storage: storage}
}

// UploadImage handles POST /api/uploads. The multipart field is "file" and
// an optional "folder" field groups objects (products, galleries, news).
func (h *UploadHandlers) UploadImage(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return common.SendValidationError(c, "file is required")
	}
	if fileHeader.Size > maxUploadSize {
		return common.SendValidationError(c, "file exceeds the 10MB upload limit")
	}

	folder := c.FormValue("folder")
	if folder == "" {
		folder = "uploads"
	}

	src, err := fileHeader.Open()
	if err != nil {
		return common.SendError(c, err)
	}
	defer src.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	objectName, err := h.storage.Upload(c.Request().Context(), folder, fileHeader.Filename, src, fileHeader.Size, contentType)
	if err != nil {
		return common.SendError(c, err)
	}

	url, err := h.storage.GetPresignedURL(c.Request().Context(), objectName, 24*time.Hour)
	if err != nil {
		return common.SendError(c, err)
	}

	return common.SendData(c, http.StatusCreated, map[string]string{
		"object": objectName,
		"url":    url,
	})
}

// DeleteImage handles DELETE /api/uploads?object=...
func (h *UploadHandlers) DeleteImage(c echo.Context) error {
	objectName := c.QueryParam("object")
	if objectName == "" {
		return common.SendValidationError(c, "object is required")
	}

	if err := h.storage.Delete(c.Request().Context(), objectName); err != nil {
		return common.SendError(c, err)
	}
	return common.SendMessage(c, http.StatusOK, nil, "Object deleted")
}
