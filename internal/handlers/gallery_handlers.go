package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"giftmart/internal/common"
	"giftmart/internal/services"
)

type GalleryHandlers struct {
	galleryService services.GalleryServiceInterface
}

func NewGalleryHandlers(galleryService services.GalleryServiceInterface) *GalleryHandlers {
	return &GalleryHandlers{galleryService: galleryService}
}

// CreateGallery handles POST /api/galleries
func (h *GalleryHandlers) CreateGallery(c echo.Context) error {
	var req struct {
		Title       string  `json:"title"`
		Description *string `json:"description"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request format")
	}

	gallery, err := h.galleryService.CreateGallery(c.Request().Context(), req.Title, req.Description)
	if err != nil {
		return common.SendError(c, err)
	}
	return common.SendData(c, http.StatusCreated, gallery)
}

// GetGallery handles GET /api/galleries/:id
func (h *GalleryHandlers) GetGallery(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}

	gallery, err := h.galleryService.GetGallery(c.Request().Context(), id)
	if err != nil {
		return common.SendError(c, err)
	}
	return common.SendData(c, http.StatusOK, gallery)
}

// ListGalleries handles GET /api/galleries
func (h *GalleryHandlers) ListGalleries(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	limit, offset := common.ValidatePaginationParams(page, limit)

	galleries, err := h.galleryService.ListGalleries(c.Request().Context(), limit, offset)
	if err != nil {
		return common.SendError(c, err)
	}
	return common.SendData(c, http.StatusOK, galleries)
}

// UpdateGallery handles PUT /api/galleries/:id
func (h *GalleryHandlers) UpdateGallery(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}

	var req struct {
		Title       string  `json:"title"`
		Description *string `json:"description"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request format")
	}

	gallery, err := h.galleryService.UpdateGallery(c.Request().Context(), id, req.Title, req.Description)
	if err != nil {
		return common.SendError(c, err)
	}
	return common.SendMessage(c, http.StatusOK, gallery, "Gallery updated")
}

// DeleteGallery handles DELETE /api/galleries/:id
func (h *GalleryHandlers) DeleteGallery(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}

	if err := h.galleryService.DeleteGallery(c.Request().Context(), id); err != nil {
		return common.SendError(c, err)
	}
	return common.SendMessage(c, http.StatusOK, nil, "Gallery deleted")
}

// AddGalleryImage handles POST /api/galleries/:id/images
func (h *GalleryHandlers) AddGalleryImage(c echo.Context) error {
	galleryID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}

	var req struct {
		URL       string  `json:"url"`
		Caption   *string `json:"caption"`
		SortOrder int     `json:"sort_order"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request format")
	}

	image, err := h.galleryService.AddImage(c.Request().Context(), galleryID, req.URL, req.Caption, req.SortOrder)
	if err != nil {
		return common.SendError(c, err)
	}
	return common.SendData(c, http.StatusCreated, image)
}

// DeleteGalleryImage handles DELETE /api/gallery-images/:id
func (h *GalleryHandlers) DeleteGalleryImage(c echo.Context) error {
	imageID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}

	if err := h.galleryService.DeleteImage(c.Request().Context(), imageID); err != nil {
		return common.SendError(c, err)
	}
	return common.SendMessage(c, http.StatusOK, nil, "Gallery image deleted")
}
