package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"giftmart/internal/common"
	"giftmart/internal/models"
	"giftmart/internal/services"
)

type NewsHandlers struct {
	newsService services.NewsServiceInterface
}

func NewNewsHandlers(newsService services.NewsServiceInterface) *NewsHandlers {
	return &NewsHandlers{newsService: newsService}
}

// CreateNews handles POST /api/news
func (h *NewsHandlers) CreateNews(c echo.Context) error {
	var req struct {
		Title     string  `json:"title"`
		Slug      *string `json:"slug"`
		Summary   *string `json:"summary"`
		Content   string  `json:"content"`
		CoverURL  *string `json:"cover_url"`
		Published bool    `json:"published"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request format")
	}

	news, err := h.newsService.CreateNews(c.Request().Context(), req.Title, req.Slug, req.Summary, req.Content, req.CoverURL, req.Published)
	if err != nil {
		return common.SendError(c, err)
	}
	return common.SendData(c, http.StatusCreated, news)
}

// GetNews handles GET /api/news/:id, accepting either an ID or a slug.
func (h *NewsHandlers) GetNews(c echo.Context) error {
	ctx := c.Request().Context()
	param := c.Param("id")

	if id, err := common.ValidateUUID(param, "id"); err == nil {
		news, err := h.newsService.GetNews(ctx, id)
		if err != nil {
			return common.SendError(c, err)
		}
		return common.SendData(c, http.StatusOK, news)
	}

	news, err := h.newsService.GetNewsBySlug(ctx, param)
	if err != nil {
		return common.SendError(c, err)
	}
	return common.SendData(c, http.StatusOK, news)
}

// ListNews handles GET /api/news. Public callers see published articles
// only; the admin listing passes all=true.
func (h *NewsHandlers) ListNews(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	limit, offset := common.ValidatePaginationParams(page, limit)

	publishedOnly := c.QueryParam("all") != "true"

	articles, err := h.newsService.ListNews(c.Request().Context(), publishedOnly, limit, offset)
	if err != nil {
		return common.SendError(c, err)
	}
	return common.SendData(c, http.StatusOK, articles)
}

// UpdateNews handles PUT /api/news/:id
func (h *NewsHandlers) UpdateNews(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}

	var upd models.NewsUpdate
	if err := c.Bind(&upd); err != nil {
		return common.SendValidationError(c, "Invalid request format")
	}

	news, err := h.newsService.UpdateNews(c.Request().Context(), id, &upd)
	if err != nil {
		return common.SendError(c, err)
	}
	return common.SendMessage(c, http.StatusOK, news, "News article updated")
}

// DeleteNews handles DELETE /api/news/:id
func (h *NewsHandlers) DeleteNews(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}

	if err := h.newsService.DeleteNews(c.Request().Context(), id); err != nil {
		return common.SendError(c, err)
	}
	return common.SendMessage(c, http.StatusOK, nil, "News article deleted")
}
