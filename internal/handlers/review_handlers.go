package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"giftmart/internal/common"
	"giftmart/internal/services"
)

type ReviewHandlers struct {
	reviewService services.ReviewServiceInterface
}

func NewReviewHandlers(reviewService services.ReviewServiceInterface) *ReviewHandlers {
	return &ReviewHandlers{reviewService: reviewService}
}

// CreateReview handles POST /api/products/:sku/reviews
func (h *ReviewHandlers) CreateReview(c echo.Context) error {
	sku := c.Param("sku")
	if sku == "" {
		return common.SendValidationError(c, "sku is required")
	}

	var req struct {
		AuthorName string  `json:"author_name"`
		Rating     int     `json:"rating"`
		Content    *string `json:"content"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request format")
	}

	review, err := h.reviewService.CreateReview(c.Request().Context(), sku, req.AuthorName, req.Rating, req.Content)
	if err != nil {
		return common.SendError(c, err)
	}
	return common.SendData(c, http.StatusCreated, review)
}

// ListReviews handles GET /api/products/:sku/reviews
func (h *ReviewHandlers) ListReviews(c echo.Context) error {
	sku := c.Param("sku")
	if sku == "" {
		return common.SendValidationError(c, "sku is required")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	limit, offset := common.ValidatePaginationParams(page, limit)

	reviews, err := h.reviewService.ListReviews(c.Request().Context(), sku, limit, offset)
	if err != nil {
		return common.SendError(c, err)
	}
	return common.SendData(c, http.StatusOK, reviews)
}

// DeleteReview handles DELETE /api/reviews/:id
func (h *ReviewHandlers) DeleteReview(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}

	if err := h.reviewService.DeleteReview(c.Request().Context(), id); err != nil {
		return common.SendError(c, err)
	}
	return common.SendMessage(c, http.StatusOK, nil, "Review deleted")
}
