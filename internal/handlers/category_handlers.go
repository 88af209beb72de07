package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"giftmart/internal/common"
	"giftmart/internal/services"
)

type CategoryHandlers struct {
	categoryService services.CategoryServiceInterface
}

func NewCategoryHandlers(categoryService services.CategoryServiceInterface) *CategoryHandlers {
	return &CategoryHandlers{categoryService: categoryService}
}

type categoryRequest struct {
	Name        string  `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
}

// CreateCategory handles POST /api/categories
func (h *CategoryHandlers) CreateCategory(c echo.Context) error {
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request format")
	}

	category, err := h.categoryService.CreateCategory(c.Request().Context(), req.Name, req.Slug, req.Description)
	if err != nil {
		return common.SendError(c, err)
	}
	return common.SendData(c, http.StatusCreated, category)
}

// GetCategory handles GET /api/categories/:id
func (h *CategoryHandlers) GetCategory(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		// Fall back to slug lookup so storefront URLs can use either.
		category, slugErr := h.categoryService.GetCategoryBySlug(c.Request().Context(), c.Param("id"))
		if slugErr != nil {
			return common.SendError(c, slugErr)
		}
		return common.SendData(c, http.StatusOK, category)
	}

	category, err := h.categoryService.GetCategory(c.Request().Context(), id)
	if err != nil {
		return common.SendError(c, err)
	}
	return common.SendData(c, http.StatusOK, category)
}

// ListCategories handles GET /api/categories
func (h *CategoryHandlers) ListCategories(c echo.Context) error {
	categories, err := h.categoryService.ListCategories(c.Request().Context())
	if err != nil {
		return common.SendError(c, err)
	}
	return common.SendData(c, http.StatusOK, categories)
}

// UpdateCategory handles PUT /api/categories/:id
func (h *CategoryHandlers) UpdateCategory(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}

	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request format")
	}

	category, err := h.categoryService.UpdateCategory(c.Request().Context(), id, req.Name, req.Slug, req.Description)
	if err != nil {
		return common.SendError(c, err)
	}
	return common.SendMessage(c, http.StatusOK, category, "Category updated")
}

// DeleteCategory handles DELETE /api/categories/:id
func (h *CategoryHandlers) DeleteCategory(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}

	if err := h.categoryService.DeleteCategory(c.Request().Context(), id); err != nil {
		return common.SendError(c, err)
	}
	return common.SendMessage(c, http.StatusOK, nil, "Category deleted")
}
