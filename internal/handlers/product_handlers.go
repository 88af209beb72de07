package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"giftmart/internal/common"
	"giftmart/internal/models"
	"giftmart/internal/services"
)

// ProductHandlers handles HTTP requests for the catalog.
type ProductHandlers struct {
	productService services.ProductServiceInterface
}

func NewProductHandlers(productService services.ProductServiceInterface) *ProductHandlers {
	return &ProductHandlers{productService: productService}
}

// CreateProduct handles POST /api/products
func (h *ProductHandlers) CreateProduct(c echo.Context) error {
	var req struct {
		SKU           string   `json:"sku"`
		Name          string   `json:"name"`
		CategoryID    *string  `json:"category_id"`
		Quantity      int      `json:"quantity"`
		CurrentPrice  float64  `json:"current_price"`
		OriginalPrice *float64 `json:"original_price"`
		Available     *bool    `json:"available"`
		Description   *string  `json:"description"`
		Unit          *string  `json:"unit"`
		WeightGrams   int      `json:"weight_grams"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request format")
	}

	product := &models.Product{
		SKU:           req.SKU,
		Name:          req.Name,
		Quantity:      req.Quantity,
		CurrentPrice:  req.CurrentPrice,
		OriginalPrice: req.OriginalPrice,
		Available:     true,
		Description:   req.Description,
		Unit:          req.Unit,
		WeightGrams:   req.WeightGrams,
	}
	if req.Available != nil {
		product.Available = *req.Available
	}
	if req.CategoryID != nil && *req.CategoryID != "" {
		categoryID, err := common.ValidateUUID(*req.CategoryID, "category_id")
		if err != nil {
			return common.SendValidationError(c, err.Error())
		}
		product.CategoryID = &categoryID
	}

	if err := h.productService.CreateProduct(c.Request().Context(), product); err != nil {
		return common.SendError(c, err)
	}
	return common.SendData(c, http.StatusCreated, product)
}

// GetProduct handles GET /api/products/:sku
func (h *ProductHandlers) GetProduct(c echo.Context) error {
	sku := c.Param("sku")
	if sku == "" {
		return common.SendValidationError(c, "sku is required")
	}

	product, err := h.productService.GetProduct(c.Request().Context(), sku)
	if err != nil {
		return common.SendError(c, err)
	}
	return common.SendData(c, http.StatusOK, product)
}

// ListProducts handles GET /api/products
func (h *ProductHandlers) ListProducts(c echo.Context) error {
	filter, err := parseProductFilter(c)
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}

	products, err := h.productService.ListProducts(c.Request().Context(), filter)
	if err != nil {
		return common.SendError(c, err)
	}
	return common.SendData(c, http.StatusOK, map[string]any{
		"products": products,
		"limit":    filter.Limit,
		"offset":   filter.Offset,
	})
}

// UpdateProduct handles PUT /api/products/:sku
func (h *ProductHandlers) UpdateProduct(c echo.Context) error {
	sku := c.Param("sku")
	if sku == "" {
		return common.SendValidationError(c, "sku is required")
	}

	var upd models.ProductUpdate
	if err := c.Bind(&upd); err != nil {
		return common.SendValidationError(c, "Invalid request format")
	}

	product, err := h.productService.UpdateProduct(c.Request().Context(), sku, &upd)
	if err != nil {
		return common.SendError(c, err)
	}
	return common.SendMessage(c, http.StatusOK, product, "Product updated")
}

// SetAvailability handles PATCH /api/products/:sku/availability
func (h *ProductHandlers) SetAvailability(c echo.Context) error {
	sku := c.Param("sku")
	if sku == "" {
		return common.SendValidationError(c, "sku is required")
	}

	var req struct {
		Available *bool `json:"available"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request format")
	}
	if req.Available == nil {
		return common.SendValidationError(c, "available is required")
	}

	product, err := h.productService.SetAvailability(c.Request().Context(), sku, *req.Available)
	if err != nil {
		return common.SendError(c, err)
	}
	return common.SendMessage(c, http.StatusOK, product, "Product availability updated")
}

// DeleteProduct handles DELETE /api/products/:sku
func (h *ProductHandlers) DeleteProduct(c echo.Context) error {
	sku := c.Param("sku")
	if sku == "" {
		return common.SendValidationError(c, "sku is required")
	}

	if err := h.productService.DeleteProduct(c.Request().Context(), sku); err != nil {
		return common.SendError(c, err)
	}
	return common.SendMessage(c, http.StatusOK, nil, "Product deleted")
}

// AddProductImage handles POST /api/products/:sku/images
func (h *ProductHandlers) AddProductImage(c echo.Context) error {
	sku := c.Param("sku")
	if sku == "" {
		return common.SendValidationError(c, "sku is required")
	}

	var req struct {
		URL       string `json:"url"`
		SortOrder int    `json:"sort_order"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request format")
	}

	image, err := h.productService.AddImage(c.Request().Context(), sku, req.URL, req.SortOrder)
	if err != nil {
		return common.SendError(c, err)
	}
	return common.SendData(c, http.StatusCreated, image)
}

// DeleteProductImage handles DELETE /api/product-images/:id
func (h *ProductHandlers) DeleteProductImage(c echo.Context) error {
	imageID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}

	if err := h.productService.DeleteImage(c.Request().Context(), imageID); err != nil {
		return common.SendError(c, err)
	}
	return common.SendMessage(c, http.StatusOK, nil, "Product image deleted")
}

func parseProductFilter(c echo.Context) (*models.ProductSearchFilter, error) {
	filter := &models.ProductSearchFilter{
		Query:     c.QueryParam("q"),
		SortBy:    c.QueryParam("sort_by"),
		SortOrder: c.QueryParam("sort_order"),
	}

	if categoryIDStr := c.QueryParam("category_id"); categoryIDStr != "" {
		categoryID, err := common.ValidateUUID(categoryIDStr, "category_id")
		if err != nil {
			return nil, err
		}
		filter.CategoryID = &categoryID
	}
	if minStr := c.QueryParam("min_price"); minStr != "" {
		min, err := strconv.ParseFloat(minStr, 64)
		if err != nil {
			return nil, common.NewValidationError("min_price must be numeric")
		}
		filter.MinPrice = &min
	}
	if maxStr := c.QueryParam("max_price"); maxStr != "" {
		max, err := strconv.ParseFloat(maxStr, 64)
		if err != nil {
			return nil, common.NewValidationError("max_price must be numeric")
		}
		filter.MaxPrice = &max
	}
	if availableStr := c.QueryParam("available"); availableStr != "" {
		available, err := strconv.ParseBool(availableStr)
		if err != nil {
			return nil, common.NewValidationError("available must be true or false")
		}
		filter.Available = &available
	}
	if inStockStr := c.QueryParam("in_stock"); inStockStr != "" {
		inStock, err := strconv.ParseBool(inStockStr)
		if err != nil {
			return nil, common.NewValidationError("in_stock must be true or false")
		}
		filter.InStockOnly = inStock
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	filter.Limit, filter.Offset = common.ValidatePaginationParams(page, limit)

	return filter, nil
}
