package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"giftmart/internal/common"
	"giftmart/internal/models"
	"giftmart/internal/services"
)

// OrderHandlers handles HTTP requests for orders and their items.
type OrderHandlers struct {
	orderService services.OrderServiceInterface
}

func NewOrderHandlers(orderService services.OrderServiceInterface) *OrderHandlers {
	return &OrderHandlers{orderService: orderService}
}

// CreateOrder handles POST /api/orders
func (h *OrderHandlers) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		AccountID       *string `json:"accountId"`
		CustomerName    string  `json:"customerName"`
		CustomerEmail   string  `json:"customerEmail"`
		CustomerPhone   *string `json:"customerPhone"`
		CustomerAddress *string `json:"customerAddress"`
		Note            *string `json:"note"`
		Items           []struct {
			ProductSKU   string   `json:"productSku"`
			Quantity     int      `json:"quantity"`
			ProductPrice *float64 `json:"productPrice"`
		} `json:"orderItems"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request format")
	}

	input := &services.CreateOrderInput{
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
		Note:            req.Note,
	}
	if req.AccountID != nil && *req.AccountID != "" {
		accountID, err := common.ValidateUUID(*req.AccountID, "accountId")
		if err != nil {
			return common.SendValidationError(c, err.Error())
		}
		input.AccountID = &accountID
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, services.OrderItemInput{
			ProductSKU:   item.ProductSKU,
			Quantity:     item.Quantity,
			ProductPrice: item.ProductPrice,
		})
	}

	order, err := h.orderService.CreateOrder(ctx, input)
	if err != nil {
		return common.SendError(c, err)
	}
	return common.SendData(c, http.StatusCreated, order)
}

// GetOrder handles GET /api/orders/:id
func (h *OrderHandlers) GetOrder(c echo.Context) error {
	orderID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}

	order, err := h.orderService.GetOrder(c.Request().Context(), orderID)
	if err != nil {
		return common.SendError(c, err)
	}
	return common.SendData(c, http.StatusOK, order)
}

// ListOrders handles GET /api/orders
func (h *OrderHandlers) ListOrders(c echo.Context) error {
	filter, err := parseOrderFilter(c)
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}

	orders, total, err := h.orderService.ListOrders(c.Request().Context(), filter)
	if err != nil {
		return common.SendError(c, err)
	}
	return common.SendData(c, http.StatusOK, map[string]any{
		"orders": orders,
		"total":  total,
		"limit":  filter.Limit,
		"offset": filter.Offset,
	})
}

// UpdateOrder handles PUT /api/orders/:id. The only mutable field on a
// placed order is its status, so this delegates to the status update.
func (h *OrderHandlers) UpdateOrder(c echo.Context) error {
	return h.updateStatus(c)
}

// UpdateOrderStatus handles PATCH /api/orders/:id/status
func (h *OrderHandlers) UpdateOrderStatus(c echo.Context) error {
	return h.updateStatus(c)
}

func (h *OrderHandlers) updateStatus(c echo.Context) error {
	orderID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request format")
	}
	if req.Status == "" {
		return common.SendValidationError(c, "status is required")
	}

	order, err := h.orderService.UpdateStatus(c.Request().Context(), orderID, req.Status)
	if err != nil {
		return common.SendError(c, err)
	}
	return common.SendMessage(c, http.StatusOK, order, "Order status updated")
}

// DeleteOrder handles DELETE /api/orders/:id
func (h *OrderHandlers) DeleteOrder(c echo.Context) error {
	orderID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}

	if err := h.orderService.DeleteOrder(c.Request().Context(), orderID); err != nil {
		return common.SendError(c, err)
	}
	return common.SendMessage(c, http.StatusOK, nil, "Order deleted")
}

// OrderStats handles GET /api/orders/stats
func (h *OrderHandlers) OrderStats(c echo.Context) error {
	startDate, err := parseDateParam(c, "start_date")
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}
	endDate, err := parseDateParam(c, "end_date")
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}

	stats, err := h.orderService.Stats(c.Request().Context(), startDate, endDate)
	if err != nil {
		return common.SendError(c, err)
	}
	return common.SendData(c, http.StatusOK, stats)
}

// UpdateOrderItem handles PUT /api/order-items/:id
func (h *OrderHandlers) UpdateOrderItem(c echo.Context) error {
	itemID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request format")
	}

	order, err := h.orderService.UpdateItem(c.Request().Context(), itemID, req.Quantity)
	if err != nil {
		return common.SendError(c, err)
	}
	return common.SendMessage(c, http.StatusOK, order, "Order item updated")
}

// DeleteOrderItem handles DELETE /api/order-items/:id
func (h *OrderHandlers) DeleteOrderItem(c echo.Context) error {
	itemID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}

	order, err := h.orderService.DeleteItem(c.Request().Context(), itemID)
	if err != nil {
		return common.SendError(c, err)
	}
	return common.SendMessage(c, http.StatusOK, order, "Order item deleted")
}

func parseOrderFilter(c echo.Context) (*models.OrderSearchFilter, error) {
	filter := &models.OrderSearchFilter{}

	if status := c.QueryParam("status"); status != "" {
		if !models.ValidOrderStatus(status) {
			return nil, common.NewValidationError("unknown status %q", status)
		}
		filter.Status = &status
	}
	if accountIDStr := c.QueryParam("account_id"); accountIDStr != "" {
		accountID, err := common.ValidateUUID(accountIDStr, "account_id")
		if err != nil {
			return nil, err
		}
		filter.AccountID = &accountID
	}

	startDate, err := parseDateParam(c, "start_date")
	if err != nil {
		return nil, err
	}
	filter.StartDate = startDate

	endDate, err := parseDateParam(c, "end_date")
	if err != nil {
		return nil, err
	}
	filter.EndDate = endDate

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	filter.Limit, filter.Offset = common.ValidatePaginationParams(page, limit)

	return filter, nil
}

func parseDateParam(c echo.Context, name string) (*time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	if err := common.ValidateDateFormat(raw, name); err != nil {
		return nil, err
	}
	t, _ := time.Parse("2006-01-02", raw)
	return &t, nil
}
