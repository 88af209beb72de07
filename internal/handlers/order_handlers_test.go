package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"giftmart/internal/common"
	"giftmart/internal/models"
	"giftmart/internal/services"
)

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) CreateOrder(ctx context.Context, input *services.CreateOrderInput) (*models.Order, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderService) ListOrders(ctx context.Context, filter *models.OrderSearchFilter) ([]*models.Order, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*models.Order), args.Int(1), args.Error(2)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) (*models.Order, error) {
	args := m.Called(ctx, orderID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderService) DeleteOrder(ctx context.Context, orderID uuid.UUID) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *MockOrderService) UpdateItem(ctx context.Context, itemID uuid.UUID, quantity int) (*models.Order, error) {
	args := m.Called(ctx, itemID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderService) DeleteItem(ctx context.Context, itemID uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderService) Stats(ctx context.Context, startDate, endDate *time.Time) (*models.OrderStats, error) {
	args := m.Called(ctx, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OrderStats), args.Error(1)
}

func newOrderRequest(method, target, body string) (*httptest.ResponseRecorder, echo.Context) {
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return rec, e.NewContext(req, rec)
}

func TestCreateOrder_Returns201(t *testing.T) {
	mockSvc := &MockOrderService{}
	h := NewOrderHandlers(mockSvc)

	order := &models.Order{ID: uuid.New(), Status: models.OrderStatusPending, TotalPrice: 240000}
	mockSvc.On("CreateOrder", mock.Anything, mock.MatchedBy(func(input *services.CreateOrderInput) bool {
		return input.CustomerName == "Nguyen Van A" && len(input.Items) == 1 && input.Items[0].Quantity == 2
	})).Return(order, nil)

	body := `{"customerName":"Nguyen Van A","customerEmail":"a@example.com","orderItems":[{"productSku":"TEA-01","quantity":2}]}`
	rec, c := newOrderRequest(http.MethodPost, "/api/orders", body)

	assert.NoError(t, h.CreateOrder(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var envelope common.Envelope
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	mockSvc.AssertExpectations(t)
}

func TestCreateOrder_ValidationErrorReturns400(t *testing.T) {
	mockSvc := &MockOrderService{}
	h := NewOrderHandlers(mockSvc)

	mockSvc.On("CreateOrder", mock.Anything, mock.Anything).
		Return(nil, common.NewValidationError("Insufficient stock for product TEA-01. Available: 1"))

	body := `{"customerName":"Nguyen Van A","customerEmail":"a@example.com","orderItems":[{"productSku":"TEA-01","quantity":2}]}`
	rec, c := newOrderRequest(http.MethodPost, "/api/orders", body)

	assert.NoError(t, h.CreateOrder(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var envelope common.Envelope
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.False(t, envelope.Success)
	assert.Equal(t, "VALIDATION_ERROR", envelope.Error)
	assert.Contains(t, envelope.Message, "Insufficient stock")
}

func TestGetOrder_NotFoundReturns404(t *testing.T) {
	mockSvc := &MockOrderService{}
	h := NewOrderHandlers(mockSvc)

	orderID := uuid.New()
	mockSvc.On("GetOrder", mock.Anything, orderID).Return(nil, common.ErrNotFound)

	rec, c := newOrderRequest(http.MethodGet, "/api/orders/"+orderID.String(), "")
	c.SetParamNames("id")
	c.SetParamValues(orderID.String())

	assert.NoError(t, h.GetOrder(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetOrder_BadUUIDReturns400(t *testing.T) {
	mockSvc := &MockOrderService{}
	h := NewOrderHandlers(mockSvc)

	rec, c := newOrderRequest(http.MethodGet, "/api/orders/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")

	assert.NoError(t, h.GetOrder(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockSvc.AssertNotCalled(t, "GetOrder", mock.Anything, mock.Anything)
}

func TestUpdateOrderStatus_InvalidOperationReturns400(t *testing.T) {
	mockSvc := &MockOrderService{}
	h := NewOrderHandlers(mockSvc)

	orderID := uuid.New()
	mockSvc.On("UpdateStatus", mock.Anything, orderID, "cancelled").
		Return(nil, common.NewInvalidOperationError("only pending or cancelled orders can be deleted"))

	rec, c := newOrderRequest(http.MethodPatch, "/api/orders/"+orderID.String()+"/status", `{"status":"cancelled"}`)
	c.SetParamNames("id")
	c.SetParamValues(orderID.String())

	assert.NoError(t, h.UpdateOrderStatus(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var envelope common.Envelope
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "INVALID_OPERATION", envelope.Error)
}

func TestListOrders_RejectsUnknownStatus(t *testing.T) {
	mockSvc := &MockOrderService{}
	h := NewOrderHandlers(mockSvc)

	rec, c := newOrderRequest(http.MethodGet, "/api/orders?status=shipped", "")

	assert.NoError(t, h.ListOrders(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockSvc.AssertNotCalled(t, "ListOrders", mock.Anything, mock.Anything)
}
