package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"giftmart/internal/common"
	"giftmart/internal/models"
)

// Mock repositories

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateTotal(ctx context.Context, id uuid.UUID, totalPrice float64) error {
	args := m.Called(ctx, id, totalPrice)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) List(ctx context.Context, filter *models.OrderSearchFilter) ([]*models.Order, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*models.Order), args.Error(1)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter *models.OrderSearchFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockOrderRepository) Stats(ctx context.Context, startDate, endDate *time.Time) (*models.OrderStats, error) {
	args := m.Called(ctx, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OrderStats), args.Error(1)
}

type MockOrderItemRepository struct {
	mock.Mock
}

func (m *MockOrderItemRepository) Create(ctx context.Context, item *models.OrderItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockOrderItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.OrderItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OrderItem), args.Error(1)
}

func (m *MockOrderItemRepository) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]*models.OrderItem, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]*models.OrderItem), args.Error(1)
}

func (m *MockOrderItemRepository) CountByOrder(ctx context.Context, orderID uuid.UUID) (int, error) {
	args := m.Called(ctx, orderID)
	return args.Int(0), args.Error(1)
}

func (m *MockOrderItemRepository) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int, totalPrice float64) error {
	args := m.Called(ctx, id, quantity, totalPrice)
	return args.Error(0)
}

func (m *MockOrderItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) GetBySKU(ctx context.Context, sku string) (*models.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) ApplyUpdate(ctx context.Context, sku string, upd *models.ProductUpdate) error {
	args := m.Called(ctx, sku, upd)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, sku string) error {
	args := m.Called(ctx, sku)
	return args.Error(0)
}

func (m *MockProductRepository) List(ctx context.Context, filter *models.ProductSearchFilter) ([]*models.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*models.Product), args.Error(1)
}

func (m *MockProductRepository) AdjustStock(ctx context.Context, sku string, delta int) error {
	args := m.Called(ctx, sku, delta)
	return args.Error(0)
}

func (m *MockProductRepository) ListLowStock(ctx context.Context, threshold int) ([]*models.Product, error) {
	args := m.Called(ctx, threshold)
	return args.Get(0).([]*models.Product), args.Error(1)
}

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, account *models.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) ApplyUpdate(ctx context.Context, id uuid.UUID, upd *models.AccountUpdate, passwordHash *string) error {
	args := m.Called(ctx, id, upd, passwordHash)
	return args.Error(0)
}

func (m *MockAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAccountRepository) List(ctx context.Context, limit, offset int) ([]*models.Account, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Account), args.Error(1)
}

// fakeTxManager runs the function directly; the repositories are mocked so
// there is no real transaction to manage.
type fakeTxManager struct{}

func (fakeTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// stubNotifier counts notifications without touching testing.T, because the
// service fires it from a goroutine that may outlive the test body.
type stubNotifier struct {
	sent atomic.Int32
}

func (s *stubNotifier) SendOrderNotificationToAdmin(ctx context.Context, order *models.Order) bool {
	s.sent.Add(1)
	return true
}

// stubProductCache records which SKUs were dropped from the product cache.
type stubProductCache struct {
	dropped []string
}

func (s *stubProductCache) DeleteProduct(ctx context.Context, sku string) error {
	s.dropped = append(s.dropped, sku)
	return nil
}

type OrderServiceTestSuite struct {
	suite.Suite
	orderRepo   *MockOrderRepository
	itemRepo    *MockOrderItemRepository
	productRepo *MockProductRepository
	accountRepo *MockAccountRepository
	cache       *stubProductCache
	notifier    *stubNotifier
	service     OrderServiceInterface
	ctx         context.Context
}

func (suite *OrderServiceTestSuite) SetupTest() {
	suite.orderRepo = &MockOrderRepository{}
	suite.itemRepo = &MockOrderItemRepository{}
	suite.productRepo = &MockProductRepository{}
	suite.accountRepo = &MockAccountRepository{}
	suite.cache = &stubProductCache{}
	suite.notifier = &stubNotifier{}
	suite.service = NewOrderService(suite.orderRepo, suite.itemRepo, suite.productRepo, suite.accountRepo, fakeTxManager{}, suite.cache, suite.notifier)
	suite.ctx = context.Background()
}

func (suite *OrderServiceTestSuite) TearDownTest() {
	suite.orderRepo.AssertExpectations(suite.T())
	suite.itemRepo.AssertExpectations(suite.T())
	suite.productRepo.AssertExpectations(suite.T())
	suite.accountRepo.AssertExpectations(suite.T())
}

func TestOrderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}

func testProduct(sku string, quantity int, price float64) *models.Product {
	return &models.Product{
		SKU:          sku,
		Name:         "Product " + sku,
		Quantity:     quantity,
		CurrentPrice: price,
		Available:    true,
	}
}

func guestInput(items ...OrderItemInput) *CreateOrderInput {
	return &CreateOrderInput{
		CustomerName:  "Nguyen Van A",
		CustomerEmail: "a@example.com",
		Items:         items,
	}
}

func (suite *OrderServiceTestSuite) TestCreateOrder_Success() {
	suite.productRepo.On("GetBySKU", suite.ctx, "TEA-01").Return(testProduct("TEA-01", 10, 120000), nil)
	suite.productRepo.On("GetBySKU", suite.ctx, "BOX-02").Return(testProduct("BOX-02", 4, 250000), nil)
	suite.orderRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.Order")).Return(nil)
	suite.itemRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.OrderItem")).Return(nil)
	suite.productRepo.On("AdjustStock", suite.ctx, "TEA-01", -2).Return(nil)
	suite.productRepo.On("AdjustStock", suite.ctx, "BOX-02", -1).Return(nil)

	order, err := suite.service.CreateOrder(suite.ctx, guestInput(
		OrderItemInput{ProductSKU: "TEA-01", Quantity: 2},
		OrderItemInput{ProductSKU: "BOX-02", Quantity: 1},
	))

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.OrderStatusPending, order.Status)
	assert.Len(suite.T(), order.Items, 2)
	assert.Equal(suite.T(), 2*120000.0+250000.0, order.TotalPrice)

	var sum float64
	for _, item := range order.Items {
		sum += item.TotalPrice
	}
	assert.Equal(suite.T(), order.TotalPrice, sum)
}

func (suite *OrderServiceTestSuite) TestCreateOrder_EmptyItems() {
	_, err := suite.service.CreateOrder(suite.ctx, guestInput())

	var validationErr *common.ValidationError
	assert.ErrorAs(suite.T(), err, &validationErr)
	assert.Contains(suite.T(), err.Error(), "orderItems")
}

func (suite *OrderServiceTestSuite) TestCreateOrder_GuestMissingContact() {
	input := guestInput(OrderItemInput{ProductSKU: "TEA-01", Quantity: 1})
	input.CustomerName = ""

	_, err := suite.service.CreateOrder(suite.ctx, input)

	var validationErr *common.ValidationError
	assert.ErrorAs(suite.T(), err, &validationErr)
	assert.Contains(suite.T(), err.Error(), "customerName")
}

func (suite *OrderServiceTestSuite) TestCreateOrder_InvalidEmail() {
	input := guestInput(OrderItemInput{ProductSKU: "TEA-01", Quantity: 1})
	input.CustomerEmail = "not-an-email"

	_, err := suite.service.CreateOrder(suite.ctx, input)

	var validationErr *common.ValidationError
	assert.ErrorAs(suite.T(), err, &validationErr)
}

func (suite *OrderServiceTestSuite) TestCreateOrder_UnknownAccount() {
	accountID := uuid.New()
	suite.accountRepo.On("GetByID", suite.ctx, accountID).Return(nil, pgx.ErrNoRows)

	input := guestInput(OrderItemInput{ProductSKU: "TEA-01", Quantity: 1})
	input.AccountID = &accountID

	_, err := suite.service.CreateOrder(suite.ctx, input)

	var validationErr *common.ValidationError
	assert.ErrorAs(suite.T(), err, &validationErr)
}

func (suite *OrderServiceTestSuite) TestCreateOrder_UnknownProduct() {
	suite.productRepo.On("GetBySKU", suite.ctx, "NOPE").Return(nil, pgx.ErrNoRows)

	_, err := suite.service.CreateOrder(suite.ctx, guestInput(OrderItemInput{ProductSKU: "NOPE", Quantity: 1}))

	var validationErr *common.ValidationError
	assert.ErrorAs(suite.T(), err, &validationErr)
	assert.Contains(suite.T(), err.Error(), "NOPE")
}

func (suite *OrderServiceTestSuite) TestCreateOrder_UnavailableProduct() {
	hidden := testProduct("TEA-01", 10, 120000)
	hidden.Available = false
	suite.productRepo.On("GetBySKU", suite.ctx, "TEA-01").Return(hidden, nil)

	_, err := suite.service.CreateOrder(suite.ctx, guestInput(OrderItemInput{ProductSKU: "TEA-01", Quantity: 1}))

	var validationErr *common.ValidationError
	assert.ErrorAs(suite.T(), err, &validationErr)
	assert.Contains(suite.T(), err.Error(), "not available")
}

func (suite *OrderServiceTestSuite) TestCreateOrder_InsufficientStock() {
	suite.productRepo.On("GetBySKU", suite.ctx, "TEA-01").Return(testProduct("TEA-01", 1, 120000), nil)

	_, err := suite.service.CreateOrder(suite.ctx, guestInput(OrderItemInput{ProductSKU: "TEA-01", Quantity: 2}))

	var validationErr *common.ValidationError
	assert.ErrorAs(suite.T(), err, &validationErr)
	assert.Equal(suite.T(), "Insufficient stock for product TEA-01. Available: 1", err.Error())
}

func (suite *OrderServiceTestSuite) TestCreateOrder_ExactStockSucceeds() {
	suite.productRepo.On("GetBySKU", suite.ctx, "TEA-01").Return(testProduct("TEA-01", 2, 120000), nil)
	suite.orderRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.Order")).Return(nil)
	suite.itemRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.OrderItem")).Return(nil)
	suite.productRepo.On("AdjustStock", suite.ctx, "TEA-01", -2).Return(nil)

	order, err := suite.service.CreateOrder(suite.ctx, guestInput(OrderItemInput{ProductSKU: "TEA-01", Quantity: 2}))

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 240000.0, order.TotalPrice)
}

func (suite *OrderServiceTestSuite) TestCreateOrder_ClientPriceOverride() {
	suite.productRepo.On("GetBySKU", suite.ctx, "TEA-01").Return(testProduct("TEA-01", 10, 120000), nil)
	suite.orderRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.Order")).Return(nil)
	suite.itemRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.OrderItem")).Return(nil)
	suite.productRepo.On("AdjustStock", suite.ctx, "TEA-01", -3).Return(nil)

	promo := 100000.0
	order, err := suite.service.CreateOrder(suite.ctx, guestInput(OrderItemInput{ProductSKU: "TEA-01", Quantity: 3, ProductPrice: &promo}))

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 300000.0, order.TotalPrice)
	assert.Equal(suite.T(), promo, order.Items[0].ProductPrice)
}

func (suite *OrderServiceTestSuite) TestCreateOrder_DropsCachedProducts() {
	suite.productRepo.On("GetBySKU", suite.ctx, "TEA-01").Return(testProduct("TEA-01", 10, 120000), nil)
	suite.productRepo.On("GetBySKU", suite.ctx, "BOX-02").Return(testProduct("BOX-02", 4, 250000), nil)
	suite.orderRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.Order")).Return(nil)
	suite.itemRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.OrderItem")).Return(nil)
	suite.productRepo.On("AdjustStock", suite.ctx, "TEA-01", -2).Return(nil)
	suite.productRepo.On("AdjustStock", suite.ctx, "BOX-02", -1).Return(nil)

	_, err := suite.service.CreateOrder(suite.ctx, guestInput(
		OrderItemInput{ProductSKU: "TEA-01", Quantity: 2},
		OrderItemInput{ProductSKU: "BOX-02", Quantity: 1},
	))

	// Cache-first product reads must not serve the pre-order quantity.
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), []string{"TEA-01", "BOX-02"}, suite.cache.dropped)
}

func (suite *OrderServiceTestSuite) TestCreateOrder_KeepsCacheOnFailure() {
	suite.productRepo.On("GetBySKU", suite.ctx, "TEA-01").Return(testProduct("TEA-01", 1, 120000), nil)

	_, err := suite.service.CreateOrder(suite.ctx, guestInput(OrderItemInput{ProductSKU: "TEA-01", Quantity: 2}))

	assert.Error(suite.T(), err)
	assert.Empty(suite.T(), suite.cache.dropped)
}

func (suite *OrderServiceTestSuite) TestUpdateStatus_InvalidStatus() {
	_, err := suite.service.UpdateStatus(suite.ctx, uuid.New(), "shipped")

	var validationErr *common.ValidationError
	assert.ErrorAs(suite.T(), err, &validationErr)
}

func (suite *OrderServiceTestSuite) TestUpdateStatus_CancelRestocksItems() {
	orderID := uuid.New()
	order := &models.Order{ID: orderID, Status: models.OrderStatusPending, CustomerName: "A", CustomerEmail: "a@example.com"}
	items := []*models.OrderItem{
		{ID: uuid.New(), OrderID: orderID, ProductSKU: "TEA-01", Quantity: 2},
		{ID: uuid.New(), OrderID: orderID, ProductSKU: "BOX-02", Quantity: 1},
	}

	suite.orderRepo.On("GetByID", suite.ctx, orderID).Return(order, nil)
	suite.itemRepo.On("ListByOrder", suite.ctx, orderID).Return(items, nil)
	suite.productRepo.On("AdjustStock", suite.ctx, "TEA-01", 2).Return(nil)
	suite.productRepo.On("AdjustStock", suite.ctx, "BOX-02", 1).Return(nil)
	suite.orderRepo.On("UpdateStatus", suite.ctx, orderID, models.OrderStatusCancelled).Return(nil)

	updated, err := suite.service.UpdateStatus(suite.ctx, orderID, models.OrderStatusCancelled)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.OrderStatusCancelled, updated.Status)
	assert.Equal(suite.T(), []string{"TEA-01", "BOX-02"}, suite.cache.dropped)
}

func (suite *OrderServiceTestSuite) TestUpdateStatus_CancelIdempotent() {
	orderID := uuid.New()
	order := &models.Order{ID: orderID, Status: models.OrderStatusCancelled}

	suite.orderRepo.On("GetByID", suite.ctx, orderID).Return(order, nil)
	suite.orderRepo.On("UpdateStatus", suite.ctx, orderID, models.OrderStatusCancelled).Return(nil)
	suite.itemRepo.On("ListByOrder", suite.ctx, orderID).Return([]*models.OrderItem{}, nil)

	_, err := suite.service.UpdateStatus(suite.ctx, orderID, models.OrderStatusCancelled)

	assert.NoError(suite.T(), err)
	suite.productRepo.AssertNotCalled(suite.T(), "AdjustStock", mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(suite.T(), suite.cache.dropped)
}

func (suite *OrderServiceTestSuite) TestUpdateItem_RejectsNonPendingOrder() {
	itemID := uuid.New()
	orderID := uuid.New()
	item := &models.OrderItem{ID: itemID, OrderID: orderID, ProductSKU: "TEA-01", Quantity: 2, ProductPrice: 120000}

	suite.itemRepo.On("GetByID", suite.ctx, itemID).Return(item, nil)
	suite.orderRepo.On("GetByID", suite.ctx, orderID).Return(&models.Order{ID: orderID, Status: models.OrderStatusConfirmed}, nil)

	_, err := suite.service.UpdateItem(suite.ctx, itemID, 3)

	var invalidOp *common.InvalidOperationError
	assert.ErrorAs(suite.T(), err, &invalidOp)
}

func (suite *OrderServiceTestSuite) TestUpdateItem_IncreaseChecksStock() {
	itemID := uuid.New()
	orderID := uuid.New()
	item := &models.OrderItem{ID: itemID, OrderID: orderID, ProductSKU: "TEA-01", Quantity: 2, ProductPrice: 120000}

	suite.itemRepo.On("GetByID", suite.ctx, itemID).Return(item, nil)
	suite.orderRepo.On("GetByID", suite.ctx, orderID).Return(&models.Order{ID: orderID, Status: models.OrderStatusPending}, nil)
	suite.productRepo.On("GetBySKU", suite.ctx, "TEA-01").Return(testProduct("TEA-01", 2, 120000), nil)

	_, err := suite.service.UpdateItem(suite.ctx, itemID, 5)

	var validationErr *common.ValidationError
	assert.ErrorAs(suite.T(), err, &validationErr)
	assert.Equal(suite.T(), "Insufficient stock for product TEA-01. Available: 2", err.Error())
}

func (suite *OrderServiceTestSuite) TestUpdateItem_DecreaseRestocks() {
	itemID := uuid.New()
	orderID := uuid.New()
	item := &models.OrderItem{ID: itemID, OrderID: orderID, ProductSKU: "TEA-01", Quantity: 5, ProductPrice: 120000}
	order := &models.Order{ID: orderID, Status: models.OrderStatusPending, CustomerName: "A", CustomerEmail: "a@example.com"}
	remaining := []*models.OrderItem{
		{ID: itemID, OrderID: orderID, ProductSKU: "TEA-01", Quantity: 2, ProductPrice: 120000, TotalPrice: 240000},
	}

	suite.itemRepo.On("GetByID", suite.ctx, itemID).Return(item, nil)
	suite.orderRepo.On("GetByID", suite.ctx, orderID).Return(order, nil)
	suite.productRepo.On("AdjustStock", suite.ctx, "TEA-01", 3).Return(nil)
	suite.itemRepo.On("UpdateQuantity", suite.ctx, itemID, 2, 240000.0).Return(nil)
	suite.itemRepo.On("ListByOrder", suite.ctx, orderID).Return(remaining, nil)
	suite.orderRepo.On("UpdateTotal", suite.ctx, orderID, 240000.0).Return(nil)

	updated, err := suite.service.UpdateItem(suite.ctx, itemID, 2)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), updated.Items, 1)
	assert.Equal(suite.T(), []string{"TEA-01"}, suite.cache.dropped)
}

func (suite *OrderServiceTestSuite) TestDeleteItem_LastItemRejected() {
	itemID := uuid.New()
	orderID := uuid.New()
	item := &models.OrderItem{ID: itemID, OrderID: orderID, ProductSKU: "TEA-01", Quantity: 2}

	suite.itemRepo.On("GetByID", suite.ctx, itemID).Return(item, nil)
	suite.orderRepo.On("GetByID", suite.ctx, orderID).Return(&models.Order{ID: orderID, Status: models.OrderStatusPending}, nil)
	suite.itemRepo.On("CountByOrder", suite.ctx, orderID).Return(1, nil)

	_, err := suite.service.DeleteItem(suite.ctx, itemID)

	var invalidOp *common.InvalidOperationError
	assert.ErrorAs(suite.T(), err, &invalidOp)
	suite.itemRepo.AssertNotCalled(suite.T(), "Delete", mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestDeleteItem_RestocksAndRecomputesTotal() {
	itemID := uuid.New()
	orderID := uuid.New()
	item := &models.OrderItem{ID: itemID, OrderID: orderID, ProductSKU: "TEA-01", Quantity: 2}
	order := &models.Order{ID: orderID, Status: models.OrderStatusPending, CustomerName: "A", CustomerEmail: "a@example.com"}
	remaining := []*models.OrderItem{
		{ID: uuid.New(), OrderID: orderID, ProductSKU: "BOX-02", Quantity: 1, ProductPrice: 250000, TotalPrice: 250000},
	}

	suite.itemRepo.On("GetByID", suite.ctx, itemID).Return(item, nil)
	suite.orderRepo.On("GetByID", suite.ctx, orderID).Return(order, nil)
	suite.itemRepo.On("CountByOrder", suite.ctx, orderID).Return(2, nil)
	suite.productRepo.On("AdjustStock", suite.ctx, "TEA-01", 2).Return(nil)
	suite.itemRepo.On("Delete", suite.ctx, itemID).Return(nil)
	suite.itemRepo.On("ListByOrder", suite.ctx, orderID).Return(remaining, nil)
	suite.orderRepo.On("UpdateTotal", suite.ctx, orderID, 250000.0).Return(nil)

	updated, err := suite.service.DeleteItem(suite.ctx, itemID)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), updated.Items, 1)
}

func (suite *OrderServiceTestSuite) TestDeleteOrder_PendingRestocks() {
	orderID := uuid.New()
	order := &models.Order{ID: orderID, Status: models.OrderStatusPending}
	items := []*models.OrderItem{
		{ID: uuid.New(), OrderID: orderID, ProductSKU: "TEA-01", Quantity: 2},
	}

	suite.orderRepo.On("GetByID", suite.ctx, orderID).Return(order, nil)
	suite.itemRepo.On("ListByOrder", suite.ctx, orderID).Return(items, nil)
	suite.productRepo.On("AdjustStock", suite.ctx, "TEA-01", 2).Return(nil)
	suite.orderRepo.On("Delete", suite.ctx, orderID).Return(nil)

	err := suite.service.DeleteOrder(suite.ctx, orderID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), []string{"TEA-01"}, suite.cache.dropped)
}

func (suite *OrderServiceTestSuite) TestDeleteOrder_CancelledSkipsRestock() {
	orderID := uuid.New()
	order := &models.Order{ID: orderID, Status: models.OrderStatusCancelled}

	suite.orderRepo.On("GetByID", suite.ctx, orderID).Return(order, nil)
	suite.orderRepo.On("Delete", suite.ctx, orderID).Return(nil)

	err := suite.service.DeleteOrder(suite.ctx, orderID)

	assert.NoError(suite.T(), err)
	suite.productRepo.AssertNotCalled(suite.T(), "AdjustStock", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestDeleteOrder_DeliveredRejected() {
	orderID := uuid.New()
	suite.orderRepo.On("GetByID", suite.ctx, orderID).Return(&models.Order{ID: orderID, Status: models.OrderStatusDelivered}, nil)

	err := suite.service.DeleteOrder(suite.ctx, orderID)

	var invalidOp *common.InvalidOperationError
	assert.ErrorAs(suite.T(), err, &invalidOp)
	suite.orderRepo.AssertNotCalled(suite.T(), "Delete", mock.Anything, mock.Anything)
}
