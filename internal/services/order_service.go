package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"giftmart/internal/common"
	"giftmart/internal/models"
	"giftmart/internal/repositories"
	"giftmart/pkg/database"
)

// OrderItemInput is one requested line of a checkout. ProductPrice, when
// supplied, overrides the product's current price (promotional overrides);
// the line and order totals are always recomputed server-side.
type OrderItemInput struct {
	ProductSKU   string   `json:"productSku"`
	Quantity     int      `json:"quantity"`
	ProductPrice *float64 `json:"productPrice,omitempty"`
}

// CreateOrderInput carries a checkout request. Guest orders have no
// AccountID and must carry CustomerName and CustomerEmail instead.
type CreateOrderInput struct {
	AccountID       *uuid.UUID       `json:"accountId,omitempty"`
	CustomerName    string           `json:"customerName"`
	CustomerEmail   string           `json:"customerEmail"`
	CustomerPhone   *string          `json:"customerPhone,omitempty"`
	CustomerAddress *string          `json:"customerAddress,omitempty"`
	Note            *string          `json:"note,omitempty"`
	Items           []OrderItemInput `json:"orderItems"`
}

// OrderNotifier dispatches the post-checkout admin notification. It reports
// success as a boolean and never propagates an error into order creation.
type OrderNotifier interface {
	SendOrderNotificationToAdmin(ctx context.Context, order *models.Order) bool
}

// ProductCacheInvalidator drops a cached product entry after its stock
// changes, so cache-first product reads never serve a pre-order quantity.
// Satisfied by caching.CacheService.
type ProductCacheInvalidator interface {
	DeleteProduct(ctx context.Context, sku string) error
}

type OrderServiceInterface interface {
	CreateOrder(ctx context.Context, input *CreateOrderInput) (*models.Order, error)
	GetOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, filter *models.OrderSearchFilter) ([]*models.Order, int, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) (*models.Order, error)
	DeleteOrder(ctx context.Context, orderID uuid.UUID) error
	UpdateItem(ctx context.Context, itemID uuid.UUID, quantity int) (*models.Order, error)
	DeleteItem(ctx context.Context, itemID uuid.UUID) (*models.Order, error)
	Stats(ctx context.Context, startDate, endDate *time.Time) (*models.OrderStats, error)
}

type orderService struct {
	orderRepo   repositories.OrderRepository
	itemRepo    repositories.OrderItemRepository
	productRepo repositories.ProductRepository
	accountRepo repositories.AccountRepository
	tx          database.TxManager
	cache       ProductCacheInvalidator
	notifier    OrderNotifier
}

func NewOrderService(
	orderRepo repositories.OrderRepository,
	itemRepo repositories.OrderItemRepository,
	productRepo repositories.ProductRepository,
	accountRepo repositories.AccountRepository,
	tx database.TxManager,
	cache ProductCacheInvalidator,
	notifier OrderNotifier,
) OrderServiceInterface {
	return &orderService{
		orderRepo:   orderRepo,
		itemRepo:    itemRepo,
		productRepo: productRepo,
		accountRepo: accountRepo,
		tx:          tx,
		cache:       cache,
		notifier:    notifier,
	}
}

// invalidateProducts drops cached entries for the given SKUs once a stock
// mutation has committed. Cache failures are logged and never fail the
// operation.
func (s *orderService) invalidateProducts(ctx context.Context, skus ...string) {
	for _, sku := range skus {
		if err := s.cache.DeleteProduct(ctx, sku); err != nil {
			log.Printf("WARN: failed to drop cached product %s: %v", sku, err)
		}
	}
}

// CreateOrder validates the cart, then writes the order, its items and the
// per-product stock decrements in one transaction. The admin notification
// fires after commit and never affects the result.
func (s *orderService) CreateOrder(ctx context.Context, input *CreateOrderInput) (*models.Order, error) {
	if len(input.Items) == 0 {
		return nil, common.NewValidationError("orderItems must be a non-empty array")
	}
	if input.AccountID == nil {
		if input.CustomerName == "" || input.CustomerEmail == "" {
			return nil, common.NewValidationError("customerName and customerEmail are required for guest orders")
		}
	}
	if input.CustomerEmail != "" {
		if err := common.ValidateEmail(input.CustomerEmail, "customerEmail"); err != nil {
			return nil, common.NewValidationError("%s", err.Error())
		}
	}

	var account *models.Account
	if input.AccountID != nil {
		acc, err := s.accountRepo.GetByID(ctx, *input.AccountID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, common.NewValidationError("account %s does not exist", input.AccountID)
			}
			return nil, err
		}
		account = acc
	}

	order := &models.Order{
		ID:              uuid.New(),
		AccountID:       input.AccountID,
		CustomerName:    input.CustomerName,
		CustomerEmail:   input.CustomerEmail,
		CustomerPhone:   input.CustomerPhone,
		CustomerAddress: input.CustomerAddress,
		Note:            input.Note,
		Status:          models.OrderStatusPending,
	}

	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var total float64
		items := make([]*models.OrderItem, 0, len(input.Items))

		for _, in := range input.Items {
			if in.ProductSKU == "" {
				return common.NewValidationError("productSku is required for each order item")
			}
			if in.Quantity <= 0 {
				return common.NewValidationError("quantity must be positive for product %s", in.ProductSKU)
			}

			product, err := s.productRepo.GetBySKU(ctx, in.ProductSKU)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return common.NewValidationError("product %s does not exist", in.ProductSKU)
				}
				return err
			}
			if !product.Available {
				return common.NewValidationError("product %s is not available", in.ProductSKU)
			}
			if product.Quantity < in.Quantity {
				return common.NewValidationError("Insufficient stock for product %s. Available: %d", in.ProductSKU, product.Quantity)
			}

			price := product.CurrentPrice
			if in.ProductPrice != nil {
				if *in.ProductPrice <= 0 {
					return common.NewValidationError("productPrice must be positive for product %s", in.ProductSKU)
				}
				price = *in.ProductPrice
			}

			lineTotal := price * float64(in.Quantity)
			total += lineTotal
			items = append(items, &models.OrderItem{
				ID:           uuid.New(),
				OrderID:      order.ID,
				ProductSKU:   product.SKU,
				ProductName:  product.Name,
				ProductPrice: price,
				Quantity:     in.Quantity,
				TotalPrice:   lineTotal,
			})
		}

		order.TotalPrice = total
		if err := s.orderRepo.Create(ctx, order); err != nil {
			return err
		}
		for _, item := range items {
			if err := s.itemRepo.Create(ctx, item); err != nil {
				return err
			}
			if err := s.productRepo.AdjustStock(ctx, item.ProductSKU, -item.Quantity); err != nil {
				return err
			}
		}
		order.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}

	skus := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		skus = append(skus, item.ProductSKU)
	}
	s.invalidateProducts(ctx, skus...)

	order.Account = account

	// Fire-and-forget: a failed notification never fails the order.
	go func(o *models.Order) {
		notifyCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if !s.notifier.SendOrderNotificationToAdmin(notifyCtx, o) {
			log.Printf("order %s: admin notification failed", o.ID)
		}
	}(order)

	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, common.TranslateDBError(err, "order")
	}
	return s.attachRelations(ctx, order)
}

func (s *orderService) ListOrders(ctx context.Context, filter *models.OrderSearchFilter) ([]*models.Order, int, error) {
	orders, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// UpdateStatus moves an order through the status machine. Entering
// "cancelled" from any other status returns every item's quantity to its
// product, in the same transaction as the status write; re-cancelling is a
// stock no-op.
func (s *orderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, common.NewValidationError("status must be one of: pending, confirmed, preparing, ready, delivered, cancelled")
	}

	var updated *models.Order
	var restocked []string
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		order, err := s.orderRepo.GetByID(ctx, orderID)
		if err != nil {
			return common.TranslateDBError(err, "order")
		}

		if status == models.OrderStatusCancelled && order.Status != models.OrderStatusCancelled {
			items, err := s.itemRepo.ListByOrder(ctx, order.ID)
			if err != nil {
				return err
			}
			for _, item := range items {
				if err := s.productRepo.AdjustStock(ctx, item.ProductSKU, item.Quantity); err != nil {
					return err
				}
				restocked = append(restocked, item.ProductSKU)
			}
		}

		if err := s.orderRepo.UpdateStatus(ctx, order.ID, status); err != nil {
			return err
		}
		order.Status = status
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.invalidateProducts(ctx, restocked...)
	return s.attachRelations(ctx, updated)
}

// DeleteOrder removes an order in a terminal-editable state. Pending orders
// still hold reserved stock, so it is returned first; cancelled orders were
// restocked at cancellation time. Item rows go with the order via cascade.
func (s *orderService) DeleteOrder(ctx context.Context, orderID uuid.UUID) error {
	var restocked []string
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		order, err := s.orderRepo.GetByID(ctx, orderID)
		if err != nil {
			return common.TranslateDBError(err, "order")
		}
		if order.Status != models.OrderStatusPending && order.Status != models.OrderStatusCancelled {
			return common.NewInvalidOperationError("only pending or cancelled orders can be deleted, current status: %s", order.Status)
		}

		if order.Status == models.OrderStatusPending {
			items, err := s.itemRepo.ListByOrder(ctx, order.ID)
			if err != nil {
				return err
			}
			for _, item := range items {
				if err := s.productRepo.AdjustStock(ctx, item.ProductSKU, item.Quantity); err != nil {
					return err
				}
				restocked = append(restocked, item.ProductSKU)
			}
		}

		return s.orderRepo.Delete(ctx, order.ID)
	})
	if err != nil {
		return err
	}
	s.invalidateProducts(ctx, restocked...)
	return nil
}

// UpdateItem changes a line's quantity while the parent order is pending.
// The stock delta is the inverse of the quantity delta, and both the line
// total and the order total are recomputed inside the transaction.
func (s *orderService) UpdateItem(ctx context.Context, itemID uuid.UUID, quantity int) (*models.Order, error) {
	if quantity <= 0 {
		return nil, common.NewValidationError("quantity must be positive")
	}

	var orderID uuid.UUID
	var adjustedSKU string
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		item, err := s.itemRepo.GetByID(ctx, itemID)
		if err != nil {
			return common.TranslateDBError(err, "order item")
		}
		order, err := s.orderRepo.GetByID(ctx, item.OrderID)
		if err != nil {
			return common.TranslateDBError(err, "order")
		}
		if order.Status != models.OrderStatusPending {
			return common.NewInvalidOperationError("order items can only be edited while the order is pending, current status: %s", order.Status)
		}

		quantityDiff := quantity - item.Quantity
		if quantityDiff > 0 {
			product, err := s.productRepo.GetBySKU(ctx, item.ProductSKU)
			if err != nil {
				return common.TranslateDBError(err, "product")
			}
			if product.Quantity < quantityDiff {
				return common.NewValidationError("Insufficient stock for product %s. Available: %d", item.ProductSKU, product.Quantity)
			}
		}
		if quantityDiff != 0 {
			if err := s.productRepo.AdjustStock(ctx, item.ProductSKU, -quantityDiff); err != nil {
				return err
			}
			adjustedSKU = item.ProductSKU
		}

		if err := s.itemRepo.UpdateQuantity(ctx, item.ID, quantity, item.ProductPrice*float64(quantity)); err != nil {
			return err
		}
		if err := s.recomputeOrderTotal(ctx, order.ID); err != nil {
			return err
		}
		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	if adjustedSKU != "" {
		s.invalidateProducts(ctx, adjustedSKU)
	}
	return s.GetOrder(ctx, orderID)
}

// DeleteItem removes a line while the parent order is pending, restoring
// its stock. The last remaining line cannot be deleted; the order itself
// must be deleted instead.
func (s *orderService) DeleteItem(ctx context.Context, itemID uuid.UUID) (*models.Order, error) {
	var orderID uuid.UUID
	var restockedSKU string
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		item, err := s.itemRepo.GetByID(ctx, itemID)
		if err != nil {
			return common.TranslateDBError(err, "order item")
		}
		order, err := s.orderRepo.GetByID(ctx, item.OrderID)
		if err != nil {
			return common.TranslateDBError(err, "order")
		}
		if order.Status != models.OrderStatusPending {
			return common.NewInvalidOperationError("order items can only be deleted while the order is pending, current status: %s", order.Status)
		}

		count, err := s.itemRepo.CountByOrder(ctx, order.ID)
		if err != nil {
			return err
		}
		if count <= 1 {
			return common.NewInvalidOperationError("cannot delete the last item of an order; delete the order instead")
		}

		if err := s.productRepo.AdjustStock(ctx, item.ProductSKU, item.Quantity); err != nil {
			return err
		}
		restockedSKU = item.ProductSKU
		if err := s.itemRepo.Delete(ctx, item.ID); err != nil {
			return err
		}
		if err := s.recomputeOrderTotal(ctx, order.ID); err != nil {
			return err
		}
		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.invalidateProducts(ctx, restockedSKU)
	return s.GetOrder(ctx, orderID)
}

func (s *orderService) Stats(ctx context.Context, startDate, endDate *time.Time) (*models.OrderStats, error) {
	return s.orderRepo.Stats(ctx, startDate, endDate)
}

// recomputeOrderTotal re-derives the order total as the sum of its items so
// the sum invariant holds after every item mutation.
func (s *orderService) recomputeOrderTotal(ctx context.Context, orderID uuid.UUID) error {
	items, err := s.itemRepo.ListByOrder(ctx, orderID)
	if err != nil {
		return err
	}
	var total float64
	for _, item := range items {
		total += item.TotalPrice
	}
	return s.orderRepo.UpdateTotal(ctx, orderID, total)
}

func (s *orderService) attachRelations(ctx context.Context, order *models.Order) (*models.Order, error) {
	items, err := s.itemRepo.ListByOrder(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	if order.AccountID != nil {
		account, err := s.accountRepo.GetByID(ctx, *order.AccountID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		order.Account = account
	}
	return order, nil
}
