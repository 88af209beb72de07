package repositories

import (
	"context"

	"github.com/google/uuid"

	"giftmart/internal/models"
	"giftmart/pkg/database"
)

type OrderItemRepository interface {
	Create(ctx context.Context, item *models.OrderItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.OrderItem, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]*models.OrderItem, error)
	CountByOrder(ctx context.Context, orderID uuid.UUID) (int, error)
	UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int, totalPrice float64) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type orderItemRepo struct {
	db database.Querier
}

func NewOrderItemRepo(db database.Querier) OrderItemRepository {
	return &orderItemRepo{db: db}
}

const orderItemColumns = `id, order_id, product_sku, product_name, product_price, quantity, total_price, created_at, updated_at`

func scanOrderItem(row interface{ Scan(dest ...any) error }) (*models.OrderItem, error) {
	it := &models.OrderItem{}
	err := row.Scan(&it.ID, &it.OrderID, &it.ProductSKU, &it.ProductName, &it.ProductPrice, &it.Quantity, &it.TotalPrice, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return it, nil
}

func (r *orderItemRepo) Create(ctx context.Context, item *models.OrderItem) error {
	query := `
		INSERT INTO order_items (id, order_id, product_sku, product_name, product_price, quantity, total_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err := querier(ctx, r.db).Exec(ctx, query, item.ID, item.OrderID, item.ProductSKU, item.ProductName, item.ProductPrice, item.Quantity, item.TotalPrice)
	return err
}

func (r *orderItemRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.OrderItem, error) {
	query := `
		SELECT ` + orderItemColumns + `
		FROM order_items
		WHERE id = $1
	`
	return scanOrderItem(querier(ctx, r.db).QueryRow(ctx, query, id))
}

func (r *orderItemRepo) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]*models.OrderItem, error) {
	query := `
		SELECT ` + orderItemColumns + `
		FROM order_items
		WHERE order_id = $1
		ORDER BY created_at ASC
	`
	rows, err := querier(ctx, r.db).Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.OrderItem
	for rows.Next() {
		it, err := scanOrderItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *orderItemRepo) CountByOrder(ctx context.Context, orderID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM order_items WHERE order_id = $1`
	var count int
	if err := querier(ctx, r.db).QueryRow(ctx, query, orderID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *orderItemRepo) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int, totalPrice float64) error {
	query := `
		UPDATE order_items
		SET quantity = $1, total_price = $2, updated_at = NOW()
		WHERE id = $3
	`
	_, err := querier(ctx, r.db).Exec(ctx, query, quantity, totalPrice, id)
	return err
}

func (r *orderItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM order_items WHERE id = $1`
	_, err := querier(ctx, r.db).Exec(ctx, query, id)
	return err
}
