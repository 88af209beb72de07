package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"giftmart/internal/models"
	"giftmart/pkg/database"
)

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	UpdateTotal(ctx context.Context, id uuid.UUID, totalPrice float64) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter *models.OrderSearchFilter) ([]*models.Order, error)
	Count(ctx context.Context, filter *models.OrderSearchFilter) (int, error)
	Stats(ctx context.Context, startDate, endDate *time.Time) (*models.OrderStats, error)
}

type orderRepo struct {
	db database.Querier
}

func NewOrderRepo(db database.Querier) OrderRepository {
	return &orderRepo{db: db}
}

const orderColumns = `id, account_id, customer_name, customer_email, customer_phone, customer_address, note, status, total_price, created_at, updated_at`

func scanOrder(row interface{ Scan(dest ...any) error }) (*models.Order, error) {
	o := &models.Order{}
	err := row.Scan(&o.ID, &o.AccountID, &o.CustomerName, &o.CustomerEmail, &o.CustomerPhone, &o.CustomerAddress, &o.Note, &o.Status, &o.TotalPrice, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *orderRepo) Create(ctx context.Context, order *models.Order) error {
	query := `
		INSERT INTO orders (id, account_id, customer_name, customer_email, customer_phone, customer_address, note, status, total_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
	`
	_, err := querier(ctx, r.db).Exec(ctx, query, order.ID, order.AccountID, order.CustomerName, order.CustomerEmail, order.CustomerPhone, order.CustomerAddress, order.Note, order.Status, order.TotalPrice)
	return err
}

func (r *orderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE id = $1
	`
	return scanOrder(querier(ctx, r.db).QueryRow(ctx, query, id))
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`
	_, err := querier(ctx, r.db).Exec(ctx, query, status, id)
	return err
}

func (r *orderRepo) UpdateTotal(ctx context.Context, id uuid.UUID, totalPrice float64) error {
	query := `
		UPDATE orders
		SET total_price = $1, updated_at = NOW()
		WHERE id = $2
	`
	_, err := querier(ctx, r.db).Exec(ctx, query, totalPrice, id)
	return err
}

func (r *orderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM orders WHERE id = $1`
	_, err := querier(ctx, r.db).Exec(ctx, query, id)
	return err
}

func buildOrderFilter(filter *models.OrderSearchFilter) (string, []any) {
	clause := ` WHERE 1=1`
	args := []any{}
	argn := 0

	if filter.Status != nil {
		argn++
		clause += fmt.Sprintf(` AND status = $%d`, argn)
		args = append(args, *filter.Status)
	}
	if filter.AccountID != nil {
		argn++
		clause += fmt.Sprintf(` AND account_id = $%d`, argn)
		args = append(args, *filter.AccountID)
	}
	if filter.StartDate != nil {
		argn++
		clause += fmt.Sprintf(` AND created_at >= $%d`, argn)
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		argn++
		clause += fmt.Sprintf(` AND created_at <= $%d`, argn)
		args = append(args, *filter.EndDate)
	}
	return clause, args
}

func (r *orderRepo) List(ctx context.Context, filter *models.OrderSearchFilter) ([]*models.Order, error) {
	if filter.Limit == 0 {
		filter.Limit = 20
	}

	clause, args := buildOrderFilter(filter)
	query := `
		SELECT ` + orderColumns + `
		FROM orders` + clause + fmt.Sprintf(`
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := querier(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *orderRepo) Count(ctx context.Context, filter *models.OrderSearchFilter) (int, error) {
	clause, args := buildOrderFilter(filter)
	query := `SELECT COUNT(*) FROM orders` + clause

	var count int
	if err := querier(ctx, r.db).QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *orderRepo) Stats(ctx context.Context, startDate, endDate *time.Time) (*models.OrderStats, error) {
	query := `
		SELECT status, COUNT(*), COALESCE(SUM(total_price), 0)
		FROM orders
		WHERE 1=1
	`
	args := []any{}
	argn := 0
	if startDate != nil {
		argn++
		query += fmt.Sprintf(` AND created_at >= $%d`, argn)
		args = append(args, *startDate)
	}
	if endDate != nil {
		argn++
		query += fmt.Sprintf(` AND created_at <= $%d`, argn)
		args = append(args, *endDate)
	}
	query += ` GROUP BY status`

	rows, err := querier(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := &models.OrderStats{StatusCounts: map[string]int{}}
	for rows.Next() {
		var status string
		var count int
		var sum float64
		if err := rows.Scan(&status, &count, &sum); err != nil {
			return nil, err
		}
		stats.StatusCounts[status] = count
		stats.TotalOrders += count
		switch status {
		case models.OrderStatusCancelled:
			// excluded from revenue
		case models.OrderStatusPending:
			stats.PendingRevenue += sum
		default:
			stats.Revenue += sum
		}
	}
	return stats, rows.Err()
}
