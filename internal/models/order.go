package models

import (
	"time"

	"github.com/google/uuid"
)

// Order statuses. Transitions are validated by the order service; the only
// transition with an inventory side effect is entering "cancelled".
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// ValidOrderStatus reports whether status belongs to the recognized set.
func ValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusReady, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	AccountID       *uuid.UUID `json:"account_id" db:"account_id"`
	CustomerName    string     `json:"customer_name" db:"customer_name"`
	CustomerEmail   string     `json:"customer_email" db:"customer_email"`
	CustomerPhone   *string    `json:"customer_phone" db:"customer_phone"`
	CustomerAddress *string    `json:"customer_address" db:"customer_address"`
	Note            *string    `json:"note" db:"note"`
	Status          string     `json:"status" db:"status"`
	TotalPrice      float64    `json:"total_price" db:"total_price"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`

	Items   []*OrderItem `json:"items,omitempty" db:"-"`
	Account *Account     `json:"account,omitempty" db:"-"`
}

// OrderSearchFilter holds filter criteria for order listings.
type OrderSearchFilter struct {
	Status    *string    `json:"status,omitempty"`
	AccountID *uuid.UUID `json:"account_id,omitempty"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	Limit     int        `json:"limit,omitempty"`
	Offset    int        `json:"offset,omitempty"`
}

// OrderStats aggregates order counts and revenue for the admin dashboard.
// Revenue excludes cancelled orders.
type OrderStats struct {
	TotalOrders    int            `json:"total_orders"`
	StatusCounts   map[string]int `json:"status_counts"`
	Revenue        float64        `json:"revenue"`
	PendingRevenue float64        `json:"pending_revenue"`
}
