package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductSearchFilter holds search and filter criteria for product queries
type ProductSearchFilter struct {
	Query       string     `json:"query,omitempty"`        // Full-text search across name and description
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`  // Filter by category
	MinPrice    *float64   `json:"min_price,omitempty"`    // Minimum current price
	MaxPrice    *float64   `json:"max_price,omitempty"`    // Maximum current price
	Available   *bool      `json:"available,omitempty"`    // Only available (or only hidden) products
	InStockOnly bool       `json:"in_stock_only,omitempty"` // Exclude products with zero stock
	SortBy      string     `json:"sort_by,omitempty"`      // Sort field: name, created_at, quantity, current_price
	SortOrder   string     `json:"sort_order,omitempty"`   // Sort order: asc, desc
	Limit       int        `json:"limit,omitempty"`        // Page size (default: 50)
	Offset      int        `json:"offset,omitempty"`       // Page offset
}

// ProductUpdate carries optional fields for partial product updates.
// Only non-nil fields are applied.
type ProductUpdate struct {
	Name          *string    `json:"name,omitempty"`
	CategoryID    *uuid.UUID `json:"category_id,omitempty"`
	Quantity      *int       `json:"quantity,omitempty"`
	CurrentPrice  *float64   `json:"current_price,omitempty"`
	OriginalPrice *float64   `json:"original_price,omitempty"`
	Available     *bool      `json:"available,omitempty"`
	Description   *string    `json:"description,omitempty"`
	Unit          *string    `json:"unit,omitempty"`
	WeightGrams   *int       `json:"weight_grams,omitempty"`
}

type Product struct {
	SKU           string     `json:"sku" db:"sku"`
	Name          string     `json:"name" db:"name"`
	CategoryID    *uuid.UUID `json:"category_id" db:"category_id"`
	Quantity      int        `json:"quantity" db:"quantity"`
	CurrentPrice  float64    `json:"current_price" db:"current_price"`
	OriginalPrice *float64   `json:"original_price" db:"original_price"`
	Available     bool       `json:"available" db:"available"`
	Description   *string    `json:"description" db:"description"`
	Unit          *string    `json:"unit" db:"unit"`
	WeightGrams   int        `json:"weight_grams" db:"weight_grams"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`

	Images []*ProductImage `json:"images,omitempty" db:"-"`
}
