package models

import (
	"time"

	"github.com/google/uuid"
)

type ProductImage struct {
	ID         uuid.UUID `json:"id" db:"id"`
	ProductSKU string    `json:"product_sku" db:"product_sku"`
	URL        string    `json:"url" db:"url"`
	SortOrder  int       `json:"sort_order" db:"sort_order"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
