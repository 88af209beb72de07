package models

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID         uuid.UUID `json:"id" db:"id"`
	ProductSKU string    `json:"product_sku" db:"product_sku"`
	AuthorName string    `json:"author_name" db:"author_name"`
	Rating     int       `json:"rating" db:"rating"`
	Content    *string   `json:"content" db:"content"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
