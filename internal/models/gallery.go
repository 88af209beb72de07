package models

import (
	"time"

	"github.com/google/uuid"
)

type Gallery struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`

	Images []*GalleryImage `json:"images,omitempty" db:"-"`
}

type GalleryImage struct {
	ID        uuid.UUID `json:"id" db:"id"`
	GalleryID uuid.UUID `json:"gallery_id" db:"gallery_id"`
	URL       string    `json:"url" db:"url"`
	Caption   *string   `json:"caption" db:"caption"`
	SortOrder int       `json:"sort_order" db:"sort_order"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
