package models

import (
	"time"

	"github.com/google/uuid"
)

type News struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Slug      string    `json:"slug" db:"slug"`
	Summary   *string   `json:"summary" db:"summary"`
	Content   string    `json:"content" db:"content"`
	CoverURL  *string   `json:"cover_url" db:"cover_url"`
	Published bool      `json:"published" db:"published"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// NewsUpdate carries optional fields for partial news updates.
type NewsUpdate struct {
	Title     *string `json:"title,omitempty"`
	Slug      *string `json:"slug,omitempty"`
	Summary   *string `json:"summary,omitempty"`
	Content   *string `json:"content,omitempty"`
	CoverURL  *string `json:"cover_url,omitempty"`
	Published *bool   `json:"published,omitempty"`
}
