package models

import (
	"time"

	"github.com/google/uuid"
)

type Account struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	FullName     string     `json:"full_name" db:"full_name"`
	Phone        *string    `json:"phone" db:"phone"`
	Address      *string    `json:"address" db:"address"`
	RoleID       *uuid.UUID `json:"role_id" db:"role_id"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// AccountUpdate carries optional fields for partial account updates.
type AccountUpdate struct {
	FullName *string    `json:"full_name,omitempty"`
	Phone    *string    `json:"phone,omitempty"`
	Address  *string    `json:"address,omitempty"`
	RoleID   *uuid.UUID `json:"role_id,omitempty"`
	Password *string    `json:"password,omitempty"`
}
