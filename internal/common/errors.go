package common

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound marks an absent entity. Wrap it with context:
// fmt.Errorf("order %s: %w", id, common.ErrNotFound).
var ErrNotFound = errors.New("not found")

// ValidationError signals malformed, missing or out-of-range input (400).
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError signals a unique or foreign-key constraint violation (409).
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func NewConflictError(format string, args ...any) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// InvalidOperationError signals a state-machine violation, e.g. editing a
// non-pending order (400).
type InvalidOperationError struct {
	Message string
}

func (e *InvalidOperationError) Error() string { return e.Message }

func NewInvalidOperationError(format string, args ...any) *InvalidOperationError {
	return &InvalidOperationError{Message: fmt.Sprintf(format, args...)}
}

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// TranslateDBError converts known pgx error codes into the taxonomy above.
// pgx.ErrNoRows becomes ErrNotFound; unique and FK violations become
// conflicts; everything else passes through for the handler to treat as 500.
func TranslateDBError(err error, entity string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", entity, ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return NewConflictError("%s already exists", entity)
		case pgForeignKeyViolation:
			return NewConflictError("%s is referenced by other records", entity)
		}
	}
	return err
}
