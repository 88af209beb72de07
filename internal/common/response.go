package common

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Envelope is the JSON wrapper used by every API response.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// SendData sends a success envelope with a payload.
func SendData(c echo.Context, status int, data any) error {
	return c.JSON(status, Envelope{Success: true, Data: data})
}

// SendMessage sends a success envelope with a payload and a message.
func SendMessage(c echo.Context, status int, data any, message string) error {
	return c.JSON(status, Envelope{Success: true, Data: data, Message: message})
}

// SendValidationError sends a 400 for malformed or out-of-range input.
func SendValidationError(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, Envelope{Success: false, Error: "VALIDATION_ERROR", Message: message})
}

// SendNotFoundError sends a 404 for an absent entity.
func SendNotFoundError(c echo.Context, message string) error {
	return c.JSON(http.StatusNotFound, Envelope{Success: false, Error: "NOT_FOUND", Message: message})
}

// SendConflictError sends a 409 for unique/foreign-key constraint violations.
func SendConflictError(c echo.Context, message string) error {
	return c.JSON(http.StatusConflict, Envelope{Success: false, Error: "CONFLICT", Message: message})
}

// SendServerError sends a generic 500 without leaking internals.
func SendServerError(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, Envelope{Success: false, Error: "SERVER_ERROR", Message: "Internal server error"})
}

// SendError maps a service error onto the response taxonomy. Unknown errors
// collapse to a generic 500.
func SendError(c echo.Context, err error) error {
	var (
		validationErr *ValidationError
		conflictErr   *ConflictError
		invalidOpErr  *InvalidOperationError
	)
	switch {
	case errors.As(err, &validationErr):
		return SendValidationError(c, validationErr.Message)
	case errors.As(err, &invalidOpErr):
		return c.JSON(http.StatusBadRequest, Envelope{Success: false, Error: "INVALID_OPERATION", Message: invalidOpErr.Message})
	case errors.Is(err, ErrNotFound):
		return SendNotFoundError(c, err.Error())
	case errors.As(err, &conflictErr):
		return SendConflictError(c, conflictErr.Message)
	default:
		c.Logger().Errorf("unhandled error: %v", err)
		return SendServerError(c)
	}
}
