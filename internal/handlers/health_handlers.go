package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"giftmart/pkg/database"
)

// HealthHandlers exposes liveness and readiness probes.
type HealthHandlers struct {
	db      database.Querier
	version string
}

func NewHealthHandlers(db database.Querier, version string) *HealthHandlers {
	return &HealthHandlers{db: db, version: version}
}

// HealthCheck handles GET /health
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	status := "healthy"
	services := map[string]string{"database": "healthy"}
	statusCode := http.StatusOK

	if err := h.checkDatabase(ctx); err != nil {
		status = "degraded"
		services["database"] = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	return c.JSON(statusCode, map[string]any{
		"status":    status,
		"services":  services,
		"version":   h.version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// LivenessCheck handles GET /health/live
func (h *HealthHandlers) LivenessCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":    "alive",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *HealthHandlers) checkDatabase(ctx context.Context) error {
	_, err := h.db.Exec(ctx, "SELECT 1")
	return err
}
