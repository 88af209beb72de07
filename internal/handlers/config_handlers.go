package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"giftmart/internal/common"
	"giftmart/internal/services"
)

type ConfigHandlers struct {
	configService services.ConfigServiceInterface
}

func NewConfigHandlers(configService services.ConfigServiceInterface) *ConfigHandlers {
	return &ConfigHandlers{configService: configService}
}

// GetConfig handles GET /api/configs/:key
func (h *ConfigHandlers) GetConfig(c echo.Context) error {
	key := c.Param("key")
	if key == "" {
		return common.SendValidationError(c, "key is required")
	}

	value, err := h.configService.GetValue(c.Request().Context(), key)
	if err != nil {
		return common.SendError(c, err)
	}
	return common.SendData(c, http.StatusOK, map[string]string{"key": key, "value": value})
}

// ListConfigs handles GET /api/configs
func (h *ConfigHandlers) ListConfigs(c echo.Context) error {
	configs, err := h.configService.GetAll(c.Request().Context())
	if err != nil {
		return common.SendError(c, err)
	}
	return common.SendData(c, http.StatusOK, configs)
}

// SetConfig handles PUT /api/configs/:key
func (h *ConfigHandlers) SetConfig(c echo.Context) error {
	key := c.Param("key")
	if key == "" {
		return common.SendValidationError(c, "key is required")
	}

	var req struct {
		Value string `json:"value"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request format")
	}

	if err := h.configService.SetValue(c.Request().Context(), key, req.Value); err != nil {
		return common.SendError(c, err)
	}
	return common.SendMessage(c, http.StatusOK, map[string]string{"key": key, "value": req.Value}, "Configuration updated")
}
