package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"giftmart/internal/common"
	"giftmart/internal/services"
)

type ShippingHandlers struct {
	shippingService services.ShippingServiceInterface
}

func NewShippingHandlers(shippingService services.ShippingServiceInterface) *ShippingHandlers {
	return &ShippingHandlers{shippingService: shippingService}
}

// ListProvinces handles GET /api/shipping/provinces
func (h *ShippingHandlers) ListProvinces(c echo.Context) error {
	provinces, err := h.shippingService.ListProvinces(c.Request().Context())
	if err != nil {
		return common.SendError(c, err)
	}
	return common.SendData(c, http.StatusOK, provinces)
}

// ListDistricts handles GET /api/shipping/districts?province_id=...
func (h *ShippingHandlers) ListDistricts(c echo.Context) error {
	provinceID, err := strconv.Atoi(c.QueryParam("province_id"))
	if err != nil {
		return common.SendValidationError(c, "province_id must be an integer")
	}

	districts, err := h.shippingService.ListDistricts(c.Request().Context(), provinceID)
	if err != nil {
		return common.SendError(c, err)
	}
	return common.SendData(c, http.StatusOK, districts)
}

// ListWards handles GET /api/shipping/wards?district_id=...
func (h *ShippingHandlers) ListWards(c echo.Context) error {
	districtID, err := strconv.Atoi(c.QueryParam("district_id"))
	if err != nil {
		return common.SendValidationError(c, "district_id must be an integer")
	}

	wards, err := h.shippingService.ListWards(c.Request().Context(), districtID)
	if err != nil {
		return common.SendError(c, err)
	}
	return common.SendData(c, http.StatusOK, wards)
}

// QuoteFee handles POST /api/shipping/fee
func (h *ShippingHandlers) QuoteFee(c echo.Context) error {
	var req services.FeeRequest
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request format")
	}

	quote, err := h.shippingService.QuoteFee(c.Request().Context(), &req)
	if err != nil {
		return common.SendError(c, err)
	}
	return common.SendData(c, http.StatusOK, quote)
}
