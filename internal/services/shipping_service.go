package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"giftmart/internal/caching"
	"giftmart/internal/common"
	"giftmart/internal/models"
)

const (
	shippingCacheTTL  = 12 * time.Hour
	provincesCacheKey = "giftmart:shipping:provinces"
)

// Province, District and Ward mirror the GHN master-data shapes the
// storefront needs for address pickers.
type Province struct {
	ProvinceID int    `json:"province_id"`
	Name       string `json:"name"`
}

type District struct {
	DistrictID int    `json:"district_id"`
	ProvinceID int    `json:"province_id"`
	Name       string `json:"name"`
}

type Ward struct {
	WardCode   string `json:"ward_code"`
	DistrictID int    `json:"district_id"`
	Name       string `json:"name"`
}

// FeeRequest asks for a shipping quote to a GHN district/ward.
type FeeRequest struct {
	DistrictID  int     `json:"to_district_id"`
	WardCode    string  `json:"to_ward_code"`
	WeightGrams int     `json:"weight_grams"`
	OrderValue  float64 `json:"order_value"`
}

// FeeQuote is the computed shipping charge. Source is "ghn" when the
// carrier answered and "fallback" when the static rate table was used.
type FeeQuote struct {
	Total        float64 `json:"total"`
	FreeShipping bool    `json:"free_shipping"`
	Source       string  `json:"source"`
}

type ShippingServiceInterface interface {
	ListProvinces(ctx context.Context) ([]Province, error)
	ListDistricts(ctx context.Context, provinceID int) ([]District, error)
	ListWards(ctx context.Context, districtID int) ([]Ward, error)
	QuoteFee(ctx context.Context, req *FeeRequest) (*FeeQuote, error)
}

type shippingService struct {
	baseURL   string
	token     string
	shopID    string
	client    *http.Client
	cache     caching.CacheService
	configSvc ConfigServiceInterface
}

func NewShippingService(baseURL, token, shopID string, cache caching.CacheService, configSvc ConfigServiceInterface) ShippingServiceInterface {
	return &shippingService{
		baseURL:   baseURL,
		token:     token,
		shopID:    shopID,
		client:    &http.Client{Timeout: 10 * time.Second},
		cache:     cache,
		configSvc: configSvc,
	}
}

// ghnEnvelope is the carrier's uniform response wrapper.
type ghnEnvelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// ListProvinces serves the cached province list, refreshing it from the
// carrier and falling back to the built-in dataset when GHN is down.
func (s *shippingService) ListProvinces(ctx context.Context) ([]Province, error) {
	if cached, err := s.cache.GetString(ctx, provincesCacheKey); err == nil && cached != "" {
		var provinces []Province
		if err := json.Unmarshal([]byte(cached), &provinces); err == nil {
			return provinces, nil
		}
	}

	var raw []struct {
		ProvinceID   int    `json:"ProvinceID"`
		ProvinceName string `json:"ProvinceName"`
	}
	if err := s.getMasterData(ctx, "/master-data/province", nil, &raw); err != nil {
		log.Printf("shipping: province lookup failed, using fallback dataset: %v", err)
		return fallbackProvinces, nil
	}

	provinces := make([]Province, 0, len(raw))
	for _, p := range raw {
		provinces = append(provinces, Province{ProvinceID: p.ProvinceID, Name: p.ProvinceName})
	}

	if data, err := json.Marshal(provinces); err == nil {
		if err := s.cache.SetString(ctx, provincesCacheKey, string(data), shippingCacheTTL); err != nil {
			log.Printf("WARN: shipping cache write failed: %v", err)
		}
	}
	return provinces, nil
}

func (s *shippingService) ListDistricts(ctx context.Context, provinceID int) ([]District, error) {
	if provinceID <= 0 {
		return nil, common.NewValidationError("province_id must be positive")
	}

	cacheKey := fmt.Sprintf("giftmart:shipping:districts:%d", provinceID)
	if cached, err := s.cache.GetString(ctx, cacheKey); err == nil && cached != "" {
		var districts []District
		if err := json.Unmarshal([]byte(cached), &districts); err == nil {
			return districts, nil
		}
	}

	var raw []struct {
		DistrictID   int    `json:"DistrictID"`
		ProvinceID   int    `json:"ProvinceID"`
		DistrictName string `json:"DistrictName"`
	}
	params := map[string]any{"province_id": provinceID}
	if err := s.getMasterData(ctx, "/master-data/district", params, &raw); err != nil {
		return nil, fmt.Errorf("district lookup failed: %w", err)
	}

	districts := make([]District, 0, len(raw))
	for _, d := range raw {
		districts = append(districts, District{DistrictID: d.DistrictID, ProvinceID: d.ProvinceID, Name: d.DistrictName})
	}

	if data, err := json.Marshal(districts); err == nil {
		if err := s.cache.SetString(ctx, cacheKey, string(data), shippingCacheTTL); err != nil {
			log.Printf("WARN: shipping cache write failed: %v", err)
		}
	}
	return districts, nil
}

func (s *shippingService) ListWards(ctx context.Context, districtID int) ([]Ward, error) {
	if districtID <= 0 {
		return nil, common.NewValidationError("district_id must be positive")
	}

	cacheKey := fmt.Sprintf("giftmart:shipping:wards:%d", districtID)
	if cached, err := s.cache.GetString(ctx, cacheKey); err == nil && cached != "" {
		var wards []Ward
		if err := json.Unmarshal([]byte(cached), &wards); err == nil {
			return wards, nil
		}
	}

	var raw []struct {
		WardCode   string `json:"WardCode"`
		DistrictID int    `json:"DistrictID"`
		WardName   string `json:"WardName"`
	}
	params := map[string]any{"district_id": districtID}
	if err := s.getMasterData(ctx, "/master-data/ward", params, &raw); err != nil {
		return nil, fmt.Errorf("ward lookup failed: %w", err)
	}

	wards := make([]Ward, 0, len(raw))
	for _, w := range raw {
		wards = append(wards, Ward{WardCode: w.WardCode, DistrictID: w.DistrictID, Name: w.WardName})
	}

	if data, err := json.Marshal(wards); err == nil {
		if err := s.cache.SetString(ctx, cacheKey, string(data), shippingCacheTTL); err != nil {
			log.Printf("WARN: shipping cache write failed: %v", err)
		}
	}
	return wards, nil
}

// QuoteFee asks GHN for a shipping quote, falling back to the weight-based
// rate table. Orders above the free-ship threshold always quote zero.
func (s *shippingService) QuoteFee(ctx context.Context, req *FeeRequest) (*FeeQuote, error) {
	if req.WeightGrams <= 0 {
		return nil, common.NewValidationError("weight_grams must be positive")
	}

	threshold := s.configSvc.GetFloatValue(ctx, models.ConfigFreeShipThreshold, 0)
	if threshold > 0 && req.OrderValue >= threshold {
		return &FeeQuote{Total: 0, FreeShipping: true, Source: "threshold"}, nil
	}

	if req.DistrictID > 0 && req.WardCode != "" {
		body := map[string]any{
			"to_district_id":  req.DistrictID,
			"to_ward_code":    req.WardCode,
			"weight":          req.WeightGrams,
			"insurance_value": int(req.OrderValue),
			"service_type_id": 2,
		}
		var raw struct {
			Total float64 `json:"total"`
		}
		if err := s.postJSON(ctx, "/v2/shipping-order/fee", body, &raw); err == nil {
			return &FeeQuote{Total: raw.Total, Source: "ghn"}, nil
		} else {
			log.Printf("shipping: GHN fee quote failed, using fallback rate: %v", err)
		}
	}

	return &FeeQuote{Total: fallbackFee(req.WeightGrams), Source: "fallback"}, nil
}

// fallbackFee is the flat rate table: a base charge for the first 500g plus
// a step per additional 500g.
func fallbackFee(weightGrams int) float64 {
	const (
		baseFee   = 30000
		stepFee   = 5000
		stepGrams = 500
	)
	fee := float64(baseFee)
	if weightGrams > stepGrams {
		extra := (weightGrams - stepGrams + stepGrams - 1) / stepGrams
		fee += float64(extra * stepFee)
	}
	return fee
}

func (s *shippingService) getMasterData(ctx context.Context, path string, params map[string]any, out any) error {
	var body *bytes.Reader
	if params != nil {
		data, err := json.Marshal(params)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, body)
	if err != nil {
		return err
	}
	return s.do(req, out)
}

func (s *shippingService) postJSON(ctx context.Context, path string, payload any, out any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	return s.do(req, out)
}

func (s *shippingService) do(req *http.Request, out any) error {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Token", s.token)
	if s.shopID != "" {
		req.Header.Set("ShopId", s.shopID)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("carrier returned status %d", resp.StatusCode)
	}

	var envelope ghnEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return err
	}
	if envelope.Code != 200 {
		return fmt.Errorf("carrier error %d: %s", envelope.Code, envelope.Message)
	}
	return json.Unmarshal(envelope.Data, out)
}

// fallbackProvinces is the static dataset served when the carrier is
// unreachable, covering the provinces the store actually ships to.
var fallbackProvinces = []Province{
	{ProvinceID: 201, Name: "Hà Nội"},
	{ProvinceID: 202, Name: "Hồ Chí Minh"},
	{ProvinceID: 203, Name: "Đà Nẵng"},
	{ProvinceID: 204, Name: "Hải Phòng"},
	{ProvinceID: 205, Name: "Cần Thơ"},
	{ProvinceID: 206, Name: "Bình Dương"},
	{ProvinceID: 207, Name: "Đồng Nai"},
	{ProvinceID: 208, Name: "Khánh Hòa"},
	{ProvinceID: 209, Name: "Thừa Thiên Huế"},
	{ProvinceID: 210, Name: "Quảng Ninh"},
}
