package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"giftmart/internal/common"
	"giftmart/internal/models"
)

// memoryCache is an in-memory CacheService for tests.
type memoryCache struct {
	strings map[string]string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{strings: make(map[string]string)}
}

func (c *memoryCache) GetProduct(ctx context.Context, sku string) (*models.Product, error) {
	return nil, nil
}
func (c *memoryCache) SetProduct(ctx context.Context, product *models.Product, ttl time.Duration) error {
	return nil
}
func (c *memoryCache) DeleteProduct(ctx context.Context, sku string) error { return nil }
func (c *memoryCache) GetConfigValue(ctx context.Context, key string) (string, bool, error) {
	v, ok := c.strings["config:"+key]
	return v, ok, nil
}
func (c *memoryCache) SetConfigValue(ctx context.Context, key, value string, ttl time.Duration) error {
	c.strings["config:"+key] = value
	return nil
}
func (c *memoryCache) DeleteConfigValue(ctx context.Context, key string) error {
	delete(c.strings, "config:"+key)
	return nil
}
func (c *memoryCache) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	c.strings[key] = value
	return nil
}
func (c *memoryCache) GetString(ctx context.Context, key string) (string, error) {
	return c.strings[key], nil
}
func (c *memoryCache) Delete(ctx context.Context, key string) error {
	delete(c.strings, key)
	return nil
}

// staticConfig serves fixed settings without a database.
type staticConfig struct {
	values map[string]string
}

func (s *staticConfig) GetValue(ctx context.Context, key string) (string, error) {
	if v, ok := s.values[key]; ok {
		return v, nil
	}
	return "", common.ErrNotFound
}
func (s *staticConfig) GetIntValue(ctx context.Context, key string, fallback int) int {
	return fallback
}
func (s *staticConfig) GetFloatValue(ctx context.Context, key string, fallback float64) float64 {
	if v, ok := s.values[key]; ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
func (s *staticConfig) SetValue(ctx context.Context, key, value string) error { return nil }
func (s *staticConfig) GetAll(ctx context.Context) ([]*models.SystemConfig, error) {
	return nil, nil
}

func TestFallbackFee(t *testing.T) {
	assert.Equal(t, 30000.0, fallbackFee(200))
	assert.Equal(t, 30000.0, fallbackFee(500))
	assert.Equal(t, 35000.0, fallbackFee(501))
	assert.Equal(t, 35000.0, fallbackFee(1000))
	assert.Equal(t, 40000.0, fallbackFee(1500))
}

func TestQuoteFee_FreeAboveThreshold(t *testing.T) {
	cfg := &staticConfig{values: map[string]string{models.ConfigFreeShipThreshold: "500000"}}
	svc := NewShippingService("http://unreachable.invalid", "", "", newMemoryCache(), cfg)

	quote, err := svc.QuoteFee(context.Background(), &FeeRequest{WeightGrams: 800, OrderValue: 600000})

	assert.NoError(t, err)
	assert.True(t, quote.FreeShipping)
	assert.Equal(t, 0.0, quote.Total)
}

func TestQuoteFee_FallbackWhenCarrierDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cfg := &staticConfig{values: map[string]string{}}
	svc := NewShippingService(server.URL, "token", "1", newMemoryCache(), cfg)

	quote, err := svc.QuoteFee(context.Background(), &FeeRequest{
		DistrictID:  1442,
		WardCode:    "21211",
		WeightGrams: 1000,
		OrderValue:  200000,
	})

	assert.NoError(t, err)
	assert.Equal(t, "fallback", quote.Source)
	assert.Equal(t, 35000.0, quote.Total)
}

func TestQuoteFee_UsesCarrierQuote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "token", r.Header.Get("Token"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code":200,"message":"Success","data":{"total":42500}}`))
	}))
	defer server.Close()

	cfg := &staticConfig{values: map[string]string{}}
	svc := NewShippingService(server.URL, "token", "1", newMemoryCache(), cfg)

	quote, err := svc.QuoteFee(context.Background(), &FeeRequest{
		DistrictID:  1442,
		WardCode:    "21211",
		WeightGrams: 1000,
		OrderValue:  200000,
	})

	assert.NoError(t, err)
	assert.Equal(t, "ghn", quote.Source)
	assert.Equal(t, 42500.0, quote.Total)
}

func TestQuoteFee_RejectsNonPositiveWeight(t *testing.T) {
	cfg := &staticConfig{values: map[string]string{}}
	svc := NewShippingService("http://unreachable.invalid", "", "", newMemoryCache(), cfg)

	_, err := svc.QuoteFee(context.Background(), &FeeRequest{WeightGrams: 0})

	var validationErr *common.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestListProvinces_FallbackWhenCarrierDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	svc := NewShippingService(server.URL, "", "", newMemoryCache(), &staticConfig{values: map[string]string{}})

	provinces, err := svc.ListProvinces(context.Background())

	assert.NoError(t, err)
	assert.NotEmpty(t, provinces)
	assert.Equal(t, "Hà Nội", provinces[0].Name)
}

func TestListProvinces_CachesCarrierResponse(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code":200,"message":"Success","data":[{"ProvinceID":201,"ProvinceName":"Hà Nội"},{"ProvinceID":202,"ProvinceName":"Hồ Chí Minh"}]}`))
	}))
	defer server.Close()

	svc := NewShippingService(server.URL, "", "", newMemoryCache(), &staticConfig{values: map[string]string{}})

	first, err := svc.ListProvinces(context.Background())
	assert.NoError(t, err)
	assert.Len(t, first, 2)

	second, err := svc.ListProvinces(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
}
