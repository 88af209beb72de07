package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"giftmart/internal/models"
)

type CacheService interface {
	// Product caching (keyed by SKU)
	GetProduct(ctx context.Context, sku string) (*models.Product, error)
	SetProduct(ctx context.Context, product *models.Product, ttl time.Duration) error
	DeleteProduct(ctx context.Context, sku string) error

	// System config caching
	GetConfigValue(ctx context.Context, key string) (string, bool, error)
	SetConfigValue(ctx context.Context, key, value string, ttl time.Duration) error
	DeleteConfigValue(ctx context.Context, key string) error

	// Generic string operations (shipping reference data, rate tables)
	SetString(ctx context.Context, key string, value string, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, addr)
	}

	return &redisCacheService{client: client}
}

func (r *redisCacheService) GetProduct(ctx context.Context, sku string) (*models.Product, error) {
	key := fmt.Sprintf("giftmart:product:%s", sku)
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var product models.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *redisCacheService) SetProduct(ctx context.Context, product *models.Product, ttl time.Duration) error {
	key := fmt.Sprintf("giftmart:product:%s", product.SKU)
	data, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) DeleteProduct(ctx context.Context, sku string) error {
	key := fmt.Sprintf("giftmart:product:%s", sku)
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) GetConfigValue(ctx context.Context, key string) (string, bool, error) {
	cacheKey := fmt.Sprintf("giftmart:config:%s", key)
	val, err := r.client.Get(ctx, cacheKey).Result()
	if err != nil {
		if err == redis.Nil {
			return "", false, nil // cache miss
		}
		return "", false, err
	}
	return val, true, nil
}

func (r *redisCacheService) SetConfigValue(ctx context.Context, key, value string, ttl time.Duration) error {
	cacheKey := fmt.Sprintf("giftmart:config:%s", key)
	return r.client.Set(ctx, cacheKey, value, ttl).Err()
}

func (r *redisCacheService) DeleteConfigValue(ctx context.Context, key string) error {
	cacheKey := fmt.Sprintf("giftmart:config:%s", key)
	return r.client.Del(ctx, cacheKey).Err()
}

func (r *redisCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisCacheService) GetString(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil // cache miss
		}
		return "", err
	}
	return val, nil
}

func (r *redisCacheService) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}
