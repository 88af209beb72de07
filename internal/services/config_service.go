package services

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"

	"giftmart/internal/caching"
	"giftmart/internal/common"
	"giftmart/internal/models"
	"giftmart/internal/repositories"
)

const configCacheTTL = 5 * time.Minute

// ConfigServiceInterface exposes the store-wide key-value settings
// (admin email, hotline, free-ship threshold and so on).
type ConfigServiceInterface interface {
	GetValue(ctx context.Context, key string) (string, error)
	GetIntValue(ctx context.Context, key string, fallback int) int
	GetFloatValue(ctx context.Context, key string, fallback float64) float64
	SetValue(ctx context.Context, key, value string) error
	GetAll(ctx context.Context) ([]*models.SystemConfig, error)
}

type configService struct {
	repo  repositories.SystemConfigRepository
	cache caching.CacheService
}

func NewConfigService(repo repositories.SystemConfigRepository, cache caching.CacheService) ConfigServiceInterface {
	return &configService{repo: repo, cache: cache}
}

func (s *configService) GetValue(ctx context.Context, key string) (string, error) {
	value, hit, err := s.cache.GetConfigValue(ctx, key)
	if err != nil {
		log.Printf("WARN: config cache read failed for %s: %v", key, err)
	}
	if hit {
		return value, nil
	}

	cfg, err := s.repo.Get(ctx, key)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", common.ErrNotFound
		}
		return "", err
	}

	if err := s.cache.SetConfigValue(ctx, key, cfg.Value, configCacheTTL); err != nil {
		log.Printf("WARN: config cache write failed for %s: %v", key, err)
	}
	return cfg.Value, nil
}

// GetIntValue reads a numeric setting, falling back when the key is missing
// or holds a non-numeric value.
func (s *configService) GetIntValue(ctx context.Context, key string, fallback int) int {
	raw, err := s.GetValue(ctx, key)
	if err != nil {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("WARN: config %s holds non-integer value %q, using fallback %d", key, raw, fallback)
		return fallback
	}
	return n
}

func (s *configService) GetFloatValue(ctx context.Context, key string, fallback float64) float64 {
	raw, err := s.GetValue(ctx, key)
	if err != nil {
		return fallback
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("WARN: config %s holds non-numeric value %q, using fallback %v", key, raw, fallback)
		return fallback
	}
	return f
}

func (s *configService) SetValue(ctx context.Context, key, value string) error {
	if err := common.ValidateRequiredString(key, "key"); err != nil {
		return common.NewValidationError("%s", err.Error())
	}
	if err := s.repo.Upsert(ctx, key, value); err != nil {
		return err
	}
	if err := s.cache.DeleteConfigValue(ctx, key); err != nil {
		log.Printf("WARN: config cache invalidation failed for %s: %v", key, err)
	}
	return nil
}

func (s *configService) GetAll(ctx context.Context) ([]*models.SystemConfig, error) {
	return s.repo.GetAll(ctx)
}
