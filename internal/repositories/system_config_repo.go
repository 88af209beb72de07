package repositories

import (
	"context"

	"giftmart/internal/models"
	"giftmart/pkg/database"
)

type SystemConfigRepository interface {
	Upsert(ctx context.Context, key, value string) error
	Get(ctx context.Context, key string) (*models.SystemConfig, error)
	GetAll(ctx context.Context) ([]*models.SystemConfig, error)
}

type systemConfigRepo struct {
	db database.Querier
}

func NewSystemConfigRepo(db database.Querier) SystemConfigRepository {
	return &systemConfigRepo{db: db}
}

func (r *systemConfigRepo) Upsert(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO system_configs (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`
	_, err := querier(ctx, r.db).Exec(ctx, query, key, value)
	return err
}

func (r *systemConfigRepo) Get(ctx context.Context, key string) (*models.SystemConfig, error) {
	cfg := &models.SystemConfig{}
	query := `
		SELECT key, value, updated_at
		FROM system_configs
		WHERE key = $1
	`
	err := querier(ctx, r.db).QueryRow(ctx, query, key).Scan(&cfg.Key, &cfg.Value, &cfg.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func (r *systemConfigRepo) GetAll(ctx context.Context) ([]*models.SystemConfig, error) {
	query := `
		SELECT key, value, updated_at
		FROM system_configs
		ORDER BY key ASC
	`
	rows, err := querier(ctx, r.db).Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var configs []*models.SystemConfig
	for rows.Next() {
		cfg := &models.SystemConfig{}
		if err := rows.Scan(&cfg.Key, &cfg.Value, &cfg.UpdatedAt); err != nil {
			return nil, err
		}
		configs = append(configs, cfg)
	}
	return configs, rows.Err()
}
