package repositories

import (
	"context"

	"github.com/google/uuid"

	"giftmart/internal/models"
	"giftmart/pkg/database"
)

type ProductImageRepository interface {
	Create(ctx context.Context, image *models.ProductImage) error
	ListByProduct(ctx context.Context, sku string) ([]*models.ProductImage, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type productImageRepo struct {
	db database.Querier
}

func NewProductImageRepo(db database.Querier) ProductImageRepository {
	return &productImageRepo{db: db}
}

func (r *productImageRepo) Create(ctx context.Context, image *models.ProductImage) error {
	query := `
		INSERT INTO product_images (id, product_sku, url, sort_order, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`
	_, err := querier(ctx, r.db).Exec(ctx, query, image.ID, image.ProductSKU, image.URL, image.SortOrder)
	return err
}

func (r *productImageRepo) ListByProduct(ctx context.Context, sku string) ([]*models.ProductImage, error) {
	query := `
		SELECT id, product_sku, url, sort_order, created_at
		FROM product_images
		WHERE product_sku = $1
		ORDER BY sort_order ASC
	`
	rows, err := querier(ctx, r.db).Query(ctx, query, sku)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []*models.ProductImage
	for rows.Next() {
		img := &models.ProductImage{}
		if err := rows.Scan(&img.ID, &img.ProductSKU, &img.URL, &img.SortOrder, &img.CreatedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

func (r *productImageRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM product_images WHERE id = $1`
	_, err := querier(ctx, r.db).Exec(ctx, query, id)
	return err
}
