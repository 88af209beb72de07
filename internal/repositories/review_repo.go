package repositories

import (
	"context"

	"github.com/google/uuid"

	"giftmart/internal/models"
	"giftmart/pkg/database"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	ListByProduct(ctx context.Context, sku string, limit, offset int) ([]*models.Review, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type reviewRepo struct {
	db database.Querier
}

func NewReviewRepo(db database.Querier) ReviewRepository {
	return &reviewRepo{db: db}
}

func (r *reviewRepo) Create(ctx context.Context, review *models.Review) error {
	query := `
		INSERT INTO reviews (id, product_sku, author_name, rating, content, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`
	_, err := querier(ctx, r.db).Exec(ctx, query, review.ID, review.ProductSKU, review.AuthorName, review.Rating, review.Content)
	return err
}

func (r *reviewRepo) ListByProduct(ctx context.Context, sku string, limit, offset int) ([]*models.Review, error) {
	query := `
		SELECT id, product_sku, author_name, rating, content, created_at
		FROM reviews
		WHERE product_sku = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := querier(ctx, r.db).Query(ctx, query, sku, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []*models.Review
	for rows.Next() {
		rev := &models.Review{}
		if err := rows.Scan(&rev.ID, &rev.ProductSKU, &rev.AuthorName, &rev.Rating, &rev.Content, &rev.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}

func (r *reviewRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM reviews WHERE id = $1`
	_, err := querier(ctx, r.db).Exec(ctx, query, id)
	return err
}
