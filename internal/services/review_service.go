package services

import (
	"context"

	"github.com/google/uuid"

	"giftmart/internal/common"
	"giftmart/internal/models"
	"giftmart/internal/repositories"
)

type ReviewServiceInterface interface {
	CreateReview(ctx context.Context, sku, authorName string, rating int, content *string) (*models.Review, error)
	ListReviews(ctx context.Context, sku string, limit, offset int) ([]*models.Review, error)
	DeleteReview(ctx context.Context, id uuid.UUID) error
}

type reviewService struct {
	reviewRepo  repositories.ReviewRepository
	productRepo repositories.ProductRepository
}

func NewReviewService(reviewRepo repositories.ReviewRepository, productRepo repositories.ProductRepository) ReviewServiceInterface {
	return &reviewService{reviewRepo: reviewRepo, productRepo: productRepo}
}

func (s *reviewService) CreateReview(ctx context.Context, sku, authorName string, rating int, content *string) (*models.Review, error) {
	if err := common.ValidateRequiredString(authorName, "author_name"); err != nil {
		return nil, common.NewValidationError("%s", err.Error())
	}
	if err := common.ValidateRating(rating); err != nil {
		return nil, common.NewValidationError("%s", err.Error())
	}
	if _, err := s.productRepo.GetBySKU(ctx, sku); err != nil {
		return nil, common.TranslateDBError(err, "product")
	}

	review := &models.Review{
		ID:         uuid.New(),
		ProductSKU: sku,
		AuthorName: authorName,
		Rating:     rating,
		Content:    content,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, common.TranslateDBError(err, "review")
	}
	return review, nil
}

func (s *reviewService) ListReviews(ctx context.Context, sku string, limit, offset int) ([]*models.Review, error) {
	if _, err := s.productRepo.GetBySKU(ctx, sku); err != nil {
		return nil, common.TranslateDBError(err, "product")
	}
	return s.reviewRepo.ListByProduct(ctx, sku, limit, offset)
}

func (s *reviewService) DeleteReview(ctx context.Context, id uuid.UUID) error {
	return s.reviewRepo.Delete(ctx, id)
}
