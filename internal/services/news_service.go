package services

import (
	"context"

	"github.com/google/uuid"

	"giftmart/internal/common"
	"giftmart/internal/models"
	"giftmart/internal/repositories"
)

type NewsServiceInterface interface {
	CreateNews(ctx context.Context, title string, slug *string, summary *string, content string, coverURL *string, published bool) (*models.News, error)
	GetNews(ctx context.Context, id uuid.UUID) (*models.News, error)
	GetNewsBySlug(ctx context.Context, slug string) (*models.News, error)
	UpdateNews(ctx context.Context, id uuid.UUID, upd *models.NewsUpdate) (*models.News, error)
	DeleteNews(ctx context.Context, id uuid.UUID) error
	ListNews(ctx context.Context, publishedOnly bool, limit, offset int) ([]*models.News, error)
}

type newsService struct {
	repo repositories.NewsRepository
}

func NewNewsService(repo repositories.NewsRepository) NewsServiceInterface {
	return &newsService{repo: repo}
}

func (s *newsService) CreateNews(ctx context.Context, title string, slug *string, summary *string, content string, coverURL *string, published bool) (*models.News, error) {
	if err := common.ValidateRequiredString(title, "title"); err != nil {
		return nil, common.NewValidationError("%s", err.Error())
	}
	if err := common.ValidateRequiredString(content, "content"); err != nil {
		return nil, common.NewValidationError("%s", err.Error())
	}

	news := &models.News{
		ID:        uuid.New(),
		Title:     title,
		Slug:      resolveSlug(title, slug),
		Summary:   summary,
		Content:   content,
		CoverURL:  coverURL,
		Published: published,
	}
	if err := s.repo.Create(ctx, news); err != nil {
		return nil, common.TranslateDBError(err, "news article")
	}
	return news, nil
}

func (s *newsService) GetNews(ctx context.Context, id uuid.UUID) (*models.News, error) {
	news, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, common.TranslateDBError(err, "news article")
	}
	return news, nil
}

func (s *newsService) GetNewsBySlug(ctx context.Context, slug string) (*models.News, error) {
	news, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, common.TranslateDBError(err, "news article")
	}
	return news, nil
}

func (s *newsService) UpdateNews(ctx context.Context, id uuid.UUID, upd *models.NewsUpdate) (*models.News, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, common.TranslateDBError(err, "news article")
	}
	if upd.Slug != nil {
		normalized := Slugify(*upd.Slug)
		upd.Slug = &normalized
	}
	if err := s.repo.ApplyUpdate(ctx, id, upd); err != nil {
		return nil, common.TranslateDBError(err, "news article")
	}
	return s.GetNews(ctx, id)
}

func (s *newsService) DeleteNews(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return common.TranslateDBError(err, "news article")
	}
	return s.repo.Delete(ctx, id)
}

func (s *newsService) ListNews(ctx context.Context, publishedOnly bool, limit, offset int) ([]*models.News, error) {
	return s.repo.List(ctx, publishedOnly, limit, offset)
}
