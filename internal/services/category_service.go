package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/gommon/random"

	"giftmart/internal/common"
	"giftmart/internal/models"
	"giftmart/internal/repositories"
)

type CategoryServiceInterface interface {
	CreateCategory(ctx context.Context, name string, slug *string, description *string) (*models.Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, name string, slug *string, description *string) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	ListCategories(ctx context.Context) ([]*models.Category, error)
}

type categoryService struct {
	repo repositories.CategoryRepository
}

func NewCategoryService(repo repositories.CategoryRepository) CategoryServiceInterface {
	return &categoryService{repo: repo}
}

func (s *categoryService) CreateCategory(ctx context.Context, name string, slug *string, description *string) (*models.Category, error) {
	if err := common.ValidateRequiredString(name, "name"); err != nil {
		return nil, common.NewValidationError("%s", err.Error())
	}

	category := &models.Category{
		ID:          uuid.New(),
		Name:        name,
		Slug:        resolveSlug(name, slug),
		Description: description,
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, common.TranslateDBError(err, "category")
	}
	return category, nil
}

func (s *categoryService) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, common.TranslateDBError(err, "category")
	}
	return category, nil
}

func (s *categoryService) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	category, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, common.TranslateDBError(err, "category")
	}
	return category, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, id uuid.UUID, name string, slug *string, description *string) (*models.Category, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, common.TranslateDBError(err, "category")
	}
	if name != "" {
		category.Name = name
	}
	if slug != nil && *slug != "" {
		category.Slug = Slugify(*slug)
	}
	if description != nil {
		category.Description = description
	}
	if err := s.repo.Update(ctx, category); err != nil {
		return nil, common.TranslateDBError(err, "category")
	}
	return category, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return common.TranslateDBError(err, "category")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return common.TranslateDBError(err, "category")
	}
	return nil
}

func (s *categoryService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	return s.repo.List(ctx)
}

func resolveSlug(name string, slug *string) string {
	if slug != nil && *slug != "" {
		return Slugify(*slug)
	}
	return Slugify(name)
}

// Slugify lowercases a title into a URL-safe slug. Titles that reduce to
// nothing (all-diacritic names) get a random tag instead.
func Slugify(s string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return strings.ToLower(random.String(8))
	}
	return slug
}
