package services

import (
	"context"

	"github.com/google/uuid"

	"giftmart/internal/common"
	"giftmart/internal/models"
	"giftmart/internal/repositories"
)

type GalleryServiceInterface interface {
	CreateGallery(ctx context.Context, title string, description *string) (*models.Gallery, error)
	GetGallery(ctx context.Context, id uuid.UUID) (*models.Gallery, error)
	UpdateGallery(ctx context.Context, id uuid.UUID, title string, description *string) (*models.Gallery, error)
	DeleteGallery(ctx context.Context, id uuid.UUID) error
	ListGalleries(ctx context.Context, limit, offset int) ([]*models.Gallery, error)

	AddImage(ctx context.Context, galleryID uuid.UUID, url string, caption *string, sortOrder int) (*models.GalleryImage, error)
	DeleteImage(ctx context.Context, imageID uuid.UUID) error
}

type galleryService struct {
	repo repositories.GalleryRepository
}

func NewGalleryService(repo repositories.GalleryRepository) GalleryServiceInterface {
	return &galleryService{repo: repo}
}

func (s *galleryService) CreateGallery(ctx context.Context, title string, description *string) (*models.Gallery, error) {
	if err := common.ValidateRequiredString(title, "title"); err != nil {
		return nil, common.NewValidationError("%s", err.Error())
	}

	gallery := &models.Gallery{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
	}
	if err := s.repo.Create(ctx, gallery); err != nil {
		return nil, common.TranslateDBError(err, "gallery")
	}
	return gallery, nil
}

// GetGallery returns the gallery with its images attached.
func (s *galleryService) GetGallery(ctx context.Context, id uuid.UUID) (*models.Gallery, error) {
	gallery, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, common.TranslateDBError(err, "gallery")
	}
	images, err := s.repo.ListImages(ctx, id)
	if err != nil {
		return nil, err
	}
	gallery.Images = images
	return gallery, nil
}

func (s *galleryService) UpdateGallery(ctx context.Context, id uuid.UUID, title string, description *string) (*models.Gallery, error) {
	gallery, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, common.TranslateDBError(err, "gallery")
	}
	if title != "" {
		gallery.Title = title
	}
	if description != nil {
		gallery.Description = description
	}
	if err := s.repo.Update(ctx, gallery); err != nil {
		return nil, common.TranslateDBError(err, "gallery")
	}
	return gallery, nil
}

func (s *galleryService) DeleteGallery(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return common.TranslateDBError(err, "gallery")
	}
	return s.repo.Delete(ctx, id)
}

func (s *galleryService) ListGalleries(ctx context.Context, limit, offset int) ([]*models.Gallery, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *galleryService) AddImage(ctx context.Context, galleryID uuid.UUID, url string, caption *string, sortOrder int) (*models.GalleryImage, error) {
	if err := common.ValidateRequiredString(url, "url"); err != nil {
		return nil, common.NewValidationError("%s", err.Error())
	}
	if _, err := s.repo.GetByID(ctx, galleryID); err != nil {
		return nil, common.TranslateDBError(err, "gallery")
	}

	image := &models.GalleryImage{
		ID:        uuid.New(),
		GalleryID: galleryID,
		URL:       url,
		Caption:   caption,
		SortOrder: sortOrder,
	}
	if err := s.repo.AddImage(ctx, image); err != nil {
		return nil, common.TranslateDBError(err, "gallery image")
	}
	return image, nil
}

func (s *galleryService) DeleteImage(ctx context.Context, imageID uuid.UUID) error {
	return s.repo.DeleteImage(ctx, imageID)
}
