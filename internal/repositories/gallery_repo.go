package repositories

import (
	"context"

	"github.com/google/uuid"

	"giftmart/internal/models"
	"giftmart/pkg/database"
)

type GalleryRepository interface {
	Create(ctx context.Context, gallery *models.Gallery) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Gallery, error)
	Update(ctx context.Context, gallery *models.Gallery) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Gallery, error)

	AddImage(ctx context.Context, image *models.GalleryImage) error
	ListImages(ctx context.Context, galleryID uuid.UUID) ([]*models.GalleryImage, error)
	DeleteImage(ctx context.Context, id uuid.UUID) error
}

type galleryRepo struct {
	db database.Querier
}

func NewGalleryRepo(db database.Querier) GalleryRepository {
	return &galleryRepo{db: db}
}

func (r *galleryRepo) Create(ctx context.Context, gallery *models.Gallery) error {
	query := `
		INSERT INTO galleries (id, title, description, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
	`
	_, err := querier(ctx, r.db).Exec(ctx, query, gallery.ID, gallery.Title, gallery.Description)
	return err
}

func (r *galleryRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Gallery, error) {
	g := &models.Gallery{}
	query := `
		SELECT id, title, description, created_at, updated_at
		FROM galleries
		WHERE id = $1
	`
	err := querier(ctx, r.db).QueryRow(ctx, query, id).Scan(&g.ID, &g.Title, &g.Description, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (r *galleryRepo) Update(ctx context.Context, gallery *models.Gallery) error {
	query := `
		UPDATE galleries
		SET title = $1, description = $2, updated_at = NOW()
		WHERE id = $3
	`
	_, err := querier(ctx, r.db).Exec(ctx, query, gallery.Title, gallery.Description, gallery.ID)
	return err
}

func (r *galleryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM galleries WHERE id = $1`
	_, err := querier(ctx, r.db).Exec(ctx, query, id)
	return err
}

func (r *galleryRepo) List(ctx context.Context, limit, offset int) ([]*models.Gallery, error) {
	query := `
		SELECT id, title, description, created_at, updated_at
		FROM galleries
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := querier(ctx, r.db).Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var galleries []*models.Gallery
	for rows.Next() {
		g := &models.Gallery{}
		if err := rows.Scan(&g.ID, &g.Title, &g.Description, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		galleries = append(galleries, g)
	}
	return galleries, rows.Err()
}

func (r *galleryRepo) AddImage(ctx context.Context, image *models.GalleryImage) error {
	query := `
		INSERT INTO gallery_images (id, gallery_id, url, caption, sort_order, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`
	_, err := querier(ctx, r.db).Exec(ctx, query, image.ID, image.GalleryID, image.URL, image.Caption, image.SortOrder)
	return err
}

func (r *galleryRepo) ListImages(ctx context.Context, galleryID uuid.UUID) ([]*models.GalleryImage, error) {
	query := `
		SELECT id, gallery_id, url, caption, sort_order, created_at
		FROM gallery_images
		WHERE gallery_id = $1
		ORDER BY sort_order ASC
	`
	rows, err := querier(ctx, r.db).Query(ctx, query, galleryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []*models.GalleryImage
	for rows.Next() {
		img := &models.GalleryImage{}
		if err := rows.Scan(&img.ID, &img.GalleryID, &img.URL, &img.Caption, &img.SortOrder, &img.CreatedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

func (r *galleryRepo) DeleteImage(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM gallery_images WHERE id = $1`
	_, err := querier(ctx, r.db).Exec(ctx, query, id)
	return err
}
