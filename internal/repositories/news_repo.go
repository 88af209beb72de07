package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"giftmart/internal/models"
	"giftmart/pkg/database"
)

type NewsRepository interface {
	Create(ctx context.Context, news *models.News) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.News, error)
	GetBySlug(ctx context.Context, slug string) (*models.News, error)
	ApplyUpdate(ctx context.Context, id uuid.UUID, upd *models.NewsUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, publishedOnly bool, limit, offset int) ([]*models.News, error)
}

type newsRepo struct {
	db database.Querier
}

func NewNewsRepo(db database.Querier) NewsRepository {
	return &newsRepo{db: db}
}

const newsColumns = `id, title, slug, summary, content, cover_url, published, created_at, updated_at`

func scanNews(row interface{ Scan(dest ...any) error }) (*models.News, error) {
	n := &models.News{}
	err := row.Scan(&n.ID, &n.Title, &n.Slug, &n.Summary, &n.Content, &n.CoverURL, &n.Published, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (r *newsRepo) Create(ctx context.Context, news *models.News) error {
	query := `
		INSERT INTO news (id, title, slug, summary, content, cover_url, published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err := querier(ctx, r.db).Exec(ctx, query, news.ID, news.Title, news.Slug, news.Summary, news.Content, news.CoverURL, news.Published)
	return err
}

func (r *newsRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.News, error) {
	query := `
		SELECT ` + newsColumns + `
		FROM news
		WHERE id = $1
	`
	return scanNews(querier(ctx, r.db).QueryRow(ctx, query, id))
}

func (r *newsRepo) GetBySlug(ctx context.Context, slug string) (*models.News, error) {
	query := `
		SELECT ` + newsColumns + `
		FROM news
		WHERE slug = $1
	`
	return scanNews(querier(ctx, r.db).QueryRow(ctx, query, slug))
}

func (r *newsRepo) ApplyUpdate(ctx context.Context, id uuid.UUID, upd *models.NewsUpdate) error {
	sets := []string{}
	args := []any{}
	argn := 0

	add := func(column string, value any) {
		argn++
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argn))
		args = append(args, value)
	}

	if upd.Title != nil {
		add("title", *upd.Title)
	}
	if upd.Slug != nil {
		add("slug", *upd.Slug)
	}
	if upd.Summary != nil {
		add("summary", *upd.Summary)
	}
	if upd.Content != nil {
		add("content", *upd.Content)
	}
	if upd.CoverURL != nil {
		add("cover_url", *upd.CoverURL)
	}
	if upd.Published != nil {
		add("published", *upd.Published)
	}
	if len(sets) == 0 {
		return nil
	}

	argn++
	query := fmt.Sprintf(`UPDATE news SET %s, updated_at = NOW() WHERE id = $%d`, strings.Join(sets, ", "), argn)
	args = append(args, id)

	_, err := querier(ctx, r.db).Exec(ctx, query, args...)
	return err
}

func (r *newsRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM news WHERE id = $1`
	_, err := querier(ctx, r.db).Exec(ctx, query, id)
	return err
}

func (r *newsRepo) List(ctx context.Context, publishedOnly bool, limit, offset int) ([]*models.News, error) {
	query := `
		SELECT ` + newsColumns + `
		FROM news
	`
	if publishedOnly {
		query += ` WHERE published = TRUE`
	}
	query += `
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := querier(ctx, r.db).Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []*models.News
	for rows.Next() {
		n, err := scanNews(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, n)
	}
	return articles, rows.Err()
}
