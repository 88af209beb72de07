package repositories

import (
	"context"
	"fmt"
	"strings"

	"giftmart/internal/models"
	"giftmart/pkg/database"
)

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetBySKU(ctx context.Context, sku string) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	ApplyUpdate(ctx context.Context, sku string, upd *models.ProductUpdate) error
	Delete(ctx context.Context, sku string) error
	List(ctx context.Context, filter *models.ProductSearchFilter) ([]*models.Product, error)
	AdjustStock(ctx context.Context, sku string, delta int) error
	ListLowStock(ctx context.Context, threshold int) ([]*models.Product, error)
}

type productRepo struct {
	db database.Querier
}

func NewProductRepo(db database.Querier) ProductRepository {
	return &productRepo{db: db}
}

const productColumns = `sku, name, category_id, quantity, current_price, original_price, available, description, unit, weight_grams, created_at, updated_at`

func scanProduct(row interface{ Scan(dest ...any) error }) (*models.Product, error) {
	p := &models.Product{}
	err := row.Scan(&p.SKU, &p.Name, &p.CategoryID, &p.Quantity, &p.CurrentPrice, &p.OriginalPrice, &p.Available, &p.Description, &p.Unit, &p.WeightGrams, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *productRepo) Create(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (sku, name, category_id, quantity, current_price, original_price, available, description, unit, weight_grams, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
	`
	_, err := querier(ctx, r.db).Exec(ctx, query, product.SKU, product.Name, product.CategoryID, product.Quantity, product.CurrentPrice, product.OriginalPrice, product.Available, product.Description, product.Unit, product.WeightGrams)
	return err
}

func (r *productRepo) GetBySKU(ctx context.Context, sku string) (*models.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE sku = $1
	`
	return scanProduct(querier(ctx, r.db).QueryRow(ctx, query, sku))
}

func (r *productRepo) Update(ctx context.Context, product *models.Product) error {
	query := `
		UPDATE products
		SET name = $1, category_id = $2, quantity = $3, current_price = $4, original_price = $5, available = $6, description = $7, unit = $8, weight_grams = $9, updated_at = NOW()
		WHERE sku = $10
	`
	_, err := querier(ctx, r.db).Exec(ctx, query, product.Name, product.CategoryID, product.Quantity, product.CurrentPrice, product.OriginalPrice, product.Available, product.Description, product.Unit, product.WeightGrams, product.SKU)
	return err
}

// ApplyUpdate writes only the fields the caller supplied.
func (r *productRepo) ApplyUpdate(ctx context.Context, sku string, upd *models.ProductUpdate) error {
	sets := []string{}
	args := []any{}
	argn := 0

	add := func(column string, value any) {
		argn++
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argn))
		args = append(args, value)
	}

	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.CategoryID != nil {
		add("category_id", *upd.CategoryID)
	}
	if upd.Quantity != nil {
		add("quantity", *upd.Quantity)
	}
	if upd.CurrentPrice != nil {
		add("current_price", *upd.CurrentPrice)
	}
	if upd.OriginalPrice != nil {
		add("original_price", *upd.OriginalPrice)
	}
	if upd.Available != nil {
		add("available", *upd.Available)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.Unit != nil {
		add("unit", *upd.Unit)
	}
	if upd.WeightGrams != nil {
		add("weight_grams", *upd.WeightGrams)
	}
	if len(sets) == 0 {
		return nil
	}

	argn++
	query := fmt.Sprintf(`UPDATE products SET %s, updated_at = NOW() WHERE sku = $%d`, strings.Join(sets, ", "), argn)
	args = append(args, sku)

	_, err := querier(ctx, r.db).Exec(ctx, query, args...)
	return err
}

func (r *productRepo) Delete(ctx context.Context, sku string) error {
	query := `DELETE FROM products WHERE sku = $1`
	_, err := querier(ctx, r.db).Exec(ctx, query, sku)
	return err
}

func (r *productRepo) List(ctx context.Context, filter *models.ProductSearchFilter) ([]*models.Product, error) {
	if filter.Limit == 0 {
		filter.Limit = 50
	}

	queryBase := `
		SELECT ` + productColumns + `
		FROM products
		WHERE 1=1
	`
	args := []any{}
	argn := 0

	if filter.Query != "" {
		argn++
		queryBase += fmt.Sprintf(` AND (name ILIKE $%d OR COALESCE(description, '') ILIKE $%d)`, argn, argn)
		args = append(args, "%"+filter.Query+"%")
	}
	if filter.CategoryID != nil {
		argn++
		queryBase += fmt.Sprintf(` AND category_id = $%d`, argn)
		args = append(args, *filter.CategoryID)
	}
	if filter.MinPrice != nil {
		argn++
		queryBase += fmt.Sprintf(` AND current_price >= $%d`, argn)
		args = append(args, *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		argn++
		queryBase += fmt.Sprintf(` AND current_price <= $%d`, argn)
		args = append(args, *filter.MaxPrice)
	}
	if filter.Available != nil {
		argn++
		queryBase += fmt.Sprintf(` AND available = $%d`, argn)
		args = append(args, *filter.Available)
	}
	if filter.InStockOnly {
		queryBase += ` AND quantity > 0`
	}

	validSortFields := map[string]bool{
		"name": true, "created_at": true, "quantity": true, "current_price": true,
	}
	sortField := "created_at"
	if validSortFields[filter.SortBy] {
		sortField = filter.SortBy
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}
	queryBase += fmt.Sprintf(` ORDER BY %s %s`, sortField, sortOrder)

	argn++
	queryBase += fmt.Sprintf(` LIMIT $%d`, argn)
	args = append(args, filter.Limit)
	argn++
	queryBase += fmt.Sprintf(` OFFSET $%d`, argn)
	args = append(args, filter.Offset)

	rows, err := querier(ctx, r.db).Query(ctx, queryBase, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// AdjustStock applies a signed delta to a product's stock. The quantity
// guard keeps stock non-negative even under interleaved transactions; a
// zero-row result means the decrement would have gone below zero.
func (r *productRepo) AdjustStock(ctx context.Context, sku string, delta int) error {
	query := `
		UPDATE products
		SET quantity = quantity + $2, updated_at = NOW()
		WHERE sku = $1 AND quantity + $2 >= 0
	`
	tag, err := querier(ctx, r.db).Exec(ctx, query, sku, delta)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("stock adjustment for %s rejected: would go negative or product missing", sku)
	}
	return nil
}

func (r *productRepo) ListLowStock(ctx context.Context, threshold int) ([]*models.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE available = TRUE AND quantity <= $1
		ORDER BY quantity ASC
	`
	rows, err := querier(ctx, r.db).Query(ctx, query, threshold)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
