package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"giftmart/internal/caching"
	"giftmart/internal/common"
	"giftmart/internal/models"
	"giftmart/internal/repositories"
)

const productCacheTTL = 10 * time.Minute

type ProductServiceInterface interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProduct(ctx context.Context, sku string) (*models.Product, error)
	UpdateProduct(ctx context.Context, sku string, upd *models.ProductUpdate) (*models.Product, error)
	DeleteProduct(ctx context.Context, sku string) error
	ListProducts(ctx context.Context, filter *models.ProductSearchFilter) ([]*models.Product, error)
	SetAvailability(ctx context.Context, sku string, available bool) (*models.Product, error)

	AddImage(ctx context.Context, sku string, url string, sortOrder int) (*models.ProductImage, error)
	DeleteImage(ctx context.Context, imageID uuid.UUID) error
}

type productService struct {
	productRepo repositories.ProductRepository
	imageRepo   repositories.ProductImageRepository
	cache       caching.CacheService
}

func NewProductService(productRepo repositories.ProductRepository, imageRepo repositories.ProductImageRepository, cache caching.CacheService) ProductServiceInterface {
	return &productService{productRepo: productRepo, imageRepo: imageRepo, cache: cache}
}

func (s *productService) CreateProduct(ctx context.Context, product *models.Product) error {
	if err := common.ValidateRequiredString(product.SKU, "sku"); err != nil {
		return common.NewValidationError("%s", err.Error())
	}
	if err := common.ValidateRequiredString(product.Name, "name"); err != nil {
		return common.NewValidationError("%s", err.Error())
	}
	if product.CurrentPrice <= 0 {
		return common.NewValidationError("current_price must be positive")
	}
	if product.Quantity < 0 {
		return common.NewValidationError("quantity cannot be negative")
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return common.TranslateDBError(err, "product")
	}
	return nil
}

// GetProduct serves reads cache-first. A cache failure degrades to the
// database rather than failing the request.
func (s *productService) GetProduct(ctx context.Context, sku string) (*models.Product, error) {
	cached, err := s.cache.GetProduct(ctx, sku)
	if err != nil {
		log.Printf("WARN: product cache read failed for %s: %v", sku, err)
	}
	if cached != nil {
		return cached, nil
	}

	product, err := s.productRepo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, common.TranslateDBError(err, "product")
	}

	images, err := s.imageRepo.ListByProduct(ctx, sku)
	if err != nil {
		return nil, err
	}
	product.Images = images

	if err := s.cache.SetProduct(ctx, product, productCacheTTL); err != nil {
		log.Printf("WARN: product cache write failed for %s: %v", sku, err)
	}
	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, sku string, upd *models.ProductUpdate) (*models.Product, error) {
	if upd.CurrentPrice != nil && *upd.CurrentPrice <= 0 {
		return nil, common.NewValidationError("current_price must be positive")
	}
	if upd.Quantity != nil && *upd.Quantity < 0 {
		return nil, common.NewValidationError("quantity cannot be negative")
	}

	if _, err := s.productRepo.GetBySKU(ctx, sku); err != nil {
		return nil, common.TranslateDBError(err, "product")
	}
	if err := s.productRepo.ApplyUpdate(ctx, sku, upd); err != nil {
		return nil, common.TranslateDBError(err, "product")
	}
	s.invalidate(ctx, sku)

	return s.GetProduct(ctx, sku)
}

func (s *productService) DeleteProduct(ctx context.Context, sku string) error {
	if _, err := s.productRepo.GetBySKU(ctx, sku); err != nil {
		return common.TranslateDBError(err, "product")
	}
	if err := s.productRepo.Delete(ctx, sku); err != nil {
		return common.TranslateDBError(err, "product")
	}
	s.invalidate(ctx, sku)
	return nil
}

func (s *productService) ListProducts(ctx context.Context, filter *models.ProductSearchFilter) ([]*models.Product, error) {
	return s.productRepo.List(ctx, filter)
}

func (s *productService) SetAvailability(ctx context.Context, sku string, available bool) (*models.Product, error) {
	return s.UpdateProduct(ctx, sku, &models.ProductUpdate{Available: &available})
}

func (s *productService) AddImage(ctx context.Context, sku string, url string, sortOrder int) (*models.ProductImage, error) {
	if err := common.ValidateRequiredString(url, "url"); err != nil {
		return nil, common.NewValidationError("%s", err.Error())
	}
	if _, err := s.productRepo.GetBySKU(ctx, sku); err != nil {
		return nil, common.TranslateDBError(err, "product")
	}

	image := &models.ProductImage{
		ID:         uuid.New(),
		ProductSKU: sku,
		URL:        url,
		SortOrder:  sortOrder,
	}
	if err := s.imageRepo.Create(ctx, image); err != nil {
		return nil, common.TranslateDBError(err, "product image")
	}
	s.invalidate(ctx, sku)
	return image, nil
}

func (s *productService) DeleteImage(ctx context.Context, imageID uuid.UUID) error {
	return s.imageRepo.Delete(ctx, imageID)
}

func (s *productService) invalidate(ctx context.Context, sku string) {
	if err := s.cache.DeleteProduct(ctx, sku); err != nil {
		log.Printf("WARN: product cache invalidation failed for %s: %v", sku, err)
	}
}
