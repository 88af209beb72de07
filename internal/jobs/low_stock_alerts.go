package jobs

import (
	"context"
	"log"

	"giftmart/internal/models"
	"giftmart/internal/repositories"
	"giftmart/internal/services"
)

const defaultLowStockThreshold = 5

// LowStockAlertService periodically scans the catalog and mails the admin
// when products fall to or below the configured threshold.
type LowStockAlertService struct {
	productRepo repositories.ProductRepository
	configSvc   services.ConfigServiceInterface
	mailer      services.MailerInterface
}

func NewLowStockAlertService(productRepo repositories.ProductRepository, configSvc services.ConfigServiceInterface, mailer services.MailerInterface) *LowStockAlertService {
	return &LowStockAlertService{
		productRepo: productRepo,
		configSvc:   configSvc,
		mailer:      mailer,
	}
}

// CheckLowStock returns the available products at or below the threshold.
func (a *LowStockAlertService) CheckLowStock(ctx context.Context) ([]*models.Product, error) {
	threshold := a.configSvc.GetIntValue(ctx, models.ConfigLowStockThreshold, defaultLowStockThreshold)

	products, err := a.productRepo.ListLowStock(ctx, threshold)
	if err != nil {
		log.Printf("Failed to list low stock products: %v", err)
		return nil, err
	}
	return products, nil
}

// ScheduledLowStockCheck is the gocron entry point.
func (a *LowStockAlertService) ScheduledLowStockCheck(ctx context.Context) error {
	log.Println("Starting scheduled low stock check")

	products, err := a.CheckLowStock(ctx)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		log.Println("No low stock products found")
		return nil
	}

	log.Printf("Found %d low stock products", len(products))
	for _, p := range products {
		log.Printf("- %s (%s): %d units left", p.Name, p.SKU, p.Quantity)
	}

	if !a.mailer.SendLowStockAlert(ctx, products) {
		log.Println("Low stock alert email could not be delivered")
	}
	return nil
}
