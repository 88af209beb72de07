package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"

	"giftmart/internal/caching"
	"giftmart/internal/handlers"
	"giftmart/internal/jobs"
	"giftmart/internal/jobs/background"
	"giftmart/internal/middleware"
	"giftmart/internal/repositories"
	"giftmart/internal/services"
	"giftmart/pkg/database"
)

const version = "1.0.0"

func main() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = random.String(32)
		log.Printf("WARNING: JWT_SECRET not set, using a generated secret; tokens will not survive restarts")
	}

	// Redis configuration
	redisAddr := envOr("REDIS_ADDR", "localhost:6379")
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	// MinIO configuration
	minioEndpoint := envOr("MINIO_ENDPOINT", "localhost:9000")
	minioAccessKey := envOr("MINIO_ACCESS_KEY", "minioadmin")
	minioSecretKey := envOr("MINIO_SECRET_KEY", "minioadmin")
	minioBucket := envOr("MINIO_BUCKET", "giftmart-media")
	minioUseSSL := os.Getenv("MINIO_USE_SSL") == "true"

	storageSvc, err := services.NewMinioStorage(minioEndpoint, minioAccessKey, minioSecretKey, minioBucket, minioUseSSL)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}
	if err := storageSvc.EnsureBucketExists(context.Background()); err != nil {
		log.Printf("WARNING: could not ensure bucket %s exists: %v", minioBucket, err)
	}

	// Repositories
	productRepo := repositories.NewProductRepo(pool)
	productImageRepo := repositories.NewProductImageRepo(pool)
	categoryRepo := repositories.NewCategoryRepo(pool)
	orderRepo := repositories.NewOrderRepo(pool)
	orderItemRepo := repositories.NewOrderItemRepo(pool)
	accountRepo := repositories.NewAccountRepo(pool)
	reviewRepo := repositories.NewReviewRepo(pool)
	newsRepo := repositories.NewNewsRepo(pool)
	galleryRepo := repositories.NewGalleryRepo(pool)
	configRepo := repositories.NewSystemConfigRepo(pool)
	roleRepo := repositories.NewRoleRepo(pool)

	txManager := database.NewTxManager(pool)

	// Services
	configSvc := services.NewConfigService(configRepo, cacheSvc)
	mailer := services.NewSMTPMailer(services.SMTPConfig{
		Host:       os.Getenv("SMTP_HOST"),
		Port:       envOr("SMTP_PORT", "587"),
		Username:   os.Getenv("SMTP_USERNAME"),
		Password:   os.Getenv("SMTP_PASSWORD"),
		From:       envOr("SMTP_FROM", "no-reply@giftmart.local"),
		AdminEmail: os.Getenv("ADMIN_EMAIL"),
	}, configSvc)

	productSvc := services.NewProductService(productRepo, productImageRepo, cacheSvc)
	categorySvc := services.NewCategoryService(categoryRepo)
	orderSvc := services.NewOrderService(orderRepo, orderItemRepo, productRepo, accountRepo, txManager, cacheSvc, mailer)
	accountSvc := services.NewAccountService(accountRepo, jwtSecret, 24*time.Hour)
	reviewSvc := services.NewReviewService(reviewRepo, productRepo)
	newsSvc := services.NewNewsService(newsRepo)
	gallerySvc := services.NewGalleryService(galleryRepo)
	shippingSvc := services.NewShippingService(
		envOr("GHN_BASE_URL", "https://online-gateway.ghn.vn/shiip/public-api"),
		os.Getenv("GHN_TOKEN"),
		os.Getenv("GHN_SHOP_ID"),
		cacheSvc,
		configSvc,
	)

	// Handlers
	orderHandlers := handlers.NewOrderHandlers(orderSvc)
	productHandlers := handlers.NewProductHandlers(productSvc)
	categoryHandlers := handlers.NewCategoryHandlers(categorySvc)
	accountHandlers := handlers.NewAccountHandlers(accountSvc, roleRepo)
	reviewHandlers := handlers.NewReviewHandlers(reviewSvc)
	newsHandlers := handlers.NewNewsHandlers(newsSvc)
	galleryHandlers := handlers.NewGalleryHandlers(gallerySvc)
	configHandlers := handlers.NewConfigHandlers(configSvc)
	shippingHandlers := handlers.NewShippingHandlers(shippingSvc)
	uploadHandlers := handlers.NewUploadHandlers(storageSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, version)

	// Background jobs
	lowStockSvc := jobs.NewLowStockAlertService(productRepo, configSvc, mailer)
	scheduler, err := background.NewJobScheduler(lowStockSvc, shippingSvc)
	if err != nil {
		log.Fatalf("Failed to create job scheduler: %v", err)
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Printf("Failed to stop job scheduler: %v", err)
		}
	}()

	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/live", healthHandlers.LivenessCheck)

	api := e.Group("/api")

	// Authentication
	api.POST("/auth/signup", accountHandlers.Signup)
	api.POST("/auth/login", accountHandlers.Login)

	// Storefront routes (public)
	api.GET("/products", productHandlers.ListProducts)
	api.GET("/products/:sku", productHandlers.GetProduct)
	api.GET("/products/:sku/reviews", reviewHandlers.ListReviews)
	api.POST("/products/:sku/reviews", reviewHandlers.CreateReview)
	api.GET("/categories", categoryHandlers.ListCategories)
	api.GET("/categories/:id", categoryHandlers.GetCategory)
	api.GET("/news", newsHandlers.ListNews)
	api.GET("/news/:id", newsHandlers.GetNews)
	api.GET("/galleries", galleryHandlers.ListGalleries)
	api.GET("/galleries/:id", galleryHandlers.GetGallery)
	api.GET("/shipping/provinces", shippingHandlers.ListProvinces)
	api.GET("/shipping/districts", shippingHandlers.ListDistricts)
	api.GET("/shipping/wards", shippingHandlers.ListWards)
	api.POST("/shipping/fee", shippingHandlers.QuoteFee)

	// Checkout (public: guest orders are allowed)
	api.POST("/orders", orderHandlers.CreateOrder)
	api.GET("/orders/:id", orderHandlers.GetOrder)

	// Back-office routes (JWT required)
	admin := api.Group("", echojwt.WithConfig(middleware.JWTConfig(jwtSecret)))

	admin.GET("/orders", orderHandlers.ListOrders)
	admin.GET("/orders/stats", orderHandlers.OrderStats)
	admin.PUT("/orders/:id", orderHandlers.UpdateOrder)
	admin.PATCH("/orders/:id/status", orderHandlers.UpdateOrderStatus)
	admin.DELETE("/orders/:id", orderHandlers.DeleteOrder)
	admin.PUT("/order-items/:id", orderHandlers.UpdateOrderItem)
	admin.DELETE("/order-items/:id", orderHandlers.DeleteOrderItem)

	admin.POST("/products", productHandlers.CreateProduct)
	admin.PUT("/products/:sku", productHandlers.UpdateProduct)
	admin.PATCH("/products/:sku/availability", productHandlers.SetAvailability)
	admin.DELETE("/products/:sku", productHandlers.DeleteProduct)
	admin.POST("/products/:sku/images", productHandlers.AddProductImage)
	admin.DELETE("/product-images/:id", productHandlers.DeleteProductImage)

	admin.POST("/categories", categoryHandlers.CreateCategory)
	admin.PUT("/categories/:id", categoryHandlers.UpdateCategory)
	admin.DELETE("/categories/:id", categoryHandlers.DeleteCategory)

	admin.GET("/roles", accountHandlers.ListRoles)
	admin.GET("/accounts", accountHandlers.ListAccounts)
	admin.GET("/accounts/:id", accountHandlers.GetAccount)
	admin.PUT("/accounts/:id", accountHandlers.UpdateAccount)
	admin.DELETE("/accounts/:id", accountHandlers.DeleteAccount)

	admin.DELETE("/reviews/:id", reviewHandlers.DeleteReview)

	admin.POST("/news", newsHandlers.CreateNews)
	admin.PUT("/news/:id", newsHandlers.UpdateNews)
	admin.DELETE("/news/:id", newsHandlers.DeleteNews)

	admin.POST("/galleries", galleryHandlers.CreateGallery)
	admin.PUT("/galleries/:id", galleryHandlers.UpdateGallery)
	admin.DELETE("/galleries/:id", galleryHandlers.DeleteGallery)
	admin.POST("/galleries/:id/images", galleryHandlers.AddGalleryImage)
	admin.DELETE("/gallery-images/:id", galleryHandlers.DeleteGalleryImage)

	admin.GET("/configs", configHandlers.ListConfigs)
	admin.GET("/configs/:key", configHandlers.GetConfig)
	admin.PUT("/configs/:key", configHandlers.SetConfig)

	admin.POST("/uploads", uploadHandlers.UploadImage)
	admin.DELETE("/uploads", uploadHandlers.DeleteImage)

	portStr := envOr("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatalf("Invalid port %s: %v", portStr, err)
	}

	log.Printf("Giftmart server v%s starting on port %d", version, port)
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", port)))
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
