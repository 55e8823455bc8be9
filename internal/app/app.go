// Package app assembles the reference REST backend.
package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"backoffice/internal/config"
	"backoffice/internal/handlers"
	"backoffice/internal/models"
	"backoffice/internal/repositories"
	"backoffice/internal/services"
	"backoffice/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenDatabase connects to the configured database and migrates the schema.
func OpenDatabase(cfg config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DatabaseDriver {
	case "postgres":
		dialector = postgres.Open(cfg.DatabaseDSN)
	case "mysql":
		dialector = mysql.Open(cfg.DatabaseDSN)
	default:
		dialector = sqlite.Open(cfg.DatabaseDSN)
	}
	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.Category{}, &models.Order{}); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}
	return db, nil
}

// Deps are the collaborators of the HTTP app.
type Deps struct {
	Products   repositories.ProductRepository
	Categories repositories.CategoryRepository
	Orders     repositories.OrderRepository
	Images     storage.Storage
	// Events may be nil.
	Events services.EventPublisher
	// UploadDir is served under UploadURLPrefix when both are set.
	UploadDir       string
	UploadURLPrefix string
	// RequestLog enables the request logger middleware.
	RequestLog bool
}

// OpenStorage returns the image store selected by cfg.StorageDriver.
func OpenStorage(ctx context.Context, cfg config.Config) (storage.Storage, error) {
	if cfg.StorageDriver == "s3" {
		s, err := storage.NewS3(ctx, storage.S3Config{
			Region:        cfg.S3Region,
			Bucket:        cfg.S3Bucket,
			Prefix:        cfg.S3Prefix,
			PublicBaseURL: cfg.S3PublicURL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to configure S3 storage: %w", err)
		}
		return s, nil
	}
	return storage.NewLocal(cfg.UploadDir, cfg.UploadURLPrefix), nil
}

// GORMDeps builds Deps backed by db and the given image store. Local uploads
// are served by the app itself.
func GORMDeps(db *gorm.DB, cfg config.Config, images storage.Storage, events services.EventPublisher) Deps {
	deps := Deps{
		Products:   repositories.NewGORMProductRepository(db),
		Categories: repositories.NewGORMCategoryRepository(db),
		Orders:     repositories.NewGORMOrderRepository(db),
		Images:     images,
		Events:     events,
		RequestLog: true,
	}
	if _, ok := images.(*storage.Local); ok {
		deps.UploadDir = cfg.UploadDir
		deps.UploadURLPrefix = cfg.UploadURLPrefix
	}
	return deps
}

// NewApp wires services and handlers into a fiber app serving /api.
func NewApp(deps Deps) *fiber.App {
	productService := services.NewProductService(deps.Products, deps.Events)
	categoryService := services.NewCategoryService(deps.Categories, deps.Products, deps.Events)
	orderService := services.NewOrderService(deps.Orders, deps.Events)

	productHandler := handlers.NewProductHandler(productService, deps.Images)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	orderHandler := handlers.NewOrderHandler(orderService)

	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024,
	})
	if deps.RequestLog {
		app.Use(logger.New())
	}

	api := app.Group("/api")
	productHandler.RegisterRoutes(api)
	categoryHandler.RegisterRoutes(api)
	orderHandler.RegisterRoutes(api)

	if deps.UploadDir != "" && deps.UploadURLPrefix != "" {
		app.Static(deps.UploadURLPrefix, deps.UploadDir)
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
			"events": deps.Events != nil,
		})
	})

	return app
}

// Seed fills empty repositories with a small demo catalog.
func Seed(products repositories.ProductRepository, categories repositories.CategoryRepository) {
	existing, err := categories.GetAll()
	if err != nil || len(existing) > 0 {
		return
	}
	for _, c := range []models.Category{
		{Name: "Electronics", Description: "Electronic devices and accessories"},
		{Name: "Clothing", Description: "Fashion and apparel"},
		{Name: "Books", Description: "Books and publications"},
	} {
		if err := categories.Create(&c); err != nil {
			log.Printf("Error seeding category %s: %v", c.Name, err)
		}
	}
	for _, p := range []models.Product{
		{Name: "iPhone 13 Pro", Category: "Electronics", Price: 999, Stock: 50, Rating: 4.6, Reviews: 120,
			Description: "Flagship phone with a triple camera system"},
		{Name: "Samsung Galaxy S21", Category: "Electronics", Price: 799, Stock: 30, Rating: 4.4, Reviews: 85,
			Description: "Android phone with a 120Hz display"},
		{Name: "MacBook Pro", Category: "Electronics", Price: 1299, Stock: 0, Rating: 4.8, Reviews: 230,
			Description: "Laptop for professional workloads"},
	} {
		if err := products.Create(&p); err != nil {
			log.Printf("Error seeding product %s: %v", p.Name, err)
		} else {
			log.Printf("Seeded product: %s (ID: %s)", p.Name, p.ID)
		}
	}
}
