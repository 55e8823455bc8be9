package repositories

import (
	"errors"

	"backoffice/internal/models"
)

// ErrNotFound is wrapped by every repository error caused by a missing id.
var ErrNotFound = errors.New("record not found")

// ErrConflict is wrapped when a write violates a uniqueness rule.
var ErrConflict = errors.New("record already exists")

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id models.ID) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id models.ID) error
	// CountByCategory returns the number of products per category label.
	CountByCategory() (map[string]int, error)
}

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	GetAll() ([]models.Category, error)
	GetByID(id models.ID) (*models.Category, error)
	Create(category *models.Category) error
	Update(category *models.Category) error
	Delete(id models.ID) error
}

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByID(id models.ID) (*models.Order, error)
	Create(order *models.Order) error
}
