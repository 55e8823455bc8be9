package services

import (
	"backoffice/internal/models"
	"backoffice/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo     repositories.ProductRepository
	events   EventPublisher
	validate *validator.Validate
}

// NewProductService creates a new ProductService. events may be nil.
func NewProductService(repo repositories.ProductRepository, events EventPublisher) *ProductService {
	return &ProductService{
		repo:     repo,
		events:   events,
		validate: newValidator(),
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id models.ID) (*models.Product, error) {
	return s.repo.GetByID(id)
}

func (s *ProductService) check(product *models.Product) error {
	if err := validateModel(s.validate, product); err != nil {
		return err
	}
	if err := product.Features.Validate(); err != nil {
		return &ValidationError{Fields: map[string]string{"features": err.Error()}}
	}
	if err := product.Specs.Validate(); err != nil {
		return &ValidationError{Fields: map[string]string{"specs": err.Error()}}
	}
	return nil
}

// CreateProduct validates and stores a new product.
func (s *ProductService) CreateProduct(product *models.Product) error {
	if err := s.check(product); err != nil {
		return err
	}
	if err := s.repo.Create(product); err != nil {
		return err
	}
	publish(s.events, "product.created", map[string]any{"id": product.ID, "name": product.Name})
	return nil
}

// UpdateProduct validates and replaces an existing product. Images are kept
// from the stored product when the update carries none.
func (s *ProductService) UpdateProduct(product *models.Product) error {
	existing, err := s.repo.GetByID(product.ID)
	if err != nil {
		return err
	}
	if len(product.Images) == 0 {
		product.Images = existing.Images
	}
	if err := s.check(product); err != nil {
		return err
	}
	if err := s.repo.Update(product); err != nil {
		return err
	}
	publish(s.events, "product.updated", map[string]any{"id": product.ID, "name": product.Name})
	return nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id models.ID) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	publish(s.events, "product.deleted", map[string]any{"id": id})
	return nil
}
