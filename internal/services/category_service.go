package services

import (
	"fmt"

	"backoffice/internal/models"
	"backoffice/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// CategoryService handles business logic related to categories.
type CategoryService struct {
	repo     repositories.CategoryRepository
	products repositories.ProductRepository
	events   EventPublisher
	validate *validator.Validate
}

// NewCategoryService creates a new CategoryService. events may be nil.
func NewCategoryService(repo repositories.CategoryRepository, products repositories.ProductRepository, events EventPublisher) *CategoryService {
	return &CategoryService{
		repo:     repo,
		products: products,
		events:   events,
		validate: newValidator(),
	}
}

// GetAllCategories returns every category with ProductCount filled from the
// products whose category label equals the category name.
func (s *CategoryService) GetAllCategories() ([]models.Category, error) {
	categories, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}
	counts, err := s.products.CountByCategory()
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	for i := range categories {
		categories[i].ProductCount = counts[categories[i].Name]
	}
	return categories, nil
}

// CreateCategory validates and stores a new category.
func (s *CategoryService) CreateCategory(category *models.Category) error {
	if err := validateModel(s.validate, category); err != nil {
		return err
	}
	if err := s.repo.Create(category); err != nil {
		return err
	}
	publish(s.events, "category.created", map[string]any{"id": category.ID, "name": category.Name})
	return nil
}

// UpdateCategory validates and updates an existing category.
func (s *CategoryService) UpdateCategory(category *models.Category) (*models.Category, error) {
	if err := validateModel(s.validate, category); err != nil {
		return nil, err
	}
	if err := s.repo.Update(category); err != nil {
		return nil, err
	}
	publish(s.events, "category.updated", map[string]any{"id": category.ID, "name": category.Name})
	return s.repo.GetByID(category.ID)
}

// DeleteCategory deletes a category by its ID. Products keep their label.
func (s *CategoryService) DeleteCategory(id models.ID) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	publish(s.events, "category.deleted", map[string]any{"id": id})
	return nil
}
