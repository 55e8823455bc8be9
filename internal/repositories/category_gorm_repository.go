package repositories

import (
	"errors"
	"fmt"

	"backoffice/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	db *gorm.DB
}

// NewGORMCategoryRepository creates a new instance of GORMCategoryRepository.
func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{db: db}
}

// GetAll retrieves all categories, oldest first.
func (r *GORMCategoryRepository) GetAll() ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Order("created_at, id").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to get all categories: %w", err)
	}
	return categories, nil
}

// GetByID retrieves a category by its ID.
func (r *GORMCategoryRepository) GetByID(id models.ID) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get category by ID %s: %w", id, err)
	}
	return &category, nil
}

func (r *GORMCategoryRepository) nameTaken(name string, except models.ID) (bool, error) {
	var n int64
	err := r.db.Model(&models.Category{}).Where("name = ? AND id <> ?", name, except).Count(&n).Error
	return n > 0, err
}

// Create creates a new category. Names are unique.
func (r *GORMCategoryRepository) Create(category *models.Category) error {
	taken, err := r.nameTaken(category.Name, "")
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	if taken {
		return fmt.Errorf("category %q: %w", category.Name, ErrConflict)
	}
	if category.ID == "" {
		category.ID = models.ID(uuid.New().String())
	}
	if err := r.db.Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// Update changes a category's name and description.
func (r *GORMCategoryRepository) Update(category *models.Category) error {
	taken, err := r.nameTaken(category.Name, category.ID)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	if taken {
		return fmt.Errorf("category %q: %w", category.Name, ErrConflict)
	}
	res := r.db.Model(&models.Category{}).Where("id = ?", category.ID).
		Updates(map[string]any{"name": category.Name, "description": category.Description})
	if res.Error != nil {
		return fmt.Errorf("failed to update category: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("category with ID %s: %w", category.ID, ErrNotFound)
	}
	return nil
}

// Delete deletes a category by its ID.
func (r *GORMCategoryRepository) Delete(id models.ID) error {
	res := r.db.Delete(&models.Category{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete category: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("category with ID %s: %w", id, ErrNotFound)
	}
	return nil
}
