package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"backoffice/internal/models"

	"github.com/google/uuid"
)

// MockCategoryRepository is an in-memory implementation of CategoryRepository.
type MockCategoryRepository struct {
	categories map[models.ID]models.Category
	mu         sync.RWMutex
}

// NewMockCategoryRepository creates a new instance of MockCategoryRepository.
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		categories: make(map[models.ID]models.Category),
	}
}

// GetAll returns all categories, oldest first.
func (r *MockCategoryRepository) GetAll() ([]models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Category, 0, len(r.categories))
	for _, c := range r.categories {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

// GetByID returns a category by its ID.
func (r *MockCategoryRepository) GetByID(id models.ID) (*models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.categories[id]
	if !ok {
		return nil, fmt.Errorf("category with ID %s: %w", id, ErrNotFound)
	}
	return &c, nil
}

func (r *MockCategoryRepository) nameTaken(name string, except models.ID) bool {
	for id, c := range r.categories {
		if id != except && c.Name == name {
			return true
		}
	}
	return false
}

// Create adds a new category.
func (r *MockCategoryRepository) Create(category *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.nameTaken(category.Name, "") {
		return fmt.Errorf("category %q: %w", category.Name, ErrConflict)
	}
	if category.ID == "" {
		category.ID = models.ID(uuid.New().String())
	}
	now := time.Now()
	category.CreatedAt, category.UpdatedAt = now, now
	r.categories[category.ID] = *category
	return nil
}

// Update changes a category's name and description.
func (r *MockCategoryRepository) Update(category *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.categories[category.ID]
	if !ok {
		return fmt.Errorf("category with ID %s: %w", category.ID, ErrNotFound)
	}
	if r.nameTaken(category.Name, category.ID) {
		return fmt.Errorf("category %q: %w", category.Name, ErrConflict)
	}
	existing.Name = category.Name
	existing.Description = category.Description
	existing.UpdatedAt = time.Now()
	r.categories[category.ID] = existing
	return nil
}

// Delete removes a category by its ID.
func (r *MockCategoryRepository) Delete(id models.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.categories[id]; !ok {
		return fmt.Errorf("category with ID %s: %w", id, ErrNotFound)
	}
	delete(r.categories, id)
	return nil
}
