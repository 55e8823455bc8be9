package client

import (
	"context"

	"backoffice/internal/models"
)

// CategoryPayload is the writable part of a category.
type CategoryPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Categories is the /api/categories collection.
type Categories struct {
	Collection[models.Category]
}

// Create adds a category.
func (c *Categories) Create(ctx context.Context, payload CategoryPayload) (*models.Category, error) {
	return c.create(ctx, payload)
}

// Update replaces a category's name and description.
func (c *Categories) Update(ctx context.Context, id models.ID, payload CategoryPayload) (*models.Category, error) {
	return c.update(ctx, id, payload)
}
