package view

import (
	"fmt"

	"backoffice/internal/models"
)

// CategoryRow is one line of the category table.
type CategoryRow struct {
	ID          models.ID
	Name        string
	Description string
	Products    string
}

// CategoryRows derives rows for every category.
func CategoryRows(categories []models.Category) []CategoryRow {
	rows := make([]CategoryRow, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, CategoryRow{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			Products:    fmt.Sprintf("%d items", c.ProductCount),
		})
	}
	return rows
}
