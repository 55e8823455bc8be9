package models

import "time"

// Category groups products by a display label.
// ProductCount is denormalized: filled by the server on list, zero otherwise.
type Category struct {
	ID           ID        `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name         string    `json:"name" gorm:"uniqueIndex;type:varchar(100)" validate:"required,max=100"`
	Description  string    `json:"description" validate:"required,max=500"`
	ProductCount int       `json:"productCount" gorm:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// RecordID returns the category id.
func (c Category) RecordID() ID { return c.ID }

// SearchFields returns the string fields matched by list search.
func (c Category) SearchFields() []string {
	return []string{c.Name, c.Description}
}
