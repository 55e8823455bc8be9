package models

import (
	"maps"
	"slices"
	"time"
)

// Product represents a product in the catalog.
type Product struct {
	ID          ID          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string      `json:"name" validate:"required,min=3,max=100"`
	Category    string      `json:"category" gorm:"index" validate:"required,max=100"`
	Price       float64     `json:"price" validate:"gte=0"`
	Stock       int         `json:"stock" validate:"gte=0"`
	Rating      float64     `json:"rating" validate:"gte=0,lte=5"`
	Reviews     int         `json:"reviews" validate:"gte=0"`
	Description string      `json:"description" validate:"max=1000"`
	Features    FeatureList `json:"features" gorm:"serializer:json"`
	Specs       SpecMap     `json:"specs" gorm:"serializer:json"`
	Images      []string    `json:"images" gorm:"serializer:json"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// RecordID returns the product id.
func (p Product) RecordID() ID { return p.ID }

// SearchFields returns the text matched by list search: the scalar string
// fields plus every feature and every spec key and value. Ids and image URLs
// are not searchable.
func (p Product) SearchFields() []string {
	fields := make([]string, 0, 3+len(p.Features)+2*len(p.Specs))
	fields = append(fields, p.Name, p.Category, p.Description)
	fields = append(fields, p.Features...)
	for _, key := range slices.Sorted(maps.Keys(p.Specs)) {
		fields = append(fields, key, p.Specs[key])
	}
	return fields
}

// Image returns the first image URL, or "" when the product has none.
func (p Product) Image() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
