package forms

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"backoffice/internal/client"
	"backoffice/internal/models"
)

// Categories offered by the product form.
var Categories = []string{
	"Electronics",
	"Clothing",
	"Books",
	"Home & Garden",
	"Toys",
	"Sports",
}

var imageExtensions = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
	".gif":  "image/gif",
}

// Image is the single file attached to a product form.
type Image struct {
	Filename string
	Data     []byte
}

// ProductValues are the fields of the product form.
type ProductValues struct {
	Name        string             `json:"name" validate:"required,min=3,max=100"`
	Category    string             `json:"category" validate:"required,max=100"`
	Price       float64            `json:"price" validate:"required,gte=100,lte=10000000"`
	Stock       int                `json:"stock" validate:"gte=0"`
	Rating      float64            `json:"rating" validate:"gte=0,lte=5,decistep"`
	Reviews     int                `json:"reviews" validate:"gte=0"`
	Description string             `json:"description" validate:"required,min=20,max=1000"`
	Features    models.FeatureList `json:"features"`
	Specs       models.SpecMap     `json:"specs"`
	Image       *Image             `json:"image"`
}

// ProductCreator is the remote side of the product form.
type ProductCreator interface {
	Create(ctx context.Context, payload client.ProductPayload, img *client.ImageFile) (*models.Product, error)
	Update(ctx context.Context, id models.ID, payload client.ProductPayload) (*models.Product, error)
}

// ProductForm creates a product, or edits one after Edit is called.
type ProductForm struct {
	mu         sync.Mutex
	values     ProductValues
	editing    models.ID
	submitting bool

	remote ProductCreator
	parent Refresher
	logger *slog.Logger
}

// NewProductForm creates an empty product form. parent may be nil.
func NewProductForm(remote ProductCreator, parent Refresher, logger *slog.Logger) *ProductForm {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProductForm{remote: remote, parent: parent, logger: logger.With("form", "product")}
}

// Set replaces the form values.
func (f *ProductForm) Set(v ProductValues) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = v
}

// Values returns the current form values.
func (f *ProductForm) Values() ProductValues {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

// Edit loads an existing product into the form; Submit will update it.
func (f *ProductForm) Edit(p models.Product) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.editing = p.ID
	f.values = ProductValues{
		Name:        p.Name,
		Category:    p.Category,
		Price:       p.Price,
		Stock:       p.Stock,
		Rating:      p.Rating,
		Reviews:     p.Reviews,
		Description: p.Description,
		Features:    p.Features,
		Specs:       p.Specs,
	}
}

// Editing returns the id under edit, or "" in create mode.
func (f *ProductForm) Editing() models.ID {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.editing
}

// Reset clears the form back to create mode.
func (f *ProductForm) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = ProductValues{}
	f.editing = ""
}

// Submitting reports whether a submit is in flight.
func (f *ProductForm) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// Validate checks the values without submitting them.
func (f *ProductForm) Validate() error {
	f.mu.Lock()
	v, editing := f.values, f.editing
	f.mu.Unlock()
	return validateProduct(v.trimmed(), editing == "")
}

// trimmed returns v with surrounding whitespace removed from its text fields.
func (v ProductValues) trimmed() ProductValues {
	v.Name = strings.TrimSpace(v.Name)
	v.Category = strings.TrimSpace(v.Category)
	v.Description = strings.TrimSpace(v.Description)
	return v
}

func validateProduct(v ProductValues, creating bool) error {
	fields := validateStruct(v)
	if err := v.Features.Validate(); err != nil {
		fields["features"] = capitalize(err.Error())
	}
	if err := v.Specs.Validate(); err != nil {
		fields["specs"] = capitalize(err.Error())
	}
	switch {
	case v.Image == nil && creating:
		fields["image"] = "Please upload an image."
	case v.Image != nil:
		if _, ok := imageExtensions[strings.ToLower(filepath.Ext(v.Image.Filename))]; !ok {
			fields["image"] = "Image must be a PNG, JPEG, WEBP or GIF file."
		} else if len(v.Image.Data) == 0 {
			fields["image"] = "Image file is empty."
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Submit validates the form and creates or updates the product. On success
// the form is reset and the parent list is refreshed. On failure the values
// are kept for correction.
func (f *ProductForm) Submit(ctx context.Context) (*models.Product, error) {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return nil, ErrSubmitting
	}
	v, editing := f.values.trimmed(), f.editing
	if err := validateProduct(v, editing == ""); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	f.submitting = true
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.submitting = false
		f.mu.Unlock()
	}()

	payload := client.ProductPayload{
		Name:        v.Name,
		Category:    v.Category,
		Price:       v.Price,
		Stock:       v.Stock,
		Rating:      v.Rating,
		Reviews:     v.Reviews,
		Description: v.Description,
		Features:    v.Features,
		Specs:       v.Specs,
	}

	var (
		saved *models.Product
		err   error
	)
	if editing == "" {
		var img *client.ImageFile
		if v.Image != nil {
			img = &client.ImageFile{
				Filename:    v.Image.Filename,
				ContentType: imageExtensions[strings.ToLower(filepath.Ext(v.Image.Filename))],
				Data:        bytes.NewReader(v.Image.Data),
			}
		}
		saved, err = f.remote.Create(ctx, payload, img)
	} else {
		saved, err = f.remote.Update(ctx, editing, payload)
	}
	if err != nil {
		f.logger.Error("product submit failed", "editing", editing, "error", err)
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	f.logger.Info("product saved", "id", saved.ID, "name", saved.Name)
	f.Reset()
	if f.parent != nil {
		f.parent.Refresh(ctx)
	}
	return saved, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:] + "."
}
