package forms

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"backoffice/internal/client"
	"backoffice/internal/models"
)

// CategoryValues are the fields of the category form.
type CategoryValues struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"required,max=500"`
}

// CategorySaver is the remote side of the category form.
type CategorySaver interface {
	Create(ctx context.Context, payload client.CategoryPayload) (*models.Category, error)
	Update(ctx context.Context, id models.ID, payload client.CategoryPayload) (*models.Category, error)
}

// CategoryForm adds a category, or edits one after Edit is called.
type CategoryForm struct {
	mu         sync.Mutex
	values     CategoryValues
	editing    models.ID
	submitting bool

	remote CategorySaver
	parent Refresher
	logger *slog.Logger
}

// NewCategoryForm creates an empty category form. parent may be nil.
func NewCategoryForm(remote CategorySaver, parent Refresher, logger *slog.Logger) *CategoryForm {
	if logger == nil {
		logger = slog.Default()
	}
	return &CategoryForm{remote: remote, parent: parent, logger: logger.With("form", "category")}
}

func (f *CategoryForm) Set(v CategoryValues) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = v
}

func (f *CategoryForm) Values() CategoryValues {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

// Edit switches the form to edit mode for c.
func (f *CategoryForm) Edit(c models.Category) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.editing = c.ID
	f.values = CategoryValues{Name: c.Name, Description: c.Description}
}

func (f *CategoryForm) Editing() models.ID {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.editing
}

// Title is the heading of the form dialog.
func (f *CategoryForm) Title() string {
	if f.Editing() != "" {
		return "Edit Category"
	}
	return "Add New Category"
}

// Reset clears the values and leaves edit mode.
func (f *CategoryForm) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = CategoryValues{}
	f.editing = ""
}

// Submit validates and saves the category, then refreshes the parent list.
func (f *CategoryForm) Submit(ctx context.Context) (*models.Category, error) {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return nil, ErrSubmitting
	}
	v, editing := f.values, f.editing
	v.Name = strings.TrimSpace(v.Name)
	v.Description = strings.TrimSpace(v.Description)
	if fields := validateStruct(v); len(fields) > 0 {
		f.mu.Unlock()
		return nil, &ValidationError{Fields: fields}
	}
	f.submitting = true
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.submitting = false
		f.mu.Unlock()
	}()

	payload := client.CategoryPayload{Name: v.Name, Description: v.Description}
	var (
		saved *models.Category
		err   error
	)
	if editing == "" {
		saved, err = f.remote.Create(ctx, payload)
	} else {
		saved, err = f.remote.Update(ctx, editing, payload)
	}
	if err != nil {
		f.logger.Error("category submit failed", "editing", editing, "error", err)
		return nil, fmt.Errorf("failed to save category: %w", err)
	}

	f.Reset()
	if f.parent != nil {
		f.parent.Refresh(ctx)
	}
	return saved, nil
}
