package client

import (
	"context"
	"net/http"
	"net/url"

	"backoffice/internal/models"
)

// Collection is a REST collection of T rooted at a fixed path.
type Collection[T any] struct {
	c    *Client
	path string
}

func newCollection[T any](c *Client, path string) Collection[T] {
	return Collection[T]{c: c, path: path}
}

// Path returns the collection path, e.g. /api/categories.
func (col Collection[T]) Path() string { return col.path }

func (col Collection[T]) itemPath(id models.ID) string {
	return col.path + "/" + url.PathEscape(id.String())
}

// List fetches every record in the collection. The backend returns a plain
// JSON array; a null body yields an empty slice.
func (col Collection[T]) List(ctx context.Context) ([]T, error) {
	var items []T
	if err := col.c.doJSON(ctx, http.MethodGet, col.path, nil, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Delete removes the record with the given id.
func (col Collection[T]) Delete(ctx context.Context, id models.ID) error {
	return col.c.doJSON(ctx, http.MethodDelete, col.itemPath(id), nil, nil)
}

func (col Collection[T]) create(ctx context.Context, payload any) (*T, error) {
	var out T
	if err := col.c.doJSON(ctx, http.MethodPost, col.path, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (col Collection[T]) update(ctx context.Context, id models.ID, payload any) (*T, error) {
	var out T
	if err := col.c.doJSON(ctx, http.MethodPut, col.itemPath(id), payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
