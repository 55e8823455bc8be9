package controllers

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"backoffice/internal/client"
	"backoffice/internal/models"
)

// Toggle flips the selection state of id and returns the new state.
func (c *ListController[T]) Toggle(id models.ID) bool {
	c.mu.Lock()
	_, on := c.selected[id]
	if on {
		delete(c.selected, id)
	} else {
		c.selected[id] = struct{}{}
	}
	c.mu.Unlock()
	c.emit()
	return !on
}

// Select adds ids to the selection.
func (c *ListController[T]) Select(ids ...models.ID) {
	c.mu.Lock()
	for _, id := range ids {
		c.selected[id] = struct{}{}
	}
	c.mu.Unlock()
	c.emit()
}

// ClearSelection deselects every row.
func (c *ListController[T]) ClearSelection() {
	c.mu.Lock()
	clear(c.selected)
	c.mu.Unlock()
	c.emit()
}

// IsSelected reports whether id is selected.
func (c *ListController[T]) IsSelected(id models.ID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.selected[id]
	return ok
}

// Selected returns the selected ids in sorted order.
func (c *ListController[T]) Selected() []models.ID {
	c.mu.Lock()
	defer c.mu.Unlock()
	ids := make([]models.ID, 0, len(c.selected))
	for id := range c.selected {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// BulkResult reports the outcome of every request in a bulk delete.
type BulkResult struct {
	Deleted []models.ID
	Failed  map[models.ID]error
}

// OK reports whether every delete succeeded.
func (r BulkResult) OK() bool { return len(r.Failed) == 0 }

// Err combines the per-id failures, or returns nil.
func (r BulkResult) Err() error {
	ids := make([]models.ID, 0, len(r.Failed))
	for id := range r.Failed {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	var err error
	for _, id := range ids {
		err = multierr.Append(err, fmt.Errorf("delete %s: %w", id, r.Failed[id]))
	}
	return err
}

// BulkDelete sends one delete per selected id, all at once, and waits for
// every request to settle. The selection is cleared only when all of them
// succeed; otherwise the failed ids stay selected so the operator can retry.
// The collection is reloaded once if anything was deleted.
func (c *ListController[T]) BulkDelete(ctx context.Context) (BulkResult, error) {
	if c.deleter == nil {
		return BulkResult{}, ErrReadOnly
	}
	if c.isClosed() {
		return BulkResult{}, ErrClosed
	}
	ids := c.Selected()
	if len(ids) == 0 {
		return BulkResult{}, ErrNothingSelected
	}

	errs := make([]error, len(ids))
	var g errgroup.Group
	for i, id := range ids {
		g.Go(func() error {
			errs[i] = c.deleter.Delete(ctx, id)
			return errs[i]
		})
	}
	_ = g.Wait()

	res := BulkResult{Failed: make(map[models.ID]error)}
	for i, id := range ids {
		if errs[i] != nil {
			res.Failed[id] = errs[i]
		} else {
			res.Deleted = append(res.Deleted, id)
		}
	}
	if c.isClosed() {
		return res, res.Err()
	}

	c.mu.Lock()
	for _, id := range res.Deleted {
		delete(c.selected, id)
	}
	if !res.OK() {
		c.lastErr = res.Err()
	}
	c.mu.Unlock()

	if res.OK() {
		c.notifier.Success(fmt.Sprintf("%d %s deleted successfully", len(res.Deleted), c.plural))
	} else {
		var first error
		for _, id := range ids {
			if err, ok := res.Failed[id]; ok {
				first = err
				break
			}
		}
		c.logger.Error("bulk delete partially failed", "deleted", len(res.Deleted), "failed", len(res.Failed), "error", res.Err())
		c.notifier.Error(fmt.Sprintf("Deleted %d of %d %s: %s", len(res.Deleted), len(ids), c.plural, client.Message(first)))
	}
	c.emit()

	if len(res.Deleted) > 0 {
		c.refresh(ctx)
	}
	return res, res.Err()
}
