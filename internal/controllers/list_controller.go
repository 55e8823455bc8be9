// Package controllers holds the list view state machines that mediate between
// a presentation layer and one remote collection.
package controllers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"backoffice/internal/client"
	"backoffice/internal/models"
)

var (
	// ErrClosed is returned by operations on an unmounted controller.
	ErrClosed = errors.New("controller is closed")
	// ErrSuperseded is returned by a Load whose response was discarded because
	// a later Load was started.
	ErrSuperseded = errors.New("load superseded by a newer request")
	// ErrReadOnly is returned by delete operations on a controller built
	// without a Deleter.
	ErrReadOnly = errors.New("collection is read-only")
	// ErrNothingSelected is returned by BulkDelete with an empty selection.
	ErrNothingSelected = errors.New("no rows selected")
)

// Lister fetches every record of a collection.
type Lister[T any] interface {
	List(ctx context.Context) ([]T, error)
}

// Deleter removes one record by id.
type Deleter interface {
	Delete(ctx context.Context, id models.ID) error
}

// Options configures a ListController.
type Options struct {
	// Entity is the singular, lower-case record name used in messages, e.g. "category".
	Entity string
	// Plural defaults to Entity + "s".
	Plural   string
	Deleter  Deleter
	Notifier Notifier
	Logger   *slog.Logger
}

// ListController holds the in-memory state of one list view: the loaded
// records, a loading flag, the search text and the selected ids.
//
// Every Load is tagged with a generation number and only the most recent
// Load's response is applied. After Close, responses are dropped.
type ListController[T Record] struct {
	mu sync.Mutex

	lister   Lister[T]
	deleter  Deleter
	notifier Notifier
	logger   *slog.Logger
	entity   string
	plural   string

	items    []T
	loading  bool
	search   string
	filter   func(T) bool
	compare  func(a, b T) int
	selected map[models.ID]struct{}
	lastErr  error

	generation  uint64
	mounted     bool
	closed      bool
	subscribers []func()
}

// NewListController creates a controller for the collection behind lister.
func NewListController[T Record](lister Lister[T], opts Options) *ListController[T] {
	if opts.Entity == "" {
		opts.Entity = "record"
	}
	if opts.Plural == "" {
		opts.Plural = opts.Entity + "s"
	}
	if opts.Notifier == nil {
		opts.Notifier = nopNotifier{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &ListController[T]{
		lister:   lister,
		deleter:  opts.Deleter,
		notifier: opts.Notifier,
		logger:   opts.Logger.With("view", opts.Plural),
		entity:   opts.Entity,
		plural:   opts.Plural,
		items:    []T{},
		selected: make(map[models.ID]struct{}),
	}
}

// Subscribe registers fn to be called after every state change.
func (c *ListController[T]) Subscribe(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.subscribers = append(c.subscribers, fn)
}

func (c *ListController[T]) emit() {
	c.mu.Lock()
	subs := slices.Clone(c.subscribers)
	c.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

// Mount performs the fetch-on-mount Load. Only the first call loads.
func (c *ListController[T]) Mount(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.mounted {
		c.mu.Unlock()
		return nil
	}
	c.mounted = true
	c.mu.Unlock()
	return c.Load(ctx)
}

// Close unmounts the controller. In-flight requests are not aborted, but
// their responses are ignored.
func (c *ListController[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.subscribers = nil
}

// Load fetches the whole collection and replaces the loaded items. On
// failure the previous items are kept and an error notification is raised.
func (c *ListController[T]) Load(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.generation++
	gen := c.generation
	c.loading = true
	c.mu.Unlock()
	c.emit()

	items, err := c.lister.List(ctx)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		c.logger.Debug("dropping response for closed view", "generation", gen)
		return ErrClosed
	}
	if gen != c.generation {
		c.mu.Unlock()
		c.logger.Debug("dropping superseded response", "generation", gen)
		return ErrSuperseded
	}
	c.loading = false
	if err != nil {
		c.lastErr = err
		c.mu.Unlock()
		c.logger.Error("failed to load", "error", err)
		c.notifier.Error(fmt.Sprintf("Failed to load %s: %s", c.plural, client.Message(err)))
		c.emit()
		return fmt.Errorf("failed to load %s: %w", c.plural, err)
	}
	if items == nil {
		items = []T{}
	}
	c.items = items
	c.lastErr = nil
	c.mu.Unlock()
	c.logger.Debug("loaded", "count", len(items), "generation", gen)
	c.emit()
	return nil
}

// Mutate runs fn and, when it succeeds, raises success with msg and reloads
// the collection exactly once. When fn fails the loaded items are left alone
// and the failure is surfaced.
func (c *ListController[T]) Mutate(ctx context.Context, msg string, fn func(ctx context.Context) error) error {
	if c.isClosed() {
		return ErrClosed
	}
	if err := fn(ctx); err != nil {
		if c.isClosed() {
			return err
		}
		c.mu.Lock()
		c.lastErr = err
		c.mu.Unlock()
		c.notifier.Error(client.Message(err))
		c.emit()
		return err
	}
	if c.isClosed() {
		return nil
	}
	if msg != "" {
		c.notifier.Success(msg)
	}
	c.refresh(ctx)
	return nil
}

// Refresh reloads after a mutation made elsewhere, such as a form submit.
func (c *ListController[T]) Refresh(ctx context.Context) {
	c.refresh(ctx)
}

// refresh reloads and swallows the error: Load already surfaced it and the
// mutation that triggered the refresh did succeed.
func (c *ListController[T]) refresh(ctx context.Context) {
	if err := c.Load(ctx); err != nil && !errors.Is(err, ErrSuperseded) && !errors.Is(err, ErrClosed) {
		c.logger.Warn("refresh after mutation failed", "error", err)
	}
}

// Delete removes one record and reloads.
func (c *ListController[T]) Delete(ctx context.Context, id models.ID) error {
	if c.deleter == nil {
		return ErrReadOnly
	}
	msg := fmt.Sprintf("%s deleted successfully", c.title(c.entity))
	return c.Mutate(ctx, msg, func(ctx context.Context) error {
		return c.deleter.Delete(ctx, id)
	})
}

func (c *ListController[T]) title(s string) string {
	return cases.Title(language.English).String(s)
}

func (c *ListController[T]) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// SetSearch changes the search text used by View.
func (c *ListController[T]) SetSearch(text string) {
	c.mu.Lock()
	c.search = text
	c.mu.Unlock()
	c.emit()
}

// Search returns the current search text.
func (c *ListController[T]) Search() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.search
}

// SetFilter installs an extra predicate applied after search, such as a
// column filter. nil removes it.
func (c *ListController[T]) SetFilter(keep func(T) bool) {
	c.mu.Lock()
	c.filter = keep
	c.mu.Unlock()
	c.emit()
}

// SetSort installs an ordering for View. nil keeps server order.
func (c *ListController[T]) SetSort(compare func(a, b T) int) {
	c.mu.Lock()
	c.compare = compare
	c.mu.Unlock()
	c.emit()
}

// View derives the visible rows: loaded items matching the search text and
// filter, in sort order. The loaded items are never modified.
func (c *ListController[T]) View() []T {
	c.mu.Lock()
	items, search, keep, compare := c.items, c.search, c.filter, c.compare
	c.mu.Unlock()

	out := Filter(items, search)
	if keep != nil {
		out = slices.DeleteFunc(out, func(item T) bool { return !keep(item) })
	}
	if compare != nil {
		slices.SortStableFunc(out, compare)
	}
	return out
}

// Items returns a copy of the loaded records.
func (c *ListController[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.items)
}

// Loading reports whether a Load is outstanding.
func (c *ListController[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err returns the last load or mutation failure, cleared by a successful Load.
func (c *ListController[T]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}
