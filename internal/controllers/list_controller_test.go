package controllers_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"backoffice/internal/client"
	"backoffice/internal/controllers"
	"backoffice/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCategories is a mock implementation of the category collection.
type MockCategories struct {
	mock.Mock
}

func (m *MockCategories) List(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockCategories) Delete(ctx context.Context, id models.ID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// recorder collects notifications.
type recorder struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (r *recorder) Success(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.successes = append(r.successes, msg)
}

func (r *recorder) Error(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, msg)
}

var (
	electronics = models.Category{ID: "1", Name: "Electronics", Description: "Devices"}
	books       = models.Category{ID: "2", Name: "Books", Description: "Reading"}
)

func newController(m *MockCategories, n controllers.Notifier) *controllers.ListController[models.Category] {
	return controllers.NewListController[models.Category](m, controllers.Options{
		Entity:   "category",
		Plural:   "categories",
		Deleter:  m,
		Notifier: n,
	})
}

func TestMount_LoadsOnce(t *testing.T) {
	m := new(MockCategories)
	m.On("List", mock.Anything).Return([]models.Category{electronics, books}, nil).Once()
	ctl := newController(m, nil)

	require.NoError(t, ctl.Mount(context.Background()))
	require.NoError(t, ctl.Mount(context.Background()))

	assert.Len(t, ctl.Items(), 2)
	assert.False(t, ctl.Loading())
	m.AssertNumberOfCalls(t, "List", 1)
}

func TestSearch_FiltersWithoutMutatingItems(t *testing.T) {
	m := new(MockCategories)
	m.On("List", mock.Anything).Return([]models.Category{electronics, books}, nil)
	ctl := newController(m, nil)
	require.NoError(t, ctl.Mount(context.Background()))

	ctl.SetSearch("elec")
	view := ctl.View()
	require.Len(t, view, 1)
	assert.Equal(t, "Electronics", view[0].Name)
	assert.Len(t, ctl.Items(), 2)

	ctl.SetSearch("READ")
	assert.Equal(t, []models.Category{books}, ctl.View())

	ctl.SetSearch("")
	assert.Len(t, ctl.View(), 2)
}

func TestSetFilterAndSort(t *testing.T) {
	m := new(MockCategories)
	m.On("List", mock.Anything).Return([]models.Category{electronics, books}, nil)
	ctl := newController(m, nil)
	require.NoError(t, ctl.Mount(context.Background()))

	ctl.SetSort(func(a, b models.Category) int { return strings.Compare(a.Name, b.Name) })
	view := ctl.View()
	assert.Equal(t, "Books", view[0].Name)
	assert.Equal(t, "Electronics", ctl.Items()[0].Name)

	ctl.SetFilter(func(c models.Category) bool { return c.ID == "1" })
	assert.Equal(t, []models.Category{electronics}, ctl.View())
}

func TestLoad_FailureKeepsItems(t *testing.T) {
	m := new(MockCategories)
	n := &recorder{}
	m.On("List", mock.Anything).Return([]models.Category{electronics}, nil).Once()
	m.On("List", mock.Anything).Return(nil, &client.Error{StatusCode: 500, Message: "db down"}).Once()
	ctl := newController(m, n)

	require.NoError(t, ctl.Load(context.Background()))
	err := ctl.Load(context.Background())
	require.Error(t, err)

	assert.Equal(t, []models.Category{electronics}, ctl.Items())
	assert.False(t, ctl.Loading())
	assert.Error(t, ctl.Err())
	assert.Equal(t, []string{"Failed to load categories: db down"}, n.errors)
}

func TestDelete_RefreshesExactlyOnce(t *testing.T) {
	m := new(MockCategories)
	n := &recorder{}
	m.On("List", mock.Anything).Return([]models.Category{electronics, books}, nil).Once()
	m.On("Delete", mock.Anything, models.ID("2")).Return(nil).Once()
	m.On("List", mock.Anything).Return([]models.Category{electronics}, nil).Once()
	ctl := newController(m, n)
	require.NoError(t, ctl.Mount(context.Background()))

	require.NoError(t, ctl.Delete(context.Background(), "2"))

	m.AssertNumberOfCalls(t, "List", 2)
	assert.Equal(t, []models.Category{electronics}, ctl.Items())
	assert.Equal(t, []string{"Category deleted successfully"}, n.successes)
	m.AssertExpectations(t)
}

func TestDelete_FailureLeavesItemsUnchanged(t *testing.T) {
	m := new(MockCategories)
	n := &recorder{}
	m.On("List", mock.Anything).Return([]models.Category{electronics, books}, nil).Once()
	m.On("Delete", mock.Anything, models.ID("2")).Return(&client.Error{StatusCode: 409, Message: "Category in use"}).Once()
	ctl := newController(m, n)
	require.NoError(t, ctl.Mount(context.Background()))

	err := ctl.Delete(context.Background(), "2")
	require.Error(t, err)

	m.AssertNumberOfCalls(t, "List", 1)
	assert.Len(t, ctl.Items(), 2)
	assert.Equal(t, []string{"Category in use"}, n.errors)
	assert.Empty(t, n.successes)
}

func TestReadOnlyController(t *testing.T) {
	m := new(MockCategories)
	ctl := controllers.NewListController[models.Category](m, controllers.Options{Entity: "order"})
	assert.ErrorIs(t, ctl.Delete(context.Background(), "1"), controllers.ErrReadOnly)
	ctl.Select("1")
	_, err := ctl.BulkDelete(context.Background())
	assert.ErrorIs(t, err, controllers.ErrReadOnly)
}

func TestSelection(t *testing.T) {
	ctl := newController(new(MockCategories), nil)

	assert.True(t, ctl.Toggle("3"))
	ctl.Select("1", "2")
	assert.False(t, ctl.Toggle("3"))
	assert.Equal(t, []models.ID{"1", "2"}, ctl.Selected())
	assert.True(t, ctl.IsSelected("2"))

	ctl.ClearSelection()
	assert.Empty(t, ctl.Selected())

	_, err := ctl.BulkDelete(context.Background())
	assert.ErrorIs(t, err, controllers.ErrNothingSelected)
}

func TestBulkDelete_AllSucceed(t *testing.T) {
	m := new(MockCategories)
	n := &recorder{}
	m.On("List", mock.Anything).Return([]models.Category{}, nil)
	ids := []models.ID{"1", "2", "3", "4"}
	for _, id := range ids {
		m.On("Delete", mock.Anything, id).Return(nil).Once()
	}
	ctl := newController(m, n)
	ctl.Select(ids...)

	res, err := ctl.BulkDelete(context.Background())
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.ElementsMatch(t, ids, res.Deleted)

	m.AssertNumberOfCalls(t, "Delete", len(ids))
	m.AssertNumberOfCalls(t, "List", 1)
	assert.Empty(t, ctl.Selected())
	assert.Equal(t, []string{"4 categories deleted successfully"}, n.successes)
}

func TestBulkDelete_PartialFailureKeepsFailedSelected(t *testing.T) {
	m := new(MockCategories)
	n := &recorder{}
	m.On("List", mock.Anything).Return([]models.Category{books}, nil)
	m.On("Delete", mock.Anything, models.ID("1")).Return(nil).Once()
	m.On("Delete", mock.Anything, models.ID("2")).Return(&client.Error{StatusCode: 404, Message: "Category not found"}).Once()
	m.On("Delete", mock.Anything, models.ID("3")).Return(nil).Once()
	ctl := newController(m, n)
	ctl.Select("1", "2", "3")

	res, err := ctl.BulkDelete(context.Background())
	require.Error(t, err)
	assert.False(t, res.OK())
	assert.Contains(t, res.Failed, models.ID("2"))
	assert.ElementsMatch(t, []models.ID{"1", "3"}, res.Deleted)

	assert.Equal(t, []models.ID{"2"}, ctl.Selected())
	m.AssertNumberOfCalls(t, "List", 1)
	assert.Equal(t, []string{"Deleted 2 of 3 categories: Category not found"}, n.errors)
}

func TestBulkDelete_AllFailNoRefresh(t *testing.T) {
	m := new(MockCategories)
	m.On("Delete", mock.Anything, mock.Anything).Return(errors.New("boom"))
	ctl := newController(m, nil)
	ctl.Select("1", "2")

	res, err := ctl.BulkDelete(context.Background())
	require.Error(t, err)
	assert.Len(t, res.Failed, 2)
	assert.Equal(t, []models.ID{"1", "2"}, ctl.Selected())
	m.AssertNotCalled(t, "List", mock.Anything)
}

func TestLoad_StaleGenerationIsDiscarded(t *testing.T) {
	m := new(MockCategories)
	release := make(chan struct{})
	started := make(chan struct{})
	m.On("List", mock.Anything).Run(func(mock.Arguments) {
		close(started)
		<-release
	}).Return([]models.Category{electronics}, nil).Once()
	m.On("List", mock.Anything).Return([]models.Category{books}, nil).Once()
	ctl := newController(m, nil)

	done := make(chan error, 1)
	go func() { done <- ctl.Load(context.Background()) }()
	<-started

	require.NoError(t, ctl.Load(context.Background()))
	close(release)

	assert.ErrorIs(t, <-done, controllers.ErrSuperseded)
	assert.Equal(t, []models.Category{books}, ctl.Items())
	assert.False(t, ctl.Loading())
}

func TestClose_LateResponseIgnored(t *testing.T) {
	m := new(MockCategories)
	n := &recorder{}
	release := make(chan struct{})
	started := make(chan struct{})
	m.On("List", mock.Anything).Run(func(mock.Arguments) {
		close(started)
		<-release
	}).Return(nil, errors.New("late failure")).Once()
	ctl := newController(m, n)

	renders := 0
	ctl.Subscribe(func() { renders++ })

	done := make(chan error, 1)
	go func() { done <- ctl.Mount(context.Background()) }()
	<-started
	ctl.Close()
	rendersAtClose := renders
	close(release)

	assert.ErrorIs(t, <-done, controllers.ErrClosed)
	assert.Empty(t, ctl.Items())
	assert.Empty(t, n.errors)
	assert.Equal(t, rendersAtClose, renders)
	assert.ErrorIs(t, ctl.Load(context.Background()), controllers.ErrClosed)
}

func TestSubscribe_CalledOnChange(t *testing.T) {
	m := new(MockCategories)
	m.On("List", mock.Anything).Return([]models.Category{electronics}, nil)
	ctl := newController(m, nil)

	var renders int
	ctl.Subscribe(func() { renders++ })
	require.NoError(t, ctl.Load(context.Background()))
	ctl.SetSearch("x")
	assert.GreaterOrEqual(t, renders, 3, fmt.Sprintf("renders=%d", renders))
}

func TestMatches(t *testing.T) {
	assert.True(t, controllers.Matches(electronics, ""))
	assert.True(t, controllers.Matches(electronics, "DEVI"))
	assert.False(t, controllers.Matches(electronics, "  DEVI "))
	assert.False(t, controllers.Matches(electronics, "1"))
}

func TestFilter_ExactlyTheContainingSubset(t *testing.T) {
	items := []models.Category{
		electronics,
		books,
		{ID: "3", Name: "Home Garden", Description: "Tools "},
	}
	searches := []string{"", " ", "books ", " books", "BOOKS", "home g", "home  g", "s ", "o", "\t", "zzz"}

	for _, search := range searches {
		t.Run(fmt.Sprintf("%q", search), func(t *testing.T) {
			before := append([]models.Category(nil), items...)
			got := controllers.Filter(items, search)

			var want []models.Category
			for _, item := range items {
				for _, field := range item.SearchFields() {
					if strings.Contains(strings.ToLower(field), strings.ToLower(search)) {
						want = append(want, item)
						break
					}
				}
			}
			assert.ElementsMatch(t, want, got)
			assert.Equal(t, before, items)
		})
	}

	assert.Empty(t, controllers.Filter(items, "books "))
	assert.Len(t, controllers.Filter(items, "s "), 1)
	assert.Len(t, controllers.Filter(items, " "), 1)
}
