package forms_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"backoffice/internal/client"
	"backoffice/internal/forms"
	"backoffice/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProducts is a mock implementation of forms.ProductCreator
type MockProducts struct {
	mock.Mock
}

func (m *MockProducts) Create(ctx context.Context, payload client.ProductPayload, img *client.ImageFile) (*models.Product, error) {
	args := m.Called(ctx, payload, img)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProducts) Update(ctx context.Context, id models.ID, payload client.ProductPayload) (*models.Product, error) {
	args := m.Called(ctx, id, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

// MockCategories is a mock implementation of forms.CategorySaver
type MockCategories struct {
	mock.Mock
}

func (m *MockCategories) Create(ctx context.Context, payload client.CategoryPayload) (*models.Category, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategories) Update(ctx context.Context, id models.ID, payload client.CategoryPayload) (*models.Category, error) {
	args := m.Called(ctx, id, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

type countingRefresher struct{ calls int }

func (r *countingRefresher) Refresh(context.Context) { r.calls++ }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func validValues() forms.ProductValues {
	return forms.ProductValues{
		Name:        "Standing Desk",
		Category:    "Home & Garden",
		Price:       12000,
		Stock:       8,
		Rating:      4.7,
		Reviews:     31,
		Description: "Electric height adjustable desk with memory presets",
		Features:    models.FeatureList{"Dual motor", "Anti-collision"},
		Specs:       models.SpecMap{"Width": "140 cm"},
		Image:       &forms.Image{Filename: "desk.JPG", Data: []byte{0xff, 0xd8}},
	}
}

func fieldErrors(t *testing.T, err error) forms.FieldErrors {
	t.Helper()
	var ve *forms.ValidationError
	require.ErrorAs(t, err, &ve)
	return ve.Fields
}

func TestProductForm_PriceBoundsNeverReachNetwork(t *testing.T) {
	for _, price := range []float64{99, 10_000_001} {
		remote := new(MockProducts)
		parent := &countingRefresher{}
		form := forms.NewProductForm(remote, parent, quietLogger())

		v := validValues()
		v.Price = price
		form.Set(v)

		_, err := form.Submit(context.Background())
		assert.Contains(t, fieldErrors(t, err), "price")
		remote.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
		assert.Equal(t, 0, parent.calls)
		assert.Equal(t, v, form.Values())
	}
}

func TestProductForm_PriceBoundsInclusive(t *testing.T) {
	form := forms.NewProductForm(new(MockProducts), nil, quietLogger())
	for _, price := range []float64{100, 10_000_000} {
		v := validValues()
		v.Price = price
		form.Set(v)
		assert.NoError(t, form.Validate())
	}
}

func TestProductForm_PaddedTextIsValidatedTrimmed(t *testing.T) {
	remote := new(MockProducts)
	parent := &countingRefresher{}
	form := forms.NewProductForm(remote, parent, quietLogger())

	v := validValues()
	v.Name = "  ab "
	v.Description = "short desc" + strings.Repeat(" ", 15)
	form.Set(v)

	_, err := form.Submit(context.Background())
	fields := fieldErrors(t, err)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "description")
	remote.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, 0, parent.calls)
	assert.Equal(t, v, form.Values())
}

func TestProductForm_SendsTrimmedText(t *testing.T) {
	remote := new(MockProducts)
	form := forms.NewProductForm(remote, nil, quietLogger())

	v := validValues()
	v.Name = "  Standing Desk  "
	v.Description = "\t" + v.Description + "\n"
	form.Set(v)

	remote.On("Create", mock.Anything, mock.MatchedBy(func(p client.ProductPayload) bool {
		return p.Name == "Standing Desk" && p.Description == validValues().Description
	}), mock.Anything).Return(&models.Product{ID: "1", Name: "Standing Desk"}, nil).Once()

	_, err := form.Submit(context.Background())
	require.NoError(t, err)
	remote.AssertExpectations(t)
}

func TestProductForm_FieldRules(t *testing.T) {
	v := validValues()
	v.Name = "TV"
	v.Rating = 4.75
	v.Description = "Too short"
	v.Category = ""
	v.Features = models.FeatureList{"A", "a"}
	v.Image = &forms.Image{Filename: "desk.bmp", Data: []byte{1}}

	form := forms.NewProductForm(new(MockProducts), nil, quietLogger())
	form.Set(v)
	fields := fieldErrors(t, form.Validate())

	assert.Equal(t, "Must be at least 3 characters.", fields["name"])
	assert.Equal(t, "Must have at most one decimal place.", fields["rating"])
	assert.Equal(t, "Must be at least 20 characters.", fields["description"])
	assert.Equal(t, "This field is required.", fields["category"])
	assert.Contains(t, fields, "features")
	assert.Contains(t, fields, "image")
}

func TestProductForm_ImageRequiredOnCreateOnly(t *testing.T) {
	form := forms.NewProductForm(new(MockProducts), nil, quietLogger())
	v := validValues()
	v.Image = nil
	form.Set(v)
	assert.Equal(t, "Please upload an image.", fieldErrors(t, form.Validate())["image"])

	form.Edit(models.Product{ID: "9", Name: v.Name, Category: v.Category, Price: v.Price, Description: v.Description})
	assert.NoError(t, form.Validate())
}

func TestProductForm_CreateSuccess(t *testing.T) {
	remote := new(MockProducts)
	parent := &countingRefresher{}
	form := forms.NewProductForm(remote, parent, quietLogger())
	form.Set(validValues())

	remote.On("Create", mock.Anything, mock.MatchedBy(func(p client.ProductPayload) bool {
		return p.Name == "Standing Desk" && p.Price == 12000 && len(p.Features) == 2
	}), mock.MatchedBy(func(img *client.ImageFile) bool {
		return img != nil && img.ContentType == "image/jpeg" && img.Filename == "desk.JPG"
	})).Return(&models.Product{ID: "42", Name: "Standing Desk"}, nil).Once()

	saved, err := form.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.ID("42"), saved.ID)
	assert.Equal(t, 1, parent.calls)
	assert.Equal(t, forms.ProductValues{}, form.Values())
	assert.False(t, form.Submitting())
	remote.AssertExpectations(t)
}

func TestProductForm_ServerFailureKeepsValues(t *testing.T) {
	remote := new(MockProducts)
	parent := &countingRefresher{}
	form := forms.NewProductForm(remote, parent, quietLogger())
	form.Set(validValues())

	serverErr := &client.Error{StatusCode: 400, Message: "Product name already exists"}
	remote.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil, serverErr).Once()

	_, err := form.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Product name already exists", client.Message(err))
	assert.Equal(t, validValues().Name, form.Values().Name)
	assert.Equal(t, 0, parent.calls)
}

func TestProductForm_EditSubmitsUpdate(t *testing.T) {
	remote := new(MockProducts)
	form := forms.NewProductForm(remote, nil, quietLogger())
	v := validValues()
	form.Edit(models.Product{ID: "7", Name: v.Name, Category: v.Category, Price: v.Price, Rating: 3, Description: v.Description})
	assert.Equal(t, models.ID("7"), form.Editing())

	remote.On("Update", mock.Anything, models.ID("7"), mock.Anything).Return(&models.Product{ID: "7"}, nil).Once()

	_, err := form.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.ID(""), form.Editing())
	remote.AssertExpectations(t)
}

func TestProductForm_RejectsConcurrentSubmit(t *testing.T) {
	remote := new(MockProducts)
	form := forms.NewProductForm(remote, nil, quietLogger())
	form.Set(validValues())

	inFlight := make(chan struct{})
	release := make(chan struct{})
	remote.On("Create", mock.Anything, mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		close(inFlight)
		<-release
	}).Return(&models.Product{ID: "1"}, nil).Once()

	done := make(chan error, 1)
	go func() {
		_, err := form.Submit(context.Background())
		done <- err
	}()
	<-inFlight
	assert.True(t, form.Submitting())

	_, err := form.Submit(context.Background())
	assert.ErrorIs(t, err, forms.ErrSubmitting)

	close(release)
	assert.NoError(t, <-done)
	remote.AssertNumberOfCalls(t, "Create", 1)
}

func TestCategoryForm(t *testing.T) {
	remote := new(MockCategories)
	parent := &countingRefresher{}
	form := forms.NewCategoryForm(remote, parent, quietLogger())
	assert.Equal(t, "Add New Category", form.Title())

	form.Set(forms.CategoryValues{Name: "  ", Description: strings.Repeat("d", 501)})
	_, err := form.Submit(context.Background())
	fields := fieldErrors(t, err)
	assert.Equal(t, "This field is required.", fields["name"])
	assert.Equal(t, "Must be at most 500 characters.", fields["description"])
	remote.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)

	remote.On("Create", mock.Anything, client.CategoryPayload{Name: "Toys", Description: "Fun things"}).
		Return(&models.Category{ID: "3", Name: "Toys"}, nil).Once()
	form.Set(forms.CategoryValues{Name: " Toys ", Description: "Fun things"})
	_, err = form.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, parent.calls)

	form.Edit(models.Category{ID: "3", Name: "Toys", Description: "Fun things"})
	assert.Equal(t, "Edit Category", form.Title())
	remote.On("Update", mock.Anything, models.ID("3"), mock.Anything).
		Return(nil, errors.New("connection reset")).Once()
	_, err = form.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Toys", form.Values().Name)
	assert.Equal(t, 1, parent.calls)
	remote.AssertExpectations(t)
}

func TestLoginForm_LogsUsernameOnly(t *testing.T) {
	var buf bytes.Buffer
	form := forms.NewLoginForm(slog.New(slog.NewJSONHandler(&buf, nil)))

	err := form.Submit(forms.LoginValues{Username: "admin"})
	assert.Contains(t, fieldErrors(t, err), "password")

	require.NoError(t, form.Submit(forms.LoginValues{Username: "admin", Password: "hunter2"}))
	assert.Contains(t, buf.String(), `"username":"admin"`)
	assert.NotContains(t, buf.String(), "hunter2")
}
