package view_test

import (
	"slices"
	"testing"
	"time"

	"backoffice/internal/models"
	"backoffice/internal/view"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockStatus(t *testing.T) {
	tests := []struct {
		stock  int
		status string
		color  string
	}{
		{0, view.OutOfStock, "red"},
		{1, view.LowStock, "orange"},
		{30, view.LowStock, "orange"},
		{31, view.InStock, "green"},
	}
	for _, tt := range tests {
		status, color := view.StockStatus(tt.stock)
		assert.Equal(t, tt.status, status, "stock %d", tt.stock)
		assert.Equal(t, tt.color, color, "stock %d", tt.stock)
	}
}

func TestNewProductRow(t *testing.T) {
	row := view.NewProductRow(models.Product{ID: "1", Name: "iPhone", Category: "Electronics", Price: 999, Stock: 50, Rating: 4.6,
		Images: []string{"/uploads/a.png"}})
	assert.Equal(t, "$999", row.Price)
	assert.Equal(t, view.InStock, row.Status)
	assert.Equal(t, "4.6", row.Rating)
	assert.Equal(t, "/uploads/a.png", row.Image)
}

func TestProductOrderAndFilter(t *testing.T) {
	products := []models.Product{
		{Name: "b", Price: 3, Stock: 1, Category: "Books"},
		{Name: "A", Price: 1, Stock: 9, Category: "Electronics"},
		{Name: "c", Price: 2, Stock: 5, Category: "Books"},
	}
	names := func(ps []models.Product) []string {
		out := make([]string, 0, len(ps))
		for _, p := range ps {
			out = append(out, p.Name)
		}
		return out
	}

	sorted := slices.Clone(products)
	slices.SortStableFunc(sorted, view.ProductOrder("name"))
	assert.Equal(t, []string{"A", "b", "c"}, names(sorted))

	slices.SortStableFunc(sorted, view.ProductOrder("-price"))
	assert.Equal(t, []string{"b", "c", "A"}, names(sorted))

	assert.Nil(t, view.ProductOrder("rating"))
	assert.Nil(t, view.CategoryFilter(""))
	keep := view.CategoryFilter("Books")
	assert.True(t, keep(products[0]))
	assert.False(t, keep(products[1]))
}

func TestCategoryRows(t *testing.T) {
	rows := view.CategoryRows([]models.Category{{ID: "1", Name: "Books", Description: "Reading", ProductCount: 12}})
	require.Len(t, rows, 1)
	assert.Equal(t, "12 items", rows[0].Products)
}

func TestOrderDetail_LineAndOrderTotals(t *testing.T) {
	order := models.Order{
		ID:        "o1",
		FirstName: "Somchai",
		Total:     30,
		CartItems: []models.CartItem{{ID: "1", Name: "Tea", Price: 10, Quantity: 3, Address: "Gate 2"}},
		Address:   "99 Sukhumvit Rd",
	}
	d := view.NewOrderDetail(order)
	assert.False(t, d.Empty)
	assert.Equal(t, "Ordered Items (1)", d.Header)
	require.Len(t, d.Lines, 1)
	assert.True(t, decimal.NewFromInt(30).Equal(d.Lines[0].LineTotal))
	assert.Equal(t, "฿30.00", d.Lines[0].LineTotalText)
	assert.Equal(t, "฿30", d.OrderTotal)
	assert.Equal(t, "Gate 2", d.Lines[0].Address)
}

func TestOrderDetail_NoItems(t *testing.T) {
	d := view.NewOrderDetail(models.Order{ID: "o2"})
	assert.True(t, d.Empty)
	assert.Equal(t, view.NoItemsPlaceholder, d.Placeholder)
	assert.Empty(t, d.Lines)
}

func TestNewOrderRow(t *testing.T) {
	created := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)
	row := view.NewOrderRow(models.Order{
		FirstName:     "Ann",
		LastName:      "Lee",
		PaymentMethod: "card",
		Total:         1234567.5,
		CreatedAt:     created,
	})
	assert.Equal(t, "Ann Lee", row.Customer)
	assert.Equal(t, "-", row.City)
	assert.Equal(t, "-", row.Phone)
	assert.Equal(t, "CARD", row.Payment)
	assert.Equal(t, "blue", row.PaymentColor)
	assert.Equal(t, "฿1,234,567.5", row.Total)
	assert.Equal(t, "3/5/2024, 2:07:09 PM", row.Date)
	assert.Equal(t, "Waiting", row.Status)
	assert.Equal(t, "gold", row.StatusColor)
}

func TestOrderStatusAndPayment(t *testing.T) {
	for status, color := range map[string]string{"success": "green", "waiting": "gold", "failed": "red", "shipped": "blue"} {
		_, got := view.OrderStatus(status)
		assert.Equal(t, color, got, status)
	}
	text, color := view.Payment("")
	assert.Equal(t, "N/A", text)
	assert.Equal(t, "blue", color)
	text, color = view.Payment("cash")
	assert.Equal(t, "CASH", text)
	assert.Equal(t, "green", color)
	assert.Equal(t, "-", view.FormatDate(time.Time{}))
}

func TestGrouped(t *testing.T) {
	assert.Equal(t, "0", view.Grouped(decimal.Zero))
	assert.Equal(t, "999", view.Grouped(decimal.NewFromInt(999)))
	assert.Equal(t, "1,000", view.Grouped(decimal.NewFromInt(1000)))
	assert.Equal(t, "-12,345.25", view.Grouped(decimal.RequireFromString("-12345.25")))
}

func TestPaginate(t *testing.T) {
	items := make([]int, 23)
	for i := range items {
		items[i] = i
	}

	p := view.Paginate(items, 1, 0)
	assert.Equal(t, view.DefaultPageSize, p.Size)
	assert.Len(t, p.Items, 10)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, "Total 23 items", p.Summary())

	p = view.Paginate(items, 3, 10)
	assert.Equal(t, []int{20, 21, 22}, p.Items)

	p = view.Paginate(items, 99, 20)
	assert.Equal(t, 2, p.Number)
	assert.Len(t, p.Items, 3)

	empty := view.Paginate([]int{}, 1, 50)
	assert.Equal(t, 1, empty.TotalPages)
	assert.Empty(t, empty.Items)
	assert.Equal(t, "Total 0 items", empty.Summary())
}

func TestNewCartSummary(t *testing.T) {
	s := view.NewCartSummary([]models.CartItem{
		{ID: "1", Name: "iPhone", Price: 999, Quantity: 1},
		{ID: "2", Name: "Case", Price: 49.5, Quantity: 2},
	})
	require.Len(t, s.Lines, 2)
	assert.Equal(t, "$999", s.Lines[0].Price)
	assert.Equal(t, "$1098", s.TotalText)
}
