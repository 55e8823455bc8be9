package view

import (
	"cmp"
	"strconv"
	"strings"

	"backoffice/internal/models"
)

// LowStockThreshold is the stock level at or below which a product is
// flagged as running low.
const LowStockThreshold = 30

// Stock statuses.
const (
	InStock    = "In Stock"
	LowStock   = "Low Stock"
	OutOfStock = "Out of Stock"
)

// ProductRow is one line of the product table.
type ProductRow struct {
	ID          models.ID
	Image       string
	Name        string
	Category    string
	Price       string
	Stock       int
	Status      string
	StatusColor string
	Rating      string
}

// StockStatus classifies a stock level.
func StockStatus(stock int) (status, color string) {
	switch {
	case stock <= 0:
		return OutOfStock, "red"
	case stock <= LowStockThreshold:
		return LowStock, "orange"
	default:
		return InStock, "green"
	}
}

// NewProductRow derives the table row for p.
func NewProductRow(p models.Product) ProductRow {
	status, color := StockStatus(p.Stock)
	return ProductRow{
		ID:          p.ID,
		Image:       p.Image(),
		Name:        p.Name,
		Category:    p.Category,
		Price:       Dollars(p.Price),
		Stock:       p.Stock,
		Status:      status,
		StatusColor: color,
		Rating:      strconv.FormatFloat(p.Rating, 'f', 1, 64),
	}
}

// ProductRows derives rows for every product.
func ProductRows(products []models.Product) []ProductRow {
	rows := make([]ProductRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, NewProductRow(p))
	}
	return rows
}

// ProductOrder returns a comparator for the sortable product columns
// ("name", "price", "stock"), or nil for anything else. A leading "-"
// reverses the order.
func ProductOrder(column string) func(a, b models.Product) int {
	desc := strings.HasPrefix(column, "-")
	column = strings.TrimPrefix(column, "-")

	var compare func(a, b models.Product) int
	switch column {
	case "name":
		compare = func(a, b models.Product) int {
			return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		}
	case "price":
		compare = func(a, b models.Product) int { return cmp.Compare(a.Price, b.Price) }
	case "stock":
		compare = func(a, b models.Product) int { return cmp.Compare(a.Stock, b.Stock) }
	default:
		return nil
	}
	if desc {
		return func(a, b models.Product) int { return compare(b, a) }
	}
	return compare
}

// CategoryFilter keeps products whose category equals category exactly.
// An empty category keeps everything.
func CategoryFilter(category string) func(models.Product) bool {
	if category == "" {
		return nil
	}
	return func(p models.Product) bool { return p.Category == category }
}
