package view

import (
	"github.com/shopspring/decimal"

	"backoffice/internal/cart"
	"backoffice/internal/models"
)

// CartLine is one row of the shopping cart.
type CartLine struct {
	ID       models.ID
	Name     string
	Image    string
	Price    string
	Quantity int
}

// CartSummary is the whole shopping cart as shown to the operator.
type CartSummary struct {
	Lines []CartLine
	Total decimal.Decimal
	// TotalText is formatted like catalog prices, e.g. $1798.
	TotalText string
}

// NewCartSummary derives the cart display from its items.
func NewCartSummary(items []models.CartItem) CartSummary {
	lines := make([]CartLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, CartLine{
			ID:       item.ID,
			Name:     item.Name,
			Image:    item.Image,
			Price:    Dollars(item.Price),
			Quantity: item.Quantity,
		})
	}
	total := cart.Total(items)
	return CartSummary{Lines: lines, Total: total, TotalText: "$" + total.String()}
}
