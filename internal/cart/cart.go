// Package cart keeps the operator's local shopping cart.
package cart

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/shopspring/decimal"

	"backoffice/internal/models"
)

var (
	ErrEmpty           = errors.New("cart is empty")
	ErrNotInCart       = errors.New("item is not in the cart")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// OrderCreator places an order on the backend.
type OrderCreator interface {
	Create(ctx context.Context, order models.Order) (*models.Order, error)
}

// Customer holds the delivery details collected at checkout.
type Customer struct {
	FirstName     string
	LastName      string
	City          string
	Phone         string
	Address       string
	PaymentMethod string
}

// Cart is an ordered list of items. It is safe for concurrent use.
type Cart struct {
	mu    sync.Mutex
	items []models.CartItem
}

// New returns a cart holding items.
func New(items ...models.CartItem) *Cart {
	c := &Cart{}
	for _, item := range items {
		_ = c.Add(item)
	}
	return c
}

// Add puts item in the cart, merging quantities when the id is already there.
func (c *Cart) Add(item models.CartItem) error {
	if item.Quantity < 1 {
		return ErrInvalidQuantity
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == item.ID {
			c.items[i].Quantity += item.Quantity
			return nil
		}
	}
	c.items = append(c.items, item)
	return nil
}

// SetQuantity changes the quantity of the item with the given id.
func (c *Cart) SetQuantity(id models.ID, qty int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Quantity = qty
			return nil
		}
	}
	return ErrNotInCart
}

// Remove drops the item with the given id.
func (c *Cart) Remove(id models.ID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.items)
	c.items = slices.DeleteFunc(c.items, func(item models.CartItem) bool { return item.ID == id })
	if len(c.items) == n {
		return ErrNotInCart
	}
	return nil
}

// Items returns a copy of the cart lines.
func (c *Cart) Items() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.items)
}

// Total is the sum of price × quantity over all lines.
func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Total(c.items)
}

// Total sums price × quantity. A quantity below 1 counts as 1.
func Total(items []models.CartItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(LineTotal(item))
	}
	return sum
}

// LineTotal is price × quantity for one line.
func LineTotal(item models.CartItem) decimal.Decimal {
	qty := item.Quantity
	if qty < 1 {
		qty = 1
	}
	return decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(qty)))
}

// Checkout places an order for the cart contents and empties the cart. The
// cart is left untouched when the order fails.
func (c *Cart) Checkout(ctx context.Context, orders OrderCreator, cust Customer) (*models.Order, error) {
	items := c.Items()
	if len(items) == 0 {
		return nil, ErrEmpty
	}
	payment := cust.PaymentMethod
	if payment == "" {
		payment = models.PaymentCash
	}
	total, _ := Total(items).Float64()
	order := models.Order{
		FirstName:     cust.FirstName,
		LastName:      cust.LastName,
		City:          cust.City,
		Phone:         cust.Phone,
		PaymentMethod: payment,
		Total:         total,
		Status:        models.StatusWaiting,
		CartItems:     items,
		Address:       cust.Address,
	}
	placed, err := orders.Create(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("checkout failed: %w", err)
	}

	c.mu.Lock()
	c.items = slices.DeleteFunc(c.items, func(item models.CartItem) bool {
		return slices.ContainsFunc(items, func(ordered models.CartItem) bool { return ordered.ID == item.ID })
	})
	c.mu.Unlock()
	return placed, nil
}
