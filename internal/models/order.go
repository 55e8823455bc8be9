package models

import (
	"strings"
	"time"
)

// Payment methods. Anything other than cash is shown as-is.
const (
	PaymentCash = "cash"
)

// Order statuses. Status is free text on the wire; these are the known values.
const (
	StatusSuccess = "success"
	StatusWaiting = "waiting"
	StatusFailed  = "failed"
)

// CartItem represents a single line in a cart or an order.
type CartItem struct {
	ID       ID      `json:"id"`
	Name     string  `json:"name" validate:"required"`
	Price    float64 `json:"price" validate:"gte=0"`
	Quantity int     `json:"quantity" validate:"gte=1"`
	Image    string  `json:"image,omitempty"`
	Address  string  `json:"address,omitempty"`
}

// Order represents a customer order.
type Order struct {
	ID            ID         `json:"_id" gorm:"primaryKey;type:varchar(36)"`
	FirstName     string     `json:"firstName" validate:"required"`
	LastName      string     `json:"lastName"`
	City          string     `json:"city"`
	Phone         string     `json:"phone"`
	PaymentMethod string     `json:"paymentMethod"`
	Total         float64    `json:"total" validate:"gte=0"`
	Status        string     `json:"status"`
	CartItems     []CartItem `json:"cartItems" gorm:"serializer:json" validate:"dive"`
	Address       string     `json:"address"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// RecordID returns the order id.
func (o Order) RecordID() ID { return o.ID }

// SearchFields returns the string fields matched by list search, including
// the name and address of every cart item.
func (o Order) SearchFields() []string {
	fields := []string{o.FirstName, o.LastName, o.City, o.Phone, o.PaymentMethod, o.Status, o.Address}
	for _, item := range o.CartItems {
		fields = append(fields, item.Name, item.Address)
	}
	return fields
}

// CustomerName joins the name parts.
func (o Order) CustomerName() string {
	return strings.TrimSpace(o.FirstName + " " + o.LastName)
}
