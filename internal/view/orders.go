package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"backoffice/internal/cart"
	"backoffice/internal/models"
)

// NoItemsPlaceholder replaces the item table of an order without items.
const NoItemsPlaceholder = "No items in this order"

const dateLayout = "1/2/2006, 3:04:05 PM"

// OrderRow is one line of the order table.
type OrderRow struct {
	ID           models.ID
	Customer     string
	City         string
	Phone        string
	Payment      string
	PaymentColor string
	Total        string
	Date         string
	Status       string
	StatusColor  string
}

// OrderLine is one ordered item in the expanded order detail.
type OrderLine struct {
	Name          string
	Quantity      int
	Address       string
	LineTotal     decimal.Decimal
	LineTotalText string
}

// OrderDetail is the expanded view of one order.
type OrderDetail struct {
	Empty       bool
	Placeholder string
	Header      string
	Lines       []OrderLine
	OrderTotal  string
	Address     string
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// OrderStatus returns the status text, defaulting to "Waiting", and its color.
func OrderStatus(status string) (text, color string) {
	text = status
	if strings.TrimSpace(text) == "" {
		text = "Waiting"
	}
	switch strings.ToLower(text) {
	case models.StatusSuccess:
		color = "green"
	case models.StatusWaiting:
		color = "gold"
	case models.StatusFailed:
		color = "red"
	default:
		color = "blue"
	}
	return text, color
}

// Payment returns the upper-cased payment method, or "N/A", and its color.
func Payment(method string) (text, color string) {
	color = "blue"
	if method == models.PaymentCash {
		color = "green"
	}
	if method == "" {
		return "N/A", color
	}
	return strings.ToUpper(method), color
}

// FormatDate renders t in its own location, or "-" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(dateLayout)
}

// NewOrderRow derives the table row for o.
func NewOrderRow(o models.Order) OrderRow {
	payment, paymentColor := Payment(o.PaymentMethod)
	status, statusColor := OrderStatus(o.Status)
	return OrderRow{
		ID:           o.ID,
		Customer:     fmt.Sprintf("%s %s", o.FirstName, o.LastName),
		City:         dash(o.City),
		Phone:        dash(o.Phone),
		Payment:      payment,
		PaymentColor: paymentColor,
		Total:        Baht(o.Total),
		Date:         FormatDate(o.CreatedAt),
		Status:       status,
		StatusColor:  statusColor,
	}
}

// OrderRows derives rows for every order.
func OrderRows(orders []models.Order) []OrderRow {
	rows := make([]OrderRow, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, NewOrderRow(o))
	}
	return rows
}

// NewOrderDetail derives the expanded detail of o. An order without items
// gets the placeholder instead of lines.
func NewOrderDetail(o models.Order) OrderDetail {
	if len(o.CartItems) == 0 {
		return OrderDetail{Empty: true, Placeholder: NoItemsPlaceholder}
	}
	lines := make([]OrderLine, 0, len(o.CartItems))
	for _, item := range o.CartItems {
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}
		total := cart.LineTotal(item)
		lines = append(lines, OrderLine{
			Name:          item.Name,
			Quantity:      qty,
			Address:       item.Address,
			LineTotal:     total,
			LineTotalText: BahtFixed(total),
		})
	}
	return OrderDetail{
		Header:     fmt.Sprintf("Ordered Items (%d)", len(o.CartItems)),
		Lines:      lines,
		OrderTotal: Baht(o.Total),
		Address:    o.Address,
	}
}
