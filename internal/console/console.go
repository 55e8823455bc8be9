// Package console renders list views as plain-text tables.
package console

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"text/tabwriter"

	"backoffice/internal/view"
)

// Notifier prints notifications, one per line.
type Notifier struct {
	mu  sync.Mutex
	Out io.Writer
}

// Success prints msg prefixed with "✓".
func (n *Notifier) Success(msg string) { n.print("✓", msg) }

// Error prints msg prefixed with "✗".
func (n *Notifier) Error(msg string) { n.print("✗", msg) }

func (n *Notifier) print(mark, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.Out, "%s %s\n", mark, msg)
}

func table(w io.Writer, header []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

func checkbox(selected bool) string {
	if selected {
		return "[x]"
	}
	return "[ ]"
}

// Products writes one page of product rows followed by the page summary.
func Products(w io.Writer, page view.Page[view.ProductRow]) error {
	rows := make([][]string, 0, len(page.Items))
	for _, r := range page.Items {
		rows = append(rows, []string{
			r.ID.String(), r.Name, r.Category, r.Price, fmt.Sprint(r.Stock), r.Rating, r.Status,
		})
	}
	if err := table(w, []string{"ID", "NAME", "CATEGORY", "PRICE", "STOCK", "RATING", "STATUS"}, rows); err != nil {
		return err
	}
	return summary(w, page.Number, page.TotalPages, page.Summary())
}

// Categories writes category rows, marking the selected ones.
func Categories(w io.Writer, rows []view.CategoryRow, selected func(view.CategoryRow) bool) error {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{checkbox(selected != nil && selected(r)), r.ID.String(), r.Name, r.Description, r.Products})
	}
	return table(w, []string{"", "ID", "NAME", "DESCRIPTION", "PRODUCTS"}, out)
}

// Orders writes one page of order rows. When expand is set each row is
// followed by its detail.
func Orders(w io.Writer, page view.Page[view.OrderRow], details map[string]view.OrderDetail) error {
	header := []string{"CUSTOMER", "CITY", "PHONE", "PAYMENT", "TOTAL", "DATE", "STATUS"}
	if details == nil {
		rows := make([][]string, 0, len(page.Items))
		for _, r := range page.Items {
			rows = append(rows, orderCells(r))
		}
		if err := table(w, header, rows); err != nil {
			return err
		}
		return summary(w, page.Number, page.TotalPages, page.Summary())
	}

	for _, r := range page.Items {
		if err := table(w, header, [][]string{orderCells(r)}); err != nil {
			return err
		}
		OrderDetail(w, details[r.ID.String()])
		fmt.Fprintln(w)
	}
	return summary(w, page.Number, page.TotalPages, page.Summary())
}

func orderCells(r view.OrderRow) []string {
	return []string{r.Customer, r.City, r.Phone, r.Payment, r.Total, r.Date, r.Status}
}

// OrderDetail writes the expanded order: its lines or the placeholder.
func OrderDetail(w io.Writer, d view.OrderDetail) {
	if d.Empty {
		fmt.Fprintf(w, "    %s\n", d.Placeholder)
		return
	}
	fmt.Fprintf(w, "    %s\n", d.Header)
	for _, line := range d.Lines {
		fmt.Fprintf(w, "      %-30s Qty: %-4d %s\n", line.Name, line.Quantity, line.LineTotalText)
		if line.Address != "" {
			fmt.Fprintf(w, "        Address: %s\n", line.Address)
		}
	}
	fmt.Fprintf(w, "    Order Total: %s\n", d.OrderTotal)
	if d.Address != "" {
		fmt.Fprintf(w, "    Delivery address: %s\n", d.Address)
	}
}

// Cart writes the cart lines and total.
func Cart(w io.Writer, s view.CartSummary) error {
	rows := make([][]string, 0, len(s.Lines))
	for _, l := range s.Lines {
		rows = append(rows, []string{l.ID.String(), l.Name, l.Price, fmt.Sprint(l.Quantity)})
	}
	if err := table(w, []string{"ID", "NAME", "PRICE", "QTY"}, rows); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Total: %s\n", s.TotalText)
	return err
}

func summary(w io.Writer, page, pages int, caption string) error {
	_, err := fmt.Fprintf(w, "%s (page %d of %d)\n", caption, page, pages)
	return err
}
