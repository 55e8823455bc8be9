// Package view derives what the console shows from controller state. Every
// function here is pure: state in, display values out.
package view

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Grouped formats d with thousands separators and at most three decimals,
// dropping trailing zeros: 1234.5 -> "1,234.5".
func Grouped(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + Grouped(d.Abs())
	}
	s := d.Round(3).String()
	whole, frac, _ := strings.Cut(s, ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return s
	}
	out := printer.Sprintf("%d", n)
	if frac != "" {
		out += "." + frac
	}
	return out
}

// Baht formats an order amount, e.g. ฿1,234.
func Baht(amount float64) string {
	return "฿" + Grouped(decimal.NewFromFloat(amount))
}

// BahtFixed formats a line amount with two decimals, e.g. ฿30.00.
func BahtFixed(d decimal.Decimal) string {
	return "฿" + d.StringFixed(2)
}

// Dollars formats a catalog price without grouping, e.g. $999.
func Dollars(amount float64) string {
	return "$" + decimal.NewFromFloat(amount).String()
}
