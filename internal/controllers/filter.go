package controllers

import (
	"strings"

	"backoffice/internal/models"
)

// Record is a server-owned entity shown in a list view.
type Record interface {
	RecordID() models.ID
	// SearchFields returns the string-valued fields that search matches against.
	SearchFields() []string
}

// Matches reports whether any search field of rec contains search,
// ignoring case. Whitespace is part of the search; only "" matches everything.
func Matches(rec Record, search string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	for _, field := range rec.SearchFields() {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// Filter returns the records matching search in their original order.
// The input slice is never modified.
func Filter[T Record](items []T, search string) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if Matches(item, search) {
			out = append(out, item)
		}
	}
	return out
}
