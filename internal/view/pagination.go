package view

import "fmt"

// PageSizes are the page sizes offered by list tables.
var PageSizes = []int{10, 20, 50}

// DefaultPageSize is used when an unsupported size is requested.
const DefaultPageSize = 10

// Page is one page of a client-side paginated table.
type Page[T any] struct {
	Items      []T
	Number     int
	Size       int
	TotalPages int
	Total      int
}

// Summary is the "Total N items" caption under the table.
func (p Page[T]) Summary() string {
	return fmt.Sprintf("Total %d items", p.Total)
}

// Paginate slices items into page number (1-based) of the given size.
// Out-of-range page numbers are clamped.
func Paginate[T any](items []T, number, size int) Page[T] {
	valid := false
	for _, s := range PageSizes {
		if s == size {
			valid = true
			break
		}
	}
	if !valid {
		size = DefaultPageSize
	}
	totalPages := (len(items) + size - 1) / size
	if totalPages == 0 {
		totalPages = 1
	}
	number = min(max(number, 1), totalPages)

	start := (number - 1) * size
	end := min(start+size, len(items))
	return Page[T]{
		Items:      items[start:end],
		Number:     number,
		Size:       size,
		TotalPages: totalPages,
		Total:      len(items),
	}
}
