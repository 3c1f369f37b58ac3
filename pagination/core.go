package pagination

import "math"

// List is one page of a listing. Pagination.TotalElements is the number
// of rows matching the filter, regardless of the page.
type List[T any] struct {
	Pagination Pagination
	Items      []T
}

type Order int

const (
	OrderDescending Order = 0
	OrderAscending  Order = 1
)

type Pagination struct {
	CurrentPage     int
	ElementsPerPage int
	TotalElements   int
	Order           Order
	SortCode        int
	Enabled         bool
}

// Normalize returns a copy with the page number starting at 1 and a
// positive page size, using defaultSize when the size is not set.
func (p Pagination) Normalize(defaultSize int) Pagination {
	if p.CurrentPage < 1 {
		p.CurrentPage = 1
	}
	if p.ElementsPerPage <= 0 {
		p.ElementsPerPage = defaultSize
	}
	return p
}

// Offset is the number of rows before the current page. It saturates at
// math.MaxInt instead of overflowing.
func (p Pagination) Offset() int {
	if p.CurrentPage < 1 || p.ElementsPerPage <= 0 {
		return 0
	}
	if p.CurrentPage-1 > math.MaxInt/p.ElementsPerPage {
		return math.MaxInt
	}
	return (p.CurrentPage - 1) * p.ElementsPerPage
}

func (p Pagination) Limit() int {
	return p.ElementsPerPage
}

func (p Pagination) LastPage() int {
	if p.ElementsPerPage <= 0 {
		return 1
	}
	return int(math.Ceil(float64(p.TotalElements) / float64(p.ElementsPerPage)))
}

func (p Pagination) Ascending() bool {
	return p.Order == OrderAscending
}
