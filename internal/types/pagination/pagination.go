package pagination

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// Params is an offset page request. Zero values fall back to the defaults
// and Limit is capped at MaxLimit.
type Params struct {
	Page  int
	Limit int
}

func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Skip is the offset of the first item on the page. It saturates at
// math.MaxInt instead of overflowing for very large pages.
func (p Params) Skip() int {
	n := p.Normalize()
	if n.Page-1 > math.MaxInt/n.Limit {
		return math.MaxInt
	}
	return (n.Page - 1) * n.Limit
}

func (p Params) Result(total int64) Pagination {
	n := p.Normalize()
	return Pagination{
		Page:       n.Page,
		Limit:      n.Limit,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(n.Limit))),
	}
}

// Slice returns the window of items selected by p.
func Slice[T any](items []T, p Params) []T {
	n := p.Normalize()
	if n.Page-1 > len(items)/n.Limit {
		return []T{}
	}
	start := (n.Page - 1) * n.Limit
	if start >= len(items) {
		return []T{}
	}
	end := start + n.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// Page is one window of a listing together with its pagination metadata.
type Page[T any] struct {
	Items      []T
	Pagination Pagination
}

// Paginate windows items and describes the window.
func Paginate[T any](items []T, p Params) Page[T] {
	return Page[T]{
		Items:      Slice(items, p),
		Pagination: p.Result(int64(len(items))),
	}
}
