package usecases

import "math"

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

type Pagination struct {
	Page    int
	PerPage int
}

// Normalize clamps the pagination to page >= 1 and 1..MaxPerPage items.
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	return p
}

func (p Pagination) Limit() int {
	return p.Normalize().PerPage
}

// Offset saturates at math.MaxInt so pages past the end stay empty.
func (p Pagination) Offset() int {
	n := p.Normalize()
	if n.Page-1 > math.MaxInt/n.PerPage {
		return math.MaxInt
	}
	return (n.Page - 1) * n.PerPage
}

type PageMeta struct {
	Total     int `json:"total"`
	Page      int `json:"page"`
	PerPage   int `json:"perPage"`
	LastPage  int `json:"lastPage"`
	FirstPage int `json:"firstPage"`
}

func NewPageMeta(total int, pagination Pagination) PageMeta {
	p := pagination.Normalize()
	lastPage := (total + p.PerPage - 1) / p.PerPage
	if lastPage < 1 {
		lastPage = 1
	}
	return PageMeta{
		Total:     total,
		Page:      p.Page,
		PerPage:   p.PerPage,
		LastPage:  lastPage,
		FirstPage: 1,
	}
}

type Page[T any] struct {
	Data []T      `json:"data"`
	Meta PageMeta `json:"meta"`
}
