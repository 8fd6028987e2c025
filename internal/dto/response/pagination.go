package response

import "hotel-booking/pkg/utils"

type PaginationMeta struct {
	Total       int64 `json:"total"`
	PerPage     int   `json:"per_page"`
	CurrentPage int   `json:"current_page"`
	LastPage    int   `json:"last_page"`
}

func NewPaginationMeta(page, perPage int, total int64) PaginationMeta {
	if page < 1 {
		page = 1
	}
	return PaginationMeta{
		Total:       total,
		PerPage:     perPage,
		CurrentPage: page,
		LastPage:    utils.LastPage(total, perPage),
	}
}

// Page is one page of items with its pagination metadata.
type Page[T any] struct {
	Data       []T
	Pagination PaginationMeta
}

func NewPage[T any](data []T, page, perPage int, total int64) *Page[T] {
	if data == nil {
		data = []T{}
	}
	return &Page[T]{
		Data:       data,
		Pagination: NewPaginationMeta(page, perPage, total),
	}
}
