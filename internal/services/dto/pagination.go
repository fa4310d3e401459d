package dto

const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// PageQuery - общие параметры постраничного вывода
type PageQuery struct {
	Page    int `form:"page"`
	PerPage int `form:"perPage"`
}

// Normalize подставляет значения по умолчанию и ограничивает perPage
func (q PageQuery) Normalize() PageQuery {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.PerPage < 1 {
		q.PerPage = DefaultPerPage
	}
	if q.PerPage > MaxPerPage {
		q.PerPage = MaxPerPage
	}
	return q
}

type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalItems  int64 `json:"totalItems"`
	PerPage     int   `json:"perPage"`
}

type Meta struct {
	Pagination Pagination `json:"pagination"`
}

type PaginatedResponse[T any] struct {
	Data []T `json:"data"`
	Meta Meta `json:"meta"`
}

// NewPaginated - totalPages = ceil(totalItems / perPage)
func NewPaginated[T any](items []T, q PageQuery, total int64) PaginatedResponse[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if q.PerPage > 0 {
		totalPages = int((total + int64(q.PerPage) - 1) / int64(q.PerPage))
	}
	return PaginatedResponse[T]{
		Data: items,
		Meta: Meta{Pagination: Pagination{
			CurrentPage: q.Page,
			TotalPages:  totalPages,
			TotalItems:  total,
			PerPage:     q.PerPage,
		}},
	}
}

// DataResponse - обёртка {data}
type DataResponse[T any] struct {
	Data T `json:"data"`
}

// MessageDataResponse - обёртка {message, data}
type MessageDataResponse[T any] struct {
	Message string `json:"message"`
	Data    T      `json:"data"`
}
