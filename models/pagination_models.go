package models

// Page is a 1-based skip/limit window.
type Page struct {
	Number int
	Limit  int
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

// HasMore reports whether total items extend past this page.
func (p Page) HasMore(total int) bool {
	return total > p.Number*p.Limit
}

type PagedResponse[T any] struct {
	Data    []T  `json:"data"`
	Page    int  `json:"page"`
	Limit   int  `json:"limit"`
	HasMore bool `json:"hasMore"`
	Total   *int `json:"total,omitempty"`
}

// NewPagedResponse builds a response without a total.
func NewPagedResponse[T any](data []T, p Page, total int) PagedResponse[T] {
	if data == nil {
		data = []T{}
	}
	return PagedResponse[T]{Data: data, Page: p.Number, Limit: p.Limit, HasMore: p.HasMore(total)}
}

// WithTotal returns a copy that also reports the total count.
func (r PagedResponse[T]) WithTotal(total int) PagedResponse[T] {
	r.Total = &total
	return r
}
