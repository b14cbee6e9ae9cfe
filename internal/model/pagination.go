package model

// Pagination describes one page of a list response. It is constructed per
// response and never persisted.
type Pagination struct {
	Page    int `json:"page"`
	Pages   int `json:"pages"`
	OnPage  int `json:"on_page"`
	Results int `json:"results"`
}

// NewPagination computes page metadata from the requested page, the page
// size and the total match count. A zero or negative limit degrades to a
// zero-results shape instead of failing; out-of-range pages are not
// validated and simply correspond to empty result sets upstream.
func NewPagination(page, limit, total int) *Pagination {
	pages := 0
	if limit <= 0 {
		total = 0
	} else {
		pages = (total + limit - 1) / limit
	}

	return &Pagination{
		Page:    page,
		Pages:   pages,
		OnPage:  limit,
		Results: total,
	}
}
