package models

// Job is an immutable snapshot of a catalog posting.
type Job struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Description string `json:"description"`
}

// Pagination describes the browsing position. Only meaningful in browsing mode.
type Pagination struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
}

// SinglePage is the pagination shown for search results and the favorites view.
var SinglePage = Pagination{CurrentPage: 1, TotalPages: 1}

// HasNext reports whether a page after the current one exists.
func (p Pagination) HasNext() bool {
	return p.CurrentPage < p.TotalPages
}

// HasPrev reports whether a page before the current one exists.
func (p Pagination) HasPrev() bool {
	return p.CurrentPage > 1
}

// Contains reports whether page is a valid page number.
func (p Pagination) Contains(page int) bool {
	return page >= 1 && page <= p.TotalPages
}
