package query

// Pagination is the backend's pagination block, returned verbatim on every
// list response.
type Pagination struct {
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	TotalItems   int `json:"totalItems"`
	ItemsPerPage int `json:"itemsPerPage"`
}

// Page is one server snapshot of a collection. It is replaced wholesale on
// every fetch, never patched incrementally.
type Page[T any] struct {
	Items        []T
	CurrentPage  int
	TotalPages   int
	TotalItems   int
	ItemsPerPage int
}

// NewPage builds a Page from items and the server's pagination block,
// clamping the metadata into a consistent range.
func NewPage[T any](items []T, p Pagination) Page[T] {
	if p.ItemsPerPage < 1 {
		p.ItemsPerPage = DefaultLimit
	}
	if p.TotalItems < 0 {
		p.TotalItems = 0
	}
	if p.TotalPages < 1 {
		p.TotalPages = 1
	}
	if p.CurrentPage < 1 {
		p.CurrentPage = 1
	}
	if p.CurrentPage > p.TotalPages {
		p.CurrentPage = p.TotalPages
	}
	if len(items) > p.ItemsPerPage {
		items = items[:p.ItemsPerPage]
	}
	return Page[T]{
		Items:        items,
		CurrentPage:  p.CurrentPage,
		TotalPages:   p.TotalPages,
		TotalItems:   p.TotalItems,
		ItemsPerPage: p.ItemsPerPage,
	}
}

// Empty reports whether the snapshot holds no items. An empty page is a
// valid terminal state, not an error.
func (p Page[T]) Empty() bool {
	return len(p.Items) == 0
}
