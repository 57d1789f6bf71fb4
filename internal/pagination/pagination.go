// Package pagination holds the pure page arithmetic shared by every listing
// endpoint.
package pagination

// Meta is the pagination block attached to paged responses.
type Meta struct {
	CurrentPage int64 `json:"currentPage"`
	TotalPages  int64 `json:"totalPages"`
	TotalCount  int64 `json:"totalCount"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}

// Window is the store-facing counterpart of Meta: how many documents to skip
// for a given page plus the derived page flags.
type Window struct {
	Skip       int64
	TotalPages int64
	HasNext    bool
	HasPrev    bool
}

// Compute derives the window for a 1-indexed page. Callers validate that page
// and limit are positive before calling. A total of zero yields zero pages
// and both flags false.
func Compute(total, page, limit int64) Window {
	w := Window{Skip: (page - 1) * limit}
	if total > 0 {
		w.TotalPages = (total + limit - 1) / limit
	}
	w.HasNext = page < w.TotalPages
	w.HasPrev = page > 1
	return w
}

// NewMeta builds the response block for a page that was fetched with the
// given total/page/limit.
func NewMeta(total, page, limit int64) Meta {
	w := Compute(total, page, limit)
	return Meta{
		CurrentPage: page,
		TotalPages:  w.TotalPages,
		TotalCount:  total,
		HasNext:     w.HasNext,
		HasPrev:     w.HasPrev,
	}
}
