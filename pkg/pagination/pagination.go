package pagination

// PageRequest is a plain page-number request. Page is 1-based; values
// below 1 are treated as the first page.
type PageRequest struct {
	Page int
	Size int
}

func (r PageRequest) Normalize(defaultSize int) PageRequest {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Size <= 0 {
		r.Size = defaultSize
	}
	return r
}

// Offset is the number of rows to skip for this page.
func (r PageRequest) Offset() int {
	return (r.Page - 1) * r.Size
}

type Page[T any] struct {
	Items       []T  `json:"items"`
	Number      int  `json:"number"`
	Size        int  `json:"size"`
	Count       int  `json:"count"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// NewPage slices a peeked result set (up to size+1 items) into a page.
func NewPage[T any](items []T, req PageRequest) Page[T] {
	p := Page[T]{
		Number:      req.Page,
		Size:        req.Size,
		HasPrevious: req.Page > 1,
	}
	if len(items) > req.Size {
		p.HasNext = true
		items = items[:req.Size]
	}
	p.Items = items
	p.Count = len(items)
	return p
}
