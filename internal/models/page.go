package models

// Page is the caller-supplied pagination window for listing operations.
type Page struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

const (
	// DefaultPageSize applies when a caller passes a non-positive limit.
	DefaultPageSize = 20
	// MaxPageSize caps a single listing window.
	MaxPageSize = 100
)

// Normalized returns a copy with the limit defaulted and capped and a
// non-negative offset.
func (p Page) Normalized() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultPageSize
	}
	if p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// PostPage is an ordered window over the post set. NextOffset is set
// when the window was full, i.e. a following page may exist.
type PostPage struct {
	Items      []*Post `json:"items"`
	NextOffset *int    `json:"next_offset,omitempty"`
}

// NewPostPage wraps items fetched with page, computing NextOffset.
func NewPostPage(items []*Post, page Page) *PostPage {
	pp := &PostPage{Items: items}
	if len(items) == page.Limit && page.Limit > 0 {
		next := page.Offset + page.Limit
		pp.NextOffset = &next
	}
	return pp
}
