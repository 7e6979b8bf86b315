package domain

import (
	"fmt"
	"strings"
)

// SortKey selects the ordering applied to an aggregated product sequence
type SortKey string

const (
	SortNone       SortKey = ""
	SortPriceAsc   SortKey = "price-asc"
	SortPriceDesc  SortKey = "price-desc"
	SortRatingDesc SortKey = "rating-desc"
	SortNewest     SortKey = "newest"
	SortRelevance  SortKey = "relevance"
)

// sortAliases maps both the listing and the search vocabularies onto one key set
var sortAliases = map[string]SortKey{
	"":            SortNone,
	"featured":    SortNone,
	"price-asc":   SortPriceAsc,
	"price-low":   SortPriceAsc,
	"price-desc":  SortPriceDesc,
	"price-high":  SortPriceDesc,
	"rating-desc": SortRatingDesc,
	"rating":      SortRatingDesc,
	"newest":      SortNewest,
	"relevance":   SortRelevance,
}

// ParseSortKey resolves a client-supplied sort name
func ParseSortKey(s string) (SortKey, error) {
	key, ok := sortAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return SortNone, fmt.Errorf("%w: unknown sort %q", ErrInvalidRequest, s)
	}
	return key, nil
}

// Pagination defaults for listing
const (
	DefaultPage  = 1
	DefaultLimit = 12
	MaxLimit     = 100
)

// ListQuery is the input of the paginated listing
type ListQuery struct {
	Category string
	Search   string
	Sort     SortKey
	Page     int
	Limit    int
}

// Normalize fills defaults and clamps out-of-range pagination
func (q *ListQuery) Normalize() {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	q.Category = strings.TrimSpace(q.Category)
	q.Search = strings.TrimSpace(q.Search)
}

// SearchQuery is the input of the unpaginated search. Nil bounds do not filter.
type SearchQuery struct {
	Text      string
	Category  string
	MinPrice  *float64
	MaxPrice  *float64
	MinRating *float64
	Sort      SortKey
}

// ProductPage is the page envelope returned by listing
type ProductPage struct {
	Items       []Product `json:"items"`
	Total       int       `json:"total"`
	PageCount   int       `json:"pageCount"`
	CurrentPage int       `json:"currentPage"`
	Limit       int       `json:"limit"` // page size applied after clamping
	Degraded    bool      `json:"degraded,omitempty"`
}
