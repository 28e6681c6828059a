package model

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	// pages shown on each side of the current page
	pageWindow = 2
)

// ListQuery carries the paging, search and filter parameters every list endpoint accepts
type ListQuery struct {
	Page    int
	Limit   int
	Search  string
	Filters map[string]string
}

// Normalize applies defaults and bounds
func (q ListQuery) Normalize() ListQuery {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	q.Search = strings.TrimSpace(q.Search)
	return q
}

// Values encodes the query for the backend. Empty filters are dropped.
func (q ListQuery) Values() url.Values {
	q = q.Normalize()
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("limit", strconv.Itoa(q.Limit))
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	for k, val := range q.Filters {
		if val != "" {
			v.Set(k, val)
		}
	}
	return v
}

// CacheParams is a stable textual form of the query, suitable for cache keys
func (q ListQuery) CacheParams() string {
	return canonical(q.Values())
}

// FilterParams is CacheParams without paging, for keys that cover every page of a query
func (q ListQuery) FilterParams() string {
	v := q.Values()
	v.Del("page")
	v.Del("limit")
	return canonical(v)
}

func canonical(v url.Values) string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+v.Get(k))
	}
	return strings.Join(parts, "&")
}

// Page is one page of a list endpoint, normalized across the backend's envelope shapes
type Page[T any] struct {
	Items       []T `json:"items"`
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	Total       int `json:"total"`
}

// PageItem is one slot of a pagination control: a page number or an ellipsis
type PageItem struct {
	Page     int  `json:"page,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

// PageNumbers lays out a pagination control. The first and last pages are always
// shown together with a window of two pages around current; an ellipsis stands
// in for any hidden run between them.
func PageNumbers(current, total int) []PageItem {
	if total < 1 {
		return []PageItem{}
	}
	if current < 1 {
		current = 1
	}
	if current > total {
		current = total
	}

	items := []PageItem{{Page: 1}}
	if total == 1 {
		return items
	}

	start := max(2, current-pageWindow)
	end := min(total-1, current+pageWindow)

	if start > 2 {
		items = append(items, PageItem{Ellipsis: true})
	}
	for i := start; i <= end; i++ {
		items = append(items, PageItem{Page: i})
	}
	if end < total-1 {
		items = append(items, PageItem{Ellipsis: true})
	}
	return append(items, PageItem{Page: total})
}
