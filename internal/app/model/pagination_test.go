package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func render(items []PageItem) []interface{} {
	out := make([]interface{}, len(items))
	for i, it := range items {
		if it.Ellipsis {
			out[i] = "..."
		} else {
			out[i] = it.Page
		}
	}
	return out
}

func TestPageNumbers(t *testing.T) {
	tests := []struct {
		name    string
		current int
		total   int
		want    []interface{}
	}{
		{"middle page", 5, 10, []interface{}{1, "...", 3, 4, 5, 6, 7, "...", 10}},
		{"first page", 1, 10, []interface{}{1, 2, 3, "...", 10}},
		{"last page", 10, 10, []interface{}{1, "...", 8, 9, 10}},
		{"window touches page two", 4, 10, []interface{}{1, 2, 3, 4, 5, 6, "...", 10}},
		{"window touches second to last", 7, 10, []interface{}{1, "...", 5, 6, 7, 8, 9, 10}},
		{"single page", 1, 1, []interface{}{1}},
		{"two pages", 2, 2, []interface{}{1, 2}},
		{"small total", 2, 5, []interface{}{1, 2, 3, 4, 5}},
		{"current out of range", 42, 6, []interface{}{1, "...", 4, 5, 6}},
		{"no pages", 1, 0, []interface{}{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render(PageNumbers(tt.current, tt.total)))
		})
	}
}

func TestListQuery_Values(t *testing.T) {
	q := ListQuery{Page: 0, Limit: 500, Search: "  shirt ", Filters: map[string]string{
		"status": "active",
		"brand":  "",
	}}

	v := q.Values()
	assert.Equal(t, "1", v.Get("page"))
	assert.Equal(t, "100", v.Get("limit"))
	assert.Equal(t, "shirt", v.Get("search"))
	assert.Equal(t, "active", v.Get("status"))
	_, hasBrand := v["brand"]
	assert.False(t, hasBrand)
}

func TestListQuery_CacheParamsIsStable(t *testing.T) {
	a := ListQuery{Page: 2, Limit: 20, Filters: map[string]string{"status": "active", "brand": "b1"}}
	b := ListQuery{Page: 2, Limit: 20, Filters: map[string]string{"brand": "b1", "status": "active"}}

	assert.Equal(t, a.CacheParams(), b.CacheParams())
	assert.Equal(t, "brand=b1&limit=20&page=2&status=active", a.CacheParams())
}

func TestListQuery_FilterParamsDropsPaging(t *testing.T) {
	a := ListQuery{Page: 3, Limit: 50, Search: "tee", Filters: map[string]string{"discountType": "fixed"}}
	b := ListQuery{Search: "tee", Filters: map[string]string{"discountType": "percentage"}}

	assert.Equal(t, "discountType=fixed&search=tee", a.FilterParams())
	assert.NotEqual(t, a.FilterParams(), b.FilterParams())
	assert.Empty(t, ListQuery{}.FilterParams())
}
