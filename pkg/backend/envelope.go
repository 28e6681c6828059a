package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/ikkim/catalog-admin/internal/app/model"
)

var (
	itemKeys        = []string{"docs", "data", "items", "results"}
	currentPageKeys = []string{"currentPage", "page"}
	totalPagesKeys  = []string{"totalPages", "pages"}
)

func totalKeys(entity string) []string {
	return []string{"totalDocs", "totalItems", "total", "total" + capitalize(entity), "count"}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// decodePage reads a list response. The backend is inconsistent about where it
// puts the items and the paging numbers, so every known shape is accepted: a
// bare array, items under the entity key or a generic key, and paging fields
// either at the top level or nested under "pagination" or the data object.
func decodePage[T any](body []byte, entity string, limit int) (model.Page[T], error) {
	var page model.Page[T]

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &page.Items); err != nil {
			return page, fmt.Errorf("%w: failed to decode %s list: %v", ErrUnexpected, entity, err)
		}
		page.CurrentPage, page.TotalPages, page.Total = 1, 1, len(page.Items)
		return page, nil
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &top); err != nil {
		return page, fmt.Errorf("%w: failed to decode %s list: %v", ErrUnexpected, entity, err)
	}

	// metadata sources in lookup order
	sources := []map[string]json.RawMessage{top}
	if nested := object(top["pagination"]); nested != nil {
		sources = append(sources, nested)
	}

	rawItems, found := findArray(top, entity)
	if !found {
		if data := object(top["data"]); data != nil {
			rawItems, found = findArray(data, entity)
			sources = append(sources, data)
			if nested := object(data["pagination"]); nested != nil {
				sources = append(sources, nested)
			}
		}
	}
	if !found {
		return page, fmt.Errorf("%w: no %s found in list response", ErrUnexpected, entity)
	}
	if err := json.Unmarshal(rawItems, &page.Items); err != nil {
		return page, fmt.Errorf("%w: failed to decode %s list: %v", ErrUnexpected, entity, err)
	}
	if page.Items == nil {
		page.Items = []T{}
	}

	page.CurrentPage = firstInt(sources, currentPageKeys, 1)
	page.Total = firstInt(sources, totalKeys(entity), len(page.Items))
	fallbackPages := 1
	if limit > 0 && page.Total > 0 {
		fallbackPages = (page.Total + limit - 1) / limit
	}
	page.TotalPages = firstInt(sources, totalPagesKeys, fallbackPages)
	if page.TotalPages < 1 {
		page.TotalPages = 1
	}
	return page, nil
}

// decodeEntity reads a single-entity response: {entity: {...}}, {data: {...}} or the bare object
func decodeEntity[T any](body []byte, entity string) (*T, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		return nil, fmt.Errorf("%w: failed to decode %s: %v", ErrUnexpected, entity, err)
	}

	raw := json.RawMessage(body)
	for _, key := range []string{entity, "data"} {
		if obj := object(top[key]); obj != nil {
			raw = top[key]
			break
		}
	}

	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: failed to decode %s: %v", ErrUnexpected, entity, err)
	}
	return &out, nil
}

func findArray(m map[string]json.RawMessage, entity string) (json.RawMessage, bool) {
	for _, key := range append([]string{entity}, itemKeys...) {
		raw, ok := m[key]
		if !ok {
			continue
		}
		t := bytes.TrimSpace(raw)
		if len(t) > 0 && (t[0] == '[' || bytes.Equal(t, []byte("null"))) {
			return raw, true
		}
	}
	return nil, false
}

func object(raw json.RawMessage) map[string]json.RawMessage {
	t := bytes.TrimSpace(raw)
	if len(t) == 0 || t[0] != '{' {
		return nil
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(t, &m); err != nil {
		return nil
	}
	return m
}

func firstInt(sources []map[string]json.RawMessage, keys []string, fallback int) int {
	for _, key := range keys {
		for _, src := range sources {
			if n, ok := intValue(src[key]); ok {
				return n
			}
		}
	}
	return fallback
}

// intValue accepts a JSON number or a numeric string
func intValue(raw json.RawMessage) (int, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return int(f), true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return n, true
		}
	}
	return 0, false
}

// normalizeIDs copies every "_id" to "id" where "id" is absent. Bodies that are
// not JSON are returned untouched.
func normalizeIDs(body []byte) []byte {
	if !bytes.Contains(body, []byte(`"_id"`)) {
		return body
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return body
	}
	out, err := json.Marshal(copyIDs(v))
	if err != nil {
		return body
	}
	return out
}

func copyIDs(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		if id, ok := t["_id"]; ok {
			if _, has := t["id"]; !has {
				t["id"] = id
			}
		}
		for k, child := range t {
			t[k] = copyIDs(child)
		}
		return t
	case []interface{}:
		for i, child := range t {
			t[i] = copyIDs(child)
		}
		return t
	default:
		return v
	}
}
