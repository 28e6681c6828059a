// Package form validates admin form input and shapes it into backend payloads.
// Nothing here performs I/O; encoding for the wire lives in pkg/backend.
package form

import (
	"sort"
	"strings"
)

// FieldErrors maps a form field to a message describing what is wrong with it
type FieldErrors map[string]string

// Add records msg for field unless the field already has an error
func (fe FieldErrors) Add(field, msg string) {
	if !fe.Has(field) {
		fe[field] = msg
	}
}

func (fe FieldErrors) Has(field string) bool {
	_, ok := fe[field]
	return ok
}

// Err returns nil when there are no field errors
func (fe FieldErrors) Err() error {
	if len(fe) == 0 {
		return nil
	}
	return &ValidationError{Fields: fe}
}

// ValidationError wraps FieldErrors so they can travel as an error
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
