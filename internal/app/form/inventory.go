package form

import (
	"github.com/ikkim/catalog-admin/internal/catalog"
)

// ValidateAdjustment checks direction, amount, reason and note length
func ValidateAdjustment(a catalog.Adjustment) FieldErrors {
	return check(a)
}
