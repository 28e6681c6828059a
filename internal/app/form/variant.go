package form

import (
	"fmt"
	"strings"

	"github.com/ikkim/catalog-admin/internal/app/model"
)

type VariantForm struct {
	Name        string                   `json:"name" binding:"notblank,max=100"`
	DisplayType model.VariantDisplayType `json:"displayType" binding:"omitempty,oneof=dropdown swatch button"`
	Options     []model.Option           `json:"options" binding:"required,min=1,dive"`
	IsActive    *bool                    `json:"isActive"`
}

// ValidateVariant checks the binding tags and rejects option values that
// repeat an earlier one, ignoring case
func ValidateVariant(f VariantForm) FieldErrors {
	errs := check(f)
	draft := model.Variant{Options: f.Options}
	for i, first := range draft.DuplicateOptions() {
		errs.Add(fmt.Sprintf("options[%d].value", i), fmt.Sprintf("Duplicate of option %d", first+1))
	}
	return errs
}

func (f VariantForm) Variant(id string) model.Variant {
	v := model.Variant{
		ID:          id,
		Name:        strings.TrimSpace(f.Name),
		DisplayType: f.DisplayType,
		IsActive:    active(f.IsActive),
		Options:     make([]model.Option, len(f.Options)),
	}
	if v.DisplayType == "" {
		v.DisplayType = model.DisplayDropdown
	}
	for i, o := range f.Options {
		v.Options[i] = model.Option{ID: o.ID, Value: strings.TrimSpace(o.Value)}
	}
	return v
}
