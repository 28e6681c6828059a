package model

import "strings"

// VariantDisplayType controls how a variant's options are rendered to shoppers
type VariantDisplayType string

const (
	DisplayDropdown VariantDisplayType = "dropdown"
	DisplaySwatch   VariantDisplayType = "swatch"
	DisplayButton   VariantDisplayType = "button"
)

// Variant is a named axis of product configuration such as Size or Color.
// Variants are defined independently of products and referenced by ID.
type Variant struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Options     []Option           `json:"options"`
	DisplayType VariantDisplayType `json:"displayType"`
	IsActive    bool               `json:"isActive"`
}

// Option is one concrete value of a Variant
type Option struct {
	ID    string `json:"id"`
	Value string `json:"value" binding:"notblank"`
}

// Option returns the option with the given ID
func (v *Variant) Option(id string) (Option, bool) {
	for _, o := range v.Options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

// DuplicateOptions maps the index of every option whose value repeats an
// earlier one, ignoring case, to the index of that earlier option. Blank
// values are skipped.
func (v *Variant) DuplicateOptions() map[int]int {
	dups := map[int]int{}
	seen := make(map[string]int, len(v.Options))
	for i, o := range v.Options {
		key := strings.ToLower(strings.TrimSpace(o.Value))
		if key == "" {
			continue
		}
		if first, ok := seen[key]; ok {
			dups[i] = first
			continue
		}
		seen[key] = i
	}
	return dups
}
