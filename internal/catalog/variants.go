// Package catalog holds the variant, SKU and stock logic shared by the product,
// product details and inventory screens. Everything here is pure: no I/O, no logging.
package catalog

import (
	"strings"

	"github.com/ikkim/catalog-admin/internal/app/model"
)

// VariantCatalog is a read-only index over the defined variants
type VariantCatalog struct {
	order []string
	byID  map[string]model.Variant
}

func NewVariantCatalog(variants []model.Variant) *VariantCatalog {
	c := &VariantCatalog{
		order: make([]string, 0, len(variants)),
		byID:  make(map[string]model.Variant, len(variants)),
	}
	for _, v := range variants {
		if _, dup := c.byID[v.ID]; dup {
			continue
		}
		c.order = append(c.order, v.ID)
		c.byID[v.ID] = v
	}
	return c
}

func (c *VariantCatalog) Get(id string) (model.Variant, bool) {
	v, ok := c.byID[id]
	return v, ok
}

func (c *VariantCatalog) Len() int {
	return len(c.order)
}

// All returns every variant in load order
func (c *VariantCatalog) All() []model.Variant {
	out := make([]model.Variant, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// Active returns the variants that may be attached to products
func (c *VariantCatalog) Active() []model.Variant {
	out := make([]model.Variant, 0, len(c.order))
	for _, id := range c.order {
		if v := c.byID[id]; v.IsActive {
			out = append(out, v)
		}
	}
	return out
}

// OptionsFor returns the ordered options of a variant, nil if the variant is unknown
func (c *VariantCatalog) OptionsFor(variantID string) []model.Option {
	v, ok := c.byID[variantID]
	if !ok {
		return nil
	}
	return v.Options
}

// Label renders a SKU's attributes as "Red / S", following variantOrder.
// Attributes whose variant or option is unknown are rendered by their raw option ID.
func (c *VariantCatalog) Label(variantOrder []string, attrs []model.Attribute) string {
	byVariant := make(map[string]string, len(attrs))
	for _, a := range attrs {
		byVariant[a.VariantID] = a.OptionID
	}

	parts := make([]string, 0, len(attrs))
	seen := make(map[string]bool, len(attrs))
	appendPart := func(variantID, optionID string) {
		seen[variantID] = true
		if v, ok := c.byID[variantID]; ok {
			if o, ok := v.Option(optionID); ok {
				parts = append(parts, o.Value)
				return
			}
		}
		parts = append(parts, optionID)
	}

	for _, vid := range variantOrder {
		if oid, ok := byVariant[vid]; ok {
			appendPart(vid, oid)
		}
	}
	for _, a := range attrs {
		if !seen[a.VariantID] {
			appendPart(a.VariantID, a.OptionID)
		}
	}
	return strings.Join(parts, " / ")
}

// Combinations lists every option combination of the given variants, in
// declared order, as attribute sets. Unknown or option-less variants yield nothing.
func (c *VariantCatalog) Combinations(variantIDs []string) [][]model.Attribute {
	if len(variantIDs) == 0 {
		return nil
	}

	combos := [][]model.Attribute{{}}
	for _, vid := range variantIDs {
		options := c.OptionsFor(vid)
		if len(options) == 0 {
			return nil
		}
		next := make([][]model.Attribute, 0, len(combos)*len(options))
		for _, combo := range combos {
			for _, o := range options {
				attrs := make([]model.Attribute, len(combo), len(combo)+1)
				copy(attrs, combo)
				next = append(next, append(attrs, model.Attribute{VariantID: vid, OptionID: o.ID}))
			}
		}
		combos = next
	}
	return combos
}
