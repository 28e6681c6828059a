package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ikkim/catalog-admin/internal/app/model"
)

// Selection maps a variant ID to the option ID the user picked for it
type Selection map[string]string

var (
	ErrDuplicateAttribute = errors.New("sku has more than one attribute for a variant")
	ErrUndeclaredVariant  = errors.New("sku references a variant the product does not declare")
	ErrIncompleteSKU      = errors.New("sku does not cover every product variant")
	ErrDuplicateSKU       = errors.New("two skus share the same option combination")
	ErrUnknownOption      = errors.New("sku references an option its variant does not define")
)

// ResolveSKU returns the SKU whose attribute set equals the selection exactly.
// An empty selection or a partial match resolves to nil.
func ResolveSKU(skus []model.SKU, selections Selection) *model.SKU {
	if len(selections) == 0 {
		return nil
	}
	for i := range skus {
		if matches(skus[i].Attributes, selections) {
			return &skus[i]
		}
	}
	return nil
}

func matches(attrs []model.Attribute, selections Selection) bool {
	if len(attrs) != len(selections) {
		return false
	}
	for _, a := range attrs {
		if selections[a.VariantID] != a.OptionID {
			return false
		}
	}
	return true
}

// ResolveForProduct resolves a selection against a product's own variants.
// A product without variants has a single implicit SKU: its first one.
// Selections for variants the product does not declare are ignored.
func ResolveForProduct(p *model.Product, selections Selection) *model.SKU {
	if !p.HasVariants() {
		if len(p.SKUs) == 0 {
			return nil
		}
		return &p.SKUs[0]
	}

	restricted := make(Selection, len(p.Variants))
	for _, vid := range p.VariantIDs() {
		oid, ok := selections[vid]
		if !ok || oid == "" {
			return nil
		}
		restricted[vid] = oid
	}
	return ResolveSKU(p.SKUs, restricted)
}

// ValidateSKUAttributes checks that every SKU pins each declared variant exactly
// once and that no two SKUs share a combination. A non-nil variants catalog also
// checks option membership. Products without variants may carry several
// attribute-less SKUs.
func ValidateSKUAttributes(p *model.Product, variants *VariantCatalog) error {
	declared := make(map[string]bool, len(p.Variants))
	for _, vid := range p.VariantIDs() {
		declared[vid] = true
	}

	seenCombos := make(map[string]string, len(p.SKUs))
	for i, sku := range p.SKUs {
		name := sku.SKUCode
		if name == "" {
			name = fmt.Sprintf("#%d", i+1)
		}

		pinned := make(map[string]bool, len(sku.Attributes))
		for _, a := range sku.Attributes {
			if pinned[a.VariantID] {
				return fmt.Errorf("%w: %s", ErrDuplicateAttribute, name)
			}
			if !declared[a.VariantID] {
				return fmt.Errorf("%w: %s", ErrUndeclaredVariant, name)
			}
			if variants != nil {
				if v, ok := variants.Get(a.VariantID); ok {
					if _, ok := v.Option(a.OptionID); !ok {
						return fmt.Errorf("%w: %s", ErrUnknownOption, name)
					}
				}
			}
			pinned[a.VariantID] = true
		}
		if len(pinned) != len(declared) {
			return fmt.Errorf("%w: %s", ErrIncompleteSKU, name)
		}

		if len(declared) == 0 {
			continue
		}
		key := comboKey(sku.Attributes)
		if other, dup := seenCombos[key]; dup {
			return fmt.Errorf("%w: %s and %s", ErrDuplicateSKU, other, name)
		}
		seenCombos[key] = name
	}
	return nil
}

func comboKey(attrs []model.Attribute) string {
	parts := make([]string, len(attrs))
	for i, a := range attrs {
		parts[i] = a.VariantID + "=" + a.OptionID
	}
	sort.Strings(parts)
	return strings.Join(parts, ";")
}
