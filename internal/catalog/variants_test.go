package catalog

import (
	"testing"

	"github.com/ikkim/catalog-admin/internal/app/model"
	"github.com/stretchr/testify/assert"
)

func TestVariantCatalog_Lookups(t *testing.T) {
	cat := NewVariantCatalog(colorSizeVariants())

	assert.Equal(t, 3, cat.Len())
	assert.Len(t, cat.Active(), 2)
	assert.Len(t, cat.OptionsFor("size"), 2)
	assert.Nil(t, cat.OptionsFor("missing"))

	v, ok := cat.Get("color")
	assert.True(t, ok)
	assert.Equal(t, "Color", v.Name)
}

func TestVariantCatalog_Label(t *testing.T) {
	cat := NewVariantCatalog(colorSizeVariants())
	attrs := []model.Attribute{{VariantID: "size", OptionID: "m"}, {VariantID: "color", OptionID: "blue"}}

	assert.Equal(t, "Blue / M", cat.Label([]string{"color", "size"}, attrs))
	assert.Equal(t, "M / Blue", cat.Label(nil, attrs))
	assert.Equal(t, "ghost", cat.Label(nil, []model.Attribute{{VariantID: "x", OptionID: "ghost"}}))
	assert.Equal(t, "", cat.Label(nil, nil))
}

func TestVariantCatalog_Combinations(t *testing.T) {
	cat := NewVariantCatalog(colorSizeVariants())

	combos := cat.Combinations([]string{"color", "size"})
	assert.Len(t, combos, 4)
	assert.Equal(t, []model.Attribute{
		{VariantID: "color", OptionID: "red"},
		{VariantID: "size", OptionID: "s"},
	}, combos[0])
	assert.Equal(t, []model.Attribute{
		{VariantID: "color", OptionID: "blue"},
		{VariantID: "size", OptionID: "m"},
	}, combos[3])

	assert.Nil(t, cat.Combinations(nil))
	assert.Nil(t, cat.Combinations([]string{"color", "missing"}))
}

func TestVariantCatalog_SkipsDuplicateIDs(t *testing.T) {
	vs := colorSizeVariants()
	vs = append(vs, model.Variant{ID: "color", Name: "Colour"})
	cat := NewVariantCatalog(vs)

	v, _ := cat.Get("color")
	assert.Equal(t, "Color", v.Name)
	assert.Equal(t, 3, cat.Len())
}
