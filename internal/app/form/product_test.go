package form

import (
	"encoding/json"
	"testing"

	"github.com/ikkim/catalog-admin/internal/app/model"
	"github.com/ikkim/catalog-admin/internal/catalog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func variantCatalog() *catalog.VariantCatalog {
	return catalog.NewVariantCatalog([]model.Variant{
		{ID: "color", Name: "Color", IsActive: true, Options: []model.Option{{ID: "red", Value: "Red"}, {ID: "blue", Value: "Blue"}}},
	})
}

func validProductForm() ProductForm {
	compare := decimal.RequireFromString("39.00")
	return ProductForm{
		Title:        "Linen Shirt",
		Description:  "Breathable",
		BasePrice:    decimal.RequireFromString("29.90"),
		ComparePrice: &compare,
		Status:       model.ProductStatusActive,
		Brand:        "b1",
		Categories:   []string{"c1", "c2"},
		Tags:         []string{"summer"},
		Variants:     []string{"color"},
		SKUs: []model.SKU{
			{SKUCode: "LS-RED", Stock: 3, Attributes: []model.Attribute{{VariantID: "color", OptionID: "red"}}},
			{SKUCode: "LS-BLUE", Stock: 0, Attributes: []model.Attribute{{VariantID: "color", OptionID: "blue"}}},
		},
		Features:       []string{" Machine washable ", ""},
		TrackInventory: true,
		KeepImages:     []string{"img-1"},
	}
}

func TestValidateProduct(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(f *ProductForm)
		wantField string
	}{
		{"valid", func(f *ProductForm) { f.Features = nil }, ""},
		{"missing title", func(f *ProductForm) { f.Title = "  " }, "title"},
		{"zero price", func(f *ProductForm) { f.BasePrice = decimal.Zero }, "basePrice"},
		{"compare below base", func(f *ProductForm) {
			c := decimal.RequireFromString("10")
			f.ComparePrice = &c
		}, "comparePrice"},
		{"bad status", func(f *ProductForm) { f.Status = "deleted" }, "status"},
		{"empty feature", func(f *ProductForm) {}, "features[1]"},
		{"negative stock", func(f *ProductForm) { f.SKUs[0].Stock = -1 }, "skus[0].stock"},
		{"duplicate sku code", func(f *ProductForm) { f.SKUs[1].SKUCode = "LS-RED" }, "skus[1].skuCode"},
		{"unknown variant", func(f *ProductForm) { f.Variants = []string{"color", "size"} }, "variants"},
		{"sku combination mismatch", func(f *ProductForm) { f.SKUs[1].Attributes = nil }, "skus"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validProductForm()
			tt.mutate(&f)
			errs := ValidateProduct(f, variantCatalog())
			if tt.wantField == "" {
				assert.Empty(t, errs)
				assert.NoError(t, errs.Err())
				return
			}
			assert.True(t, errs.Has(tt.wantField), "errors: %v", errs)
			assert.Error(t, errs.Err())
		})
	}
}

func TestBuildProductPayload_Create(t *testing.T) {
	f := validProductForm()
	uploads := []Upload{{Filename: "front.jpg", ContentType: "image/jpeg"}}

	p, err := BuildProductPayload(f, uploads, false)
	require.NoError(t, err)

	title, _ := p.Get("title")
	assert.Equal(t, "Linen Shirt", title)
	price, _ := p.Get("basePrice")
	assert.Equal(t, "29.9", price)
	compare, _ := p.Get("comparePrice")
	assert.Equal(t, "39", compare)
	track, _ := p.Get("trackInventory")
	assert.Equal(t, "true", track)

	categories, _ := p.Get("categories")
	assert.JSONEq(t, `["c1","c2"]`, categories)
	collections, _ := p.Get("collections")
	assert.JSONEq(t, `[]`, collections)
	features, _ := p.Get("features")
	assert.JSONEq(t, `["Machine washable"]`, features)

	skus, _ := p.Get("skus")
	var decoded []model.SKU
	require.NoError(t, json.Unmarshal([]byte(skus), &decoded))
	assert.Len(t, decoded, 2)

	_, hasKeep := p.Get("keepImages")
	assert.False(t, hasKeep)
	assert.Len(t, p.Files, 1)
}

func TestBuildProductPayload_EditKeepsImages(t *testing.T) {
	f := validProductForm()
	f.Status = ""
	f.ComparePrice = nil

	p, err := BuildProductPayload(f, nil, true)
	require.NoError(t, err)

	keep, ok := p.Get("keepImages")
	require.True(t, ok)
	assert.JSONEq(t, `["img-1"]`, keep)

	status, _ := p.Get("status")
	assert.Equal(t, "draft", status)
	_, hasCompare := p.Get("comparePrice")
	assert.False(t, hasCompare)
}

func TestBuildProductPayload_EditRemovingAllImages(t *testing.T) {
	f := validProductForm()
	f.KeepImages = nil

	p, err := BuildProductPayload(f, nil, true)
	require.NoError(t, err)
	keep, _ := p.Get("keepImages")
	assert.Equal(t, "[]", keep)
}

func TestFromProduct(t *testing.T) {
	p := &model.Product{
		Title:      "Mug",
		BasePrice:  decimal.NewFromInt(12),
		Brand:      &model.Ref{ID: "b9"},
		Categories: []model.Ref{{ID: "c1", Name: "Kitchen"}},
		Variants:   []model.VariantRef{{ID: "color"}},
		Images:     []model.Image{{PublicID: "a"}, {PublicID: "b", IsPrimary: true}},
	}

	f := FromProduct(p)
	assert.Equal(t, "b9", f.Brand)
	assert.Equal(t, []string{"c1"}, f.Categories)
	assert.Equal(t, []string{"color"}, f.Variants)
	assert.Equal(t, []string{"a", "b"}, f.KeepImages)
	assert.Equal(t, "b", f.PrimaryImage)
}
