package catalog

import "github.com/ikkim/catalog-admin/internal/app/model"

func colorSizeVariants() []model.Variant {
	return []model.Variant{
		{ID: "color", Name: "Color", IsActive: true, Options: []model.Option{
			{ID: "red", Value: "Red"},
			{ID: "blue", Value: "Blue"},
		}},
		{ID: "size", Name: "Size", IsActive: true, Options: []model.Option{
			{ID: "s", Value: "S"},
			{ID: "m", Value: "M"},
		}},
		{ID: "material", Name: "Material", IsActive: false, Options: []model.Option{
			{ID: "cotton", Value: "Cotton"},
		}},
	}
}

func sku(id string, stock, threshold int, attrs ...string) model.SKU {
	s := model.SKU{ID: id, SKUCode: id, Stock: stock, LowStockThreshold: threshold}
	for i := 0; i+1 < len(attrs); i += 2 {
		s.Attributes = append(s.Attributes, model.Attribute{VariantID: attrs[i], OptionID: attrs[i+1]})
	}
	return s
}

// shirt has Color (Red, Blue) x Size (S, M) with three of the four combinations stocked.
func shirt() *model.Product {
	return &model.Product{
		ID:       "p1",
		Title:    "Shirt",
		Variants: []model.VariantRef{{ID: "color"}, {ID: "size"}},
		SKUs: []model.SKU{
			sku("red-s", 5, 1, "color", "red", "size", "s"),
			sku("red-m", 0, 1, "color", "red", "size", "m"),
			sku("blue-s", 2, 1, "color", "blue", "size", "s"),
		},
	}
}
