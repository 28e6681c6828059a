package service

import (
	"time"

	"github.com/ikkim/catalog-admin/internal/app/model"
	"github.com/ikkim/catalog-admin/internal/cache"
	"github.com/shopspring/decimal"
)

type testServices struct {
	backend    *fakeBackend
	cache      *cache.Service
	store      *cache.MemoryStore
	variants   VariantService
	products   ProductService
	inventory  InventoryService
	coupons    CouponService
	reviews    ReviewService
	taxonomies *TaxonomyService
	search     SearchService
}

func setupServices() *testServices {
	b := newFakeBackend()
	b.variants["color"] = model.Variant{ID: "color", Name: "Color", IsActive: true, DisplayType: model.DisplaySwatch,
		Options: []model.Option{{ID: "red", Value: "Red"}, {ID: "blue", Value: "Blue"}}}
	b.variants["size"] = model.Variant{ID: "size", Name: "Size", IsActive: true, DisplayType: model.DisplayButton,
		Options: []model.Option{{ID: "s", Value: "S"}, {ID: "m", Value: "M"}}}
	b.products["p1"] = shirt()
	b.products["p2"] = mug()

	store := cache.NewMemoryStore()
	c := cache.NewService(store, time.Minute)

	variants := NewVariantService(b, b, c)
	products := NewProductService(b, variants, c)
	coupons := NewCouponService(b, c)
	taxonomies := NewTaxonomyService(b, c)
	return &testServices{
		backend:    b,
		cache:      c,
		store:      store,
		variants:   variants,
		products:   products,
		inventory:  NewInventoryService(b, variants, c),
		coupons:    coupons,
		reviews:    NewReviewService(b, c),
		taxonomies: taxonomies,
		search:     NewSearchService(products, variants, coupons, taxonomies),
	}
}

func attrs(pairs ...string) []model.Attribute {
	out := make([]model.Attribute, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, model.Attribute{VariantID: pairs[i], OptionID: pairs[i+1]})
	}
	return out
}

// shirt declares color and size; red/S is low, blue/M is out of stock
func shirt() model.Product {
	return model.Product{
		ID:             "p1",
		Title:          "Linen Shirt",
		BasePrice:      decimal.NewFromInt(30),
		Status:         model.ProductStatusActive,
		TrackInventory: true,
		Variants:       []model.VariantRef{{ID: "color"}, {ID: "size"}},
		SKUs: []model.SKU{
			{ID: "s1", SKUCode: "LS-RED-S", Stock: 3, LowStockThreshold: 5, Attributes: attrs("color", "red", "size", "s")},
			{ID: "s2", SKUCode: "LS-RED-M", Stock: 12, LowStockThreshold: 5, Price: decimal.NewFromInt(32), Attributes: attrs("color", "red", "size", "m")},
			{ID: "s3", SKUCode: "LS-BLUE-M", Stock: 0, LowStockThreshold: 5, Attributes: attrs("color", "blue", "size", "m")},
		},
	}
}

func mug() model.Product {
	return model.Product{
		ID:             "p2",
		Title:          "Stoneware Mug",
		BasePrice:      decimal.NewFromInt(12),
		Status:         model.ProductStatusActive,
		TrackInventory: true,
		SKUs: []model.SKU{
			{ID: "m1", SKUCode: "MUG", Stock: 40, LowStockThreshold: 10},
		},
	}
}
