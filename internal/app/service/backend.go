package service

import (
	"context"

	"github.com/ikkim/catalog-admin/internal/app/model"
	"github.com/ikkim/catalog-admin/pkg/backend"
)

// The interfaces below are the slices of *backend.Client each service needs

type ProductBackend interface {
	ListProducts(ctx context.Context, q model.ListQuery) (model.Page[model.Product], error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	CreateProduct(ctx context.Context, form backend.Multipart) (*model.Product, error)
	UpdateProduct(ctx context.Context, id string, form backend.Multipart) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	UpdateStock(ctx context.Context, productID, skuID string, update backend.StockUpdate) (*model.Product, error)
}

type VariantBackend interface {
	ListVariants(ctx context.Context, q model.ListQuery) (model.Page[model.Variant], error)
	GetVariant(ctx context.Context, id string) (*model.Variant, error)
	CreateVariant(ctx context.Context, v model.Variant) (*model.Variant, error)
	UpdateVariant(ctx context.Context, id string, v model.Variant) (*model.Variant, error)
	DeleteVariant(ctx context.Context, id string) error
}

type CouponBackend interface {
	ListCoupons(ctx context.Context, q model.ListQuery) (model.Page[model.Coupon], error)
	GetCoupon(ctx context.Context, id string) (*model.Coupon, error)
	CreateCoupon(ctx context.Context, c model.Coupon) (*model.Coupon, error)
	UpdateCoupon(ctx context.Context, id string, c model.Coupon) (*model.Coupon, error)
	DeleteCoupon(ctx context.Context, id string) error
}

type ReviewBackend interface {
	ListReviews(ctx context.Context, q model.ListQuery) (model.Page[model.Review], error)
	GetReview(ctx context.Context, id string) (*model.Review, error)
	SetReviewApproval(ctx context.Context, id string, approved bool) (*model.Review, error)
	DeleteReview(ctx context.Context, id string) error
}

type TaxonomyBackend interface {
	ListCategories(ctx context.Context, q model.ListQuery) (model.Page[model.Category], error)
	GetCategory(ctx context.Context, id string) (*model.Category, error)
	CreateCategory(ctx context.Context, v model.Category) (*model.Category, error)
	UpdateCategory(ctx context.Context, id string, v model.Category) (*model.Category, error)
	DeleteCategory(ctx context.Context, id string) error

	ListBrands(ctx context.Context, q model.ListQuery) (model.Page[model.Brand], error)
	GetBrand(ctx context.Context, id string) (*model.Brand, error)
	CreateBrand(ctx context.Context, v model.Brand) (*model.Brand, error)
	UpdateBrand(ctx context.Context, id string, v model.Brand) (*model.Brand, error)
	DeleteBrand(ctx context.Context, id string) error

	ListCollections(ctx context.Context, q model.ListQuery) (model.Page[model.Collection], error)
	GetCollection(ctx context.Context, id string) (*model.Collection, error)
	CreateCollection(ctx context.Context, v model.Collection) (*model.Collection, error)
	UpdateCollection(ctx context.Context, id string, v model.Collection) (*model.Collection, error)
	DeleteCollection(ctx context.Context, id string) error

	ListTags(ctx context.Context, q model.ListQuery) (model.Page[model.Tag], error)
	GetTag(ctx context.Context, id string) (*model.Tag, error)
	CreateTag(ctx context.Context, v model.Tag) (*model.Tag, error)
	UpdateTag(ctx context.Context, id string, v model.Tag) (*model.Tag, error)
	DeleteTag(ctx context.Context, id string) error
}

// Backend is everything the services need; *backend.Client satisfies it
type Backend interface {
	ProductBackend
	VariantBackend
	CouponBackend
	ReviewBackend
	TaxonomyBackend
}

var _ Backend = (*backend.Client)(nil)
