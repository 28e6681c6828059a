package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ikkim/catalog-admin/internal/app/model"
)

func listEntities[T any](ctx context.Context, c *Client, path, entity string, q model.ListQuery) (model.Page[T], error) {
	q = q.Normalize()
	body, err := c.doJSON(ctx, http.MethodGet, path, q.Values(), nil)
	if err != nil {
		return model.Page[T]{}, fmt.Errorf("failed to list %s: %w", entity, err)
	}
	return decodePage[T](body, entity, q.Limit)
}

func getEntity[T any](ctx context.Context, c *Client, path, entity string) (*T, error) {
	body, err := c.doJSON(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", entity, err)
	}
	return decodeEntity[T](body, entity)
}

func sendEntity[T any](ctx context.Context, c *Client, method, path, entity string, payload interface{}) (*T, error) {
	body, err := c.doJSON(ctx, method, path, nil, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to save %s: %w", entity, err)
	}
	return decodeEntity[T](body, entity)
}

func deleteEntity(ctx context.Context, c *Client, path, entity string) error {
	if _, err := c.doJSON(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("failed to delete %s: %w", entity, err)
	}
	return nil
}

// Variants

func (c *Client) ListVariants(ctx context.Context, q model.ListQuery) (model.Page[model.Variant], error) {
	return listEntities[model.Variant](ctx, c, "/variants", "variants", q)
}

func (c *Client) GetVariant(ctx context.Context, id string) (*model.Variant, error) {
	return getEntity[model.Variant](ctx, c, "/variants/"+escape(id), "variant")
}

func (c *Client) CreateVariant(ctx context.Context, v model.Variant) (*model.Variant, error) {
	return sendEntity[model.Variant](ctx, c, http.MethodPost, "/variants", "variant", v)
}

func (c *Client) UpdateVariant(ctx context.Context, id string, v model.Variant) (*model.Variant, error) {
	return sendEntity[model.Variant](ctx, c, http.MethodPut, "/variants/"+escape(id), "variant", v)
}

func (c *Client) DeleteVariant(ctx context.Context, id string) error {
	return deleteEntity(ctx, c, "/variants/"+escape(id), "variant")
}

// Categories

func (c *Client) ListCategories(ctx context.Context, q model.ListQuery) (model.Page[model.Category], error) {
	return listEntities[model.Category](ctx, c, "/categories", "categories", q)
}

func (c *Client) GetCategory(ctx context.Context, id string) (*model.Category, error) {
	return getEntity[model.Category](ctx, c, "/categories/"+escape(id), "category")
}

func (c *Client) CreateCategory(ctx context.Context, v model.Category) (*model.Category, error) {
	return sendEntity[model.Category](ctx, c, http.MethodPost, "/categories", "category", v)
}

func (c *Client) UpdateCategory(ctx context.Context, id string, v model.Category) (*model.Category, error) {
	return sendEntity[model.Category](ctx, c, http.MethodPut, "/categories/"+escape(id), "category", v)
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return deleteEntity(ctx, c, "/categories/"+escape(id), "category")
}

// Brands

func (c *Client) ListBrands(ctx context.Context, q model.ListQuery) (model.Page[model.Brand], error) {
	return listEntities[model.Brand](ctx, c, "/brands", "brands", q)
}

func (c *Client) GetBrand(ctx context.Context, id string) (*model.Brand, error) {
	return getEntity[model.Brand](ctx, c, "/brands/"+escape(id), "brand")
}

func (c *Client) CreateBrand(ctx context.Context, v model.Brand) (*model.Brand, error) {
	return sendEntity[model.Brand](ctx, c, http.MethodPost, "/brands", "brand", v)
}

func (c *Client) UpdateBrand(ctx context.Context, id string, v model.Brand) (*model.Brand, error) {
	return sendEntity[model.Brand](ctx, c, http.MethodPut, "/brands/"+escape(id), "brand", v)
}

func (c *Client) DeleteBrand(ctx context.Context, id string) error {
	return deleteEntity(ctx, c, "/brands/"+escape(id), "brand")
}

// Collections

func (c *Client) ListCollections(ctx context.Context, q model.ListQuery) (model.Page[model.Collection], error) {
	return listEntities[model.Collection](ctx, c, "/collections", "collections", q)
}

func (c *Client) GetCollection(ctx context.Context, id string) (*model.Collection, error) {
	return getEntity[model.Collection](ctx, c, "/collections/"+escape(id), "collection")
}

func (c *Client) CreateCollection(ctx context.Context, v model.Collection) (*model.Collection, error) {
	return sendEntity[model.Collection](ctx, c, http.MethodPost, "/collections", "collection", v)
}

func (c *Client) UpdateCollection(ctx context.Context, id string, v model.Collection) (*model.Collection, error) {
	return sendEntity[model.Collection](ctx, c, http.MethodPut, "/collections/"+escape(id), "collection", v)
}

func (c *Client) DeleteCollection(ctx context.Context, id string) error {
	return deleteEntity(ctx, c, "/collections/"+escape(id), "collection")
}

// Tags

func (c *Client) ListTags(ctx context.Context, q model.ListQuery) (model.Page[model.Tag], error) {
	return listEntities[model.Tag](ctx, c, "/tags", "tags", q)
}

func (c *Client) GetTag(ctx context.Context, id string) (*model.Tag, error) {
	return getEntity[model.Tag](ctx, c, "/tags/"+escape(id), "tag")
}

func (c *Client) CreateTag(ctx context.Context, v model.Tag) (*model.Tag, error) {
	return sendEntity[model.Tag](ctx, c, http.MethodPost, "/tags", "tag", v)
}

func (c *Client) UpdateTag(ctx context.Context, id string, v model.Tag) (*model.Tag, error) {
	return sendEntity[model.Tag](ctx, c, http.MethodPut, "/tags/"+escape(id), "tag", v)
}

func (c *Client) DeleteTag(ctx context.Context, id string) error {
	return deleteEntity(ctx, c, "/tags/"+escape(id), "tag")
}

// Coupons

func (c *Client) ListCoupons(ctx context.Context, q model.ListQuery) (model.Page[model.Coupon], error) {
	return listEntities[model.Coupon](ctx, c, "/coupons", "coupons", q)
}

func (c *Client) GetCoupon(ctx context.Context, id string) (*model.Coupon, error) {
	return getEntity[model.Coupon](ctx, c, "/coupons/"+escape(id), "coupon")
}

func (c *Client) CreateCoupon(ctx context.Context, v model.Coupon) (*model.Coupon, error) {
	return sendEntity[model.Coupon](ctx, c, http.MethodPost, "/coupons", "coupon", v)
}

func (c *Client) UpdateCoupon(ctx context.Context, id string, v model.Coupon) (*model.Coupon, error) {
	return sendEntity[model.Coupon](ctx, c, http.MethodPut, "/coupons/"+escape(id), "coupon", v)
}

func (c *Client) DeleteCoupon(ctx context.Context, id string) error {
	return deleteEntity(ctx, c, "/coupons/"+escape(id), "coupon")
}

// Reviews

func (c *Client) ListReviews(ctx context.Context, q model.ListQuery) (model.Page[model.Review], error) {
	return listEntities[model.Review](ctx, c, "/reviews", "reviews", q)
}

func (c *Client) GetReview(ctx context.Context, id string) (*model.Review, error) {
	return getEntity[model.Review](ctx, c, "/reviews/"+escape(id), "review")
}

// SetReviewApproval writes the review's approval flag
func (c *Client) SetReviewApproval(ctx context.Context, id string, approved bool) (*model.Review, error) {
	payload := map[string]bool{"isApproved": approved}
	return sendEntity[model.Review](ctx, c, http.MethodPatch, "/reviews/"+escape(id), "review", payload)
}

func (c *Client) DeleteReview(ctx context.Context, id string) error {
	return deleteEntity(ctx, c, "/reviews/"+escape(id), "review")
}
