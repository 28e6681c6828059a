package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/ikkim/catalog-admin/internal/app/model"
	"github.com/ikkim/catalog-admin/pkg/backend"
)

// fakeBackend is an in-memory stand-in for the catalog backend
type fakeBackend struct {
	mu sync.Mutex

	products    map[string]model.Product
	variants    map[string]model.Variant
	coupons     map[string]model.Coupon
	reviews     map[string]model.Review
	categories  map[string]model.Category
	brands      map[string]model.Brand
	collections map[string]model.Collection
	tags        map[string]model.Tag

	calls        map[string]int
	lastQuery    model.ListQuery
	lastForm     backend.Multipart
	stockUpdates []backend.StockUpdate
	failIDs      map[string]bool
	seq          int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		products:    map[string]model.Product{},
		variants:    map[string]model.Variant{},
		coupons:     map[string]model.Coupon{},
		reviews:     map[string]model.Review{},
		categories:  map[string]model.Category{},
		brands:      map[string]model.Brand{},
		collections: map[string]model.Collection{},
		tags:        map[string]model.Tag{},
		calls:       map[string]int{},
		failIDs:     map[string]bool{},
	}
}

func (f *fakeBackend) called(name string) {
	f.calls[name]++
}

func (f *fakeBackend) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s%d", prefix, f.seq)
}

func notFoundErr() error {
	return &backend.APIError{StatusCode: 404, Message: "Not found", Err: backend.ErrNotFound}
}

// pageOf sorts by id and slices by the query, matching search against name
func pageOf[T any](items map[string]T, q model.ListQuery, id func(T) string, name func(T) string) model.Page[T] {
	q = q.Normalize()
	all := make([]T, 0, len(items))
	for _, v := range items {
		if q.Search == "" || strings.Contains(strings.ToLower(name(v)), strings.ToLower(q.Search)) {
			all = append(all, v)
		}
	}
	sort.Slice(all, func(i, j int) bool { return id(all[i]) < id(all[j]) })

	start := min((q.Page-1)*q.Limit, len(all))
	end := min(start+q.Limit, len(all))
	return model.Page[T]{
		Items:       all[start:end],
		CurrentPage: q.Page,
		TotalPages:  max(1, (len(all)+q.Limit-1)/q.Limit),
		Total:       len(all),
	}
}

// Products

func (f *fakeBackend) ListProducts(_ context.Context, q model.ListQuery) (model.Page[model.Product], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.called("ListProducts")
	f.lastQuery = q
	return pageOf(f.products, q, func(p model.Product) string { return p.ID }, func(p model.Product) string { return p.Title }), nil
}

func (f *fakeBackend) GetProduct(_ context.Context, id string) (*model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.called("GetProduct")
	p, ok := f.products[id]
	if !ok {
		return nil, notFoundErr()
	}
	return &p, nil
}

func (f *fakeBackend) CreateProduct(_ context.Context, form backend.Multipart) (*model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.called("CreateProduct")
	f.lastForm = form
	p := model.Product{ID: f.nextID("p")}
	for _, fld := range form.Fields {
		if fld.Name == "title" {
			p.Title = fld.Value
		}
	}
	f.products[p.ID] = p
	return &p, nil
}

func (f *fakeBackend) UpdateProduct(_ context.Context, id string, form backend.Multipart) (*model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.called("UpdateProduct")
	f.lastForm = form
	p, ok := f.products[id]
	if !ok {
		return nil, notFoundErr()
	}
	return &p, nil
}

func (f *fakeBackend) DeleteProduct(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.called("DeleteProduct")
	if _, ok := f.products[id]; !ok {
		return notFoundErr()
	}
	delete(f.products, id)
	return nil
}

func (f *fakeBackend) UpdateStock(_ context.Context, productID, skuID string, update backend.StockUpdate) (*model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.called("UpdateStock")
	f.stockUpdates = append(f.stockUpdates, update)
	p, ok := f.products[productID]
	if !ok {
		return nil, notFoundErr()
	}
	skus := make([]model.SKU, len(p.SKUs))
	copy(skus, p.SKUs)
	for i := range skus {
		if skus[i].ID == skuID {
			skus[i].Stock = update.Stock
		}
	}
	p.SKUs = skus
	f.products[productID] = p
	return &p, nil
}

// Variants

func (f *fakeBackend) ListVariants(_ context.Context, q model.ListQuery) (model.Page[model.Variant], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.called("ListVariants")
	return pageOf(f.variants, q, func(v model.Variant) string { return v.ID }, func(v model.Variant) string { return v.Name }), nil
}

func (f *fakeBackend) GetVariant(_ context.Context, id string) (*model.Variant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.variants[id]
	if !ok {
		return nil, notFoundErr()
	}
	return &v, nil
}

func (f *fakeBackend) CreateVariant(_ context.Context, v model.Variant) (*model.Variant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.called("CreateVariant")
	v.ID = f.nextID("v")
	f.variants[v.ID] = v
	return &v, nil
}

func (f *fakeBackend) UpdateVariant(_ context.Context, id string, v model.Variant) (*model.Variant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.variants[id]; !ok {
		return nil, notFoundErr()
	}
	f.variants[id] = v
	return &v, nil
}

func (f *fakeBackend) DeleteVariant(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.called("DeleteVariant")
	if _, ok := f.variants[id]; !ok {
		return notFoundErr()
	}
	delete(f.variants, id)
	return nil
}

// Coupons

func (f *fakeBackend) ListCoupons(_ context.Context, q model.ListQuery) (model.Page[model.Coupon], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.called("ListCoupons")
	coupons := f.coupons
	if dt := q.Filters["discountType"]; dt != "" {
		coupons = map[string]model.Coupon{}
		for id, c := range f.coupons {
			if string(c.DiscountType) == dt {
				coupons[id] = c
			}
		}
	}
	return pageOf(coupons, q, func(c model.Coupon) string { return c.ID }, func(c model.Coupon) string { return c.Code }), nil
}

func (f *fakeBackend) GetCoupon(_ context.Context, id string) (*model.Coupon, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.coupons[id]
	if !ok {
		return nil, notFoundErr()
	}
	return &c, nil
}

func (f *fakeBackend) CreateCoupon(_ context.Context, c model.Coupon) (*model.Coupon, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.ID = f.nextID("c")
	f.coupons[c.ID] = c
	return &c, nil
}

func (f *fakeBackend) UpdateCoupon(_ context.Context, id string, c model.Coupon) (*model.Coupon, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.coupons[id]; !ok {
		return nil, notFoundErr()
	}
	f.coupons[id] = c
	return &c, nil
}

func (f *fakeBackend) DeleteCoupon(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failIDs[id] {
		return &backend.APIError{StatusCode: 500, Message: "boom", Err: backend.ErrUnexpected}
	}
	if _, ok := f.coupons[id]; !ok {
		return notFoundErr()
	}
	delete(f.coupons, id)
	return nil
}

// Reviews

func (f *fakeBackend) ListReviews(_ context.Context, q model.ListQuery) (model.Page[model.Review], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.called("ListReviews")
	f.lastQuery = q
	items := map[string]model.Review{}
	for id, r := range f.reviews {
		if want, ok := q.Filters["isApproved"]; ok && want != fmt.Sprint(r.IsApproved) {
			continue
		}
		items[id] = r
	}
	return pageOf(items, q, func(r model.Review) string { return r.ID }, func(r model.Review) string { return r.Comment }), nil
}

func (f *fakeBackend) GetReview(_ context.Context, id string) (*model.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reviews[id]
	if !ok {
		return nil, notFoundErr()
	}
	return &r, nil
}

func (f *fakeBackend) SetReviewApproval(_ context.Context, id string, approved bool) (*model.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reviews[id]
	if !ok {
		return nil, notFoundErr()
	}
	r.IsApproved = approved
	f.reviews[id] = r
	return &r, nil
}

func (f *fakeBackend) DeleteReview(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.reviews[id]; !ok {
		return notFoundErr()
	}
	delete(f.reviews, id)
	return nil
}

// Taxonomies

func (f *fakeBackend) ListCategories(_ context.Context, q model.ListQuery) (model.Page[model.Category], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.called("ListCategories")
	return pageOf(f.categories, q, func(c model.Category) string { return c.ID }, func(c model.Category) string { return c.Name }), nil
}

func (f *fakeBackend) GetCategory(_ context.Context, id string) (*model.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.categories[id]
	if !ok {
		return nil, notFoundErr()
	}
	return &c, nil
}

func (f *fakeBackend) CreateCategory(_ context.Context, c model.Category) (*model.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.ID = f.nextID("cat")
	f.categories[c.ID] = c
	return &c, nil
}

func (f *fakeBackend) UpdateCategory(_ context.Context, id string, c model.Category) (*model.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.categories[id]; !ok {
		return nil, notFoundErr()
	}
	f.categories[id] = c
	return &c, nil
}

func (f *fakeBackend) DeleteCategory(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.categories[id]; !ok {
		return notFoundErr()
	}
	delete(f.categories, id)
	return nil
}

func (f *fakeBackend) ListBrands(_ context.Context, q model.ListQuery) (model.Page[model.Brand], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return pageOf(f.brands, q, func(b model.Brand) string { return b.ID }, func(b model.Brand) string { return b.Name }), nil
}

func (f *fakeBackend) GetBrand(_ context.Context, id string) (*model.Brand, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.brands[id]
	if !ok {
		return nil, notFoundErr()
	}
	return &b, nil
}

func (f *fakeBackend) CreateBrand(_ context.Context, b model.Brand) (*model.Brand, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b.ID = f.nextID("b")
	f.brands[b.ID] = b
	return &b, nil
}

func (f *fakeBackend) UpdateBrand(_ context.Context, id string, b model.Brand) (*model.Brand, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.brands[id] = b
	return &b, nil
}

func (f *fakeBackend) DeleteBrand(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.brands, id)
	return nil
}

func (f *fakeBackend) ListCollections(_ context.Context, q model.ListQuery) (model.Page[model.Collection], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return pageOf(f.collections, q, func(c model.Collection) string { return c.ID }, func(c model.Collection) string { return c.Name }), nil
}

func (f *fakeBackend) GetCollection(_ context.Context, id string) (*model.Collection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.collections[id]
	if !ok {
		return nil, notFoundErr()
	}
	return &c, nil
}

func (f *fakeBackend) CreateCollection(_ context.Context, c model.Collection) (*model.Collection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.ID = f.nextID("col")
	f.collections[c.ID] = c
	return &c, nil
}

func (f *fakeBackend) UpdateCollection(_ context.Context, id string, c model.Collection) (*model.Collection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.collections[id] = c
	return &c, nil
}

func (f *fakeBackend) DeleteCollection(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.collections, id)
	return nil
}

func (f *fakeBackend) ListTags(_ context.Context, q model.ListQuery) (model.Page[model.Tag], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return pageOf(f.tags, q, func(t model.Tag) string { return t.ID }, func(t model.Tag) string { return t.Name }), nil
}

func (f *fakeBackend) GetTag(_ context.Context, id string) (*model.Tag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tags[id]
	if !ok {
		return nil, notFoundErr()
	}
	return &t, nil
}

func (f *fakeBackend) CreateTag(_ context.Context, t model.Tag) (*model.Tag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t.ID = f.nextID("t")
	f.tags[t.ID] = t
	return &t, nil
}

func (f *fakeBackend) UpdateTag(_ context.Context, id string, t model.Tag) (*model.Tag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tags[id] = t
	return &t, nil
}

func (f *fakeBackend) DeleteTag(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tags, id)
	return nil
}

var _ Backend = (*fakeBackend)(nil)
