package controller

import (
	"context"
	"io"

	"github.com/ikkim/catalog-admin/internal/app/form"
	"github.com/ikkim/catalog-admin/internal/app/model"
	"github.com/ikkim/catalog-admin/internal/app/service"
	"github.com/ikkim/catalog-admin/internal/catalog"
	"github.com/ikkim/catalog-admin/internal/storage"
)

// Each fake embeds its interface; calling a method the test did not stub panics.

type fakeProductService struct {
	service.ProductService

	products    []model.Product
	lastQuery   model.ListQuery
	lastForm    form.ProductForm
	lastUploads []string // uploaded file contents, read during the call
	lastSel     catalog.Selection
	lastQty     int
	lastTab     form.Tab
	err         error
}

func (f *fakeProductService) List(_ context.Context, q model.ListQuery) (model.Page[model.Product], error) {
	f.lastQuery = q
	return model.Page[model.Product]{Items: f.products, CurrentPage: q.Page, TotalPages: 7, Total: 70}, f.err
}

func (f *fakeProductService) Get(_ context.Context, id string) (*model.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &model.Product{ID: id, Title: "Shirt"}, nil
}

func (f *fakeProductService) Create(_ context.Context, pf form.ProductForm, uploads []form.Upload) (*model.Product, error) {
	f.lastForm = pf
	for _, u := range uploads {
		rc, err := u.Open()
		if err != nil {
			return nil, err
		}
		data, _ := io.ReadAll(rc)
		rc.Close()
		f.lastUploads = append(f.lastUploads, string(data))
	}
	if f.err != nil {
		return nil, f.err
	}
	return &model.Product{ID: "p-new", Title: pf.Title}, nil
}

func (f *fakeProductService) Delete(_ context.Context, _ string) error {
	return f.err
}

func (f *fakeProductService) Availability(_ context.Context, id string, sel catalog.Selection, qty int) (*service.AvailabilityResult, error) {
	f.lastSel = sel
	f.lastQty = qty
	return &service.AvailabilityResult{ProductID: id, Quantity: qty, Selection: sel}, f.err
}

func (f *fakeProductService) Preview(_ context.Context, pf form.ProductForm, tab form.Tab) (*service.ProductPreview, error) {
	f.lastForm = pf
	f.lastTab = tab
	return &service.ProductPreview{Tab: tab}, f.err
}

func (f *fakeProductService) SKUCombinations(_ context.Context, ids []string) ([]service.SKUCombination, error) {
	out := make([]service.SKUCombination, len(ids))
	for i, id := range ids {
		out[i] = service.SKUCombination{Label: id}
	}
	return out, f.err
}

type fakeCouponService struct {
	service.CouponService

	lastStatus model.CouponStatus
	bulk       service.BulkResult
	bulkIDs    []string
	err        error
}

func (f *fakeCouponService) List(_ context.Context, q model.ListQuery, status model.CouponStatus) (model.Page[service.CouponView], error) {
	f.lastStatus = status
	return model.Page[service.CouponView]{CurrentPage: 1, TotalPages: 1}, f.err
}

func (f *fakeCouponService) Create(_ context.Context, cf form.CouponForm) (*service.CouponView, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &service.CouponView{Coupon: model.Coupon{ID: "c1", Code: cf.Code}, Status: model.CouponActive}, nil
}

func (f *fakeCouponService) BulkDelete(_ context.Context, ids []string) (service.BulkResult, error) {
	f.bulkIDs = ids
	return f.bulk, f.err
}

type fakeReviewService struct {
	service.ReviewService

	rejected string
	err      error
}

func (f *fakeReviewService) Reject(_ context.Context, id string) (*service.ReviewView, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.rejected = id
	return &service.ReviewView{Review: model.Review{ID: id}, Status: model.ReviewPending}, nil
}

func (f *fakeReviewService) BulkApprove(_ context.Context, ids []string) (service.BulkResult, error) {
	return service.BulkResult{Succeeded: ids, Failed: []service.BulkFailure{}}, nil
}

type fakeInventoryService struct {
	service.InventoryService

	lastStatus catalog.StockStatus
	lastAdj    catalog.Adjustment
	err        error
}

func (f *fakeInventoryService) List(_ context.Context, q model.ListQuery, status catalog.StockStatus) (model.Page[service.InventoryRow], error) {
	f.lastStatus = status
	return model.Page[service.InventoryRow]{
		Items:       []service.InventoryRow{{ProductID: "p1", SKUID: "s1", Status: catalog.LowStock}},
		CurrentPage: 1,
		TotalPages:  1,
		Total:       1,
	}, f.err
}

func (f *fakeInventoryService) Adjust(_ context.Context, productID, skuID string, adj catalog.Adjustment) (*service.AdjustResult, error) {
	f.lastAdj = adj
	if f.err != nil {
		return nil, f.err
	}
	return &service.AdjustResult{
		Row:      service.InventoryRow{ProductID: productID, SKUID: skuID},
		Previous: 3,
		Current:  3 + adj.Delta(),
		Reason:   adj.Reason,
	}, nil
}

type fakeTaxonomy[T any] struct {
	service.Taxonomy[T]

	item    T
	created form.TaxonomyForm
	err     error
}

func (f *fakeTaxonomy[T]) Get(_ context.Context, _ string) (*T, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &f.item, nil
}

func (f *fakeTaxonomy[T]) Create(_ context.Context, tf form.TaxonomyForm) (*T, error) {
	f.created = tf
	if f.err != nil {
		return nil, f.err
	}
	return &f.item, nil
}

type fakePresigner struct {
	folder string
	err    error
}

func (f *fakePresigner) GeneratePresignedURL(_ context.Context, filename, contentType, folder string) (*storage.PresignedURLResponse, error) {
	f.folder = folder
	if f.err != nil {
		return nil, f.err
	}
	return &storage.PresignedURLResponse{
		UploadURL: "https://bucket.example/upload",
		FileURL:   "https://cdn.example/" + folder + "/x.png",
		Key:       folder + "/x.png",
	}, nil
}
