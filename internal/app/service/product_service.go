package service

import (
	"context"

	"github.com/ikkim/catalog-admin/internal/app/form"
	"github.com/ikkim/catalog-admin/internal/app/model"
	"github.com/ikkim/catalog-admin/internal/cache"
	"github.com/ikkim/catalog-admin/internal/catalog"
	"github.com/ikkim/catalog-admin/pkg/backend"
	"github.com/ikkim/catalog-admin/pkg/logger"
	"github.com/shopspring/decimal"
)

// AvailabilityResult is what the storefront-style preview shows for a selection
type AvailabilityResult struct {
	ProductID string `json:"productId"`
	// SKU is nil while the selection does not pin down one SKU
	SKU          *model.SKU                `json:"sku"`
	Label        string                    `json:"label"`
	Price        decimal.Decimal           `json:"price"`
	Availability catalog.Availability      `json:"availability"`
	Quantity     int                       `json:"quantity"`
	CanOrder     bool                      `json:"canOrder"`
	Selection    catalog.Selection         `json:"selection"`
	Options      map[string][]model.Option `json:"options"`
}

// SKUCombination is one prefilled SKU row of the composition form
type SKUCombination struct {
	Attributes []model.Attribute `json:"attributes"`
	Label      string            `json:"label"`
}

type PreviewSKU struct {
	SKU    model.SKU           `json:"sku"`
	Label  string              `json:"label"`
	Status catalog.StockStatus `json:"status"`
}

// ProductPreview is the state of the composition wizard on one tab
type ProductPreview struct {
	Tab        form.Tab         `json:"tab"`
	Prev       form.Tab         `json:"prev,omitempty"`
	Next       form.Tab         `json:"next,omitempty"`
	CanSubmit  bool             `json:"canSubmit"`
	Valid      bool             `json:"valid"`
	Errors     form.FieldErrors `json:"errors"`
	SKUs       []PreviewSKU     `json:"skus"`
	TotalStock int              `json:"totalStock"`
	Fields     []form.Field     `json:"fields"`
}

type ProductService interface {
	List(ctx context.Context, q model.ListQuery) (model.Page[model.Product], error)
	Get(ctx context.Context, id string) (*model.Product, error)
	Create(ctx context.Context, f form.ProductForm, uploads []form.Upload) (*model.Product, error)
	Update(ctx context.Context, id string, f form.ProductForm, uploads []form.Upload) (*model.Product, error)
	Delete(ctx context.Context, id string) error
	Availability(ctx context.Context, id string, sel catalog.Selection, quantity int) (*AvailabilityResult, error)
	Preview(ctx context.Context, f form.ProductForm, tab form.Tab) (*ProductPreview, error)
	SKUCombinations(ctx context.Context, variantIDs []string) ([]SKUCombination, error)
}

type productService struct {
	products ProductBackend
	variants VariantService
	cache    *cache.Service
}

func NewProductService(products ProductBackend, variants VariantService, c *cache.Service) ProductService {
	return &productService{products: products, variants: variants, cache: c}
}

func (s *productService) List(ctx context.Context, q model.ListQuery) (model.Page[model.Product], error) {
	q = q.Normalize()
	page, err := cache.Fetch(ctx, s.cache, cache.ListKey(cache.Products, q.CacheParams()),
		func(ctx context.Context) (model.Page[model.Product], error) {
			return s.products.ListProducts(ctx, q)
		})
	if err != nil {
		logger.FromContext(ctx).Error("Failed to list products", err)
		return model.Page[model.Product]{}, err
	}
	return page, nil
}

func (s *productService) Get(ctx context.Context, id string) (*model.Product, error) {
	p, err := cache.Fetch(ctx, s.cache, cache.DetailKey(cache.Products, id),
		func(ctx context.Context) (*model.Product, error) {
			return s.products.GetProduct(ctx, id)
		})
	if err != nil {
		return nil, notFound(err, ErrProductNotFound)
	}
	return p, nil
}

func (s *productService) Create(ctx context.Context, f form.ProductForm, uploads []form.Upload) (*model.Product, error) {
	payload, err := s.payload(ctx, f, uploads, false)
	if err != nil {
		return nil, err
	}

	p, err := s.products.CreateProduct(ctx, payload)
	if err != nil {
		logger.FromContext(ctx).Error("Failed to create product", err, logger.Fields{"title": f.Title})
		return nil, err
	}
	s.cache.Invalidate(ctx, cache.Products, p.ID)

	logger.FromContext(ctx).Info("Product created", logger.Fields{
		"product_id": p.ID,
		"skus":       len(p.SKUs),
		"images":     len(uploads),
	})
	return p, nil
}

func (s *productService) Update(ctx context.Context, id string, f form.ProductForm, uploads []form.Upload) (*model.Product, error) {
	payload, err := s.payload(ctx, f, uploads, true)
	if err != nil {
		return nil, err
	}

	p, err := s.products.UpdateProduct(ctx, id, payload)
	if err != nil {
		logger.FromContext(ctx).Error("Failed to update product", err, logger.Fields{"product_id": id})
		return nil, notFound(err, ErrProductNotFound)
	}
	s.cache.Invalidate(ctx, cache.Products, id)
	return p, nil
}

// payload validates the form against the live variant catalog and shapes it for multipart
func (s *productService) payload(ctx context.Context, f form.ProductForm, uploads []form.Upload, editing bool) (backend.Multipart, error) {
	variants, err := s.variants.Catalog(ctx)
	if err != nil {
		return backend.Multipart{}, err
	}
	if err := form.ValidateProduct(f, variants).Err(); err != nil {
		return backend.Multipart{}, err
	}

	p, err := form.BuildProductPayload(f, uploads, editing)
	if err != nil {
		return backend.Multipart{}, err
	}
	return toMultipart(p), nil
}

func toMultipart(p form.ProductPayload) backend.Multipart {
	m := backend.Multipart{
		Fields: make([]backend.Field, len(p.Fields)),
		Files:  make([]backend.File, len(p.Files)),
	}
	for i, f := range p.Fields {
		m.Fields[i] = backend.Field{Name: f.Name, Value: f.Value}
	}
	for i, u := range p.Files {
		m.Files[i] = backend.File{
			FieldName:   form.ImageField,
			Filename:    u.Filename,
			ContentType: u.ContentType,
			Open:        u.Open,
		}
	}
	return m
}

func (s *productService) Delete(ctx context.Context, id string) error {
	if err := s.products.DeleteProduct(ctx, id); err != nil {
		logger.FromContext(ctx).Error("Failed to delete product", err, logger.Fields{"product_id": id})
		return notFound(err, ErrProductNotFound)
	}
	s.cache.Invalidate(ctx, cache.Products, id)

	logger.FromContext(ctx).Info("Product deleted", logger.Fields{"product_id": id})
	return nil
}

func (s *productService) Availability(ctx context.Context, id string, sel catalog.Selection, quantity int) (*AvailabilityResult, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	variants, err := s.variants.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	sku := catalog.ResolveForProduct(p, sel)
	availability := catalog.ProjectAvailability(sku, p.SKUs, p.HasVariants())

	result := &AvailabilityResult{
		ProductID:    p.ID,
		SKU:          sku,
		Price:        p.EffectivePrice(sku),
		Availability: availability,
		Quantity:     availability.ClampQuantity(quantity),
		CanOrder:     availability.CanOrder(),
		Selection:    sel,
		Options:      make(map[string][]model.Option, len(p.Variants)),
	}
	if sku != nil {
		result.Label = variants.Label(p.VariantIDs(), sku.Attributes)
	}
	for _, vid := range p.VariantIDs() {
		result.Options[vid] = variants.OptionsFor(vid)
	}
	return result, nil
}

func (s *productService) Preview(ctx context.Context, f form.ProductForm, tab form.Tab) (*ProductPreview, error) {
	if tab == "" {
		tab = form.TabSummary
	}
	w, err := form.WizardAt(tab)
	if err != nil {
		return nil, err
	}
	variants, err := s.variants.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	errs := form.ValidateProduct(f, variants)
	prev, next := w.Peek()
	preview := &ProductPreview{
		Tab:       w.Current(),
		Prev:      prev,
		Next:      next,
		CanSubmit: w.CanSubmit(),
		Valid:     len(errs) == 0,
		Errors:    errs,
		SKUs:      make([]PreviewSKU, 0, len(f.SKUs)),
	}

	for _, sku := range f.SKUs {
		preview.SKUs = append(preview.SKUs, PreviewSKU{
			SKU:    sku,
			Label:  variants.Label(f.Variants, sku.Attributes),
			Status: catalog.StockStatusFor(sku.Stock, sku.LowStockThreshold),
		})
		if sku.Stock > 0 {
			preview.TotalStock += sku.Stock
		}
	}

	if w.CanSubmit() {
		payload, err := form.BuildProductPayload(f, nil, false)
		if err != nil {
			return nil, err
		}
		preview.Fields = payload.Fields
	}
	return preview, nil
}

func (s *productService) SKUCombinations(ctx context.Context, variantIDs []string) ([]SKUCombination, error) {
	variants, err := s.variants.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	errs := form.FieldErrors{}
	for _, id := range variantIDs {
		if _, ok := variants.Get(id); !ok {
			errs.Add("variants", "Unknown variant "+id)
		}
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	combos := variants.Combinations(variantIDs)
	out := make([]SKUCombination, 0, len(combos))
	for _, attrs := range combos {
		out = append(out, SKUCombination{Attributes: attrs, Label: variants.Label(variantIDs, attrs)})
	}
	return out, nil
}
