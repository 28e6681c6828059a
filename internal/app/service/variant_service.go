package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/ikkim/catalog-admin/internal/app/form"
	"github.com/ikkim/catalog-admin/internal/app/model"
	"github.com/ikkim/catalog-admin/internal/cache"
	"github.com/ikkim/catalog-admin/internal/catalog"
	"github.com/ikkim/catalog-admin/pkg/logger"
)

type VariantService interface {
	List(ctx context.Context, q model.ListQuery) (model.Page[model.Variant], error)
	// Catalog returns every variant, indexed for resolution and labelling
	Catalog(ctx context.Context) (*catalog.VariantCatalog, error)
	Get(ctx context.Context, id string) (*model.Variant, error)
	Create(ctx context.Context, f form.VariantForm) (*model.Variant, error)
	Update(ctx context.Context, id string, f form.VariantForm) (*model.Variant, error)
	// Delete refuses while any product still declares the variant
	Delete(ctx context.Context, id string) error
}

type variantService struct {
	variants VariantBackend
	products ProductBackend
	cache    *cache.Service
}

func NewVariantService(variants VariantBackend, products ProductBackend, c *cache.Service) VariantService {
	return &variantService{variants: variants, products: products, cache: c}
}

func (s *variantService) List(ctx context.Context, q model.ListQuery) (model.Page[model.Variant], error) {
	q = q.Normalize()
	return cache.Fetch(ctx, s.cache, cache.ListKey(cache.Variants, q.CacheParams()),
		func(ctx context.Context) (model.Page[model.Variant], error) {
			return s.variants.ListVariants(ctx, q)
		})
}

func (s *variantService) Catalog(ctx context.Context) (*catalog.VariantCatalog, error) {
	all, err := cache.Fetch(ctx, s.cache, cache.AllKey(cache.Variants),
		func(ctx context.Context) ([]model.Variant, error) {
			return fetchAll(ctx, model.ListQuery{}, s.variants.ListVariants)
		})
	if err != nil {
		logger.FromContext(ctx).Error("Failed to load variant catalog", err)
		return nil, err
	}
	return catalog.NewVariantCatalog(all), nil
}

func (s *variantService) Get(ctx context.Context, id string) (*model.Variant, error) {
	v, err := cache.Fetch(ctx, s.cache, cache.DetailKey(cache.Variants, id),
		func(ctx context.Context) (*model.Variant, error) {
			return s.variants.GetVariant(ctx, id)
		})
	if err != nil {
		return nil, notFound(err, ErrVariantNotFound)
	}
	return v, nil
}

func (s *variantService) Create(ctx context.Context, f form.VariantForm) (*model.Variant, error) {
	if err := form.ValidateVariant(f).Err(); err != nil {
		return nil, err
	}

	v, err := s.variants.CreateVariant(ctx, f.Variant(""))
	if err != nil {
		logger.FromContext(ctx).Error("Failed to create variant", err, logger.Fields{"name": f.Name})
		return nil, err
	}
	s.cache.Invalidate(ctx, cache.Variants, v.ID)

	logger.FromContext(ctx).Info("Variant created", logger.Fields{"variant_id": v.ID})
	return v, nil
}

func (s *variantService) Update(ctx context.Context, id string, f form.VariantForm) (*model.Variant, error) {
	if err := form.ValidateVariant(f).Err(); err != nil {
		return nil, err
	}

	v, err := s.variants.UpdateVariant(ctx, id, f.Variant(id))
	if err != nil {
		logger.FromContext(ctx).Error("Failed to update variant", err, logger.Fields{"variant_id": id})
		return nil, notFound(err, ErrVariantNotFound)
	}
	s.cache.Invalidate(ctx, cache.Variants, id)
	return v, nil
}

func (s *variantService) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	products, err := fetchAll(ctx, model.ListQuery{}, s.products.ListProducts)
	if err != nil {
		log.Error("Failed to check variant usage", err, logger.Fields{"variant_id": id})
		return err
	}
	var users []string
	for _, p := range products {
		if slices.Contains(p.VariantIDs(), id) {
			users = append(users, p.Title)
		}
	}
	if len(users) > 0 {
		log.Warn("Refusing to delete variant in use", logger.Fields{
			"variant_id": id,
			"products":   len(users),
		})
		return fmt.Errorf("%w: %d product(s)", ErrVariantInUse, len(users))
	}

	if err := s.variants.DeleteVariant(ctx, id); err != nil {
		log.Error("Failed to delete variant", err, logger.Fields{"variant_id": id})
		return notFound(err, ErrVariantNotFound)
	}
	s.cache.Invalidate(ctx, cache.Variants, id)

	log.Info("Variant deleted", logger.Fields{"variant_id": id})
	return nil
}
