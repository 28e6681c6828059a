package service

import (
	"context"

	"github.com/ikkim/catalog-admin/internal/app/form"
	"github.com/ikkim/catalog-admin/internal/app/model"
	"github.com/ikkim/catalog-admin/internal/cache"
	"github.com/ikkim/catalog-admin/pkg/logger"
)

// Taxonomy manages one of the classification entities products are filed under
type Taxonomy[T any] interface {
	List(ctx context.Context, q model.ListQuery) (model.Page[T], error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, f form.TaxonomyForm) (*T, error)
	Update(ctx context.Context, id string, f form.TaxonomyForm) (*T, error)
	Delete(ctx context.Context, id string) error
}

// taxonomyOps binds a Taxonomy to its backend routes, form rules and cache entity
type taxonomyOps[T any] struct {
	entity   cache.Entity
	notFound error
	idOf     func(*T) string
	validate func(f form.TaxonomyForm, id string) form.FieldErrors
	build    func(f form.TaxonomyForm, id string) T

	list   func(context.Context, model.ListQuery) (model.Page[T], error)
	get    func(context.Context, string) (*T, error)
	create func(context.Context, T) (*T, error)
	update func(context.Context, string, T) (*T, error)
	delete func(context.Context, string) error
}

type taxonomy[T any] struct {
	ops   taxonomyOps[T]
	cache *cache.Service
}

func (s *taxonomy[T]) List(ctx context.Context, q model.ListQuery) (model.Page[T], error) {
	q = q.Normalize()
	page, err := cache.Fetch(ctx, s.cache, cache.ListKey(s.ops.entity, q.CacheParams()),
		func(ctx context.Context) (model.Page[T], error) {
			return s.ops.list(ctx, q)
		})
	if err != nil {
		logger.FromContext(ctx).Error("Failed to list "+string(s.ops.entity), err)
		return model.Page[T]{}, err
	}
	return page, nil
}

func (s *taxonomy[T]) Get(ctx context.Context, id string) (*T, error) {
	v, err := cache.Fetch(ctx, s.cache, cache.DetailKey(s.ops.entity, id),
		func(ctx context.Context) (*T, error) {
			return s.ops.get(ctx, id)
		})
	if err != nil {
		return nil, notFound(err, s.ops.notFound)
	}
	return v, nil
}

func (s *taxonomy[T]) Create(ctx context.Context, f form.TaxonomyForm) (*T, error) {
	f = f.Normalize()
	if err := s.ops.validate(f, "").Err(); err != nil {
		return nil, err
	}

	v, err := s.ops.create(ctx, s.ops.build(f, ""))
	if err != nil {
		logger.FromContext(ctx).Error("Failed to create "+string(s.ops.entity), err, logger.Fields{"name": f.Name})
		return nil, err
	}
	s.cache.Invalidate(ctx, s.ops.entity, s.ops.idOf(v))
	return v, nil
}

func (s *taxonomy[T]) Update(ctx context.Context, id string, f form.TaxonomyForm) (*T, error) {
	f = f.Normalize()
	if err := s.ops.validate(f, id).Err(); err != nil {
		return nil, err
	}

	v, err := s.ops.update(ctx, id, s.ops.build(f, id))
	if err != nil {
		logger.FromContext(ctx).Error("Failed to update "+string(s.ops.entity), err, logger.Fields{"id": id})
		return nil, notFound(err, s.ops.notFound)
	}
	s.cache.Invalidate(ctx, s.ops.entity, id)
	return v, nil
}

func (s *taxonomy[T]) Delete(ctx context.Context, id string) error {
	if err := s.ops.delete(ctx, id); err != nil {
		logger.FromContext(ctx).Error("Failed to delete "+string(s.ops.entity), err, logger.Fields{"id": id})
		return notFound(err, s.ops.notFound)
	}
	s.cache.Invalidate(ctx, s.ops.entity, id)
	return nil
}

// TaxonomyService groups the four classification entities
type TaxonomyService struct {
	Categories  Taxonomy[model.Category]
	Brands      Taxonomy[model.Brand]
	Collections Taxonomy[model.Collection]
	Tags        Taxonomy[model.Tag]
}

func NewTaxonomyService(b TaxonomyBackend, c *cache.Service) *TaxonomyService {
	ignoreID := func(validate func(form.TaxonomyForm) form.FieldErrors) func(form.TaxonomyForm, string) form.FieldErrors {
		return func(f form.TaxonomyForm, _ string) form.FieldErrors { return validate(f) }
	}

	return &TaxonomyService{
		Categories: &taxonomy[model.Category]{cache: c, ops: taxonomyOps[model.Category]{
			entity:   cache.Categories,
			notFound: ErrCategoryNotFound,
			idOf:     func(v *model.Category) string { return v.ID },
			validate: form.ValidateCategory,
			build:    form.TaxonomyForm.Category,
			list:     b.ListCategories,
			get:      b.GetCategory,
			create:   b.CreateCategory,
			update:   b.UpdateCategory,
			delete:   b.DeleteCategory,
		}},
		Brands: &taxonomy[model.Brand]{cache: c, ops: taxonomyOps[model.Brand]{
			entity:   cache.Brands,
			notFound: ErrBrandNotFound,
			idOf:     func(v *model.Brand) string { return v.ID },
			validate: ignoreID(form.ValidateBrand),
			build:    form.TaxonomyForm.Brand,
			list:     b.ListBrands,
			get:      b.GetBrand,
			create:   b.CreateBrand,
			update:   b.UpdateBrand,
			delete:   b.DeleteBrand,
		}},
		Collections: &taxonomy[model.Collection]{cache: c, ops: taxonomyOps[model.Collection]{
			entity:   cache.Collections,
			notFound: ErrCollectionNotFound,
			idOf:     func(v *model.Collection) string { return v.ID },
			validate: ignoreID(form.ValidateCollection),
			build:    form.TaxonomyForm.Collection,
			list:     b.ListCollections,
			get:      b.GetCollection,
			create:   b.CreateCollection,
			update:   b.UpdateCollection,
			delete:   b.DeleteCollection,
		}},
		Tags: &taxonomy[model.Tag]{cache: c, ops: taxonomyOps[model.Tag]{
			entity:   cache.Tags,
			notFound: ErrTagNotFound,
			idOf:     func(v *model.Tag) string { return v.ID },
			validate: ignoreID(form.ValidateTag),
			build:    form.TaxonomyForm.Tag,
			list:     b.ListTags,
			get:      b.GetTag,
			create:   b.CreateTag,
			update:   b.UpdateTag,
			delete:   b.DeleteTag,
		}},
	}
}
