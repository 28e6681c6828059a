package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/ikkim/catalog-admin/internal/app/model"
	"github.com/ikkim/catalog-admin/internal/cache"
)

const DefaultSearchLimit = 10

// SearchHit is one row of a live search dropdown
type SearchHit struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Subtitle string `json:"subtitle,omitempty"`
}

type SearchResult struct {
	Entity cache.Entity `json:"entity"`
	Query  string       `json:"query"`
	Hits   []SearchHit  `json:"hits"`
	Total  int          `json:"total"`
}

type SearchService interface {
	Search(ctx context.Context, entity cache.Entity, query string, limit int) (*SearchResult, error)
}

type searchService struct {
	products   ProductService
	variants   VariantService
	coupons    CouponService
	taxonomies *TaxonomyService
}

func NewSearchService(products ProductService, variants VariantService, coupons CouponService, taxonomies *TaxonomyService) SearchService {
	return &searchService{products: products, variants: variants, coupons: coupons, taxonomies: taxonomies}
}

func searchPage[T any](ctx context.Context, q model.ListQuery, list func(context.Context, model.ListQuery) (model.Page[T], error), hit func(T) SearchHit) ([]SearchHit, int, error) {
	page, err := list(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	hits := make([]SearchHit, len(page.Items))
	for i, item := range page.Items {
		hits[i] = hit(item)
	}
	return hits, page.Total, nil
}

func (s *searchService) Search(ctx context.Context, entity cache.Entity, query string, limit int) (*SearchResult, error) {
	if limit < 1 {
		limit = DefaultSearchLimit
	}
	query = strings.TrimSpace(query)
	result := &SearchResult{Entity: entity, Query: query, Hits: []SearchHit{}}
	if query == "" {
		return result, nil
	}

	q := model.ListQuery{Page: 1, Limit: limit, Search: query}
	var (
		hits  []SearchHit
		total int
		err   error
	)
	switch entity {
	case cache.Products:
		hits, total, err = searchPage(ctx, q, s.products.List, func(p model.Product) SearchHit {
			return SearchHit{ID: p.ID, Label: p.Title, Subtitle: string(p.Status)}
		})
	case cache.Inventory:
		hits, total, err = searchPage(ctx, q, s.products.List, func(p model.Product) SearchHit {
			return SearchHit{ID: p.ID, Label: p.Title, Subtitle: fmt.Sprintf("%d SKUs", len(p.SKUs))}
		})
	case cache.Variants:
		hits, total, err = searchPage(ctx, q, s.variants.List, func(v model.Variant) SearchHit {
			return SearchHit{ID: v.ID, Label: v.Name, Subtitle: fmt.Sprintf("%d options", len(v.Options))}
		})
	case cache.Coupons:
		list := func(ctx context.Context, q model.ListQuery) (model.Page[CouponView], error) {
			return s.coupons.List(ctx, q, "")
		}
		hits, total, err = searchPage(ctx, q, list, func(c CouponView) SearchHit {
			return SearchHit{ID: c.ID, Label: c.Code, Subtitle: string(c.Status)}
		})
	case cache.Categories:
		hits, total, err = searchPage(ctx, q, s.taxonomies.Categories.List, func(c model.Category) SearchHit {
			return SearchHit{ID: c.ID, Label: c.Name, Subtitle: c.Slug}
		})
	case cache.Brands:
		hits, total, err = searchPage(ctx, q, s.taxonomies.Brands.List, func(b model.Brand) SearchHit {
			return SearchHit{ID: b.ID, Label: b.Name, Subtitle: b.Website}
		})
	case cache.Collections:
		hits, total, err = searchPage(ctx, q, s.taxonomies.Collections.List, func(c model.Collection) SearchHit {
			return SearchHit{ID: c.ID, Label: c.Name, Subtitle: c.Slug}
		})
	case cache.Tags:
		hits, total, err = searchPage(ctx, q, s.taxonomies.Tags.List, func(t model.Tag) SearchHit {
			return SearchHit{ID: t.ID, Label: t.Name, Subtitle: t.Slug}
		})
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSearch, entity)
	}
	if err != nil {
		return nil, err
	}

	result.Hits = hits
	result.Total = total
	return result, nil
}
