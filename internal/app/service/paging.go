package service

import (
	"context"

	"github.com/ikkim/catalog-admin/internal/app/model"
)

// walkLimit is the page size used when a service needs every record
const walkLimit = model.MaxLimit

// maxWalkPages stops a walk against a backend that misreports totalPages
const maxWalkPages = 200

// fetchAll reads every page of a list endpoint
func fetchAll[T any](ctx context.Context, q model.ListQuery, list func(context.Context, model.ListQuery) (model.Page[T], error)) ([]T, error) {
	q.Limit = walkLimit
	var all []T
	for page := 1; page <= maxWalkPages; page++ {
		q.Page = page
		p, err := list(ctx, q)
		if err != nil {
			return nil, err
		}
		all = append(all, p.Items...)
		if page >= p.TotalPages || len(p.Items) == 0 {
			break
		}
	}
	return all, nil
}

// paginate cuts one page out of items that were filtered locally
func paginate[T any](items []T, q model.ListQuery) model.Page[T] {
	q = q.Normalize()
	total := len(items)
	totalPages := max(1, (total+q.Limit-1)/q.Limit)

	start := min((q.Page-1)*q.Limit, total)
	end := min(start+q.Limit, total)

	out := make([]T, end-start)
	copy(out, items[start:end])
	return model.Page[T]{
		Items:       out,
		CurrentPage: q.Page,
		TotalPages:  totalPages,
		Total:       total,
	}
}

// mapPage converts the items of a page, keeping its paging numbers
func mapPage[T, U any](p model.Page[T], fn func(T) U) model.Page[U] {
	out := model.Page[U]{
		Items:       make([]U, len(p.Items)),
		CurrentPage: p.CurrentPage,
		TotalPages:  p.TotalPages,
		Total:       p.Total,
	}
	for i, item := range p.Items {
		out.Items[i] = fn(item)
	}
	return out
}
