package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// bulkConcurrency bounds the number of backend calls a bulk action keeps in flight
const bulkConcurrency = 5

type BulkFailure struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// BulkResult attributes the outcome of a bulk action to each ID, in request order
type BulkResult struct {
	Succeeded []string      `json:"succeeded"`
	Failed    []BulkFailure `json:"failed"`
}

func (r BulkResult) Partial() bool {
	return len(r.Failed) > 0 && len(r.Succeeded) > 0
}

// Message summarizes the result, e.g. "3 coupons deleted" or "Failed to delete some coupons"
func (r BulkResult) Message(action, noun string) string {
	switch {
	case len(r.Failed) == 0:
		return fmt.Sprintf("%d %s %sd", len(r.Succeeded), noun, action)
	case len(r.Succeeded) == 0:
		return fmt.Sprintf("Failed to %s %s", action, noun)
	default:
		return fmt.Sprintf("Failed to %s some %s", action, noun)
	}
}

// runBulk applies fn to every id concurrently. One failure does not stop the rest.
func runBulk(ctx context.Context, ids []string, fn func(context.Context, string) error) BulkResult {
	errs := make([]error, len(ids))

	var g errgroup.Group
	g.SetLimit(bulkConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			errs[i] = fn(ctx, id)
			return nil
		})
	}
	_ = g.Wait()

	result := BulkResult{Succeeded: []string{}, Failed: []BulkFailure{}}
	for i, id := range ids {
		if errs[i] != nil {
			result.Failed = append(result.Failed, BulkFailure{ID: id, Error: errs[i].Error()})
			continue
		}
		result.Succeeded = append(result.Succeeded, id)
	}
	return result
}
