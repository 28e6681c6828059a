package service

import (
	"errors"
	"fmt"

	"github.com/ikkim/catalog-admin/pkg/backend"
)

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrSKUNotFound        = errors.New("sku not found")
	ErrVariantNotFound    = errors.New("variant not found")
	ErrVariantInUse       = errors.New("variant is used by products")
	ErrCouponNotFound     = errors.New("coupon not found")
	ErrReviewNotFound     = errors.New("review not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrBrandNotFound      = errors.New("brand not found")
	ErrCollectionNotFound = errors.New("collection not found")
	ErrTagNotFound        = errors.New("tag not found")
	ErrUnsupportedSearch  = errors.New("entity is not searchable")
)

// notFound replaces a backend 404 with the service's own sentinel while keeping
// the backend error reachable for its message
func notFound(err, sentinel error) error {
	if errors.Is(err, backend.ErrNotFound) {
		return fmt.Errorf("%w: %w", sentinel, err)
	}
	return err
}
