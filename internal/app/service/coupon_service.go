package service

import (
	"context"
	"time"

	"github.com/ikkim/catalog-admin/internal/app/form"
	"github.com/ikkim/catalog-admin/internal/app/model"
	"github.com/ikkim/catalog-admin/internal/cache"
	"github.com/ikkim/catalog-admin/pkg/logger"
)

// CouponView is a coupon with its derived status
type CouponView struct {
	model.Coupon
	Status model.CouponStatus `json:"status"`
}

type CouponService interface {
	// List derives every coupon's status; status narrows the list when set
	List(ctx context.Context, q model.ListQuery, status model.CouponStatus) (model.Page[CouponView], error)
	Get(ctx context.Context, id string) (*CouponView, error)
	Create(ctx context.Context, f form.CouponForm) (*CouponView, error)
	Update(ctx context.Context, id string, f form.CouponForm) (*CouponView, error)
	Delete(ctx context.Context, id string) error
	BulkDelete(ctx context.Context, ids []string) (BulkResult, error)
}

type couponService struct {
	coupons CouponBackend
	cache   *cache.Service
	now     func() time.Time
}

func NewCouponService(coupons CouponBackend, c *cache.Service) CouponService {
	return &couponService{coupons: coupons, cache: c, now: time.Now}
}

func (s *couponService) view(c model.Coupon) CouponView {
	return CouponView{Coupon: c, Status: c.Status(s.now())}
}

func (s *couponService) List(ctx context.Context, q model.ListQuery, status model.CouponStatus) (model.Page[CouponView], error) {
	q = q.Normalize()
	if status != "" && !status.Valid() {
		return model.Page[CouponView]{}, form.FieldErrors{"status": "Unknown coupon status"}.Err()
	}

	if status == "" {
		page, err := cache.Fetch(ctx, s.cache, cache.ListKey(cache.Coupons, q.CacheParams()),
			func(ctx context.Context) (model.Page[model.Coupon], error) {
				return s.coupons.ListCoupons(ctx, q)
			})
		if err != nil {
			logger.FromContext(ctx).Error("Failed to list coupons", err)
			return model.Page[CouponView]{}, err
		}
		return mapPage(page, s.view), nil
	}

	// derived statuses are unknown to the backend, so filtering happens over every coupon
	walk := model.ListQuery{Search: q.Search, Filters: q.Filters}
	all, err := cache.Fetch(ctx, s.cache, cache.ListKey(cache.Coupons, "all&"+walk.FilterParams()),
		func(ctx context.Context) ([]model.Coupon, error) {
			return fetchAll(ctx, walk, s.coupons.ListCoupons)
		})
	if err != nil {
		logger.FromContext(ctx).Error("Failed to list coupons", err)
		return model.Page[CouponView]{}, err
	}
	matching := []CouponView{}
	for _, c := range all {
		if v := s.view(c); v.Status == status {
			matching = append(matching, v)
		}
	}
	return paginate(matching, q), nil
}

func (s *couponService) Get(ctx context.Context, id string) (*CouponView, error) {
	c, err := cache.Fetch(ctx, s.cache, cache.DetailKey(cache.Coupons, id),
		func(ctx context.Context) (*model.Coupon, error) {
			return s.coupons.GetCoupon(ctx, id)
		})
	if err != nil {
		return nil, notFound(err, ErrCouponNotFound)
	}
	v := s.view(*c)
	return &v, nil
}

func (s *couponService) Create(ctx context.Context, f form.CouponForm) (*CouponView, error) {
	if err := form.ValidateCoupon(f).Err(); err != nil {
		return nil, err
	}

	c, err := s.coupons.CreateCoupon(ctx, f.Coupon(""))
	if err != nil {
		logger.FromContext(ctx).Error("Failed to create coupon", err, logger.Fields{"code": form.NormalizeCouponCode(f.Code)})
		return nil, err
	}
	s.cache.Invalidate(ctx, cache.Coupons, c.ID)

	logger.FromContext(ctx).Info("Coupon created", logger.Fields{"coupon_id": c.ID, "code": c.Code})
	v := s.view(*c)
	return &v, nil
}

func (s *couponService) Update(ctx context.Context, id string, f form.CouponForm) (*CouponView, error) {
	if err := form.ValidateCoupon(f).Err(); err != nil {
		return nil, err
	}

	c, err := s.coupons.UpdateCoupon(ctx, id, f.Coupon(id))
	if err != nil {
		logger.FromContext(ctx).Error("Failed to update coupon", err, logger.Fields{"coupon_id": id})
		return nil, notFound(err, ErrCouponNotFound)
	}
	s.cache.Invalidate(ctx, cache.Coupons, id)
	v := s.view(*c)
	return &v, nil
}

func (s *couponService) Delete(ctx context.Context, id string) error {
	if err := s.coupons.DeleteCoupon(ctx, id); err != nil {
		logger.FromContext(ctx).Error("Failed to delete coupon", err, logger.Fields{"coupon_id": id})
		return notFound(err, ErrCouponNotFound)
	}
	s.cache.Invalidate(ctx, cache.Coupons, id)
	return nil
}

func (s *couponService) BulkDelete(ctx context.Context, ids []string) (BulkResult, error) {
	if err := form.ValidateBulkIDs(ids).Err(); err != nil {
		return BulkResult{}, err
	}

	result := runBulk(ctx, ids, func(ctx context.Context, id string) error {
		return notFound(s.coupons.DeleteCoupon(ctx, id), ErrCouponNotFound)
	})
	s.cache.Invalidate(ctx, cache.Coupons, result.Succeeded...)

	logger.FromContext(ctx).Info("Coupons bulk deleted", logger.Fields{
		"succeeded": len(result.Succeeded),
		"failed":    len(result.Failed),
	})
	return result, nil
}
