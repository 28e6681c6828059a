package service

import (
	"context"

	"github.com/ikkim/catalog-admin/internal/app/form"
	"github.com/ikkim/catalog-admin/internal/app/model"
	"github.com/ikkim/catalog-admin/internal/cache"
	"github.com/ikkim/catalog-admin/pkg/logger"
)

// ReviewView is a review with its derived moderation status
type ReviewView struct {
	model.Review
	Status model.ReviewStatus `json:"status"`
}

func newReviewView(r model.Review) ReviewView {
	return ReviewView{Review: r, Status: r.Status()}
}

type ReviewService interface {
	// List maps the "status" filter onto the backend's isApproved flag
	List(ctx context.Context, q model.ListQuery, status model.ReviewStatus) (model.Page[ReviewView], error)
	Approve(ctx context.Context, id string) (*ReviewView, error)
	// Reject clears the approval flag; the review reads as pending afterwards
	Reject(ctx context.Context, id string) (*ReviewView, error)
	Delete(ctx context.Context, id string) error
	BulkDelete(ctx context.Context, ids []string) (BulkResult, error)
	BulkApprove(ctx context.Context, ids []string) (BulkResult, error)
}

type reviewService struct {
	reviews ReviewBackend
	cache   *cache.Service
}

func NewReviewService(reviews ReviewBackend, c *cache.Service) ReviewService {
	return &reviewService{reviews: reviews, cache: c}
}

func (s *reviewService) List(ctx context.Context, q model.ListQuery, status model.ReviewStatus) (model.Page[ReviewView], error) {
	q = q.Normalize()
	switch status {
	case "":
	case model.ReviewApproved, model.ReviewPending:
		filters := make(map[string]string, len(q.Filters)+1)
		for k, v := range q.Filters {
			filters[k] = v
		}
		filters["isApproved"] = boolString(status == model.ReviewApproved)
		q.Filters = filters
	default:
		return model.Page[ReviewView]{}, form.FieldErrors{"status": "Status must be approved or pending"}.Err()
	}

	page, err := cache.Fetch(ctx, s.cache, cache.ListKey(cache.Reviews, q.CacheParams()),
		func(ctx context.Context) (model.Page[model.Review], error) {
			return s.reviews.ListReviews(ctx, q)
		})
	if err != nil {
		logger.FromContext(ctx).Error("Failed to list reviews", err)
		return model.Page[ReviewView]{}, err
	}
	return mapPage(page, newReviewView), nil
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func (s *reviewService) setApproval(ctx context.Context, id string, approved bool) (*ReviewView, error) {
	r, err := s.reviews.SetReviewApproval(ctx, id, approved)
	if err != nil {
		logger.FromContext(ctx).Error("Failed to moderate review", err, logger.Fields{
			"review_id": id,
			"approved":  approved,
		})
		return nil, notFound(err, ErrReviewNotFound)
	}
	s.cache.Invalidate(ctx, cache.Reviews, id)

	logger.FromContext(ctx).Info("Review moderated", logger.Fields{
		"review_id": id,
		"approved":  approved,
	})
	v := newReviewView(*r)
	return &v, nil
}

func (s *reviewService) Approve(ctx context.Context, id string) (*ReviewView, error) {
	return s.setApproval(ctx, id, true)
}

func (s *reviewService) Reject(ctx context.Context, id string) (*ReviewView, error) {
	return s.setApproval(ctx, id, false)
}

func (s *reviewService) Delete(ctx context.Context, id string) error {
	if err := s.reviews.DeleteReview(ctx, id); err != nil {
		logger.FromContext(ctx).Error("Failed to delete review", err, logger.Fields{"review_id": id})
		return notFound(err, ErrReviewNotFound)
	}
	s.cache.Invalidate(ctx, cache.Reviews, id)
	return nil
}

func (s *reviewService) BulkDelete(ctx context.Context, ids []string) (BulkResult, error) {
	if err := form.ValidateBulkIDs(ids).Err(); err != nil {
		return BulkResult{}, err
	}
	result := runBulk(ctx, ids, func(ctx context.Context, id string) error {
		return notFound(s.reviews.DeleteReview(ctx, id), ErrReviewNotFound)
	})
	s.cache.Invalidate(ctx, cache.Reviews, result.Succeeded...)
	return result, nil
}

func (s *reviewService) BulkApprove(ctx context.Context, ids []string) (BulkResult, error) {
	if err := form.ValidateBulkIDs(ids).Err(); err != nil {
		return BulkResult{}, err
	}
	result := runBulk(ctx, ids, func(ctx context.Context, id string) error {
		_, err := s.reviews.SetReviewApproval(ctx, id, true)
		return notFound(err, ErrReviewNotFound)
	})
	s.cache.Invalidate(ctx, cache.Reviews, result.Succeeded...)
	return result, nil
}
