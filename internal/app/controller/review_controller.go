package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/catalog-admin/internal/app/model"
	"github.com/ikkim/catalog-admin/internal/app/service"
	"github.com/ikkim/catalog-admin/internal/middleware"
	"github.com/ikkim/catalog-admin/pkg/logger"
)

type ReviewController struct {
	reviewService service.ReviewService
}

func NewReviewController(reviewService service.ReviewService) *ReviewController {
	return &ReviewController{reviewService: reviewService}
}

// ListReviews returns reviews for moderation
// GET /api/v1/reviews?status=approved|pending
func (ctrl *ReviewController) ListReviews(c *gin.Context) {
	q := listQuery(c, "product", "rating")
	status := model.ReviewStatus(c.Query("status"))

	page, err := ctrl.reviewService.List(c.Request.Context(), q, status)
	if err != nil {
		respondError(c, err, "list reviews", logger.Fields{"status": string(status)})
		return
	}

	respondList(c, "reviews", page)
}

// ApproveReview PATCH /api/v1/reviews/:id/approve
func (ctrl *ReviewController) ApproveReview(c *gin.Context) {
	id := c.Param("id")

	review, err := ctrl.reviewService.Approve(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "approve review", logger.Fields{"review_id": id})
		return
	}

	middleware.GetLoggerFromContext(c).Info("Review approved", logger.Fields{"review_id": id})

	c.JSON(http.StatusOK, gin.H{
		"message": "Review approved",
		"review":  review,
	})
}

// RejectReview PATCH /api/v1/reviews/:id/reject
// The review returns to pending; there is no separate rejected state.
func (ctrl *ReviewController) RejectReview(c *gin.Context) {
	id := c.Param("id")

	review, err := ctrl.reviewService.Reject(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "reject review", logger.Fields{"review_id": id})
		return
	}

	middleware.GetLoggerFromContext(c).Info("Review rejected", logger.Fields{"review_id": id})

	c.JSON(http.StatusOK, gin.H{
		"message": "Review rejected",
		"review":  review,
	})
}

// DeleteReview DELETE /api/v1/reviews/:id
func (ctrl *ReviewController) DeleteReview(c *gin.Context) {
	id := c.Param("id")

	if err := ctrl.reviewService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "delete review", logger.Fields{"review_id": id})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Review deleted successfully",
	})
}

// BulkDeleteReviews POST /api/v1/reviews/bulk-delete
func (ctrl *ReviewController) BulkDeleteReviews(c *gin.Context) {
	ids, ok := bindBulkIDs(c, "bulk delete reviews")
	if !ok {
		return
	}

	result, err := ctrl.reviewService.BulkDelete(c.Request.Context(), ids)
	if err != nil {
		respondError(c, err, "bulk delete reviews", logger.Fields{"count": len(ids)})
		return
	}

	respondBulk(c, result, "delete", "reviews")
}

// BulkApproveReviews POST /api/v1/reviews/bulk-approve
func (ctrl *ReviewController) BulkApproveReviews(c *gin.Context) {
	ids, ok := bindBulkIDs(c, "bulk approve reviews")
	if !ok {
		return
	}

	result, err := ctrl.reviewService.BulkApprove(c.Request.Context(), ids)
	if err != nil {
		respondError(c, err, "bulk approve reviews", logger.Fields{"count": len(ids)})
		return
	}

	respondBulk(c, result, "approve", "reviews")
}
