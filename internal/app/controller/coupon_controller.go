package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/catalog-admin/internal/app/form"
	"github.com/ikkim/catalog-admin/internal/app/model"
	"github.com/ikkim/catalog-admin/internal/app/service"
	"github.com/ikkim/catalog-admin/internal/middleware"
	"github.com/ikkim/catalog-admin/pkg/logger"
)

type CouponController struct {
	couponService service.CouponService
}

func NewCouponController(couponService service.CouponService) *CouponController {
	return &CouponController{couponService: couponService}
}

// ListCoupons returns coupons with their derived status
// GET /api/v1/coupons?status=active|inactive|expired|limit-reached
func (ctrl *CouponController) ListCoupons(c *gin.Context) {
	q := listQuery(c, "discountType")
	status := model.CouponStatus(c.Query("status"))

	page, err := ctrl.couponService.List(c.Request.Context(), q, status)
	if err != nil {
		respondError(c, err, "list coupons", logger.Fields{"status": string(status)})
		return
	}

	respondList(c, "coupons", page)
}

// GetCoupon GET /api/v1/coupons/:id
func (ctrl *CouponController) GetCoupon(c *gin.Context) {
	id := c.Param("id")

	coupon, err := ctrl.couponService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "get coupon", logger.Fields{"coupon_id": id})
		return
	}

	c.JSON(http.StatusOK, gin.H{"coupon": coupon})
}

// CreateCoupon POST /api/v1/coupons
func (ctrl *CouponController) CreateCoupon(c *gin.Context) {
	var f form.CouponForm
	if !bindJSON(c, &f, "create coupon") {
		return
	}

	coupon, err := ctrl.couponService.Create(c.Request.Context(), f)
	if err != nil {
		respondError(c, err, "create coupon", logger.Fields{"code": f.Code})
		return
	}

	middleware.GetLoggerFromContext(c).Info("Coupon created successfully", logger.Fields{
		"coupon_id": coupon.ID,
		"code":      coupon.Code,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Coupon created successfully",
		"coupon":  coupon,
	})
}

// UpdateCoupon PUT /api/v1/coupons/:id
func (ctrl *CouponController) UpdateCoupon(c *gin.Context) {
	id := c.Param("id")

	var f form.CouponForm
	if !bindJSON(c, &f, "update coupon") {
		return
	}

	coupon, err := ctrl.couponService.Update(c.Request.Context(), id, f)
	if err != nil {
		respondError(c, err, "update coupon", logger.Fields{"coupon_id": id})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Coupon updated successfully",
		"coupon":  coupon,
	})
}

// DeleteCoupon DELETE /api/v1/coupons/:id
func (ctrl *CouponController) DeleteCoupon(c *gin.Context) {
	id := c.Param("id")

	if err := ctrl.couponService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "delete coupon", logger.Fields{"coupon_id": id})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Coupon deleted successfully",
	})
}

// BulkDeleteCoupons POST /api/v1/coupons/bulk-delete
func (ctrl *CouponController) BulkDeleteCoupons(c *gin.Context) {
	ids, ok := bindBulkIDs(c, "bulk delete coupons")
	if !ok {
		return
	}

	result, err := ctrl.couponService.BulkDelete(c.Request.Context(), ids)
	if err != nil {
		respondError(c, err, "bulk delete coupons", logger.Fields{"count": len(ids)})
		return
	}

	respondBulk(c, result, "delete", "coupons")
}
