package form

import (
	"strings"
	"time"

	"github.com/ikkim/catalog-admin/internal/app/model"
	"github.com/shopspring/decimal"
)

type CouponForm struct {
	Code                  string             `json:"code" binding:"required,couponcode"`
	Name                  string             `json:"name" binding:"notblank,max=100"`
	Description           string             `json:"description" binding:"max=2000"`
	DiscountType          model.DiscountType `json:"discountType" binding:"required,oneof=percentage fixed"`
	DiscountValue         decimal.Decimal    `json:"discountValue" binding:"gt=0"`
	MinimumOrderAmount    *decimal.Decimal   `json:"minimumOrderAmount" binding:"omitempty,gte=0"`
	MaximumDiscountAmount *decimal.Decimal   `json:"maximumDiscountAmount" binding:"omitempty,gte=0"`
	IsActive              bool               `json:"isActive"`
	HasExpiry             bool               `json:"hasExpiry"`
	ExpiryDate            *time.Time         `json:"expiryDate" binding:"required_if=HasExpiry true"`
	HasUsageLimit         bool               `json:"hasUsageLimit"`
	UsageLimit            *int               `json:"usageLimit" binding:"required_if=HasUsageLimit true"`
	IsFirstTimeOnly       bool               `json:"isFirstTimeOnly"`
}

// NormalizeCouponCode upper-cases and trims a coupon code
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidateCoupon checks the binding tags plus the percentage cap and the
// usage limit floor
func ValidateCoupon(f CouponForm) FieldErrors {
	return check(f)
}

// Coupon builds the backend representation. Expiry and usage limit are
// dropped when their toggles are off.
func (f CouponForm) Coupon(id string) model.Coupon {
	c := model.Coupon{
		ID:                    id,
		Code:                  NormalizeCouponCode(f.Code),
		Name:                  strings.TrimSpace(f.Name),
		Description:           strings.TrimSpace(f.Description),
		DiscountType:          f.DiscountType,
		DiscountValue:         f.DiscountValue,
		MinimumOrderAmount:    f.MinimumOrderAmount,
		MaximumDiscountAmount: f.MaximumDiscountAmount,
		IsActive:              f.IsActive,
		HasExpiry:             f.HasExpiry,
		HasUsageLimit:         f.HasUsageLimit,
		IsFirstTimeOnly:       f.IsFirstTimeOnly,
	}
	if f.HasExpiry {
		c.ExpiryDate = f.ExpiryDate
	}
	if f.HasUsageLimit {
		c.UsageLimit = f.UsageLimit
	}
	if f.DiscountType == model.DiscountFixed {
		c.MaximumDiscountAmount = nil
	}
	return c
}
