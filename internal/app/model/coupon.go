package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// CouponStatus is derived from a coupon's flags and is never stored
type CouponStatus string

const (
	CouponActive       CouponStatus = "active"
	CouponInactive     CouponStatus = "inactive"
	CouponExpired      CouponStatus = "expired"
	CouponLimitReached CouponStatus = "limit-reached"
)

func (s CouponStatus) Valid() bool {
	switch s {
	case CouponActive, CouponInactive, CouponExpired, CouponLimitReached:
		return true
	}
	return false
}

type Coupon struct {
	ID                    string           `json:"id"`
	Code                  string           `json:"code"`
	Name                  string           `json:"name"`
	Description           string           `json:"description,omitempty"`
	DiscountType          DiscountType     `json:"discountType"`
	DiscountValue         decimal.Decimal  `json:"discountValue"`
	MinimumOrderAmount    *decimal.Decimal `json:"minimumOrderAmount,omitempty"`
	MaximumDiscountAmount *decimal.Decimal `json:"maximumDiscountAmount,omitempty"`
	IsActive              bool             `json:"isActive"`
	HasExpiry             bool             `json:"hasExpiry"`
	ExpiryDate            *time.Time       `json:"expiryDate,omitempty"`
	HasUsageLimit         bool             `json:"hasUsageLimit"`
	UsageLimit            *int             `json:"usageLimit,omitempty"`
	UsedCount             int              `json:"usedCount"`
	IsFirstTimeOnly       bool             `json:"isFirstTimeOnly"`
	CreatedAt             time.Time        `json:"createdAt"`
}

// IsExpired reports whether the coupon carries an expiry date that lies before now
func (c *Coupon) IsExpired(now time.Time) bool {
	return c.HasExpiry && c.ExpiryDate != nil && c.ExpiryDate.Before(now)
}

func (c *Coupon) IsUsageLimitReached() bool {
	return c.HasUsageLimit && c.UsageLimit != nil && c.UsedCount >= *c.UsageLimit
}

func (c *Coupon) Status(now time.Time) CouponStatus {
	return DeriveCouponStatus(c.IsActive, c.IsExpired(now), c.IsUsageLimitReached())
}

// DeriveCouponStatus applies the precedence inactive > expired > limit-reached > active.
func DeriveCouponStatus(isActive, isExpired, usageLimitReached bool) CouponStatus {
	switch {
	case !isActive:
		return CouponInactive
	case isExpired:
		return CouponExpired
	case usageLimitReached:
		return CouponLimitReached
	default:
		return CouponActive
	}
}
