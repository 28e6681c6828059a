package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeriveCouponStatus(t *testing.T) {
	tests := []struct {
		name         string
		isActive     bool
		isExpired    bool
		limitReached bool
		want         CouponStatus
	}{
		{"inactive wins over everything", false, true, true, CouponInactive},
		{"expired", true, true, false, CouponExpired},
		{"expired wins over limit", true, true, true, CouponExpired},
		{"limit reached", true, false, true, CouponLimitReached},
		{"active", true, false, false, CouponActive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveCouponStatus(tt.isActive, tt.isExpired, tt.limitReached))
		})
	}
}

func TestCoupon_Status(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	limit := 3

	t.Run("expiry ignored without hasExpiry", func(t *testing.T) {
		c := Coupon{IsActive: true, ExpiryDate: &past}
		assert.Equal(t, CouponActive, c.Status(now))
	})

	t.Run("past expiry", func(t *testing.T) {
		c := Coupon{IsActive: true, HasExpiry: true, ExpiryDate: &past}
		assert.Equal(t, CouponExpired, c.Status(now))
	})

	t.Run("future expiry", func(t *testing.T) {
		c := Coupon{IsActive: true, HasExpiry: true, ExpiryDate: &future}
		assert.Equal(t, CouponActive, c.Status(now))
	})

	t.Run("usage limit reached", func(t *testing.T) {
		c := Coupon{IsActive: true, HasUsageLimit: true, UsageLimit: &limit, UsedCount: 3}
		assert.Equal(t, CouponLimitReached, c.Status(now))
	})

	t.Run("usage below limit", func(t *testing.T) {
		c := Coupon{IsActive: true, HasUsageLimit: true, UsageLimit: &limit, UsedCount: 2}
		assert.Equal(t, CouponActive, c.Status(now))
	})
}
