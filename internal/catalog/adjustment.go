package catalog

import (
	"errors"
	"fmt"
)

type Direction string

const (
	Increase Direction = "increase"
	Decrease Direction = "decrease"
)

func (d Direction) Valid() bool {
	return d == Increase || d == Decrease
}

type AdjustmentReason string

const (
	ReasonRestock    AdjustmentReason = "restock"
	ReasonSale       AdjustmentReason = "sale"
	ReasonReturn     AdjustmentReason = "return"
	ReasonDamaged    AdjustmentReason = "damaged"
	ReasonCorrection AdjustmentReason = "correction"
	ReasonOther      AdjustmentReason = "other"
)

var ErrInvalidAmount = errors.New("adjustment amount must be at least 1")

// Adjustment is a stock delta entered by an admin. Reason and Note are audit
// metadata for the backend and do not affect the computed quantity.
type Adjustment struct {
	Direction Direction        `json:"direction" binding:"required,oneof=increase decrease"`
	Amount    int              `json:"amount" binding:"min=1"`
	Reason    AdjustmentReason `json:"reason" binding:"required,oneof=restock sale return damaged correction other"`
	Note      string           `json:"note,omitempty" binding:"max=500"`
}

// Delta is the signed change the adjustment requests
func (a Adjustment) Delta() int {
	if a.Direction == Decrease {
		return -a.Amount
	}
	return a.Amount
}

// ApplyAdjustment returns the absolute stock after moving current by amount in
// direction, clamped at zero.
func ApplyAdjustment(current int, direction Direction, amount int) int {
	if direction == Decrease {
		amount = -amount
	}
	return max(0, current+amount)
}

// Apply validates the adjustment and applies it to current
func (a Adjustment) Apply(current int) (int, error) {
	if !a.Direction.Valid() {
		return current, fmt.Errorf("invalid adjustment direction %q", a.Direction)
	}
	if a.Amount < 1 {
		return current, ErrInvalidAmount
	}
	return ApplyAdjustment(current, a.Direction, a.Amount), nil
}
