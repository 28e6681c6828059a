package catalog

import "github.com/ikkim/catalog-admin/internal/app/model"

type StockStatus string

const (
	InStock    StockStatus = "in_stock"
	LowStock   StockStatus = "low_stock"
	OutOfStock StockStatus = "out_of_stock"
	// Unresolved means the shopper has not picked a full option combination yet.
	Unresolved StockStatus = "unresolved"
)

func (s StockStatus) Valid() bool {
	switch s {
	case InStock, LowStock, OutOfStock, Unresolved:
		return true
	}
	return false
}

// Availability is the projected stock picture for a resolved SKU or a variant-less product
type Availability struct {
	Status        StockStatus `json:"status"`
	Available     int         `json:"available"`
	MaxOrderQty   int         `json:"maxOrderQty"`
	Resolved      bool        `json:"resolved"`
	PreOrderStock int         `json:"preOrderStock"`
	AllowPreOrder bool        `json:"allowPreOrder"`
}

// StockStatusFor classifies a quantity against a low-stock threshold
func StockStatusFor(stock, threshold int) StockStatus {
	switch {
	case stock <= 0:
		return OutOfStock
	case stock <= threshold:
		return LowStock
	default:
		return InStock
	}
}

// ProjectAvailability derives stock status and orderable quantity.
//
// With variants, only the resolved sku counts; a nil sku is Unresolved.
// Without variants, stock is summed over every SKU with positive stock and the
// first SKU's threshold applies. Pre-order stock never raises MaxOrderQty.
func ProjectAvailability(sku *model.SKU, allSKUs []model.SKU, hasVariants bool) Availability {
	if hasVariants {
		if sku == nil {
			return Availability{Status: Unresolved}
		}
		available := max(sku.Stock, 0)
		return Availability{
			Status:        StockStatusFor(available, sku.LowStockThreshold),
			Available:     available,
			MaxOrderQty:   available,
			Resolved:      true,
			PreOrderStock: sku.PreOrderStock,
			AllowPreOrder: sku.AllowPreOrder,
		}
	}

	total := 0
	for _, s := range allSKUs {
		if s.Stock > 0 {
			total += s.Stock
		}
	}

	a := Availability{Available: total, MaxOrderQty: total, Resolved: true}
	threshold := 0
	if sku == nil && len(allSKUs) > 0 {
		sku = &allSKUs[0]
	}
	if sku != nil {
		threshold = sku.LowStockThreshold
		a.PreOrderStock = sku.PreOrderStock
		a.AllowPreOrder = sku.AllowPreOrder
	}
	a.Status = StockStatusFor(total, threshold)
	return a
}

// CanOrder reports whether the order action should be enabled
func (a Availability) CanOrder() bool {
	return a.Resolved && a.MaxOrderQty > 0
}

// ClampQuantity bounds a requested quantity to 1..MaxOrderQty, or 0 when ordering is disabled
func (a Availability) ClampQuantity(q int) int {
	if !a.CanOrder() {
		return 0
	}
	return min(max(q, 1), a.MaxOrderQty)
}
