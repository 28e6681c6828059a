package service

import (
	"context"
	"fmt"

	"github.com/ikkim/catalog-admin/internal/app/form"
	"github.com/ikkim/catalog-admin/internal/app/model"
	"github.com/ikkim/catalog-admin/internal/cache"
	"github.com/ikkim/catalog-admin/internal/catalog"
	"github.com/ikkim/catalog-admin/pkg/backend"
	"github.com/ikkim/catalog-admin/pkg/logger"
)

// DefaultLabel names the single SKU of a product without variants
const DefaultLabel = "Default"

// InventoryRow is one SKU of one product on the inventory screen
type InventoryRow struct {
	ProductID      string              `json:"productId"`
	Title          string              `json:"title"`
	SKUID          string              `json:"skuId"`
	SKUCode        string              `json:"skuCode"`
	Label          string              `json:"label"`
	Stock          int                 `json:"stock"`
	Threshold      int                 `json:"lowStockThreshold"`
	Status         catalog.StockStatus `json:"status"`
	AllowPreOrder  bool                `json:"allowPreOrder"`
	PreOrderStock  int                 `json:"preOrderStock"`
	TrackInventory bool                `json:"trackInventory"`
}

// AdjustResult reports a stock write
type AdjustResult struct {
	Row      InventoryRow             `json:"row"`
	Previous int                      `json:"previous"`
	Current  int                      `json:"current"`
	Reason   catalog.AdjustmentReason `json:"reason"`
}

type InventoryService interface {
	// List flattens products into SKU rows. status narrows to one stock status when set.
	List(ctx context.Context, q model.ListQuery, status catalog.StockStatus) (model.Page[InventoryRow], error)
	// Adjust applies a relative adjustment to the SKU's current backend stock
	Adjust(ctx context.Context, productID, skuID string, adj catalog.Adjustment) (*AdjustResult, error)
	// LowStock returns every tracked SKU at or below its threshold
	LowStock(ctx context.Context) ([]InventoryRow, error)
}

type inventoryService struct {
	products ProductBackend
	variants VariantService
	cache    *cache.Service
}

func NewInventoryService(products ProductBackend, variants VariantService, c *cache.Service) InventoryService {
	return &inventoryService{products: products, variants: variants, cache: c}
}

// rows loads every product matching search and flattens them
func (s *inventoryService) rows(ctx context.Context, search string) ([]InventoryRow, error) {
	q := model.ListQuery{Search: search}.Normalize()
	return cache.Fetch(ctx, s.cache, cache.ListKey(cache.Inventory, "search="+q.Search),
		func(ctx context.Context) ([]InventoryRow, error) {
			products, err := fetchAll(ctx, q, s.products.ListProducts)
			if err != nil {
				return nil, err
			}
			variants, err := s.variants.Catalog(ctx)
			if err != nil {
				return nil, err
			}
			rows := []InventoryRow{}
			for i := range products {
				rows = append(rows, productRows(&products[i], variants)...)
			}
			return rows, nil
		})
}

func productRows(p *model.Product, variants *catalog.VariantCatalog) []InventoryRow {
	rows := make([]InventoryRow, 0, len(p.SKUs))
	for _, sku := range p.SKUs {
		rows = append(rows, newInventoryRow(p, sku, variants))
	}
	return rows
}

func newInventoryRow(p *model.Product, sku model.SKU, variants *catalog.VariantCatalog) InventoryRow {
	label := DefaultLabel
	if p.HasVariants() {
		label = variants.Label(p.VariantIDs(), sku.Attributes)
	}
	return InventoryRow{
		ProductID:      p.ID,
		Title:          p.Title,
		SKUID:          sku.ID,
		SKUCode:        sku.SKUCode,
		Label:          label,
		Stock:          sku.Stock,
		Threshold:      sku.LowStockThreshold,
		Status:         catalog.StockStatusFor(sku.Stock, sku.LowStockThreshold),
		AllowPreOrder:  sku.AllowPreOrder,
		PreOrderStock:  sku.PreOrderStock,
		TrackInventory: p.TrackInventory,
	}
}

func (s *inventoryService) List(ctx context.Context, q model.ListQuery, status catalog.StockStatus) (model.Page[InventoryRow], error) {
	q = q.Normalize()
	if status != "" && !status.Valid() {
		return model.Page[InventoryRow]{}, form.FieldErrors{"status": "Unknown stock status"}.Err()
	}

	rows, err := s.rows(ctx, q.Search)
	if err != nil {
		logger.FromContext(ctx).Error("Failed to build inventory", err)
		return model.Page[InventoryRow]{}, err
	}

	if status != "" {
		filtered := make([]InventoryRow, 0, len(rows))
		for _, r := range rows {
			if r.Status == status {
				filtered = append(filtered, r)
			}
		}
		rows = filtered
	}
	return paginate(rows, q), nil
}

func (s *inventoryService) Adjust(ctx context.Context, productID, skuID string, adj catalog.Adjustment) (*AdjustResult, error) {
	log := logger.FromContext(ctx)

	if err := form.ValidateAdjustment(adj).Err(); err != nil {
		return nil, err
	}

	// read past the cache so the adjustment applies to the stock the backend holds now
	p, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, notFound(err, ErrProductNotFound)
	}
	sku, ok := p.SKU(skuID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSKUNotFound, skuID)
	}

	previous := sku.Stock
	next, err := adj.Apply(previous)
	if err != nil {
		return nil, err
	}

	updated, err := s.products.UpdateStock(ctx, productID, skuID, backend.StockUpdate{
		Stock:  next,
		Reason: string(adj.Reason),
		Note:   adj.Note,
	})
	if err != nil {
		log.Error("Failed to update stock", err, logger.Fields{
			"product_id": productID,
			"sku_id":     skuID,
		})
		return nil, notFound(err, ErrProductNotFound)
	}
	s.cache.Invalidate(ctx, cache.Inventory, productID)

	variants, err := s.variants.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	current := next
	if fresh, ok := updated.SKU(skuID); ok {
		current = fresh.Stock
		sku = fresh
	} else {
		sku.Stock = next
	}

	log.Info("Stock adjusted", logger.Fields{
		"product_id": productID,
		"sku_id":     skuID,
		"direction":  string(adj.Direction),
		"amount":     adj.Amount,
		"delta":      adj.Delta(),
		"previous":   previous,
		"current":    current,
		"reason":     string(adj.Reason),
	})
	return &AdjustResult{
		Row:      newInventoryRow(updated, *sku, variants),
		Previous: previous,
		Current:  current,
		Reason:   adj.Reason,
	}, nil
}

func (s *inventoryService) LowStock(ctx context.Context) ([]InventoryRow, error) {
	rows, err := s.rows(ctx, "")
	if err != nil {
		return nil, err
	}
	low := []InventoryRow{}
	for _, r := range rows {
		if r.TrackInventory && (r.Status == catalog.LowStock || r.Status == catalog.OutOfStock) {
			low = append(low, r)
		}
	}
	return low, nil
}
