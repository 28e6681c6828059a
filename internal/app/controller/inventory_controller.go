package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/catalog-admin/internal/app/service"
	"github.com/ikkim/catalog-admin/internal/catalog"
	"github.com/ikkim/catalog-admin/internal/middleware"
	"github.com/ikkim/catalog-admin/pkg/logger"
)

type InventoryController struct {
	inventoryService service.InventoryService
}

func NewInventoryController(inventoryService service.InventoryService) *InventoryController {
	return &InventoryController{inventoryService: inventoryService}
}

// ListInventory returns SKU stock rows
// GET /api/v1/inventory?status=low_stock
func (ctrl *InventoryController) ListInventory(c *gin.Context) {
	q := listQuery(c)
	status := catalog.StockStatus(c.Query("status"))

	page, err := ctrl.inventoryService.List(c.Request.Context(), q, status)
	if err != nil {
		respondError(c, err, "list inventory", logger.Fields{"status": string(status)})
		return
	}

	respondList(c, "inventory", page)
}

// ListLowStock returns every tracked SKU at or below its threshold
// GET /api/v1/inventory/low-stock
func (ctrl *InventoryController) ListLowStock(c *gin.Context) {
	rows, err := ctrl.inventoryService.LowStock(c.Request.Context())
	if err != nil {
		respondError(c, err, "list low stock", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"inventory": rows,
		"count":     len(rows),
	})
}

// AdjustStock applies a relative stock change to one SKU
// POST /api/v1/inventory/:productId/skus/:skuId/adjust
func (ctrl *InventoryController) AdjustStock(c *gin.Context) {
	productID := c.Param("productId")
	skuID := c.Param("skuId")

	var adj catalog.Adjustment
	if !bindJSON(c, &adj, "adjust stock") {
		return
	}

	result, err := ctrl.inventoryService.Adjust(c.Request.Context(), productID, skuID, adj)
	if err != nil {
		respondError(c, err, "adjust stock", logger.Fields{
			"product_id": productID,
			"sku_id":     skuID,
		})
		return
	}

	middleware.GetLoggerFromContext(c).Info("Stock adjusted successfully", logger.Fields{
		"product_id": productID,
		"sku_id":     skuID,
		"previous":   result.Previous,
		"current":    result.Current,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Stock updated successfully",
		"result":  result,
	})
}
