package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/catalog-admin/internal/app/form"
	"github.com/ikkim/catalog-admin/internal/app/service"
	"github.com/ikkim/catalog-admin/internal/middleware"
	"github.com/ikkim/catalog-admin/pkg/logger"
)

type VariantController struct {
	variantService service.VariantService
}

func NewVariantController(variantService service.VariantService) *VariantController {
	return &VariantController{variantService: variantService}
}

// ListVariants GET /api/v1/variants
func (ctrl *VariantController) ListVariants(c *gin.Context) {
	q := listQuery(c, "isActive")

	page, err := ctrl.variantService.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, err, "list variants", nil)
		return
	}

	respondList(c, "variants", page)
}

// ListActiveVariants returns every variant that may be attached to a product
// GET /api/v1/variants/active
func (ctrl *VariantController) ListActiveVariants(c *gin.Context) {
	variants, err := ctrl.variantService.Catalog(c.Request.Context())
	if err != nil {
		respondError(c, err, "list active variants", nil)
		return
	}

	active := variants.Active()
	c.JSON(http.StatusOK, gin.H{
		"variants": active,
		"count":    len(active),
	})
}

// GetVariant GET /api/v1/variants/:id
func (ctrl *VariantController) GetVariant(c *gin.Context) {
	id := c.Param("id")

	variant, err := ctrl.variantService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "get variant", logger.Fields{"variant_id": id})
		return
	}

	c.JSON(http.StatusOK, gin.H{"variant": variant})
}

// CreateVariant POST /api/v1/variants
func (ctrl *VariantController) CreateVariant(c *gin.Context) {
	var f form.VariantForm
	if !bindJSON(c, &f, "create variant") {
		return
	}

	variant, err := ctrl.variantService.Create(c.Request.Context(), f)
	if err != nil {
		respondError(c, err, "create variant", logger.Fields{"name": f.Name})
		return
	}

	middleware.GetLoggerFromContext(c).Info("Variant created successfully", logger.Fields{
		"variant_id": variant.ID,
		"options":    len(variant.Options),
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Variant created successfully",
		"variant": variant,
	})
}

// UpdateVariant PUT /api/v1/variants/:id
func (ctrl *VariantController) UpdateVariant(c *gin.Context) {
	id := c.Param("id")

	var f form.VariantForm
	if !bindJSON(c, &f, "update variant") {
		return
	}

	variant, err := ctrl.variantService.Update(c.Request.Context(), id, f)
	if err != nil {
		respondError(c, err, "update variant", logger.Fields{"variant_id": id})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Variant updated successfully",
		"variant": variant,
	})
}

// DeleteVariant DELETE /api/v1/variants/:id
// Refused with 409 while a product still uses the variant.
func (ctrl *VariantController) DeleteVariant(c *gin.Context) {
	id := c.Param("id")

	if err := ctrl.variantService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "delete variant", logger.Fields{"variant_id": id})
		return
	}

	middleware.GetLoggerFromContext(c).Info("Variant deleted successfully", logger.Fields{
		"variant_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Variant deleted successfully",
	})
}
