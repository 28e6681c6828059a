package controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/catalog-admin/internal/app/form"
	"github.com/ikkim/catalog-admin/internal/app/service"
	"github.com/ikkim/catalog-admin/pkg/logger"
)

// TaxonomyController serves one classification entity. The four of them
// (categories, brands, collections, tags) share every route shape.
type TaxonomyController[T any] struct {
	svc    service.Taxonomy[T]
	single string // JSON key and log noun for one record, e.g. "category"
	plural string
}

func NewTaxonomyController[T any](svc service.Taxonomy[T], single, plural string) *TaxonomyController[T] {
	return &TaxonomyController[T]{svc: svc, single: single, plural: plural}
}

func (ctrl *TaxonomyController[T]) title() string {
	return strings.ToUpper(ctrl.single[:1]) + ctrl.single[1:]
}

// List GET /api/v1/<plural>
func (ctrl *TaxonomyController[T]) List(c *gin.Context) {
	q := listQuery(c, "isActive", "parent")

	page, err := ctrl.svc.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, err, "list "+ctrl.plural, nil)
		return
	}

	respondList(c, ctrl.plural, page)
}

// Get GET /api/v1/<plural>/:id
func (ctrl *TaxonomyController[T]) Get(c *gin.Context) {
	id := c.Param("id")

	item, err := ctrl.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "get "+ctrl.single, logger.Fields{"id": id})
		return
	}

	c.JSON(http.StatusOK, gin.H{ctrl.single: item})
}

// Create POST /api/v1/<plural>
func (ctrl *TaxonomyController[T]) Create(c *gin.Context) {
	var f form.TaxonomyForm
	if !bindJSON(c, &f, "create "+ctrl.single) {
		return
	}

	item, err := ctrl.svc.Create(c.Request.Context(), f)
	if err != nil {
		respondError(c, err, "create "+ctrl.single, logger.Fields{"name": f.Name})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   ctrl.title() + " created successfully",
		ctrl.single: item,
	})
}

// Update PUT /api/v1/<plural>/:id
func (ctrl *TaxonomyController[T]) Update(c *gin.Context) {
	id := c.Param("id")

	var f form.TaxonomyForm
	if !bindJSON(c, &f, "update "+ctrl.single) {
		return
	}

	item, err := ctrl.svc.Update(c.Request.Context(), id, f)
	if err != nil {
		respondError(c, err, "update "+ctrl.single, logger.Fields{"id": id})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   ctrl.title() + " updated successfully",
		ctrl.single: item,
	})
}

// Delete DELETE /api/v1/<plural>/:id
func (ctrl *TaxonomyController[T]) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := ctrl.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "delete "+ctrl.single, logger.Fields{"id": id})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": ctrl.title() + " deleted successfully",
	})
}
