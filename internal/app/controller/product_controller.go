package controller

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/catalog-admin/internal/app/form"
	"github.com/ikkim/catalog-admin/internal/app/service"
	"github.com/ikkim/catalog-admin/internal/catalog"
	apperrors "github.com/ikkim/catalog-admin/internal/errors"
	"github.com/ikkim/catalog-admin/internal/middleware"
	"github.com/ikkim/catalog-admin/internal/storage"
	"github.com/ikkim/catalog-admin/pkg/logger"
)

// productFormField is the multipart field holding the JSON-encoded product form
const productFormField = "product"

var productFilters = []string{"status", "category", "brand", "collection", "tag", "sort"}

type ProductController struct {
	productService service.ProductService
	maxUploadBytes int64
}

func NewProductController(productService service.ProductService, maxUploadBytes int64) *ProductController {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 10 << 20
	}
	return &ProductController{
		productService: productService,
		maxUploadBytes: maxUploadBytes,
	}
}

// ListProducts returns one page of products
// GET /api/v1/products
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	q := listQuery(c, productFilters...)

	page, err := ctrl.productService.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, err, "list products", logger.Fields{"page": q.Page})
		return
	}

	respondList(c, "products", page)
}

// GetProduct returns a product by ID
// GET /api/v1/products/:id
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	id := c.Param("id")

	product, err := ctrl.productService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "get product", logger.Fields{"product_id": id})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// GetAvailability resolves a variant selection to a SKU and its availability
// GET /api/v1/products/:id/availability?variant[<variantId>]=<optionId>&quantity=n
func (ctrl *ProductController) GetAvailability(c *gin.Context) {
	id := c.Param("id")

	quantity := 1
	if raw := c.Query("quantity"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "Quantity must be a number")
			return
		}
		quantity = n
	}

	selection := catalog.Selection{}
	for variantID, optionID := range c.QueryMap("variant") {
		if optionID != "" {
			selection[variantID] = optionID
		}
	}

	result, err := ctrl.productService.Availability(c.Request.Context(), id, selection, quantity)
	if err != nil {
		respondError(c, err, "get product availability", logger.Fields{"product_id": id})
		return
	}

	c.JSON(http.StatusOK, result)
}

// CreateProduct creates a product from a multipart form
// POST /api/v1/products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	f, uploads, cleanup, ok := ctrl.bindProductForm(c)
	if !ok {
		return
	}
	defer cleanup()

	product, err := ctrl.productService.Create(c.Request.Context(), f, uploads)
	if err != nil {
		respondError(c, err, "create product", logger.Fields{"title": f.Title})
		return
	}

	log.Info("Product created successfully", logger.Fields{
		"product_id": product.ID,
		"images":     len(uploads),
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created successfully",
		"product": product,
	})
}

// UpdateProduct replaces a product from a multipart form
// PUT /api/v1/products/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	f, uploads, cleanup, ok := ctrl.bindProductForm(c)
	if !ok {
		return
	}
	defer cleanup()

	product, err := ctrl.productService.Update(c.Request.Context(), id, f, uploads)
	if err != nil {
		respondError(c, err, "update product", logger.Fields{"product_id": id})
		return
	}

	log.Info("Product updated successfully", logger.Fields{
		"product_id": product.ID,
		"images":     len(uploads),
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Product updated successfully",
		"product": product,
	})
}

// DeleteProduct deletes a product
// DELETE /api/v1/products/:id
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	if err := ctrl.productService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "delete product", logger.Fields{"product_id": id})
		return
	}

	log.Info("Product deleted successfully", logger.Fields{
		"product_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Product deleted successfully",
	})
}

type previewRequest struct {
	Tab  string `json:"tab"`
	Move string `json:"move" binding:"omitempty,oneof=next back"`
	// the preview reports the form's errors instead of rejecting it
	Product form.ProductForm `json:"product" binding:"-"`
}

// PreviewProduct reports wizard navigation and validation for an unsaved form.
// move steps from tab before previewing; tab defaults to the summary.
// POST /api/v1/products/preview
func (ctrl *ProductController) PreviewProduct(c *gin.Context) {
	var req previewRequest
	if !bindJSON(c, &req, "preview product") {
		return
	}

	tab := form.TabSummary
	if req.Tab != "" {
		t, err := form.ParseTab(req.Tab)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Unknown tab")
			return
		}
		tab = t
	}
	if req.Move != "" {
		w, err := form.WizardAt(tab)
		if err != nil {
			respondError(c, err, "preview product", nil)
			return
		}
		if req.Move == "next" {
			tab, _ = w.Next()
		} else {
			tab, _ = w.Back()
		}
	}

	preview, err := ctrl.productService.Preview(c.Request.Context(), req.Product, tab)
	if err != nil {
		respondError(c, err, "preview product", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"preview": preview,
	})
}

// GetSKUCombinations lists the option combinations of the given variants
// GET /api/v1/products/sku-combinations?variants=a,b
func (ctrl *ProductController) GetSKUCombinations(c *gin.Context) {
	var variantIDs []string
	for _, id := range strings.Split(c.Query("variants"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			variantIDs = append(variantIDs, id)
		}
	}

	combos, err := ctrl.productService.SKUCombinations(c.Request.Context(), variantIDs)
	if err != nil {
		respondError(c, err, "list sku combinations", logger.Fields{"variants": variantIDs})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"combinations": combos,
		"count":        len(combos),
	})
}

// bindProductForm reads the JSON form and the image files of a product
// mutation. cleanup releases the multipart temp files and must always run.
func (ctrl *ProductController) bindProductForm(c *gin.Context) (form.ProductForm, []form.Upload, func(), bool) {
	log := middleware.GetLoggerFromContext(c)
	var f form.ProductForm
	noop := func() {}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, ctrl.maxUploadBytes)
	if err := c.Request.ParseMultipartForm(ctrl.maxUploadBytes); err != nil {
		log.Warn("Invalid multipart product form", logger.Fields{"error": err.Error()})
		apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "Product form must be multipart/form-data")
		return f, nil, noop, false
	}
	mf := c.Request.MultipartForm
	cleanup := func() {
		if err := mf.RemoveAll(); err != nil {
			log.Warn("Failed to remove multipart temp files", logger.Fields{"error": err.Error()})
		}
	}

	raw := c.Request.PostFormValue(productFormField)
	if raw == "" {
		cleanup()
		apperrors.RespondWithValidationError(c, map[string]string{productFormField: "Product data is required"})
		return f, nil, noop, false
	}
	if err := json.Unmarshal([]byte(raw), &f); err != nil {
		cleanup()
		log.Warn("Invalid product JSON", logger.Fields{"error": err.Error()})
		apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "Product data is not valid JSON")
		return f, nil, noop, false
	}

	headers := mf.File[form.ImageField]
	uploads := make([]form.Upload, 0, len(headers))
	for _, fh := range headers {
		contentType := fh.Header.Get("Content-Type")
		if err := storage.ValidateContentType(contentType, storage.AllowedImageTypes); err != nil {
			cleanup()
			apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "Only image files are allowed (JPEG, PNG, GIF, WEBP)")
			return f, nil, noop, false
		}
		if err := storage.ValidateFileSize(fh.Size, ctrl.maxUploadBytes); err != nil {
			cleanup()
			apperrors.BadRequest(c, apperrors.UploadFileTooLarge, err.Error())
			return f, nil, noop, false
		}
		uploads = append(uploads, newUpload(fh))
	}

	return f, uploads, cleanup, true
}

func newUpload(fh *multipart.FileHeader) form.Upload {
	return form.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}
