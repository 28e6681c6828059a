package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/catalog-admin/config"
	"github.com/ikkim/catalog-admin/internal/app/controller"
	"github.com/ikkim/catalog-admin/internal/app/model"
	"github.com/ikkim/catalog-admin/internal/middleware"
)

// Controllers groups every handler the router mounts
type Controllers struct {
	Product    *controller.ProductController
	Variant    *controller.VariantController
	Inventory  *controller.InventoryController
	Coupon     *controller.CouponController
	Review     *controller.ReviewController
	Category   *controller.TaxonomyController[model.Category]
	Brand      *controller.TaxonomyController[model.Brand]
	Collection *controller.TaxonomyController[model.Collection]
	Tag        *controller.TaxonomyController[model.Tag]
	Upload     *controller.UploadController
	Live       *controller.LiveController
}

type Router struct {
	controllers Controllers
	config      *config.Config
}

func NewRouter(controllers Controllers, cfg *config.Config) *Router {
	return &Router{
		controllers: controllers,
		config:      cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Catalog admin API is running",
		})
	})

	ctrl := r.controllers
	auth := middleware.NewAuthMiddleware(false)

	if ctrl.Live != nil {
		// browsers cannot set headers on the websocket handshake
		router.GET("/live", middleware.NewAuthMiddleware(true).RequireToken(), ctrl.Live.Connect)
	}

	v1 := router.Group("/api/v1")
	v1.Use(auth.RequireToken())
	{
		products := v1.Group("/products")
		{
			products.GET("", ctrl.Product.ListProducts)
			products.GET("/sku-combinations", ctrl.Product.GetSKUCombinations)
			products.POST("/preview", ctrl.Product.PreviewProduct)
			products.GET("/:id", ctrl.Product.GetProduct)
			products.GET("/:id/availability", ctrl.Product.GetAvailability)
			products.POST("", ctrl.Product.CreateProduct)
			products.PUT("/:id", ctrl.Product.UpdateProduct)
			products.DELETE("/:id", ctrl.Product.DeleteProduct)
		}

		variants := v1.Group("/variants")
		{
			variants.GET("", ctrl.Variant.ListVariants)
			variants.POST("", ctrl.Variant.CreateVariant)
			variants.GET("/active", ctrl.Variant.ListActiveVariants)
			variants.GET("/:id", ctrl.Variant.GetVariant)
			variants.PUT("/:id", ctrl.Variant.UpdateVariant)
			variants.DELETE("/:id", ctrl.Variant.DeleteVariant)
		}

		inventory := v1.Group("/inventory")
		{
			inventory.GET("", ctrl.Inventory.ListInventory)
			inventory.GET("/low-stock", ctrl.Inventory.ListLowStock)
			inventory.POST("/:productId/skus/:skuId/adjust", ctrl.Inventory.AdjustStock)
		}

		coupons := v1.Group("/coupons")
		{
			coupons.GET("", ctrl.Coupon.ListCoupons)
			coupons.POST("", ctrl.Coupon.CreateCoupon)
			coupons.POST("/bulk-delete", ctrl.Coupon.BulkDeleteCoupons)
			coupons.GET("/:id", ctrl.Coupon.GetCoupon)
			coupons.PUT("/:id", ctrl.Coupon.UpdateCoupon)
			coupons.DELETE("/:id", ctrl.Coupon.DeleteCoupon)
		}

		reviews := v1.Group("/reviews")
		{
			reviews.GET("", ctrl.Review.ListReviews)
			reviews.POST("/bulk-delete", ctrl.Review.BulkDeleteReviews)
			reviews.POST("/bulk-approve", ctrl.Review.BulkApproveReviews)
			reviews.PATCH("/:id/approve", ctrl.Review.ApproveReview)
			reviews.PATCH("/:id/reject", ctrl.Review.RejectReview)
			reviews.DELETE("/:id", ctrl.Review.DeleteReview)
		}

		mountTaxonomy(v1.Group("/categories"), ctrl.Category)
		mountTaxonomy(v1.Group("/brands"), ctrl.Brand)
		mountTaxonomy(v1.Group("/collections"), ctrl.Collection)
		mountTaxonomy(v1.Group("/tags"), ctrl.Tag)

		if ctrl.Upload != nil {
			uploads := v1.Group("/uploads")
			{
				uploads.POST("/presigned-url", ctrl.Upload.GeneratePresignedURL)
			}
		}
	}

	return router
}

func mountTaxonomy[T any](g *gin.RouterGroup, ctrl *controller.TaxonomyController[T]) {
	g.GET("", ctrl.List)
	g.POST("", ctrl.Create)
	g.GET("/:id", ctrl.Get)
	g.PUT("/:id", ctrl.Update)
	g.DELETE("/:id", ctrl.Delete)
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
