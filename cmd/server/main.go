package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ikkim/catalog-admin/config"
	"github.com/ikkim/catalog-admin/internal/app/controller"
	"github.com/ikkim/catalog-admin/internal/app/model"
	"github.com/ikkim/catalog-admin/internal/app/service"
	"github.com/ikkim/catalog-admin/internal/cache"
	"github.com/ikkim/catalog-admin/internal/router"
	"github.com/ikkim/catalog-admin/internal/scheduler"
	"github.com/ikkim/catalog-admin/internal/storage"
	ws "github.com/ikkim/catalog-admin/internal/websocket"
	"github.com/ikkim/catalog-admin/pkg/backend"
	"github.com/ikkim/catalog-admin/pkg/logger"
	"github.com/ikkim/catalog-admin/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	logFormat := "json"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
		logFormat = "console"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      logFormat,
		EnableColor: true,
	})

	logger.Info("Starting catalog admin server", logger.Fields{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"backend":     cfg.Backend.BaseURL,
		"cache":       cfg.Cache.Driver,
		"log_level":   logLevel,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Cache
	var store cache.Store = cache.NewMemoryStore()
	if cfg.Cache.Driver == "redis" {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Fatal("Failed to initialize Redis", err)
		}
		defer func() {
			if err := redis.Close(); err != nil {
				logger.Error("Failed to close Redis connection", err)
			}
		}()
		store = cache.NewRedisStore(redis.GetClient())
	}
	cacheService := cache.NewService(store, cfg.Cache.TTL)

	// Upstream backend
	client, err := backend.NewClient(backend.Config{
		BaseURL:   cfg.Backend.BaseURL,
		Timeout:   cfg.Backend.Timeout,
		UserAgent: cfg.Backend.UserAgent,
	})
	if err != nil {
		logger.Fatal("Failed to create backend client", err)
	}

	// Initialize services
	variantService := service.NewVariantService(client, client, cacheService)
	productService := service.NewProductService(client, variantService, cacheService)
	inventoryService := service.NewInventoryService(client, variantService, cacheService)
	couponService := service.NewCouponService(client, cacheService)
	reviewService := service.NewReviewService(client, cacheService)
	taxonomyService := service.NewTaxonomyService(client, cacheService)
	searchService := service.NewSearchService(productService, variantService, couponService, taxonomyService)

	// Live updates
	hub := ws.NewHub(searchService, cfg.Live.SearchDebounce, cfg.Live.SearchLimit)
	go hub.Run(ctx)
	cacheService.OnInvalidate(hub.Invalidated)

	// Background jobs
	jobs := scheduler.New(scheduler.Config{
		LowStockSpec:   cfg.Scheduler.LowStockSpec,
		CachePurgeSpec: cfg.Scheduler.CachePurgeSpec,
		ServiceToken:   cfg.Backend.ServiceToken,
	}, inventoryService, hub, cacheService)
	if err := jobs.Start(); err != nil {
		logger.Fatal("Failed to start scheduler", err)
	}
	defer jobs.Stop()

	// Initialize controllers
	controllers := router.Controllers{
		Product:    controller.NewProductController(productService, cfg.Server.MaxUploadBytes),
		Variant:    controller.NewVariantController(variantService),
		Inventory:  controller.NewInventoryController(inventoryService),
		Coupon:     controller.NewCouponController(couponService),
		Review:     controller.NewReviewController(reviewService),
		Category:   controller.NewTaxonomyController[model.Category](taxonomyService.Categories, "category", "categories"),
		Brand:      controller.NewTaxonomyController[model.Brand](taxonomyService.Brands, "brand", "brands"),
		Collection: controller.NewTaxonomyController[model.Collection](taxonomyService.Collections, "collection", "collections"),
		Tag:        controller.NewTaxonomyController[model.Tag](taxonomyService.Tags, "tag", "tags"),
		Live:       controller.NewLiveController(hub, cfg.CORS.AllowedOrigins),
	}
	if cfg.S3.Bucket != "" {
		controllers.Upload = controller.NewUploadController(storage.NewS3Storage(ctx, cfg.S3))
	} else {
		logger.Warn("AWS_S3_BUCKET not set, presigned uploads disabled")
	}

	// Setup router
	engine := router.NewRouter(controllers, cfg).Setup()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server started successfully", logger.Fields{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	<-ctx.Done()
	logger.Info("Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", err)
	}

	logger.Info("Server stopped successfully")
}
