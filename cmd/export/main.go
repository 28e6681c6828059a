package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/ikkim/catalog-admin/config"
	"github.com/ikkim/catalog-admin/internal/app/service"
	"github.com/ikkim/catalog-admin/internal/cache"
	"github.com/ikkim/catalog-admin/pkg/backend"
)

func main() {
	out := flag.String("o", "inventory.xlsx", "output workbook path")
	lowOnly := flag.Bool("low", false, "export only SKUs at or below their low-stock threshold")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}
	if cfg.Backend.ServiceToken == "" {
		log.Fatal("BACKEND_SERVICE_TOKEN is required")
	}

	client, err := backend.NewClient(backend.Config{
		BaseURL:   cfg.Backend.BaseURL,
		Timeout:   cfg.Backend.Timeout,
		UserAgent: cfg.Backend.UserAgent,
	})
	if err != nil {
		log.Fatal("Failed to create backend client:", err)
	}

	// no TTL: every run reads live stock
	c := cache.NewService(cache.NewMemoryStore(), 0)
	variants := service.NewVariantService(client, client, c)
	inventory := service.NewInventoryService(client, variants, c)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	ctx = backend.WithToken(ctx, cfg.Backend.ServiceToken)

	rows, err := collectRows(ctx, inventory, *lowOnly)
	if err != nil {
		log.Fatal("Failed to load inventory:", err)
	}

	f, err := buildWorkbook(rows)
	if err != nil {
		log.Fatal("Failed to build workbook:", err)
	}
	defer f.Close()

	if err := f.SaveAs(*out); err != nil {
		log.Fatal("Failed to save workbook:", err)
	}

	log.Printf("Exported %d rows to %s", len(rows), *out)
}
