// Package scheduler runs the periodic catalog jobs.
package scheduler

import (
	"context"
	"time"

	"github.com/ikkim/catalog-admin/internal/app/service"
	"github.com/ikkim/catalog-admin/pkg/backend"
	"github.com/ikkim/catalog-admin/pkg/logger"
	"github.com/robfig/cron/v3"
)

const jobTimeout = 2 * time.Minute

// LowStockNotifier receives the result of every low-stock scan
type LowStockNotifier interface {
	BroadcastLowStock(items []service.InventoryRow)
}

// Purger drops stale cache entries
type Purger interface {
	Purge(ctx context.Context) (int, error)
}

type Config struct {
	LowStockSpec   string
	CachePurgeSpec string
	// ServiceToken is forwarded to the backend on scans
	ServiceToken string
}

// Scheduler runs the low-stock scan and the cache purge on cron schedules
type Scheduler struct {
	cron      *cron.Cron
	cfg       Config
	inventory service.InventoryService
	notifier  LowStockNotifier
	cache     Purger
}

func New(cfg Config, inventory service.InventoryService, notifier LowStockNotifier, cache Purger) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		cfg:       cfg,
		inventory: inventory,
		notifier:  notifier,
		cache:     cache,
	}
}

// Start registers the jobs and starts the cron runner. Empty specs disable a job.
func (s *Scheduler) Start() error {
	if s.cfg.LowStockSpec != "" {
		if _, err := s.cron.AddFunc(s.cfg.LowStockSpec, func() { s.ScanLowStock(context.Background()) }); err != nil {
			logger.Error("Failed to add cron job for low stock scan", err, logger.Fields{"spec": s.cfg.LowStockSpec})
			return err
		}
	}
	if s.cfg.CachePurgeSpec != "" {
		if _, err := s.cron.AddFunc(s.cfg.CachePurgeSpec, func() { s.PurgeCache(context.Background()) }); err != nil {
			logger.Error("Failed to add cron job for cache purge", err, logger.Fields{"spec": s.cfg.CachePurgeSpec})
			return err
		}
	}

	s.cron.Start()
	logger.Info("Scheduler started", logger.Fields{
		"low_stock_spec":   s.cfg.LowStockSpec,
		"cache_purge_spec": s.cfg.CachePurgeSpec,
	})
	return nil
}

// Stop waits for running jobs to finish
func (s *Scheduler) Stop() {
	logger.Info("Stopping scheduler...")
	<-s.cron.Stop().Done()
	logger.Info("Scheduler stopped")
}

// ScanLowStock finds tracked SKUs at or below their threshold and notifies
func (s *Scheduler) ScanLowStock(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()
	if s.cfg.ServiceToken != "" {
		ctx = backend.WithToken(ctx, s.cfg.ServiceToken)
	}

	logger.Info("Starting scheduled low stock scan")

	items, err := s.inventory.LowStock(ctx)
	if err != nil {
		logger.Error("Failed to scan low stock from scheduler", err)
		return
	}

	if s.notifier != nil {
		s.notifier.BroadcastLowStock(items)
	}
	logger.Info("Low stock scan finished", logger.Fields{"count": len(items)})
}

// PurgeCache drops stale cache entries
func (s *Scheduler) PurgeCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	n, err := s.cache.Purge(ctx)
	if err != nil {
		logger.Error("Failed to purge cache from scheduler", err)
		return
	}
	if n > 0 {
		logger.Debug("Cache purged", logger.Fields{"removed": n})
	}
}
