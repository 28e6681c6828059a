package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/ikkim/catalog-admin/internal/app/service"
	"github.com/ikkim/catalog-admin/internal/catalog"
	"github.com/ikkim/catalog-admin/pkg/backend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInventory struct {
	service.InventoryService
	rows  []service.InventoryRow
	err   error
	token string
}

func (f *fakeInventory) LowStock(ctx context.Context) ([]service.InventoryRow, error) {
	f.token, _ = backend.TokenFromContext(ctx)
	return f.rows, f.err
}

type fakeNotifier struct {
	calls [][]service.InventoryRow
}

func (f *fakeNotifier) BroadcastLowStock(items []service.InventoryRow) {
	f.calls = append(f.calls, items)
}

type fakePurger struct {
	calls int
}

func (f *fakePurger) Purge(context.Context) (int, error) {
	f.calls++
	return 3, nil
}

func TestScheduler_ScanLowStock(t *testing.T) {
	inv := &fakeInventory{rows: []service.InventoryRow{{ProductID: "p1", SKUID: "s1", Status: catalog.LowStock}}}
	notifier := &fakeNotifier{}
	s := New(Config{ServiceToken: "svc"}, inv, notifier, nil)

	s.ScanLowStock(context.Background())

	require.Len(t, notifier.calls, 1)
	assert.Equal(t, "s1", notifier.calls[0][0].SKUID)
	assert.Equal(t, "svc", inv.token)
}

func TestScheduler_ScanLowStockError(t *testing.T) {
	inv := &fakeInventory{err: errors.New("backend down")}
	notifier := &fakeNotifier{}
	s := New(Config{}, inv, notifier, nil)

	s.ScanLowStock(context.Background())

	assert.Empty(t, notifier.calls)
	assert.Empty(t, inv.token)
}

func TestScheduler_PurgeCache(t *testing.T) {
	purger := &fakePurger{}
	s := New(Config{}, &fakeInventory{}, nil, purger)

	s.PurgeCache(context.Background())
	assert.Equal(t, 1, purger.calls)
}

func TestScheduler_StartRejectsBadSpec(t *testing.T) {
	s := New(Config{LowStockSpec: "not a spec"}, &fakeInventory{}, nil, nil)
	assert.Error(t, s.Start())
}

func TestScheduler_StartStop(t *testing.T) {
	s := New(Config{LowStockSpec: "@every 1h", CachePurgeSpec: "@every 1m"}, &fakeInventory{}, &fakeNotifier{}, &fakePurger{})
	require.NoError(t, s.Start())
	assert.Len(t, s.cron.Entries(), 2)
	s.Stop()
}
