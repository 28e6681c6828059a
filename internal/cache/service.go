package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/ikkim/catalog-admin/pkg/logger"
	"golang.org/x/sync/singleflight"
)

const DefaultTTL = 30 * time.Second

// Listener is told which tags were dropped after every invalidation
type Listener func(ctx context.Context, tags []Tag)

// Service fronts a Store with read-through loading and entity-level invalidation.
// A nil *Service is valid and caches nothing.
type Service struct {
	store Store
	ttl   time.Duration
	group singleflight.Group

	mu        sync.RWMutex
	listeners []Listener

	// gen counts invalidations; a load that straddles one is not stored
	genMu sync.RWMutex
	gen   uint64
}

func NewService(store Store, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{store: store, ttl: ttl}
}

// TTL is how long an entry counts as fresh
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// OnInvalidate registers l to run after every invalidation
func (s *Service) OnInvalidate(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Fetch returns the cached value for key or loads, stores and returns it.
// Concurrent misses on the same key share one load. Cache failures are logged
// and never fail the read.
func Fetch[T any](ctx context.Context, s *Service, key Key, load func(context.Context) (T, error)) (T, error) {
	if s == nil {
		return load(ctx)
	}

	log := logger.FromContext(ctx)
	k := key.String()

	if raw, ok, err := s.store.Get(ctx, k); err != nil {
		log.Warn("Cache read failed", logger.Fields{"key": k, "error": err.Error()})
	} else if ok {
		var cached T
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
		log.Warn("Discarding undecodable cache entry", logger.Fields{"key": k})
	}

	gen := s.generation()
	v, err, _ := s.group.Do(fmt.Sprintf("%s#%d", k, gen), func() (interface{}, error) {
		loaded, err := load(ctx)
		if err != nil {
			return nil, err
		}
		raw, err := json.Marshal(loaded)
		if err != nil {
			log.Warn("Cache encode failed", logger.Fields{"key": k, "error": err.Error()})
			return loaded, nil
		}

		s.genMu.RLock()
		defer s.genMu.RUnlock()
		if s.gen != gen {
			log.Debug("Skipping cache write after invalidation", logger.Fields{"key": k})
			return loaded, nil
		}
		if err := s.store.Set(ctx, k, raw, key.Tags(), s.ttl); err != nil {
			log.Warn("Cache write failed", logger.Fields{"key": k, "error": err.Error()})
		}
		return loaded, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	out, _ := v.(T)
	return out, nil
}

func (s *Service) generation() uint64 {
	s.genMu.RLock()
	defer s.genMu.RUnlock()
	return s.gen
}

// Invalidate drops everything that may embed the mutated records of e and
// notifies listeners
func (s *Service) Invalidate(ctx context.Context, e Entity, ids ...string) {
	if s == nil {
		return
	}
	tags := TagsFor(e, ids...)

	s.genMu.Lock()
	s.gen++
	s.genMu.Unlock()

	removed, err := s.store.InvalidateTags(ctx, tags...)
	if err != nil {
		logger.FromContext(ctx).Error("Cache invalidation failed", err, logger.Fields{"entity": string(e)})
	} else {
		logger.FromContext(ctx).Debug("Cache invalidated", logger.Fields{
			"entity":  string(e),
			"removed": removed,
		})
	}

	s.mu.RLock()
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()

	for _, l := range listeners {
		l(ctx, tags)
	}
}

// Purge drops stale entries
func (s *Service) Purge(ctx context.Context) (int, error) {
	if s == nil {
		return 0, nil
	}
	n, err := s.store.Purge(ctx)
	if err != nil {
		return n, fmt.Errorf("failed to purge cache: %w", err)
	}
	return n, nil
}
