package cache

import (
	"context"
	"sync"
	"time"
)

// Store holds serialized query results
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, tags []Tag, ttl time.Duration) error
	// InvalidateTags drops every entry stored under any of tags and reports how many went
	InvalidateTags(ctx context.Context, tags ...Tag) (int, error)
	// Purge drops stale entries and reports how many went
	Purge(ctx context.Context) (int, error)
}

type memoryEntry struct {
	value     []byte
	tags      []Tag
	expiresAt time.Time
}

// MemoryStore is a process-local Store
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	tagged  map[Tag]map[string]struct{}
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		tagged:  make(map[Tag]map[string]struct{}),
		now:     time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok || !s.now().Before(e.expiresAt) {
		return nil, false, nil
	}
	return e.value, true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte, tags []Tag, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.entries[key]; ok {
		s.untag(key, old.tags)
	}
	s.entries[key] = memoryEntry{value: value, tags: tags, expiresAt: s.now().Add(ttl)}
	for _, t := range tags {
		keys, ok := s.tagged[t]
		if !ok {
			keys = make(map[string]struct{})
			s.tagged[t] = keys
		}
		keys[key] = struct{}{}
	}
	return nil
}

func (s *MemoryStore) InvalidateTags(_ context.Context, tags ...Tag) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for _, t := range tags {
		for key := range s.tagged[t] {
			if e, ok := s.entries[key]; ok {
				s.untag(key, e.tags)
				delete(s.entries, key)
				removed++
			}
		}
		delete(s.tagged, t)
	}
	return removed, nil
}

func (s *MemoryStore) Purge(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for key, e := range s.entries {
		if now.Before(e.expiresAt) {
			continue
		}
		s.untag(key, e.tags)
		delete(s.entries, key)
		removed++
	}
	return removed, nil
}

// Len reports the number of entries, stale ones included
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// untag must be called with mu held
func (s *MemoryStore) untag(key string, tags []Tag) {
	for _, t := range tags {
		keys := s.tagged[t]
		delete(keys, key)
		if len(keys) == 0 {
			delete(s.tagged, t)
		}
	}
}
