package repository

import (
	"context"
	"sync"

	"github.com/okian/careerlens/pkg/metrics"
)

// MemoryStore is an unbounded map guarded by a RWMutex. Entries never
// expire; only Clear evicts.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]any
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore constructs an empty store.
func NewMemoryStore(_ context.Context) *MemoryStore {
	metrics.UpdateCacheEntries(0)
	return &MemoryStore{entries: make(map[string]any)}
}

// Get implements Store.Get.
func (s *MemoryStore) Get(_ context.Context, key string) (any, bool) {
	s.mu.RLock()
	v, ok := s.entries[key]
	s.mu.RUnlock()

	if ok {
		metrics.RecordCacheHit(keyKind(key))
	} else {
		metrics.RecordCacheMiss(keyKind(key))
	}
	return v, ok
}

// Put implements Store.Put. An existing entry is replaced.
func (s *MemoryStore) Put(_ context.Context, key string, value any) {
	s.mu.Lock()
	s.entries[key] = value
	n := len(s.entries)
	s.mu.Unlock()

	metrics.UpdateCacheEntries(n)
}

// Clear implements Store.Clear.
func (s *MemoryStore) Clear(_ context.Context) {
	s.mu.Lock()
	s.entries = make(map[string]any)
	s.mu.Unlock()

	metrics.RecordCacheClear()
	metrics.UpdateCacheEntries(0)
}

// Len implements Store.Len.
func (s *MemoryStore) Len(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
