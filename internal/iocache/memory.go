package iocache

import (
	"context"
	"sync"
	"time"

	"github.com/diversityworkbench/divservice/pkg/cache"
)

type entry struct {
	value  []byte
	expiry time.Time
}

// Memory is an in-process cache with expiry-on-read. There is no
// background eviction: entries linger until read after their expiry,
// which is fine for the handful of (server, user) scopes a service
// instance sees.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// NewMemory creates an empty memory cache.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// NewMemoryWithClock creates a memory cache with an injected clock.
func NewMemoryWithClock(now func() time.Time) *Memory {
	m := NewMemory()
	m.now = now
	return m
}

// Get returns the stored value, or nil when absent or expired. Expired
// entries are removed on read.
func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if !m.now().Before(e.expiry) {
		m.mu.Lock()
		// Re-check under the write lock; a fresh value may have been
		// added by a concurrent writer in the meantime.
		if cur, ok := m.entries[key]; ok && !m.now().Before(cur.expiry) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		return nil, nil
	}
	return e.value, nil
}

// Add stores a value until the expiry instant, replacing any previous
// entry for the key.
func (m *Memory) Add(_ context.Context, key string, value []byte, expiry time.Time) error {
	m.mu.Lock()
	m.entries[key] = entry{value: value, expiry: expiry}
	m.mu.Unlock()
	return nil
}

// Close is a no-op for the memory backend.
func (m *Memory) Close() error { return nil }

var _ cache.Cache = (*Memory)(nil)
