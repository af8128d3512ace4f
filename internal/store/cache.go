// Package store holds the result caches and the net worth snapshot
// repositories.
package store

import (
	"context"
	"sync"
	"time"
)

// Cache stores serialized calculator results by key.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string) error
}

// NopCache never stores anything.
type NopCache struct{}

func (NopCache) Get(context.Context, string) (string, bool) { return "", false }

func (NopCache) Set(context.Context, string, string) error { return nil }

type cacheEntry struct {
	value   string
	expires time.Time
}

func (e cacheEntry) expired(now time.Time) bool {
	return !e.expires.IsZero() && !now.Before(e.expires)
}

// DefaultMaxEntries caps a MemoryCache built without WithMaxEntries.
const DefaultMaxEntries = 10000

// MemoryCacheOption configures a MemoryCache.
type MemoryCacheOption func(*MemoryCache)

// WithClock sets the time source used for expiry.
func WithClock(now Clock) MemoryCacheOption {
	return func(m *MemoryCache) {
		if now != nil {
			m.now = now
		}
	}
}

// WithMaxEntries caps the number of stored entries. Zero or less means no cap.
func WithMaxEntries(n int) MemoryCacheOption {
	return func(m *MemoryCache) { m.maxEntries = n }
}

// MemoryCache is a mutex-guarded in-process cache. Entries expire after the
// TTL; a zero TTL keeps them until they are evicted to make room.
type MemoryCache struct {
	mu         sync.RWMutex
	data       map[string]cacheEntry
	ttl        time.Duration
	maxEntries int
	now        Clock
	stop       chan struct{}
	once       sync.Once
}

// NewMemoryCache creates an empty cache.
func NewMemoryCache(ttl time.Duration, opts ...MemoryCacheOption) *MemoryCache {
	m := &MemoryCache{
		data:       make(map[string]cacheEntry),
		ttl:        ttl,
		maxEntries: DefaultMaxEntries,
		now:        time.Now,
		stop:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	m.mu.RLock()
	entry, ok := m.data[key]
	m.mu.RUnlock()
	if !ok {
		return "", false
	}
	if entry.expired(m.now()) {
		m.mu.Lock()
		if current, ok := m.data[key]; ok && current.expired(m.now()) {
			delete(m.data, key)
		}
		m.mu.Unlock()
		return "", false
	}
	return entry.value, true
}

// Set stores value under key. When the cache is full, expired entries are
// dropped first and then the entry closest to expiry is evicted.
func (m *MemoryCache) Set(_ context.Context, key, value string) error {
	now := m.now()
	entry := cacheEntry{value: value}
	if m.ttl > 0 {
		entry.expires = now.Add(m.ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.data[key]; !exists && m.maxEntries > 0 && len(m.data) >= m.maxEntries {
		m.removeExpiredLocked(now)
		for len(m.data) >= m.maxEntries {
			m.evictOldestLocked()
		}
	}
	m.data[key] = entry
	return nil
}

// Sweep drops every expired entry and returns how many were removed.
func (m *MemoryCache) Sweep() int {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.removeExpiredLocked(now)
}

func (m *MemoryCache) removeExpiredLocked(now time.Time) int {
	removed := 0
	for key, entry := range m.data {
		if entry.expired(now) {
			delete(m.data, key)
			removed++
		}
	}
	return removed
}

// evictOldestLocked removes the entry that expires first. Entries without an
// expiry all tie, so any one of them goes.
func (m *MemoryCache) evictOldestLocked() {
	var (
		victim string
		oldest time.Time
		found  bool
	)
	for key, entry := range m.data {
		if !found || entry.expires.Before(oldest) {
			victim, oldest, found = key, entry.expires, true
		}
	}
	if found {
		delete(m.data, victim)
	}
}

// StartSweeper runs Sweep every interval until Close is called.
func (m *MemoryCache) StartSweeper(interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.Sweep()
			case <-m.stop:
				return
			}
		}
	}()
}

// Close stops the sweeper. It is safe to call more than once.
func (m *MemoryCache) Close() {
	m.once.Do(func() { close(m.stop) })
}

// Len returns the number of stored entries, expired or not.
func (m *MemoryCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
