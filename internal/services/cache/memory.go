package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

const defaultTTL = 30 * time.Minute

// MemoryCache is an in-process Cache bounded by entry count. When full, the
// entry closest to expiry is evicted.
type MemoryCache struct {
	mu       sync.RWMutex
	entries  map[string]entry
	capacity int
	now      func() time.Time

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64

	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

type entry struct {
	value   []byte
	expires time.Time
}

// NewMemoryCache creates a cache holding at most capacity entries
// (unbounded when capacity <= 0) and starts the expiry sweeper.
func NewMemoryCache(capacity int) *MemoryCache {
	mc := &MemoryCache{
		entries:  make(map[string]entry),
		capacity: capacity,
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}

	mc.wg.Add(1)
	go mc.sweep(time.Minute)

	return mc
}

// Get returns the value stored under key if it has not expired
func (mc *MemoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	mc.mu.RLock()
	e, ok := mc.entries[key]
	mc.mu.RUnlock()

	if !ok || !mc.now().Before(e.expires) {
		mc.misses.Add(1)
		return nil, false
	}
	mc.hits.Add(1)
	return e.value, true
}

// Set stores value under key. A non-positive ttl uses the default.
func (mc *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = defaultTTL
	}

	mc.mu.Lock()
	defer mc.mu.Unlock()

	if _, exists := mc.entries[key]; !exists && mc.capacity > 0 && len(mc.entries) >= mc.capacity {
		mc.evictLocked()
	}
	mc.entries[key] = entry{value: value, expires: mc.now().Add(ttl)}
	return nil
}

// Delete removes key
func (mc *MemoryCache) Delete(_ context.Context, key string) error {
	mc.mu.Lock()
	delete(mc.entries, key)
	mc.mu.Unlock()
	return nil
}

// Clear removes every entry
func (mc *MemoryCache) Clear(_ context.Context) error {
	mc.mu.Lock()
	mc.entries = make(map[string]entry)
	mc.mu.Unlock()
	return nil
}

// Stats returns a snapshot of cache usage
func (mc *MemoryCache) Stats() Stats {
	mc.mu.RLock()
	n := len(mc.entries)
	mc.mu.RUnlock()

	return Stats{
		Hits:      mc.hits.Load(),
		Misses:    mc.misses.Load(),
		Evictions: mc.evictions.Load(),
		Entries:   n,
		Capacity:  mc.capacity,
	}
}

// Stop shuts down the sweeper. It is safe to call more than once.
func (mc *MemoryCache) Stop() {
	mc.stopOnce.Do(func() { close(mc.stopCh) })
	mc.wg.Wait()
}

func (mc *MemoryCache) sweep(interval time.Duration) {
	defer mc.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			mc.removeExpired()
		case <-mc.stopCh:
			return
		}
	}
}

func (mc *MemoryCache) removeExpired() {
	now := mc.now()
	mc.mu.Lock()
	for key, e := range mc.entries {
		if !now.Before(e.expires) {
			delete(mc.entries, key)
			mc.evictions.Add(1)
		}
	}
	mc.mu.Unlock()
}

// evictLocked drops the entry that expires first. Caller holds mu.
func (mc *MemoryCache) evictLocked() {
	var (
		victim string
		oldest time.Time
		found  bool
	)
	for key, e := range mc.entries {
		if !found || e.expires.Before(oldest) {
			victim, oldest, found = key, e.expires, true
		}
	}
	if found {
		delete(mc.entries, victim)
		mc.evictions.Add(1)
	}
}
