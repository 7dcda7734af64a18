// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

package cache

import (
	"sync"
	"time"

	"github.com/tomtom215/viewstats/internal/metrics"
)

// DefaultCleanupInterval is how often expired entries are swept.
const DefaultCleanupInterval = 5 * time.Minute

// Entry represents a cached item with expiration
type Entry struct {
	Data      interface{}
	ExpiresAt time.Time
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Hits        int64
	Misses      int64
	Evictions   int64
	TotalKeys   int64
	LastCleanup time.Time
}

// Cache is a thread-safe in-memory cache with TTL expiry. Hits, misses and
// evictions are also exported as Prometheus metrics labelled with the cache name.
type Cache struct {
	name string
	ttl  time.Duration

	mu      sync.RWMutex
	entries map[string]Entry

	statsMu sync.RWMutex
	stats   Stats

	stop     chan struct{}
	stopOnce sync.Once
}

// New creates a cache whose entries live for ttl. A background goroutine
// removes expired entries every cleanupInterval until Close is called; a
// non-positive interval uses DefaultCleanupInterval.
//
// Example:
//
//	c := cache.New("records", 5*time.Minute, 0)
//	defer c.Close()
//	c.Set("MY_DATA", activities)
func New(name string, ttl, cleanupInterval time.Duration) *Cache {
	if cleanupInterval <= 0 {
		cleanupInterval = DefaultCleanupInterval
	}
	c := &Cache{
		name:    name,
		ttl:     ttl,
		entries: make(map[string]Entry),
		stats:   Stats{LastCleanup: time.Now()},
		stop:    make(chan struct{}),
	}

	go c.cleanupLoop(cleanupInterval)

	return c
}

// Name returns the metrics label of the cache.
func (c *Cache) Name() string {
	return c.name
}

// Get returns the value stored under key. An expired entry is removed and
// reported as a miss.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		c.recordMiss()
		return nil, false
	}

	if time.Now().After(entry.ExpiresAt) {
		evicted := 0
		c.mu.Lock()
		// Re-check under the write lock; a concurrent Set may have refreshed it.
		if current, ok := c.entries[key]; ok && time.Now().After(current.ExpiresAt) {
			delete(c.entries, key)
			evicted = 1
		}
		size := len(c.entries)
		c.mu.Unlock()
		c.recordMiss()
		c.recordEvictions(evicted, size)
		return nil, false
	}

	c.recordHit()
	return entry.Data, true
}

// Set stores a value with the default TTL.
func (c *Cache) Set(key string, value interface{}) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores a value that expires after ttl.
func (c *Cache) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = Entry{
		Data:      value,
		ExpiresAt: time.Now().Add(ttl),
	}
	size := len(c.entries)
	c.mu.Unlock()

	c.statsMu.Lock()
	c.stats.TotalKeys = int64(size)
	c.statsMu.Unlock()
	metrics.RecordCacheEvictions(c.name, 0, size)
}

// Delete removes a value from the cache.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	_, existed := c.entries[key]
	delete(c.entries, key)
	size := len(c.entries)
	c.mu.Unlock()

	if existed {
		c.recordEvictions(1, size)
	}
}

// Clear removes every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	evicted := len(c.entries)
	c.entries = make(map[string]Entry)
	c.mu.Unlock()

	c.recordEvictions(evicted, 0)
}

// Len returns the number of stored entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// GetStats returns a snapshot of the cache counters.
func (c *Cache) GetStats() Stats {
	c.statsMu.RLock()
	defer c.statsMu.RUnlock()
	return c.stats
}

// HitRate returns the cache hit rate as a percentage.
func (c *Cache) HitRate() float64 {
	stats := c.GetStats()
	total := stats.Hits + stats.Misses
	if total == 0 {
		return 0.0
	}
	return float64(stats.Hits) / float64(total) * 100.0
}

// Close stops the cleanup goroutine. It is safe to call more than once.
func (c *Cache) Close() {
	c.stopOnce.Do(func() { close(c.stop) })
}

func (c *Cache) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

func (c *Cache) cleanup() {
	now := time.Now()
	c.mu.Lock()
	evicted := 0
	for key, entry := range c.entries {
		if now.After(entry.ExpiresAt) {
			delete(c.entries, key)
			evicted++
		}
	}
	size := len(c.entries)
	c.mu.Unlock()

	c.statsMu.Lock()
	c.stats.LastCleanup = now
	c.statsMu.Unlock()
	c.recordEvictions(evicted, size)
}

func (c *Cache) recordHit() {
	c.statsMu.Lock()
	c.stats.Hits++
	c.statsMu.Unlock()
	metrics.RecordCacheLookup(c.name, true)
}

func (c *Cache) recordMiss() {
	c.statsMu.Lock()
	c.stats.Misses++
	c.statsMu.Unlock()
	metrics.RecordCacheLookup(c.name, false)
}

func (c *Cache) recordEvictions(evicted, size int) {
	c.statsMu.Lock()
	c.stats.Evictions += int64(evicted)
	c.stats.TotalKeys = int64(size)
	c.statsMu.Unlock()
	metrics.RecordCacheEvictions(c.name, evicted, size)
}
