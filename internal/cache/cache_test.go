// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func newTestCache(t *testing.T, ttl time.Duration) *Cache {
	t.Helper()
	c := New("test", ttl, 0)
	t.Cleanup(c.Close)
	return c
}

func TestCacheBasicOperations(t *testing.T) {
	t.Parallel()
	c := newTestCache(t, time.Minute)

	c.Set("key1", "value1")
	value, exists := c.Get("key1")
	if !exists {
		t.Fatal("Expected key1 to exist")
	}
	if value != "value1" {
		t.Errorf("Expected value1, got %v", value)
	}

	if _, exists := c.Get("key2"); exists {
		t.Error("Expected key2 to not exist")
	}
	if c.Name() != "test" {
		t.Errorf("Name() = %q", c.Name())
	}
}

func TestCacheExpiration(t *testing.T) {
	t.Parallel()
	c := newTestCache(t, 50*time.Millisecond)

	c.Set("key1", "value1")
	if _, exists := c.Get("key1"); !exists {
		t.Fatal("Expected key1 to exist immediately after set")
	}

	time.Sleep(80 * time.Millisecond)

	if _, exists := c.Get("key1"); exists {
		t.Error("Expected key1 to be expired")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after lazy expiry", c.Len())
	}
}

func TestCacheSetWithTTLOverridesDefault(t *testing.T) {
	t.Parallel()
	c := newTestCache(t, time.Hour)

	c.SetWithTTL("short", 1, 30*time.Millisecond)
	c.Set("long", 2)
	time.Sleep(60 * time.Millisecond)

	if _, ok := c.Get("short"); ok {
		t.Error("Expected short-lived entry to be expired")
	}
	if v, ok := c.Get("long"); !ok || v != 2 {
		t.Errorf("Get(long) = %v, %v", v, ok)
	}
}

func TestCacheDeleteAndClear(t *testing.T) {
	t.Parallel()
	c := newTestCache(t, time.Minute)

	for i := 0; i < 3; i++ {
		c.Set(fmt.Sprintf("key%d", i), i)
	}
	c.Delete("key0")
	c.Delete("missing")

	if _, ok := c.Get("key0"); ok {
		t.Error("Expected key0 to be deleted")
	}
	if got := c.GetStats().Evictions; got != 1 {
		t.Errorf("Evictions after Delete = %d, want 1", got)
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d", c.Len())
	}
	stats := c.GetStats()
	if stats.Evictions != 3 || stats.TotalKeys != 0 {
		t.Errorf("stats after Clear = %+v", stats)
	}
}

func TestCacheStatsAndHitRate(t *testing.T) {
	t.Parallel()
	c := newTestCache(t, time.Minute)

	if c.HitRate() != 0 {
		t.Errorf("HitRate() with no lookups = %v", c.HitRate())
	}

	c.Set("a", 1)
	c.Get("a")
	c.Get("a")
	c.Get("a")
	c.Get("b")

	stats := c.GetStats()
	if stats.Hits != 3 || stats.Misses != 1 || stats.TotalKeys != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if got := c.HitRate(); got != 75 {
		t.Errorf("HitRate() = %v, want 75", got)
	}
}

func TestCacheCleanup(t *testing.T) {
	t.Parallel()
	c := newTestCache(t, time.Minute)

	c.SetWithTTL("expired", 1, -time.Second)
	c.Set("fresh", 2)
	before := c.GetStats().LastCleanup

	c.cleanup()

	if c.Len() != 1 {
		t.Errorf("Len() after cleanup = %d, want 1", c.Len())
	}
	stats := c.GetStats()
	if stats.Evictions != 1 {
		t.Errorf("Evictions = %d, want 1", stats.Evictions)
	}
	if !stats.LastCleanup.After(before) && !stats.LastCleanup.Equal(before) {
		t.Error("LastCleanup was not updated")
	}
}

func TestCacheCleanupLoop(t *testing.T) {
	t.Parallel()
	c := New("test", time.Minute, 10*time.Millisecond)
	defer c.Close()

	c.SetWithTTL("expired", 1, -time.Second)

	deadline := time.Now().Add(time.Second)
	for c.Len() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("cleanup loop did not remove the expired entry")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestCacheCloseTwice(t *testing.T) {
	t.Parallel()
	c := New("test", time.Minute, 0)
	c.Close()
	c.Close()

	c.Set("still", "usable")
	if _, ok := c.Get("still"); !ok {
		t.Error("Expected cache to stay usable after Close")
	}
}

func TestCacheConcurrency(t *testing.T) {
	t.Parallel()
	c := newTestCache(t, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("key%d", n%5)
			for j := 0; j < 100; j++ {
				c.Set(key, j)
				c.Get(key)
				if j%25 == 0 {
					c.Clear()
				}
			}
		}(i)
	}
	wg.Wait()

	if c.Len() > 5 {
		t.Errorf("Len() = %d, want at most 5", c.Len())
	}
}
