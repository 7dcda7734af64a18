// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

package store

import (
	"context"
	"slices"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/tomtom215/viewstats/internal/cache"
	"github.com/tomtom215/viewstats/internal/models"
)

// recordsCache is the metrics label of the decoded record cache.
const recordsCache = "records"

// CachedStore keeps decoded records in memory between reads. Cache keys
// carry a generation that every write advances, so a read racing a write
// cannot repopulate the cache with records of the replaced dataset.
type CachedStore struct {
	*Store
	cache      *cache.Cache
	generation atomic.Uint64
}

// NewCached wraps s with a record cache whose entries live for ttl.
func NewCached(s *Store, ttl time.Duration) *CachedStore {
	return &CachedStore{
		Store: s,
		cache: cache.New(recordsCache, ttl, 0),
	}
}

// SaveAll replaces the dataset and drops every cached record.
func (c *CachedStore) SaveAll(ctx context.Context, ds Dataset, summary *models.ImportSummary) error {
	defer c.invalidate()
	return c.Store.SaveAll(ctx, ds, summary)
}

// DeleteAll removes every record and drops the cache.
func (c *CachedStore) DeleteAll(ctx context.Context) error {
	defer c.invalidate()
	return c.Store.DeleteAll(ctx)
}

// Activities returns the stored activity log.
func (c *CachedStore) Activities(ctx context.Context) ([]models.Activity, error) {
	out, err := cached(ctx, c.cache, c.key(KeyActivities), c.Store.Activities)
	return slices.Clone(out), err
}

// Movies returns the stored movie aggregates.
func (c *CachedStore) Movies(ctx context.Context) ([]models.EnrichedActivity, error) {
	out, err := cached(ctx, c.cache, c.key(KeyMovies), c.Store.Movies)
	return slices.Clone(out), err
}

// Series returns the stored series aggregates.
func (c *CachedStore) Series(ctx context.Context) ([]models.EnrichedActivity, error) {
	out, err := cached(ctx, c.cache, c.key(KeySeries), c.Store.Series)
	return slices.Clone(out), err
}

// Users returns the stored user list.
func (c *CachedStore) Users(ctx context.Context) ([]string, error) {
	out, err := cached(ctx, c.cache, c.key(KeyUsers), c.Store.Users)
	return slices.Clone(out), err
}

// ImportSummary returns the summary of the last import.
func (c *CachedStore) ImportSummary(ctx context.Context) (*models.ImportSummary, error) {
	out, err := cached(ctx, c.cache, c.key(KeyImportStats), c.Store.ImportSummary)
	if err != nil {
		return nil, err
	}
	summary := *out
	return &summary, nil
}

func (c *CachedStore) invalidate() {
	c.generation.Add(1)
	c.cache.Clear()
}

func (c *CachedStore) key(record string) string {
	return strconv.FormatUint(c.generation.Load(), 10) + ":" + record
}

// Close stops the cache and closes the store.
func (c *CachedStore) Close() error {
	c.cache.Close()
	return c.Store.Close()
}

// cached returns the value under key, loading and caching it on a miss.
// Errors, a missing record included, are never cached.
func cached[T any](ctx context.Context, c *cache.Cache, key string, load func(context.Context) (T, error)) (T, error) {
	if v, ok := c.Get(key); ok {
		if out, ok := v.(T); ok {
			return out, nil
		}
	}

	out, err := load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	c.Set(key, out)
	return out, nil
}
