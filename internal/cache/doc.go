// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

/*
Package cache provides a thread-safe in-memory cache with TTL support.

The result store keeps each record as one JSON document, so every chart
request would otherwise decode the whole activity log again. The store's
read-through wrapper keeps decoded records here and clears the cache whenever
a dataset is saved or deleted.

# Usage

	c := cache.New("records", 5*time.Minute, 0)
	defer c.Close()

	c.Set("MY_DATA", activities)
	if v, ok := c.Get("MY_DATA"); ok {
	    activities = v.([]models.Activity)
	}

# Metrics

Every cache reports cache_hits_total, cache_misses_total, cache_entries and
cache_evictions_total with its name as the cache_type label.

# Thread Safety

All methods are safe for concurrent use. Close stops the background cleanup
goroutine; the cache stays usable afterwards but expired entries are then
only removed lazily on Get.
*/
package cache
