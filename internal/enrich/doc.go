// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

/*
Package enrich attaches catalogue metadata to movie and series aggregates.

An Enricher fetches the genre vocabulary once per run, then searches each title
in order. The most voted search result supplies genres, backdrop, poster and
summary. Lookups are paced by a Throttle:

  - Sequential: back to back, then a short pause after the batch (default)
  - TokenBucket: golang.org/x/time/rate limiter, configured requests per second

The MetadataSource is normally a tmdb.CircuitBreakerClient. The sample package
provides an offline source for the bundled demo data.
*/
package enrich
