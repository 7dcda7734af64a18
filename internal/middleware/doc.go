// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

/*
Package middleware provides HTTP middleware shared by the API router.

  - RequestID: assigns or propagates X-Request-ID and seeds the logging context
    with request_id and correlation_id
  - PrometheusMetrics: records api_requests_total, api_request_duration_seconds
    and api_active_requests, labelled by chi route pattern
  - Compression: gzip for clients sending Accept-Encoding: gzip

All three are plain http.HandlerFunc wrappers; the api package adapts them to
chi's func(http.Handler) http.Handler form.
*/
package middleware
