// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

package metrics

import (
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Import Pipeline Metrics
	ImportDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "import_duration_seconds",
			Help:    "Duration of viewing history imports in seconds",
			Buckets: []float64{0.5, 1, 5, 10, 30, 60, 120, 300, 600},
		},
	)

	ImportStageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "import_stage_duration_seconds",
			Help:    "Duration of individual import stages in seconds",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 30, 120, 600},
		},
		[]string{"stage"}, // "extract", "parse", "aggregate", "enrich", "persist"
	)

	ImportRowsParsed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "import_rows_parsed_total",
			Help: "Total number of viewing records parsed from exports",
		},
	)

	ImportRowsSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "import_rows_skipped_total",
			Help: "Total number of export rows skipped (trailers, hooks, blank rows)",
		},
	)

	ImportErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "import_errors_total",
			Help: "Total number of failed imports by stage",
		},
		[]string{"stage"},
	)

	ImportLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "import_last_success_timestamp",
			Help: "Unix timestamp of the last successful import",
		},
	)

	// Enrichment Metrics
	EnrichmentLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enrichment_lookups_total",
			Help: "Total number of title lookups by media kind and outcome",
		},
		[]string{"kind", "result"}, // result: "matched", "unmatched", "error"
	)

	TMDBRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tmdb_request_duration_seconds",
			Help:    "Duration of TMDB API requests in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"endpoint", "status_code"},
	)

	TMDBRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tmdb_retries_total",
			Help: "Total number of TMDB request retries",
		},
		[]string{"endpoint"},
	)

	// Result Store Metrics
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_operation_duration_seconds",
			Help:    "Duration of result store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	StoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_errors_total",
			Help: "Total number of result store errors",
		},
		[]string{"operation"},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Current number of cached entries",
		},
		[]string{"cache_type"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Total number of cache evictions (expiry or invalidation)",
		},
		[]string{"cache_type"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
		func() float64 { return time.Since(processStart).Seconds() },
	)
)

// processStart is when the metrics package was initialised.
var processStart = time.Now()

// RecordAppInfo publishes the running version and Go toolchain.
func RecordAppInfo(version string) {
	AppInfo.Reset()
	AppInfo.WithLabelValues(version, runtime.Version()).Set(1)
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordImport records a finished import. failedStage is empty on success.
func RecordImport(duration time.Duration, parsed, skipped int, failedStage string) {
	ImportDuration.Observe(duration.Seconds())
	ImportRowsParsed.Add(float64(parsed))
	ImportRowsSkipped.Add(float64(skipped))
	if failedStage != "" {
		ImportErrors.WithLabelValues(failedStage).Inc()
		return
	}
	ImportLastSuccess.Set(float64(time.Now().Unix()))
}

// RecordImportStage records how long one pipeline stage took.
func RecordImportStage(stage string, duration time.Duration) {
	ImportStageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordEnrichmentLookup records the outcome of one title lookup.
func RecordEnrichmentLookup(kind, result string) {
	EnrichmentLookups.WithLabelValues(kind, result).Inc()
}

// RecordTMDBRequest records a TMDB API call.
func RecordTMDBRequest(endpoint string, statusCode int, duration time.Duration) {
	TMDBRequestDuration.WithLabelValues(endpoint, strconv.Itoa(statusCode)).Observe(duration.Seconds())
}

// RecordTMDBRetry records a retried TMDB request.
func RecordTMDBRetry(endpoint string) {
	TMDBRetries.WithLabelValues(endpoint).Inc()
}

// RecordStoreOperation records a result store operation metric
func RecordStoreOperation(operation string, duration time.Duration, err error) {
	StoreOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		StoreErrors.WithLabelValues(operation).Inc()
	}
}

// RecordCacheLookup records a cache hit or miss.
func RecordCacheLookup(cacheType string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cacheType).Inc()
		return
	}
	CacheMisses.WithLabelValues(cacheType).Inc()
}

// RecordCacheEvictions records evicted entries and the remaining size.
func RecordCacheEvictions(cacheType string, evicted, size int) {
	if evicted > 0 {
		CacheEvictions.WithLabelValues(cacheType).Add(float64(evicted))
	}
	CacheSize.WithLabelValues(cacheType).Set(float64(size))
}
