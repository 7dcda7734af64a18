// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered on the default registry through promauto and are
served at /metrics by promhttp.

# Available Metrics

API:
  - api_requests_total{method, endpoint, status_code}
  - api_request_duration_seconds{method, endpoint}
  - api_active_requests
  - api_rate_limit_hits_total{endpoint}

Import pipeline:
  - import_duration_seconds
  - import_stage_duration_seconds{stage}: extract, parse, aggregate, enrich, persist
  - import_rows_parsed_total, import_rows_skipped_total
  - import_errors_total{stage}
  - import_last_success_timestamp

Enrichment:
  - enrichment_lookups_total{kind, result}: kind is movie or series, result is
    matched, unmatched or error
  - tmdb_request_duration_seconds{endpoint, status_code}
  - tmdb_retries_total{endpoint}

Result store:
  - store_operation_duration_seconds{operation}
  - store_errors_total{operation}

Circuit breaker (TMDB client):
  - circuit_breaker_state{name}: 0=closed, 1=half-open, 2=open
  - circuit_breaker_requests_total{name, result}
  - circuit_breaker_consecutive_failures{name}
  - circuit_breaker_state_transitions_total{name, from_state, to_state}

System:
  - app_info{version, go_version}
  - app_uptime_seconds

Endpoint labels use chi route patterns (e.g. /api/v1/charts/{chart}) so that
cardinality stays bounded.
*/
package metrics
