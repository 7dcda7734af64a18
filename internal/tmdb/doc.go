// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

/*
Package tmdb is a small client for The Movie Database v3 API.

Only the two endpoints needed for enrichment are implemented:

	GET /genre/{movie|tv}/list?language=
	GET /search/{movie|tv}?query=&include_adult=false&language=

Requests carry the API key as a bearer token. HTTP 429 responses are retried
with exponential backoff (avast/retry-go), honoring Retry-After. Other non-2xx
responses return a *StatusError with at most 64KB of the body.

CircuitBreakerClient wraps Client with sony/gobreaker and exports the breaker
state through the circuit breaker metrics in internal/metrics.
*/
package tmdb
