// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

package tmdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/viewstats/internal/config"
	"github.com/tomtom215/viewstats/internal/logging"
	"github.com/tomtom215/viewstats/internal/metrics"
	"github.com/tomtom215/viewstats/internal/models"
)

// BreakerName labels the TMDB circuit breaker in metrics.
const BreakerName = "tmdb-api"

// CircuitBreakerClient wraps Client with a circuit breaker so that an
// unavailable API fails lookups immediately instead of timing out per title.
//
// The breaker uses real time for its interval and timeout. Tests exercise the
// wrapped client directly or trip the breaker with failing responses.
type CircuitBreakerClient struct {
	client *Client
	cb     *gobreaker.CircuitBreaker[interface{}]
	name   string
}

// NewCircuitBreakerClient creates a TMDB client with circuit breaker.
// Circuit breaker configuration:
// - Max 1 request in half-open state (lookups are sequential)
// - 1 minute measurement window
// - 30 second timeout before attempting recovery
// - Opens after 5 consecutive failures
func NewCircuitBreakerClient(cfg *config.TMDBConfig) *CircuitBreakerClient {
	client := NewClient(cfg)
	cbName := BreakerName

	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0) // 0 = closed
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cbName).Set(0)

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			shouldTrip := counts.ConsecutiveFailures >= 5
			if shouldTrip {
				logging.Warn().Uint32("consecutive_failures", counts.ConsecutiveFailures).Msg("[CIRCUIT BREAKER] Opening TMDB circuit")
			}
			return shouldTrip
		},

		// Client side problems and cancellations say nothing about API health.
		IsSuccessful: func(err error) bool {
			if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, ErrMissingCredential) {
				return true
			}
			var statusErr *StatusError
			if errors.As(err, &statusErr) {
				return statusErr.StatusCode < 500
			}
			return false
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()

			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return &CircuitBreakerClient{
		client: client,
		cb:     cb,
		name:   cbName,
	}
}

// execute runs fn under the breaker and records the outcome.
func (cbc *CircuitBreakerClient) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := cbc.cb.Execute(fn)

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "rejected").Inc()
			logging.Debug().Err(err).Msg("[CIRCUIT BREAKER] Request rejected")
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "failure").Inc()
			counts := cbc.cb.Counts()
			metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cbc.name).Set(float64(counts.ConsecutiveFailures))
		}
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cbc.name).Set(0)
	return result, nil
}

// castResult type-asserts a breaker result.
func castResult[T any](result interface{}, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

// State returns the breaker state ("closed", "half-open" or "open").
func (cbc *CircuitBreakerClient) State() string {
	return stateToString(cbc.cb.State())
}

// HasCredential reports whether an API key is configured.
func (cbc *CircuitBreakerClient) HasCredential() bool {
	return cbc.client.HasCredential()
}

// GenreList fetches the genre vocabulary with circuit breaker protection.
func (cbc *CircuitBreakerClient) GenreList(ctx context.Context, media models.MediaType, lang string) ([]models.GenreListItem, error) {
	return castResult[[]models.GenreListItem](cbc.execute(func() (interface{}, error) {
		return cbc.client.GenreList(ctx, media, lang)
	}))
}

// Search looks up a title with circuit breaker protection.
func (cbc *CircuitBreakerClient) Search(ctx context.Context, media models.MediaType, query, lang string) ([]models.SearchResult, error) {
	return castResult[[]models.SearchResult](cbc.execute(func() (interface{}, error) {
		return cbc.client.Search(ctx, media, query, lang)
	}))
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
