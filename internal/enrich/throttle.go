// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

package enrich

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/tomtom215/viewstats/internal/config"
)

// Throttle paces the lookups of one enrichment run.
type Throttle interface {
	// Wait is called before every lookup.
	Wait(ctx context.Context) error
	// Done is called once after the last lookup.
	Done(ctx context.Context) error
}

// NewThrottle builds the throttle selected by cfg.Throttle.
func NewThrottle(cfg config.EnrichmentConfig) Throttle {
	if cfg.Throttle == config.ThrottleTokenBucket {
		return TokenBucket(cfg.RequestsPerSecond, cfg.Burst)
	}
	return Sequential(cfg.BatchDelay)
}

type sequentialThrottle struct {
	delay time.Duration
}

// Sequential issues lookups back to back and pauses for delay after the batch.
func Sequential(delay time.Duration) Throttle {
	return &sequentialThrottle{delay: delay}
}

func (s *sequentialThrottle) Wait(ctx context.Context) error {
	return ctx.Err()
}

func (s *sequentialThrottle) Done(ctx context.Context) error {
	if s.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type tokenBucketThrottle struct {
	limiter *rate.Limiter
}

// TokenBucket allows requestsPerSecond lookups with the given burst.
func TokenBucket(requestsPerSecond float64, burst int) Throttle {
	if burst < 1 {
		burst = 1
	}
	limit := rate.Limit(requestsPerSecond)
	if requestsPerSecond <= 0 {
		limit = rate.Inf
	}
	return &tokenBucketThrottle{limiter: rate.NewLimiter(limit, burst)}
}

func (t *tokenBucketThrottle) Wait(ctx context.Context) error {
	return t.limiter.Wait(ctx)
}

func (t *tokenBucketThrottle) Done(context.Context) error {
	return nil
}
