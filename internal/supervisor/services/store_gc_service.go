// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

package services

import (
	"context"
	"time"

	"github.com/tomtom215/viewstats/internal/logging"
)

// gcDiscardRatio is the share of stale data a value log file needs before
// badger rewrites it.
const gcDiscardRatio = 0.5

// GarbageCollector reclaims space in the store. *store.Store satisfies it.
type GarbageCollector interface {
	CollectGarbage(ctx context.Context, discardRatio float64) error
}

// StoreGCService runs value log garbage collection on a fixed interval.
// Every import rewrites the whole dataset, so stale values pile up quickly.
type StoreGCService struct {
	store    GarbageCollector
	interval time.Duration
	name     string
}

// NewStoreGCService creates the service.
func NewStoreGCService(store GarbageCollector, interval time.Duration) *StoreGCService {
	return &StoreGCService{
		store:    store,
		interval: interval,
		name:     "store-gc",
	}
}

// Serve collects garbage every interval until ctx is canceled. A failed run
// is logged and retried on the next tick.
func (s *StoreGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	logger := logging.WithComponent(s.name)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			start := time.Now()
			if err := s.store.CollectGarbage(ctx, gcDiscardRatio); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				logger.Warn().Err(err).Msg("Value log garbage collection failed")
				continue
			}
			logger.Debug().Dur("duration", time.Since(start)).Msg("Value log garbage collection done")
		}
	}
}

// String implements fmt.Stringer for suture's event log.
func (s *StoreGCService) String() string {
	return s.name
}
