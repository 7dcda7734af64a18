// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

package main

import (
	"testing"
	"time"

	"github.com/tomtom215/viewstats/internal/config"
	"github.com/tomtom215/viewstats/internal/store"
	"github.com/tomtom215/viewstats/internal/tmdb"
)

func TestMetadataSource(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{TMDB: config.TMDBConfig{APIKey: "token", BaseURL: "http://localhost", BreakerEnabled: true}}
	if _, ok := metadataSource(cfg).(*tmdb.CircuitBreakerClient); !ok {
		t.Error("expected the circuit breaker client")
	}

	cfg.TMDB.BreakerEnabled = false
	src := metadataSource(cfg)
	if _, ok := src.(*tmdb.Client); !ok {
		t.Error("expected the plain client")
	}
	if !src.HasCredential() {
		t.Error("expected a credential")
	}
}

func TestLoggingConfig(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Logging: config.LoggingConfig{
		Level: "debug", Format: "console", File: "/var/log/viewstats.log",
		MaxSizeMB: 10, MaxBackups: 2, MaxAgeDays: 7, Compress: true,
	}}
	lc := loggingConfig(cfg)
	if lc.Level != "debug" || lc.Format != "console" || lc.File != cfg.Logging.File || !lc.Timestamp {
		t.Errorf("loggingConfig() = %+v", lc)
	}
	if lc.MaxSizeMB != 10 || lc.MaxBackups != 2 || lc.MaxAgeDays != 7 || !lc.Compress {
		t.Errorf("rotation = %+v", lc)
	}

	if storageLabel(&config.Config{Storage: config.StorageConfig{InMemory: true}}) != "memory" {
		t.Error("expected memory label")
	}
}

func TestOpenStore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		ttl    time.Duration
		cached bool
	}{
		{"cached", time.Minute, true},
		{"uncached", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			st, err := openStore(config.StorageConfig{InMemory: true, CacheTTL: tt.ttl})
			if err != nil {
				t.Fatalf("openStore() error = %v", err)
			}
			defer st.Close()

			_, isCached := st.(*store.CachedStore)
			if isCached != tt.cached {
				t.Errorf("cached = %v, want %v", isCached, tt.cached)
			}
		})
	}
}
