// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

package config

import (
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	TMDB       TMDBConfig       `koanf:"tmdb"`
	Enrichment EnrichmentConfig `koanf:"enrichment"`
	Storage    StorageConfig    `koanf:"storage"`
	Import     ImportConfig     `koanf:"import"`
	Charts     ChartsConfig     `koanf:"charts"`
	Security   SecurityConfig   `koanf:"security"`
	Logging    LoggingConfig    `koanf:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	// Environment controls production-specific checks (development, staging, production)
	Environment string `koanf:"environment"`
}

// TMDBConfig holds the metadata catalogue connection settings.
type TMDBConfig struct {
	// APIKey is the bearer credential. Enrichment is refused when it is empty.
	APIKey         string        `koanf:"api_key"`
	BaseURL        string        `koanf:"base_url"`
	RequestTimeout time.Duration `koanf:"request_timeout"`
	MaxRetries     int           `koanf:"max_retries"`
	RetryBaseDelay time.Duration `koanf:"retry_base_delay"`
	// BreakerEnabled wraps the client in a circuit breaker.
	BreakerEnabled bool `koanf:"breaker_enabled"`
}

// Throttle strategies for enrichment lookups.
const (
	ThrottleSequential  = "sequential"
	ThrottleTokenBucket = "token_bucket"
)

// EnrichmentConfig controls how title lookups are paced.
type EnrichmentConfig struct {
	Enabled bool `koanf:"enabled"`
	// Throttle is "sequential" (one request at a time followed by BatchDelay)
	// or "token_bucket" (RequestsPerSecond with Burst).
	Throttle          string        `koanf:"throttle"`
	BatchDelay        time.Duration `koanf:"batch_delay"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	Burst             int           `koanf:"burst"`
	// Concurrent enriches movies and series in parallel.
	Concurrent bool `koanf:"concurrent"`
}

// StorageConfig holds the persisted result store settings.
type StorageConfig struct {
	Path     string `koanf:"path"`
	InMemory bool   `koanf:"in_memory"`
	// GCInterval is how often value log garbage collection runs. 0 disables it.
	GCInterval time.Duration `koanf:"gc_interval"`
	// CacheTTL is how long decoded records stay cached. 0 disables the cache.
	CacheTTL time.Duration `koanf:"cache_ttl"`
}

// ImportConfig holds upload and startup import settings.
type ImportConfig struct {
	// Path is an export file imported once at startup when AutoStart is set.
	Path      string `koanf:"path"`
	AutoStart bool   `koanf:"auto_start"`
	// Language is used for metadata lookups when a request does not name one.
	Language       string `koanf:"language"`
	MaxUploadBytes int64  `koanf:"max_upload_bytes"`
	MaxEntryBytes  int64  `koanf:"max_entry_bytes"`
	// Timeout bounds one import, enrichment included.
	Timeout time.Duration `koanf:"timeout"`
}

// ChartsConfig holds chart projection defaults.
type ChartsConfig struct {
	DefaultLocale  string `koanf:"default_locale"`
	Timezone       string `koanf:"timezone"`
	TopSeriesLimit int    `koanf:"top_series_limit"`
}

// SecurityConfig holds HTTP hardening settings.
type SecurityConfig struct {
	CORSOrigins           []string      `koanf:"cors_origins"`
	RateLimitReqs         int           `koanf:"rate_limit_requests"`
	RateLimitWindow       time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled     bool          `koanf:"rate_limit_disabled"`
	UploadRateLimitReqs   int           `koanf:"upload_rate_limit_requests"`
	UploadRateLimitWindow time.Duration `koanf:"upload_rate_limit_window"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level      string `koanf:"level"`
	Format     string `koanf:"format"`
	Caller     bool   `koanf:"caller"`
	File       string `koanf:"file"`
	MaxSizeMB  int    `koanf:"max_size_mb"`
	MaxBackups int    `koanf:"max_backups"`
	MaxAgeDays int    `koanf:"max_age_days"`
	Compress   bool   `koanf:"compress"`
}

// HasTMDBCredential reports whether a metadata credential is configured.
func (c *Config) HasTMDBCredential() bool {
	return c.TMDB.APIKey != ""
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
