// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/viewstats/config.yaml",
	"/etc/viewstats/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            3858,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		TMDB: TMDBConfig{
			APIKey:         "",
			BaseURL:        "https://api.themoviedb.org/3",
			RequestTimeout: 10 * time.Second,
			MaxRetries:     3,
			RetryBaseDelay: time.Second,
			BreakerEnabled: true,
		},
		Enrichment: EnrichmentConfig{
			Enabled:           true,
			Throttle:          ThrottleSequential,
			BatchDelay:        100 * time.Millisecond,
			RequestsPerSecond: 10,
			Burst:             1,
			Concurrent:        true,
		},
		Storage: StorageConfig{
			Path:       "/data/viewstats",
			InMemory:   false,
			GCInterval: 10 * time.Minute,
			CacheTTL:   5 * time.Minute,
		},
		Import: ImportConfig{
			Path:           "",
			AutoStart:      false,
			Language:       "en",
			MaxUploadBytes: 32 << 20,  // 32MB
			MaxEntryBytes:  256 << 20, // 256MB
			Timeout:        15 * time.Minute,
		},
		Charts: ChartsConfig{
			DefaultLocale:  "en",
			Timezone:       "UTC",
			TopSeriesLimit: 10,
		},
		Security: SecurityConfig{
			CORSOrigins:           []string{"*"},
			RateLimitReqs:         100,
			RateLimitWindow:       time.Minute,
			RateLimitDisabled:     false,
			UploadRateLimitReqs:   5,
			UploadRateLimitWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			Caller:     false,
			File:       "",
			MaxSizeMB:  50,
			MaxBackups: 5,
			MaxAgeDays: 28,
			Compress:   true,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	envProvider := env.ProviderWithValue("", ".", envTransformWithValue)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// ConfigFilePath returns the config file LoadWithKoanf would read, or "".
func ConfigFilePath() string {
	return findConfigFile()
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		if strVal, ok := val.(string); ok {
			if strVal == "" {
				continue
			}
			parts := strings.Split(strVal, ",")
			trimmed := make([]string, 0, len(parts))
			for _, p := range parts {
				p = strings.TrimSpace(p)
				if p != "" {
					trimmed = append(trimmed, p)
				}
			}
			if len(trimmed) > 0 {
				if err := k.Set(path, trimmed); err != nil {
					return fmt.Errorf("failed to set %s: %w", path, err)
				}
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
var envMappings = map[string]string{
	// Server
	"http_host":        "server.host",
	"http_port":        "server.port",
	"http_timeout":     "server.timeout",
	"shutdown_timeout": "server.shutdown_timeout",
	"environment":      "server.environment",

	// TMDB; NEXT_TMDB_API_KEY is accepted for existing deployments
	"tmdb_api_key":          "tmdb.api_key",
	"next_tmdb_api_key":     "tmdb.api_key",
	"tmdb_base_url":         "tmdb.base_url",
	"tmdb_request_timeout":  "tmdb.request_timeout",
	"tmdb_max_retries":      "tmdb.max_retries",
	"tmdb_retry_base_delay": "tmdb.retry_base_delay",
	"tmdb_breaker_enabled":  "tmdb.breaker_enabled",

	// Enrichment
	"enrichment_enabled":             "enrichment.enabled",
	"enrichment_throttle":            "enrichment.throttle",
	"enrichment_batch_delay":         "enrichment.batch_delay",
	"enrichment_requests_per_second": "enrichment.requests_per_second",
	"enrichment_burst":               "enrichment.burst",
	"enrichment_concurrent":          "enrichment.concurrent",

	// Storage
	"storage_path":        "storage.path",
	"storage_in_memory":   "storage.in_memory",
	"storage_gc_interval": "storage.gc_interval",
	"storage_cache_ttl":   "storage.cache_ttl",

	// Import
	"import_path":             "import.path",
	"import_auto_start":       "import.auto_start",
	"import_language":         "import.language",
	"import_max_upload_bytes": "import.max_upload_bytes",
	"import_max_entry_bytes":  "import.max_entry_bytes",
	"import_timeout":          "import.timeout",

	// Charts
	"charts_default_locale":   "charts.default_locale",
	"charts_timezone":         "charts.timezone",
	"charts_top_series_limit": "charts.top_series_limit",

	// Security
	"cors_origins":               "security.cors_origins",
	"rate_limit_requests":        "security.rate_limit_requests",
	"rate_limit_window":          "security.rate_limit_window",
	"disable_rate_limit":         "security.rate_limit_disabled",
	"upload_rate_limit_requests": "security.upload_rate_limit_requests",
	"upload_rate_limit_window":   "security.upload_rate_limit_window",

	// Logging
	"log_level":        "logging.level",
	"log_format":       "logging.format",
	"log_caller":       "logging.caller",
	"log_file":         "logging.file",
	"log_max_size_mb":  "logging.max_size_mb",
	"log_max_backups":  "logging.max_backups",
	"log_max_age_days": "logging.max_age_days",
	"log_compress":     "logging.compress",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - TMDB_API_KEY -> tmdb.api_key
//   - HTTP_PORT -> server.port
//   - ENRICHMENT_THROTTLE -> enrichment.throttle
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}

	// Unmapped keys are skipped so random environment variables stay out of config
	return ""
}

// envTransformWithValue skips empty variables so that an exported but blank
// variable does not clear a value set by the config file.
func envTransformWithValue(key, value string) (string, interface{}) {
	if value == "" {
		return "", nil
	}
	return envTransformFunc(key), value
}

// WatchConfigFile calls callback whenever the config file at path changes.
// The caller is responsible for synchronising access to any state it reloads.
func WatchConfigFile(path string, callback func()) error {
	provider := file.Provider(path)

	return provider.Watch(func(event interface{}, err error) {
		if err != nil {
			return
		}
		callback()
	})
}
