// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

package config

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateTMDB,
		c.validateEnrichment,
		c.validateStorage,
		c.validateImport,
		c.validateCharts,
		c.validateSecurity,
		c.validateLogging,
	}
	for _, validate := range validators {
		if err := validate(); err != nil {
			return err
		}
	}
	return nil
}

// validateServer validates HTTP server settings
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

// validateTMDB validates the metadata client settings.
// The API key is optional here: imports without one are rejected at enrichment time.
func (c *Config) validateTMDB() error {
	if err := validateAPIBaseURL(c.TMDB.BaseURL, "TMDB_BASE_URL"); err != nil {
		return err
	}
	if c.TMDB.RequestTimeout <= 0 {
		return fmt.Errorf("TMDB_REQUEST_TIMEOUT must be positive")
	}
	if c.TMDB.MaxRetries < 0 || c.TMDB.MaxRetries > 10 {
		return fmt.Errorf("TMDB_MAX_RETRIES must be between 0 and 10")
	}
	if c.TMDB.RetryBaseDelay < 10*time.Millisecond {
		return fmt.Errorf("TMDB_RETRY_BASE_DELAY must be at least 10ms")
	}
	if c.IsProduction() && c.TMDB.APIKey != "" && len(c.TMDB.APIKey) < 16 {
		return fmt.Errorf("TMDB_API_KEY appears invalid (too short, expected 16+ characters)")
	}
	return nil
}

var validThrottles = map[string]bool{
	ThrottleSequential:  true,
	ThrottleTokenBucket: true,
}

// validateEnrichment validates the lookup pacing settings
func (c *Config) validateEnrichment() error {
	if !validThrottles[c.Enrichment.Throttle] {
		return fmt.Errorf("ENRICHMENT_THROTTLE must be one of: sequential, token_bucket")
	}
	if c.Enrichment.BatchDelay < 0 {
		return fmt.Errorf("ENRICHMENT_BATCH_DELAY must not be negative")
	}
	if c.Enrichment.Throttle == ThrottleTokenBucket {
		if c.Enrichment.RequestsPerSecond <= 0 {
			return fmt.Errorf("ENRICHMENT_REQUESTS_PER_SECOND must be positive for token_bucket throttling")
		}
		if c.Enrichment.Burst < 1 {
			return fmt.Errorf("ENRICHMENT_BURST must be at least 1 for token_bucket throttling")
		}
	}
	return nil
}

// validateStorage validates the result store settings
func (c *Config) validateStorage() error {
	if !c.Storage.InMemory && strings.TrimSpace(c.Storage.Path) == "" {
		return fmt.Errorf("STORAGE_PATH is required unless STORAGE_IN_MEMORY=true")
	}
	if c.Storage.GCInterval < 0 {
		return fmt.Errorf("STORAGE_GC_INTERVAL must not be negative")
	}
	if c.Storage.CacheTTL < 0 {
		return fmt.Errorf("STORAGE_CACHE_TTL must not be negative")
	}
	return nil
}

// validateImport validates upload and startup import settings
func (c *Config) validateImport() error {
	if c.Import.AutoStart && c.Import.Path == "" {
		return fmt.Errorf("IMPORT_PATH is required when IMPORT_AUTO_START=true")
	}
	if c.Import.MaxUploadBytes < 1024 {
		return fmt.Errorf("IMPORT_MAX_UPLOAD_BYTES must be at least 1024")
	}
	if c.Import.MaxEntryBytes < c.Import.MaxUploadBytes {
		return fmt.Errorf("IMPORT_MAX_ENTRY_BYTES must be at least IMPORT_MAX_UPLOAD_BYTES")
	}
	if c.Import.Timeout < time.Second {
		return fmt.Errorf("IMPORT_TIMEOUT must be at least 1s")
	}
	if err := validateLanguageTag(c.Import.Language, "IMPORT_LANGUAGE"); err != nil {
		return err
	}
	return nil
}

// validateCharts validates chart projection defaults
func (c *Config) validateCharts() error {
	if err := validateLanguageTag(c.Charts.DefaultLocale, "CHARTS_DEFAULT_LOCALE"); err != nil {
		return err
	}
	if _, err := time.LoadLocation(c.Charts.Timezone); err != nil {
		return fmt.Errorf("CHARTS_TIMEZONE is invalid: %w", err)
	}
	if c.Charts.TopSeriesLimit < 1 || c.Charts.TopSeriesLimit > 100 {
		return fmt.Errorf("CHARTS_TOP_SERIES_LIMIT must be between 1 and 100")
	}
	return nil
}

func validateLanguageTag(tag, fieldName string) error {
	if tag == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	if _, err := language.Parse(tag); err != nil {
		return fmt.Errorf("%s is not a valid language tag: %w", fieldName, err)
	}
	return nil
}

// validateSecurity validates HTTP hardening settings
func (c *Config) validateSecurity() error {
	if c.IsProduction() {
		for _, origin := range c.Security.CORSOrigins {
			if origin == "*" {
				return fmt.Errorf("CORS_ORIGINS must not contain wildcard (*) in production")
			}
		}
	}
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1")
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	if c.Security.UploadRateLimitReqs < 1 {
		return fmt.Errorf("UPLOAD_RATE_LIMIT_REQUESTS must be at least 1")
	}
	if c.Security.UploadRateLimitWindow <= 0 {
		return fmt.Errorf("UPLOAD_RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}

var validLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "error": true,
}

var validLogFormats = map[string]bool{
	"json": true, "console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if !validLogFormats[strings.ToLower(c.Logging.Format)] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	if c.Logging.File != "" {
		if c.Logging.MaxSizeMB < 1 {
			return fmt.Errorf("LOG_MAX_SIZE_MB must be at least 1")
		}
		if c.Logging.MaxBackups < 0 || c.Logging.MaxAgeDays < 0 {
			return fmt.Errorf("LOG_MAX_BACKUPS and LOG_MAX_AGE_DAYS must not be negative")
		}
	}
	return nil
}
