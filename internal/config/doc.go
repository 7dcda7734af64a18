// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

/*
Package config provides centralized configuration management for Viewstats.

Configuration is layered with Koanf:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file: CONFIG_PATH, ./config.yaml or /etc/viewstats/config.yaml
 3. Environment variables, which win over everything else

Empty environment variables are ignored. Unknown variables never reach the
configuration tree because envTransformFunc maps an explicit allow list.

# Sections

  - ServerConfig: HTTP listener (HTTP_HOST, HTTP_PORT, HTTP_TIMEOUT, SHUTDOWN_TIMEOUT, ENVIRONMENT)
  - TMDBConfig: metadata catalogue (TMDB_API_KEY or NEXT_TMDB_API_KEY, TMDB_BASE_URL,
    TMDB_REQUEST_TIMEOUT, TMDB_MAX_RETRIES, TMDB_RETRY_BASE_DELAY, TMDB_BREAKER_ENABLED)
  - EnrichmentConfig: lookup pacing (ENRICHMENT_THROTTLE=sequential|token_bucket,
    ENRICHMENT_BATCH_DELAY, ENRICHMENT_REQUESTS_PER_SECOND, ENRICHMENT_BURST, ENRICHMENT_CONCURRENT)
  - StorageConfig: Badger result store (STORAGE_PATH, STORAGE_IN_MEMORY, STORAGE_GC_INTERVAL, STORAGE_CACHE_TTL)
  - ImportConfig: uploads and startup import (IMPORT_PATH, IMPORT_AUTO_START, IMPORT_LANGUAGE,
    IMPORT_MAX_UPLOAD_BYTES, IMPORT_MAX_ENTRY_BYTES)
  - ChartsConfig: projection defaults (CHARTS_DEFAULT_LOCALE, CHARTS_TIMEZONE, CHARTS_TOP_SERIES_LIMIT)
  - SecurityConfig: CORS and rate limiting (CORS_ORIGINS, RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW,
    DISABLE_RATE_LIMIT, UPLOAD_RATE_LIMIT_REQUESTS, UPLOAD_RATE_LIMIT_WINDOW)
  - LoggingConfig: zerolog output and lumberjack rotation (LOG_LEVEL, LOG_FORMAT, LOG_CALLER,
    LOG_FILE, LOG_MAX_SIZE_MB, LOG_MAX_BACKUPS, LOG_MAX_AGE_DAYS, LOG_COMPRESS)

# Usage

	cfg, err := config.LoadWithKoanf()
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

Validation errors name the environment variable to fix.
*/
package config
