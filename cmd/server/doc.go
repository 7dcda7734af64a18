// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

// Package main is the viewstats server.
//
// It turns a Netflix "download your personal information" export into viewing
// statistics: the export is parsed, grouped into movies and series, enriched
// with genres and artwork from TMDB and stored in an embedded Badger
// database. The HTTP API serves the resulting charts.
//
// # Startup
//
//  1. Configuration: defaults, optional config.yaml, environment (koanf v2)
//  2. Logging: zerolog, optionally teed to a rotating file
//  3. Store: Badger on STORAGE_PATH, or in memory
//  4. Metadata: TMDB client, behind a circuit breaker unless disabled
//  5. Supervisor tree: HTTP server, store GC, optional startup import
//
// # Configuration
//
// The most common settings:
//
//	TMDB_API_KEY        TMDB v4 read access token; enrichment is skipped without it
//	HTTP_PORT           listen port (default 3858)
//	STORAGE_PATH        Badger directory (default /data/viewstats)
//	IMPORT_PATH         export imported at startup when IMPORT_AUTO_START=true
//	LOG_LEVEL           trace, debug, info, warn, error
//
// Changing the log level in the config file takes effect without a restart.
//
// # Signals
//
// SIGINT and SIGTERM stop the supervisor tree. The HTTP server drains
// in-flight requests for up to SHUTDOWN_TIMEOUT before the store is closed.
package main
