// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

// Package logging provides centralized zerolog-based structured logging for Viewstats.
//
// Every component logs through the global logger exposed here, either directly
// (logging.Info(), logging.Warn(), ...) or with request context attached
// (logging.Ctx(ctx)). The pipeline stages, the TMDB client, the store and the
// HTTP layer all share the same field names so that a single import can be
// followed end to end by its correlation ID.
//
// # Quick Start
//
//	import "github.com/tomtom215/viewstats/internal/logging"
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logging.Info().Str("file", name).Int("rows", n).Msg("Viewing history parsed")
//	logging.Ctx(ctx).Warn().Err(err).Msg("Enrichment aborted")
//
// # Configuration
//
// Environment Variables (mapped by internal/config):
//
//	LOG_LEVEL        - trace, debug, info, warn, error (default: info)
//	LOG_FORMAT       - json, console (default: json)
//	LOG_CALLER       - include caller file:line (default: false)
//	LOG_FILE         - optional file path, rotated with lumberjack
//	LOG_MAX_SIZE_MB  - rotate after this many megabytes (default: 50)
//	LOG_MAX_BACKUPS  - rotated files to keep (default: 5)
//	LOG_MAX_AGE_DAYS - days to keep rotated files (default: 28)
//
// When a file is configured, output is written to both stderr and the file.
//
// # Log Levels
//
//	trace  - Per-row parser decisions
//	debug  - Per-title enrichment lookups and throttle waits
//	info   - Pipeline stage completion, server lifecycle (default)
//	warn   - Degraded enrichment, rejected uploads
//	error  - Storage and configuration failures
//
// # slog Adapter
//
// The supervisor tree requires an slog.Logger for its event hook:
//
//	handler := &sutureslog.Handler{Logger: logging.NewSlogLogger()}
//
// # Testing
//
//	var buf bytes.Buffer
//	logger := logging.NewTestLogger(&buf)
//	logger.Info().Msg("test message")
package logging
