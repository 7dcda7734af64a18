// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

// Package viewingimport runs the import pipeline for a Netflix viewing export.
//
// # Pipeline
//
//	ingest.File
//	     ↓  extract   (CSV pass-through or ZIP entry)
//	     ↓  parse     (activities, trailers dropped)
//	     ↓  aggregate (movies and series, user list)
//	     ↓  enrich    (movies and series concurrently)
//	     ↓  save      (four records plus the summary, one transaction)
//	store.Store
//
// Extract, parse and save failures abort the import and nothing is written.
// Enrichment failures do not: the aggregates are saved without metadata and
// the error is recorded in the ImportSummary.
//
// # Concurrency
//
// One import runs at a time. A second call while one is running returns
// ErrImportInProgress immediately. Within an import the movie and series
// enrichment runs share one Throttle, so a token bucket limits the combined
// request rate.
//
// # Sources
//
// Uploads and startup imports use the configured metadata source (the TMDB
// client). LoadSample runs the same pipeline on the embedded sample export with
// the matching static catalogue snapshot.
package viewingimport
