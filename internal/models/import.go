// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

package models

import (
	"time"
)

// Import sources.
const (
	ImportSourceUpload = "upload"
	ImportSourceFile   = "file"
	ImportSourceSample = "sample"
)

// ImportSummary describes the most recent import. It is persisted next to
// the derived records and served by GET /api/v1/import/status.
type ImportSummary struct {
	ID          string    `json:"id"`
	Source      string    `json:"source"`
	FileName    string    `json:"file_name,omitempty"`
	Language    string    `json:"language"`
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`
	DurationMS  int64     `json:"duration_ms"`

	// Parser counters
	Rows     int `json:"rows"`
	Trailers int `json:"trailers"`

	// Derived record counts
	Activities int `json:"activities"`
	Movies     int `json:"movies"`
	Series     int `json:"series"`
	Users      int `json:"users"`

	// Enrichment outcome. EnrichmentError is set when enrichment was skipped
	// or aborted; the unenriched data is still persisted.
	MoviesEnriched  int    `json:"movies_enriched"`
	SeriesEnriched  int    `json:"series_enriched"`
	LookupFailures  int    `json:"lookup_failures"`
	EnrichmentError string `json:"enrichment_error,omitempty"`
}

// DataStatus reports whether a complete dataset is stored.
type DataStatus struct {
	HasData    bool           `json:"has_data"`
	LastImport *ImportSummary `json:"last_import,omitempty"`
}

// ImportStatus is served by GET /api/v1/import/status.
type ImportStatus struct {
	Running    bool           `json:"running"`
	LastImport *ImportSummary `json:"last_import,omitempty"`
}
