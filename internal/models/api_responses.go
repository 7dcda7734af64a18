// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

package models

import (
	"time"
)

// APIResponse represents a standardized API response wrapper used by all HTTP endpoints.
//
// Status field values:
//   - "success": Request completed successfully, see Data field
//   - "error": Request failed, see Error field for details
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"days": [...], "years": [2023, 2022], "selected_year": 2023},
//	  "metadata": {"timestamp": "2026-01-02T12:00:00Z", "query_time_ms": 3}
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "INVALID_CSV_HEADERS",
//	    "message": "the file is not a Netflix viewing activity export"
//	  },
//	  "metadata": {"timestamp": "2026-01-02T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	// Count is the number of items in Data when Data is a list.
	Count *int `json:"count,omitempty"`
	// RequestID is set on failures so a report can be matched to the server log.
	RequestID string `json:"request_id,omitempty"`
}

// APIError represents an error response with structured error details.
//
// Common error codes:
//   - VALIDATION_ERROR: Invalid input parameters
//   - INVALID_CSV_HEADERS, UNPARSEABLE_DATE, UNEXPECTED_DATA_SHAPE, NO_VALID_DATA: rejected export
//   - ARCHIVE_ENTRY_NOT_FOUND: ZIP without the viewing activity file
//   - NO_DATA: nothing imported yet
//   - IMPORT_IN_PROGRESS: another import is running
//   - STORAGE_ERROR: result store failure
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthResponse is returned by the health endpoints.
type HealthResponse struct {
	Status    string            `json:"status"`
	Version   string            `json:"version"`
	Uptime    float64           `json:"uptime_seconds"`
	HasData   bool              `json:"has_data"`
	Checks    map[string]string `json:"checks,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}
