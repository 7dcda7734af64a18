// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/viewstats/internal/enrich"
	viewingimport "github.com/tomtom215/viewstats/internal/import"
	"github.com/tomtom215/viewstats/internal/ingest"
	"github.com/tomtom215/viewstats/internal/store"
)

// Error codes for API responses
const (
	ErrCodeValidation           = "VALIDATION_ERROR"
	ErrCodeArchiveEntryNotFound = "ARCHIVE_ENTRY_NOT_FOUND"
	ErrCodeInvalidArchive       = "INVALID_ARCHIVE"
	ErrCodeInvalidCSVHeaders    = "INVALID_CSV_HEADERS"
	ErrCodeUnparseableDate      = "UNPARSEABLE_DATE"
	ErrCodeMalformedDuration    = "MALFORMED_DURATION"
	ErrCodeUnexpectedDataShape  = "UNEXPECTED_DATA_SHAPE"
	ErrCodeNoValidData          = "NO_VALID_DATA"
	ErrCodeEnrichmentFailed     = "ENRICHMENT_FAILED"
	ErrCodeMissingCredential    = "MISSING_CREDENTIAL"
	ErrCodeStorage              = "STORAGE_ERROR"
	ErrCodeNoData               = "NO_DATA"
	ErrCodeImportInProgress     = "IMPORT_IN_PROGRESS"
	ErrCodePayloadTooLarge      = "PAYLOAD_TOO_LARGE"
	ErrCodeTimeout              = "TIMEOUT"
	ErrCodeNotFound             = "NOT_FOUND"
	ErrCodeMethodNotAllowed     = "METHOD_NOT_ALLOWED"
	ErrCodeTooManyRequests      = "TOO_MANY_REQUESTS"
	ErrCodeInternal             = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable   = "SERVICE_UNAVAILABLE"
)

// errorMapping maps a sentinel to its HTTP status, code and client message.
type errorMapping struct {
	err     error
	status  int
	code    string
	message string
}

// errorMappings is checked in order; more specific sentinels come first.
var errorMappings = []errorMapping{
	{viewingimport.ErrImportInProgress, http.StatusConflict, ErrCodeImportInProgress,
		"another import is already running"},
	{ingest.ErrArchiveEntryNotFound, http.StatusUnprocessableEntity, ErrCodeArchiveEntryNotFound,
		"the archive does not contain " + ingest.ViewingActivityEntry},
	{ingest.ErrArchiveEntryTooLarge, http.StatusRequestEntityTooLarge, ErrCodePayloadTooLarge,
		"the viewing activity file in the archive is too large"},
	{ingest.ErrInvalidArchive, http.StatusUnprocessableEntity, ErrCodeInvalidArchive,
		"the uploaded file is not a readable ZIP archive"},
	{ingest.ErrInvalidCSVHeaders, http.StatusUnprocessableEntity, ErrCodeInvalidCSVHeaders,
		"the file is not a Netflix viewing activity export"},
	{ingest.ErrUnparseableDate, http.StatusUnprocessableEntity, ErrCodeUnparseableDate,
		"the export contains a start time that cannot be read"},
	{ingest.ErrMalformedDuration, http.StatusUnprocessableEntity, ErrCodeMalformedDuration,
		"the export contains a duration that cannot be read"},
	{ingest.ErrUnexpectedDataShape, http.StatusUnprocessableEntity, ErrCodeUnexpectedDataShape,
		"the export contains rows in an unexpected format"},
	{ingest.ErrNoValidData, http.StatusUnprocessableEntity, ErrCodeNoValidData,
		"the export contains no viewing activity"},
	{enrich.ErrMissingCredential, http.StatusServiceUnavailable, ErrCodeMissingCredential,
		"no metadata API key is configured"},
	{enrich.ErrGenreFetchFailed, http.StatusBadGateway, ErrCodeEnrichmentFailed,
		"metadata enrichment failed"},
	{store.ErrNotFound, http.StatusNotFound, ErrCodeNoData,
		"no viewing data has been imported yet"},
	{store.ErrStorage, http.StatusInternalServerError, ErrCodeStorage,
		"the data store failed"},
	{context.DeadlineExceeded, http.StatusGatewayTimeout, ErrCodeTimeout,
		"the request took too long"},
}

// classifyError maps err to a status, code and message safe to show clients.
func classifyError(err error) (int, string, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return m.status, m.code, m.message
		}
	}
	return http.StatusInternalServerError, ErrCodeInternal, "internal server error"
}

// errorDetails exposes the failing row of a rejected export.
func errorDetails(err error) map[string]interface{} {
	var rowErr *ingest.RowError
	if !errors.As(err, &rowErr) {
		return nil
	}
	details := map[string]interface{}{"row": rowErr.Row}
	if rowErr.Column != "" {
		details["column"] = rowErr.Column
		details["value"] = rowErr.Value
	}
	return details
}
