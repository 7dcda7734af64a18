// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/viewstats/internal/logging"
	"github.com/tomtom215/viewstats/internal/middleware"
	"github.com/tomtom215/viewstats/internal/models"
	"github.com/tomtom215/viewstats/internal/validation"
)

// respondJSON sends a JSON response with proper headers
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("ETag", generateETag(data))

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// generateETag creates a weak ETag from data using FNV-1a hash
func generateETag(data []byte) string {
	hash := uint32(2166136261)
	for _, b := range data {
		hash ^= uint32(b)
		hash *= 16777619
	}
	return `W/"` + strconv.FormatUint(uint64(hash), 16) + `"`
}

// respondData sends a success envelope. start is when the handler began.
func respondData(w http.ResponseWriter, status int, data interface{}, start time.Time) {
	respondJSON(w, status, &models.APIResponse{
		Status: "success",
		Data:   data,
		Metadata: models.Metadata{
			Timestamp:   time.Now().UTC(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// respondList is respondData with the item count in the metadata.
func respondList(w http.ResponseWriter, data interface{}, count int, start time.Time) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   data,
		Metadata: models.Metadata{
			Timestamp:   time.Now().UTC(),
			QueryTimeMS: time.Since(start).Milliseconds(),
			Count:       &count,
		},
	})
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, code, message string, details map[string]interface{}) {
	respondErrorWithRequestID(w, status, code, message, details, "")
}

func respondErrorWithRequestID(w http.ResponseWriter, status int, code, message string, details map[string]interface{}, requestID string) {
	respondJSON(w, status, &models.APIResponse{
		Status: "error",
		Data:   nil,
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
			RequestID: requestID,
		},
		Error: &models.APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// respondFailure classifies err, logs it and sends the matching error response.
func respondFailure(w http.ResponseWriter, r *http.Request, err error) {
	status, code, message := classifyError(err)

	event := logging.Ctx(r.Context()).Warn()
	if status >= http.StatusInternalServerError {
		event = logging.Ctx(r.Context()).Error()
	}
	event.Err(err).
		Str("code", code).
		Int("status", status).
		Str("path", logging.SanitizeValue(r.URL.Path)).
		Msg("API error")

	respondErrorWithRequestID(w, status, code, message, errorDetails(err), middleware.GetRequestID(r.Context()))
}

// validateRequest validates a struct using go-playground/validator.
// Returns nil if validation passes, or a models.APIError if validation fails.
func validateRequest(v interface{}) *models.APIError {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return nil
	}

	apiErr := validationErr.ToAPIError()
	return &models.APIError{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
	}
}

// respondValidation sends a 400 for a failed validateRequest.
func respondValidation(w http.ResponseWriter, apiErr *models.APIError) {
	respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
}

// parseIntParam parses an optional integer query parameter. A missing value
// returns def; a malformed one returns ok=false.
func parseIntParam(r *http.Request, key string, def int) (value int, ok bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

// invalidParam builds the VALIDATION_ERROR for a query parameter that could
// not be parsed at all.
func invalidParam(name, value string) *models.APIError {
	return &models.APIError{
		Code:    ErrCodeValidation,
		Message: name + " is invalid",
		Details: map[string]interface{}{"field": name, "value": value},
	}
}
