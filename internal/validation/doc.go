// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is shared process-wide; it caches struct metadata
// and is safe for concurrent use. Besides the built-in tags it registers:
//
//   - hms: a duration string in H:MM:SS form, as found in viewing exports
//   - locale: a BCP 47 language tag, checked with golang.org/x/text/language
//   - notblank: a string that is not empty after trimming whitespace
//   - mediatype: an activity kind, movie or series
//
// Validation failures are returned as *RequestValidationError, which converts
// to the VALIDATION_ERROR API error shape:
//
//	type chartQuery struct {
//	    Year   int    `validate:"omitempty,gte=1970,lte=2100"`
//	    Locale string `validate:"omitempty,locale"`
//	}
//
//	if err := validation.ValidateStruct(&q); err != nil {
//	    apiErr := err.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
package validation
