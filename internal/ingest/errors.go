// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

package ingest

import (
	"errors"
	"fmt"
)

// Extraction and parsing failures. Callers classify them with errors.Is.
var (
	// ErrArchiveEntryNotFound means the archive has no viewing activity file.
	ErrArchiveEntryNotFound = errors.New("viewing activity file not found in archive")

	// ErrArchiveEntryTooLarge means the viewing activity entry exceeds the
	// configured uncompressed size limit.
	ErrArchiveEntryTooLarge = errors.New("archive entry exceeds size limit")

	// ErrInvalidArchive means the upload claimed to be a zip but could not be opened.
	ErrInvalidArchive = errors.New("invalid zip archive")

	// ErrInvalidCSVHeaders means the first line is missing expected column names.
	ErrInvalidCSVHeaders = errors.New("file is not a viewing activity export")

	ErrUnparseableDate     = errors.New("unparseable start time")
	ErrMalformedDuration   = errors.New("malformed duration")
	ErrUnexpectedDataShape = errors.New("unexpected data shape")

	// ErrNoValidData means no rows were left after trailers were dropped.
	ErrNoValidData = errors.New("no valid viewing activity found")
)

// RowError locates a parse failure. Row is 1-based and counts the header line,
// so it matches the line number shown by a spreadsheet.
type RowError struct {
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *RowError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("row %d: %v", e.Row, e.Err)
	}
	return fmt.Sprintf("row %d: %s %q: %v", e.Row, e.Column, e.Value, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}
