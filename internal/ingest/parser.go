// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

package ingest

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/viewstats/internal/logging"
	"github.com/tomtom215/viewstats/internal/models"
	"github.com/tomtom215/viewstats/internal/validation"
)

// Column names of the Netflix ViewingActivity.csv export.
const (
	ColumnProfileName      = "Profile Name"
	ColumnStartTime        = "Start Time"
	ColumnDuration         = "Duration"
	ColumnAttributes       = "Attributes"
	ColumnTitle            = "Title"
	ColumnSupplementalType = "Supplemental Video Type"
	ColumnDeviceType       = "Device Type"
	ColumnBookmark         = "Bookmark"
	ColumnLatestBookmark   = "Latest Bookmark"
	ColumnCountry          = "Country"
)

// ExpectedHeaders must all appear on the first line of an export. Extra
// columns are allowed.
var ExpectedHeaders = []string{
	ColumnProfileName,
	ColumnStartTime,
	ColumnDuration,
	ColumnAttributes,
	ColumnTitle,
	ColumnSupplementalType,
	ColumnDeviceType,
	ColumnBookmark,
	ColumnLatestBookmark,
	ColumnCountry,
}

// StartTimeLayout is the export's timestamp format. Values are UTC.
const StartTimeLayout = "2006-01-02 15:04:05"

// ctxCheckInterval is how many rows are parsed between cancellation checks.
const ctxCheckInterval = 1024

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseStats counts what a parse saw.
type ParseStats struct {
	// Rows is every data row read, trailers included.
	Rows     int `json:"rows"`
	Trailers int `json:"trailers"`
	Movies   int `json:"movies"`
	Series   int `json:"series"`
}

// Activities is the number of activities produced.
func (s ParseStats) Activities() int {
	return s.Movies + s.Series
}

// Parse converts export CSV text into activities in source order.
func Parse(ctx context.Context, data []byte) ([]models.Activity, error) {
	activities, _, err := ParseWithStats(ctx, data)
	return activities, err
}

// ParseWithStats is Parse and also reports row counts.
//
// The batch is all or nothing: a bad header, an unparseable start time, a
// malformed duration or an activity that fails validation returns an error
// and no activities.
func ParseWithStats(ctx context.Context, data []byte) ([]models.Activity, ParseStats, error) {
	var stats ParseStats

	data = bytes.TrimPrefix(data, utf8BOM)
	if err := checkHeader(data); err != nil {
		return nil, stats, err
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.ReuseRecord = true

	header, err := r.Read()
	if err != nil {
		return nil, stats, fmt.Errorf("%w: %v", ErrInvalidCSVHeaders, err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}
	field := func(record []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	activities := make([]models.Activity, 0, bytes.Count(data, []byte{'\n'}))
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("%w: %v", ErrUnexpectedDataShape, err)
		}
		if isBlank(record) {
			continue
		}

		stats.Rows++
		if stats.Rows%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, stats, err
			}
		}
		line, _ := r.FieldPos(0)

		if field(record, ColumnSupplementalType) != "" {
			stats.Trailers++
			continue
		}

		a, err := toActivity(line, record, field)
		if err != nil {
			return nil, stats, err
		}
		if a.Type == models.MediaTypeSeries {
			stats.Series++
		} else {
			stats.Movies++
		}
		activities = append(activities, a)
	}

	if len(activities) == 0 {
		return nil, stats, ErrNoValidData
	}

	logging.Ctx(ctx).Debug().
		Int("rows", stats.Rows).
		Int("trailers", stats.Trailers).
		Int("movies", stats.Movies).
		Int("series", stats.Series).
		Msg("Parsed viewing activity")

	return activities, stats, nil
}

func toActivity(line int, record []string, field func([]string, string) string) (models.Activity, error) {
	rawStart := field(record, ColumnStartTime)
	start, err := time.ParseInLocation(StartTimeLayout, strings.TrimSpace(rawStart), time.UTC)
	if err != nil {
		return models.Activity{}, &RowError{Row: line, Column: ColumnStartTime, Value: rawStart, Err: ErrUnparseableDate}
	}

	rawDuration := field(record, ColumnDuration)
	seconds, err := ParseDuration(rawDuration)
	if err != nil {
		return models.Activity{}, &RowError{Row: line, Column: ColumnDuration, Value: rawDuration, Err: err}
	}

	title := field(record, ColumnTitle)
	a := models.Activity{
		User:      field(record, ColumnProfileName),
		FullTitle: title,
		Type:      Classify(title),
		Date:      start,
		Duration:  seconds,
	}
	if verr := validation.ValidateStruct(&a); verr != nil {
		return models.Activity{}, &RowError{Row: line, Err: fmt.Errorf("%w: %v", ErrUnexpectedDataShape, verr)}
	}
	return a, nil
}

// ParseDuration converts "H:MM:SS" to whole seconds.
func ParseDuration(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if err := validation.GetValidator().Var(s, "required,hms"); err != nil {
		return 0, ErrMalformedDuration
	}

	parts := strings.Split(s, ":")
	var total int64
	for i, unit := range []int64{3600, 60, 1} {
		n, err := strconv.ParseInt(parts[i], 10, 64)
		if err != nil {
			return 0, ErrMalformedDuration
		}
		total += n * unit
	}
	return total, nil
}

// Classify reports whether a title is a series episode. Episode titles have
// the form "Show: Season: Episode", so two or more colons mean series.
func Classify(title string) models.MediaType {
	if strings.Count(title, ":") >= 2 {
		return models.MediaTypeSeries
	}
	return models.MediaTypeMovie
}

// checkHeader verifies the first line before any row is parsed.
func checkHeader(data []byte) error {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	line = bytes.TrimRight(line, "\r")

	have := make(map[string]bool)
	for _, name := range strings.Split(string(line), ",") {
		have[strings.Trim(strings.TrimSpace(name), `"`)] = true
	}

	var missing []string
	for _, name := range ExpectedHeaders {
		if !have[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing columns %s", ErrInvalidCSVHeaders, strings.Join(missing, ", "))
	}
	return nil
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
