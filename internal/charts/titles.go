// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

package charts

import (
	"slices"
	"time"

	"github.com/tomtom215/viewstats/internal/models"
)

// Pause tolerance for LastWatched.
const (
	// MidnightWindow is how long after local midnight a session still
	// continues the previous evening's viewing.
	MidnightWindow = 2 * time.Hour
	// PauseGap is the largest gap between two sessions of one viewing.
	PauseGap = 4 * time.Hour
)

// LastWatched finds the most recent continuous viewing among dates.
//
// At is the latest session. Walking back from it, an earlier session belongs
// to the same viewing when the later session of the pair starts within
// MidnightWindow after local midnight or the gap between them is at most
// PauseGap. The walk stops at the first session that does not fold; Began is
// the earliest folded session. Returns nil for no dates.
func LastWatched(dates []time.Time, loc *time.Location) *models.LastViewing {
	if len(dates) == 0 {
		return nil
	}
	if loc == nil {
		loc = time.UTC
	}

	sorted := slices.Clone(dates)
	slices.SortFunc(sorted, func(a, b time.Time) int { return a.Compare(b) })

	latest := sorted[len(sorted)-1]
	viewing := &models.LastViewing{At: latest, Began: latest, Sessions: 1}

	for i := len(sorted) - 2; i >= 0; i-- {
		later, earlier := sorted[i+1], sorted[i]
		if sinceMidnight(later.In(loc)) > MidnightWindow && later.Sub(earlier) > PauseGap {
			break
		}
		viewing.Began = earlier
		viewing.Sessions++
	}
	return viewing
}

func sinceMidnight(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second
}

// FirstAndLastYear returns the years of the earliest and latest dates in loc.
// ok is false for no dates.
func FirstAndLastYear(dates []time.Time, loc *time.Location) (first, last int, ok bool) {
	if len(dates) == 0 {
		return 0, 0, false
	}
	if loc == nil {
		loc = time.UTC
	}
	earliest, latest := dates[0], dates[0]
	for _, d := range dates[1:] {
		if d.Before(earliest) {
			earliest = d
		}
		if d.After(latest) {
			latest = d
		}
	}
	return earliest.In(loc).Year(), latest.In(loc).Year(), true
}

// Titles builds the movie or series grid for the user, optionally limited to
// titles carrying genre. Input order is kept.
func Titles(items []models.EnrichedActivity, opts Options, genre string) []models.TitleRow {
	loc := opts.location()
	rows := make([]models.TitleRow, 0)

	for _, item := range items {
		if !opts.matchesUser(item.User) {
			continue
		}
		if genre != "" && !item.HasGenre(genre) {
			continue
		}

		row := models.TitleRow{
			EnrichedActivity: item,
			LastWatched:      LastWatched(item.Date, loc),
			Hours:            HoursFromSeconds(item.Duration),
			Minutes:          MinutesFromSeconds(item.Duration),
			Views:            len(item.Date),
		}
		if first, last, ok := FirstAndLastYear(item.Date, loc); ok {
			row.FirstYear, row.LastYear = first, last
		}
		rows = append(rows, row)
	}
	return rows
}

// TopSeries returns the first n of the user's series that have genres.
// series must already be sorted by duration; n <= 0 uses DefaultTopSeries.
func TopSeries(series []models.EnrichedActivity, opts Options, n int) []models.EnrichedActivity {
	if n <= 0 {
		n = DefaultTopSeries
	}
	out := make([]models.EnrichedActivity, 0, n)
	for i := range series {
		if len(out) == n {
			break
		}
		if opts.matchesUser(series[i].User) && series[i].HasGenres() {
			out = append(out, series[i])
		}
	}
	return out
}
