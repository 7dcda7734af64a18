// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

package aggregate

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/tomtom215/viewstats/internal/models"
)

// Minimum total watch time for an aggregate to be kept, in seconds.
const (
	MinMovieSeconds  int64 = 15 * 60
	MinSeriesSeconds int64 = 30 * 60
)

// SeriesTitle returns the show name of an episode title: the text before the
// first colon. Titles without a colon are returned unchanged.
func SeriesTitle(fullTitle string) string {
	title, _, _ := strings.Cut(fullTitle, ":")
	return title
}

// Separate splits activities into movie and series aggregates.
//
// Movies are grouped by full title and sorted by title in byte order. Series
// are grouped by SeriesTitle and sorted by total duration, longest first.
// Aggregates below MinMovieSeconds or MinSeriesSeconds are dropped. Both sorts
// are stable, so ties keep the order in which titles were first seen.
func Separate(activities []models.Activity) (movies, series []models.EnrichedActivity) {
	movieGroups := newGrouper()
	seriesGroups := newGrouper()

	for i := range activities {
		a := &activities[i]
		if a.Type == models.MediaTypeSeries {
			seriesGroups.add(SeriesTitle(a.FullTitle), a)
		} else {
			movieGroups.add(a.FullTitle, a)
		}
	}

	movies = movieGroups.keep(MinMovieSeconds)
	series = seriesGroups.keep(MinSeriesSeconds)

	slices.SortStableFunc(movies, func(a, b models.EnrichedActivity) int {
		return strings.Compare(a.Title, b.Title)
	})
	slices.SortStableFunc(series, func(a, b models.EnrichedActivity) int {
		return cmp.Compare(b.Duration, a.Duration)
	})

	return movies, series
}

// grouper merges activities by key in first-seen order.
type grouper struct {
	index map[string]int
	items []models.EnrichedActivity
}

func newGrouper() *grouper {
	return &grouper{index: make(map[string]int)}
}

func (g *grouper) add(key string, a *models.Activity) {
	if i, ok := g.index[key]; ok {
		item := &g.items[i]
		item.Duration += a.Duration
		item.Date = append(item.Date, a.Date)
		return
	}

	g.index[key] = len(g.items)
	g.items = append(g.items, models.EnrichedActivity{
		User:     a.User,
		Title:    key,
		Date:     []time.Time{a.Date},
		Duration: a.Duration,
	})
}

// keep returns the aggregates with at least minSeconds of watch time.
func (g *grouper) keep(minSeconds int64) []models.EnrichedActivity {
	out := make([]models.EnrichedActivity, 0, len(g.items))
	for _, item := range g.items {
		if item.Duration >= minSeconds {
			out = append(out, item)
		}
	}
	return out
}

// UserList returns the distinct profile names in the order they first appear.
func UserList(activities []models.Activity) []string {
	seen := make(map[string]struct{})
	users := make([]string, 0)
	for _, a := range activities {
		if _, ok := seen[a.User]; ok {
			continue
		}
		seen[a.User] = struct{}{}
		users = append(users, a.User)
	}
	return users
}
