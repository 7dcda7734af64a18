// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

package charts

import (
	"slices"

	"github.com/tomtom215/viewstats/internal/models"
)

// Years summarizes total viewing time and the hours watched per year.
// opts.Year is ignored; the summary always spans every year.
func Years(activities []models.Activity, opts Options) models.YearSummary {
	loc := opts.location()
	perYear := make(map[int]int64)
	summary := models.YearSummary{PerYear: make([]models.YearHours, 0)}

	for i := range activities {
		a := &activities[i]
		if !opts.matchesUser(a.User) {
			continue
		}
		summary.TotalSeconds += a.Duration
		perYear[a.Date.In(loc).Year()] += a.Duration
		if summary.FirstWatched == nil || a.Date.Before(*summary.FirstWatched) {
			first := a.Date
			summary.FirstWatched = &first
		}
	}

	summary.Hours = HoursFromSeconds(summary.TotalSeconds)
	summary.Days = DaysFromSeconds(summary.TotalSeconds)

	if summary.FirstWatched != nil {
		first := summary.FirstWatched.In(loc)
		summary.FirstWatched = &first
		summary.FirstMonth = MonthLabels(opts.Locale)[first.Month()-1]
		summary.FirstYear = first.Year()
	}

	for year, seconds := range perYear {
		summary.PerYear = append(summary.PerYear, models.YearHours{Year: year, Hours: int(HoursFromSeconds(seconds))})
	}
	slices.SortFunc(summary.PerYear, func(a, b models.YearHours) int { return a.Year - b.Year })

	return summary
}
