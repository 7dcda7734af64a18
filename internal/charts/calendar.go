// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

package charts

import (
	"slices"

	"github.com/tomtom215/viewstats/internal/models"
)

// DayLayout formats calendar day keys.
const DayLayout = "2006-01-02"

// Calendar buckets viewing time per calendar day.
//
// Days are in first-seen order and cover every year. Years are descending.
// SelectedYear is opts.Year or, when unset, the most recent year, and
// MostPopularDay is the selected year's day with the largest summed duration,
// the first such day on a tie.
func Calendar(activities []models.Activity, opts Options) models.CalendarChart {
	loc := opts.location()
	index := make(map[string]int)
	days := make([]models.CalendarDay, 0)
	years := make([]int, 0)

	for _, a := range activities {
		if !opts.matchesUser(a.User) {
			continue
		}
		local := a.Date.In(loc)
		key := local.Format(DayLayout)
		if i, ok := index[key]; ok {
			days[i].Seconds += a.Duration
			continue
		}
		index[key] = len(days)
		days = append(days, models.CalendarDay{Day: key, Year: local.Year(), Seconds: a.Duration})
		if !slices.Contains(years, local.Year()) {
			years = append(years, local.Year())
		}
	}

	for i := range days {
		days[i].Minutes = MinutesFromSeconds(days[i].Seconds)
	}
	slices.SortFunc(years, func(a, b int) int { return b - a })

	chart := models.CalendarChart{Days: days, Years: years}
	if len(years) == 0 {
		return chart
	}

	chart.SelectedYear = opts.Year
	if chart.SelectedYear == 0 {
		chart.SelectedYear = years[0]
	}

	for i := range days {
		if days[i].Year != chart.SelectedYear {
			continue
		}
		if chart.MostPopularDay == nil || days[i].Seconds > chart.MostPopularDay.Seconds {
			day := days[i]
			chart.MostPopularDay = &day
		}
	}
	return chart
}
