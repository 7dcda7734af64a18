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

// Months rolls viewing time up by month and year.
func Months(activities []models.Activity, opts Options) models.RollupChart {
	return rollup(activities, opts, MonthLabels(opts.Locale), func(t time.Time) int {
		return int(t.Month()) - 1
	})
}

// Weekdays rolls viewing time up by weekday and year. Monday is index 0.
func Weekdays(activities []models.Activity, opts Options) models.RollupChart {
	return rollup(activities, opts, WeekdayLabels(opts.Locale), func(t time.Time) int {
		return (int(t.Weekday()) + 6) % 7
	})
}

// rollup builds a bucket x year matrix of hours.
//
// Only buckets with viewing time appear, in label order. Years lists every
// year of the user's data ascending; ActiveYears is opts.Year alone when set.
// Seconds are summed per cell and rounded to hours once. MostPopular is the
// bucket with the most time across the active years; the earlier bucket wins
// ties.
func rollup(activities []models.Activity, opts Options, labels []string, bucketOf func(time.Time) int) models.RollupChart {
	loc := opts.location()
	cells := make([]map[int]int64, len(labels))
	years := make([]int, 0)

	for _, a := range activities {
		if !opts.matchesUser(a.User) {
			continue
		}
		local := a.Date.In(loc)
		b := bucketOf(local)
		if cells[b] == nil {
			cells[b] = make(map[int]int64)
		}
		cells[b][local.Year()] += a.Duration
		if !slices.Contains(years, local.Year()) {
			years = append(years, local.Year())
		}
	}
	slices.Sort(years)

	active := years
	if opts.Year != 0 {
		active = []int{opts.Year}
	}

	chart := models.RollupChart{
		Buckets:     make([]models.RollupBucket, 0, len(labels)),
		Years:       years,
		ActiveYears: active,
	}

	best := -1
	for i, label := range labels {
		if cells[i] == nil {
			continue
		}
		bucket := models.RollupBucket{
			Label: label,
			Index: i,
			Hours: make(map[int]int, len(active)),
		}
		for _, y := range active {
			seconds := cells[i][y]
			bucket.Hours[y] = int(HoursFromSeconds(seconds))
			bucket.Seconds += seconds
		}
		if best < 0 || bucket.Seconds > chart.Buckets[best].Seconds {
			best = len(chart.Buckets)
		}
		chart.Buckets = append(chart.Buckets, bucket)
	}

	if best >= 0 && chart.Buckets[best].Seconds > 0 {
		chart.MostPopular = chart.Buckets[best].Label
	}
	return chart
}
