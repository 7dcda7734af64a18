// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

package models

import (
	"time"
)

// CalendarDay is one cell of the calendar heatmap.
type CalendarDay struct {
	// Day is YYYY-MM-DD in the requested time zone.
	Day     string `json:"day"`
	Year    int    `json:"year"`
	Minutes int64  `json:"value"`
	Seconds int64  `json:"seconds"`
}

// CalendarChart is the calendar heatmap for one selected year.
// Days holds every bucketed day of every year; clients filter by SelectedYear.
type CalendarChart struct {
	Days           []CalendarDay `json:"days"`
	Years          []int         `json:"years"`
	SelectedYear   int           `json:"selected_year,omitempty"`
	MostPopularDay *CalendarDay  `json:"most_popular_day,omitempty"`
}

// RollupBucket is one axis label (a month or weekday) of a rollup chart.
// Hours maps year to rounded hours.
type RollupBucket struct {
	Label string      `json:"label"`
	Index int         `json:"index"`
	Hours map[int]int `json:"hours"`
	// Seconds is the exact total across the filtered years.
	Seconds int64 `json:"seconds"`
}

// RollupChart is a month or weekday rollup.
type RollupChart struct {
	Buckets     []RollupBucket `json:"buckets"`
	Years       []int          `json:"years"`
	ActiveYears []int          `json:"active_years"`
	MostPopular string         `json:"most_popular,omitempty"`
}

// YearHours is one bar of the per-year chart.
type YearHours struct {
	Year  int `json:"year"`
	Hours int `json:"hours"`
}

// YearSummary is the total viewing time overview.
type YearSummary struct {
	TotalSeconds int64       `json:"total_seconds"`
	Hours        int64       `json:"hours"`
	Days         int64       `json:"days"`
	FirstWatched *time.Time  `json:"first_watched,omitempty"`
	FirstMonth   string      `json:"first_month,omitempty"`
	FirstYear    int         `json:"first_year,omitempty"`
	PerYear      []YearHours `json:"per_year"`
}

// GenreCount is one slice of the genre chart.
type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
	Fill  string `json:"fill"`
}

// GenreChart is the genre distribution for movies or series.
type GenreChart struct {
	Genres        []GenreCount `json:"genres"`
	ActiveIndexes []int        `json:"active_indexes"`
	ItemCount     int          `json:"item_count"`
}

// LastViewing is the most recent continuous viewing of a title.
// Sessions counts the sessions folded into it, including At.
type LastViewing struct {
	At       time.Time `json:"at"`
	Began    time.Time `json:"began"`
	Sessions int       `json:"sessions"`
}

// TitleRow is one card of the movie or series grid.
type TitleRow struct {
	EnrichedActivity
	LastWatched *LastViewing `json:"last_watched,omitempty"`
	FirstYear   int          `json:"first_year,omitempty"`
	LastYear    int          `json:"last_year,omitempty"`
	Hours       int64        `json:"hours"`
	Minutes     int64        `json:"minutes"`
	Views       int          `json:"views"`
}

// TitleList is the movie or series grid with the genres available for
// filtering it.
type TitleList struct {
	Items  []TitleRow `json:"items"`
	Genres []string   `json:"genres"`
}
