// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

package api

// ChartQuery holds the query parameters shared by chart and list endpoints.
type ChartQuery struct {
	User   string `validate:"omitempty,max=256"`
	Year   int    `validate:"omitempty,gte=1970,lte=2100"`
	Locale string `validate:"omitempty,locale"`
	TZ     string `validate:"omitempty,max=64"`
}

// TitleQuery filters the movie and series grids.
type TitleQuery struct {
	ChartQuery
	Genre string `validate:"omitempty,max=128"`
}

// GenreChartQuery selects which aggregates the genre chart counts.
type GenreChartQuery struct {
	ChartQuery
	Type string `validate:"omitempty,oneof=movies movie tv series"`
}

// TopSeriesQuery limits the top series list.
type TopSeriesQuery struct {
	ChartQuery
	Limit int `validate:"gte=1,lte=100"`
}

// ImportRequest holds the non-file fields of an upload or sample load.
type ImportRequest struct {
	Language string `validate:"omitempty,locale"`
}
