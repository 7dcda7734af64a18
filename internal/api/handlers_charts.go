// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/viewstats/internal/charts"
	"github.com/tomtom215/viewstats/internal/models"
)

// activityChart serves a projector over the stored activity log.
func (h *Handler) activityChart(project func([]models.Activity, charts.Options) interface{}) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		_, opts, apiErr := h.chartOptions(r)
		if apiErr != nil {
			respondValidation(w, apiErr)
			return
		}

		activities, err := h.store.Activities(r.Context())
		if err != nil {
			respondFailure(w, r, err)
			return
		}

		respondData(w, http.StatusOK, project(activities, opts), start)
	}
}

// CalendarChart serves the calendar heatmap.
func (h *Handler) CalendarChart(w http.ResponseWriter, r *http.Request) {
	h.activityChart(func(a []models.Activity, o charts.Options) interface{} {
		return charts.Calendar(a, o)
	})(w, r)
}

// MonthsChart serves the month rollup.
func (h *Handler) MonthsChart(w http.ResponseWriter, r *http.Request) {
	h.activityChart(func(a []models.Activity, o charts.Options) interface{} {
		return charts.Months(a, o)
	})(w, r)
}

// WeekdaysChart serves the weekday rollup.
func (h *Handler) WeekdaysChart(w http.ResponseWriter, r *http.Request) {
	h.activityChart(func(a []models.Activity, o charts.Options) interface{} {
		return charts.Weekdays(a, o)
	})(w, r)
}

// YearsChart serves total watch time and hours per year.
func (h *Handler) YearsChart(w http.ResponseWriter, r *http.Request) {
	h.activityChart(func(a []models.Activity, o charts.Options) interface{} {
		return charts.Years(a, o)
	})(w, r)
}

// GenresChart serves the genre distribution of movies (default) or series.
func (h *Handler) GenresChart(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	chartQuery, opts, apiErr := h.chartOptions(r)
	if apiErr != nil {
		respondValidation(w, apiErr)
		return
	}
	q := GenreChartQuery{ChartQuery: chartQuery, Type: r.URL.Query().Get("type")}
	if apiErr := validateRequest(&q); apiErr != nil {
		respondValidation(w, apiErr)
		return
	}

	load := h.store.Movies
	if q.Type == "tv" || q.Type == "series" {
		load = h.store.Series
	}
	items, err := load(r.Context())
	if err != nil {
		respondFailure(w, r, err)
		return
	}

	respondData(w, http.StatusOK, charts.Genres(items, opts), start)
}

// TopSeriesChart serves the series with the most watch time.
func (h *Handler) TopSeriesChart(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	chartQuery, opts, apiErr := h.chartOptions(r)
	if apiErr != nil {
		respondValidation(w, apiErr)
		return
	}
	limit, ok := parseIntParam(r, "limit", h.topSeriesLimit())
	if !ok {
		respondValidation(w, invalidParam("limit", r.URL.Query().Get("limit")))
		return
	}
	q := TopSeriesQuery{ChartQuery: chartQuery, Limit: limit}
	if apiErr := validateRequest(&q); apiErr != nil {
		respondValidation(w, apiErr)
		return
	}

	series, err := h.store.Series(r.Context())
	if err != nil {
		respondFailure(w, r, err)
		return
	}

	top := charts.TopSeries(series, opts, q.Limit)
	respondList(w, top, len(top), start)
}

func (h *Handler) topSeriesLimit() int {
	if h.config.Charts.TopSeriesLimit > 0 {
		return h.config.Charts.TopSeriesLimit
	}
	return charts.DefaultTopSeries
}
