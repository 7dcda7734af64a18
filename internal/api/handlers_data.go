// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/viewstats/internal/charts"
	"github.com/tomtom215/viewstats/internal/models"
)

// Users returns the user selector: "all" followed by every stored profile.
func (h *Handler) Users(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	users, err := h.store.Users(r.Context())
	if err != nil {
		respondFailure(w, r, err)
		return
	}

	list := charts.Users(users)
	respondList(w, list, len(list), start)
}

// Activities returns the raw activity log of the selected user.
func (h *Handler) Activities(w http.ResponseWriter, r *http.Request) {
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

	filtered := charts.FilterActivities(activities, opts)
	respondList(w, filtered, len(filtered), start)
}

// Movies returns the movie grid.
func (h *Handler) Movies(w http.ResponseWriter, r *http.Request) {
	h.titles(w, r, h.store.Movies)
}

// Series returns the series grid.
func (h *Handler) Series(w http.ResponseWriter, r *http.Request) {
	h.titles(w, r, h.store.Series)
}

func (h *Handler) titles(w http.ResponseWriter, r *http.Request, load func(context.Context) ([]models.EnrichedActivity, error)) {
	start := time.Now()

	chartQuery, opts, apiErr := h.chartOptions(r)
	if apiErr != nil {
		respondValidation(w, apiErr)
		return
	}
	q := TitleQuery{ChartQuery: chartQuery, Genre: r.URL.Query().Get("genre")}
	if apiErr := validateRequest(&q); apiErr != nil {
		respondValidation(w, apiErr)
		return
	}

	items, err := load(r.Context())
	if err != nil {
		respondFailure(w, r, err)
		return
	}

	list := models.TitleList{
		Items:  charts.Titles(items, opts, q.Genre),
		Genres: charts.GenreOptions(items, opts),
	}
	respondList(w, list, len(list.Items), start)
}
