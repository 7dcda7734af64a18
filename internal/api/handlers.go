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
	"github.com/tomtom215/viewstats/internal/config"
	viewingimport "github.com/tomtom215/viewstats/internal/import"
	"github.com/tomtom215/viewstats/internal/logging"
	"github.com/tomtom215/viewstats/internal/models"
)

// DataStore is the persisted dataset the handlers read.
type DataStore interface {
	Activities(ctx context.Context) ([]models.Activity, error)
	Movies(ctx context.Context) ([]models.EnrichedActivity, error)
	Series(ctx context.Context) ([]models.EnrichedActivity, error)
	Users(ctx context.Context) ([]string, error)
	ImportSummary(ctx context.Context) (*models.ImportSummary, error)
	Has(ctx context.Context) (bool, error)
	DeleteAll(ctx context.Context) error
	Ping(ctx context.Context) error
}

// ImportRunner runs imports. *viewingimport.Importer implements it.
type ImportRunner interface {
	Import(ctx context.Context, req viewingimport.Request) (*models.ImportSummary, error)
	LoadSample(ctx context.Context, lang string) (*models.ImportSummary, error)
	Running() bool
	LastSummary() *models.ImportSummary
}

// Handler holds the dependencies of every HTTP handler.
type Handler struct {
	store     DataStore
	importer  ImportRunner
	config    *config.Config
	location  *time.Location
	startTime time.Time
	version   string
}

// NewHandler creates a Handler. An unknown charts timezone falls back to UTC.
func NewHandler(st DataStore, importer ImportRunner, cfg *config.Config, version string) *Handler {
	loc, err := time.LoadLocation(cfg.Charts.Timezone)
	if err != nil {
		logging.Warn().Err(err).Str("timezone", cfg.Charts.Timezone).Msg("Unknown charts timezone, using UTC")
		loc = time.UTC
	}
	return &Handler{
		store:     st,
		importer:  importer,
		config:    cfg,
		location:  loc,
		startTime: time.Now(),
		version:   version,
	}
}

// chartOptions parses and validates the shared chart parameters.
func (h *Handler) chartOptions(r *http.Request) (ChartQuery, charts.Options, *models.APIError) {
	query := r.URL.Query()
	q := ChartQuery{
		User:   query.Get("user"),
		Locale: query.Get("locale"),
		TZ:     query.Get("tz"),
	}

	year, ok := parseIntParam(r, "year", 0)
	if !ok {
		return q, charts.Options{}, invalidParam("year", query.Get("year"))
	}
	q.Year = year

	if apiErr := validateRequest(&q); apiErr != nil {
		return q, charts.Options{}, apiErr
	}

	loc := h.location
	if q.TZ != "" {
		l, err := time.LoadLocation(q.TZ)
		if err != nil {
			return q, charts.Options{}, invalidParam("tz", q.TZ)
		}
		loc = l
	}

	return q, charts.Options{
		User:     q.User,
		Year:     q.Year,
		Locale:   charts.MatchLocale(q.Locale, r.Header.Get("Accept-Language"), h.config.Charts.DefaultLocale),
		Location: loc,
	}, nil
}
