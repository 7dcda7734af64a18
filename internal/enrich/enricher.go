// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

package enrich

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/viewstats/internal/logging"
	"github.com/tomtom215/viewstats/internal/metrics"
	"github.com/tomtom215/viewstats/internal/models"
)

var (
	// ErrMissingCredential is returned before any lookup when the source has no API key.
	ErrMissingCredential = errors.New("metadata api key is not configured")

	// ErrGenreFetchFailed is returned when the genre vocabulary cannot be
	// fetched or is empty.
	ErrGenreFetchFailed = errors.New("failed to fetch genre list")
)

// Lookup outcomes recorded in metrics.
const (
	resultEnriched  = "enriched"
	resultNoResults = "no_results"
	resultError     = "error"
)

// MetadataSource provides genre vocabularies and title searches.
type MetadataSource interface {
	HasCredential() bool
	GenreList(ctx context.Context, media models.MediaType, lang string) ([]models.GenreListItem, error)
	Search(ctx context.Context, media models.MediaType, query, lang string) ([]models.SearchResult, error)
}

// Stats counts the outcome of one run.
type Stats struct {
	Items    int `json:"items"`
	Enriched int `json:"enriched"`
	// Failed counts lookups that errored or found nothing.
	Failed int `json:"failed"`
}

// Enricher attaches catalogue metadata to aggregates.
type Enricher struct {
	source   MetadataSource
	throttle Throttle
}

// New creates an Enricher. A nil throttle issues lookups without pausing.
func New(source MetadataSource, throttle Throttle) *Enricher {
	if throttle == nil {
		throttle = Sequential(0)
	}
	return &Enricher{source: source, throttle: throttle}
}

// Enrich returns a copy of items with genres, artwork and summary attached.
func (e *Enricher) Enrich(ctx context.Context, items []models.EnrichedActivity, lang string, media models.MediaType) ([]models.EnrichedActivity, error) {
	out, _, err := e.EnrichWithStats(ctx, items, lang, media)
	return out, err
}

// EnrichWithStats is Enrich and also reports lookup counts.
//
// Lookups run one at a time in input order. A failed or empty search leaves
// that item unchanged. Only a missing credential, a failed genre fetch or a
// cancelled context fail the run.
func (e *Enricher) EnrichWithStats(ctx context.Context, items []models.EnrichedActivity, lang string, media models.MediaType) ([]models.EnrichedActivity, Stats, error) {
	stats := Stats{Items: len(items)}
	if len(items) == 0 {
		return []models.EnrichedActivity{}, stats, nil
	}
	if !e.source.HasCredential() {
		return nil, stats, ErrMissingCredential
	}

	kind := media.CatalogType()
	logger := logging.Ctx(ctx).With().Str("media", kind).Str("language", lang).Logger()

	genreList, err := e.source.GenreList(ctx, media, lang)
	if err != nil {
		return nil, stats, fmt.Errorf("%w: %v", ErrGenreFetchFailed, err)
	}
	if len(genreList) == 0 {
		return nil, stats, fmt.Errorf("%w: empty genre list", ErrGenreFetchFailed)
	}
	genreNames := make(map[int]string, len(genreList))
	for _, g := range genreList {
		if _, ok := genreNames[g.ID]; !ok {
			genreNames[g.ID] = g.Name
		}
	}

	out := make([]models.EnrichedActivity, 0, len(items))
	for _, item := range items {
		if err := e.throttle.Wait(ctx); err != nil {
			return nil, stats, err
		}

		results, err := e.source.Search(ctx, media, item.Title, lang)
		switch {
		case err != nil:
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, stats, ctxErr
			}
			stats.Failed++
			metrics.RecordEnrichmentLookup(kind, resultError)
			logger.Debug().Err(err).Str("title", logging.SanitizeValue(item.Title)).Msg("Metadata lookup failed")
			out = append(out, item)
		case len(results) == 0:
			stats.Failed++
			metrics.RecordEnrichmentLookup(kind, resultNoResults)
			logger.Debug().Str("title", logging.SanitizeValue(item.Title)).Msg("No metadata found")
			out = append(out, item)
		default:
			stats.Enriched++
			metrics.RecordEnrichmentLookup(kind, resultEnriched)
			out = append(out, apply(item, results, genreNames))
		}
	}

	if err := e.throttle.Done(ctx); err != nil {
		return nil, stats, err
	}

	logger.Info().
		Int("items", stats.Items).
		Int("enriched", stats.Enriched).
		Int("failed", stats.Failed).
		Msg("Enrichment complete")

	return out, stats, nil
}

// BestResult returns the result with the highest vote count. The first one
// wins ties. results must not be empty.
func BestResult(results []models.SearchResult) models.SearchResult {
	best := results[0]
	for _, r := range results[1:] {
		if r.VoteCount > best.VoteCount {
			best = r
		}
	}
	return best
}

// apply copies the best result's metadata onto item. Unknown genre ids are skipped.
func apply(item models.EnrichedActivity, results []models.SearchResult, genreNames map[int]string) models.EnrichedActivity {
	best := BestResult(results)

	genres := make([]string, 0, len(best.GenreIDs))
	for _, id := range best.GenreIDs {
		if name, ok := genreNames[id]; ok {
			genres = append(genres, name)
		}
	}

	item.Genres = genres
	if best.BackdropPath != "" {
		item.Image = best.BackdropPath
	}
	if best.PosterPath != "" {
		item.Poster = best.PosterPath
	}
	summary := best.Overview
	item.Summary = &summary
	item.Results = results
	return item
}
