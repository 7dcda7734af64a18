// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

package viewingimport

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc"
	"github.com/spf13/afero"

	"github.com/tomtom215/viewstats/internal/aggregate"
	"github.com/tomtom215/viewstats/internal/charts"
	"github.com/tomtom215/viewstats/internal/config"
	"github.com/tomtom215/viewstats/internal/enrich"
	"github.com/tomtom215/viewstats/internal/ingest"
	"github.com/tomtom215/viewstats/internal/logging"
	"github.com/tomtom215/viewstats/internal/metrics"
	"github.com/tomtom215/viewstats/internal/models"
	"github.com/tomtom215/viewstats/internal/sample"
	"github.com/tomtom215/viewstats/internal/store"
)

// ErrImportInProgress is returned when an import is started while another runs.
var ErrImportInProgress = errors.New("an import is already in progress")

// Pipeline stages, used as metric labels.
const (
	StageExtract   = "extract"
	StageParse     = "parse"
	StageAggregate = "aggregate"
	StageEnrich    = "enrich"
	StageSave      = "save"
)

// Store persists the derived dataset.
type Store interface {
	SaveAll(ctx context.Context, ds store.Dataset, summary *models.ImportSummary) error
}

// Request describes one import.
type Request struct {
	// Source is one of the models.ImportSource* constants.
	Source   string
	File     ingest.File
	Language string
	// Metadata replaces the importer's metadata source for this run.
	Metadata enrich.MetadataSource
}

// Importer runs imports one at a time.
type Importer struct {
	extractor   *ingest.Extractor
	store       Store
	source      enrich.MetadataSource
	enrichment  config.EnrichmentConfig
	defaultLang string

	running atomic.Bool

	mu   sync.RWMutex
	last *models.ImportSummary
}

// NewImporter creates an importer. source may be nil, in which case uploads
// are saved without metadata.
func NewImporter(cfg *config.Config, st Store, source enrich.MetadataSource) *Importer {
	return &Importer{
		extractor:   ingest.NewExtractor(cfg.Import.MaxEntryBytes),
		store:       st,
		source:      source,
		enrichment:  cfg.Enrichment,
		defaultLang: cfg.Import.Language,
	}
}

// Running reports whether an import is in progress.
func (i *Importer) Running() bool {
	return i.running.Load()
}

// LastSummary returns the summary of the last successful import run by this
// process, or nil.
func (i *Importer) LastSummary() *models.ImportSummary {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if i.last == nil {
		return nil
	}
	summary := *i.last
	return &summary
}

// LoadSample imports the embedded sample export with the catalogue snapshot
// for lang.
func (i *Importer) LoadSample(ctx context.Context, lang string) (*models.ImportSummary, error) {
	f, err := sample.File()
	if err != nil {
		return nil, err
	}
	src, err := sample.Source(i.language(lang))
	if err != nil {
		return nil, err
	}
	return i.Import(ctx, Request{
		Source:   models.ImportSourceSample,
		File:     f,
		Language: src.Language(),
		Metadata: src,
	})
}

// ImportFile imports an export from fsys.
func (i *Importer) ImportFile(ctx context.Context, fsys afero.Fs, path, lang string) (*models.ImportSummary, error) {
	f, err := ingest.LoadFile(fsys, path)
	if err != nil {
		return nil, err
	}
	return i.Import(ctx, Request{Source: models.ImportSourceFile, File: f, Language: lang})
}

// Import runs the pipeline for req and persists the result.
func (i *Importer) Import(ctx context.Context, req Request) (*models.ImportSummary, error) {
	if !i.running.CompareAndSwap(false, true) {
		return nil, ErrImportInProgress
	}
	defer i.running.Store(false)

	summary := &models.ImportSummary{
		ID:        uuid.New().String(),
		Source:    req.Source,
		FileName:  req.File.Name,
		Language:  i.language(req.Language),
		StartedAt: time.Now().UTC(),
	}
	if summary.Source == "" {
		summary.Source = models.ImportSourceUpload
	}

	ctx = logging.ContextWithImportID(ctx, summary.ID)
	logger := logging.Ctx(ctx)
	logger.Info().
		Str("source", summary.Source).
		Str("file", logging.SanitizeValue(summary.FileName)).
		Str("language", summary.Language).
		Msg("Import started")

	ds, err := i.run(ctx, req, summary)
	if err != nil {
		var stageErr *StageError
		stage := ""
		if errors.As(err, &stageErr) {
			stage = stageErr.Stage
		}
		metrics.RecordImport(time.Since(summary.StartedAt), summary.Activities, summary.Trailers, stage)
		logger.Warn().Err(err).Str("stage", stage).Msg("Import failed")
		return nil, err
	}

	summary.CompletedAt = time.Now().UTC()
	summary.DurationMS = summary.CompletedAt.Sub(summary.StartedAt).Milliseconds()

	start := time.Now()
	if err := i.store.SaveAll(ctx, ds, summary); err != nil {
		metrics.RecordImport(time.Since(summary.StartedAt), summary.Activities, summary.Trailers, StageSave)
		logger.Error().Err(err).Msg("Import could not be saved")
		return nil, &StageError{Stage: StageSave, Err: err}
	}
	metrics.RecordImportStage(StageSave, time.Since(start))
	metrics.RecordImport(time.Since(summary.StartedAt), summary.Activities, summary.Trailers, "")

	i.mu.Lock()
	saved := *summary
	i.last = &saved
	i.mu.Unlock()

	event := logger.Info()
	if summary.EnrichmentError != "" {
		event = logger.Warn().Str("enrichment_error", summary.EnrichmentError)
	}
	event.
		Int("activities", summary.Activities).
		Int("movies", summary.Movies).
		Int("series", summary.Series).
		Int("users", summary.Users).
		Int64("duration_ms", summary.DurationMS).
		Msg("Import complete")

	return summary, nil
}

// run executes every stage except save and fills in summary.
func (i *Importer) run(ctx context.Context, req Request, summary *models.ImportSummary) (store.Dataset, error) {
	var ds store.Dataset

	start := time.Now()
	data, err := i.extractor.Extract(ctx, req.File)
	if err != nil {
		return ds, &StageError{Stage: StageExtract, Err: err}
	}
	metrics.RecordImportStage(StageExtract, time.Since(start))

	start = time.Now()
	activities, stats, err := ingest.ParseWithStats(ctx, data)
	summary.Rows, summary.Trailers = stats.Rows, stats.Trailers
	if err != nil {
		return ds, &StageError{Stage: StageParse, Err: err}
	}
	summary.Activities = len(activities)
	metrics.RecordImportStage(StageParse, time.Since(start))

	start = time.Now()
	movies, series := aggregate.Separate(activities)
	users := aggregate.UserList(activities)
	summary.Movies, summary.Series, summary.Users = len(movies), len(series), len(users)
	metrics.RecordImportStage(StageAggregate, time.Since(start))

	ds = store.Dataset{Activities: activities, Movies: movies, Series: series, Users: users}

	source := req.Metadata
	if source == nil {
		source = i.source
	}
	if source == nil || (!i.enrichment.Enabled && req.Metadata == nil) {
		logging.Ctx(ctx).Info().Msg("Metadata enrichment disabled, saving without metadata")
		return ds, nil
	}

	start = time.Now()
	result, err := i.enrich(ctx, source, summary.Language, movies, series)
	metrics.RecordImportStage(StageEnrich, time.Since(start))
	switch {
	case err != nil && ctx.Err() != nil:
		return ds, &StageError{Stage: StageEnrich, Err: ctx.Err()}
	case err != nil:
		summary.EnrichmentError = err.Error()
		logging.Ctx(ctx).Warn().Err(err).Msg("Metadata enrichment failed, saving without metadata")
	default:
		ds.Movies, ds.Series = result.movies, result.series
		summary.MoviesEnriched = result.movieStats.Enriched
		summary.SeriesEnriched = result.seriesStats.Enriched
		summary.LookupFailures = result.movieStats.Failed + result.seriesStats.Failed
	}
	return ds, nil
}

type enrichResult struct {
	movies, series          []models.EnrichedActivity
	movieStats, seriesStats enrich.Stats
}

// enrich runs the movie and series enrichment. The result is only used when
// both succeed.
func (i *Importer) enrich(ctx context.Context, source enrich.MetadataSource, lang string, movies, series []models.EnrichedActivity) (enrichResult, error) {
	var (
		res                 enrichResult
		movieErr, seriesErr error
	)
	enricher := enrich.New(source, enrich.NewThrottle(i.enrichment))

	enrichMovies := func() {
		res.movies, res.movieStats, movieErr = enricher.EnrichWithStats(ctx, movies, lang, models.MediaTypeMovie)
	}
	enrichSeries := func() {
		res.series, res.seriesStats, seriesErr = enricher.EnrichWithStats(ctx, series, lang, models.MediaTypeSeries)
	}

	if i.enrichment.Concurrent {
		var wg conc.WaitGroup
		wg.Go(enrichMovies)
		wg.Go(enrichSeries)
		wg.Wait()
	} else {
		enrichMovies()
		if movieErr == nil {
			enrichSeries()
		}
	}

	if err := errors.Join(wrapMedia("movies", movieErr), wrapMedia("series", seriesErr)); err != nil {
		return enrichResult{}, err
	}
	return res, nil
}

func wrapMedia(kind string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", kind, err)
}

func (i *Importer) language(lang string) string {
	return charts.MatchLocale(lang, i.defaultLang)
}
