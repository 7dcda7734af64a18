// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

package services

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/afero"
	"github.com/thejerf/suture/v4"

	viewingimport "github.com/tomtom215/viewstats/internal/import"
	"github.com/tomtom215/viewstats/internal/logging"
	"github.com/tomtom215/viewstats/internal/models"
)

// FileImporter imports an export from a filesystem.
// *viewingimport.Importer satisfies it.
type FileImporter interface {
	ImportFile(ctx context.Context, fsys afero.Fs, path, lang string) (*models.ImportSummary, error)
}

// StartupImportService imports one export file when the tree starts.
//
// A rejected file is logged and not retried: restarting would only fail the
// same way. An import already started through the API is waited out and
// retried. The service exits with suture.ErrDoNotRestart once it is done.
type StartupImportService struct {
	importer   FileImporter
	fsys       afero.Fs
	path       string
	language   string
	timeout    time.Duration
	retryDelay time.Duration
	name       string
}

// NewStartupImportService creates the service. A zero timeout means no limit
// beyond the supervisor's context.
func NewStartupImportService(importer FileImporter, fsys afero.Fs, path, language string, timeout time.Duration) *StartupImportService {
	return &StartupImportService{
		importer:   importer,
		fsys:       fsys,
		path:       path,
		language:   language,
		timeout:    timeout,
		retryDelay: 5 * time.Second,
		name:       "startup-import",
	}
}

// Serve runs the import once.
func (s *StartupImportService) Serve(ctx context.Context) error {
	logger := logging.WithComponent(s.name)

	for {
		summary, err := s.run(ctx)
		switch {
		case err == nil:
			logger.Info().
				Str("path", s.path).
				Int("activities", summary.Activities).
				Int("movies", summary.Movies).
				Int("series", summary.Series).
				Msg("Startup import complete")
			return suture.ErrDoNotRestart

		case ctx.Err() != nil:
			return ctx.Err()

		case errors.Is(err, viewingimport.ErrImportInProgress):
			logger.Info().Dur("retry_in", s.retryDelay).Msg("Another import is running, waiting")
			select {
			case <-time.After(s.retryDelay):
			case <-ctx.Done():
				return ctx.Err()
			}

		default:
			logger.Error().Err(err).Str("path", s.path).Msg("Startup import failed")
			return suture.ErrDoNotRestart
		}
	}
}

func (s *StartupImportService) run(ctx context.Context) (*models.ImportSummary, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return s.importer.ImportFile(logging.ContextWithNewCorrelationID(ctx), s.fsys, s.path, s.language)
}

// String implements fmt.Stringer for suture's event log.
func (s *StartupImportService) String() string {
	return s.name
}
