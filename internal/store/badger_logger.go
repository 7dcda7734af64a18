// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

package store

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/tomtom215/viewstats/internal/logging"
)

// badgerLogger forwards badger's internal messages to zerolog.
// Info messages are demoted to debug; badger is chatty during compaction.
type badgerLogger struct {
	logger zerolog.Logger
}

func newBadgerLogger() *badgerLogger {
	return &badgerLogger{logger: logging.WithComponent("badger")}
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error().Msgf(strings.TrimSpace(format), args...)
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn().Msgf(strings.TrimSpace(format), args...)
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug().Msgf(strings.TrimSpace(format), args...)
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Trace().Msgf(strings.TrimSpace(format), args...)
}
