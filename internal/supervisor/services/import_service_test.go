// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/viewstats/internal/config"
	viewingimport "github.com/tomtom215/viewstats/internal/import"
	"github.com/tomtom215/viewstats/internal/models"
	"github.com/tomtom215/viewstats/internal/store"
)

const exportCSV = "Profile Name,Start Time,Duration,Attributes,Title,Supplemental Video Type,Device Type,Bookmark,Latest Bookmark,Country\n" +
	"Anna,2023-03-01 20:00:00,01:40:00,,Heat,,TV,01:40:00,01:40:00,DE (Germany)\n"

// scriptedImporter returns errs in order, then succeeds.
type scriptedImporter struct {
	errs  []error
	calls atomic.Int32
	lang  atomic.Value
}

func (s *scriptedImporter) ImportFile(ctx context.Context, _ afero.Fs, _ string, lang string) (*models.ImportSummary, error) {
	n := int(s.calls.Add(1))
	s.lang.Store(lang)
	if n <= len(s.errs) {
		return nil, s.errs[n-1]
	}
	return &models.ImportSummary{Activities: 1}, nil
}

func TestStartupImportService_RealImporter(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	st, err := store.OpenInMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	fsys := afero.NewMemMapFs()
	if err := afero.WriteFile(fsys, "/imports/ViewingActivity.csv", []byte(exportCSV), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{Import: config.ImportConfig{Language: "en", MaxEntryBytes: 1 << 20}}
	imp := viewingimport.NewImporter(cfg, st, nil)
	svc := NewStartupImportService(imp, fsys, "/imports/ViewingActivity.csv", "en", time.Minute)

	if err := svc.Serve(ctx); !errors.Is(err, suture.ErrDoNotRestart) {
		t.Fatalf("Serve() = %v, want ErrDoNotRestart", err)
	}
	has, err := st.Has(ctx)
	if err != nil || !has {
		t.Errorf("Has() = %v, %v", has, err)
	}
	if svc.String() != "startup-import" {
		t.Errorf("String() = %q", svc.String())
	}
}

func TestStartupImportService_Outcomes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		errs      []error
		wantCalls int32
	}{
		{"success", nil, 1},
		{"rejected file is not retried", []error{errors.New("invalid csv headers")}, 1},
		{"waits for a running import", []error{viewingimport.ErrImportInProgress, viewingimport.ErrImportInProgress}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			imp := &scriptedImporter{errs: tt.errs}
			svc := NewStartupImportService(imp, afero.NewMemMapFs(), "/export.zip", "de", 0)
			svc.retryDelay = time.Millisecond

			if err := svc.Serve(context.Background()); !errors.Is(err, suture.ErrDoNotRestart) {
				t.Errorf("Serve() = %v, want ErrDoNotRestart", err)
			}
			if got := imp.calls.Load(); got != tt.wantCalls {
				t.Errorf("calls = %d, want %d", got, tt.wantCalls)
			}
			if imp.lang.Load() != "de" {
				t.Errorf("language = %v", imp.lang.Load())
			}
		})
	}
}

func TestStartupImportService_Canceled(t *testing.T) {
	t.Parallel()
	imp := &scriptedImporter{errs: []error{viewingimport.ErrImportInProgress}}
	svc := NewStartupImportService(imp, afero.NewMemMapFs(), "/export.zip", "en", 0)
	svc.retryDelay = time.Hour

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() = %v, want DeadlineExceeded", err)
	}
}
