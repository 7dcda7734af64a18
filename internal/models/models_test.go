// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

package models

import (
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/viewstats/internal/validation"
)

func TestMediaType_CatalogType(t *testing.T) {
	t.Parallel()

	if got := MediaTypeMovie.CatalogType(); got != "movie" {
		t.Errorf("movie CatalogType() = %q", got)
	}
	if got := MediaTypeSeries.CatalogType(); got != "tv" {
		t.Errorf("series CatalogType() = %q", got)
	}
}

func TestActivity_Validation(t *testing.T) {
	t.Parallel()

	valid := Activity{
		User:      "Anna",
		FullTitle: "Inception",
		Type:      MediaTypeMovie,
		Date:      time.Date(2023, 1, 1, 20, 0, 0, 0, time.UTC),
		Duration:  5400,
	}

	tests := []struct {
		name    string
		mutate  func(*Activity)
		wantErr bool
	}{
		{"valid", func(*Activity) {}, false},
		{"zero duration", func(a *Activity) { a.Duration = 0 }, false},
		{"blank user", func(a *Activity) { a.User = " " }, true},
		{"empty title", func(a *Activity) { a.FullTitle = "" }, false},
		{"unknown type", func(a *Activity) { a.Type = "documentary" }, true},
		{"zero date", func(a *Activity) { a.Date = time.Time{} }, true},
		{"negative duration", func(a *Activity) { a.Duration = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a := valid
			tt.mutate(&a)
			err := validation.ValidateStruct(&a)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStruct() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEnrichedActivity_JSONFieldNames(t *testing.T) {
	t.Parallel()

	empty := ""
	item := EnrichedActivity{
		User:     "Anna",
		Title:    "Dark",
		Date:     []time.Time{time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)},
		Duration: 3600,
		Summary:  &empty,
	}
	data, err := json.Marshal(item)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	out := string(data)

	for _, want := range []string{`"user":"Anna"`, `"title":"Dark"`, `"date":["2023-01-01T00:00:00Z"]`, `"duration":3600`, `"summary":""`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in %s", want, out)
		}
	}
	for _, absent := range []string{"genres", "image", "poster", "results"} {
		if strings.Contains(out, absent) {
			t.Errorf("unexpected %s in unenriched item: %s", absent, out)
		}
	}
}

func TestEnrichedActivity_Genres(t *testing.T) {
	t.Parallel()

	item := EnrichedActivity{Genres: []string{"Drama", "Mystery"}}
	if !item.HasGenres() || !item.HasGenre("Mystery") || item.HasGenre("Comedy") {
		t.Errorf("unexpected genre checks for %v", item.Genres)
	}
	if (&EnrichedActivity{}).HasGenres() {
		t.Error("HasGenres() = true for an unenriched item")
	}
}
