// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

package enrich

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/viewstats/internal/models"
)

// fakeSource is an in-memory MetadataSource.
type fakeSource struct {
	mu         sync.Mutex
	noKey      bool
	genres     []models.GenreListItem
	genreErr   error
	results    map[string][]models.SearchResult
	searchErr  map[string]error
	searches   []string
	genreCalls int
}

func (f *fakeSource) HasCredential() bool { return !f.noKey }

func (f *fakeSource) GenreList(_ context.Context, _ models.MediaType, _ string) ([]models.GenreListItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.genreCalls++
	return f.genres, f.genreErr
}

func (f *fakeSource) Search(_ context.Context, _ models.MediaType, query, _ string) ([]models.SearchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches = append(f.searches, query)
	if err := f.searchErr[query]; err != nil {
		return nil, err
	}
	return f.results[query], nil
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		genres: []models.GenreListItem{{ID: 18, Name: "Drama"}, {ID: 80, Name: "Crime"}, {ID: 35, Name: "Comedy"}},
		results: map[string][]models.SearchResult{
			"Dark": {
				{ID: 1, Name: "Dark Matter", GenreIDs: []int{35}, VoteCount: 40, Overview: "wrong"},
				{ID: 2, Name: "Dark", GenreIDs: []int{18, 80, 9999}, VoteCount: 900, BackdropPath: "/b.jpg", PosterPath: "/p.jpg", Overview: "A missing child."},
				{ID: 3, Name: "Dark (2)", GenreIDs: []int{80}, VoteCount: 900, Overview: "tie"},
			},
			"Ozark": {},
		},
		searchErr: map[string]error{"Narcos": errors.New("boom")},
	}
}

func items(titles ...string) []models.EnrichedActivity {
	out := make([]models.EnrichedActivity, len(titles))
	for i, title := range titles {
		out[i] = models.EnrichedActivity{
			User:     "Anna",
			Title:    title,
			Date:     []time.Time{time.Date(2023, 1, 1, 20, 0, 0, 0, time.UTC)},
			Duration: 3600,
		}
	}
	return out
}

func TestEnrich(t *testing.T) {
	t.Parallel()

	source := newFakeSource()
	enricher := New(source, Sequential(0))

	out, stats, err := enricher.EnrichWithStats(context.Background(), items("Dark", "Ozark", "Narcos"), "en", models.MediaTypeSeries)
	if err != nil {
		t.Fatalf("Enrich() error = %v", err)
	}

	if got := []string{out[0].Title, out[1].Title, out[2].Title}; !slices.Equal(got, []string{"Dark", "Ozark", "Narcos"}) {
		t.Errorf("order changed: %v", got)
	}
	if !slices.Equal(source.searches, []string{"Dark", "Ozark", "Narcos"}) {
		t.Errorf("searches = %v", source.searches)
	}
	if source.genreCalls != 1 {
		t.Errorf("genre list fetched %d times, want 1", source.genreCalls)
	}

	dark := out[0]
	if !slices.Equal(dark.Genres, []string{"Drama", "Crime"}) {
		t.Errorf("genres = %v", dark.Genres)
	}
	if dark.Image != "/b.jpg" || dark.Poster != "/p.jpg" {
		t.Errorf("artwork = %q %q", dark.Image, dark.Poster)
	}
	if dark.Summary == nil || *dark.Summary != "A missing child." {
		t.Errorf("summary = %v", dark.Summary)
	}
	if len(dark.Results) != 3 {
		t.Errorf("results carried = %d, want 3", len(dark.Results))
	}
	if dark.Duration != 3600 || dark.User != "Anna" {
		t.Errorf("aggregate fields changed: %+v", dark)
	}

	for _, unchanged := range out[1:] {
		if unchanged.Genres != nil || unchanged.Summary != nil || unchanged.Results != nil {
			t.Errorf("%s should be unchanged: %+v", unchanged.Title, unchanged)
		}
	}

	want := Stats{Items: 3, Enriched: 1, Failed: 2}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}
}

func TestEnrich_EmptyInput(t *testing.T) {
	t.Parallel()

	source := newFakeSource()
	source.noKey = true

	out, err := New(source, nil).Enrich(context.Background(), nil, "en", models.MediaTypeMovie)
	if err != nil {
		t.Fatalf("Enrich() error = %v", err)
	}
	if out == nil || len(out) != 0 {
		t.Errorf("Enrich() = %v, want empty", out)
	}
	if source.genreCalls != 0 || len(source.searches) != 0 {
		t.Error("expected no lookups for empty input")
	}
}

func TestEnrich_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(f *fakeSource)
		wantErr error
	}{
		{"missing credential", func(f *fakeSource) { f.noKey = true }, ErrMissingCredential},
		{"genre error", func(f *fakeSource) { f.genreErr = errors.New("503") }, ErrGenreFetchFailed},
		{"empty genres", func(f *fakeSource) { f.genres = nil }, ErrGenreFetchFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			source := newFakeSource()
			tt.mutate(source)

			out, err := New(source, nil).Enrich(context.Background(), items("Dark"), "en", models.MediaTypeSeries)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Enrich() error = %v, want %v", err, tt.wantErr)
			}
			if out != nil {
				t.Errorf("expected no output on failure, got %v", out)
			}
			if len(source.searches) != 0 {
				t.Errorf("expected no searches, got %v", source.searches)
			}
		})
	}
}

func TestEnrich_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(newFakeSource(), Sequential(0)).Enrich(ctx, items("Dark"), "en", models.MediaTypeSeries)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Enrich() error = %v, want context.Canceled", err)
	}
}

func TestBestResult(t *testing.T) {
	t.Parallel()

	got := BestResult([]models.SearchResult{
		{ID: 1, VoteCount: 5},
		{ID: 2, VoteCount: 12},
		{ID: 3, VoteCount: 12},
		{ID: 4, VoteCount: 0},
	})
	if got.ID != 2 {
		t.Errorf("BestResult() = %d, want 2", got.ID)
	}
}
