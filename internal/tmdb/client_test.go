// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

package tmdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/viewstats/internal/config"
	"github.com/tomtom215/viewstats/internal/models"
)

func testConfig(url string) *config.TMDBConfig {
	return &config.TMDBConfig{
		APIKey:         "test-token",
		BaseURL:        url,
		RequestTimeout: 5 * time.Second,
		MaxRetries:     2,
		RetryBaseDelay: time.Millisecond,
	}
}

func TestClient_GenreList(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/genre/tv/list" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("language"); got != "de" {
			t.Errorf("language = %q, want de", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"genres":[{"id":18,"name":"Drama"},{"id":9648,"name":"Mystery"}]}`))
	}))
	defer server.Close()

	genres, err := NewClient(testConfig(server.URL)).GenreList(context.Background(), models.MediaTypeSeries, "de")
	if err != nil {
		t.Fatalf("GenreList() error = %v", err)
	}
	if len(genres) != 2 || genres[0].ID != 18 || genres[1].Name != "Mystery" {
		t.Errorf("GenreList() = %+v", genres)
	}
}

func TestClient_Search(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/movie" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("query") != "Amélie & Co: Part 2" || q.Get("include_adult") != "false" || q.Get("language") != "en" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"page":1,"results":[
			{"id":1,"title":"Amélie","genre_ids":[35],"overview":"Paris","vote_count":10,"poster_path":"/p.jpg"},
			{"id":2,"title":"Amélie 2","genre_ids":[],"overview":"","vote_count":3}
		]}`))
	}))
	defer server.Close()

	results, err := NewClient(testConfig(server.URL)).Search(context.Background(), models.MediaTypeMovie, "Amélie & Co: Part 2", "en")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Title != "Amélie" || results[0].VoteCount != 10 || results[0].PosterPath != "/p.jpg" {
		t.Errorf("results[0] = %+v", results[0])
	}
}

func TestClient_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
		check   func(t *testing.T, err error)
	}{
		{
			name:    "missing results",
			status:  http.StatusOK,
			body:    `{"page":1}`,
			wantErr: ErrMalformedResponse,
		},
		{
			name:   "unauthorized",
			status: http.StatusUnauthorized,
			body:   `{"status_message":"Invalid API key"}`,
			check: func(t *testing.T, err error) {
				var statusErr *StatusError
				if !errors.As(err, &statusErr) {
					t.Fatalf("expected *StatusError, got %T", err)
				}
				if statusErr.StatusCode != http.StatusUnauthorized || !strings.Contains(statusErr.Body, "Invalid API key") {
					t.Errorf("StatusError = %+v", statusErr)
				}
			},
		},
		{
			name:   "truncated body",
			status: http.StatusInternalServerError,
			body:   strings.Repeat("x", maxErrorBodySize+100),
			check: func(t *testing.T, err error) {
				var statusErr *StatusError
				if !errors.As(err, &statusErr) {
					t.Fatalf("expected *StatusError, got %T", err)
				}
				if !strings.HasSuffix(statusErr.Body, "(truncated)") || len(statusErr.Body) > maxErrorBodySize+32 {
					t.Errorf("body was not capped: %d bytes", len(statusErr.Body))
				}
			},
		},
		{
			name:   "invalid json",
			status: http.StatusOK,
			body:   `{"results":`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewClient(testConfig(server.URL)).Search(context.Background(), models.MediaTypeMovie, "x", "en")
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, err)
			}
		})
	}
}

func TestClient_MissingCredential(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.APIKey = ""
	client := NewClient(cfg)

	if client.HasCredential() {
		t.Error("HasCredential() = true without a key")
	}
	if _, err := client.GenreList(context.Background(), models.MediaTypeMovie, "en"); !errors.Is(err, ErrMissingCredential) {
		t.Errorf("GenreList() error = %v, want ErrMissingCredential", err)
	}
	if calls.Load() != 0 {
		t.Errorf("expected no requests, got %d", calls.Load())
	}
}

func TestClient_RateLimitRetry(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer server.Close()

	results, err := NewClient(testConfig(server.URL)).Search(context.Background(), models.MediaTypeSeries, "Dark", "en")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
	if calls.Load() != 3 {
		t.Errorf("expected 3 requests, got %d", calls.Load())
	}
}

func TestClient_RateLimitExhausted(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := NewClient(testConfig(server.URL)).Search(context.Background(), models.MediaTypeSeries, "Dark", "en")
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("Search() error = %v, want ErrRateLimited", err)
	}
	if calls.Load() != 3 {
		t.Errorf("expected 1 request plus 2 retries, got %d", calls.Load())
	}
}

func TestParseRetryAfter(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"", 0},
		{"3", 3 * time.Second},
		{"0", 0},
		{"-2", 0},
		{"soon", 0},
		{now.Add(5 * time.Second).Format(http.TimeFormat), 5 * time.Second},
		{now.Add(-5 * time.Second).Format(http.TimeFormat), 0},
	}
	for _, tt := range tests {
		if got := parseRetryAfter(tt.value, now); got != tt.want {
			t.Errorf("parseRetryAfter(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}
