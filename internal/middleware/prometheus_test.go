// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/viewstats/internal/metrics"
)

func TestPrometheusMetrics(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		method string
		status int
	}{
		{"successful request", http.MethodGet, http.StatusOK},
		{"error response", http.MethodPost, http.StatusInternalServerError},
		{"not found", http.MethodGet, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			handler := PrometheusMetrics(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("body"))
			})

			rec := httptest.NewRecorder()
			handler(rec, httptest.NewRequest(tt.method, "/api/v1/test", nil))

			if rec.Code != tt.status {
				t.Errorf("Expected status %d, got %d", tt.status, rec.Code)
			}
		})
	}
}

func TestPrometheusMetrics_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/v1/charts/{chart}", PrometheusMetrics(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	counter := metrics.APIRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/charts/{chart}", "200")
	before := testutil.ToFloat64(counter)

	for _, chart := range []string{"calendar", "months", "weekdays"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/charts/"+chart, nil))
	}

	if got := testutil.ToFloat64(counter) - before; got != 3 {
		t.Errorf("route pattern counter delta = %v, want 3", got)
	}
}

func TestPrometheusMetrics_RateLimitHits(t *testing.T) {
	handler := PrometheusMetrics(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	counter := metrics.APIRateLimitHits.WithLabelValues("/api/v1/import")
	before := testutil.ToFloat64(counter)
	handler(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/import", nil))

	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Errorf("rate limit hits delta = %v, want 1", got)
	}
}

func TestMetricsResponseWriter(t *testing.T) {
	t.Parallel()

	t.Run("default status is 200", func(t *testing.T) {
		t.Parallel()
		rw := &metricsResponseWriter{ResponseWriter: httptest.NewRecorder(), statusCode: http.StatusOK}
		_, _ = rw.Write([]byte("ok"))
		if rw.statusCode != http.StatusOK {
			t.Errorf("statusCode = %d, want 200", rw.statusCode)
		}
	})

	t.Run("first WriteHeader wins", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		rw := &metricsResponseWriter{ResponseWriter: rec, statusCode: http.StatusOK}
		rw.WriteHeader(http.StatusAccepted)
		rw.WriteHeader(http.StatusInternalServerError)
		if rw.statusCode != http.StatusAccepted {
			t.Errorf("statusCode = %d, want 202", rw.statusCode)
		}
	})

	t.Run("unwrap", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		rw := &metricsResponseWriter{ResponseWriter: rec}
		if rw.Unwrap() != rec {
			t.Error("Unwrap() should return the wrapped writer")
		}
	})
}

func BenchmarkPrometheusMetrics(b *testing.B) {
	handler := PrometheusMetrics(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		handler(httptest.NewRecorder(), req)
	}
}
