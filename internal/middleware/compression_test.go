// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCompression_WithGzipAccept(t *testing.T) {
	t.Parallel()

	payload := strings.Repeat(`{"date":"2023-01-01","value":42},`, 200)
	handler := Compression(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "9999")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(payload))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/charts/calendar", nil)
	req.Header.Set("Accept-Encoding", "gzip, deflate")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Header().Get("Content-Encoding") != "gzip" {
		t.Errorf("Expected Content-Encoding: gzip, got: %s", rec.Header().Get("Content-Encoding"))
	}
	if rec.Header().Get("Content-Length") != "" {
		t.Error("Expected Content-Length header to be removed")
	}
	if rec.Header().Get("Vary") != "Accept-Encoding" {
		t.Errorf("Expected Vary: Accept-Encoding, got %q", rec.Header().Get("Vary"))
	}

	reader, err := gzip.NewReader(rec.Body)
	if err != nil {
		t.Fatalf("Failed to create gzip reader: %v", err)
	}
	defer reader.Close()

	decompressed, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("Failed to read decompressed data: %v", err)
	}
	if string(decompressed) != payload {
		t.Error("Decompressed data doesn't match expected")
	}
}

func TestCompression_WithoutGzipAccept(t *testing.T) {
	t.Parallel()

	handler := Compression(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("plain"))
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Header().Get("Content-Encoding") != "" {
		t.Error("Expected no Content-Encoding without Accept-Encoding: gzip")
	}
	if rec.Body.String() != "plain" {
		t.Errorf("body = %q, want plain", rec.Body.String())
	}
}

func TestGzipResponseWriter_ImplicitHeader(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	gzw := &gzipResponseWriter{Writer: io.Discard, ResponseWriter: rec}
	if _, err := gzw.Write([]byte("x")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if !gzw.wroteHeader || rec.Code != http.StatusOK {
		t.Errorf("expected implicit 200, got wroteHeader=%v code=%d", gzw.wroteHeader, rec.Code)
	}
}
