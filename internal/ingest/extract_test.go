// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

package ingest

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

// buildZip returns an archive holding the given name -> content entries.
func buildZip(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip Create(%s) error = %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("zip Write(%s) error = %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip Close() error = %v", err)
	}
	return buf.Bytes()
}

func TestExtract(t *testing.T) {
	t.Parallel()

	csvText := string(exportCSV("Anna,2023-01-01 21:04:11,0:51:02,,The Irishman,,TV,,,DE"))
	archive := buildZip(t, map[string]string{
		"CONTENT_INTERACTION/ViewingActivity.csv": csvText,
		"CONTENT_INTERACTION/Ratings.csv":         "Profile Name,Title\n",
	})
	nested := buildZip(t, map[string]string{
		"netflix-report/CONTENT_INTERACTION/ViewingActivity.csv": csvText,
	})
	tooDeep := buildZip(t, map[string]string{
		"a/b/CONTENT_INTERACTION/ViewingActivity.csv": csvText,
	})
	missing := buildZip(t, map[string]string{"PROFILES/Profiles.csv": "x"})

	tests := []struct {
		name        string
		contentType string
		data        []byte
		want        string
		wantErr     error
	}{
		{"csv passthrough", "text/csv", []byte(csvText), csvText, nil},
		{"csv with params", "text/csv; charset=utf-8", []byte(csvText), csvText, nil},
		{"excel csv alias", "application/vnd.ms-excel", []byte(csvText), csvText, nil},
		{"zip", "application/zip", archive, csvText, nil},
		{"windows zip alias", "application/x-zip-compressed", archive, csvText, nil},
		{"zip nested one folder", "application/zip", nested, csvText, nil},
		{"zip nested two folders", "application/zip", tooDeep, "", ErrArchiveEntryNotFound},
		{"zip without entry", "application/zip", missing, "", ErrArchiveEntryNotFound},
		{"sniffed zip", "application/octet-stream", archive, csvText, nil},
		{"sniffed csv", "", []byte(csvText), csvText, nil},
		{"corrupt zip", "application/zip", []byte("not a zip"), "", ErrInvalidArchive},
		{"unknown type passes through", "image/png", []byte("PNG"), "PNG", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Extract(context.Background(), File{Name: "upload", ContentType: tt.contentType, Data: tt.data})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Extract() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Extract() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Extract() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtract_EntryTooLarge(t *testing.T) {
	t.Parallel()

	archive := buildZip(t, map[string]string{
		ViewingActivityEntry: strings.Repeat("x", 2048),
	})
	_, err := NewExtractor(1024).Extract(context.Background(), File{ContentType: "application/zip", Data: archive})
	if !errors.Is(err, ErrArchiveEntryTooLarge) {
		t.Errorf("Extract() error = %v, want ErrArchiveEntryTooLarge", err)
	}
}

func TestExtract_UnknownTypeFailsInParser(t *testing.T) {
	t.Parallel()

	data, err := Extract(context.Background(), File{ContentType: "application/pdf", Data: []byte("%PDF-1.7")})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if _, err := Parse(context.Background(), data); !errors.Is(err, ErrInvalidCSVHeaders) {
		t.Errorf("Parse() error = %v, want ErrInvalidCSVHeaders", err)
	}
}

func TestExtract_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Extract(ctx, File{ContentType: "text/csv"}); !errors.Is(err, context.Canceled) {
		t.Errorf("Extract() error = %v, want context.Canceled", err)
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	csvText := exportCSV("Anna,2023-01-01 21:04:11,0:51:02,,The Irishman,,TV,,,DE")
	archive := buildZip(t, map[string]string{ViewingActivityEntry: string(csvText)})

	if err := afero.WriteFile(fs, "/exports/ViewingActivity.csv", csvText, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(fs, "/exports/netflix-report.zip", archive, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(fs, "/exports/download", archive, 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		path            string
		wantName        string
		wantContentType string
	}{
		{"/exports/ViewingActivity.csv", "ViewingActivity.csv", "text/csv"},
		{"/exports/netflix-report.zip", "netflix-report.zip", "application/zip"},
		{"/exports/download", "download", "application/zip"},
	}

	for _, tt := range tests {
		t.Run(tt.wantName, func(t *testing.T) {
			t.Parallel()
			f, err := LoadFile(fs, tt.path)
			if err != nil {
				t.Fatalf("LoadFile() error = %v", err)
			}
			if f.Name != tt.wantName || f.ContentType != tt.wantContentType {
				t.Errorf("LoadFile() = {%s %s}, want {%s %s}", f.Name, f.ContentType, tt.wantName, tt.wantContentType)
			}

			data, err := Extract(context.Background(), f)
			if err != nil {
				t.Fatalf("Extract() error = %v", err)
			}
			if !bytes.Equal(data, csvText) {
				t.Errorf("Extract() = %q", data)
			}
		})
	}

	if _, err := LoadFile(fs, "/exports/missing.csv"); err == nil {
		t.Error("expected error for a missing file")
	}
}
