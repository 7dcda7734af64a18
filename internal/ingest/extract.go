// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

package ingest

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/afero"

	"github.com/tomtom215/viewstats/internal/logging"
)

// ViewingActivityEntry is the archive path of the viewing history inside the
// Netflix data download.
const ViewingActivityEntry = "CONTENT_INTERACTION/ViewingActivity.csv"

// DefaultMaxEntryBytes caps the uncompressed size of the archive entry.
const DefaultMaxEntryBytes int64 = 256 << 20

// File is an uploaded export.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

type fileKind int

const (
	kindOther fileKind = iota
	kindCSV
	kindZip
)

var csvTypes = map[string]bool{
	"text/csv":                 true,
	"application/csv":          true,
	"text/plain":               true,
	"application/vnd.ms-excel": true,
}

var zipTypes = map[string]bool{
	"application/zip":              true,
	"application/x-zip-compressed": true,
	"application/x-zip":            true,
}

// Extractor resolves uploads to CSV text.
type Extractor struct {
	maxEntryBytes int64
}

// NewExtractor creates an Extractor. A non-positive limit uses DefaultMaxEntryBytes.
func NewExtractor(maxEntryBytes int64) *Extractor {
	if maxEntryBytes <= 0 {
		maxEntryBytes = DefaultMaxEntryBytes
	}
	return &Extractor{maxEntryBytes: maxEntryBytes}
}

// Extract resolves f with the default entry limit.
func Extract(ctx context.Context, f File) ([]byte, error) {
	return NewExtractor(DefaultMaxEntryBytes).Extract(ctx, f)
}

// Extract returns the CSV text of f.
//
// CSV types are returned unchanged. ZIP types are opened and the viewing
// activity entry is read. Unknown types are also returned unchanged, so the
// parser reports them as an invalid export.
func (e *Extractor) Extract(ctx context.Context, f File) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	kind := classify(f.ContentType, f.Data)
	logging.Ctx(ctx).Debug().
		Str("file", logging.SanitizeValue(f.Name)).
		Str("content_type", f.ContentType).
		Int("bytes", len(f.Data)).
		Bool("zip", kind == kindZip).
		Msg("Extracting upload")

	if kind != kindZip {
		return f.Data, nil
	}
	return e.extractZip(ctx, f.Data)
}

func (e *Extractor) extractZip(ctx context.Context, data []byte) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArchive, err)
	}

	entry := findEntry(zr.File)
	if entry == nil {
		return nil, ErrArchiveEntryNotFound
	}
	if entry.UncompressedSize64 > uint64(e.maxEntryBytes) {
		return nil, fmt.Errorf("%w: %s is %d bytes (limit %d)",
			ErrArchiveEntryTooLarge, entry.Name, entry.UncompressedSize64, e.maxEntryBytes)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rc, err := entry.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrInvalidArchive, entry.Name, err)
	}
	defer rc.Close()

	// The header size can lie, so the read itself is bounded too.
	out, err := io.ReadAll(io.LimitReader(rc, e.maxEntryBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrInvalidArchive, entry.Name, err)
	}
	if int64(len(out)) > e.maxEntryBytes {
		return nil, fmt.Errorf("%w: %s (limit %d)", ErrArchiveEntryTooLarge, entry.Name, e.maxEntryBytes)
	}
	return out, nil
}

// findEntry returns the viewing activity entry, preferring the canonical path
// over a copy nested under one wrapping folder.
func findEntry(files []*zip.File) *zip.File {
	var nested *zip.File
	for _, f := range files {
		if f.FileInfo().IsDir() {
			continue
		}
		name := strings.TrimPrefix(f.Name, "./")
		if name == ViewingActivityEntry {
			return f
		}
		if nested == nil && strings.Count(name, "/") == 2 && strings.HasSuffix(name, "/"+ViewingActivityEntry) {
			nested = f
		}
	}
	return nested
}

// classify maps the declared content type to a file kind, sniffing the bytes
// when the client did not declare anything useful.
func classify(contentType string, data []byte) fileKind {
	mediaType := strings.ToLower(strings.TrimSpace(contentType))
	if parsed, _, err := mime.ParseMediaType(contentType); err == nil {
		mediaType = parsed
	}

	switch {
	case csvTypes[mediaType]:
		return kindCSV
	case zipTypes[mediaType]:
		return kindZip
	case mediaType == "" || mediaType == "application/octet-stream":
		return sniff(data)
	default:
		return kindOther
	}
}

func sniff(data []byte) fileKind {
	for m := mimetype.Detect(data); m != nil; m = m.Parent() {
		switch {
		case m.Is("application/zip"):
			return kindZip
		case m.Is("text/csv"), m.Is("text/plain"):
			return kindCSV
		}
	}
	return kindOther
}

// LoadFile reads a local export from fsys. The content type comes from the
// file extension, falling back to sniffing.
func LoadFile(fsys afero.Fs, path string) (File, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return File{}, fmt.Errorf("read export %s: %w", path, err)
	}

	var contentType string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		contentType = "text/csv"
	case ".zip":
		contentType = "application/zip"
	default:
		contentType = mimetype.Detect(data).String()
	}

	return File{
		Name:        filepath.Base(path),
		ContentType: contentType,
		Data:        data,
	}, nil
}
