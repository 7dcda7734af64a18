// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

package sample

import (
	"context"
	"embed"
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/viewstats/internal/ingest"
	"github.com/tomtom215/viewstats/internal/models"
)

//go:embed data
var files embed.FS

const (
	exportPath   = "data/ViewingActivity.csv"
	exportName   = "ViewingActivity.csv"
	fallbackLang = "en"
)

// Languages lists the catalogue snapshots that are embedded.
var Languages = []string{"en", "de"}

// File returns the embedded viewing export.
func File() (ingest.File, error) {
	data, err := files.ReadFile(exportPath)
	if err != nil {
		return ingest.File{}, fmt.Errorf("read sample export: %w", err)
	}
	return ingest.File{Name: exportName, ContentType: "text/csv", Data: data}, nil
}

// catalogue is the on-disk shape of metadata_<lang>.json, keyed by catalogue
// type ("movie" or "tv").
type catalogue struct {
	Genres  map[string][]models.GenreListItem           `json:"genres"`
	Results map[string]map[string][]models.SearchResult `json:"results"`
}

// StaticSource answers metadata lookups from an embedded catalogue snapshot.
type StaticSource struct {
	lang string
	cat  catalogue
}

// Source loads the catalogue snapshot for lang. Languages without a
// snapshot fall back to English.
func Source(lang string) (*StaticSource, error) {
	lang = normalize(lang)
	data, err := files.ReadFile("data/metadata_" + lang + ".json")
	if err != nil {
		return nil, fmt.Errorf("read sample catalogue %s: %w", lang, err)
	}

	var cat catalogue
	if err := json.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("decode sample catalogue %s: %w", lang, err)
	}
	return &StaticSource{lang: lang, cat: cat}, nil
}

func normalize(lang string) string {
	base, _, _ := strings.Cut(strings.ToLower(lang), "-")
	for _, l := range Languages {
		if base == l {
			return l
		}
	}
	return fallbackLang
}

// Language returns the snapshot language actually in use.
func (s *StaticSource) Language() string {
	return s.lang
}

// HasCredential always reports true; the snapshot needs no key.
func (s *StaticSource) HasCredential() bool {
	return true
}

// GenreList returns the genre vocabulary of the media type.
func (s *StaticSource) GenreList(ctx context.Context, media models.MediaType, _ string) ([]models.GenreListItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.cat.Genres[media.CatalogType()], nil
}

// Search returns the snapshot results for an exact title. Unknown titles
// yield no results.
func (s *StaticSource) Search(ctx context.Context, media models.MediaType, query, _ string) ([]models.SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.cat.Results[media.CatalogType()][query], nil
}
