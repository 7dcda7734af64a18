// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

package models

import (
	"time"
)

// MediaType classifies an Activity.
type MediaType string

const (
	MediaTypeMovie  MediaType = "movie"
	MediaTypeSeries MediaType = "series"
)

// CatalogType returns the metadata catalogue segment for the media type
// ("movie" or "tv").
func (m MediaType) CatalogType() string {
	if m == MediaTypeSeries {
		return "tv"
	}
	return "movie"
}

// Activity is one normalized viewing-history row.
//
// Example:
//
//	{
//	  "user": "Anna",
//	  "fulltitle": "Dark: Season 1: Secrets (Episode 1)",
//	  "type": "series",
//	  "date": "2023-01-01T21:04:11Z",
//	  "duration": 3062
//	}
type Activity struct {
	User      string    `json:"user" validate:"required,notblank"`
	FullTitle string    `json:"fulltitle"`
	Type      MediaType `json:"type" validate:"mediatype"`
	Date      time.Time `json:"date" validate:"required"`
	// Duration is whole seconds.
	Duration int64 `json:"duration" validate:"gte=0"`
}

// EnrichedActivity aggregates every viewing of one movie or one series.
// Genres, Image, Poster, Summary and Results are only set by enrichment.
type EnrichedActivity struct {
	User     string      `json:"user"`
	Title    string      `json:"title"`
	Date     []time.Time `json:"date"`
	Duration int64       `json:"duration"`
	Genres   []string    `json:"genres,omitempty"`
	Image    string      `json:"image,omitempty"`
	Poster   string      `json:"poster,omitempty"`
	// Summary is nil until a lookup succeeds; an empty synopsis is kept as "".
	Summary *string        `json:"summary,omitempty"`
	Results []SearchResult `json:"results,omitempty"`
}

// HasGenres reports whether enrichment attached at least one genre.
func (e *EnrichedActivity) HasGenres() bool {
	return len(e.Genres) > 0
}

// HasGenre reports whether the item carries the named genre.
func (e *EnrichedActivity) HasGenre(name string) bool {
	for _, g := range e.Genres {
		if g == name {
			return true
		}
	}
	return false
}

// GenreListItem is one entry of a catalogue genre vocabulary.
type GenreListItem struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// SearchResult is one candidate returned by a title search.
// Movies carry Title/ReleaseDate, series carry Name/FirstAirDate.
type SearchResult struct {
	ID               int     `json:"id"`
	Title            string  `json:"title,omitempty"`
	Name             string  `json:"name,omitempty"`
	OriginalLanguage string  `json:"original_language,omitempty"`
	GenreIDs         []int   `json:"genre_ids"`
	BackdropPath     string  `json:"backdrop_path,omitempty"`
	PosterPath       string  `json:"poster_path,omitempty"`
	Overview         string  `json:"overview"`
	VoteCount        int     `json:"vote_count"`
	VoteAverage      float64 `json:"vote_average,omitempty"`
	Popularity       float64 `json:"popularity,omitempty"`
	ReleaseDate      string  `json:"release_date,omitempty"`
	FirstAirDate     string  `json:"first_air_date,omitempty"`
}
