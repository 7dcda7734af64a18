// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

/*
Package models defines the data structures shared across Viewstats.

Pipeline records:
  - Activity: one normalized viewing-history row (user, fulltitle, type, date, duration)
  - EnrichedActivity: all viewings of one movie or series, plus optional metadata
  - GenreListItem, SearchResult: catalogue vocabulary and search candidates

Chart projections:
  - CalendarChart, RollupChart, YearSummary, GenreChart, TitleRow, LastViewing

API envelope:
  - APIResponse, Metadata, APIError, HealthResponse
  - ImportSummary and DataStatus for the import endpoints

JSON field names of Activity and EnrichedActivity are the persisted format and
must stay stable across releases.
*/
package models
