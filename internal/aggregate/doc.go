// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

// Package aggregate groups parsed activities into per-title movie and series
// records and derives the profile list of an import.
package aggregate
