// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

/*
Package charts projects activities and aggregates into chart-ready shapes.

Every projector is a pure function of its input and an Options value:

	opts := charts.Options{User: "Anna", Year: 2023, Locale: "de", Location: loc}
	calendar := charts.Calendar(activities, opts)
	months := charts.Months(activities, opts)
	genres := charts.Genres(movies, opts)

There is no package state. Projectors return empty, non-nil slices when nothing
matches, so results encode as [] rather than null.

Locales are matched with golang.org/x/text/language; English and German labels
are built in. Time zone bucketing uses Options.Location, UTC by default.
*/
package charts
