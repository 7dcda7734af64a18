// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

/*
Package ingest turns an uploaded Netflix export into normalized activities.

It has two stages:

  - Extract resolves the uploaded file to CSV text. CSV uploads pass through
    unchanged; ZIP uploads (the full Netflix data download) are opened and the
    CONTENT_INTERACTION/ViewingActivity.csv entry is read.
  - Parse validates the header line, converts each row into a models.Activity,
    drops trailers and other supplemental videos, and classifies titles as
    movies or series.

Both stages treat the batch as a unit: one malformed row fails the whole
upload, and the returned error wraps one of the package sentinels so the API
layer can map it to an error code.

Usage:

	csv, err := ingest.Extract(ctx, ingest.File{Name: name, ContentType: ct, Data: data})
	if err != nil {
		return err
	}
	activities, stats, err := ingest.ParseWithStats(ctx, csv)

Local exports are read through an afero filesystem with LoadFile, which lets
tests run against afero.NewMemMapFs.
*/
package ingest
