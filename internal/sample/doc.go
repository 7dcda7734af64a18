// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

// Package sample embeds a small demonstration dataset.
//
// The dataset is a Netflix viewing export with three profiles plus a
// catalogue snapshot in English and German. Loading it runs the normal
// import pipeline with a StaticSource in place of the TMDB client, so the
// demo needs no API key and no network.
package sample
