// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

/*
Package store persists the derived viewing records in an embedded BadgerDB.

Four records make up a dataset and are always written and deleted together:

	MY_DATA     []models.Activity
	MY_MOVIES   []models.EnrichedActivity
	MY_SERIES   []models.EnrichedActivity
	USERLIST    []string

The summary of the last import is kept under IMPORT_STATS. Values are JSON
encoded with goccy/go-json so the layout stays readable with badger's CLI
tools.

A dataset is present only when all four records exist. SaveAll and DeleteAll
run in a single read-write transaction, so readers never observe a mix of two
imports.

The store can run on disk or fully in memory (storage.in_memory), the latter
being what tests and throwaway deployments use.

CachedStore wraps a Store and keeps decoded records in an internal/cache TTL
cache (storage.cache_ttl). Writes through the wrapper advance a generation
that is part of every cache key, so a read that races a write never caches
records of the replaced dataset.
*/
package store
