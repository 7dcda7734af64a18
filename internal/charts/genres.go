// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

package charts

import (
	"fmt"
	"slices"

	"github.com/tomtom215/viewstats/internal/models"
)

// Genres counts how many of the user's titles carry each genre.
//
// Genres are sorted by count, most frequent first; equal counts keep
// first-seen order. Fill is the chart color of the rank. ActiveIndexes lists
// every genre sharing the top count. ItemCount counts the user's titles,
// including those without genres.
func Genres(items []models.EnrichedActivity, opts Options) models.GenreChart {
	chart := models.GenreChart{
		Genres:        make([]models.GenreCount, 0),
		ActiveIndexes: make([]int, 0),
	}
	index := make(map[string]int)

	for i := range items {
		item := &items[i]
		if !opts.matchesUser(item.User) {
			continue
		}
		chart.ItemCount++
		for _, genre := range item.Genres {
			if genre == "" {
				continue
			}
			if j, ok := index[genre]; ok {
				chart.Genres[j].Count++
				continue
			}
			index[genre] = len(chart.Genres)
			chart.Genres = append(chart.Genres, models.GenreCount{Genre: genre, Count: 1})
		}
	}

	slices.SortStableFunc(chart.Genres, func(a, b models.GenreCount) int { return b.Count - a.Count })

	for i := range chart.Genres {
		chart.Genres[i].Fill = fmt.Sprintf("hsl(var(--chart-%d))", i+1)
		if chart.Genres[i].Count == chart.Genres[0].Count {
			chart.ActiveIndexes = append(chart.ActiveIndexes, i)
		}
	}
	return chart
}

// GenreOptions returns the distinct genres of the user's titles, sorted.
func GenreOptions(items []models.EnrichedActivity, opts Options) []string {
	out := make([]string, 0)
	for i := range items {
		if !opts.matchesUser(items[i].User) {
			continue
		}
		for _, genre := range items[i].Genres {
			if genre != "" && !slices.Contains(out, genre) {
				out = append(out, genre)
			}
		}
	}
	slices.Sort(out)
	return out
}
