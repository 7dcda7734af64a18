// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

package charts

import (
	"time"

	"github.com/tomtom215/viewstats/internal/models"
)

// AllUsers selects every profile.
const AllUsers = "all"

// DefaultTopSeries is the top series list length when none is requested.
const DefaultTopSeries = 10

// Options carries the filters every projector takes explicitly.
type Options struct {
	// User filters to one profile. "" and AllUsers mean no filter.
	User string
	// Year selects a single year where a projector supports it. 0 means all.
	Year int
	// Locale picks chart labels. Anything that does not match German is English.
	Locale string
	// Location buckets timestamps into days, weekdays and years. nil means UTC.
	Location *time.Location
}

func (o Options) location() *time.Location {
	if o.Location == nil {
		return time.UTC
	}
	return o.Location
}

func (o Options) allUsers() bool {
	return o.User == "" || o.User == AllUsers
}

func (o Options) matchesUser(user string) bool {
	return o.allUsers() || o.User == user
}

// FilterActivities returns the activities of opts.User in input order.
func FilterActivities(activities []models.Activity, opts Options) []models.Activity {
	out := make([]models.Activity, 0, len(activities))
	for _, a := range activities {
		if opts.matchesUser(a.User) {
			out = append(out, a)
		}
	}
	return out
}

// Users returns the user selector entries: AllUsers followed by the stored list.
func Users(stored []string) []string {
	out := make([]string, 0, len(stored)+1)
	out = append(out, AllUsers)
	for _, u := range stored {
		if u != AllUsers {
			out = append(out, u)
		}
	}
	return out
}
