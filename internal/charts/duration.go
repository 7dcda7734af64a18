// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

package charts

import "math"

// HoursFromSeconds rounds to the nearest whole hour.
func HoursFromSeconds(seconds int64) int64 {
	return roundDiv(seconds, 3600)
}

// MinutesFromSeconds rounds to the nearest whole minute.
func MinutesFromSeconds(seconds int64) int64 {
	return roundDiv(seconds, 60)
}

// DaysFromSeconds rounds to the nearest whole day.
func DaysFromSeconds(seconds int64) int64 {
	return roundDiv(seconds, 86400)
}

// roundDiv rounds halves up, toward positive infinity.
func roundDiv(n, d int64) int64 {
	return int64(math.Floor(float64(n)/float64(d) + 0.5))
}
