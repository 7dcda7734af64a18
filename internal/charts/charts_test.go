// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

package charts

import (
	"slices"
	"testing"
	"time"

	"github.com/tomtom215/viewstats/internal/models"
)

func at(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
}

func activity(user string, date time.Time, seconds int64) models.Activity {
	return models.Activity{User: user, FullTitle: "Title", Type: models.MediaTypeMovie, Date: date, Duration: seconds}
}

// fixture spans two years; 2023-03-01 is a Wednesday and 2023-06-10 a Saturday.
func fixture() []models.Activity {
	return []models.Activity{
		activity("Anna", at(2023, 3, 1, 20, 0), 1800),
		activity("Anna", at(2023, 3, 1, 22, 0), 1830),
		activity("Ben", at(2023, 3, 2, 10, 0), 600),
		activity("Anna", at(2022, 12, 31, 23, 30), 3600),
		activity("Anna", at(2023, 6, 10, 21, 0), 3660),
	}
}

func TestCalendar(t *testing.T) {
	t.Parallel()

	chart := Calendar(fixture(), Options{})

	wantDays := []string{"2023-03-01", "2023-03-02", "2022-12-31", "2023-06-10"}
	var gotDays []string
	for _, d := range chart.Days {
		gotDays = append(gotDays, d.Day)
	}
	if !slices.Equal(gotDays, wantDays) {
		t.Fatalf("days = %v, want %v", gotDays, wantDays)
	}
	if chart.Days[0].Seconds != 3630 || chart.Days[0].Minutes != 61 {
		t.Errorf("2023-03-01 = %+v, want 3630s / 61min", chart.Days[0])
	}
	if !slices.Equal(chart.Years, []int{2023, 2022}) {
		t.Errorf("years = %v, want [2023 2022]", chart.Years)
	}
	if chart.SelectedYear != 2023 {
		t.Errorf("selected year = %d, want 2023", chart.SelectedYear)
	}
	// Both days round to 61 minutes; 2023-06-10 has the larger summed duration.
	if chart.MostPopularDay == nil || chart.MostPopularDay.Day != "2023-06-10" {
		t.Errorf("most popular day = %+v, want 2023-06-10", chart.MostPopularDay)
	}
}

func TestCalendar_MostPopularBySeconds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		activities []models.Activity
		want       string
	}{
		{
			"same rounded minutes",
			[]models.Activity{
				activity("Anna", at(2023, 1, 1, 20, 0), 60),
				activity("Anna", at(2023, 1, 2, 20, 0), 89),
			},
			"2023-01-02",
		},
		{
			"equal seconds keep the first day",
			[]models.Activity{
				activity("Anna", at(2023, 1, 1, 20, 0), 89),
				activity("Anna", at(2023, 1, 2, 20, 0), 89),
			},
			"2023-01-01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			chart := Calendar(tt.activities, Options{})
			if chart.MostPopularDay == nil || chart.MostPopularDay.Day != tt.want {
				t.Errorf("most popular day = %+v, want %s", chart.MostPopularDay, tt.want)
			}
		})
	}
}

func TestCalendar_Options(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		opts        Options
		wantYears   []int
		wantPopular string
	}{
		{"single user", Options{User: "Ben"}, []int{2023}, "2023-03-02"},
		{"all pseudo user", Options{User: AllUsers, Year: 2022}, []int{2023, 2022}, "2022-12-31"},
		{"time zone moves new year's eve", Options{Location: time.FixedZone("CET", 3600)}, []int{2023}, "2023-06-10"},
		{"unknown user", Options{User: "Nobody"}, []int{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			chart := Calendar(fixture(), tt.opts)
			if !slices.Equal(chart.Years, tt.wantYears) {
				t.Errorf("years = %v, want %v", chart.Years, tt.wantYears)
			}
			got := ""
			if chart.MostPopularDay != nil {
				got = chart.MostPopularDay.Day
			}
			if got != tt.wantPopular {
				t.Errorf("most popular = %q, want %q", got, tt.wantPopular)
			}
		})
	}
}

func TestCalendar_Empty(t *testing.T) {
	t.Parallel()

	chart := Calendar(nil, Options{})
	if chart.Days == nil || chart.Years == nil {
		t.Fatal("expected non-nil slices")
	}
	if chart.MostPopularDay != nil || chart.SelectedYear != 0 {
		t.Errorf("unexpected chart for empty input: %+v", chart)
	}
}

func bucketLabels(chart models.RollupChart) []string {
	out := make([]string, len(chart.Buckets))
	for i, b := range chart.Buckets {
		out[i] = b.Label
	}
	return out
}

func TestWeekdays(t *testing.T) {
	t.Parallel()

	chart := Weekdays(fixture(), Options{})

	if got, want := bucketLabels(chart), []string{"Wednesday", "Thursday", "Saturday"}; !slices.Equal(got, want) {
		t.Fatalf("buckets = %v, want %v", got, want)
	}
	if !slices.Equal(chart.Years, []int{2022, 2023}) || !slices.Equal(chart.ActiveYears, []int{2022, 2023}) {
		t.Errorf("years = %v active = %v", chart.Years, chart.ActiveYears)
	}

	saturday := chart.Buckets[2]
	if saturday.Index != 5 || saturday.Hours[2022] != 1 || saturday.Hours[2023] != 1 || saturday.Seconds != 7260 {
		t.Errorf("saturday = %+v", saturday)
	}
	if chart.Buckets[0].Hours[2022] != 0 || chart.Buckets[0].Hours[2023] != 1 {
		t.Errorf("wednesday = %+v", chart.Buckets[0])
	}
	if chart.MostPopular != "Saturday" {
		t.Errorf("most popular = %q, want Saturday", chart.MostPopular)
	}
}

func TestWeekdays_YearFilterAndLocale(t *testing.T) {
	t.Parallel()

	chart := Weekdays(fixture(), Options{Year: 2022, Locale: "de-DE"})

	if !slices.Equal(chart.ActiveYears, []int{2022}) {
		t.Errorf("active years = %v, want [2022]", chart.ActiveYears)
	}
	if got, want := bucketLabels(chart), []string{"Mittwoch", "Donnerstag", "Samstag"}; !slices.Equal(got, want) {
		t.Errorf("buckets = %v, want %v", got, want)
	}
	for _, b := range chart.Buckets {
		if _, ok := b.Hours[2023]; ok {
			t.Errorf("%s has an inactive year: %v", b.Label, b.Hours)
		}
	}
	if chart.MostPopular != "Samstag" {
		t.Errorf("most popular = %q, want Samstag", chart.MostPopular)
	}
}

func TestWeekdays_TieKeepsEarlierBucket(t *testing.T) {
	t.Parallel()

	// 2023-03-03 is a Friday, 2023-03-06 a Monday.
	chart := Weekdays([]models.Activity{
		activity("Anna", at(2023, 3, 3, 20, 0), 3600),
		activity("Anna", at(2023, 3, 6, 20, 0), 3600),
	}, Options{})

	if chart.MostPopular != "Monday" {
		t.Errorf("most popular = %q, want Monday", chart.MostPopular)
	}
}

func TestMonths(t *testing.T) {
	t.Parallel()

	chart := Months(fixture(), Options{Locale: "de"})

	if got, want := bucketLabels(chart), []string{"März", "Juni", "Dezember"}; !slices.Equal(got, want) {
		t.Fatalf("buckets = %v, want %v", got, want)
	}
	march := chart.Buckets[0]
	if march.Seconds != 4230 || march.Hours[2023] != 1 || march.Hours[2022] != 0 {
		t.Errorf("march = %+v", march)
	}
	if chart.MostPopular != "März" {
		t.Errorf("most popular = %q, want März", chart.MostPopular)
	}
}

func TestRollup_Empty(t *testing.T) {
	t.Parallel()

	for _, chart := range []models.RollupChart{Months(nil, Options{}), Weekdays(nil, Options{})} {
		if chart.Buckets == nil || chart.Years == nil {
			t.Error("expected non-nil slices")
		}
		if len(chart.Buckets) != 0 || chart.MostPopular != "" {
			t.Errorf("unexpected chart for empty input: %+v", chart)
		}
	}
}

func TestYears(t *testing.T) {
	t.Parallel()

	summary := Years(fixture(), Options{})

	if summary.TotalSeconds != 11490 || summary.Hours != 3 || summary.Days != 0 {
		t.Errorf("totals = %d s, %d h, %d d", summary.TotalSeconds, summary.Hours, summary.Days)
	}
	if summary.FirstWatched == nil || !summary.FirstWatched.Equal(at(2022, 12, 31, 23, 30)) {
		t.Errorf("first watched = %v", summary.FirstWatched)
	}
	if summary.FirstMonth != "December" || summary.FirstYear != 2022 {
		t.Errorf("first = %s %d", summary.FirstMonth, summary.FirstYear)
	}
	want := []models.YearHours{{Year: 2022, Hours: 1}, {Year: 2023, Hours: 2}}
	if !slices.Equal(summary.PerYear, want) {
		t.Errorf("per year = %v, want %v", summary.PerYear, want)
	}

	ben := Years(fixture(), Options{User: "Ben", Locale: "de"})
	if ben.TotalSeconds != 600 || ben.FirstMonth != "März" || len(ben.PerYear) != 1 {
		t.Errorf("ben = %+v", ben)
	}

	empty := Years(nil, Options{})
	if empty.FirstWatched != nil || empty.PerYear == nil || empty.TotalSeconds != 0 {
		t.Errorf("empty = %+v", empty)
	}
}

func TestDurationHelpers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		fn   func(int64) int64
		in   int64
		want int64
	}{
		{"hours half rounds up", HoursFromSeconds, 5400, 2},
		{"hours below half", HoursFromSeconds, 5399, 1},
		{"hours zero", HoursFromSeconds, 0, 0},
		{"minutes half", MinutesFromSeconds, 30, 1},
		{"minutes below half", MinutesFromSeconds, 29, 0},
		{"days half", DaysFromSeconds, 43200, 1},
		{"days", DaysFromSeconds, 200000, 2},
	}
	for _, tt := range tests {
		if got := tt.fn(tt.in); got != tt.want {
			t.Errorf("%s: got %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestMatchLocale(t *testing.T) {
	t.Parallel()

	tests := []struct {
		prefs []string
		want  string
	}{
		{nil, "en"},
		{[]string{""}, "en"},
		{[]string{"de"}, "de"},
		{[]string{"de-AT"}, "de"},
		{[]string{"en-GB"}, "en"},
		{[]string{"fr"}, "en"},
		{[]string{"fr-CH, de;q=0.5"}, "de"},
		{[]string{"", "de-DE,de;q=0.9,en;q=0.8"}, "de"},
		{[]string{"en", "de"}, "en"},
		{[]string{"not a tag!"}, "en"},
	}
	for _, tt := range tests {
		if got := MatchLocale(tt.prefs...); got != tt.want {
			t.Errorf("MatchLocale(%q) = %q, want %q", tt.prefs, got, tt.want)
		}
	}
}

func TestLabels(t *testing.T) {
	t.Parallel()

	if got := MonthLabels("de"); len(got) != 12 || got[2] != "März" {
		t.Errorf("MonthLabels(de) = %v", got)
	}
	if got := WeekdayLabels("en"); len(got) != 7 || got[0] != "Monday" || got[6] != "Sunday" {
		t.Errorf("WeekdayLabels(en) = %v", got)
	}
}

func TestFilterActivitiesAndUsers(t *testing.T) {
	t.Parallel()

	if got := FilterActivities(fixture(), Options{User: "Ben"}); len(got) != 1 || got[0].User != "Ben" {
		t.Errorf("FilterActivities(Ben) = %v", got)
	}
	if got := FilterActivities(fixture(), Options{User: AllUsers}); len(got) != 5 {
		t.Errorf("FilterActivities(all) returned %d", len(got))
	}
	if got := Users([]string{"Anna", "Ben"}); !slices.Equal(got, []string{"all", "Anna", "Ben"}) {
		t.Errorf("Users() = %v", got)
	}
	if got := Users(nil); !slices.Equal(got, []string{"all"}) {
		t.Errorf("Users(nil) = %v", got)
	}
}
