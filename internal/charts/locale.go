// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

package charts

import (
	"golang.org/x/text/language"
)

// Supported chart locales.
const (
	LocaleEnglish = "en"
	LocaleGerman  = "de"

	DefaultLocale = LocaleEnglish
)

var (
	supportedTags = []language.Tag{language.English, language.German}
	supportedCode = []string{LocaleEnglish, LocaleGerman}
	localeMatcher = language.NewMatcher(supportedTags)
)

var monthLabels = map[string][]string{
	LocaleEnglish: {
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	},
	LocaleGerman: {
		"Januar", "Februar", "März", "April", "Mai", "Juni",
		"Juli", "August", "September", "Oktober", "November", "Dezember",
	},
}

// Weeks start on Monday.
var weekdayLabels = map[string][]string{
	LocaleEnglish: {"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"},
	LocaleGerman:  {"Montag", "Dienstag", "Mittwoch", "Donnerstag", "Freitag", "Samstag", "Sonntag"},
}

// MatchLocale picks the supported locale that best fits the given
// preferences. Each preference may be a tag ("de-AT") or an Accept-Language
// header value ("de-CH,de;q=0.9,en;q=0.8"). Earlier arguments win.
func MatchLocale(preferences ...string) string {
	for _, pref := range preferences {
		if pref == "" {
			continue
		}
		tags, _, err := language.ParseAcceptLanguage(pref)
		if err != nil || len(tags) == 0 {
			continue
		}
		_, idx, confidence := localeMatcher.Match(tags...)
		if confidence != language.No {
			return supportedCode[idx]
		}
	}
	return DefaultLocale
}

// MonthLabels returns the twelve month names for locale, January first.
func MonthLabels(locale string) []string {
	return monthLabels[MatchLocale(locale)]
}

// WeekdayLabels returns the seven weekday names for locale, Monday first.
func WeekdayLabels(locale string) []string {
	return weekdayLabels[MatchLocale(locale)]
}
