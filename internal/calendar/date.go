package calendar

import (
	"regexp"
	"strings"
	"time"
)

var (
	weekdayPrefix = regexp.MustCompile(`(?i)^(mon|tue|wed|thu|fri|sat|sun)[a-z]*,?\s+`)
	ordinalSuffix = regexp.MustCompile(`(?i)\b(\d{1,2})(st|nd|rd|th)\b`)
)

// ParseRaceDay parses the timetable header date, such as "Wednesday 2nd July".
// Dates without a year take the year of now. Returns the zero time when the text
// is not a recognisable date.
// Supports formats: "Wednesday 2nd July", "2 July 2026", "Wed 2 Jul", "2026-07-02"
func ParseRaceDay(text string, now time.Time) time.Time {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}
	}

	if t, err := time.Parse("2006-01-02", text); err == nil {
		return t
	}

	text = weekdayPrefix.ReplaceAllString(text, "")
	text = ordinalSuffix.ReplaceAllString(text, "$1")
	text = strings.Join(strings.Fields(text), " ")

	for _, layout := range []string{"2 January 2006", "2 Jan 2006"} {
		if t, err := time.Parse(layout, text); err == nil {
			return t
		}
	}

	for _, layout := range []string{"2 January", "2 Jan"} {
		if t, err := time.Parse(layout, text); err == nil {
			return time.Date(now.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		}
	}

	return time.Time{}
}
