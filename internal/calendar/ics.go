// Package calendar exports races as an iCalendar (.ics) file.
//
// Each race becomes one event starting at its GB time on the race day, so calendar
// applications show it in the viewer's own zone without using the GMT offset.
package calendar

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/pfrederiksen/henley-schedule/internal/filter"
)

// RaceDuration is the length given to each race event
const RaceDuration = 10 * time.Minute

const timetableURL = "https://www.hrr.co.uk/race-timetable/"

// GenerateICS generates an iCalendar file with one event per race.
// raceDay supplies the date; now is written as the DTSTAMP.
func GenerateICS(raceDay time.Time, matches []filter.Match, now time.Time) (string, error) {
	london, err := time.LoadLocation("Europe/London")
	if err != nil {
		return "", fmt.Errorf("loading UK time zone: %w", err)
	}

	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//Henley Schedule//henley-schedule//EN\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")

	for _, m := range matches {
		r := m.Record

		var hour, minute int
		if _, err := fmt.Sscanf(r.GBTime, "%d:%d", &hour, &minute); err != nil {
			return "", fmt.Errorf("race %s: bad time %q: %w", r.Number, r.GBTime, err)
		}
		start := time.Date(raceDay.Year(), raceDay.Month(), raceDay.Day(), hour, minute, 0, 0, london)

		ics.WriteString("BEGIN:VEVENT\r\n")
		ics.WriteString(fmt.Sprintf("UID:race-%s-%s@hrr.co.uk\r\n", uidPart(r.Number), raceDay.Format("20060102")))
		ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", formatICSTime(now)))
		ics.WriteString(fmt.Sprintf("DTSTART:%s\r\n", formatICSTime(start)))
		ics.WriteString(fmt.Sprintf("DTEND:%s\r\n", formatICSTime(start.Add(RaceDuration))))

		summary := fmt.Sprintf("Race %s: %s v %s", r.Number, r.Berks, r.Bucks)
		ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(summary)))

		description := fmt.Sprintf("%s (%s)\nBerks: %s\nBucks: %s", r.Trophy, r.BoatClass, r.Berks, r.Bucks)
		ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(description)))

		ics.WriteString("LOCATION:Henley-on-Thames\r\n")
		ics.WriteString(fmt.Sprintf("URL:%s\r\n", timetableURL))
		ics.WriteString("STATUS:CONFIRMED\r\n")
		ics.WriteString("TRANSP:TRANSPARENT\r\n")
		ics.WriteString("END:VEVENT\r\n")
	}

	ics.WriteString("END:VCALENDAR\r\n")

	return ics.String(), nil
}

// formatICSTime formats a time.Time as an iCalendar datetime string
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// escapeICS escapes special characters for iCalendar format
func escapeICS(s string) string {
	// RFC 5545 text escaping
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}

// uidPart keeps letters and digits of a race number for use in a UID
func uidPart(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "x"
	}
	return b.String()
}
