package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/pfrederiksen/henley-schedule/internal/calendar"
	"github.com/pfrederiksen/henley-schedule/internal/filter"
	"github.com/pfrederiksen/henley-schedule/internal/timetable"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatICS  OutputFormat = "ics"
)

const watchLiveURL = "https://www.youtube.com/results?search_query=Henley+royal+regatta+live"

// Column positions in the race table
const (
	colNumber = iota
	colGBTime
	colLocalTime
	colBerks
	colBucks
	colTrophy
	colBoat
)

// OutputResult contains data to be output
type OutputResult struct {
	RaceDate  string                 `json:"race_date,omitempty"`
	GMTOffset int                    `json:"gmt_offset"`
	Filter    filter.Criteria        `json:"filter"`
	Races     []filter.Match         `json:"races"`
	RaceCount int                    `json:"race_count"`
	NoRows    bool                   `json:"no_rows"`
	Dropped   []timetable.DroppedRow `json:"dropped,omitempty"`

	// RaceDay and Generated are only used by the ics format
	RaceDay   time.Time `json:"-"`
	Generated time.Time `json:"-"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, useColor bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, useColor)
	case FormatICS:
		return writeICS(w, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	if result.Races == nil {
		result.Races = []filter.Match{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeICS outputs the races as calendar events
func writeICS(w io.Writer, result *OutputResult) error {
	if result.RaceDay.IsZero() {
		return fmt.Errorf("race date unknown (use --date YYYY-MM-DD)")
	}
	ics, err := calendar.GenerateICS(result.RaceDay, result.Races, result.Generated)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, ics)
	return err
}

// writeText outputs results as a human-readable table
func writeText(w io.Writer, result *OutputResult, useColor bool) error {
	if result.RaceDate != "" {
		fmt.Fprintf(w, "Race Schedule for %s\n\n", result.RaceDate)
	}

	if result.NoRows {
		fmt.Fprintln(w, "No race elements found.")
		return nil
	}

	if result.RaceCount == 0 {
		fmt.Fprintln(w, "No matching races found.")
		return nil
	}

	headers := []string{
		"Race #",
		"GB time",
		"GMT " + timetable.OffsetLabel(result.GMTOffset),
		"Berks station",
		"Bucks station",
		"Trophy",
		"Boat",
	}

	rows := make([][]string, 0, len(result.Races))
	for _, m := range result.Races {
		r := m.Record
		rows = append(rows, []string{r.Number, r.GBTime, r.LocalTime, r.Berks, r.Bucks, r.Trophy, r.BoatClass})
	}

	writeColumns(w, headers, rows, newStyler(result.Races, useColor))

	fmt.Fprintf(w, "\nTotal: %d races\n", result.RaceCount)
	if len(result.Dropped) > 0 {
		fmt.Fprintf(w, "Skipped %d races with unreadable times\n", len(result.Dropped))
	}
	fmt.Fprintf(w, "\nWatch live: %s\n", watchLiveURL)

	return nil
}

// styler decorates an already padded cell
type styler func(row, col int, cell string) string

// newStyler bolds crew-matched stations and colors the local time column
func newStyler(matches []filter.Match, useColor bool) styler {
	highlight := color.New(color.Bold, color.FgYellow)
	local := color.New(color.FgGreen)
	header := color.New(color.Bold, color.FgCyan)
	for _, c := range []*color.Color{highlight, local, header} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return func(row, col int, cell string) string {
		if row < 0 {
			return header.Sprint(cell)
		}
		hl := matches[row].Highlight
		switch {
		case col == colLocalTime:
			return local.Sprint(cell)
		case col == colBerks && hl.Berks, col == colBucks && hl.Bucks:
			return highlight.Sprint(cell)
		}
		return cell
	}
}

// writeColumns prints left-aligned columns. Cells are padded before styling so
// escape codes do not disturb the alignment. Header cells use row -1.
func writeColumns(w io.Writer, headers []string, rows [][]string, style styler) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if n := utf8.RuneCountInString(cell); i < len(widths) && n > widths[i] {
				widths[i] = n
			}
		}
	}

	line := func(rowIdx int, cells []string) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			padded := cell
			if i < len(cells)-1 {
				padded = cell + strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell))
			}
			if style != nil {
				padded = style(rowIdx, i, padded)
			}
			parts[i] = padded
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
	}

	line(-1, headers)

	rule := make([]string, len(headers))
	for i := range headers {
		rule[i] = strings.Repeat("-", widths[i])
	}
	fmt.Fprintln(w, strings.Join(rule, "  "))

	for i, row := range rows {
		line(i, row)
	}
}

func joinComma(items []string) string {
	return strings.Join(items, ", ")
}
