package race

import (
	"fmt"
	"unicode/utf8"

	"github.com/pfrederiksen/henley-schedule/internal/trophy"
)

// Row holds the raw text fields of one timetable row
type Row struct {
	Number  string
	RawTime string
	Trophy  string
	Berks   string
	Bucks   string
}

// Record represents a single race on the timetable
type Record struct {
	Number    string `json:"number"`
	GBTime    string `json:"gb_time"`
	LocalTime string `json:"local_time"`
	Berks     string `json:"berks_station"`
	Bucks     string `json:"bucks_station"`
	Trophy    string `json:"trophy"`
	BoatClass string `json:"boat"`
}

// Build turns a raw row into a Record. The raw time is cut to its first five
// characters since the page sometimes appends text after the clock value.
func Build(row Row, offset int, table trophy.Table) (Record, error) {
	gb, local, err := NormalizeTime(truncate(row.RawTime, 5), offset)
	if err != nil {
		return Record{}, fmt.Errorf("race %s: %w", row.Number, err)
	}

	return Record{
		Number:    row.Number,
		GBTime:    gb,
		LocalTime: local,
		Berks:     row.Berks,
		Bucks:     row.Bucks,
		Trophy:    row.Trophy,
		BoatClass: table.Resolve(row.Trophy),
	}, nil
}

// truncate keeps the first n runes of s
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
