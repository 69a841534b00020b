package timetable

import (
	"errors"
	"fmt"

	"github.com/pfrederiksen/henley-schedule/internal/filter"
	"github.com/pfrederiksen/henley-schedule/internal/race"
	"github.com/pfrederiksen/henley-schedule/internal/scraper"
	"github.com/pfrederiksen/henley-schedule/internal/trophy"
)

const (
	MinOffset = -12
	MaxOffset = 14
)

var (
	// ErrInvalidOffset is returned for GMT offsets outside [-12, 14]
	ErrInvalidOffset = errors.New("invalid GMT offset")

	// ErrNoRows marks a page without any timetable rows. Extract does not return
	// it; callers that treat an empty page as a failure can.
	ErrNoRows = errors.New("no timetable rows found")
)

// DroppedRow is a row left out of the timetable because its time was unreadable
type DroppedRow struct {
	Index  int    `json:"index"`
	Number string `json:"number"`
	Reason string `json:"reason"`
	Err    error  `json:"-"`
}

// Timetable is the result of extracting one page
type Timetable struct {
	RaceDate string        `json:"race_date,omitempty"`
	Records  []race.Record `json:"races"`
	NoRows   bool          `json:"no_rows,omitempty"`
	Dropped  []DroppedRow  `json:"dropped,omitempty"`
}

// Extractor converts timetable markup into race records
type Extractor struct {
	offset int
	table  trophy.Table
}

// New creates an Extractor for the given GMT offset and trophy table
func New(offset int, table trophy.Table) (*Extractor, error) {
	if err := ValidateOffset(offset); err != nil {
		return nil, err
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("%w: table is empty", trophy.ErrConfigLoad)
	}

	return &Extractor{
		offset: offset,
		table:  table,
	}, nil
}

// ValidateOffset checks that offset is a real GMT offset
func ValidateOffset(offset int) error {
	if offset < MinOffset || offset > MaxOffset {
		return fmt.Errorf("%w: %d (must be between %d and +%d)", ErrInvalidOffset, offset, MinOffset, MaxOffset)
	}
	return nil
}

// Offset returns the GMT offset local times are shifted to
func (e *Extractor) Offset() int {
	return e.offset
}

// Extract parses the page markup into a Timetable. Rows keep page order. A row
// with an unreadable time is dropped and listed in Dropped. A page with no rows
// returns an empty Timetable with NoRows set.
func (e *Extractor) Extract(markup string) (*Timetable, error) {
	rows, raceDate, err := scraper.Parse(markup)
	if err != nil {
		return nil, fmt.Errorf("extracting rows: %w", err)
	}

	tt := &Timetable{
		RaceDate: raceDate,
		Records:  make([]race.Record, 0, len(rows)),
	}

	if len(rows) == 0 {
		tt.NoRows = true
		return tt, nil
	}

	for i, row := range rows {
		rec, err := race.Build(row, e.offset, e.table)
		if err != nil {
			tt.Dropped = append(tt.Dropped, DroppedRow{Index: i, Number: row.Number, Reason: err.Error(), Err: err})
			continue
		}
		tt.Records = append(tt.Records, rec)
	}

	return tt, nil
}

// Filter selects the records matching c, keeping their order
func Filter(records []race.Record, c filter.Criteria) []filter.Match {
	return filter.Apply(records, c)
}

// OffsetLabel formats an offset for column headers: "+1", "0", "-5"
func OffsetLabel(offset int) string {
	if offset > 0 {
		return fmt.Sprintf("+%d", offset)
	}
	return fmt.Sprintf("%d", offset)
}
