package scraper

import (
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseRows_Fixture(t *testing.T) {
	data, err := os.ReadFile("../../testdata/fixtures/timetable.html")
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}

	rows, err := ParseRows(string(data))
	if err != nil {
		t.Fatalf("ParseRows failed: %v", err)
	}

	if len(rows) != 6 {
		t.Fatalf("expected 6 rows, got %d", len(rows))
	}

	for i, row := range rows {
		if row.Number == "" {
			t.Errorf("row %d: race number should not be empty", i)
		}
		if row.Trophy == "" {
			t.Errorf("row %d: trophy should not be empty", i)
		}
	}

	berks := rows[1].Berks
	if !strings.HasPrefix(berks, "S. Jansen") || !strings.HasSuffix(berks, "(NED)") || strings.Contains(berks, "\n") {
		t.Errorf("multi-line berks station = %q", berks)
	}
	if rows[3].RawTime != "02:15 (rescheduled)" {
		t.Errorf("row 4 raw time = %q", rows[3].RawTime)
	}
	if rows[5].Bucks != "" {
		t.Errorf("missing bucks cell should be empty, got %q", rows[5].Bucks)
	}

	if date := ParseRaceDate(string(data)); date != "Wednesday 2nd July" {
		t.Errorf("ParseRaceDate() = %q, want %q", date, "Wednesday 2nd July")
	}
}

func TestParse_Fixture(t *testing.T) {
	data, err := os.ReadFile("../../testdata/fixtures/timetable.html")
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}

	rows, date, err := Parse(string(data))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	want, err := ParseRows(string(data))
	if err != nil {
		t.Fatalf("ParseRows failed: %v", err)
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("Parse() rows mismatch (-want +got):\n%s", diff)
	}
	if date != "Wednesday 2nd July" {
		t.Errorf("Parse() date = %q, want %q", date, "Wednesday 2nd July")
	}
}
