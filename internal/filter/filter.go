// Package filter selects the races to display from an extracted timetable.
//
// Races can be narrowed down by:
//   - Trophy (case-insensitive, exact name)
//   - Boat class (case-insensitive, exact code such as "M8+")
//   - Crew (case-insensitive substring of either station, any of several names)
//
// Crew matches are reported per station as a Highlight so the presenter can style
// the matching station without the record text being altered.
//
// Example usage:
//
//	c := filter.Criteria{Crew: []string{"NED", "Laga"}, Boat: "M8+"}
//	for _, m := range filter.Apply(records, c) {
//	    fmt.Println(m.Record.Number, m.Highlight.Berks, m.Highlight.Bucks)
//	}
package filter

import (
	"fmt"
	"strings"

	"github.com/pfrederiksen/henley-schedule/internal/race"
)

// Criteria represents race filtering criteria
type Criteria struct {
	// Crew names matched as substrings of either station. Empty matches every race.
	Crew []string `json:"crew,omitempty" yaml:"crew,omitempty"`

	// Boat class, exact match ignoring case
	Boat string `json:"boat,omitempty" yaml:"boat,omitempty"`

	// Trophy name, exact match ignoring case
	Trophy string `json:"trophy,omitempty" yaml:"trophy,omitempty"`
}

// Highlight marks which stations matched a crew name
type Highlight struct {
	Berks bool `json:"berks"`
	Bucks bool `json:"bucks"`
}

// Match is a race selected by Apply
type Match struct {
	Record    race.Record `json:"race"`
	Highlight Highlight   `json:"highlight"`
}

// IsEmpty reports whether the criteria select every race
func (c Criteria) IsEmpty() bool {
	return c.Trophy == "" && c.Boat == "" && len(crewNames(c.Crew)) == 0
}

// Match checks a single record. Trophy and boat are checked first; a record that
// passes them is then kept if any crew name occurs in either station.
func (c Criteria) Match(r race.Record) (Highlight, bool) {
	var hl Highlight

	if c.Trophy != "" && !strings.EqualFold(c.Trophy, r.Trophy) {
		return hl, false
	}

	if c.Boat != "" && !strings.EqualFold(c.Boat, r.BoatClass) {
		return hl, false
	}

	names := crewNames(c.Crew)
	if len(names) == 0 {
		return hl, true
	}

	berks := strings.ToLower(r.Berks)
	bucks := strings.ToLower(r.Bucks)
	for _, name := range names {
		term := strings.ToLower(name)
		if strings.Contains(berks, term) {
			hl.Berks = true
		}
		if strings.Contains(bucks, term) {
			hl.Bucks = true
		}
	}

	return hl, hl.Berks || hl.Bucks
}

// Apply returns the matching records in their original order
func Apply(records []race.Record, c Criteria) []Match {
	matches := make([]Match, 0, len(records))
	for _, r := range records {
		if hl, ok := c.Match(r); ok {
			matches = append(matches, Match{Record: r, Highlight: hl})
		}
	}
	return matches
}

// String returns a human-readable description of the active criteria.
// Format: "Crew: NED, Laga | Boat: M8+ | Trophy: Temple"
func (c Criteria) String() string {
	if c.IsEmpty() {
		return "No active filters"
	}

	var parts []string

	if names := crewNames(c.Crew); len(names) > 0 {
		parts = append(parts, fmt.Sprintf("Crew: %s", strings.Join(names, ", ")))
	}

	if c.Boat != "" {
		parts = append(parts, fmt.Sprintf("Boat: %s", c.Boat))
	}

	if c.Trophy != "" {
		parts = append(parts, fmt.Sprintf("Trophy: %s", c.Trophy))
	}

	return strings.Join(parts, " | ")
}

// Clone creates a deep copy of the criteria
func (c Criteria) Clone() Criteria {
	clone := Criteria{Boat: c.Boat, Trophy: c.Trophy}
	if len(c.Crew) > 0 {
		clone.Crew = make([]string, len(c.Crew))
		copy(clone.Crew, c.Crew)
	}
	return clone
}

// crewNames skips blank crew names; the others are kept as given
func crewNames(crew []string) []string {
	names := make([]string, 0, len(crew))
	for _, name := range crew {
		if strings.TrimSpace(name) != "" {
			names = append(names, name)
		}
	}
	return names
}
