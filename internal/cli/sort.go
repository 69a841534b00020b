package cli

import (
	"sort"
	"strconv"

	"github.com/pfrederiksen/henley-schedule/internal/filter"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByPage   SortOrder = "page"
	SortByTime   SortOrder = "time"
	SortByNumber SortOrder = "number"
)

// sortMatches orders races in place. Page order is left untouched and ties keep
// page order.
func sortMatches(matches []filter.Match, order SortOrder) {
	switch order {
	case SortByTime:
		sort.SliceStable(matches, func(i, j int) bool {
			return matches[i].Record.GBTime < matches[j].Record.GBTime
		})
	case SortByNumber:
		sort.SliceStable(matches, func(i, j int) bool {
			return compareByNumber(matches[i].Record.Number, matches[j].Record.Number)
		})
	}
}

// compareByNumber compares race numbers numerically.
// Returns true if race a should come before race b.
func compareByNumber(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)

	// If both are numbers, compare them
	if errA == nil && errB == nil {
		return na < nb
	}

	// Numbered races come before unnumbered ones
	if errA == nil {
		return true
	}
	if errB == nil {
		return false
	}

	return a < b
}
