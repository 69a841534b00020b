// Package preferences persists the user's preferred defaults for henley-schedule.
//
// Defaults (crew names, GMT offset, boat class and trophy) are stored as YAML in the
// user's config directory and fill in any option not given on the command line.
package preferences
