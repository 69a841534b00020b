// Package cli implements the command-line interface for henley-schedule.
//
// The cli package provides the Cobra-based CLI: the root command fetches the race
// timetable, filters it by crew, boat class and trophy and prints a table (text, JSON
// or an iCalendar file). The "defaults" subcommands persist preferred option values and "trophies"
// lists the trophy to boat class table. It coordinates the config, scraper, storage,
// preferences and timetable packages.
package cli
