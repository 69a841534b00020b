// Package timetable turns the Henley race timetable page into race records.
//
// An Extractor is built once per run with the viewer's GMT offset and the trophy
// table. Extract parses the page, normalizes each row and reports rows whose time
// could not be read instead of guessing a time for them. The package performs no
// I/O; the page is fetched by the scraper package and rendered by the cli package.
package timetable
