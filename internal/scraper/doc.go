// Package scraper fetches the Henley Royal Regatta race timetable page and extracts
// its raw timetable rows.
//
// Rows are the page's "timetable-row-r" table rows; each row carries the race number,
// time, trophy and the crews on the Berks and Bucks stations in cells marked with
// "timetable-field-*" classes. The package returns the cell text verbatim (newlines
// removed, whitespace trimmed) and leaves all interpretation to the race package.
package scraper
