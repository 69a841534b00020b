// Package storage caches downloaded timetable pages on disk.
//
// One page is kept per calendar day as <data-dir>/<YYYY-MM-DD>.html, so repeated
// runs on the same day reuse the page that was fetched first and older pages stay
// available for offline use. The clock is injectable so tests can pin the date.
package storage
