// Package race provides the race record types for the Henley timetable and the
// pure transforms that turn a raw timetable row into a record.
//
// The timetable page publishes times in UK local time with afternoon races encoded
// as 1-7 o'clock, so NormalizeTime disambiguates the hour before shifting it to the
// viewer's GMT offset. Build composes normalization and trophy resolution for one row.
package race
