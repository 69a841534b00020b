package race

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedTime is returned when a timetable clock value cannot be parsed
var ErrMalformedTime = errors.New("malformed race time")

// afternoonCutoff is the first hour the page writes literally. Earlier hours
// are afternoon races published on a 12-hour clock.
const afternoonCutoff = 8

// TimeError describes a clock value that could not be parsed
type TimeError struct {
	Raw    string
	Reason string
}

func (e *TimeError) Error() string {
	return fmt.Sprintf("%s %q: %s", ErrMalformedTime, e.Raw, e.Reason)
}

func (e *TimeError) Unwrap() error {
	return ErrMalformedTime
}

// NormalizeTime converts a page clock value ("HH:MM") into the 24-hour GB time and
// the same instant shifted by offset hours. Hours below 8 are read as afternoon
// (02:15 is 14:15); the regatta does not race before 08:00 or after 19:59.
// Minutes must be two digits and are copied verbatim to both results.
func NormalizeTime(raw string, offset int) (gbTime, localTime string, err error) {
	hourText, minutes, ok := strings.Cut(raw, ":")
	if !ok {
		return "", "", &TimeError{Raw: raw, Reason: "missing colon"}
	}

	if !isDigits(hourText) || len(hourText) > 2 {
		return "", "", &TimeError{Raw: raw, Reason: "hour is not a one or two digit number"}
	}
	if !isDigits(minutes) || len(minutes) != 2 {
		return "", "", &TimeError{Raw: raw, Reason: "minutes are not two digits"}
	}

	hour, err := strconv.Atoi(hourText)
	if err != nil {
		return "", "", &TimeError{Raw: raw, Reason: err.Error()}
	}
	if hour < afternoonCutoff {
		hour += 12
	}
	if hour > 23 {
		return "", "", &TimeError{Raw: raw, Reason: "hour out of range"}
	}

	local := ((hour+offset)%24 + 24) % 24

	return fmt.Sprintf("%02d:%s", hour, minutes), fmt.Sprintf("%02d:%s", local, minutes), nil
}

func isDigits(s string) bool {
	return s != "" && strings.Trim(s, "0123456789") == ""
}
