// Package istime implements date and time normalization anchored to the
// fixed UTC+5:30 offset used for all test scheduling. The offset has no
// daylight saving transitions, so all arithmetic is plain offset shifting.
package istime

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// Location is the fixed UTC+5:30 offset. Deliberately not loaded from the
// tzdata database: scheduling must not depend on host timezone files.
var Location = time.FixedZone("IST", 5*3600+30*60)

const dateLayout = "2006-01-02"

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

var (
	ErrEmptyDate   = errors.New("date is required")
	ErrBadPattern  = errors.New("date must be in YYYY-MM-DD format")
	ErrNotCalendar = errors.New("date is not a valid calendar date")
)

// Wall-clock layouts accepted for supplied start/end times. A zone
// designator, if present, is ignored: the wall-clock components are
// re-anchored to UTC+5:30 regardless of what the caller claimed.
var wallClockLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// NormalizeDate reduces a raw date input to its canonical YYYY-MM-DD form.
// A time-of-day component (anything from "T" onward) is truncated first,
// so "2026-02-10" and "2026-02-10T00:00:00Z" normalize identically.
func NormalizeDate(raw string) (string, error) {
	if raw == "" {
		return "", ErrEmptyDate
	}
	if i := strings.IndexByte(raw, 'T'); i >= 0 {
		raw = raw[:i]
	}
	if !datePattern.MatchString(raw) {
		return "", ErrBadPattern
	}
	// time.Parse rejects impossible dates such as 2026-02-30.
	if _, err := time.ParseInLocation(dateLayout, raw, Location); err != nil {
		return "", ErrNotCalendar
	}
	return raw, nil
}

// ParseDate parses a canonical YYYY-MM-DD string as midnight in UTC+5:30.
func ParseDate(date string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, date, Location)
	if err != nil {
		return time.Time{}, ErrNotCalendar
	}
	return t, nil
}

// DayWindow returns the default scheduling window for a canonical date:
// 00:00:00 through 23:59:59 of that calendar day in UTC+5:30, both
// expressed as UTC instants.
func DayWindow(date string) (startUTC, endUTC time.Time, err error) {
	midnight, err := ParseDate(date)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	startUTC = midnight.UTC()
	endUTC = midnight.Add(23*time.Hour + 59*time.Minute + 59*time.Second).UTC()
	return startUTC, endUTC, nil
}

// ParseWallClock parses a supplied start/end time and re-anchors its
// wall-clock reading to UTC+5:30, returning the equivalent UTC instant.
// "2026-02-10T09:00:00Z" is therefore treated as 09:00 IST, i.e. 03:30 UTC.
func ParseWallClock(raw string) (time.Time, error) {
	var parsed time.Time
	var err error
	for _, layout := range wallClockLayouts {
		parsed, err = time.Parse(layout, raw)
		if err == nil {
			return anchor(parsed), nil
		}
	}
	return time.Time{}, errors.New("unrecognized time format: " + raw)
}

// FormatIST renders a UTC instant as an ISO-8601 string in the +05:30
// display offset.
func FormatIST(t time.Time) string {
	return t.In(Location).Format(time.RFC3339)
}

// anchor rebuilds t's wall-clock components in the fixed IST offset and
// converts the result to UTC.
func anchor(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), Location).UTC()
}
