package mapper

import (
	"time"

	apperrors "conference-central/errors"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// SentinelDate carries time-of-day values so that only the clock part takes
// part in comparisons.
var SentinelDate = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)

// ParseDate reads a YYYY-MM-DD date. Anything past the tenth character is
// ignored, so full timestamps are accepted too.
func ParseDate(s string) (time.Time, error) {
	if len(s) > 10 {
		s = s[:10]
	}
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, apperrors.BadRequest("invalid date %q, expected YYYY-MM-DD", s)
	}
	return d.UTC(), nil
}

// ParseTimeOfDay reads an HH:MM time and places it on SentinelDate.
func ParseTimeOfDay(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, apperrors.BadRequest("invalid time %q, expected HH:MM", s)
	}
	return time.Date(SentinelDate.Year(), SentinelDate.Month(), SentinelDate.Day(),
		t.Hour(), t.Minute(), 0, 0, time.UTC), nil
}

func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(dateLayout)
}

func FormatTimeOfDay(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(timeLayout)
}
