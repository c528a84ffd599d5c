package model

import (
	"strings"
	"time"
)

// DateLayout is the storage format for due dates. Dates are naive calendar
// days with no time-of-day or zone component.
const DateLayout = "2006-01-02"

func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

// DateOnly truncates t to midnight UTC so day arithmetic is exact multiples
// of 24h regardless of the local zone.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
