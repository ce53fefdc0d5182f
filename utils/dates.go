// utils/dates.go
package utils

import "time"

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// EndOfDay normalizes a date-only boundary to 23:59:59.999 so the whole
// closing day is included in range filters.
func EndOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 23, 59, 59, 999_000_000, t.Location())
}

// ParseDateParam accepts either a bare date (2006-01-02) or a full RFC3339
// timestamp, as sent by the calendar views.
func ParseDateParam(s string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
