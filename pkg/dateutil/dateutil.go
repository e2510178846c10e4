package dateutil

import (
	"fmt"
	"time"
)

var parseFormats = []string{
	"2006-01-02",
	"02.01.2006",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05-0700",
	"2006-01",
}

// FormatISO8601 formats date to ISO 8601 format with timezone
// Example: 2024-06-17T10:00:00.000+0000
func FormatISO8601(date time.Time) string {
	return date.Format("2006-01-02T15:04:05.000-0700")
}

// ParseDate parses a date string in one of the supported formats,
// interpreting zone-less formats in loc. A nil loc falls back to time.Local.
func ParseDate(dateStr string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}

	for _, format := range parseFormats {
		if t, err := time.ParseInLocation(format, dateStr, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unsupported date format: %q", dateStr)
}

// GetWeekNumber returns the ISO week number for the given date
func GetWeekNumber(date time.Time) (year int, week int) {
	year, week = date.ISOWeek()
	return
}

// IsSameWeek returns true if two dates are in the same ISO week
func IsSameWeek(date1, date2 time.Time) bool {
	year1, week1 := GetWeekNumber(date1)
	year2, week2 := GetWeekNumber(date2)
	return year1 == year2 && week1 == week2
}

// Today returns midnight of the current day in loc.
func Today(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	now := time.Now().In(loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
}

// Yesterday returns midnight of the previous day in loc.
func Yesterday(loc *time.Location) time.Time {
	return Today(loc).AddDate(0, 0, -1)
}
