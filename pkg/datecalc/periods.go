package datecalc

import (
	"fmt"
	"time"
)

// DaysInMonth returns the number of days in the given month of year.
// Months outside January..December yield an error, never a fabricated count.
func (c Calculator) DaysInMonth(month time.Month, year int) (int, error) {
	if month < time.January || month > time.December {
		return 0, fmt.Errorf("month out of range: %d", int(month))
	}
	// Day zero of the following month normalizes to the last day of this one.
	return time.Date(year, month+1, 0, 12, 0, 0, 0, c.loc).Day(), nil
}

// IsLeapYear reports whether year is a leap year, judged by whether the
// calendar reports 29 days for February rather than by an independent
// Gregorian rule.
func (c Calculator) IsLeapYear(year int) bool {
	days, err := c.DaysInMonth(time.February, year)
	return err == nil && days == 29
}

// StartOfWeek returns midnight of the Monday of t's week.
func (c Calculator) StartOfWeek(t time.Time) time.Time {
	lt := t.In(c.loc)
	weekday := int(lt.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday closes the week
	}
	return c.StartOfDay(lt.AddDate(0, 0, -(weekday - 1)))
}

// EndOfWeek returns 23:59:59 of the Sunday of t's week: the start of the
// next week minus one second.
func (c Calculator) EndOfWeek(t time.Time) time.Time {
	return c.Add(c.StartOfWeek(t), 7, 0, 0, 0).Add(-time.Second)
}

// StartOfMonth returns midnight of the first day of t's month.
func (c Calculator) StartOfMonth(t time.Time) time.Time {
	lt := t.In(c.loc)
	return time.Date(lt.Year(), lt.Month(), 1, 0, 0, 0, 0, c.loc)
}

// EndOfMonth returns 23:59:59 of the last day of t's month.
func (c Calculator) EndOfMonth(t time.Time) time.Time {
	lt := t.In(c.loc)
	return time.Date(lt.Year(), lt.Month()+1, 1, 0, 0, 0, 0, c.loc).Add(-time.Second)
}

// StartOfYear returns midnight of January 1 of t's year.
func (c Calculator) StartOfYear(t time.Time) time.Time {
	lt := t.In(c.loc)
	return time.Date(lt.Year(), time.January, 1, 0, 0, 0, 0, c.loc)
}

// EndOfYear returns 23:59:59 of December 31 of t's year.
func (c Calculator) EndOfYear(t time.Time) time.Time {
	lt := t.In(c.loc)
	return time.Date(lt.Year()+1, time.January, 1, 0, 0, 0, 0, c.loc).Add(-time.Second)
}
