package datecalc

import "time"

// Calculator performs calendar-aware date arithmetic in a single location.
// It is an immutable value: construct one with NewCalculator and share it
// freely across goroutines.
type Calculator struct {
	loc *time.Location
}

// NewCalculator returns a Calculator operating in loc.
// A nil loc falls back to time.Local.
func NewCalculator(loc *time.Location) Calculator {
	if loc == nil {
		loc = time.Local
	}
	return Calculator{loc: loc}
}

// Location returns the location the calculator computes calendar days in.
func (c Calculator) Location() *time.Location {
	return c.loc
}

// Add applies a signed composite delta to t as one calendar operation.
// Building the result through a single time.Date call lets the calendar
// normalize leap days, month lengths and DST transitions together instead
// of accumulating boundary errors across four separate additions.
func (c Calculator) Add(t time.Time, days, hours, minutes, seconds int) time.Time {
	lt := t.In(c.loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day()+days,
		lt.Hour()+hours, lt.Minute()+minutes, lt.Second()+seconds,
		lt.Nanosecond(), c.loc)
}

// Subtract is Add with every delta component negated.
func (c Calculator) Subtract(t time.Time, days, hours, minutes, seconds int) time.Time {
	return c.Add(t, -days, -hours, -minutes, -seconds)
}

// StartOfDay returns midnight of t's calendar day.
func (c Calculator) StartOfDay(t time.Time) time.Time {
	lt := t.In(c.loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, c.loc)
}

// EndOfDay returns 23:59:59 of t's calendar day, computed as the start of
// the following day minus one second.
func (c Calculator) EndOfDay(t time.Time) time.Time {
	lt := t.In(c.loc)
	next := time.Date(lt.Year(), lt.Month(), lt.Day()+1, 0, 0, 0, 0, c.loc)
	return next.Add(-time.Second)
}

// StartOfHour returns t with minute, second and sub-second fields zeroed.
func (c Calculator) StartOfHour(t time.Time) time.Time {
	lt := t.In(c.loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), lt.Hour(), 0, 0, 0, c.loc)
}

// dayNumber returns the Julian Day Number of t's calendar date in the
// calculator's location.
// Algorithm from http://www.tondering.dk/claus/cal/julperiod.php#formula
func (c Calculator) dayNumber(t time.Time) int {
	lt := t.In(c.loc)
	a := (14 - int(lt.Month())) / 12
	y := lt.Year() + 4800 - a
	m := int(lt.Month()) + 12*a - 3
	return lt.Day() + (153*m+2)/5 + 365*y + y/4 - y/100 + y/400 - 32045
}

// DaysBetween counts the calendar days spanned by a and b, inclusive of
// both endpoints. The count is symmetric in its arguments, and
// DaysBetween(d, d) is 1. Day numbers are civil, so DST-shortened days
// still count as a full day.
func (c Calculator) DaysBetween(a, b time.Time) int {
	diff := c.dayNumber(b) - c.dayNumber(a)
	if diff < 0 {
		diff = -diff
	}
	return diff + 1
}

// AreSameDay reports whether a and b fall on the same calendar day.
func (c Calculator) AreSameDay(a, b time.Time) bool {
	return c.StartOfDay(a).Equal(c.StartOfDay(b))
}

// TimeInterval returns the elapsed seconds from from to to,
// negative when to precedes from.
func (c Calculator) TimeInterval(from, to time.Time) float64 {
	return to.Sub(from).Seconds()
}
