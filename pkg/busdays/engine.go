// Package busdays answers business-day questions: which calendar days count
// as working days under a configurable weekend and holiday set, and how to
// navigate, offset and count across them.
package busdays

import (
	"errors"
	"fmt"
	"time"

	"github.com/username/workcal/pkg/datecalc"
)

// ErrNoBusinessDay is returned when a bounded search exhausts its iteration
// budget without landing on a business day. It signals a weekend/holiday
// configuration under which no business day is reachable within the safety
// limit, not a defect in the caller's dates.
var ErrNoBusinessDay = errors.New("no business day found within iteration limit")

// DefaultMaxSkippedDays is the longest run of consecutive non-business days
// the engine crosses before giving up. Nine covers a two-day weekend bridged
// by holiday blocks on both sides. The step budgets derive from it:
// single-step searches visit at most DefaultMaxSkippedDays+1 days, and
// AddBusinessDays visits at most |n|*(DefaultMaxSkippedDays+1) days in total.
const DefaultMaxSkippedDays = 9

// Engine decides business-day status for one calendar configuration:
// a calculator (which fixes the calendar location), a holiday set and a
// weekend-day set. It is an immutable value. AddingHolidays, WithWeekendDays
// and WithMaxSkippedDays build new engines with copied sets and never touch
// the receiver, so any engine may be shared across goroutines without
// coordination.
type Engine struct {
	calc     datecalc.Calculator
	holidays map[time.Time]struct{}
	weekend  map[time.Weekday]struct{}
	maxSkip  int
}

// New returns an engine over the calculator's calendar with no holidays,
// a Saturday/Sunday weekend and the default iteration bound.
func New(calc datecalc.Calculator) Engine {
	return Engine{
		calc:     calc,
		holidays: map[time.Time]struct{}{},
		weekend: map[time.Weekday]struct{}{
			time.Saturday: {},
			time.Sunday:   {},
		},
		maxSkip: DefaultMaxSkippedDays,
	}
}

// Calculator returns the date calculator the engine steps days with.
func (e Engine) Calculator() datecalc.Calculator {
	return e.calc
}

// IsWeekend reports whether t falls on a configured weekend day.
func (e Engine) IsWeekend(t time.Time) bool {
	_, ok := e.weekend[t.In(e.calc.Location()).Weekday()]
	return ok
}

// IsHoliday reports whether t's calendar day is in the holiday set.
// The probe is day-truncated before lookup, matching the truncation applied
// on insertion.
func (e Engine) IsHoliday(t time.Time) bool {
	_, ok := e.holidays[e.calc.StartOfDay(t)]
	return ok
}

// IsBusinessDay reports whether t is neither a weekend day nor a holiday.
func (e Engine) IsBusinessDay(t time.Time) bool {
	return !e.IsWeekend(t) && !e.IsHoliday(t)
}

// NextBusinessDay returns the first business day strictly after from.
// The search visits at most maxSkip+1 days; exhausting that budget returns
// ErrNoBusinessDay rather than a fabricated date.
func (e Engine) NextBusinessDay(from time.Time) (time.Time, error) {
	return e.seek(from, 1)
}

// PreviousBusinessDay returns the first business day strictly before from,
// under the same iteration budget as NextBusinessDay.
func (e Engine) PreviousBusinessDay(from time.Time) (time.Time, error) {
	return e.seek(from, -1)
}

func (e Engine) seek(from time.Time, step int) (time.Time, error) {
	date := from
	for i := 0; i <= e.maxSkip; i++ {
		date = e.calc.Add(date, step, 0, 0, 0)
		if e.IsBusinessDay(date) {
			return date, nil
		}
	}
	return time.Time{}, fmt.Errorf("seek from %s: %w",
		from.Format("2006-01-02"), ErrNoBusinessDay)
}

// ClosestBusinessDay returns t itself when it is a business day, otherwise
// the next business day after it.
func (e Engine) ClosestBusinessDay(t time.Time) (time.Time, error) {
	if e.IsBusinessDay(t) {
		return t, nil
	}
	return e.NextBusinessDay(t)
}

// AddBusinessDays returns the date n business days away from t, stepping one
// calendar day at a time in the sign direction of n and counting only steps
// that land on business days. n == 0 returns t unchanged. The walk visits at
// most |n|*(maxSkip+1) calendar days; exhaustion returns ErrNoBusinessDay.
func (e Engine) AddBusinessDays(n int, t time.Time) (time.Time, error) {
	if n == 0 {
		return t, nil
	}

	step, remaining := 1, n
	if n < 0 {
		step, remaining = -1, -n
	}

	budget := remaining * (e.maxSkip + 1)
	date := t
	for i := 0; i < budget; i++ {
		date = e.calc.Add(date, step, 0, 0, 0)
		if e.IsBusinessDay(date) {
			remaining--
			if remaining == 0 {
				return date, nil
			}
		}
	}
	return time.Time{}, fmt.Errorf("add %d business days to %s: %w",
		n, t.Format("2006-01-02"), ErrNoBusinessDay)
}

// SubtractBusinessDays is AddBusinessDays with n negated.
func (e Engine) SubtractBusinessDays(n int, t time.Time) (time.Time, error) {
	return e.AddBusinessDays(-n, t)
}

// BusinessDaysBetween counts the business days between a and b, inclusive of
// both endpoints. The pair is normalized so the earlier day starts the walk,
// which makes the count symmetric in its arguments. The loop is bounded by
// the span itself, so no iteration budget applies.
func (e Engine) BusinessDaysBetween(a, b time.Time) int {
	start, end := e.calc.StartOfDay(a), e.calc.StartOfDay(b)
	if end.Before(start) {
		start, end = end, start
	}

	count := 0
	for d := start; !d.After(end); d = e.calc.Add(d, 1, 0, 0, 0) {
		if e.IsBusinessDay(d) {
			count++
		}
	}
	return count
}

// AddingHolidays returns a new engine whose holiday set is the union of the
// receiver's set and dates. Each date is truncated to midnight in the
// engine's calendar location before insertion; callers holding instants from
// other zones should normalize them to the engine's zone first, or the
// truncation may land on a neighboring calendar day.
func (e Engine) AddingHolidays(dates ...time.Time) Engine {
	next := e.clone()
	for _, d := range dates {
		next.holidays[e.calc.StartOfDay(d)] = struct{}{}
	}
	return next
}

// WithWeekendDays returns a new engine whose weekend-day set is replaced by
// days. The set must stay non-empty; passing no days is an error rather than
// a silent keep-or-clear of the old set.
func (e Engine) WithWeekendDays(days ...time.Weekday) (Engine, error) {
	if len(days) == 0 {
		return Engine{}, errors.New("weekend day set must not be empty")
	}

	next := e.clone()
	next.weekend = make(map[time.Weekday]struct{}, len(days))
	for _, d := range days {
		next.weekend[d] = struct{}{}
	}
	return next, nil
}

// WithMaxSkippedDays returns a new engine that tolerates runs of up to n
// consecutive non-business days before its searches fail. n below 1 is an
// error; a search that may not skip any day cannot move at all.
func (e Engine) WithMaxSkippedDays(n int) (Engine, error) {
	if n < 1 {
		return Engine{}, fmt.Errorf("max skipped days must be at least 1, got %d", n)
	}

	next := e.clone()
	next.maxSkip = n
	return next, nil
}

// clone deep-copies the engine's sets so derived engines never alias the
// receiver's storage.
func (e Engine) clone() Engine {
	holidays := make(map[time.Time]struct{}, len(e.holidays))
	for d := range e.holidays {
		holidays[d] = struct{}{}
	}
	weekend := make(map[time.Weekday]struct{}, len(e.weekend))
	for d := range e.weekend {
		weekend[d] = struct{}{}
	}
	return Engine{calc: e.calc, holidays: holidays, weekend: weekend, maxSkip: e.maxSkip}
}
