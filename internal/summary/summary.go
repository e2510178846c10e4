// Package summary aggregates per-month business-day statistics from a
// busdays engine.
package summary

import (
	"time"

	"github.com/username/workcal/pkg/busdays"
)

// DayKind classifies a calendar day.
type DayKind int

const (
	DayBusiness DayKind = iota + 1
	DayWeekend
	DayHoliday
)

// String returns the lowercase name of the kind.
func (k DayKind) String() string {
	switch k {
	case DayBusiness:
		return "business"
	case DayWeekend:
		return "weekend"
	case DayHoliday:
		return "holiday"
	default:
		return "unknown"
	}
}

// Day is one classified calendar day.
type Day struct {
	Date    time.Time
	Weekday time.Weekday
	Kind    DayKind
}

// Month holds the classification of every day in one calendar month.
type Month struct {
	Year         int
	Month        time.Month
	BusinessDays int
	WeekendDays  int
	Holidays     int
	Days         []Day
}

// ForMonth classifies every day of the given month under the engine's
// configuration. A holiday falling on a weekend day counts as weekend; the
// holiday column only reports days that would otherwise have been working
// days.
func ForMonth(eng busdays.Engine, year int, month time.Month) (*Month, error) {
	calc := eng.Calculator()

	daysInMonth, err := calc.DaysInMonth(month, year)
	if err != nil {
		return nil, err
	}

	m := &Month{
		Year:  year,
		Month: month,
		Days:  make([]Day, 0, daysInMonth),
	}

	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, calc.Location())

		var kind DayKind
		switch {
		case eng.IsWeekend(date):
			kind = DayWeekend
			m.WeekendDays++
		case eng.IsHoliday(date):
			kind = DayHoliday
			m.Holidays++
		default:
			kind = DayBusiness
			m.BusinessDays++
		}

		m.Days = append(m.Days, Day{
			Date:    date,
			Weekday: date.Weekday(),
			Kind:    kind,
		})
	}

	return m, nil
}
