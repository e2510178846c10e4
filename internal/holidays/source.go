// Package holidays loads holiday dates for the business-day engine from
// local files or remote year-calendar services.
package holidays

import "time"

// Source produces the holiday dates of a calendar year, each truncated to
// midnight in the source's location.
type Source interface {
	Holidays(year int) ([]time.Time, error)
}
