// Package clock abstracts "now" so queries over time windows stay
// deterministic and testable.
package clock

import (
	"time"

	"github.com/northarc/paylens/internal/domain"
)

// Provider supplies the current timestamp and the current year-month.
// Both views must agree within a single query call: CurrentYearMonth is
// always derived from the same instant Now would return.
type Provider interface {
	Now() time.Time
	CurrentYearMonth() domain.YearMonth
}

// System reads the wall clock in a fixed location.
type System struct {
	loc *time.Location
}

// NewSystem returns a system clock in the given location. A nil location
// falls back to UTC.
func NewSystem(loc *time.Location) System {
	if loc == nil {
		loc = time.UTC
	}
	return System{loc: loc}
}

func (s System) Now() time.Time {
	return time.Now().In(s.loc)
}

func (s System) CurrentYearMonth() domain.YearMonth {
	return domain.YearMonthOf(s.Now())
}

// Fixed always reports the same instant. Used by tests and one-off
// replays of historical data.
type Fixed struct {
	t time.Time
}

func NewFixed(t time.Time) Fixed {
	return Fixed{t: t}
}

func (f Fixed) Now() time.Time {
	return f.t
}

func (f Fixed) CurrentYearMonth() domain.YearMonth {
	return domain.YearMonthOf(f.t)
}
