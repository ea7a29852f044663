package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidMonth = errors.New("month must be between 1 and 12")
	ErrInvalidYear  = errors.New("year must be between 1 and 9999")
)

// Period is the half-open [Start, End) window reports are generated for:
// the first instant of a calendar month up to the first instant of the next.
type Period struct {
	Year  int
	Month time.Month
	Start time.Time
	End   time.Time
}

// NewPeriod builds the period for the given calendar month.
func NewPeriod(year, month int, loc *time.Location) (Period, error) {
	if month < 1 || month > 12 {
		return Period{}, fmt.Errorf("%w: got %d", ErrInvalidMonth, month)
	}
	if year < 1 || year > 9999 {
		return Period{}, fmt.Errorf("%w: got %d", ErrInvalidYear, year)
	}
	if loc == nil {
		loc = time.UTC
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	return Period{
		Year:  year,
		Month: time.Month(month),
		Start: start,
		End:   start.AddDate(0, 1, 0),
	}, nil
}

// PreviousMonth returns the period for the calendar month before now.
// This is the default reporting window: invoices are written for the month
// that just closed.
func PreviousMonth(now time.Time, loc *time.Location) Period {
	if loc == nil {
		loc = time.UTC
	}
	end := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	start := end.AddDate(0, -1, 0)
	return Period{Year: start.Year(), Month: start.Month(), Start: start, End: end}
}

// Contains reports whether t falls inside the period.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// LastDay returns the final calendar day of the period, for places that need
// an inclusive end date (API requests, file names).
func (p Period) LastDay() time.Time {
	return p.End.AddDate(0, 0, -1)
}

// Days returns the number of calendar days in the period.
func (p Period) Days() int {
	// Day zero of the following month normalizes to the last day of this one.
	return time.Date(p.Year, p.Month+1, 0, 0, 0, 0, 0, p.Start.Location()).Day()
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}
