// Package competency handles the accounting period a ledger entry belongs to:
// a calendar month identified canonically as "MM/YYYY", independent of the
// date the entry was recorded.
package competency

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Competency is a parsed accounting period.
type Competency struct {
	Month time.Month
	Year  int
}

var canonical = regexp.MustCompile(`^(0[1-9]|1[0-2])/([0-9]{4})$`)

// Parse parses the canonical "MM/YYYY" form. The month must be zero-padded
// and the string must contain nothing else.
func Parse(s string) (Competency, error) {
	m := canonical.FindStringSubmatch(s)
	if m == nil {
		return Competency{}, fmt.Errorf("invalid competency %q: expected MM/YYYY", s)
	}
	month, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[2])
	if year == 0 {
		return Competency{}, fmt.Errorf("invalid competency %q: year must be positive", s)
	}
	return Competency{Month: time.Month(month), Year: year}, nil
}

// FromDate truncates a date to its month.
func FromDate(t time.Time) Competency {
	return Competency{Month: t.Month(), Year: t.Year()}
}

// String renders the canonical "MM/YYYY" form.
func (c Competency) String() string {
	return fmt.Sprintf("%02d/%04d", int(c.Month), c.Year)
}

// MonthStart returns the first day of the period in UTC.
func (c Competency) MonthStart() time.Time {
	return time.Date(c.Year, c.Month, 1, 0, 0, 0, 0, time.UTC)
}

// MonthEnd returns the last calendar day of the period, leap years included.
func (c Competency) MonthEnd() time.Time {
	return c.MonthStart().AddDate(0, 1, -1)
}

// Days returns the number of days in the period.
func (c Competency) Days() int {
	return c.MonthEnd().Day()
}

// AtDay returns the given day of the period as a date.
func (c Competency) AtDay(day int) time.Time {
	return time.Date(c.Year, c.Month, day, 0, 0, 0, 0, time.UTC)
}

// AddMonths shifts a date by n calendar months, clamping the day to the
// target month's length rather than letting it roll over: Jan 31 plus one
// month is Feb 29 in a leap year, not Mar 2.
func AddMonths(t time.Time, n int) time.Time {
	anchor := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, n, 0)
	day := t.Day()
	if max := FromDate(anchor).Days(); day > max {
		day = max
	}
	return time.Date(anchor.Year(), anchor.Month(), day, 0, 0, 0, 0, t.Location())
}
