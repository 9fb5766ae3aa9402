// Package stats holds the pure aggregation helpers shared by the
// streak and progression engines and the stats/export endpoints.
// Everything here is stateless; calendar days are YYYY-MM-DD strings
// so date arithmetic and comparisons are timezone-free.
package stats

import (
	"time"
)

const (
	// DayLayout is the canonical calendar-day format.
	DayLayout = "2006-01-02"
	// MonthLayout is the calendar-month prefix of a day string.
	MonthLayout = "2006-01"
)

// Day formats t as a calendar-day string.
func Day(t time.Time) string {
	return t.Format(DayLayout)
}

// Month formats t as a calendar-month string.
func Month(t time.Time) string {
	return t.Format(MonthLayout)
}

// ParseDay parses a calendar-day string.
func ParseDay(day string) (time.Time, error) {
	return time.Parse(DayLayout, day)
}

// ValidDay reports whether day is a well-formed calendar-day string.
func ValidDay(day string) bool {
	_, err := ParseDay(day)
	return err == nil
}

// AddDays shifts a calendar day by n days (n may be negative). A
// malformed day is returned unchanged; callers pass canonical strings.
func AddDays(day string, n int) string {
	t, err := ParseDay(day)
	if err != nil {
		return day
	}
	return t.AddDate(0, 0, n).Format(DayLayout)
}

// InRange reports whether day falls within [from, to], inclusive on
// both endpoints. Lexicographic comparison is correct for the
// fixed-width day format.
func InRange(day, from, to string) bool {
	return day >= from && day <= to
}
