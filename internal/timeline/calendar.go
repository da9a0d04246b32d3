// Package timeline is the temporal layout engine behind the timeline view.
//
// It packs date-ranged items into non-overlapping lanes and maps calendar
// dates to pixel offsets for the day, week and month granularities. All
// dates are calendar days represented as time.Time values at UTC midnight;
// there is no time-of-day or time-zone arithmetic anywhere in the package.
package timeline

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the ISO calendar date layout used for every date string.
const DateLayout = "2006-01-02"

// Date returns the calendar day y-m-d at UTC midnight.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayOf strips the time of day and location from t, keeping its calendar day.
func DayOf(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// Today returns the current local calendar day.
func Today() time.Time {
	return DayOf(time.Now())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, s)
	}
	return t, nil
}

// FormatDate formats a date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// AddDays returns t moved by n days.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// AddWeeks returns t moved by n weeks.
func AddWeeks(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, 7*n)
}

// AddMonths returns t moved by n calendar months. The day is clamped to the
// length of the target month, so Jan 31 + 1 month is Feb 28 (or 29).
func AddMonths(t time.Time, n int) time.Time {
	first := Date(t.Year(), t.Month(), 1).AddDate(0, n, 0)
	day := t.Day()
	if dim := DaysInMonth(first); day > dim {
		day = dim
	}
	return Date(first.Year(), first.Month(), day)
}

// StartOfWeek returns the Monday of t's week.
func StartOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return AddDays(DayOf(t), -offset)
}

// EndOfWeek returns the Sunday of t's week.
func EndOfWeek(t time.Time) time.Time {
	return AddDays(StartOfWeek(t), 6)
}

// StartOfMonth returns the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), 1)
}

// EndOfMonth returns the last day of t's month.
func EndOfMonth(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), DaysInMonth(t))
}

// DaysInMonth returns the number of days in t's month.
func DaysInMonth(t time.Time) int {
	return Date(t.Year(), t.Month()+1, 0).Day()
}

// DaysBetween returns the signed number of calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(DayOf(b).Sub(DayOf(a)) / (24 * time.Hour))
}

// MonthsBetween returns the signed number of calendar months from a's month
// to b's month, ignoring the day of month.
func MonthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}

// IsWeekend reports whether t falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsMonthStart reports whether t is the first day of its month.
func IsMonthStart(t time.Time) bool {
	return t.Day() == 1
}

// MinDate returns the earlier of a and b.
func MinDate(a, b time.Time) time.Time {
	if b.Before(a) {
		return b
	}
	return a
}

// MaxDate returns the later of a and b.
func MaxDate(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}
