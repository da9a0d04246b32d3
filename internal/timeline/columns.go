package timeline

import (
	"fmt"
	"time"
)

// Columns returns the anchor date of every column covering [minDate, maxDate].
//
// At day granularity every day from minDate-padBefore to maxDate+padAfter is
// emitted. At week granularity the Mondays from the week of minDate through
// the week of maxDate are emitted; at month granularity the first days of the
// covered months. Padding only applies to days.
//
// A window with minDate after maxDate yields no columns.
func Columns(minDate, maxDate time.Time, g Granularity, padBefore, padAfter int) []time.Time {
	minDate, maxDate = DayOf(minDate), DayOf(maxDate)
	if minDate.After(maxDate) {
		return []time.Time{}
	}

	var cur, last time.Time
	switch g {
	case Week:
		cur, last = StartOfWeek(minDate), EndOfWeek(maxDate)
	case Month:
		cur, last = StartOfMonth(minDate), EndOfMonth(maxDate)
	default:
		cur, last = AddDays(minDate, -padBefore), AddDays(maxDate, padAfter)
	}

	var dates []time.Time
	for !cur.After(last) {
		dates = append(dates, cur)
		cur = g.Step(cur, 1)
	}
	if dates == nil {
		return []time.Time{}
	}
	return dates
}

// ColumnKind classifies a column for styling.
type ColumnKind int

const (
	ColumnPlain ColumnKind = iota
	ColumnWeekend
	ColumnMonthStart
)

// KindOf classifies the column anchored at date. Month starts win over
// weekends; only day columns can be weekends.
func KindOf(date time.Time, g Granularity) ColumnKind {
	if IsMonthStart(date) {
		return ColumnMonthStart
	}
	if g == Day && IsWeekend(date) {
		return ColumnWeekend
	}
	return ColumnPlain
}

// ContainsToday reports whether the column anchored at date covers today.
func ContainsToday(date time.Time, g Granularity, today time.Time) bool {
	today = DayOf(today)
	return !today.Before(date) && !today.After(g.ColumnEnd(date))
}

// HeaderLabel formats the header cell of the column anchored at date.
func HeaderLabel(date time.Time, g Granularity) string {
	switch g {
	case Week:
		return fmt.Sprintf("%s - %s", StartOfWeek(date).Format("01/02"), EndOfWeek(date).Format("01/02"))
	case Month:
		return date.Format("Jan 2006")
	default:
		return date.Format("Mon 01/02")
	}
}
