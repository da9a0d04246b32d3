package timeline

import (
	"fmt"
	"strings"
	"time"
)

// Granularity is the display resolution of the timeline.
type Granularity int

const (
	Day Granularity = iota
	Week
	Month
)

// Granularities lists every granularity from finest to coarsest.
var Granularities = []Granularity{Day, Week, Month}

// ParseGranularity parses "day", "week" or "month" (case-insensitive).
func ParseGranularity(s string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "day":
		return Day, nil
	case "week":
		return Week, nil
	case "month":
		return Month, nil
	}
	return Day, fmt.Errorf("%w: %q", ErrUnknownGranularity, s)
}

// String implements fmt.Stringer.
func (g Granularity) String() string {
	switch g {
	case Day:
		return "day"
	case Week:
		return "week"
	case Month:
		return "month"
	}
	return fmt.Sprintf("Granularity(%d)", int(g))
}

// Valid reports whether g is one of Day, Week or Month.
func (g Granularity) Valid() bool {
	return g >= Day && g <= Month
}

// ColumnWidth returns the fixed width of one column in pixels.
func (g Granularity) ColumnWidth() float64 {
	switch g {
	case Week:
		return 180
	case Month:
		return 240
	default:
		return 60
	}
}

// VisibleSpan returns the number of days a freshly seeded window covers.
func (g Granularity) VisibleSpan() int {
	switch g {
	case Week:
		return 90
	case Month:
		return 365
	default:
		return 30
	}
}

// ExtendSteps returns how many columns one edge extension adds.
func (g Granularity) ExtendSteps() int {
	switch g {
	case Week:
		return 8
	case Month:
		return 3
	default:
		return 20
	}
}

// Step moves t by n columns of this granularity.
func (g Granularity) Step(t time.Time, n int) time.Time {
	switch g {
	case Week:
		return AddWeeks(t, n)
	case Month:
		return AddMonths(t, n)
	default:
		return AddDays(t, n)
	}
}

// ColumnStart returns the anchor date of the column containing t.
func (g Granularity) ColumnStart(t time.Time) time.Time {
	switch g {
	case Week:
		return StartOfWeek(t)
	case Month:
		return StartOfMonth(t)
	default:
		return DayOf(t)
	}
}

// ColumnEnd returns the last day of the column containing t.
func (g Granularity) ColumnEnd(t time.Time) time.Time {
	switch g {
	case Week:
		return EndOfWeek(t)
	case Month:
		return EndOfMonth(t)
	default:
		return DayOf(t)
	}
}

// ZoomIn returns the next finer granularity. ok is false at Day.
func (g Granularity) ZoomIn() (Granularity, bool) {
	if g <= Day {
		return g, false
	}
	return g - 1, true
}

// ZoomOut returns the next coarser granularity. ok is false at Month.
func (g Granularity) ZoomOut() (Granularity, bool) {
	if g >= Month {
		return g, false
	}
	return g + 1, true
}

// MarshalText implements encoding.TextMarshaler.
func (g Granularity) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (g *Granularity) UnmarshalText(text []byte) error {
	parsed, err := ParseGranularity(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}
