package timeline

import "time"

// defaultEmptySpan is how many days the window covers when there are no items.
const defaultEmptySpan = 30

// Edge names one end of the visible window.
type Edge int

const (
	EdgeStart Edge = iota
	EdgeEnd
)

// String implements fmt.Stringer.
func (e Edge) String() string {
	if e == EdgeStart {
		return "start"
	}
	return "end"
}

// Valid reports whether e is EdgeStart or EdgeEnd.
func (e Edge) Valid() bool {
	return e == EdgeStart || e == EdgeEnd
}

// Window is the calendar span materialised into columns.
type Window struct {
	Min time.Time
	Max time.Time
}

// Valid reports whether Min is not after Max.
func (w Window) Valid() bool {
	return !w.Min.After(w.Max)
}

// Days returns the number of days between Min and Max.
func (w Window) Days() int {
	return DaysBetween(w.Min, w.Max)
}

// Contains reports whether date lies in [Min, Max].
func (w Window) Contains(date time.Time) bool {
	return !date.Before(w.Min) && !date.After(w.Max)
}

// Equal reports whether both windows cover the same days.
func (w Window) Equal(other Window) bool {
	return w.Min.Equal(other.Min) && w.Max.Equal(other.Max)
}

// Include returns the smallest window covering w and [start, end].
func (w Window) Include(start, end time.Time) Window {
	return Window{Min: MinDate(w.Min, start), Max: MaxDate(w.Max, end)}
}

// InitialWindow returns the window spanning every item, or today plus
// defaultEmptySpan days when there are none.
func InitialWindow(items []Item, today time.Time) Window {
	if len(items) == 0 {
		today = DayOf(today)
		return Window{Min: today, Max: AddDays(today, defaultEmptySpan)}
	}
	w := Window{Min: items[0].Start, Max: items[0].End}
	for _, it := range items[1:] {
		w = w.Include(it.Start, it.End)
	}
	return w
}

// ExtendWindow moves one edge of w outward by steps columns of g. Non-positive
// steps and unknown edges leave w unchanged, so the window never shrinks.
func ExtendWindow(w Window, g Granularity, edge Edge, steps int) Window {
	if steps <= 0 || !edge.Valid() {
		return w
	}
	if edge == EdgeStart {
		w.Min = g.Step(w.Min, -steps)
	} else {
		w.Max = g.Step(w.Max, steps)
	}
	return w
}

// CenteredWindow returns a window of g's visible span centred on focal.
func CenteredWindow(g Granularity, focal time.Time) Window {
	half := g.VisibleSpan() / 2
	focal = DayOf(focal)
	return Window{Min: AddDays(focal, -half), Max: AddDays(focal, half)}
}
