package timeline

import (
	"math"
	"time"
)

// floorTolerance absorbs float rounding when a pixel computed by Offset is
// mapped back to a day index.
const floorTolerance = 1e-9

// Rect is the pixel geometry of one item.
type Rect struct {
	Left   float64
	Width  float64
	Top    float64
	Height float64
}

// Right returns the right edge of the rect.
func (r Rect) Right() float64 {
	return r.Left + r.Width
}

// Geometry holds the presentation constants of the item layout. None of them
// affect which date a pixel maps to.
type Geometry struct {
	LaneHeight  float64
	ItemHeight  float64
	TopPadding  float64
	MarginRatio float64 // fraction of a column left empty between adjacent items
	MinWidth    float64
}

// DefaultGeometry returns the standard item geometry.
func DefaultGeometry() Geometry {
	return Geometry{
		LaneHeight:  60,
		ItemHeight:  50,
		TopPadding:  5,
		MarginRatio: 0.05,
		MinWidth:    20,
	}
}

// Mapper converts between calendar dates and horizontal pixel offsets for one
// granularity and window. WindowStart is the anchor date of the first column.
type Mapper struct {
	Granularity Granularity
	WindowStart time.Time
	ColumnWidth float64
	Geometry    Geometry
}

// NewMapper returns a mapper for the given column list. With no columns the
// window start falls back to the column containing fallback.
func NewMapper(g Granularity, columns []time.Time, fallback time.Time) Mapper {
	start := g.ColumnStart(fallback)
	if len(columns) > 0 {
		start = columns[0]
	}
	return Mapper{
		Granularity: g,
		WindowStart: start,
		ColumnWidth: g.ColumnWidth(),
		Geometry:    DefaultGeometry(),
	}
}

// Offset returns the pixel offset of the start of date's day.
//
// Day columns are one day wide. Week and month columns are linear in days
// inside the column: a week column holds seven equal slices and a month
// column as many slices as the month has days.
func (m Mapper) Offset(date time.Time) float64 {
	switch m.Granularity {
	case Week:
		return float64(DaysBetween(m.WindowStart, date)) * m.ColumnWidth / 7
	case Month:
		months := MonthsBetween(m.WindowStart, date)
		frac := float64(date.Day()-1) / float64(DaysInMonth(date))
		return (float64(months) + frac) * m.ColumnWidth
	default:
		return float64(DaysBetween(m.WindowStart, date)) * m.ColumnWidth
	}
}

// DayWidth returns the width in pixels of date's day.
func (m Mapper) DayWidth(date time.Time) float64 {
	switch m.Granularity {
	case Week:
		return m.ColumnWidth / 7
	case Month:
		return m.ColumnWidth / float64(DaysInMonth(date))
	default:
		return m.ColumnWidth
	}
}

// Span returns the pixel width covered by the inclusive interval [start, end].
func (m Mapper) Span(start, end time.Time) float64 {
	switch m.Granularity {
	case Month:
		// Accumulate month by month so months of unequal length and partial
		// months at either end are each weighted by their own day count.
		total := 0.0
		for month := StartOfMonth(start); !month.After(end); month = AddMonths(month, 1) {
			from := MaxDate(start, month)
			to := MinDate(end, EndOfMonth(month))
			days := DaysBetween(from, to) + 1
			total += m.ColumnWidth * float64(days) / float64(DaysInMonth(month))
		}
		return total
	case Week:
		return float64(DaysBetween(start, end)+1) / 7 * m.ColumnWidth
	default:
		return float64(DaysBetween(start, end)+1) * m.ColumnWidth
	}
}

// Position returns the rect of the inclusive interval [start, end] in lane.
func (m Mapper) Position(start, end time.Time, lane int) Rect {
	left := m.Offset(start)
	width := m.Span(start, end)

	margin := m.ColumnWidth * m.Geometry.MarginRatio
	switch m.Granularity {
	case Day:
		left += margin
		width -= margin
	case Week:
		width -= margin
	}
	if width < m.Geometry.MinWidth {
		width = m.Geometry.MinWidth
	}

	if lane < 0 {
		lane = 0
	}
	return Rect{
		Left:   left,
		Width:  width,
		Top:    float64(lane)*m.Geometry.LaneHeight + m.Geometry.TopPadding,
		Height: m.Geometry.ItemHeight,
	}
}

// DateAt returns the date under pixel x. The column is clamped to the column
// list, and inside week and month columns the day is interpolated linearly
// and floored.
func (m Mapper) DateAt(x float64, columns []time.Time) (time.Time, error) {
	if len(columns) == 0 {
		return time.Time{}, ErrNoColumns
	}

	idx := int(math.Floor(x/m.ColumnWidth + floorTolerance))
	frac := x/m.ColumnWidth - float64(idx)
	switch {
	case idx < 0:
		idx, frac = 0, 0
	case idx >= len(columns):
		idx, frac = len(columns)-1, 1
	}
	return m.dayInColumn(columns[idx], frac), nil
}

// DateAtUnclamped returns the date under pixel x, extrapolating past either
// end of the window.
func (m Mapper) DateAtUnclamped(x float64) time.Time {
	idx := int(math.Floor(x/m.ColumnWidth + floorTolerance))
	frac := x/m.ColumnWidth - float64(idx)
	return m.dayInColumn(m.Granularity.Step(m.WindowStart, idx), frac)
}

func (m Mapper) dayInColumn(column time.Time, frac float64) time.Time {
	if frac < 0 {
		frac = 0
	}
	var days int
	switch m.Granularity {
	case Week:
		days = clampFloor(frac*7, 6)
	case Month:
		dim := DaysInMonth(column)
		days = clampFloor(frac*float64(dim), dim-1)
	default:
		return column
	}
	return AddDays(column, days)
}

func clampFloor(v float64, limit int) int {
	n := int(math.Floor(v + floorTolerance))
	if n > limit {
		return limit
	}
	if n < 0 {
		return 0
	}
	return n
}

// Position maps the interval [itemStart, itemEnd] in lane to pixels for a
// window starting at windowStart. The window start is snapped to the start
// of its column, so week positions line up with Monday-anchored columns.
func Position(itemStart, itemEnd, windowStart time.Time, columnWidth float64, lane int, g Granularity) Rect {
	m := Mapper{Granularity: g, WindowStart: g.ColumnStart(DayOf(windowStart)), ColumnWidth: columnWidth, Geometry: DefaultGeometry()}
	return m.Position(DayOf(itemStart), DayOf(itemEnd), lane)
}

// DateAtPixel is the inverse of Position for a rendered column list.
func DateAtPixel(x float64, columns []time.Time, columnWidth float64, g Granularity) (time.Time, error) {
	m := Mapper{Granularity: g, ColumnWidth: columnWidth, Geometry: DefaultGeometry()}
	if len(columns) > 0 {
		m.WindowStart = columns[0]
	}
	return m.DateAt(x, columns)
}
