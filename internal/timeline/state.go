package timeline

import (
	"fmt"
	"time"
)

// Options configure a new State.
type Options struct {
	Granularity   Granularity
	PaddingBefore int // days, day granularity only
	PaddingAfter  int
	// AllowExtend lets drags grow the window; otherwise dragged items are
	// clamped to the rendered columns.
	AllowExtend bool
	// Today seeds the window of an empty item set. Zero means the current day.
	Today    time.Time
	Geometry *Geometry
}

// State is the whole timeline layout state. Transitions return a new State
// and leave the receiver untouched; a transition that fails returns the
// receiver unchanged together with the error.
//
// Every successful transition regenerates Columns and the focus offset
// before it returns.
type State struct {
	Items       []Item // lane-tagged, sorted by start
	Window      Window
	Initial     Window
	Granularity Granularity

	PaddingBefore int
	PaddingAfter  int
	AllowExtend   bool

	Focus *Focus

	// Columns is derived from Window, Granularity and padding.
	Columns []time.Time

	// NeedsRecenter is raised when the window or granularity changed while a
	// focus is active. The scroll collaborator recenters on the focus and
	// calls AckRecenter.
	NeedsRecenter bool

	geometry Geometry
	today    time.Time
	latched  [2]bool
}

// Placement pairs an item with its current pixel rect.
type Placement struct {
	Item Item
	Rect Rect
}

// New builds a state for items.
func New(items []Item, opts Options) (State, error) {
	if !opts.Granularity.Valid() {
		return State{}, fmt.Errorf("%w: %d", ErrUnknownGranularity, int(opts.Granularity))
	}
	if opts.PaddingBefore < 0 || opts.PaddingAfter < 0 {
		return State{}, fmt.Errorf("%w: negative padding", ErrInvalidWindow)
	}
	s := State{
		Granularity:   opts.Granularity,
		PaddingBefore: opts.PaddingBefore,
		PaddingAfter:  opts.PaddingAfter,
		AllowExtend:   opts.AllowExtend,
		geometry:      DefaultGeometry(),
		today:         DayOf(opts.Today),
	}
	if opts.Geometry != nil {
		s.geometry = *opts.Geometry
	}
	if opts.Today.IsZero() {
		s.today = Today()
	}
	return s.SetItems(items), nil
}

// SetItems swaps in a wholly new item set, reassigns lanes and re-seeds the
// window from it.
func (s State) SetItems(items []Item) State {
	ns := s.clone()
	ns.Items = AssignLanes(items)
	ns.Initial = InitialWindow(ns.Items, ns.today)
	ns.Window = ns.Initial
	ns.latched = [2]bool{}
	ns.refresh()
	return ns
}

// Mapper returns the coordinate mapper for the current columns.
func (s State) Mapper() Mapper {
	m := NewMapper(s.Granularity, s.Columns, s.Window.Min)
	m.Geometry = s.geometry
	return m
}

// Geometry returns the item geometry in use.
func (s State) Geometry() Geometry {
	return s.geometry
}

// GridWidth returns the pixel width of all columns.
func (s State) GridWidth() float64 {
	return float64(len(s.Columns)) * s.Granularity.ColumnWidth()
}

// LaneCount returns the number of lanes in use.
func (s State) LaneCount() int {
	return LaneCount(s.Items)
}

// Item returns the item with the given id.
func (s State) Item(id int) (Item, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.Items[i], true
	}
	return Item{}, false
}

// Layout returns every item with its rect for the current columns.
func (s State) Layout() []Placement {
	m := s.Mapper()
	out := make([]Placement, len(s.Items))
	for i, it := range s.Items {
		out[i] = Placement{Item: it, Rect: m.Position(it.Start, it.End, it.Lane)}
	}
	return out
}

// ColumnBounds returns the first and last day covered by the columns.
func (s State) ColumnBounds() (first, last time.Time) {
	return s.firstDay(s.Window), s.lastDay(s.Window)
}

// NearEdge handles a near-edge signal from the scroll collaborator. The
// window is extended by one step of the current granularity the first time
// an edge is reached; further signals for the same edge are ignored until
// LeaveEdge re-arms it. Unknown edges leave the state unchanged.
func (s State) NearEdge(edge Edge) State {
	if !edge.Valid() || s.latched[edge] {
		return s
	}
	ns := s.Extend(edge, s.Granularity.ExtendSteps())
	ns.latched[edge] = true
	return ns
}

// LeaveEdge re-arms edge after the viewport moved away from it.
func (s State) LeaveEdge(edge Edge) State {
	if !edge.Valid() || !s.latched[edge] {
		return s
	}
	ns := s.clone()
	ns.latched[edge] = false
	return ns
}

// Extend moves one edge of the window outward by steps columns. It never
// shrinks the window.
func (s State) Extend(edge Edge, steps int) State {
	if steps <= 0 || !edge.Valid() {
		return s
	}
	ns := s.clone()
	ns.Window = ExtendWindow(ns.Window, ns.Granularity, edge, steps)
	ns.refresh()
	return ns
}

// ChangeGranularity replaces the window with one sized for g. The window is
// centred on focal when given, else on the earliest item start, else on the
// current first column. Choosing the current granularity is a no-op.
func (s State) ChangeGranularity(g Granularity, focal *time.Time) (State, error) {
	if !g.Valid() {
		return s, fmt.Errorf("%w: %d", ErrUnknownGranularity, int(g))
	}
	if g == s.Granularity {
		return s, nil
	}

	var target time.Time
	switch {
	case focal != nil:
		target = DayOf(*focal)
	case len(s.Items) > 0:
		target = s.Items[0].Start
		for _, it := range s.Items[1:] {
			target = MinDate(target, it.Start)
		}
	case len(s.Columns) > 0:
		target = s.Columns[0]
	default:
		target = s.Window.Min
	}

	ns := s.clone()
	ns.Granularity = g
	ns.Window = CenteredWindow(g, target)
	ns.latched = [2]bool{}
	ns.refresh()
	return ns, nil
}

// ZoomIn switches to the next finer granularity. At day granularity the
// state is returned unchanged.
func (s State) ZoomIn(focal *time.Time) State {
	g, ok := s.Granularity.ZoomIn()
	if !ok {
		return s
	}
	ns, _ := s.ChangeGranularity(g, focal)
	return ns
}

// ZoomOut switches to the next coarser granularity. At month granularity the
// state is returned unchanged.
func (s State) ZoomOut(focal *time.Time) State {
	g, ok := s.Granularity.ZoomOut()
	if !ok {
		return s
	}
	ns, _ := s.ChangeGranularity(g, focal)
	return ns
}

// Reset restores the window derived from the item set.
func (s State) Reset() State {
	ns := s.clone()
	ns.Window = ns.Initial
	ns.latched = [2]bool{}
	ns.refresh()
	return ns
}

// DragItem shifts an item by a horizontal pixel delta, keeping its duration.
// The new start is the day under the dragged start edge, rounded to the
// nearest day. A result outside the columns grows the window when
// AllowExtend is set and is clamped into the columns otherwise.
func (s State) DragItem(id int, deltaPx float64) (State, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return s, fmt.Errorf("%w: %d", ErrUnknownItem, id)
	}
	if deltaPx == 0 {
		return s, nil
	}

	it := s.Items[idx]
	m := s.Mapper()
	x := m.Offset(it.Start) + deltaPx + m.DayWidth(it.Start)/2
	start := m.DateAtUnclamped(x)
	dur := DaysBetween(it.Start, it.End)
	end := AddDays(start, dur)

	ns := s.clone()
	first, last := ns.ColumnBounds()
	if start.Before(first) || end.After(last) {
		if ns.AllowExtend {
			ns.Window = ns.coverWindow(start, end)
		} else {
			if end.After(last) {
				end = last
				start = AddDays(end, -dur)
			}
			if start.Before(first) {
				start = first
				end = AddDays(start, dur)
			}
		}
	}

	it.Start, it.End = start, end
	ns.Items[idx] = it
	ns.Items = AssignLanes(ns.Items)
	ns.refresh()
	return ns, nil
}

// UpdateItem replaces an item's name and dates. The interval is validated
// like NewItem and the window grows to show it.
func (s State) UpdateItem(id int, name string, start, end time.Time) (State, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return s, fmt.Errorf("%w: %d", ErrUnknownItem, id)
	}
	updated, err := NewItem(id, name, start, end)
	if err != nil {
		return s, err
	}

	ns := s.clone()
	ns.Items[idx] = updated
	ns.Items = AssignLanes(ns.Items)
	ns.Window = ns.coverWindow(updated.Start, updated.End)
	ns.refresh()
	return ns, nil
}

// Reveal grows the window until the whole item is materialised and returns
// the item's rect in the resulting layout.
func (s State) Reveal(id int) (State, Rect, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return s, Rect{}, fmt.Errorf("%w: %d", ErrUnknownItem, id)
	}
	it := s.Items[idx]

	ns := s
	if w := s.coverWindow(it.Start, it.End); !w.Equal(s.Window) {
		ns = s.clone()
		ns.Window = w
		ns.refresh()
	}
	return ns, ns.Mapper().Position(it.Start, it.End, it.Lane), nil
}

// coverWindow extends the window step by step until [start, end] lies inside
// the columns. Whole steps keep the window aligned with regular extensions.
func (s State) coverWindow(start, end time.Time) Window {
	w := s.Window
	steps := s.Granularity.ExtendSteps()
	for s.firstDay(w).After(start) {
		w = ExtendWindow(w, s.Granularity, EdgeStart, steps)
	}
	for s.lastDay(w).Before(end) {
		w = ExtendWindow(w, s.Granularity, EdgeEnd, steps)
	}
	return w
}

func (s State) firstDay(w Window) time.Time {
	if s.Granularity == Day {
		return AddDays(w.Min, -s.PaddingBefore)
	}
	return s.Granularity.ColumnStart(w.Min)
}

func (s State) lastDay(w Window) time.Time {
	if s.Granularity == Day {
		return AddDays(w.Max, s.PaddingAfter)
	}
	return s.Granularity.ColumnEnd(w.Max)
}

func (s State) indexOf(id int) int {
	for i, it := range s.Items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func (s State) clone() State {
	ns := s
	ns.Items = append([]Item(nil), s.Items...)
	ns.Columns = append([]time.Time(nil), s.Columns...)
	if s.Focus != nil {
		f := *s.Focus
		ns.Focus = &f
	}
	return ns
}

func (s *State) refresh() {
	s.Columns = Columns(s.Window.Min, s.Window.Max, s.Granularity, s.PaddingBefore, s.PaddingAfter)
	s.refreshFocus()
}
