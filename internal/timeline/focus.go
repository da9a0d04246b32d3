package timeline

import "time"

// Focus is a date pinned by the user. Offset is always recomputed from Date
// against the current columns and never carried over from an older layout.
type Focus struct {
	Date   time.Time
	Offset float64
}

// SetFocus pins date and computes its pixel offset.
func (s State) SetFocus(date time.Time) State {
	ns := s.clone()
	ns.Focus = &Focus{Date: DayOf(date), Offset: ns.Mapper().Offset(DayOf(date))}
	ns.NeedsRecenter = false
	return ns
}

// SetFocusAt pins the date under pixel x of the current column list.
func (s State) SetFocusAt(x float64) (State, error) {
	date, err := s.Mapper().DateAt(x, s.Columns)
	if err != nil {
		return s, err
	}
	return s.SetFocus(date), nil
}

// ClearFocus removes the focal marker.
func (s State) ClearFocus() State {
	ns := s.clone()
	ns.Focus = nil
	ns.NeedsRecenter = false
	return ns
}

// AckRecenter clears the recenter signal once the scroll collaborator has
// acted on it.
func (s State) AckRecenter() State {
	ns := s.clone()
	ns.NeedsRecenter = false
	return ns
}

// CenterScroll returns the scroll offset that puts the focus in the middle of
// a viewport of the given width. ok is false when no focus is set.
func (s State) CenterScroll(viewportWidth float64) (offset float64, ok bool) {
	if s.Focus == nil {
		return 0, false
	}
	// Aim at the middle of the focal day rather than its left edge.
	center := s.Focus.Offset + s.Mapper().DayWidth(s.Focus.Date)/2
	offset = center - viewportWidth/2
	if offset < 0 {
		offset = 0
	}
	return offset, true
}

func (s *State) refreshFocus() {
	if s.Focus == nil {
		return
	}
	s.Focus = &Focus{Date: s.Focus.Date, Offset: s.Mapper().Offset(s.Focus.Date)}
	s.NeedsRecenter = true
}
