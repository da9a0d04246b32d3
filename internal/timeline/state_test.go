package timeline

import (
	"errors"
	"math"
	"testing"
	"time"
)

func newTestState(t *testing.T, g Granularity, allowExtend bool, items ...Item) State {
	t.Helper()
	s, err := New(items, Options{
		Granularity: g,
		AllowExtend: allowExtend,
		Today:       Date(2021, 3, 1),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestNew_EmptySeedsTodayWindow(t *testing.T) {
	s := newTestState(t, Day, true)

	if !s.Window.Min.Equal(Date(2021, 3, 1)) || !s.Window.Max.Equal(Date(2021, 3, 31)) {
		t.Errorf("expected 2021-03-01..2021-03-31, got %s..%s", FormatDate(s.Window.Min), FormatDate(s.Window.Max))
	}
	if len(s.Columns) != 31 {
		t.Errorf("expected 31 columns, got %d", len(s.Columns))
	}
	if len(s.Items) != 0 {
		t.Errorf("expected no items, got %d", len(s.Items))
	}
}

func TestNew_RejectsBadOptions(t *testing.T) {
	if _, err := New(nil, Options{Granularity: Granularity(9)}); !errors.Is(err, ErrUnknownGranularity) {
		t.Errorf("expected ErrUnknownGranularity, got %v", err)
	}
	if _, err := New(nil, Options{PaddingBefore: -1}); !errors.Is(err, ErrInvalidWindow) {
		t.Errorf("expected ErrInvalidWindow, got %v", err)
	}
}

func TestNew_WindowFromItems(t *testing.T) {
	s := newTestState(t, Day, true,
		mustItem(t, 1, "2021-01-03", "2021-01-05"),
		mustItem(t, 2, "2021-01-01", "2021-01-02"),
		mustItem(t, 3, "2021-01-04", "2021-01-10"),
	)

	if !s.Window.Min.Equal(Date(2021, 1, 1)) || !s.Window.Max.Equal(Date(2021, 1, 10)) {
		t.Errorf("unexpected window %s..%s", FormatDate(s.Window.Min), FormatDate(s.Window.Max))
	}
	if s.LaneCount() != 2 {
		t.Errorf("expected 2 lanes, got %d", s.LaneCount())
	}
	if s.GridWidth() != 600 {
		t.Errorf("expected grid width 600, got %v", s.GridWidth())
	}
}

func TestEdgeTransitions_UnknownEdge(t *testing.T) {
	s := newTestState(t, Day, true, mustItem(t, 1, "2021-01-01", "2021-01-10"))
	bogus := Edge(2)

	if bogus.Valid() {
		t.Fatal("expected Edge(2) to be invalid")
	}
	for name, next := range map[string]State{
		"near":   s.NearEdge(bogus),
		"leave":  s.LeaveEdge(bogus),
		"extend": s.Extend(bogus, 5),
	} {
		if !next.Window.Equal(s.Window) || len(next.Columns) != len(s.Columns) {
			t.Errorf("%s: expected the state to be unchanged, window %v", name, next.Window)
		}
	}
	if w := ExtendWindow(s.Window, Day, bogus, 5); !w.Equal(s.Window) {
		t.Errorf("expected ExtendWindow to ignore an unknown edge, got %v", w)
	}
}

func TestNearEdge_ExtendsOncePerCrossing(t *testing.T) {
	s := newTestState(t, Day, true, mustItem(t, 1, "2021-01-01", "2021-01-10"))
	before := s.Window.Days()

	s1 := s.NearEdge(EdgeEnd)
	if !s1.Window.Max.Equal(Date(2021, 1, 30)) {
		t.Fatalf("expected max 2021-01-30, got %s", FormatDate(s1.Window.Max))
	}
	if len(s1.Columns) != 30 {
		t.Errorf("columns not regenerated: %d", len(s1.Columns))
	}

	// Still latched: repeated signals do nothing.
	s2 := s1.NearEdge(EdgeEnd).NearEdge(EdgeEnd)
	if !s2.Window.Equal(s1.Window) {
		t.Errorf("repeated near-edge signal extended the window again")
	}

	// Leaving and coming back extends again.
	s3 := s2.LeaveEdge(EdgeEnd).NearEdge(EdgeEnd)
	if !s3.Window.Max.Equal(Date(2021, 2, 19)) {
		t.Errorf("expected max 2021-02-19, got %s", FormatDate(s3.Window.Max))
	}

	// The start edge has its own latch.
	s4 := s3.NearEdge(EdgeStart)
	if !s4.Window.Min.Equal(Date(2020, 12, 12)) {
		t.Errorf("expected min 2020-12-12, got %s", FormatDate(s4.Window.Min))
	}

	// The receiver is never modified.
	if s.Window.Days() != before {
		t.Errorf("original state changed")
	}
}

func TestExtend_IsMonotonic(t *testing.T) {
	s := newTestState(t, Week, true, mustItem(t, 1, "2021-01-06", "2021-02-10"))
	prev := s.Window.Days()
	for i, steps := range []int{1, 0, -3, 5, 2} {
		edge := EdgeStart
		if i%2 == 1 {
			edge = EdgeEnd
		}
		s = s.Extend(edge, steps)
		if s.Window.Days() < prev {
			t.Fatalf("extension %d shrank the window: %d < %d", i, s.Window.Days(), prev)
		}
		prev = s.Window.Days()
	}
}

func TestChangeGranularity_CentersOnFocal(t *testing.T) {
	s := newTestState(t, Day, true, mustItem(t, 1, "2021-01-01", "2021-01-10"))
	focal := Date(2021, 6, 15)

	s, err := s.ChangeGranularity(Month, &focal)
	if err != nil {
		t.Fatal(err)
	}

	if s.Granularity != Month {
		t.Fatalf("granularity not changed")
	}
	if got := DaysBetween(s.Window.Min, s.Window.Max); got != 364 {
		t.Errorf("expected a month-span window, got %d days", got)
	}
	if !s.Window.Contains(focal) {
		t.Fatalf("window does not contain the focal date")
	}

	off := s.Mapper().Offset(focal)
	if math.Abs(off-s.GridWidth()/2) > Month.ColumnWidth() {
		t.Errorf("focal date at %v is not near the grid centre %v", off, s.GridWidth()/2)
	}
}

func TestChangeGranularity_Fallbacks(t *testing.T) {
	s := newTestState(t, Day, true,
		mustItem(t, 1, "2021-04-01", "2021-04-03"),
		mustItem(t, 2, "2021-02-01", "2021-02-03"),
	)
	s, _ = s.ChangeGranularity(Week, nil)
	want := CenteredWindow(Week, Date(2021, 2, 1))
	if !s.Window.Equal(want) {
		t.Errorf("expected window centred on earliest item start, got %s..%s", FormatDate(s.Window.Min), FormatDate(s.Window.Max))
	}

	empty := newTestState(t, Day, true)
	empty, _ = empty.ChangeGranularity(Month, nil)
	if !empty.Window.Equal(CenteredWindow(Month, Date(2021, 3, 1))) {
		t.Errorf("expected window centred on the first column")
	}
}

func TestChangeGranularity_InvalidLeavesStateUntouched(t *testing.T) {
	s := newTestState(t, Day, true, mustItem(t, 1, "2021-01-01", "2021-01-10"))
	got, err := s.ChangeGranularity(Granularity(-1), nil)
	if !errors.Is(err, ErrUnknownGranularity) {
		t.Fatalf("expected ErrUnknownGranularity, got %v", err)
	}
	if got.Granularity != Day || !got.Window.Equal(s.Window) {
		t.Errorf("state changed on invalid input")
	}

	same, _ := s.ChangeGranularity(Day, nil)
	if !same.Window.Equal(s.Window) {
		t.Errorf("changing to the current granularity should be a no-op")
	}
}

func TestFocus_StableAcrossGranularityToggles(t *testing.T) {
	s := newTestState(t, Day, true, mustItem(t, 1, "2021-01-01", "2021-12-31"))
	focal := Date(2021, 6, 15)
	s = s.SetFocus(focal)

	const viewport = 800.0
	var firstDayScroll float64
	for round := 0; round < 4; round++ {
		for _, g := range []Granularity{Month, Week, Day} {
			var err error
			s, err = s.ChangeGranularity(g, &s.Focus.Date)
			if err != nil {
				t.Fatal(err)
			}
			if !s.NeedsRecenter {
				t.Fatalf("%s: expected a recenter signal", g)
			}
			if s.Focus.Offset != s.Mapper().Offset(focal) {
				t.Fatalf("%s: stale focus offset", g)
			}

			scroll, ok := s.CenterScroll(viewport)
			if !ok {
				t.Fatal("focus lost")
			}
			center, err := s.Mapper().DateAt(scroll+viewport/2, s.Columns)
			if err != nil {
				t.Fatal(err)
			}
			if !center.Equal(focal) {
				t.Fatalf("round %d %s: viewport centre shows %s", round, g, FormatDate(center))
			}
			s = s.AckRecenter()

			if g == Day {
				if round == 0 {
					firstDayScroll = scroll
				} else if scroll != firstDayScroll {
					t.Fatalf("round %d: scroll drifted from %v to %v", round, firstDayScroll, scroll)
				}
			}
		}
	}
}

func TestSetFocusAt(t *testing.T) {
	s := newTestState(t, Week, true, mustItem(t, 1, "2021-01-04", "2021-01-31"))

	s2, err := s.SetFocusAt(180 + 2.5/7*180)
	if err != nil {
		t.Fatal(err)
	}
	if !s2.Focus.Date.Equal(Date(2021, 1, 13)) {
		t.Errorf("expected focus on 2021-01-13, got %s", FormatDate(s2.Focus.Date))
	}
	if s2.NeedsRecenter {
		t.Errorf("setting a focus should not request a recenter")
	}

	s3 := s2.ClearFocus()
	if s3.Focus != nil {
		t.Errorf("focus not cleared")
	}
	if _, ok := s3.CenterScroll(100); ok {
		t.Errorf("CenterScroll should report no focus")
	}
	if s2.Focus == nil {
		t.Errorf("ClearFocus modified the receiver")
	}
}

func TestFocusRecomputedOnExtend(t *testing.T) {
	s := newTestState(t, Day, true, mustItem(t, 1, "2021-01-01", "2021-01-10"))
	s = s.SetFocus(Date(2021, 1, 5))
	if s.Focus.Offset != 240 {
		t.Fatalf("expected offset 240, got %v", s.Focus.Offset)
	}

	s = s.NearEdge(EdgeStart)
	if s.Focus.Offset != 240+20*60 {
		t.Errorf("expected focus offset to move with prepended columns, got %v", s.Focus.Offset)
	}
	if !s.NeedsRecenter {
		t.Errorf("expected recenter signal after extension with focus")
	}
}

func TestReset(t *testing.T) {
	s := newTestState(t, Day, true, mustItem(t, 1, "2021-01-01", "2021-01-10"))
	initial := s.Window
	s = s.NearEdge(EdgeEnd).NearEdge(EdgeStart)
	s = s.Reset()
	if !s.Window.Equal(initial) {
		t.Errorf("reset did not restore the initial window")
	}
	if len(s.Columns) != 10 {
		t.Errorf("expected 10 columns after reset, got %d", len(s.Columns))
	}
}

func TestDragItem(t *testing.T) {
	s := newTestState(t, Day, true,
		mustItem(t, 1, "2021-01-01", "2021-01-05"),
		mustItem(t, 2, "2021-01-03", "2021-01-10"),
		mustItem(t, 3, "2021-01-06", "2021-01-08"),
	)

	// Two and a bit columns to the right.
	s2, err := s.DragItem(1, 130)
	if err != nil {
		t.Fatal(err)
	}
	it, _ := s2.Item(1)
	if !it.Start.Equal(Date(2021, 1, 3)) || !it.End.Equal(Date(2021, 1, 7)) {
		t.Errorf("expected 2021-01-03..2021-01-07, got %s", it)
	}
	if s2.LaneCount() != 3 {
		t.Errorf("expected lanes to be reassigned into 3 lanes, got %d", s2.LaneCount())
	}

	// Less than half a column does not move the item.
	s3, _ := s.DragItem(1, 25)
	if it, _ := s3.Item(1); !it.Start.Equal(Date(2021, 1, 1)) {
		t.Errorf("small drag moved the item to %s", FormatDate(it.Start))
	}
}

func TestDragItem_ExtendsWindow(t *testing.T) {
	s := newTestState(t, Day, true, mustItem(t, 1, "2021-01-01", "2021-01-05"))

	s2, err := s.DragItem(1, -3*60)
	if err != nil {
		t.Fatal(err)
	}
	it, _ := s2.Item(1)
	if !it.Start.Equal(Date(2020, 12, 29)) {
		t.Fatalf("expected start 2020-12-29, got %s", FormatDate(it.Start))
	}
	first, _ := s2.ColumnBounds()
	if first.After(it.Start) {
		t.Errorf("window was not extended to %s (first column %s)", FormatDate(it.Start), FormatDate(first))
	}
	if !s2.Window.Min.Equal(Date(2020, 12, 12)) {
		t.Errorf("expected one whole extension step, got min %s", FormatDate(s2.Window.Min))
	}
}

func TestDragItem_ClampsWithoutExtension(t *testing.T) {
	s := newTestState(t, Month, false,
		mustItem(t, 1, "2021-01-10", "2021-01-20"),
		mustItem(t, 2, "2021-03-01", "2021-03-31"),
	)

	s2, err := s.DragItem(1, 10*240)
	if err != nil {
		t.Fatal(err)
	}
	it, _ := s2.Item(1)
	if !it.End.Equal(Date(2021, 3, 31)) || !it.Start.Equal(Date(2021, 3, 21)) {
		t.Errorf("expected clamp to 2021-03-21..2021-03-31, got %s", it)
	}
	if !s2.Window.Equal(s.Window) {
		t.Errorf("window changed although extension is disallowed")
	}
}

func TestDragItem_UnknownItem(t *testing.T) {
	s := newTestState(t, Day, true, mustItem(t, 1, "2021-01-01", "2021-01-05"))
	got, err := s.DragItem(42, 60)
	if !errors.Is(err, ErrUnknownItem) {
		t.Fatalf("expected ErrUnknownItem, got %v", err)
	}
	if it, _ := got.Item(1); !it.Start.Equal(Date(2021, 1, 1)) {
		t.Errorf("state changed on failed drag")
	}
}

func TestUpdateItem(t *testing.T) {
	s := newTestState(t, Day, true, mustItem(t, 1, "2021-01-01", "2021-01-05"))

	if _, err := s.UpdateItem(1, "x", Date(2021, 1, 9), Date(2021, 1, 2)); !errors.Is(err, ErrInvertedInterval) {
		t.Fatalf("expected ErrInvertedInterval, got %v", err)
	}

	s2, err := s.UpdateItem(1, "Renamed", Date(2021, 2, 1), Date(2021, 2, 3))
	if err != nil {
		t.Fatal(err)
	}
	it, _ := s2.Item(1)
	if it.Name != "Renamed" || !it.Start.Equal(Date(2021, 2, 1)) {
		t.Errorf("unexpected item %+v", it)
	}
	if it.Lane != 0 {
		t.Errorf("expected lane 0, got %d", it.Lane)
	}
	if _, last := s2.ColumnBounds(); last.Before(it.End) {
		t.Errorf("window does not cover the edited item")
	}
}

func TestReveal(t *testing.T) {
	s := newTestState(t, Day, true,
		mustItem(t, 1, "2021-01-01", "2021-01-05"),
		mustItem(t, 2, "2021-01-20", "2021-01-25"),
	)
	s, _ = s.ChangeGranularity(Week, ptr(Date(2021, 6, 1)))

	s2, rect, err := s.Reveal(2)
	if err != nil {
		t.Fatal(err)
	}
	first, _ := s2.ColumnBounds()
	if first.After(Date(2021, 1, 20)) {
		t.Errorf("reveal did not materialise the item")
	}
	if rect.Left < 0 || rect.Right() > s2.GridWidth() {
		t.Errorf("rect %+v outside grid of width %v", rect, s2.GridWidth())
	}
	if s2.Window.Days() < s.Window.Days() {
		t.Errorf("reveal shrank the window")
	}

	// Already visible: nothing changes.
	s3, _, _ := s2.Reveal(2)
	if !s3.Window.Equal(s2.Window) {
		t.Errorf("reveal of a visible item changed the window")
	}
}

func TestZoomSteps(t *testing.T) {
	s := newTestState(t, Day, true)
	if got := s.ZoomIn(nil); got.Granularity != Day {
		t.Errorf("zooming in at day should stay at day")
	}
	s = s.ZoomOut(nil).ZoomOut(nil).ZoomOut(nil)
	if s.Granularity != Month {
		t.Errorf("expected month, got %s", s.Granularity)
	}
	if s = s.ZoomIn(nil); s.Granularity != Week {
		t.Errorf("expected week, got %s", s.Granularity)
	}
}

func TestLayout(t *testing.T) {
	s := newTestState(t, Day, true,
		mustItem(t, 1, "2021-01-01", "2021-01-05"),
		mustItem(t, 2, "2021-01-03", "2021-01-10"),
	)
	layout := s.Layout()
	if len(layout) != 2 {
		t.Fatalf("expected 2 placements, got %d", len(layout))
	}
	for _, p := range layout {
		want := s.Mapper().Position(p.Item.Start, p.Item.End, p.Item.Lane)
		if p.Rect != want {
			t.Errorf("item %d: expected %+v, got %+v", p.Item.ID, want, p.Rect)
		}
	}
	if layout[1].Rect.Top <= layout[0].Rect.Top {
		t.Errorf("second lane should be below the first")
	}
}

func ptr(t time.Time) *time.Time {
	return &t
}
