package timeline

import (
	"math/rand"
	"testing"
)

func mustItem(t testing.TB, id int, start, end string) Item {
	t.Helper()
	it, err := ParseItem(RawItem{ID: id, Name: start + ".." + end, Start: start, End: end})
	if err != nil {
		t.Fatalf("ParseItem(%d): %v", id, err)
	}
	return it
}

func laneOf(items []Item, id int) int {
	for _, it := range items {
		if it.ID == id {
			return it.Lane
		}
	}
	return NoLane
}

func TestAssignLanes_Example(t *testing.T) {
	items := []Item{
		mustItem(t, 1, "2021-01-01", "2021-01-05"),
		mustItem(t, 2, "2021-01-03", "2021-01-10"),
		mustItem(t, 3, "2021-01-06", "2021-01-08"),
	}

	got := AssignLanes(items)

	want := map[int]int{1: 0, 2: 1, 3: 0}
	for id, lane := range want {
		if l := laneOf(got, id); l != lane {
			t.Errorf("item %d: expected lane %d, got %d", id, lane, l)
		}
	}
	if LaneCount(got) != 2 {
		t.Errorf("expected 2 lanes, got %d", LaneCount(got))
	}
}

func TestAssignLanes_Empty(t *testing.T) {
	got := AssignLanes(nil)
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestAssignLanes_DoesNotMutateInput(t *testing.T) {
	items := []Item{
		mustItem(t, 1, "2021-02-01", "2021-02-03"),
		mustItem(t, 2, "2021-01-01", "2021-01-03"),
	}
	AssignLanes(items)
	if items[0].ID != 1 || items[0].Lane != NoLane {
		t.Errorf("input was modified: %+v", items[0])
	}
}

func TestAssignLanes_TouchingEndpointsShareADay(t *testing.T) {
	items := []Item{
		mustItem(t, 1, "2021-01-01", "2021-01-05"),
		mustItem(t, 2, "2021-01-05", "2021-01-07"),
		mustItem(t, 3, "2021-01-08", "2021-01-08"),
	}

	got := AssignLanes(items)

	if laneOf(got, 2) != 1 {
		t.Errorf("item starting on the previous item's end day should get a new lane, got %d", laneOf(got, 2))
	}
	if laneOf(got, 3) != 0 {
		t.Errorf("zero-duration item after both should reuse lane 0, got %d", laneOf(got, 3))
	}
}

func TestAssignLanes_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	base := Date(2021, 1, 1)

	for round := 0; round < 50; round++ {
		n := 1 + rng.Intn(40)
		items := make([]Item, n)
		for i := range items {
			start := AddDays(base, rng.Intn(60))
			it, err := NewItem(i, "", start, AddDays(start, rng.Intn(10)))
			if err != nil {
				t.Fatal(err)
			}
			items[i] = it
		}

		got := AssignLanes(items)

		// No two items in the same lane overlap.
		for i := range got {
			for j := i + 1; j < len(got); j++ {
				if got[i].Lane == got[j].Lane && got[i].Overlaps(got[j]) {
					t.Fatalf("round %d: %v and %v overlap in lane %d", round, got[i], got[j], got[i].Lane)
				}
			}
		}

		// Lane count equals the maximum number of items covering one day.
		maxOverlap := 0
		for d := 0; d < 80; d++ {
			day := AddDays(base, d)
			count := 0
			for _, it := range items {
				if !day.Before(it.Start) && !day.After(it.End) {
					count++
				}
			}
			if count > maxOverlap {
				maxOverlap = count
			}
		}
		if LaneCount(got) != maxOverlap {
			t.Fatalf("round %d: expected %d lanes, got %d", round, maxOverlap, LaneCount(got))
		}

		// Reassigning lanes from the output gives the same assignment.
		stripped := make([]Item, len(got))
		copy(stripped, got)
		for i := range stripped {
			stripped[i].Lane = NoLane
		}
		again := AssignLanes(stripped)
		for i := range got {
			if again[i].ID != got[i].ID || again[i].Lane != got[i].Lane {
				t.Fatalf("round %d: reassignment differs at %d: %+v vs %+v", round, i, again[i], got[i])
			}
		}
	}
}

func BenchmarkAssignLanes(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	base := Date(2021, 1, 1)
	items := make([]Item, 1000)
	for i := range items {
		start := AddDays(base, rng.Intn(365))
		items[i], _ = NewItem(i, "", start, AddDays(start, rng.Intn(30)))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		AssignLanes(items)
	}
}
