package timeline

import (
	"sort"
	"time"
)

// AssignLanes packs items into lanes so that no two items in a lane overlap.
//
// Items are visited in order of start date and each one goes into the
// lowest-numbered lane whose last item ended strictly before it starts.
// Dates are inclusive days, so an item ending on the day another starts
// shares that day's column and keeps the lane busy. Earliest-start-first
// first fit uses as many lanes as the maximum number of items covering a
// single day.
//
// The input slice is not modified; the result is sorted by start date.
func AssignLanes(items []Item) []Item {
	if len(items) == 0 {
		return []Item{}
	}

	sorted := make([]Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	var laneEnd []time.Time
	for i := range sorted {
		lane := -1
		for l, end := range laneEnd {
			if end.Before(sorted[i].Start) {
				lane = l
				break
			}
		}
		if lane < 0 {
			lane = len(laneEnd)
			laneEnd = append(laneEnd, sorted[i].End)
		} else {
			laneEnd[lane] = sorted[i].End
		}
		sorted[i].Lane = lane
	}

	return sorted
}

// LaneCount returns the number of lanes used by lane-tagged items.
func LaneCount(items []Item) int {
	n := 0
	for _, it := range items {
		if it.Lane+1 > n {
			n = it.Lane + 1
		}
	}
	return n
}
