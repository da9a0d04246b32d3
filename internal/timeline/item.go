package timeline

import (
	"fmt"
	"time"
)

// NoLane marks an item that has not been through AssignLanes yet.
const NoLane = -1

// Item is a named calendar interval shown on the timeline.
// Start and End are inclusive calendar days.
type Item struct {
	ID    int
	Name  string
	Start time.Time
	End   time.Time

	// Lane is derived by AssignLanes and is never source-of-truth state.
	Lane int
}

// RawItem is an item as it arrives from an item source, with ISO date strings.
type RawItem struct {
	ID    int    `yaml:"id" json:"id"`
	Name  string `yaml:"name" json:"name"`
	Start string `yaml:"start" json:"start"`
	End   string `yaml:"end" json:"end"`
}

// NewItem returns an item for the interval [start, end]. Inverted intervals
// are rejected rather than swapped.
func NewItem(id int, name string, start, end time.Time) (Item, error) {
	start, end = DayOf(start), DayOf(end)
	if start.After(end) {
		return Item{}, &ItemError{ID: id, Err: fmt.Errorf("%w: %s > %s", ErrInvertedInterval, FormatDate(start), FormatDate(end))}
	}
	return Item{ID: id, Name: name, Start: start, End: end, Lane: NoLane}, nil
}

// ParseItem converts a RawItem, rejecting malformed dates and inverted intervals.
func ParseItem(raw RawItem) (Item, error) {
	start, err := ParseDate(raw.Start)
	if err != nil {
		return Item{}, &ItemError{ID: raw.ID, Err: fmt.Errorf("start: %w", err)}
	}
	end, err := ParseDate(raw.End)
	if err != nil {
		return Item{}, &ItemError{ID: raw.ID, Err: fmt.Errorf("end: %w", err)}
	}
	return NewItem(raw.ID, raw.Name, start, end)
}

// ParseItems converts every raw item it can. Each rejected item is reported
// individually and does not stop the rest of the set from being processed.
func ParseItems(raws []RawItem) ([]Item, []*ItemError) {
	items := make([]Item, 0, len(raws))
	var rejected []*ItemError
	for _, raw := range raws {
		item, err := ParseItem(raw)
		if err != nil {
			rejected = append(rejected, err.(*ItemError))
			continue
		}
		items = append(items, item)
	}
	return items, rejected
}

// Raw converts the item back to its string form.
func (it Item) Raw() RawItem {
	return RawItem{ID: it.ID, Name: it.Name, Start: FormatDate(it.Start), End: FormatDate(it.End)}
}

// Duration returns the number of calendar days the item covers, counting both ends.
func (it Item) Duration() int {
	return DaysBetween(it.Start, it.End) + 1
}

// Overlaps reports whether two items share at least one calendar day.
// Both ends are inclusive, so an item ending on the day another starts
// overlaps it.
func (it Item) Overlaps(other Item) bool {
	return !it.Start.After(other.End) && !other.Start.After(it.End)
}

// String implements fmt.Stringer.
func (it Item) String() string {
	return fmt.Sprintf("%s (%s..%s)", it.Name, FormatDate(it.Start), FormatDate(it.End))
}
