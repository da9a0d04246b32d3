package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	appLog "github.com/hy4ri/timeline-tui/internal/log"
	"github.com/hy4ri/timeline-tui/internal/timeline"
)

const (
	defaultHorizonDays = 365

	// Safety cap for unbounded recurrences.
	maxOccurrencesPerEvent = 1000
)

// event is the part of a VEVENT the timeline cares about. Dates are
// inclusive calendar days.
type event struct {
	uid     string
	summary string
	start   time.Time
	end     time.Time
	rrule   string
	exDates []time.Time
}

// LoadICS reads an iCalendar file and turns every event occurrence inside
// the horizon into a raw item.
func LoadICS(path string, opts Options) ([]timeline.RawItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read calendar: %w", err)
	}
	return ParseICS(bytes.NewReader(data), opts)
}

// ParseICS parses an iCalendar stream. Recurring events are expanded within
// opts.HorizonDays of opts.Today. Occurrences get sequential ids in file order.
func ParseICS(r io.Reader, opts Options) ([]timeline.RawItem, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse calendar: %w", err)
	}

	today := opts.Today
	if today.IsZero() {
		today = timeline.Today()
	}
	horizon := opts.HorizonDays
	if horizon <= 0 {
		horizon = defaultHorizonDays
	}
	rangeStart := timeline.AddDays(today, -horizon)
	rangeEnd := timeline.AddDays(today, horizon)

	raws := make([]timeline.RawItem, 0)
	nextID := 1
	for _, ve := range cal.Events() {
		ev, err := parseEvent(ve)
		if err != nil {
			appLog.Error("ics vevent skipped", err)
			continue
		}

		occurrences, err := expand(ev, rangeStart, rangeEnd)
		if err != nil {
			appLog.Error("ics rrule expansion failed", err, "uid", ev.uid, "rrule", ev.rrule)
			continue
		}
		for _, start := range occurrences {
			end := timeline.AddDays(start, timeline.DaysBetween(ev.start, ev.end))
			raws = append(raws, timeline.RawItem{
				ID:    nextID,
				Name:  ev.summary,
				Start: timeline.FormatDate(start),
				End:   timeline.FormatDate(end),
			})
			nextID++
		}
	}

	appLog.Debug("ics parse completed", "events", len(cal.Events()), "items", len(raws))
	return raws, nil
}

func parseEvent(ve *ical.VEvent) (event, error) {
	var ev event
	if p := ve.GetProperty(ical.ComponentPropertyUniqueId); p != nil {
		ev.uid = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		ev.summary = p.Value
	}
	if ev.summary == "" {
		ev.summary = "(untitled)"
	}

	startProp := ve.GetProperty(ical.ComponentPropertyDtStart)
	if startProp == nil {
		return ev, fmt.Errorf("event %q: missing DTSTART", ev.uid)
	}

	if isDateValue(startProp) {
		start, err := parseICSDate(startProp.Value)
		if err != nil {
			return ev, fmt.Errorf("event %q: %w", ev.uid, err)
		}
		ev.start, ev.end = start, start
		// DTEND of an all-day event is exclusive.
		if p := ve.GetProperty(ical.ComponentPropertyDtEnd); p != nil {
			if end, err := parseICSDate(p.Value); err == nil && end.After(start) {
				ev.end = timeline.AddDays(end, -1)
			}
		}
	} else {
		start, err := ve.GetStartAt()
		if err != nil {
			return ev, fmt.Errorf("event %q: %w", ev.uid, err)
		}
		ev.start, ev.end = timeline.DayOf(start.In(time.Local)), timeline.DayOf(start.In(time.Local))
		if end, err := ve.GetEndAt(); err == nil && end.After(start) {
			// An event ending exactly at midnight does not occupy the next day.
			ev.end = timeline.DayOf(end.Add(-time.Nanosecond).In(time.Local))
		}
	}

	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil {
		ev.rrule = p.Value
	}
	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		for _, part := range strings.Split(p.Value, ",") {
			if d, err := parseICSDate(part); err == nil {
				ev.exDates = append(ev.exDates, d)
			}
		}
	}
	return ev, nil
}

// expand returns the start day of every occurrence overlapping [from, to].
func expand(ev event, from, to time.Time) ([]time.Time, error) {
	if ev.rrule == "" {
		if ev.end.Before(from) || ev.start.After(to) {
			return nil, nil
		}
		return []time.Time{ev.start}, nil
	}

	opt, err := rrule.StrToROption(ev.rrule)
	if err != nil {
		return nil, err
	}
	opt.Dtstart = ev.start
	r, err := rrule.NewRRule(*opt)
	if err != nil {
		return nil, err
	}

	var set rrule.Set
	set.RRule(r)
	for _, ex := range ev.exDates {
		set.ExDate(ex)
	}

	// Occurrences starting before from may still reach into the range.
	span := timeline.DaysBetween(ev.start, ev.end)
	starts := set.Between(timeline.AddDays(from, -span), to, true)
	if len(starts) > maxOccurrencesPerEvent {
		appLog.Error("ics occurrences truncated", errors.New("max occurrences reached"), "uid", ev.uid, "cap", maxOccurrencesPerEvent)
		starts = starts[:maxOccurrencesPerEvent]
	}
	out := make([]time.Time, 0, len(starts))
	for _, s := range starts {
		out = append(out, timeline.DayOf(s))
	}
	return out, nil
}

func isDateValue(p *ical.IANAProperty) bool {
	if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}

// parseICSDate reads the calendar day of a DATE or DATE-TIME value.
func parseICSDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, errors.New("empty date value")
	}
	if i := strings.IndexByte(v, 'T'); i >= 0 {
		v = v[:i]
	}
	t, err := time.Parse("20060102", v)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", timeline.ErrMalformedDate, v)
	}
	return timeline.DayOf(t), nil
}
