package model

import "time"

// Event is a single discrete calendar event as extracted from an uploaded
// timetable export. Recurring entries are expanded into one Event per
// occurrence before schedule derivation; most logic operates on flat
// []Event slices.
type Event struct {
	Summary  string
	Location string

	// Start / End are local instants unless the source carried an explicit
	// UTC marker.
	Start time.Time
	End   time.Time

	// RawRRule is the unparsed RRULE value, empty for one-off events.
	RawRRule string
}

// Duration returns the event length.
func (e Event) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// Contains reports whether t falls inside the half-open interval
// [Start, End).
func (e Event) Contains(t time.Time) bool {
	return !e.Start.After(t) && t.Before(e.End)
}
