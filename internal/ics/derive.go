package ics

import (
	"errors"
	"sort"
	"time"

	"tussenuur/internal/model"
)

// MinGap is the shortest usable break between classes. A gap of exactly
// MinGap is accepted.
const MinGap = 60 * time.Minute

// Terminal derivation failures. These are surfaced to the user verbatim.
var (
	ErrNoEventsToday = errors.New("no events found for today in the timetable file")

	ErrNoFollowingClass = errors.New("could not find a class after your current class today")

	ErrNoAdjacentClasses = errors.New("could not find both a previous and upcoming class for today")

	ErrGapTooShort = errors.New("your next class starts less than an hour away, so no free hour is available")
)

// Derivation is the outcome of deriving "what am I between right now" from
// an event list.
type Derivation struct {
	Last model.Event
	Next model.Event

	// ReferenceInstant is the instant the free hour is measured from: the
	// end of the running class when one is in progress, otherwise now.
	ReferenceInstant time.Time
}

// Derive finds the surrounding pair of classes for the given instant.
//
// Only events on now's local calendar date participate. When a class is
// currently running (half-open containment: start <= now < end) the last
// class is that one and the next class is the earliest event starting at or
// after its end. Otherwise the last class is the most recently ended past
// event and the next class the earliest upcoming one; both must exist.
// Either way the gap up to the next class must be at least MinGap,
// inclusive at the boundary.
//
// The result does not depend on input order.
func Derive(events []model.Event, now time.Time) (Derivation, error) {
	today := filterSameDay(events, now)
	if len(today) == 0 {
		return Derivation{}, ErrNoEventsToday
	}
	sortEvents(today)

	if current, ok := findCurrent(today, now); ok {
		next, ok := firstStartingAtOrAfter(today, current.End)
		if !ok {
			return Derivation{}, ErrNoFollowingClass
		}
		if next.Start.Sub(current.End) < MinGap {
			return Derivation{}, ErrGapTooShort
		}
		return Derivation{Last: current, Next: next, ReferenceInstant: current.End}, nil
	}

	last, haveLast := latestEndedBy(today, now)
	next, haveNext := firstStartingAtOrAfter(today, now)
	if !haveLast || !haveNext {
		return Derivation{}, ErrNoAdjacentClasses
	}
	if next.Start.Sub(now) < MinGap {
		return Derivation{}, ErrGapTooShort
	}
	return Derivation{Last: last, Next: next, ReferenceInstant: now}, nil
}

func filterSameDay(events []model.Event, now time.Time) []model.Event {
	var out []model.Event
	for _, ev := range events {
		if sameLocalDate(ev.Start, now) {
			out = append(out, ev)
		}
	}
	return out
}

func sameLocalDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// sortEvents orders by start ascending with a full tie-break chain, so the
// derivation is invariant under shuffling of the input.
func sortEvents(events []model.Event) {
	sort.Slice(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if !a.Start.Equal(b.Start) {
			return a.Start.Before(b.Start)
		}
		if !a.End.Equal(b.End) {
			return a.End.Before(b.End)
		}
		if a.Location != b.Location {
			return a.Location < b.Location
		}
		return a.Summary < b.Summary
	})
}

func findCurrent(sorted []model.Event, now time.Time) (model.Event, bool) {
	for _, ev := range sorted {
		if ev.Contains(now) {
			return ev, true
		}
	}
	return model.Event{}, false
}

func firstStartingAtOrAfter(sorted []model.Event, t time.Time) (model.Event, bool) {
	for _, ev := range sorted {
		if !ev.Start.Before(t) {
			return ev, true
		}
	}
	return model.Event{}, false
}

func latestEndedBy(sorted []model.Event, now time.Time) (model.Event, bool) {
	var best model.Event
	found := false
	for _, ev := range sorted {
		if ev.End.After(now) {
			continue
		}
		if !found || ev.End.After(best.End) {
			best = ev
			found = true
		}
	}
	return best, found
}
