package ics

import (
	"errors"
	"time"

	"tussenuur/internal/campus"
	appLog "tussenuur/internal/log"
	"tussenuur/internal/model"
)

// ErrNoEvents means nothing usable could be read out of the uploaded text.
var ErrNoEvents = errors.New("no events could be parsed from the uploaded timetable file")

// Resolution is a successful upload resolution: the classes surrounding the
// user's free hour, their matched campus locations, and the instant the
// free hour is measured from.
type Resolution struct {
	LastEvent model.Event
	NextEvent model.Event

	LastLocation campus.Location
	NextLocation campus.Location

	ReferenceInstant time.Time
}

// Resolve is the uploaded-timetable entry point: raw ICS text plus a
// reference instant in, a Resolution or a single terminal error out.
//
// The pipeline is parse -> expand recurring entries onto now's day ->
// derive the surrounding class pair -> match both free-text locations to
// canonical campus records. Parser-level problems never surface here (bad
// events are dropped); derivation and matching failures are returned
// verbatim.
//
// Naive datetimes in the upload are read in now's zone, so the same-day
// filter and gap arithmetic stay correct when the process timezone differs
// from the configured campus timezone.
func Resolve(rawText string, now time.Time, locations *campus.Set) (*Resolution, error) {
	events := ParseIn(rawText, now.Location())
	if len(events) == 0 {
		return nil, ErrNoEvents
	}

	expanded := ExpandForDay(events, now)
	appLog.Debug("upload parsed", "events", len(events), "expanded", len(expanded))

	derived, err := Derive(expanded, now)
	if err != nil {
		return nil, err
	}

	lastLoc, err := locations.Match(derived.Last.Location)
	if err != nil {
		return nil, err
	}
	nextLoc, err := locations.Match(derived.Next.Location)
	if err != nil {
		return nil, err
	}

	return &Resolution{
		LastEvent:        derived.Last,
		NextEvent:        derived.Next,
		LastLocation:     lastLoc,
		NextLocation:     nextLoc,
		ReferenceInstant: derived.ReferenceInstant,
	}, nil
}
