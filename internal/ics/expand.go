package ics

import (
	"time"

	"github.com/teambition/rrule-go"

	appLog "tussenuur/internal/log"
	"tussenuur/internal/model"
)

// maxOccurrencesPerEvent caps expansion as a guard against pathological
// rules; a single day never legitimately holds more.
const maxOccurrencesPerEvent = 100

// ExpandForDay resolves recurring events into concrete instances falling on
// the local calendar day of reference. One-off events pass through
// untouched, so exports consisting only of discrete events are unaffected.
// Weekly class exports carry an RRULE on each subject; without expansion
// they would only ever match the literal DTSTART date.
//
// An unparsable RRULE keeps the base event as-is rather than dropping it.
func ExpandForDay(events []model.Event, reference time.Time) []model.Event {
	dayStart := time.Date(reference.Year(), reference.Month(), reference.Day(), 0, 0, 0, 0, reference.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	out := make([]model.Event, 0, len(events))
	for _, ev := range events {
		if ev.RawRRule == "" {
			out = append(out, ev)
			continue
		}

		rule, err := rrule.StrToRRule(ev.RawRRule)
		if err != nil {
			appLog.Error("unparsable RRULE, keeping base event", err, "rrule", ev.RawRRule, "summary", ev.Summary)
			out = append(out, ev)
			continue
		}
		rule.DTStart(ev.Start)

		starts := rule.Between(dayStart.In(ev.Start.Location()), dayEnd.In(ev.Start.Location()), true)
		if len(starts) > maxOccurrencesPerEvent {
			starts = starts[:maxOccurrencesPerEvent]
		}

		duration := ev.Duration()
		for _, start := range starts {
			occ := ev
			occ.Start = start
			occ.End = start.Add(duration)
			occ.RawRRule = ""
			out = append(out, occ)
		}
	}
	return out
}
