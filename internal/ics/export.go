package ics

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"
)

// FreeHourHold serializes a calendar holding a single event blocking out a
// found free hour in a room, suitable for download and import into the
// user's own calendar.
func FreeHourHold(room string, start, end, now time.Time) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//tussenuur//free hour hold//EN")

	uid := fmt.Sprintf("%s-%d@tussenuur", start.Format("20060102T150405"), start.Unix())
	ev := cal.AddEvent(uid)
	ev.SetCreatedTime(now)
	ev.SetDtStampTime(now)
	ev.SetStartAt(start)
	ev.SetEndAt(end)
	ev.SetSummary(fmt.Sprintf("Study hour: %s", room))
	ev.SetLocation(room)
	ev.SetDescription("Free venue found by tussenuur between your classes.")

	return cal.Serialize()
}
