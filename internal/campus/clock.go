package campus

import (
	"fmt"
	"time"
)

// WeekNumber returns the ISO-8601 week number of t. The university reporting
// system keys timetables by this value.
func WeekNumber(t time.Time) int {
	_, week := t.ISOWeek()
	return week
}

// TimeSlot is an hourly slot boundary pair in "HH:MM" form.
type TimeSlot struct {
	Start string
	End   string
}

// HourSlot returns the hourly slot containing t, e.g. 10:42 -> 10:00-11:00.
func HourSlot(t time.Time) TimeSlot {
	return TimeSlot{
		Start: fmt.Sprintf("%02d:00", t.Hour()),
		End:   fmt.Sprintf("%02d:00", (t.Hour()+1)%24),
	}
}

// SlotFloor returns the 15-minute slot token containing t, e.g.
// 09:05 -> "09:00", 14:40 -> "14:30". Booked-slot membership is checked
// against this token.
func SlotFloor(t time.Time) string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute()/15*15)
}

// FreeHourTokens returns the four 15-minute slot tokens covering the hour
// starting at t, beginning with SlotFloor(t). A room is only free for the
// hour when none of these tokens is booked.
func FreeHourTokens(t time.Time) []string {
	floor := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute()/15*15, 0, 0, t.Location())
	tokens := make([]string, 0, 4)
	for i := 0; i < 4; i++ {
		tokens = append(tokens, floor.Add(time.Duration(i)*15*time.Minute).Format("15:04"))
	}
	return tokens
}
