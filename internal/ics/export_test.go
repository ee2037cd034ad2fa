package ics

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFreeHourHold(t *testing.T) {
	start := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	now := time.Date(2024, 1, 15, 9, 55, 0, 0, time.UTC)

	out := FreeHourHold("Jan Mouton 1013", start, start.Add(time.Hour), now)

	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR"))
	assert.Contains(t, out, "BEGIN:VEVENT")
	assert.Contains(t, out, "LOCATION:Jan Mouton 1013")
	assert.Contains(t, out, "SUMMARY:Study hour: Jan Mouton 1013")
	assert.Contains(t, out, "DTSTART:20240115T100000Z")
	assert.Contains(t, out, "DTEND:20240115T110000Z")
	assert.Contains(t, out, "END:VCALENDAR")
}

func TestFreeHourHoldRoundTrips(t *testing.T) {
	start := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	out := FreeHourHold("Merensky 230", start, start.Add(time.Hour), start)

	events := Parse(out)
	assert.Len(t, events, 1)
	assert.Equal(t, "Merensky 230", events[0].Location)
}
