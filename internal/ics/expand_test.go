package ics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tussenuur/internal/model"
)

func TestExpandForDayWeeklyRule(t *testing.T) {
	// A weekly Monday class first held 2024-01-08 must produce an instance
	// on Monday 2024-01-15.
	ev := model.Event{
		Summary:  "Applied Maths B 154",
		Location: "Merensky_230",
		Start:    time.Date(2024, 1, 8, 9, 0, 0, 0, time.Local),
		End:      time.Date(2024, 1, 8, 10, 30, 0, 0, time.Local),
		RawRRule: "FREQ=WEEKLY;BYDAY=MO",
	}

	out := ExpandForDay([]model.Event{ev}, time.Date(2024, 1, 15, 11, 0, 0, 0, time.Local))
	require.Len(t, out, 1)

	assert.Equal(t, time.Date(2024, 1, 15, 9, 0, 0, 0, time.Local), out[0].Start)
	assert.Equal(t, time.Date(2024, 1, 15, 10, 30, 0, 0, time.Local), out[0].End,
		"the original duration is preserved")
	assert.Empty(t, out[0].RawRRule, "expanded instances are concrete events")
	assert.Equal(t, "Merensky_230", out[0].Location)
}

func TestExpandForDayNoInstanceOnOtherDays(t *testing.T) {
	ev := model.Event{
		Location: "Merensky_230",
		Start:    time.Date(2024, 1, 8, 9, 0, 0, 0, time.Local),
		End:      time.Date(2024, 1, 8, 10, 0, 0, 0, time.Local),
		RawRRule: "FREQ=WEEKLY;BYDAY=MO",
	}

	// 2024-01-16 is a Tuesday.
	out := ExpandForDay([]model.Event{ev}, time.Date(2024, 1, 16, 11, 0, 0, 0, time.Local))
	assert.Empty(t, out)
}

func TestExpandForDayPassesThroughOneOffEvents(t *testing.T) {
	ev := model.Event{
		Location: "Jan Mouton_1013",
		Start:    time.Date(2024, 1, 10, 9, 0, 0, 0, time.Local),
		End:      time.Date(2024, 1, 10, 10, 0, 0, 0, time.Local),
	}

	out := ExpandForDay([]model.Event{ev}, time.Date(2024, 1, 15, 11, 0, 0, 0, time.Local))
	require.Len(t, out, 1)
	assert.Equal(t, ev, out[0], "one-off events pass through even off-day; derivation filters by date")
}

func TestExpandForDayKeepsEventOnBadRule(t *testing.T) {
	ev := model.Event{
		Location: "Jan Mouton_1013",
		Start:    time.Date(2024, 1, 15, 9, 0, 0, 0, time.Local),
		End:      time.Date(2024, 1, 15, 10, 0, 0, 0, time.Local),
		RawRRule: "FREQ=SOMETIMES",
	}

	out := ExpandForDay([]model.Event{ev}, time.Date(2024, 1, 15, 11, 0, 0, 0, time.Local))
	require.Len(t, out, 1)
	assert.Equal(t, ev.Start, out[0].Start)
}
