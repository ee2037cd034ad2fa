package campus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekNumber(t *testing.T) {
	assert.Equal(t, 3, WeekNumber(time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)))
	// 2024-12-30 is a Monday belonging to ISO week 1 of 2025.
	assert.Equal(t, 1, WeekNumber(time.Date(2024, 12, 30, 10, 0, 0, 0, time.UTC)))
}

func TestHourSlot(t *testing.T) {
	slot := HourSlot(time.Date(2024, 1, 15, 10, 45, 12, 0, time.UTC))
	assert.Equal(t, "10:00", slot.Start)
	assert.Equal(t, "11:00", slot.End)

	slot = HourSlot(time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC))
	assert.Equal(t, "09:00", slot.Start)
	assert.Equal(t, "10:00", slot.End)
}

func TestHourSlotWrapsMidnight(t *testing.T) {
	slot := HourSlot(time.Date(2024, 1, 15, 23, 30, 0, 0, time.UTC))
	assert.Equal(t, "23:00", slot.Start)
	assert.Equal(t, "00:00", slot.End)
}

func TestFreeHourTokens(t *testing.T) {
	tokens := FreeHourTokens(time.Date(2024, 1, 15, 10, 15, 0, 0, time.UTC))
	assert.Equal(t, []string{"10:15", "10:30", "10:45", "11:00"}, tokens)

	tokens = FreeHourTokens(time.Date(2024, 1, 15, 10, 7, 0, 0, time.UTC))
	assert.Equal(t, []string{"10:00", "10:15", "10:30", "10:45"}, tokens)

	tokens = FreeHourTokens(time.Date(2024, 1, 15, 23, 50, 0, 0, time.UTC))
	assert.Equal(t, []string{"23:45", "00:00", "00:15", "00:30"}, tokens, "tokens wrap past midnight")
}

func TestSlotFloor(t *testing.T) {
	cases := []struct {
		minute int
		want   string
	}{
		{0, "10:00"},
		{7, "10:00"},
		{15, "10:15"},
		{29, "10:15"},
		{31, "10:30"},
		{59, "10:45"},
	}
	for _, c := range cases {
		got := SlotFloor(time.Date(2024, 1, 15, 10, c.minute, 33, 0, time.UTC))
		assert.Equal(t, c.want, got, "minute %d", c.minute)
	}
}
