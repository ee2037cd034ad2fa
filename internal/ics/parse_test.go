package ics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBasicEvent(t *testing.T) {
	raw := "BEGIN:VCALENDAR\r\n" +
		"BEGIN:VEVENT\r\n" +
		"DTSTART:20240115T090000\r\n" +
		"DTEND:20240115T100000\r\n" +
		"LOCATION:Jan Mouton_1013\r\n" +
		"SUMMARY:Computer Science 214\r\n" +
		"END:VEVENT\r\n" +
		"END:VCALENDAR\r\n"

	events := Parse(raw)
	require.Len(t, events, 1)

	ev := events[0]
	assert.Equal(t, time.Date(2024, 1, 15, 9, 0, 0, 0, time.Local), ev.Start)
	assert.Equal(t, time.Date(2024, 1, 15, 10, 0, 0, 0, time.Local), ev.End)
	assert.Equal(t, "Jan Mouton_1013", ev.Location)
	assert.Equal(t, "Computer Science 214", ev.Summary)
}

func TestParseUTCAndAllDayDates(t *testing.T) {
	raw := "BEGIN:VEVENT\n" +
		"DTSTART:20240115T070000Z\n" +
		"DTEND:20240115\n" +
		"LOCATION:Merensky_230\n" +
		"END:VEVENT\n"

	events := Parse(raw)
	require.Len(t, events, 1)

	assert.Equal(t, time.Date(2024, 1, 15, 7, 0, 0, 0, time.UTC), events[0].Start)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local), events[0].End,
		"a bare date is local midnight")
}

func TestParseInReadsNaiveDatetimesInGivenZone(t *testing.T) {
	raw := "BEGIN:VEVENT\n" +
		"DTSTART:20240115T090000\n" +
		"DTEND:20240115\n" +
		"LOCATION:Merensky_230\n" +
		"END:VEVENT\n"

	sast := time.FixedZone("SAST", 2*60*60)
	events := ParseIn(raw, sast)
	require.Len(t, events, 1)

	assert.Equal(t, time.Date(2024, 1, 15, 9, 0, 0, 0, sast), events[0].Start)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, sast), events[0].End,
		"a bare date is midnight in the given zone")

	events = ParseIn(raw, nil)
	require.Len(t, events, 1)
	assert.Equal(t, time.Date(2024, 1, 15, 9, 0, 0, 0, time.Local), events[0].Start,
		"nil zone falls back to process-local")
}

func TestParseUnfoldsContinuationLines(t *testing.T) {
	raw := "BEGIN:VEVENT\r\n" +
		"DTSTART:20240115T090000\r\n" +
		"DTEND:20240115T100000\r\n" +
		"LOCATION:Jan Mouton Learning\r\n" +
		" Centre_2015\r\n" +
		"SUMMARY:Folded\r\n" +
		"END:VEVENT\r\n"

	events := Parse(raw)
	require.Len(t, events, 1)
	assert.Equal(t, "Jan Mouton Learning Centre_2015", events[0].Location)
}

func TestParseUnescapesLocation(t *testing.T) {
	raw := "BEGIN:VEVENT\n" +
		"DTSTART:20240115T090000\n" +
		"DTEND:20240115T100000\n" +
		`LOCATION:Narga\, Natural Science\nFloor 2` + "\n" +
		"END:VEVENT\n"

	events := Parse(raw)
	require.Len(t, events, 1)
	assert.Equal(t, "Narga, Natural Science Floor 2", events[0].Location)
}

func TestParseIgnoresPropertyParameters(t *testing.T) {
	raw := "BEGIN:VEVENT\n" +
		"DTSTART;TZID=Africa/Johannesburg:20240115T090000\n" +
		"DTEND;TZID=Africa/Johannesburg:20240115T100000\n" +
		"LOCATION;LANGUAGE=en:Van Der Sterr_1024\n" +
		"END:VEVENT\n"

	events := Parse(raw)
	require.Len(t, events, 1)
	assert.Equal(t, "Van Der Sterr_1024", events[0].Location)
	assert.Equal(t, 9, events[0].Start.Hour())
}

func TestParseDropsIncompleteEvents(t *testing.T) {
	raw := "BEGIN:VEVENT\n" + // no location
		"DTSTART:20240115T090000\n" +
		"DTEND:20240115T100000\n" +
		"SUMMARY:Homeless event\n" +
		"END:VEVENT\n" +
		"BEGIN:VEVENT\n" + // garbage date
		"DTSTART:tomorrowish\n" +
		"DTEND:20240115T100000\n" +
		"LOCATION:Somewhere_1\n" +
		"END:VEVENT\n" +
		"BEGIN:VEVENT\n" + // missing END marker
		"DTSTART:20240115T110000\n" +
		"DTEND:20240115T120000\n" +
		"LOCATION:Lost_2\n" +
		"BEGIN:VEVENT\n" + // intact
		"DTSTART:20240115T130000\n" +
		"DTEND:20240115T140000\n" +
		"LOCATION:Kept_3\n" +
		"END:VEVENT\n"

	events := Parse(raw)
	require.Len(t, events, 1, "malformed events are dropped, the rest of the file survives")
	assert.Equal(t, "Kept_3", events[0].Location)
}

func TestParseCapturesRRule(t *testing.T) {
	raw := "BEGIN:VEVENT\n" +
		"DTSTART:20240108T090000\n" +
		"DTEND:20240108T100000\n" +
		"LOCATION:Merensky_230\n" +
		"RRULE:FREQ=WEEKLY;BYDAY=MO\n" +
		"END:VEVENT\n"

	events := Parse(raw)
	require.Len(t, events, 1)
	assert.Equal(t, "FREQ=WEEKLY;BYDAY=MO", events[0].RawRRule)
}

func TestParseEmptyInput(t *testing.T) {
	assert.Empty(t, Parse(""))
	assert.Empty(t, Parse("not a calendar at all"))
}
