package timetable

import (
	"regexp"
	"strings"
)

// SourceQuirks parameterizes the extraction rules that differ between
// timetable renderings: how a booked cell is recognized and how day headers
// are matched. Historically these lived in divergent copies of the parser;
// they are injection points on one implementation instead.
type SourceQuirks struct {
	// IsBookingCell reports whether an owning cell represents the start of a
	// booking.
	IsBookingCell func(c Cell) bool
	// HeaderMatches reports whether a header cell text refers to the
	// requested day.
	HeaderMatches func(header, dayPrefix string) bool
}

// DefaultQuirks matches the university reporting service output: bookings
// carry the object-cell-border class and day headers are matched on a
// case-insensitive prefix.
func DefaultQuirks() SourceQuirks {
	return SourceQuirks{
		IsBookingCell: func(c Cell) bool {
			return strings.Contains(c.Class, "object-cell-border")
		},
		HeaderMatches: func(header, dayPrefix string) bool {
			return strings.HasPrefix(strings.ToLower(strings.TrimSpace(header)), dayPrefix)
		},
	}
}

var timeTokenRe = regexp.MustCompile(`^\d{1,2}:\d{2}$`)

// ExtractDaySlots reads the booked time tokens for one day out of a
// reconstructed grid.
//
// The day column is found by scanning logical row 0 for a header matching
// the first three letters of day, case-insensitively ("thu" finds
// "Thursday"). Rows whose time column does not look like "H:MM"/"HH:MM" are
// skipped. A row counts as booked when its day cell is an occupied marker
// (continuation of a multi-row booking) or an owning cell recognized by the
// quirks as a booking start, so a two-hour booking over 15-minute rows
// yields one token per covered row.
//
// A missing day header yields an empty result, not an error. Duplicate
// tokens are preserved; membership, not count, is meaningful.
func ExtractDaySlots(grid *LogicalGrid, day string, quirks SourceQuirks) []string {
	day = strings.TrimSpace(strings.ToLower(day))
	if len(day) > 3 {
		day = day[:3]
	}
	if day == "" || grid == nil {
		return nil
	}

	header := grid.Row(0)
	dayCol := -1
	for c := 1; c < len(header); c++ { // column 0 is the time column
		if header[c].Kind == CellOwner && quirks.HeaderMatches(header[c].Text, day) {
			dayCol = c
			break
		}
	}
	if dayCol == -1 {
		return nil
	}

	var booked []string
	for r := 1; r < grid.NumRows(); r++ {
		timeCell := grid.At(r, 0)
		if timeCell.Kind != CellOwner {
			continue
		}
		token := strings.TrimSpace(timeCell.Text)
		if !timeTokenRe.MatchString(token) {
			continue
		}

		dayCell := grid.At(r, dayCol)
		switch dayCell.Kind {
		case CellOccupied:
			booked = append(booked, token)
		case CellOwner:
			if quirks.IsBookingCell(dayCell) {
				booked = append(booked, token)
			}
		}
	}
	return booked
}
