package ics

import (
	"regexp"
	"strings"
	"time"

	"tussenuur/internal/model"
)

const (
	beginEventMarker = "BEGIN:VEVENT"
	endEventMarker   = "END:VEVENT"
)

var (
	foldedLineRe  = regexp.MustCompile(`\r?\n[ \t]`)
	lineBreakRe   = regexp.MustCompile(`\r?\n`)
	dateTimeValRe = regexp.MustCompile(`^\d{8}T\d{6}Z?$`)
	dateOnlyValRe = regexp.MustCompile(`^\d{8}$`)
)

// Parse extracts discrete events from raw iCalendar text.
//
// The text is unfolded first (RFC 5545 folds long lines onto
// whitespace-prefixed continuations), then split on VEVENT begin markers.
// Inside each event body lines of the form KEY[;params]:value are read for
// DTSTART, DTEND, LOCATION, SUMMARY and RRULE; everything else is ignored.
// An event missing its start, end or location after parsing is dropped
// silently: one malformed event never fails the whole file.
//
// Naive datetimes (no trailing Z) are read in the process-local zone; use
// ParseIn to read them in a specific zone instead.
func Parse(rawText string) []model.Event {
	return ParseIn(rawText, time.Local)
}

// ParseIn is Parse with naive datetimes interpreted in loc. A nil loc
// falls back to the process-local zone.
func ParseIn(rawText string, loc *time.Location) []model.Event {
	if loc == nil {
		loc = time.Local
	}
	unfolded := unfold(rawText)

	var events []model.Event
	chunks := strings.Split(unfolded, beginEventMarker)
	for _, chunk := range chunks[1:] {
		body, _, found := strings.Cut(chunk, endEventMarker)
		if !found {
			continue
		}

		ev := parseEventBody(body, loc)
		if ev.Start.IsZero() || ev.End.IsZero() || ev.Location == "" {
			continue
		}
		events = append(events, ev)
	}
	return events
}

// unfold joins folded continuation lines onto their preceding line.
func unfold(text string) string {
	return foldedLineRe.ReplaceAllString(text, "")
}

func parseEventBody(body string, loc *time.Location) model.Event {
	var ev model.Event

	for _, line := range lineBreakRe.Split(strings.TrimSpace(body), -1) {
		rawKey, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		value = strings.TrimSpace(value)

		// Per-line parameters (";TZID=..." etc.) are not interpreted.
		key, _, _ := strings.Cut(rawKey, ";")
		switch strings.ToUpper(key) {
		case "DTSTART":
			ev.Start = parseDate(value, loc)
		case "DTEND":
			ev.End = parseDate(value, loc)
		case "LOCATION":
			ev.Location = unescapeText(value)
		case "SUMMARY":
			ev.Summary = value
		case "RRULE":
			ev.RawRRule = value
		}
	}
	return ev
}

// unescapeText resolves the literal escape sequences iCalendar uses inside
// text values: "\," becomes a comma and "\n" a space.
func unescapeText(v string) string {
	v = strings.ReplaceAll(v, `\,`, ",")
	v = strings.ReplaceAll(v, `\n`, " ")
	return strings.TrimSpace(v)
}

// parseDate reads the two supported date encodings. A trailing Z marks a
// UTC instant, otherwise the value is a naive instant in loc; a bare
// YYYYMMDD is midnight of that day in loc. Anything else yields the zero
// time.
func parseDate(value string, loc *time.Location) time.Time {
	clean := strings.TrimSpace(value)

	if dateTimeValRe.MatchString(clean) {
		if strings.HasSuffix(clean, "Z") {
			t, err := time.Parse("20060102T150405Z", clean)
			if err != nil {
				return time.Time{}
			}
			return t
		}
		t, err := time.ParseInLocation("20060102T150405", clean, loc)
		if err != nil {
			return time.Time{}
		}
		return t
	}

	if dateOnlyValRe.MatchString(clean) {
		t, err := time.ParseInLocation("20060102", clean, loc)
		if err != nil {
			return time.Time{}
		}
		return t
	}

	return time.Time{}
}
