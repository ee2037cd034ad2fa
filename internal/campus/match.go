package campus

import (
	"fmt"
	"regexp"
	"strings"
)

// UnresolvedError reports a free-text location that could not be matched to
// any canonical campus location.
type UnresolvedError struct {
	Text string
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("could not match location %q to a campus building", e.Text)
}

// aliasTable maps normalized building tokens for known misspellings and
// abbreviations to the canonical building name they stand for.
var aliasTable = map[string]string{
	"janmouton":               "Jan Mouton Learning Centre",
	"janmoutonlearningcentre": "Jan Mouton Learning Centre",
	"vdsterr":                 "Van Der Sterr",
	"vandersterr":             "Van Der Sterr",
	"indpsyc":                 "Industrial Psychology",
	"mathsciindpsyc":          "Industrial Psychology",
	"mathsci":                 "Industrial Psychology",
	"merensky":                "Merensky",
	"narga":                   "Natural Science",
	"engrg":                   "Electrical Engineering",
	"engrgel":                 "Electrical Engineering",
}

var (
	parenRe      = regexp.MustCompile(`\(.*?\)`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// ExtractBuildingToken reduces a free-text location string to its building
// portion: everything before the first room separator, with parenthesized
// qualifiers removed and slashes and whitespace collapsed.
//
// "Jan Mouton (El.Class)_2015" -> "Jan Mouton".
func ExtractBuildingToken(location string) string {
	beforeRoom, _, _ := strings.Cut(location, "_")
	token := parenRe.ReplaceAllString(beforeRoom, " ")
	token = strings.ReplaceAll(token, "/", " ")
	token = whitespaceRe.ReplaceAllString(token, " ")
	return strings.TrimSpace(token)
}

// Match resolves a free-text location string against the canonical set.
// Strategies are tried in order, first success wins:
//
//  1. direct index lookup of the normalized building token
//  2. alias table lookup for known misspellings and abbreviations
//  3. substring-overlap scoring against canonical building names
//
// An unmatched string yields an *UnresolvedError carrying the input text.
func (s *Set) Match(location string) (Location, error) {
	token := ExtractBuildingToken(location)
	normalized := NormalizeKey(token)

	if loc, ok := s.lookup(normalized); ok {
		return loc, nil
	}

	if alias, ok := aliasTable[normalized]; ok {
		if loc, ok := s.lookup(NormalizeKey(alias)); ok {
			return loc, nil
		}
	}

	if loc, ok := s.bestOverlap(normalized); ok {
		return loc, nil
	}

	return Location{}, &UnresolvedError{Text: location}
}

// bestOverlap scores canonical building names whose normalized form is a
// substring of the token or vice versa. The score is the length of the
// shorter of the two strings; ties keep the earliest canonical entry.
func (s *Set) bestOverlap(normalized string) (Location, bool) {
	var best Location
	bestScore := 0
	if normalized == "" {
		return best, false
	}
	for _, loc := range s.list {
		key := NormalizeKey(loc.Building)
		if key == "" {
			continue
		}
		if !strings.Contains(normalized, key) && !strings.Contains(key, normalized) {
			continue
		}
		score := min(len(normalized), len(key))
		if score > bestScore {
			bestScore = score
			best = loc
		}
	}
	return best, bestScore > 0
}
