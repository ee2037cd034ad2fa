package campus

import (
	"encoding/json"
	"errors"
	"os"
	"strings"
	"unicode"
)

// Location is one canonical campus venue record. The list is loaded once at
// startup and shared read-only across all resolutions.
type Location struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Building string  `json:"building"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
}

// Set is the canonical location list plus a precomputed match index keyed by
// the normalized building name and the normalized full name.
type Set struct {
	list  []Location
	index map[string]Location
}

// NewSet builds a Set from an already-loaded location list.
func NewSet(list []Location) *Set {
	s := &Set{
		list:  list,
		index: make(map[string]Location, 2*len(list)),
	}
	for _, loc := range list {
		for _, key := range []string{NormalizeKey(loc.Building), NormalizeKey(loc.Name)} {
			if key == "" {
				continue
			}
			// First writer wins so earlier records take precedence on key
			// collisions, matching the list order used for tie-breaking.
			if _, ok := s.index[key]; !ok {
				s.index[key] = loc
			}
		}
	}
	return s
}

// Load reads a JSON location list from path and builds the Set.
func Load(path string) (*Set, error) {
	if path == "" {
		return nil, errors.New("locations path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var list []Location
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, errors.New("locations file contains no entries")
	}
	return NewSet(list), nil
}

// All returns the canonical list in load order.
func (s *Set) All() []Location {
	return s.list
}

// ByID returns the location with the given ID.
func (s *Set) ByID(id string) (Location, bool) {
	for _, loc := range s.list {
		if loc.ID == id {
			return loc, true
		}
	}
	return Location{}, false
}

// lookup resolves an already-normalized key against the index.
func (s *Set) lookup(key string) (Location, bool) {
	loc, ok := s.index[key]
	return loc, ok
}

// NormalizeKey lowercases a string and strips every non-alphanumeric rune.
func NormalizeKey(v string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(v) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
