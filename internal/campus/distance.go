package campus

import (
	"math"
	"sort"
)

const earthRadiusKm = 6371

// Haversine returns the great-circle distance between two locations in
// kilometers.
func Haversine(a, b Location) float64 {
	dLat := toRad(b.Lat - a.Lat)
	dLon := toRad(b.Lon - a.Lon)
	lat1 := toRad(a.Lat)
	lat2 := toRad(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1)*math.Cos(lat2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// RankedRoom is an open room annotated with the walking detour it implies:
// last class -> room -> next class.
type RankedRoom struct {
	Location
	TotalDistanceKm float64
}

// Rank orders open rooms by total detour distance ascending. The sort is
// stable so rooms at equal distance keep their canonical order.
func Rank(open []Location, last, next Location) []RankedRoom {
	ranked := make([]RankedRoom, 0, len(open))
	for _, room := range open {
		total := Haversine(last, room) + Haversine(room, next)
		ranked = append(ranked, RankedRoom{Location: room, TotalDistanceKm: total})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalDistanceKm < ranked[j].TotalDistanceKm
	})
	return ranked
}
