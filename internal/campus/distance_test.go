package campus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHaversineZeroForSamePoint(t *testing.T) {
	p := Location{Lat: -33.9328, Lon: 18.8644}
	assert.Zero(t, Haversine(p, p))
}

func TestHaversineKnownDistance(t *testing.T) {
	// Stellenbosch to Cape Town city centre, roughly 41 km as the crow flies.
	stellenbosch := Location{Lat: -33.9321, Lon: 18.8602}
	capeTown := Location{Lat: -33.9249, Lon: 18.4241}
	d := Haversine(stellenbosch, capeTown)
	assert.InDelta(t, 40.3, d, 1.5)
	assert.InDelta(t, d, Haversine(capeTown, stellenbosch), 1e-9, "symmetric")
}

func TestRankOrdersByDetour(t *testing.T) {
	last := Location{ID: "last", Lat: 0, Lon: 0}
	next := Location{ID: "next", Lat: 0, Lon: 0.02}

	far := Location{ID: "far", Lat: 0.05, Lon: 0.01}
	near := Location{ID: "near", Lat: 0, Lon: 0.01}

	ranked := Rank([]Location{far, near}, last, next)
	require.Len(t, ranked, 2)
	assert.Equal(t, "near", ranked[0].ID)
	assert.Equal(t, "far", ranked[1].ID)
	assert.Less(t, ranked[0].TotalDistanceKm, ranked[1].TotalDistanceKm)
}

func TestRankStableOnTies(t *testing.T) {
	origin := Location{Lat: 0, Lon: 0}
	a := Location{ID: "a", Lat: 0, Lon: 0.01}
	b := Location{ID: "b", Lat: 0, Lon: -0.01}

	ranked := Rank([]Location{a, b}, origin, origin)
	require.Len(t, ranked, 2)
	assert.Equal(t, "a", ranked[0].ID)
	assert.Equal(t, "b", ranked[1].ID)
}

func TestRankEmpty(t *testing.T) {
	assert.Empty(t, Rank(nil, Location{}, Location{}))
}
