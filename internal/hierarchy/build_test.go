package hierarchy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osm-without-borders/cosmogony/internal/geom"
	"github.com/osm-without-borders/cosmogony/internal/stats"
	"github.com/osm-without-borders/cosmogony/internal/zone"
)

func level(n int) *int { return &n }

// square returns an axis-aligned square ring, side centered on (cx, cy).
func square(cx, cy, halfSide float64) geom.Ring {
	return geom.Ring{
		{Lon: cx - halfSide, Lat: cy - halfSide},
		{Lon: cx + halfSide, Lat: cy - halfSide},
		{Lon: cx + halfSide, Lat: cy + halfSide},
		{Lon: cx - halfSide, Lat: cy + halfSide},
		{Lon: cx - halfSide, Lat: cy - halfSide},
	}
}

func zoneAt(id string, lvl int, zt zone.Type, cx, cy, halfSide float64) *zone.Zone {
	ring := square(cx, cy, halfSide)
	mp := geom.MultiPolygon{{Outer: ring}}
	return &zone.Zone{
		OSMID:       id,
		AdminLevel:  level(lvl),
		ZoneType:    zt,
		Center:      geom.Point{Lon: cx, Lat: cy},
		BBox:        mp.BBox(),
		Geometry:    mp,
		ParentIndex: -1,
	}
}

func TestBuildNestsCountryStateCity(t *testing.T) {
	country := zoneAt("relation:1", 2, zone.Country, 0, 0, 10)
	state := zoneAt("relation:2", 4, zone.State, 0, 0, 5)
	city := zoneAt("relation:3", 8, zone.City, 0, 0, 1)
	zones := []*zone.Zone{country, state, city}

	skipped := Build(zones, Options{Workers: 2, CacheSize: 8})
	assert.Equal(t, 0, skipped)

	require.NotNil(t, city.Parent)
	assert.Equal(t, "relation:2", *city.Parent)
	assert.Equal(t, 1, city.ParentIndex)

	require.NotNil(t, state.Parent)
	assert.Equal(t, "relation:1", *state.Parent)
	assert.Equal(t, 0, state.ParentIndex)

	assert.Nil(t, country.Parent)
	assert.Equal(t, -1, country.ParentIndex)
}

func TestBuildPicksSmallestEnclosingCandidate(t *testing.T) {
	// Two overlapping states both admit the city's center; the smaller one
	// must win even though it was inserted second.
	big := zoneAt("relation:1", 4, zone.State, 0, 0, 10)
	small := zoneAt("relation:2", 4, zone.State, 0, 0, 3)
	city := zoneAt("relation:3", 8, zone.City, 0, 0, 1)
	zones := []*zone.Zone{big, small, city}

	Build(zones, Options{Workers: 1, CacheSize: 8})

	require.NotNil(t, city.Parent)
	assert.Equal(t, "relation:2", *city.Parent)
}

func TestBuildLeavesOrphanWhenNoContainerFound(t *testing.T) {
	far := zoneAt("relation:1", 4, zone.State, 100, 100, 1)
	city := zoneAt("relation:2", 8, zone.City, 0, 0, 1)
	zones := []*zone.Zone{far, city}

	Build(zones, Options{Workers: 1, CacheSize: 8})

	assert.Nil(t, city.Parent)
	assert.Equal(t, -1, city.ParentIndex)
}

func TestBuildSkipsDegenerateGeometry(t *testing.T) {
	empty := &zone.Zone{OSMID: "relation:9", AdminLevel: level(8), BBox: geom.EmptyBBox(), ParentIndex: -1}
	zones := []*zone.Zone{empty}

	skipped := Build(zones, Options{Workers: 1, CacheSize: 4})
	assert.Equal(t, 1, skipped)
	assert.Nil(t, empty.Parent)
}

func TestBreakCyclesClearsBothSides(t *testing.T) {
	a := &zone.Zone{OSMID: "relation:1", ParentIndex: 1}
	b := &zone.Zone{OSMID: "relation:2", ParentIndex: 0}
	zones := []*zone.Zone{a, b}
	st := stats.New()

	broken := BreakCycles(zones, st)

	assert.Equal(t, 2, broken)
	assert.Nil(t, a.Parent)
	assert.Equal(t, -1, a.ParentIndex)
	assert.Nil(t, b.Parent)
	assert.Equal(t, -1, b.ParentIndex)
	assert.Equal(t, 2, st.CyclicParentBroken)
}

func TestBreakCyclesLeavesAcyclicChainsAlone(t *testing.T) {
	root := &zone.Zone{OSMID: "relation:1", ParentIndex: -1}
	mid := &zone.Zone{OSMID: "relation:2", ParentIndex: 0}
	leaf := &zone.Zone{OSMID: "relation:3", ParentIndex: 1}
	zones := []*zone.Zone{root, mid, leaf}

	broken := BreakCycles(zones, nil)

	assert.Equal(t, 0, broken)
	assert.Equal(t, 1, leaf.ParentIndex)
	assert.Equal(t, 0, mid.ParentIndex)
}

func TestBreakCyclesHandlesLongerCycleAndSharedPrefix(t *testing.T) {
	// 0 -> 1 -> 2 -> 1 (cycle among 1,2); 3 -> 0 is a clean chain into it.
	z0 := &zone.Zone{OSMID: "relation:0", ParentIndex: 1}
	z1 := &zone.Zone{OSMID: "relation:1", ParentIndex: 2}
	z2 := &zone.Zone{OSMID: "relation:2", ParentIndex: 1}
	z3 := &zone.Zone{OSMID: "relation:3", ParentIndex: 0}
	zones := []*zone.Zone{z0, z1, z2, z3}

	broken := BreakCycles(zones, nil)

	assert.Equal(t, 2, broken)
	assert.Equal(t, -1, z1.ParentIndex)
	assert.Equal(t, -1, z2.ParentIndex)
	// z0 and z3 are not part of the cycle itself and keep their edges.
	assert.Equal(t, 1, z0.ParentIndex)
	assert.Equal(t, 0, z3.ParentIndex)
}
