package country

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osm-without-borders/cosmogony/internal/geom"
	"github.com/osm-without-borders/cosmogony/internal/stats"
	"github.com/osm-without-borders/cosmogony/internal/zone"
)

func level(n int) *int { return &n }

func square(minLon, minLat, maxLon, maxLat float64) geom.Ring {
	return geom.Ring{
		{Lon: minLon, Lat: minLat}, {Lon: minLon, Lat: maxLat},
		{Lon: maxLon, Lat: maxLat}, {Lon: maxLon, Lat: minLat},
		{Lon: minLon, Lat: minLat},
	}
}

func TestSelfCountryCode(t *testing.T) {
	z := &zone.Zone{AdminLevel: level(2), Tags: map[string]string{"ISO3166-1:alpha2": "lu"}}
	code, ok := SelfCountryCode(z)
	require.True(t, ok)
	assert.Equal(t, "LU", code)

	z2 := &zone.Zone{AdminLevel: level(8), Tags: map[string]string{"ISO3166-1:alpha2": "lu"}}
	_, ok = SelfCountryCode(z2)
	assert.False(t, ok, "admin_level above 2 is never a country by self-tag")
}

func TestAttributePicksSmallestContainingCountry(t *testing.T) {
	big := &zone.Zone{CountryCode: "XX", Geometry: geom.MultiPolygon{{Outer: square(0, 0, 100, 100)}}}
	small := &zone.Zone{CountryCode: "YY", Geometry: geom.MultiPolygon{{Outer: square(40, 40, 60, 60)}}}

	z := &zone.Zone{Center: geom.Point{Lon: 50, Lat: 50}}
	Attribute(z, []*zone.Zone{big, small}, stats.New())
	assert.Equal(t, "YY", z.CountryCode)
}

func TestAttributeNoContainingCountry(t *testing.T) {
	c := &zone.Zone{CountryCode: "XX", Geometry: geom.MultiPolygon{{Outer: square(0, 0, 10, 10)}}}
	z := &zone.Zone{Center: geom.Point{Lon: 500, Lat: 500}}
	st := stats.New()
	Attribute(z, []*zone.Zone{c}, st)
	assert.Empty(t, z.CountryCode)
	assert.Equal(t, 1, st.ZoneWithoutCountry)
}
