package zone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func level(n int) *int { return &n }

func TestAddZipCodeKeepsSortedAndDeduplicated(t *testing.T) {
	z := &Zone{}
	z.AddZipCode("75002")
	z.AddZipCode("75001")
	z.AddZipCode("75001")
	z.AddZipCode("")

	assert.Equal(t, []string{"75001", "75002"}, z.ZipCodes)
}

func TestCanBeChildOfRequiresStrictlyMoreLocalType(t *testing.T) {
	country := &Zone{ZoneType: Country}
	city := &Zone{ZoneType: City}
	unknown := &Zone{ZoneType: Unknown}

	assert.True(t, city.CanBeChildOf(country))
	assert.False(t, country.CanBeChildOf(city), "a country is not more local than a city")
	assert.False(t, city.CanBeChildOf(unknown), "candidate must itself have a resolved type")
	assert.True(t, unknown.CanBeChildOf(country), "an unknown-type zone may nest under any admin zone")
	assert.False(t, city.CanBeChildOf(city), "a zone cannot be its own parent")
}

func TestKeyFallsBackToOSMIDUntilOverridden(t *testing.T) {
	z := &Zone{OSMID: "relation:1"}
	assert.Equal(t, "relation:1", z.Key())

	z.SetDedupKeyOverride("insee:75056")
	assert.Equal(t, "insee:75056", z.Key())
	assert.Equal(t, "relation:1", z.OSMID)
}

func TestTypeLessOrdersFromMostToLeastLocal(t *testing.T) {
	assert.True(t, Suburb.Less(City))
	assert.True(t, City.Less(Country))
	assert.False(t, Country.Less(City))
	assert.False(t, Unknown.Less(City))
	assert.False(t, City.Less(Unknown))
}

func TestParseTypeRoundTripsStringNames(t *testing.T) {
	for _, tt := range []Type{Suburb, CityDistrict, City, StateDistrict, State, CountryRegion, Country} {
		assert.Equal(t, tt, ParseType(tt.String()))
	}
	assert.Equal(t, Unknown, ParseType("nonsense"))
}

func TestZoneStringIncludesLevelAndType(t *testing.T) {
	z := &Zone{OSMID: "relation:1", Name: "Paris", AdminLevel: level(8), ZoneType: City}
	assert.Contains(t, z.String(), "relation:1")
	assert.Contains(t, z.String(), "Paris")
	assert.Contains(t, z.String(), "8")
	assert.Contains(t, z.String(), "city")
}
