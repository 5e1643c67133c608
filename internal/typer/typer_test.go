package typer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osm-without-borders/cosmogony/internal/rules"
	"github.com/osm-without-borders/cosmogony/internal/stats"
	"github.com/osm-without-borders/cosmogony/internal/zone"
)

func level(n int) *int { return &n }

func TestTypeAssignsFromRuleset(t *testing.T) {
	z := &zone.Zone{CountryCode: "LU", AdminLevel: level(8), Tags: map[string]string{}}
	st := stats.New()
	Type(z, rules.Global(), st)
	assert.Equal(t, zone.City, z.ZoneType)
	assert.Empty(t, st.UnhandledAdminLevel)
}

func TestTypeUnknownCountryRuleset(t *testing.T) {
	z := &zone.Zone{CountryCode: "ZZ", AdminLevel: level(8), Tags: map[string]string{}}
	st := stats.New()
	Type(z, rules.Global(), st)
	assert.Equal(t, zone.Unknown, z.ZoneType)
	assert.Equal(t, 1, st.ZoneWithUnknownCountry["ZZ"])
}

func TestTypeUnhandledAdminLevel(t *testing.T) {
	z := &zone.Zone{CountryCode: "LU", AdminLevel: level(99), Tags: map[string]string{}}
	st := stats.New()
	Type(z, rules.Global(), st)
	assert.Equal(t, zone.Unknown, z.ZoneType)
	assert.Equal(t, 1, st.UnhandledAdminLevel["LU:99"])
}

func TestTypeSkipsZoneWithoutCountry(t *testing.T) {
	z := &zone.Zone{AdminLevel: level(8), Tags: map[string]string{}}
	st := stats.New()
	Type(z, rules.Global(), st)
	assert.Equal(t, zone.Unknown, z.ZoneType)
}
