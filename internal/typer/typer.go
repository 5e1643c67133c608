// Package typer implements the Zone Typer: applying a resolved country's
// ruleset to assign each zone its semantic type.
package typer

import (
	"github.com/osm-without-borders/cosmogony/internal/rules"
	"github.com/osm-without-borders/cosmogony/internal/stats"
	"github.com/osm-without-borders/cosmogony/internal/zone"
)

// Type assigns z.ZoneType from the ruleset registered for z.CountryCode,
// counting every non-fatal miss into st. Zones with no resolved country stay
// Unknown; that is already tallied as zone_without_country by the country
// resolver, so this function does not double-count it.
func Type(z *zone.Zone, store *rules.Store, st *stats.Bundle) {
	if z.CountryCode == "" {
		return
	}

	ruleset, ok := store.Lookup(z.CountryCode)
	if !ok {
		st.ZoneWithUnknownCountry[z.CountryCode]++
		return
	}

	zt, found := ruleset.TypeFor(z.AdminLevel, z.Tags)
	if !found {
		level := -1
		if z.AdminLevel != nil {
			level = *z.AdminLevel
		}
		st.UnhandledAdminLevel[stats.UnhandledAdminLevelKey(z.CountryCode, level)]++
		return
	}

	z.ZoneType = zt
}
