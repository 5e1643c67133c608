// Package country implements the country attribution half of the Country
// Resolver: deciding which ISO-3166-1 alpha-2 code a zone belongs to. The
// ruleset lookup half lives in package rules.
package country

import (
	"strings"

	"github.com/osm-without-borders/cosmogony/internal/stats"
	"github.com/osm-without-borders/cosmogony/internal/zone"
)

// isoTagCandidates are the OSM tags observed carrying a boundary's own ISO
// country code, tried in order.
var isoTagCandidates = []string{"ISO3166-1:alpha2", "ISO3166-1", "country_code"}

// SelfCountryCode implements step 1 of the attribution algorithm: a boundary
// that is admin_level<=2 and carries an ISO country tag on itself IS a
// country.
func SelfCountryCode(z *zone.Zone) (string, bool) {
	if z.AdminLevel == nil || *z.AdminLevel > 2 {
		return "", false
	}
	for _, tag := range isoTagCandidates {
		if v, ok := z.Tags[tag]; ok && v != "" {
			return strings.ToUpper(v), true
		}
	}
	return "", false
}

// Attribute implements steps 2-3: find the smallest country zone whose
// geometry contains z's center, or mark z countryless.
//
// countries must already have CountryCode set (step 1 zones resolve
// themselves; this only runs for non-country zones, which is why the
// pipeline resolves countries in two phases: countries first, then everyone
// else).
func Attribute(z *zone.Zone, countries []*zone.Zone, st *stats.Bundle) {
	if z.CountryCode != "" {
		return
	}

	var best *zone.Zone
	for _, c := range countries {
		if !c.Geometry.Contains(z.Center) {
			continue
		}
		if best == nil || c.Geometry.Area() < best.Geometry.Area() {
			best = c
		}
	}

	if best == nil {
		z.CountryCode = ""
		st.ZoneWithoutCountry++
		return
	}
	z.CountryCode = best.CountryCode
}
