// Package zone defines the Zone entity and its supporting types.
package zone

import (
	"fmt"
	"sort"

	"github.com/osm-without-borders/cosmogony/internal/geom"
)

// Type is the closed sum of libpostal-style semantic zone types.
type Type int

const (
	// Unknown means the country ruleset did not resolve a type for this admin_level.
	Unknown Type = iota
	Suburb
	CityDistrict
	City
	StateDistrict
	State
	CountryRegion
	Country
)

// order ranks types from most local (0) to least local. Less uses it, and
// through Less CanBeChildOf decides hierarchy eligibility; the parent
// tie-break itself compares admin_level, not this ranking.
var order = map[Type]int{
	Suburb:        0,
	CityDistrict:  1,
	City:          2,
	StateDistrict: 3,
	State:         4,
	CountryRegion: 5,
	Country:       6,
	Unknown:       -1,
}

// Less reports whether t is a strictly more local (smaller) type than o.
// Unknown is never less than anything and nothing is less than Unknown.
func (t Type) Less(o Type) bool {
	if t == Unknown || o == Unknown {
		return false
	}
	return order[t] < order[o]
}

func (t Type) String() string {
	switch t {
	case Suburb:
		return "suburb"
	case CityDistrict:
		return "city_district"
	case City:
		return "city"
	case StateDistrict:
		return "state_district"
	case State:
		return "state"
	case CountryRegion:
		return "country_region"
	case Country:
		return "country"
	default:
		return "unknown"
	}
}

// ParseType maps a libpostal-style type name to a Type. Unrecognised names
// yield Unknown.
func ParseType(s string) Type {
	switch s {
	case "suburb":
		return Suburb
	case "city_district":
		return CityDistrict
	case "city":
		return City
	case "state_district":
		return StateDistrict
	case "state":
		return State
	case "country_region":
		return CountryRegion
	case "country":
		return Country
	default:
		return Unknown
	}
}

// ID is a dense integer identity assigned once at encode time.
type ID int

// Zone is the sole first-class entity cosmogony produces.
type Zone struct {
	ID          ID
	OSMID       string // "relation:<nnn>" | "way:<nnn>" | "node:<nnn>"
	AdminLevel  *int   // nil when absent
	ZoneType    Type
	Name        string
	Label       string
	ZipCodes    []string // kept sorted; use AddZipCode to maintain the invariant
	Center      geom.Point
	BBox        geom.BBox
	Geometry    geom.MultiPolygon
	Tags        map[string]string
	Parent      *string // osm_id of the enclosing zone
	ParentIndex int     // index into the owning Atlas.Zones slice, -1 if none; hierarchy-internal
	Wikidata    string
	CountryCode string

	// Synthetic marks a zone that was not built from an administrative
	// boundary relation (see additional-zones support).
	Synthetic bool

	dedupKeyOverride string
}

// AddZipCode inserts code into ZipCodes, keeping the slice sorted and free
// of duplicates.
func (z *Zone) AddZipCode(code string) {
	if code == "" {
		return
	}
	i := sort.SearchStrings(z.ZipCodes, code)
	if i < len(z.ZipCodes) && z.ZipCodes[i] == code {
		return
	}
	z.ZipCodes = append(z.ZipCodes, "")
	copy(z.ZipCodes[i+1:], z.ZipCodes[i:])
	z.ZipCodes[i] = code
}

// IsAdmin reports whether the zone has a resolved (non-Unknown) semantic type.
func (z *Zone) IsAdmin() bool {
	return z.ZoneType != Unknown
}

// CanBeChildOf reports whether z may be attached under candidate as a parent,
// per the hierarchy builder's admin-only, strictly-larger-type rule. This
// compares ZoneType rather than admin_level directly, so a ruleset that maps
// two distinct admin_levels onto the same ZoneType makes them mutually
// ineligible as parent/child, not just equal-ranked.
func (z *Zone) CanBeChildOf(candidate *Zone) bool {
	if candidate == z {
		return false
	}
	if !candidate.IsAdmin() {
		return false
	}
	if !z.IsAdmin() {
		return true
	}
	return z.ZoneType.Less(candidate.ZoneType)
}

// Key returns the string used to key a zone for dedup purposes: normally the
// osm_id, but overridable (see FrenchIDFix in the builder package) via
// SetDedupKeyOverride. The override never changes the emitted osm_id.
func (z *Zone) Key() string {
	if z.dedupKeyOverride != "" {
		return z.dedupKeyOverride
	}
	return z.OSMID
}

// SetDedupKeyOverride replaces the string Key returns, without touching
// OSMID. An empty key leaves Key falling back to OSMID.
func (z *Zone) SetDedupKeyOverride(key string) {
	z.dedupKeyOverride = key
}

func (z *Zone) String() string {
	lvl := "nil"
	if z.AdminLevel != nil {
		lvl = fmt.Sprintf("%d", *z.AdminLevel)
	}
	return fmt.Sprintf("Zone{%s %q level=%s type=%s}", z.OSMID, z.Name, lvl, z.ZoneType)
}
