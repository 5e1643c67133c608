// Package builder implements the Zone Builder: turning one resolved OSM
// relation into a Zone entity with valid geometry, bbox, and provisional
// tag-derived fields.
package builder

import (
	"fmt"
	"strconv"

	"github.com/osm-without-borders/cosmogony/internal/geom"
	"github.com/osm-without-borders/cosmogony/internal/osmreader"
	"github.com/osm-without-borders/cosmogony/internal/stats"
	"github.com/osm-without-borders/cosmogony/internal/zone"
)

var postcodeTagCandidates = []string{"addr:postcode", "postal_code"}

// Build constructs a Zone from a resolved relation, repairing its geometry
// via MakeValid when necessary. It returns false when the relation is not
// boundary=administrative or its geometry cannot be repaired into anything
// valid. A missing or unparsable admin_level does not disqualify the zone;
// it is kept with a nil AdminLevel.
func Build(rr osmreader.ResolvedRelation, st *stats.Bundle) (*zone.Zone, bool) {
	if rr.Tags["boundary"] != "administrative" {
		return nil, false
	}

	var adminLevel *int
	if levelStr, ok := rr.Tags["admin_level"]; ok {
		if level, err := strconv.Atoi(levelStr); err == nil {
			adminLevel = &level
		}
	}

	mp := assembleMultiPolygon(rr.OuterRings, rr.InnerRings)
	if !mp.IsValid() {
		fixed, ok := mp.MakeValid()
		if !ok {
			st.InvalidGeometryDropped++
			return nil, false
		}
		mp = fixed
	}

	z := &zone.Zone{
		OSMID:      fmt.Sprintf("relation:%d", rr.OSMID),
		AdminLevel: adminLevel,
		Name:       rr.Tags["name"],
		Wikidata:   rr.Tags["wikidata"],
		Geometry:   mp,
		BBox:       mp.BBox(),
		Tags:       copyTags(rr.Tags),
	}

	for _, tag := range postcodeTagCandidates {
		if v, ok := rr.Tags[tag]; ok {
			z.AddZipCode(v)
		}
	}

	return z, true
}

// ApplyFrenchIDFix overrides z's dedup key with one derived from its
// ref:INSEE tag, once the country resolver has confirmed the zone is French.
// It works around INSEE-sourced imports that duplicate a commune's relation
// under more than one osm_id. It never changes the emitted osm_id, and it is
// a no-op for zones without a ref:INSEE tag.
func ApplyFrenchIDFix(z *zone.Zone) {
	if z.CountryCode != "FR" {
		return
	}
	if insee := z.Tags["ref:INSEE"]; insee != "" {
		z.SetDedupKeyOverride("insee:" + insee)
	}
}

// AssembleMultiPolygon pairs each inner ring with the outer ring that
// contains it (OSM multipolygons do not encode this association directly),
// falling back to attaching orphaned holes to the first outer ring. Exported
// for reuse by the postcode assignment supplement, which needs the same
// ring-to-polygon assembly for non-administrative boundary relations.
func AssembleMultiPolygon(outer, inner []geom.Ring) geom.MultiPolygon {
	return assembleMultiPolygon(outer, inner)
}

func assembleMultiPolygon(outer, inner []geom.Ring) geom.MultiPolygon {
	polys := make([]geom.Polygon, len(outer))
	for i, r := range outer {
		polys[i] = geom.Polygon{Outer: r}
	}

	for _, hole := range inner {
		if len(hole) == 0 {
			continue
		}
		target := 0
		for i, p := range polys {
			if p.Outer.Contains(hole[0]) {
				target = i
				break
			}
		}
		if len(polys) > 0 {
			polys[target].Holes = append(polys[target].Holes, hole)
		}
	}

	return geom.MultiPolygon(polys)
}

func square(minLon, minLat, maxLon, maxLat float64) geom.Ring {
	return geom.Ring{
		{Lon: minLon, Lat: minLat}, {Lon: minLon, Lat: maxLat},
		{Lon: maxLon, Lat: maxLat}, {Lon: maxLon, Lat: minLat},
		{Lon: minLon, Lat: minLat},
	}
}

func copyTags(tags map[string]string) map[string]string {
	out := make(map[string]string, len(tags))
	for k, v := range tags {
		out[k] = v
	}
	return out
}
