// Package enrich implements the Name/Label Enricher: fusing tags from a
// zone's `label` and `admin_center` member nodes into the zone's own tags,
// and picking the zone's representative center point.
package enrich

import (
	"strings"

	"github.com/osm-without-borders/cosmogony/internal/geom"
	"github.com/osm-without-borders/cosmogony/internal/osmreader"
	"github.com/osm-without-borders/cosmogony/internal/zone"
)

// SetCenter picks the zone's center in preference order: admin_center node,
// label node, geometric centroid.
func SetCenter(z *zone.Zone, label, adminCenter *osmreader.NodeRef) {
	switch {
	case adminCenter != nil:
		z.Center = geom.Point{Lon: adminCenter.Lon, Lat: adminCenter.Lat}
	case label != nil:
		z.Center = geom.Point{Lon: label.Lon, Lat: label.Lat}
	default:
		z.Center = z.Geometry.Centroid()
	}
}

// MergeLabelNode merges every name:* tag (and population, which OSM label
// nodes commonly carry more accurately than the boundary relation) from the
// label node into the zone's tags, without overwriting an existing key.
// Runs unconditionally, independent of the zone's eventual type.
func MergeLabelNode(z *zone.Zone, label *osmreader.NodeRef) {
	if label == nil {
		return
	}
	mergeIfAbsent(z, label.Tags, func(k string) bool {
		return strings.HasPrefix(k, "name:") || k == "population"
	})
}

// MergeAdminCenterNode merges name:* tags from the admin_center node, but
// only when the zone is a city or when the admin_center's wikidata entity
// matches the zone's own — otherwise the admin_center typically points at a
// capital whose names do not belong to the enclosing state or country.
//
// This must run after the Zone Typer has assigned ZoneType.
func MergeAdminCenterNode(z *zone.Zone, adminCenter *osmreader.NodeRef) {
	if adminCenter == nil {
		return
	}
	centerWikidata := adminCenter.Tags["wikidata"]

	sameEntity := z.Wikidata != "" && z.Wikidata == centerWikidata

	if !sameEntity && z.ZoneType != zone.City {
		return
	}
	mergeIfAbsent(z, adminCenter.Tags, func(k string) bool {
		return strings.HasPrefix(k, "name:")
	})
}

func mergeIfAbsent(z *zone.Zone, tags map[string]string, keep func(string) bool) {
	if z.Tags == nil {
		z.Tags = make(map[string]string)
	}
	for k, v := range tags {
		if !keep(k) {
			continue
		}
		if _, exists := z.Tags[k]; exists {
			continue
		}
		z.Tags[k] = v
	}
}
