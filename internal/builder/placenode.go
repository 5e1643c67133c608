package builder

import (
	"fmt"

	"github.com/osm-without-borders/cosmogony/internal/geom"
	"github.com/osm-without-borders/cosmogony/internal/osmreader"
	"github.com/osm-without-borders/cosmogony/internal/zone"
)

// placeTypes maps a place=* tag value to the closest libpostal-style zone
// type, per the original's additional-zones fallback.
var placeTypes = map[string]zone.Type{
	"city":          zone.City,
	"town":          zone.City,
	"village":       zone.Suburb,
	"hamlet":        zone.Suburb,
	"suburb":        zone.Suburb,
	"neighbourhood": zone.CityDistrict,
	"quarter":       zone.CityDistrict,
}

// placeNodeHalfSide is the half-width, in degrees, of the synthetic square
// geometry drawn around a place node standing in for a real boundary.
const placeNodeHalfSide = 0.001

// SynthesizeFromPlaceNode builds a low-confidence synthetic zone from a
// place=* node, so downstream geocoders still have a leaf to attach addresses
// to. It returns false for place values with no libpostal-style mapping. It
// does not check whether an administrative boundary already covers the node:
// every node with a mapped place value yields a zone.
func SynthesizeFromPlaceNode(pn osmreader.PlaceNode) (*zone.Zone, bool) {
	zt, ok := placeTypes[pn.Tags["place"]]
	if !ok {
		return nil, false
	}

	center := geom.Point{Lon: pn.Lon, Lat: pn.Lat}
	mp := geom.MultiPolygon{{Outer: square(
		center.Lon-placeNodeHalfSide, center.Lat-placeNodeHalfSide,
		center.Lon+placeNodeHalfSide, center.Lat+placeNodeHalfSide,
	)}}

	tags := copyTags(pn.Tags)
	tags["cosmogony:synthetic"] = "place_node"

	z := &zone.Zone{
		OSMID:     fmt.Sprintf("node:%d", pn.ID),
		ZoneType:  zt,
		Name:      pn.Tags["name"],
		Wikidata:  pn.Tags["wikidata"],
		Center:    center,
		BBox:      mp.BBox(),
		Geometry:  mp,
		Tags:      tags,
		Synthetic: true,
	}
	return z, true
}
