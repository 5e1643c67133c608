// Package postcode implements the supplemental postal-code assignment pass:
// zones whose own tags carry no postcode are matched to the nearest
// postcode-carrying OSM feature by centroid distance, a "voronoi-style"
// nearest assignment (not a literal Voronoi diagram) named after the
// original implementation's own description of the technique.
package postcode

import (
	"fmt"

	"github.com/osm-without-borders/cosmogony/internal/geom"
	"github.com/osm-without-borders/cosmogony/internal/osmreader"
)

// Feature is a postal-code-carrying OSM relation resolved to a boundary.
type Feature struct {
	OSMID    string
	ZipCode  string
	Boundary geom.MultiPolygon
	BBox     geom.BBox
	Center   geom.Point
}

// FromRelation builds a Feature from a resolved OSM relation tagged with
// postal_code or boundary=postal_code. It returns false when the relation
// carries no postcode value or assembles to an empty boundary.
func FromRelation(rel osmreader.ResolvedRelation, boundary geom.MultiPolygon) (Feature, bool) {
	zip := rel.Tags["postal_code"]
	if zip == "" {
		zip = rel.Tags["addr:postcode"]
	}
	if zip == "" || len(boundary) == 0 {
		return Feature{}, false
	}
	return Feature{
		OSMID:    fmt.Sprintf("relation:%d", rel.OSMID),
		ZipCode:  zip,
		Boundary: boundary,
		BBox:     boundary.BBox(),
		Center:   boundary.Centroid(),
	}, true
}
