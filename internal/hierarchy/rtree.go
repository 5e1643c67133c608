// Package hierarchy implements the Hierarchy Builder: a spatial index over
// zone bounding boxes and the containment-based parent/child assignment
// pass, including cycle detection and a read-only tree view for downstream
// consumers.
package hierarchy

import (
	"github.com/dhconnelly/rtreego"

	"github.com/osm-without-borders/cosmogony/internal/geom"
	"github.com/osm-without-borders/cosmogony/internal/zone"
)

// indexedZone wraps a zone's index into the owning slice for R-tree storage.
// Only the index travels through the tree; the zone slice itself is the
// single owner of the Zone values (design notes: no shared owning pointers).
type indexedZone struct {
	idx  int
	bbox geom.BBox
}

// minSpan is applied to degenerate (point-like) bounding boxes so rtreego,
// which requires non-zero rectangle dimensions, can still index them.
const minSpan = 1e-9

// Bounds implements rtreego.Spatial.
func (z indexedZone) Bounds() rtreego.Rect {
	lonSpan := z.bbox.MaxLon - z.bbox.MinLon
	latSpan := z.bbox.MaxLat - z.bbox.MinLat
	if lonSpan < minSpan {
		lonSpan = minSpan
	}
	if latSpan < minSpan {
		latSpan = minSpan
	}
	rect, _ := rtreego.NewRect(rtreego.Point{z.bbox.MinLon, z.bbox.MinLat}, []float64{lonSpan, latSpan})
	return rect
}

// BuildTree bulk-loads every zone's bounding box into an R-tree in one pass.
// Zones with an empty (degenerate) geometry are skipped and must be handled
// as an edge case by the caller (they never receive a parent). Incremental
// Insert does not scale to a planet-scale zone count; rtreego's bulk-load
// constructor sorts and tiles the whole entry set at once instead.
func BuildTree(zones []*zone.Zone) *rtreego.Rtree {
	entries := make([]rtreego.Spatial, 0, len(zones))
	for i, z := range zones {
		if z.BBox.Empty() {
			continue
		}
		entries = append(entries, indexedZone{idx: i, bbox: z.BBox})
	}
	return rtreego.NewTree(2, 25, 50, entries...)
}

// candidateIndices returns the indices of every zone whose bbox contains p.
func candidateIndices(tree *rtreego.Rtree, p geom.Point) []int {
	rect, _ := rtreego.NewRect(rtreego.Point{p.Lon, p.Lat}, []float64{minSpan, minSpan})
	hits := tree.SearchIntersect(rect)
	out := make([]int, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.(indexedZone).idx)
	}
	return out
}
