package postcode

import (
	"math"

	"github.com/dhconnelly/rtreego"

	"github.com/osm-without-borders/cosmogony/internal/geom"
	"github.com/osm-without-borders/cosmogony/internal/zone"
)

const minSpan = 1e-9

type indexedFeature struct {
	idx  int
	bbox geom.BBox
}

func (f indexedFeature) Bounds() rtreego.Rect {
	lonSpan := f.bbox.MaxLon - f.bbox.MinLon
	latSpan := f.bbox.MaxLat - f.bbox.MinLat
	if lonSpan < minSpan {
		lonSpan = minSpan
	}
	if latSpan < minSpan {
		latSpan = minSpan
	}
	rect, _ := rtreego.NewRect(rtreego.Point{f.bbox.MinLon, f.bbox.MinLat}, []float64{lonSpan, latSpan})
	return rect
}

// BuildIndex bulk-loads every feature's bounding box for nearest-neighbour
// lookups during assignment, the same sort-tile-recursive bulk load
// internal/hierarchy uses instead of incremental Insert.
func BuildIndex(features []Feature) *rtreego.Rtree {
	entries := make([]rtreego.Spatial, len(features))
	for i, f := range features {
		entries[i] = indexedFeature{idx: i, bbox: f.BBox}
	}
	return rtreego.NewTree(2, 25, 50, entries...)
}

// AssignToZones fills in ZipCodes for every zone that has none, matching it
// to the postcode feature whose bounding box overlaps the zone's and whose
// centroid is nearest to the zone's own center. It returns the number of
// zones that received a zip code this way.
func AssignToZones(zones []*zone.Zone, features []Feature, tree *rtreego.Rtree) int {
	assigned := 0
	for _, z := range zones {
		if len(z.ZipCodes) > 0 || z.BBox.Empty() {
			continue
		}

		nearest, ok := nearestFeature(z, features, tree)
		if !ok {
			continue
		}
		z.AddZipCode(nearest.ZipCode)
		assigned++
	}
	return assigned
}

func nearestFeature(z *zone.Zone, features []Feature, tree *rtreego.Rtree) (Feature, bool) {
	rect, err := rtreego.NewRect(
		rtreego.Point{z.BBox.MinLon, z.BBox.MinLat},
		[]float64{maxSpan(z.BBox.MaxLon - z.BBox.MinLon), maxSpan(z.BBox.MaxLat - z.BBox.MinLat)},
	)
	if err != nil {
		return Feature{}, false
	}

	hits := tree.SearchIntersect(rect)
	if len(hits) == 0 {
		return Feature{}, false
	}

	bestIdx := -1
	bestDist := math.Inf(1)
	for _, h := range hits {
		idx := h.(indexedFeature).idx
		d := distance(z.Center, features[idx].Center)
		if d < bestDist {
			bestDist = d
			bestIdx = idx
		}
	}
	if bestIdx < 0 {
		return Feature{}, false
	}
	return features[bestIdx], true
}

func maxSpan(v float64) float64 {
	if v < minSpan {
		return minSpan
	}
	return v
}

func distance(a, b geom.Point) float64 {
	dLon := a.Lon - b.Lon
	dLat := a.Lat - b.Lat
	return math.Sqrt(dLon*dLon + dLat*dLat)
}
