package postcode

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osm-without-borders/cosmogony/internal/geom"
	"github.com/osm-without-borders/cosmogony/internal/zone"
)

func featureAt(zip string, cx, cy float64) Feature {
	bbox := geom.BBox{MinLon: cx - 0.1, MinLat: cy - 0.1, MaxLon: cx + 0.1, MaxLat: cy + 0.1}
	return Feature{ZipCode: zip, BBox: bbox, Center: geom.Point{Lon: cx, Lat: cy}}
}

func TestAssignToZonesPicksNearestFeature(t *testing.T) {
	near := featureAt("75001", 0, 0)
	far := featureAt("99999", 5, 5)
	features := []Feature{near, far}
	tree := BuildIndex(features)

	z := &zone.Zone{
		Center: geom.Point{Lon: 0.05, Lat: 0.05},
		BBox:   geom.BBox{MinLon: -1, MinLat: -1, MaxLon: 1, MaxLat: 1},
	}
	zones := []*zone.Zone{z}

	assigned := AssignToZones(zones, features, tree)

	assert.Equal(t, 1, assigned)
	assert.Equal(t, []string{"75001"}, z.ZipCodes)
}

func TestAssignToZonesSkipsZonesWithExistingZipCodes(t *testing.T) {
	features := []Feature{featureAt("75001", 0, 0)}
	tree := BuildIndex(features)

	z := &zone.Zone{
		Center:   geom.Point{Lon: 0, Lat: 0},
		BBox:     geom.BBox{MinLon: -1, MinLat: -1, MaxLon: 1, MaxLat: 1},
		ZipCodes: []string{"already-set"},
	}
	zones := []*zone.Zone{z}

	assigned := AssignToZones(zones, features, tree)

	assert.Equal(t, 0, assigned)
	assert.Equal(t, []string{"already-set"}, z.ZipCodes)
}

func TestAssignToZonesSkipsDegenerateBBox(t *testing.T) {
	features := []Feature{featureAt("75001", 0, 0)}
	tree := BuildIndex(features)
	z := &zone.Zone{Center: geom.Point{Lon: 0, Lat: 0}, BBox: geom.EmptyBBox()}

	assigned := AssignToZones([]*zone.Zone{z}, features, tree)

	assert.Equal(t, 0, assigned)
}

func TestAssignToZonesNoOverlapLeavesZoneUnassigned(t *testing.T) {
	features := []Feature{featureAt("75001", 100, 100)}
	tree := BuildIndex(features)
	z := &zone.Zone{
		Center: geom.Point{Lon: 0, Lat: 0},
		BBox:   geom.BBox{MinLon: -1, MinLat: -1, MaxLon: 1, MaxLat: 1},
	}

	assigned := AssignToZones([]*zone.Zone{z}, features, tree)

	assert.Equal(t, 0, assigned)
	assert.Empty(t, z.ZipCodes)
}
