package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osm-without-borders/cosmogony/internal/geom"
	"github.com/osm-without-borders/cosmogony/internal/osmreader"
	"github.com/osm-without-borders/cosmogony/internal/zone"
)

func TestSetCenterPrefersAdminCenterThenLabelThenCentroid(t *testing.T) {
	poly := geom.Polygon{Outer: geom.Ring{{Lon: 0, Lat: 0}, {Lon: 0, Lat: 10}, {Lon: 10, Lat: 10}, {Lon: 10, Lat: 0}, {Lon: 0, Lat: 0}}}
	z := &zone.Zone{Geometry: geom.MultiPolygon{poly}}

	SetCenter(z, nil, nil)
	assert.InDelta(t, 5.0, z.Center.Lon, 1e-9)

	label := &osmreader.NodeRef{Lon: 1, Lat: 1}
	SetCenter(z, label, nil)
	assert.Equal(t, geom.Point{Lon: 1, Lat: 1}, z.Center)

	admin := &osmreader.NodeRef{Lon: 2, Lat: 2}
	SetCenter(z, label, admin)
	assert.Equal(t, geom.Point{Lon: 2, Lat: 2}, z.Center)
}

func TestMergeLabelNodeGatineau(t *testing.T) {
	z := &zone.Zone{Tags: map[string]string{}}
	label := &osmreader.NodeRef{Tags: map[string]string{"name:fr": "Gatineau", "name:en": "Gatineau", "population": "280000"}}
	MergeLabelNode(z, label)
	assert.Equal(t, "Gatineau", z.Tags["name:fr"])
	assert.Equal(t, "280000", z.Tags["population"])
}

func TestMergeLabelNodeDoesNotOverwriteExisting(t *testing.T) {
	z := &zone.Zone{Tags: map[string]string{"name:fr": "Original"}}
	label := &osmreader.NodeRef{Tags: map[string]string{"name:fr": "Overwritten"}}
	MergeLabelNode(z, label)
	assert.Equal(t, "Original", z.Tags["name:fr"])
}

func TestMergeAdminCenterOnlyForCityOrWikidataMatch(t *testing.T) {
	state := &zone.Zone{ZoneType: zone.State, Wikidata: "Q1", Tags: map[string]string{}}
	capitalCityCenter := &osmreader.NodeRef{Tags: map[string]string{"name:en": "Capital", "wikidata": "Q2"}}
	MergeAdminCenterNode(state, capitalCityCenter)
	assert.NotContains(t, state.Tags, "name:en", "state's admin_center names should not leak in on a wikidata mismatch")

	city := &zone.Zone{ZoneType: zone.City, Tags: map[string]string{}}
	MergeAdminCenterNode(city, capitalCityCenter)
	assert.Equal(t, "Capital", city.Tags["name:en"])

	sameEntity := &zone.Zone{ZoneType: zone.State, Wikidata: "Q2", Tags: map[string]string{}}
	MergeAdminCenterNode(sameEntity, capitalCityCenter)
	assert.Equal(t, "Capital", sameEntity.Tags["name:en"])

	cityWithConflictingWikidata := &zone.Zone{ZoneType: zone.City, Wikidata: "Q3", Tags: map[string]string{}}
	MergeAdminCenterNode(cityWithConflictingWikidata, capitalCityCenter)
	assert.Equal(t, "Capital", cityWithConflictingWikidata.Tags["name:en"], "a city merges its admin_center names regardless of a wikidata mismatch")
}
