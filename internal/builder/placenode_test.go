package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osm-without-borders/cosmogony/internal/osmreader"
	"github.com/osm-without-borders/cosmogony/internal/zone"
)

func TestSynthesizeFromPlaceNodeBuildsSyntheticZone(t *testing.T) {
	pn := osmreader.PlaceNode{
		ID:   99,
		Lon:  2.35,
		Lat:  48.85,
		Tags: map[string]string{"place": "village", "name": "Petitville"},
	}
	z, ok := SynthesizeFromPlaceNode(pn)
	require.True(t, ok)
	assert.Equal(t, "node:99", z.OSMID)
	assert.Equal(t, zone.Suburb, z.ZoneType)
	assert.Equal(t, "Petitville", z.Name)
	assert.True(t, z.Synthetic)
	assert.Equal(t, "place_node", z.Tags["cosmogony:synthetic"])
	assert.False(t, z.BBox.Empty())
}

func TestSynthesizeFromPlaceNodeRejectsUnmappedPlaceValue(t *testing.T) {
	pn := osmreader.PlaceNode{ID: 1, Tags: map[string]string{"place": "locality"}}
	_, ok := SynthesizeFromPlaceNode(pn)
	assert.False(t, ok)
}
