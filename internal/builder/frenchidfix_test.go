package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osm-without-borders/cosmogony/internal/zone"
)

func TestApplyFrenchIDFixOverridesKeyForFrenchCommune(t *testing.T) {
	z := &zone.Zone{OSMID: "relation:1", CountryCode: "FR", Tags: map[string]string{"ref:INSEE": "75056"}}
	ApplyFrenchIDFix(z)
	assert.Equal(t, "insee:75056", z.Key())
	assert.Equal(t, "relation:1", z.OSMID, "osm_id itself must stay unchanged")
}

func TestApplyFrenchIDFixSkipsNonFrenchZones(t *testing.T) {
	z := &zone.Zone{OSMID: "relation:1", CountryCode: "DE", Tags: map[string]string{"ref:INSEE": "75056"}}
	ApplyFrenchIDFix(z)
	assert.Equal(t, "relation:1", z.Key())
}

func TestApplyFrenchIDFixSkipsZonesWithoutInseeTag(t *testing.T) {
	z := &zone.Zone{OSMID: "relation:1", CountryCode: "FR", Tags: map[string]string{}}
	ApplyFrenchIDFix(z)
	assert.Equal(t, "relation:1", z.Key())
}
