package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnhandledAdminLevelKeyFormatsCountryAndLevel(t *testing.T) {
	assert.Equal(t, "FR:9", UnhandledAdminLevelKey("FR", 9))
}

func TestMergeSumsCountersAndMaps(t *testing.T) {
	a := New()
	a.LevelCounts[8] = 2
	a.ZoneTypeCounts["city"] = 2
	a.WikidataCounts[8] = 1
	a.ZoneWithoutCountry = 1
	a.RingAssemblyFailed = 1
	a.DedupCount = 0

	b := New()
	b.LevelCounts[8] = 3
	b.LevelCounts[2] = 1
	b.ZoneTypeCounts["city"] = 1
	b.ZoneTypeCounts["country"] = 1
	b.CyclicParentBroken = 2
	b.DedupCount = 4

	a.Merge(b)

	assert.Equal(t, 5, a.LevelCounts[8])
	assert.Equal(t, 1, a.LevelCounts[2])
	assert.Equal(t, 3, a.ZoneTypeCounts["city"])
	assert.Equal(t, 1, a.ZoneTypeCounts["country"])
	assert.Equal(t, 1, a.WikidataCounts[8])
	assert.Equal(t, 1, a.ZoneWithoutCountry)
	assert.Equal(t, 1, a.RingAssemblyFailed)
	assert.Equal(t, 2, a.CyclicParentBroken)
	assert.Equal(t, 4, a.DedupCount)
}

func TestNewInitializesEveryMap(t *testing.T) {
	b := New()
	// Writing into a nil map panics; these must not.
	b.LevelCounts[1]++
	b.ZoneTypeCounts["x"]++
	b.WikidataCounts[1]++
	b.ZoneWithUnknownCountry["FR"]++
	b.UnhandledAdminLevel["FR:9"]++
}
