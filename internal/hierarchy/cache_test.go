package hierarchy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osm-without-borders/cosmogony/internal/geom"
)

func TestPreparedCacheHitAvoidsReload(t *testing.T) {
	c := newPreparedCache(2)
	loads := 0
	load := func(idx int) geom.MultiPolygon {
		loads++
		return geom.MultiPolygon{{Outer: square(0, 0, float64(idx+1))}}
	}

	c.get(1, load)
	c.get(1, load)
	assert.Equal(t, 1, loads)
}

func TestPreparedCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := newPreparedCache(2)
	load := func(idx int) geom.MultiPolygon {
		return geom.MultiPolygon{{Outer: square(0, 0, float64(idx+1))}}
	}

	c.get(1, load)
	c.get(2, load)
	c.get(1, load) // idx 1 now most recent
	c.get(3, load) // evicts idx 2, the least recently used

	_, stillCached := c.entries[2]
	assert.False(t, stillCached)
	_, oneCached := c.entries[1]
	assert.True(t, oneCached)
}
