package hierarchy

import (
	"container/list"

	"github.com/osm-without-borders/cosmogony/internal/geom"
)

// preparedGeometry pairs a candidate's multipolygon with each member
// polygon's bounding box, computed once per cache population so a Contains
// check against the same candidate can reject most member polygons by
// envelope before falling back to the full ray-casting test.
type preparedGeometry struct {
	mp     geom.MultiPolygon
	bboxes []geom.BBox
}

func prepare(mp geom.MultiPolygon) preparedGeometry {
	bboxes := make([]geom.BBox, len(mp))
	for i, poly := range mp {
		b := geom.EmptyBBox()
		for _, p := range poly.Outer {
			b = b.Extend(p)
		}
		bboxes[i] = b
	}
	return preparedGeometry{mp: mp, bboxes: bboxes}
}

// contains reports whether p lies inside g, bbox-testing each member
// polygon before running its full ray-casting Contains.
func (g preparedGeometry) contains(p geom.Point) bool {
	for i, poly := range g.mp {
		if !g.bboxes[i].Contains(p) {
			continue
		}
		if poly.Contains(p) {
			return true
		}
	}
	return false
}

// preparedCache is an LRU cache from candidate zone index to its prepared
// geometry, scoped to a single hierarchy worker goroutine. Because it is
// never shared across goroutines it needs no locking, unlike a process-wide
// cache. Preparing a candidate (computing its member-polygon bboxes) costs
// more than a bare field read, which is what makes caching it worthwhile:
// a candidate country checked against thousands of children is prepared once
// per worker instead of once per check.
type preparedCache struct {
	capacity int
	entries  map[int]*list.Element
	order    *list.List // most-recently-used at the front
}

type cacheEntry struct {
	idx  int
	geom preparedGeometry
}

func newPreparedCache(capacity int) *preparedCache {
	return &preparedCache{
		capacity: capacity,
		entries:  make(map[int]*list.Element),
		order:    list.New(),
	}
}

// get returns the prepared geometry for idx, building it from load on a
// miss and evicting the least-recently-used entry if the cache is full.
func (c *preparedCache) get(idx int, load func(int) geom.MultiPolygon) preparedGeometry {
	if el, ok := c.entries[idx]; ok {
		c.order.MoveToFront(el)
		return el.Value.(*cacheEntry).geom
	}

	g := prepare(load(idx))
	el := c.order.PushFront(&cacheEntry{idx: idx, geom: g})
	c.entries[idx] = el

	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.entries, oldest.Value.(*cacheEntry).idx)
		}
	}

	return g
}
