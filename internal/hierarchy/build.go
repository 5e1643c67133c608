package hierarchy

import (
	"runtime"
	"sync"

	"github.com/dhconnelly/rtreego"

	"github.com/osm-without-borders/cosmogony/internal/geom"
	"github.com/osm-without-borders/cosmogony/internal/stats"
	"github.com/osm-without-borders/cosmogony/internal/zone"
)

// Options controls the parallel hierarchy pass.
type Options struct {
	// Workers is the number of goroutines assigning parents concurrently.
	// 0 defaults to runtime.NumCPU().
	Workers int
	// CacheSize bounds each worker's prepared-geometry LRU. The candidate
	// set for one center is usually small (a handful of nesting admin
	// levels); a modest cache keeps hit rate high without unbounded growth.
	CacheSize int
}

// DefaultOptions returns sensible defaults for a planet-scale run.
func DefaultOptions() Options {
	return Options{Workers: runtime.NumCPU(), CacheSize: 64}
}

// Build computes each zone's parent in place: it sets Zone.Parent (the
// parent's osm_id) and Zone.ParentIndex (the parent's index into zones), or
// clears both when no admin zone contains the zone's center.
//
// It returns the count of zones skipped for having a degenerate (empty)
// bounding box; those never receive a parent.
func Build(zones []*zone.Zone, opts Options) (skipped int) {
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = 64
	}

	tree := BuildTree(zones)

	jobs := make(chan int, len(zones))
	results := make(chan bool, len(zones))
	var wg sync.WaitGroup

	for w := 0; w < opts.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cache := newPreparedCache(opts.CacheSize)
			for i := range jobs {
				results <- assignParent(zones, i, tree, cache)
			}
		}()
	}

	for i := range zones {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	for wasSkipped := range results {
		if wasSkipped {
			skipped++
		}
	}

	return skipped
}

// assignParent resolves zones[i]'s parent, returning true if the zone was
// skipped outright for having an empty bounding box.
func assignParent(zones []*zone.Zone, i int, tree *rtreego.Rtree, cache *preparedCache) bool {
	z := zones[i]
	if z.BBox.Empty() {
		z.Parent = nil
		z.ParentIndex = -1
		return true
	}

	var best *zone.Zone
	bestIdx := -1

	for _, cIdx := range candidateIndices(tree, z.Center) {
		if cIdx == i {
			continue
		}
		c := zones[cIdx]
		if !z.CanBeChildOf(c) {
			continue
		}

		cg := cache.get(cIdx, func(idx int) geom.MultiPolygon { return zones[idx].Geometry })
		if !cg.contains(z.Center) {
			continue
		}

		if best == nil || better(c, best) {
			best = c
			bestIdx = cIdx
		}
	}

	if best != nil {
		parentOSMID := best.OSMID
		z.Parent = &parentOSMID
		z.ParentIndex = bestIdx
	} else {
		z.Parent = nil
		z.ParentIndex = -1
	}

	return false
}

// BreakCycles verifies acyclicity of the parent relation by following parent
// pointers from every zone. Any zone whose chain revisits a node still being
// walked has every zone in that cycle segment's parent cleared. It returns
// the number of zones whose parent was cleared this way.
func BreakCycles(zones []*zone.Zone, st *stats.Bundle) int {
	n := len(zones)
	done := make([]bool, n)
	broken := 0

	for i := 0; i < n; i++ {
		if done[i] {
			continue
		}
		path := make([]int, 0, 8)
		pos := make(map[int]int, 8)
		cur := i

		for cur != -1 && !done[cur] {
			if p, seen := pos[cur]; seen {
				for _, node := range path[p:] {
					zones[node].ParentIndex = -1
					zones[node].Parent = nil
					broken++
				}
				break
			}
			pos[cur] = len(path)
			path = append(path, cur)
			cur = zones[cur].ParentIndex
		}

		for _, node := range path {
			done[node] = true
		}
	}

	if st != nil {
		st.CyclicParentBroken += broken
	}
	return broken
}

// better reports whether candidate should replace current as best parent,
// applying the deterministic tie-break: smallest area, then larger
// admin_level, then lexicographically smaller osm_id.
func better(candidate, current *zone.Zone) bool {
	ca, cb := candidate.Geometry.Area(), current.Geometry.Area()
	if ca != cb {
		return ca < cb
	}
	cl, bl := levelOrMin(candidate), levelOrMin(current)
	if cl != bl {
		return cl > bl
	}
	return candidate.OSMID < current.OSMID
}

func levelOrMin(z *zone.Zone) int {
	if z.AdminLevel == nil {
		return -1
	}
	return *z.AdminLevel
}
