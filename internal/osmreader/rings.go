package osmreader

import "github.com/osm-without-borders/cosmogony/internal/geom"

// segment is one member way's coordinate sequence, tagged with its role
// ("outer" or "inner") within the parent multipolygon relation.
type segment struct {
	wayID  int64
	role   string
	coords []geom.Point
}

// assembleRings groups a relation's member way segments into closed rings by
// concatenating segments whose endpoints match, the standard OSM
// multipolygon construction algorithm. It returns the closed rings it could
// assemble for each role and the count of segments that were left over
// (never joined into a closed ring) after best-effort assembly.
func assembleRings(segments []segment, role string) (rings []geom.Ring, leftover int) {
	pending := make([]segment, 0, len(segments))
	for _, s := range segments {
		if s.role == role && len(s.coords) >= 2 {
			pending = append(pending, s)
		}
	}

	for len(pending) > 0 {
		cur := pending[0]
		pending = pending[1:]
		chain := append([]geom.Point{}, cur.coords...)
		used := 1

		for {
			if closed(chain) {
				break
			}
			idx := findJoinable(chain, pending)
			if idx < 0 {
				break
			}
			chain = joinChain(chain, pending[idx].coords)
			pending = append(pending[:idx], pending[idx+1:]...)
			used++
		}

		if closed(chain) && len(chain) >= 4 {
			rings = append(rings, geom.Ring(chain))
		} else {
			leftover += used
		}
	}
	return rings, leftover
}

func closed(chain []geom.Point) bool {
	if len(chain) < 2 {
		return false
	}
	return chain[0] == chain[len(chain)-1]
}

// findJoinable returns the index of the first pending segment whose start or
// end endpoint matches either endpoint of chain, or -1 if none does.
func findJoinable(chain []geom.Point, pending []segment) int {
	head, tail := chain[0], chain[len(chain)-1]
	for i, s := range pending {
		start, end := s.coords[0], s.coords[len(s.coords)-1]
		if tail == start || tail == end || head == start || head == end {
			return i
		}
	}
	return -1
}

// joinChain appends coords to chain, matching whichever endpoints touch and
// reversing/rotating as needed so the result stays a single connected path.
func joinChain(chain []geom.Point, coords []geom.Point) []geom.Point {
	tail := chain[len(chain)-1]
	head := chain[0]

	start, end := coords[0], coords[len(coords)-1]

	switch {
	case tail == start:
		return append(chain, coords[1:]...)
	case tail == end:
		return append(chain, reversed(coords)[1:]...)
	case head == end:
		return append(append([]geom.Point{}, coords[:len(coords)-1]...), chain...)
	case head == start:
		return append(reversed(coords)[:len(coords)-1], chain...)
	default:
		return chain
	}
}

func reversed(pts []geom.Point) []geom.Point {
	out := make([]geom.Point, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}
