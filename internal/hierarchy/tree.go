package hierarchy

import "github.com/osm-without-borders/cosmogony/internal/zone"

// Tree is a read-only view over a flat zone slice once Build has populated
// ParentIndex, offering child/ancestor/root navigation to library consumers
// (through pkg/cosmogony.NewTree) without re-deriving it from the OSM
// relation graph. Grounded on the original's zone_tree/mutable_slice
// helpers, reimplemented here as index slices over the immutable atlas.
type Tree struct {
	zones    []*zone.Zone
	children [][]int
	roots    []int
}

// NewTree derives child adjacency lists from zones' ParentIndex fields. Call
// it only after Build has run.
func NewTree(zones []*zone.Zone) *Tree {
	t := &Tree{
		zones:    zones,
		children: make([][]int, len(zones)),
	}
	for i, z := range zones {
		if z.ParentIndex < 0 {
			t.roots = append(t.roots, i)
			continue
		}
		t.children[z.ParentIndex] = append(t.children[z.ParentIndex], i)
	}
	return t
}

// Roots returns the indices of every zone with no parent.
func (t *Tree) Roots() []int {
	return t.roots
}

// Children returns the indices of idx's direct children.
func (t *Tree) Children(idx int) []int {
	return t.children[idx]
}

// Ancestors returns idx's parent chain, nearest first, terminating at a root.
func (t *Tree) Ancestors(idx int) []int {
	var out []int
	cur := t.zones[idx].ParentIndex
	seen := map[int]bool{idx: true}
	for cur >= 0 && !seen[cur] {
		out = append(out, cur)
		seen[cur] = true
		cur = t.zones[cur].ParentIndex
	}
	return out
}

// Walk visits every zone reachable from idx (idx included) in pre-order
// depth-first order, calling visit with each index.
func (t *Tree) Walk(idx int, visit func(int)) {
	visit(idx)
	for _, c := range t.children[idx] {
		t.Walk(c, visit)
	}
}

// WalkAll visits every root and its descendants, in pre-order.
func (t *Tree) WalkAll(visit func(int)) {
	for _, r := range t.roots {
		t.Walk(r, visit)
	}
}

// Zone returns the zone at idx.
func (t *Tree) Zone(idx int) *zone.Zone {
	return t.zones[idx]
}
