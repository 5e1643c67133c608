// Package osmreader implements the two-pass random-access traversal of an
// OSM PBF extract required to resolve administrative-boundary relations into
// closed rings with full coordinates.
//
// Low-level PBF block decoding is delegated to github.com/qedus/osmpbf,
// which streams OSM primitives (nodes, ways, relations) off a *os.File; this
// package supplies everything osmpbf does not: the two-pass indexing
// strategy, node/way resolution, and OSM multipolygon ring assembly.
package osmreader

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/qedus/osmpbf"
	"go.uber.org/zap"

	"github.com/osm-without-borders/cosmogony/internal/geom"
)

// NodeRef is a resolved OSM node carried along with a relation, used for the
// `label` and `admin_center` members.
type NodeRef struct {
	ID   int64
	Lon  float64
	Lat  float64
	Tags map[string]string
}

// ResolvedRelation is a boundary=administrative relation with every member
// way concatenated into closed outer/inner rings and full coordinates.
type ResolvedRelation struct {
	OSMID          int64
	Tags           map[string]string
	OuterRings     []geom.Ring
	InnerRings     []geom.Ring
	LabelNode      *NodeRef
	AdminCenter    *NodeRef
	IncompleteRing bool // true if some member ways could not be joined into a closed ring
}

// Stats accumulates non-fatal reader-level counters, folded into the
// pipeline's overall statistics bundle.
type Stats struct {
	RelationsSeen      int
	RelationsResolved  int
	RelationsDropped   int
	RingAssemblyFailed int
}

// Reader performs the two-pass PBF traversal described in the package doc.
type Reader struct {
	log *zap.SugaredLogger
}

// New returns a Reader that logs progress to log. A nil logger is replaced
// with a no-op logger.
func New(log *zap.SugaredLogger) *Reader {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Reader{log: log}
}

type rawRelation struct {
	id      int64
	tags    map[string]string
	members []osmpbf.Member
}

// Read performs both passes over path and returns every resolved
// boundary=administrative relation in file iteration order.
func (r *Reader) Read(path string) ([]ResolvedRelation, Stats, error) {
	return r.read(path, isAdminBoundary)
}

// ReadPostcodeRelations performs the same two-pass resolution restricted to
// boundary=postal_code relations, for the postcode assignment supplement.
func (r *Reader) ReadPostcodeRelations(path string) ([]ResolvedRelation, Stats, error) {
	return r.read(path, isPostalCodeBoundary)
}

func isAdminBoundary(tags map[string]string) bool {
	return tags["boundary"] == "administrative"
}

func isPostalCodeBoundary(tags map[string]string) bool {
	if tags["boundary"] != "postal_code" {
		return false
	}
	return tags["postal_code"] != "" || tags["addr:postcode"] != ""
}

func (r *Reader) read(path string, wanted func(map[string]string) bool) ([]ResolvedRelation, Stats, error) {
	var stats Stats

	relations, wantedWays, wantedNodes, err := r.firstPass(path, wanted)
	if err != nil {
		return nil, stats, fmt.Errorf("osmreader: first pass: %w", err)
	}
	stats.RelationsSeen = len(relations)

	wayCoords, nodeRefs, err := r.secondPass(path, wantedWays, wantedNodes)
	if err != nil {
		return nil, stats, fmt.Errorf("osmreader: second pass: %w", err)
	}

	resolved := make([]ResolvedRelation, 0, len(relations))
	for _, rel := range relations {
		rr, ok := r.buildRelation(rel, wayCoords, nodeRefs)
		if !ok {
			stats.RelationsDropped++
			continue
		}
		if rr.IncompleteRing {
			stats.RingAssemblyFailed++
		}
		resolved = append(resolved, rr)
		stats.RelationsResolved++
	}

	return resolved, stats, nil
}

// firstPass indexes every relation matching wanted and the way/node ids
// they transitively need.
func (r *Reader) firstPass(path string, wanted func(map[string]string) bool) ([]rawRelation, map[int64]bool, map[int64]bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, nil, err
	}
	defer f.Close()

	d := osmpbf.NewDecoder(f)
	if err := d.Start(runtime.GOMAXPROCS(-1)); err != nil {
		return nil, nil, nil, fmt.Errorf("start decoder: %w", err)
	}

	var relations []rawRelation
	wantedWays := make(map[int64]bool)
	wantedNodes := make(map[int64]bool)

	for {
		v, err := d.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, nil, err
		}

		rel, ok := v.(*osmpbf.Relation)
		if !ok {
			continue
		}
		if !wanted(rel.Tags) {
			continue
		}

		relations = append(relations, rawRelation{id: rel.ID, tags: rel.Tags, members: rel.Members})

		for _, m := range rel.Members {
			switch m.Type {
			case osmpbf.WayType:
				wantedWays[m.ID] = true
			case osmpbf.NodeType:
				if m.Role == "label" || m.Role == "admin_center" {
					wantedNodes[m.ID] = true
				}
			}
		}
	}

	r.log.Infow("first pass complete", "candidate_relations", len(relations), "wanted_ways", len(wantedWays))
	return relations, wantedWays, wantedNodes, nil
}

// secondPass resolves wanted way node-id lists into coordinates and wanted
// node ids into full NodeRefs. Because a well-formed PBF file always emits
// all nodes before any way, every node coordinate a wanted way needs has
// already streamed by the time that way is decoded.
func (r *Reader) secondPass(path string, wantedWays, wantedNodes map[int64]bool) (map[int64][]geom.Point, map[int64]NodeRef, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	d := osmpbf.NewDecoder(f)
	if err := d.Start(runtime.GOMAXPROCS(-1)); err != nil {
		return nil, nil, fmt.Errorf("start decoder: %w", err)
	}

	nodeCoords := make(map[int64]geom.Point)
	nodeRefs := make(map[int64]NodeRef, len(wantedNodes))
	wayNodeIDs := make(map[int64][]int64, len(wantedWays))

	for {
		v, err := d.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}

		switch p := v.(type) {
		case *osmpbf.Node:
			nodeCoords[p.ID] = geom.Point{Lon: p.Lon, Lat: p.Lat}
			if wantedNodes[p.ID] {
				nodeRefs[p.ID] = NodeRef{ID: p.ID, Lon: p.Lon, Lat: p.Lat, Tags: p.Tags}
			}
		case *osmpbf.Way:
			if wantedWays[p.ID] {
				wayNodeIDs[p.ID] = p.NodeIDs
			}
		}
	}

	wayCoords := make(map[int64][]geom.Point, len(wayNodeIDs))
	for wayID, nodeIDs := range wayNodeIDs {
		coords := make([]geom.Point, 0, len(nodeIDs))
		for _, nid := range nodeIDs {
			c, ok := nodeCoords[nid]
			if !ok {
				err := &ErrMissingNodeCoordinate{WayID: wayID, NodeID: nid}
				r.log.Warnw("skipping way segment", "error", err)
				continue
			}
			coords = append(coords, c)
		}
		wayCoords[wayID] = coords
	}

	return wayCoords, nodeRefs, nil
}

// buildRelation assembles one relation's member ways into rings and resolves
// its label/admin_center node references.
func (r *Reader) buildRelation(rel rawRelation, wayCoords map[int64][]geom.Point, nodeRefs map[int64]NodeRef) (ResolvedRelation, bool) {
	var segments []segment
	var label, adminCenter *NodeRef

	for _, m := range rel.members {
		switch m.Type {
		case osmpbf.WayType:
			coords, ok := wayCoords[m.ID]
			if !ok || len(coords) < 2 {
				continue
			}
			role := m.Role
			if role != "inner" {
				role = "outer"
			}
			segments = append(segments, segment{wayID: m.ID, role: role, coords: coords})
		case osmpbf.NodeType:
			if nr, ok := nodeRefs[m.ID]; ok {
				nr := nr
				switch m.Role {
				case "label":
					label = &nr
				case "admin_center":
					adminCenter = &nr
				}
			}
		}
	}

	outer, outerLeft := assembleRings(segments, "outer")
	inner, innerLeft := assembleRings(segments, "inner")

	if outerLeft > 0 {
		r.log.Warnw("ring did not close", "error", &ErrRingNotClosed{RelationID: rel.id, Role: "outer", Segments: outerLeft})
	}
	if innerLeft > 0 {
		r.log.Warnw("ring did not close", "error", &ErrRingNotClosed{RelationID: rel.id, Role: "inner", Segments: innerLeft})
	}

	if len(outer) == 0 {
		return ResolvedRelation{}, false
	}

	return ResolvedRelation{
		OSMID:          rel.id,
		Tags:           rel.tags,
		OuterRings:     outer,
		InnerRings:     inner,
		LabelNode:      label,
		AdminCenter:    adminCenter,
		IncompleteRing: outerLeft > 0 || innerLeft > 0,
	}, true
}
