// Package cosmogony is the public API: build a hierarchical atlas of
// administrative zones from an OSM PBF extract, and merge previously-built
// atlases back together.
package cosmogony

import (
	"go.uber.org/zap"

	"github.com/osm-without-borders/cosmogony/internal/hierarchy"
	"github.com/osm-without-borders/cosmogony/internal/merge"
	"github.com/osm-without-borders/cosmogony/internal/pipeline"
	"github.com/osm-without-borders/cosmogony/internal/stats"
	"github.com/osm-without-borders/cosmogony/internal/zone"
)

// Zone is one administrative or synthetic region in the atlas.
type Zone = zone.Zone

// Stats is the run's statistics and audit-trail bundle.
type Stats = stats.Bundle

// Atlas is a completed, encode-ready set of zones.
type Atlas = pipeline.Atlas

// Tree is a read-only parent/child/ancestor navigation view over an atlas's
// zones, derived from the ParentIndex the Hierarchy Builder assigns during
// Generate.
type Tree = hierarchy.Tree

// NewTree derives a Tree from atlas's zones. Call it only on an atlas
// already produced by Generate, since it relies on ParentIndex having been
// resolved. Merge writes a file and returns no Atlas.
func NewTree(atlas *Atlas) *Tree {
	return hierarchy.NewTree(atlas.Zones)
}

// GenerateOptions configures a Generate call.
type GenerateOptions struct {
	// InputPath is the OSM PBF extract to read.
	InputPath string
	// FilterCountryCode, when set, restricts the output to zones whose
	// resolved country_code matches (an ISO-3166-1 alpha-2 code).
	FilterCountryCode string
	// FilterLangs restricts which name:* tags survive enrichment. A nil
	// slice keeps every language.
	FilterLangs []string
	// DisableVoronoi skips the supplemental nearest-postcode assignment
	// pass.
	DisableVoronoi bool
	// FrenchIDFix rewrites the dedup key of French communes from their
	// ref:INSEE tag, working around relations duplicated across imports.
	FrenchIDFix bool
	// IncludePlaceNodes synthesizes low-confidence zones from place=*
	// nodes with no administrative boundary of their own.
	IncludePlaceNodes bool
	// Workers bounds the hierarchy pass's parallelism. 0 picks a default.
	Workers int
	// Log receives stage-progress messages. A nil logger discards them.
	Log *zap.SugaredLogger
}

// Generate reads an OSM PBF extract and builds a complete atlas: boundary
// extraction, label enrichment, typing, admin_center enrichment, and
// hierarchy, in that order.
func Generate(opts GenerateOptions) (*Atlas, error) {
	return pipeline.Generate(pipeline.Options{
		InputPath:         opts.InputPath,
		FilterCountryCode: opts.FilterCountryCode,
		FilterLangs:       opts.FilterLangs,
		DisableVoronoi:    opts.DisableVoronoi,
		FrenchIDFix:       opts.FrenchIDFix,
		IncludePlaceNodes: opts.IncludePlaceNodes,
		HierarchyOptions:  hierarchy.Options{Workers: opts.Workers},
		Log:               opts.Log,
	})
}

// MergeOptions configures a Merge call.
type MergeOptions struct {
	// Store backs the cross-input osm_id dedup set. nil defaults to an
	// in-memory map, sufficient for merges whose combined input fits in
	// memory; use a Redis-backed store for planet-scale merges.
	Store merge.DedupStore
	Log   *zap.SugaredLogger
}

// MergeResult summarizes a completed merge.
type MergeResult struct {
	ZonesWritten int
	Stats        *Stats
}

// Merge unions the JSONL atlases at inputs into a single file at outPath,
// deduplicating by osm_id and reassigning a single dense id sequence.
func Merge(inputs []string, outPath string, opts MergeOptions) (MergeResult, error) {
	res, err := merge.Files(inputs, outPath, merge.Options{Store: opts.Store, Log: opts.Log})
	if err != nil {
		return MergeResult{}, err
	}
	return MergeResult{ZonesWritten: res.ZonesWritten, Stats: res.Stats}, nil
}
