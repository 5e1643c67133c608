// Package pipeline wires every stage — PBF Reader, Zone Builder, Country
// Resolver, Name Enricher, Zone Typer, Hierarchy Builder, and (optionally)
// the postcode assignment supplement — into the single synchronous dataflow
// described by the concurrency model: each stage completes before the next
// begins.
package pipeline

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/osm-without-borders/cosmogony/internal/builder"
	"github.com/osm-without-borders/cosmogony/internal/country"
	"github.com/osm-without-borders/cosmogony/internal/enrich"
	"github.com/osm-without-borders/cosmogony/internal/hierarchy"
	"github.com/osm-without-borders/cosmogony/internal/osmreader"
	"github.com/osm-without-borders/cosmogony/internal/postcode"
	"github.com/osm-without-borders/cosmogony/internal/rules"
	"github.com/osm-without-borders/cosmogony/internal/stats"
	"github.com/osm-without-borders/cosmogony/internal/typer"
	"github.com/osm-without-borders/cosmogony/internal/zone"
)

// Options configures a generate run.
type Options struct {
	InputPath string
	// FilterCountryCode, when set, drops every zone whose resolved
	// country_code does not match (an ISO-3166-1 alpha-2 code).
	FilterCountryCode string
	// FilterLangs restricts which name:* tags survive enrichment. A nil
	// slice keeps every language; a non-nil empty slice drops every name:*
	// tag.
	FilterLangs []string
	DisableVoronoi   bool
	FrenchIDFix      bool
	IncludePlaceNodes bool
	HierarchyOptions hierarchy.Options
	Log              *zap.SugaredLogger
}

// Atlas is the completed, encode-ready result of a generate run.
type Atlas struct {
	Zones []*zone.Zone
	Stats *stats.Bundle
}

// Generate runs the full pipeline against a PBF extract.
func Generate(opts Options) (*Atlas, error) {
	log := opts.Log
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	st := stats.New()
	st.RunID = uuid.NewString()

	store := rules.Global()
	if err := store.Err(); err != nil {
		return nil, fmt.Errorf("pipeline: ruleset store: %w", err)
	}

	reader := osmreader.New(log)
	relations, readStats, err := reader.Read(opts.InputPath)
	if err != nil {
		return nil, fmt.Errorf("pipeline: read: %w", err)
	}
	st.RingAssemblyFailed += readStats.RingAssemblyFailed
	log.Infow("pbf read complete",
		"relations_seen", readStats.RelationsSeen,
		"relations_resolved", readStats.RelationsResolved,
		"relations_dropped", readStats.RelationsDropped,
	)

	zones := make([]*zone.Zone, 0, len(relations))
	for _, rr := range relations {
		z, ok := builder.Build(rr, st)
		if !ok {
			continue
		}
		enrich.SetCenter(z, rr.LabelNode, rr.AdminCenter)
		enrich.MergeLabelNode(z, rr.LabelNode)
		zones = append(zones, z)
	}

	if opts.IncludePlaceNodes {
		placeNodes, err := reader.ReadPlaceNodes(opts.InputPath)
		if err != nil {
			return nil, fmt.Errorf("pipeline: read place nodes: %w", err)
		}
		for _, pn := range placeNodes {
			z, ok := builder.SynthesizeFromPlaceNode(pn)
			if !ok {
				continue
			}
			zones = append(zones, z)
		}
		log.Infow("place node synthesis complete", "place_nodes", len(placeNodes))
	}

	resolveCountries(zones, st)

	if opts.FrenchIDFix {
		for _, z := range zones {
			builder.ApplyFrenchIDFix(z)
		}
		zones = dedupByKey(zones, st)
	}

	relationByID := make(map[string]*osmreader.ResolvedRelation, len(relations))
	for i := range relations {
		relationByID[fmt.Sprintf("relation:%d", relations[i].OSMID)] = &relations[i]
	}

	for _, z := range zones {
		if z.Synthetic {
			continue
		}
		typer.Type(z, store, st)
	}
	for _, z := range zones {
		if z.Synthetic {
			continue
		}
		if rr, ok := relationByID[z.OSMID]; ok {
			enrich.MergeAdminCenterNode(z, rr.AdminCenter)
		}
	}

	if opts.FilterLangs != nil {
		filterLanguageTags(zones, opts.FilterLangs)
	}

	hierarchy.Build(zones, opts.HierarchyOptions)
	hierarchy.BreakCycles(zones, st)

	if !opts.DisableVoronoi {
		postcodeRelations, postcodeStats, err := reader.ReadPostcodeRelations(opts.InputPath)
		if err != nil {
			return nil, fmt.Errorf("pipeline: read postcode relations: %w", err)
		}
		log.Infow("postcode relations read", "relations_resolved", postcodeStats.RelationsResolved)
		assignPostcodes(zones, postcodeRelations, log)
	}

	if opts.FilterCountryCode != "" {
		zones = filterByCountry(zones, opts.FilterCountryCode)
	}

	tallyStats(zones, st)

	return &Atlas{Zones: zones, Stats: st}, nil
}

// resolveCountries runs the Country Resolver's two phases: self-attributed
// countries first, then everyone else against that set.
func resolveCountries(zones []*zone.Zone, st *stats.Bundle) {
	var countries []*zone.Zone
	for _, z := range zones {
		if cc, ok := country.SelfCountryCode(z); ok {
			z.CountryCode = cc
			countries = append(countries, z)
		}
	}
	for _, z := range zones {
		country.Attribute(z, countries, st)
	}
}

func assignPostcodes(zones []*zone.Zone, relations []osmreader.ResolvedRelation, log *zap.SugaredLogger) {
	var features []postcode.Feature
	for _, rr := range relations {
		mp := builder.AssembleMultiPolygon(rr.OuterRings, rr.InnerRings)
		if f, ok := postcode.FromRelation(rr, mp); ok {
			features = append(features, f)
		}
	}
	if len(features) == 0 {
		return
	}
	idx := postcode.BuildIndex(features)
	assigned := postcode.AssignToZones(zones, features, idx)
	log.Infow("postcode assignment complete", "features", len(features), "zones_assigned", assigned)
}

// dedupByKey drops every zone whose Key() has already been seen, keeping the
// first occurrence in slice order. With --french-id-fix applied, INSEE-linked
// duplicates share a Key() even though their osm_id differs, so this is where
// that override actually removes the duplicate from the run.
func dedupByKey(zones []*zone.Zone, st *stats.Bundle) []*zone.Zone {
	seen := make(map[string]bool, len(zones))
	out := zones[:0]
	for _, z := range zones {
		key := z.Key()
		if seen[key] {
			st.DedupCount++
			continue
		}
		seen[key] = true
		out = append(out, z)
	}
	return out
}

// filterByCountry keeps only zones whose resolved country_code matches code,
// remapping each survivor's ParentIndex onto the compacted slice (or
// clearing it to -1 when the parent itself was filtered out) so a Tree built
// from the result never indexes past the end of the kept zones.
func filterByCountry(zones []*zone.Zone, code string) []*zone.Zone {
	oldToNew := make(map[int]int, len(zones))
	out := zones[:0]
	for i, z := range zones {
		if z.CountryCode != code {
			continue
		}
		oldToNew[i] = len(out)
		out = append(out, z)
	}
	for _, z := range out {
		if z.ParentIndex < 0 {
			continue
		}
		if newIdx, ok := oldToNew[z.ParentIndex]; ok {
			z.ParentIndex = newIdx
		} else {
			z.ParentIndex = -1
			z.Parent = nil
		}
	}
	return out
}

func filterLanguageTags(zones []*zone.Zone, langs []string) {
	keep := make(map[string]bool, len(langs))
	for _, l := range langs {
		keep["name:"+l] = true
	}
	for _, z := range zones {
		for k := range z.Tags {
			if k == "name" || !hasPrefix(k, "name:") {
				continue
			}
			if !keep[k] {
				delete(z.Tags, k)
			}
		}
	}
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}

func tallyStats(zones []*zone.Zone, st *stats.Bundle) {
	for _, z := range zones {
		if z.AdminLevel != nil {
			st.LevelCounts[*z.AdminLevel]++
		}
		if z.ZoneType != zone.Unknown {
			st.ZoneTypeCounts[z.ZoneType.String()]++
		}
		if z.Wikidata != "" && z.AdminLevel != nil {
			st.WikidataCounts[*z.AdminLevel]++
		}
	}
}
