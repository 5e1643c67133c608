// Package stats defines the atlas-wide statistics bundle every pipeline
// stage accumulates into, per the error-handling design: stage-level
// failures abort the run, but per-zone data-quality issues are counted here
// and become the run's audit trail.
package stats

import "fmt"

// Bundle is the full statistics record emitted alongside an atlas.
type Bundle struct {
	// RunID identifies one generate invocation, so two atlas builds of the
	// same input are distinguishable in logs and audits. Left empty by
	// merged bundles, which span more than one run.
	RunID                      string         `json:"run_id,omitempty"`
	LevelCounts                map[int]int    `json:"level_counts"`
	ZoneTypeCounts             map[string]int `json:"zone_type_counts"`
	WikidataCounts             map[int]int    `json:"wikidata_counts"`
	ZoneWithUnknownCountry     map[string]int `json:"zone_with_unknown_country_rules"`
	UnhandledAdminLevel        map[string]int `json:"unhandled_admin_level"`
	ZoneWithoutCountry         int            `json:"zone_without_country"`
	RingAssemblyFailed         int            `json:"ring_assembly_failed"`
	InvalidGeometryDropped     int            `json:"invalid_geometry_dropped"`
	CyclicParentBroken         int            `json:"cyclic_parent_broken"`
	DedupCount                 int            `json:"dedup_count,omitempty"`
}

// New returns a zero-valued Bundle with every map initialised.
func New() *Bundle {
	return &Bundle{
		LevelCounts:            make(map[int]int),
		ZoneTypeCounts:         make(map[string]int),
		WikidataCounts:         make(map[int]int),
		ZoneWithUnknownCountry: make(map[string]int),
		UnhandledAdminLevel:    make(map[string]int),
	}
}

// UnhandledAdminLevelKey formats the "{country_code}:{admin_level}" stat key.
func UnhandledAdminLevelKey(countryCode string, level int) string {
	return fmt.Sprintf("%s:%d", countryCode, level)
}

// Merge sums o into b in place, used by the merger to combine per-input
// statistics into one bundle.
func (b *Bundle) Merge(o *Bundle) {
	for k, v := range o.LevelCounts {
		b.LevelCounts[k] += v
	}
	for k, v := range o.ZoneTypeCounts {
		b.ZoneTypeCounts[k] += v
	}
	for k, v := range o.WikidataCounts {
		b.WikidataCounts[k] += v
	}
	for k, v := range o.ZoneWithUnknownCountry {
		b.ZoneWithUnknownCountry[k] += v
	}
	for k, v := range o.UnhandledAdminLevel {
		b.UnhandledAdminLevel[k] += v
	}
	b.ZoneWithoutCountry += o.ZoneWithoutCountry
	b.RingAssemblyFailed += o.RingAssemblyFailed
	b.InvalidGeometryDropped += o.InvalidGeometryDropped
	b.CyclicParentBroken += o.CyclicParentBroken
	b.DedupCount += o.DedupCount
}
