// Package rules implements the Country Resolver & Rule Store: per-country
// admin_level -> zone_type mappings, embedded at build time from a curated
// YAML tree.
package rules

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/osm-without-borders/cosmogony/internal/zone"
)

//go:embed data/*.yaml
var embeddedRulesets embed.FS

// Override raises the resolved zone_type when a tag matches, optionally
// scoped to a specific admin_level.
type Override struct {
	AdminLevel *int   `yaml:"admin_level,omitempty"`
	Tag        string `yaml:"tag"`
	Value      string `yaml:"value"`
	ZoneType   string `yaml:"zone_type"`
}

// Ruleset is one country's admin_level -> zone_type mapping plus overrides.
type Ruleset struct {
	CountryCode string         `yaml:"country_code"`
	AdminLevels map[int]string `yaml:"admin_level"`
	Overrides   []Override     `yaml:"overrides"`
}

// TypeFor resolves the zone_type for a boundary at the given admin_level and
// tags, applying any matching override after the base admin_level mapping.
func (r *Ruleset) TypeFor(level *int, tags map[string]string) (zone.Type, bool) {
	base := zone.Unknown
	baseFound := false
	if level != nil {
		if name, ok := r.AdminLevels[*level]; ok {
			base = zone.ParseType(name)
			baseFound = true
		}
	}

	for _, o := range r.Overrides {
		if o.AdminLevel != nil && (level == nil || *o.AdminLevel != *level) {
			continue
		}
		if tags[o.Tag] == o.Value {
			return zone.ParseType(o.ZoneType), true
		}
	}

	return base, baseFound
}

// Store holds every embedded ruleset, keyed by upper-cased ISO country code.
type Store struct {
	mu       sync.Once
	rulesets map[string]*Ruleset
	loadErr  error
}

var global = &Store{}

// Global returns the process-wide Store, lazily parsing the embedded YAML
// tree exactly once on first use.
func Global() *Store {
	global.mu.Do(global.load)
	return global
}

func (s *Store) load() {
	s.rulesets = make(map[string]*Ruleset)

	entries, err := embeddedRulesets.ReadDir("data")
	if err != nil {
		s.loadErr = fmt.Errorf("rules: read embedded directory: %w", err)
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		raw, err := embeddedRulesets.ReadFile("data/" + entry.Name())
		if err != nil {
			s.loadErr = fmt.Errorf("rules: read %s: %w", entry.Name(), err)
			return
		}
		var rs Ruleset
		if err := yaml.Unmarshal(raw, &rs); err != nil {
			s.loadErr = fmt.Errorf("rules: parse %s: %w", entry.Name(), err)
			return
		}
		s.rulesets[strings.ToUpper(rs.CountryCode)] = &rs
	}
}

// Lookup returns the ruleset for the given ISO-3166-1 alpha-2 country code.
func (s *Store) Lookup(countryCode string) (*Ruleset, bool) {
	rs, ok := s.rulesets[strings.ToUpper(countryCode)]
	return rs, ok
}

// Err reports a load-time failure in the embedded ruleset tree, which would
// indicate a broken build rather than a data-quality issue.
func (s *Store) Err() error {
	return s.loadErr
}
