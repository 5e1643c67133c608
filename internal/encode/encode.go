// Package encode implements the Output Encoder: serialising a built atlas
// to JSONL or a single JSON document, assigning dense zone ids in iteration
// order, and appending the run's statistics as a trailing meta record.
package encode

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/osm-without-borders/cosmogony/internal/stats"
	"github.com/osm-without-borders/cosmogony/internal/zone"
)

// Format selects the on-disk shape of the atlas.
type Format int

const (
	// JSONL emits one JSON object per line, one Zone per line, with a
	// final `{"meta": {...}}` line.
	JSONL Format = iota
	// SingleJSON emits one document `{"zones": [...], "meta": {...}}`.
	SingleJSON
)

// FormatForPath infers the encoding and gzip wrapping from an output
// filename's suffix, per the CLI's "output file extension drives encoding"
// rule.
func FormatForPath(path string) (Format, bool) {
	name := path
	gz := false
	if strings.HasSuffix(name, ".gz") {
		gz = true
		name = strings.TrimSuffix(name, ".gz")
	}
	if strings.HasSuffix(name, ".jsonl") {
		return JSONL, gz
	}
	return SingleJSON, gz
}

// WriteToFile creates path (truncating any existing file) and writes zones
// and st using the format FormatForPath infers from path.
func WriteToFile(path string, zones []*zone.Zone, st *stats.Bundle) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("encode: create %s: %w", path, err)
	}
	defer f.Close()

	format, gz := FormatForPath(path)

	var w io.Writer = f
	if gz {
		gw := gzip.NewWriter(f)
		defer gw.Close()
		w = gw
	}

	return Write(w, zones, st, format)
}

// Write serialises zones (assigning each a dense id in slice order) and st
// to w in the given format.
func Write(w io.Writer, zones []*zone.Zone, st *stats.Bundle, format Format) error {
	switch format {
	case JSONL:
		return writeJSONL(w, zones, st)
	default:
		return writeSingleJSON(w, zones, st)
	}
}

func writeJSONL(w io.Writer, zones []*zone.Zone, st *stats.Bundle) error {
	enc := json.NewEncoder(w)
	for i, z := range zones {
		z.ID = zone.ID(i)
		if err := enc.Encode(toRecord(i, z)); err != nil {
			return fmt.Errorf("encode: zone %s: %w", z.OSMID, err)
		}
	}
	return enc.Encode(metaRecord{Meta: st})
}

func writeSingleJSON(w io.Writer, zones []*zone.Zone, st *stats.Bundle) error {
	records := make([]zoneRecord, 0, len(zones))
	for i, z := range zones {
		z.ID = zone.ID(i)
		records = append(records, toRecord(i, z))
	}
	doc := struct {
		Zones []zoneRecord  `json:"zones"`
		Meta  *stats.Bundle `json:"meta"`
	}{Zones: records, Meta: st}

	enc := json.NewEncoder(w)
	return enc.Encode(doc)
}
