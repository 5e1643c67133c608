// Package merge implements the Merger: a streaming union of two or more
// non-overlapping JSONL atlases into one, deduplicating by osm_id and
// remapping every zone's dense id into a single global id space.
package merge

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/osm-without-borders/cosmogony/internal/stats"
)

// Options configures a merge run.
type Options struct {
	// Store backs the dedup set. Defaults to an in-memory MemoryStore.
	Store DedupStore
	Log   *zap.SugaredLogger
}

// Result summarizes a completed merge.
type Result struct {
	ZonesWritten int
	Stats        *stats.Bundle
}

// Files streams every input path in order into out, deduplicating by
// osm_id and reassigning a single global dense id sequence.
func Files(inputs []string, outPath string, opts Options) (Result, error) {
	if opts.Store == nil {
		opts.Store = NewMemoryStore()
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	out, err := os.Create(outPath)
	if err != nil {
		return Result{}, fmt.Errorf("merge: create %s: %w", outPath, err)
	}
	defer out.Close()

	combined := stats.New()
	nextID := 0
	written := 0
	enc := json.NewEncoder(out)

	for _, path := range inputs {
		n, err := mergeOne(path, opts.Store, combined, &nextID, enc)
		if err != nil {
			return Result{}, fmt.Errorf("merge: %s: %w", path, err)
		}
		written += n
		log.Infow("merged atlas", "path", path, "zones_written", n)
	}

	if err := enc.Encode(map[string]*stats.Bundle{"meta": combined}); err != nil {
		return Result{}, fmt.Errorf("merge: write meta: %w", err)
	}

	return Result{ZonesWritten: written, Stats: combined}, nil
}

// mergeOne streams one input file's zone lines into enc, skipping its
// trailing meta line (folded into combined instead) and any zone whose
// osm_id was already written by a previous input.
func mergeOne(path string, store DedupStore, combined *stats.Bundle, nextID *int, enc *json.Encoder) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	written := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var probe struct {
			Meta  *stats.Bundle `json:"meta"`
			OSMID string        `json:"osm_id"`
		}
		if err := json.Unmarshal(line, &probe); err != nil {
			return written, fmt.Errorf("decode line: %w", err)
		}
		if probe.Meta != nil {
			combined.Merge(probe.Meta)
			continue
		}

		isNew, err := store.MarkIfNew(probe.OSMID)
		if err != nil {
			return written, err
		}
		if !isNew {
			combined.DedupCount++
			continue
		}

		fields := make(map[string]json.RawMessage)
		if err := json.Unmarshal(line, &fields); err != nil {
			return written, fmt.Errorf("decode zone fields: %w", err)
		}
		fields["id"] = json.RawMessage(strconv.Itoa(*nextID))
		*nextID++

		if err := enc.Encode(fields); err != nil {
			return written, err
		}
		written++
	}

	if err := scanner.Err(); err != nil && err != io.EOF {
		return written, err
	}
	return written, nil
}
