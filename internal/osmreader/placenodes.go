package osmreader

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/qedus/osmpbf"
)

// PlaceNode is a raw OSM node tagged place=*, collected for the opt-in
// synthetic-zone feature (see internal/builder.SynthesizeFromPlaceNode).
type PlaceNode struct {
	ID   int64
	Lon  float64
	Lat  float64
	Tags map[string]string
}

// ReadPlaceNodes performs a dedicated single pass over path collecting every
// node tagged place=*. It is independent of Read's two-pass admin-boundary
// traversal since place nodes need no way/relation resolution.
func (r *Reader) ReadPlaceNodes(path string) ([]PlaceNode, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d := osmpbf.NewDecoder(f)
	if err := d.Start(runtime.GOMAXPROCS(-1)); err != nil {
		return nil, fmt.Errorf("start decoder: %w", err)
	}

	var out []PlaceNode
	for {
		v, err := d.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		n, ok := v.(*osmpbf.Node)
		if !ok {
			continue
		}
		if _, ok := n.Tags["place"]; !ok {
			continue
		}
		out = append(out, PlaceNode{ID: n.ID, Lon: n.Lon, Lat: n.Lat, Tags: n.Tags})
	}

	r.log.Infow("place node pass complete", "place_nodes", len(out))
	return out, nil
}
