package encode

import "github.com/osm-without-borders/cosmogony/internal/geom"

// geoJSONPoint mirrors {"type":"Point","coordinates":[lon,lat]}.
type geoJSONPoint struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

func pointToGeoJSON(p geom.Point) geoJSONPoint {
	return geoJSONPoint{Type: "Point", Coordinates: [2]float64{p.Lon, p.Lat}}
}

// geoJSONMultiPolygon mirrors GeoJSON's MultiPolygon coordinate nesting:
// polygons -> rings -> points -> [lon, lat].
type geoJSONMultiPolygon struct {
	Type        string          `json:"type"`
	Coordinates [][][][]float64 `json:"coordinates"`
}

func multiPolygonToGeoJSON(mp geom.MultiPolygon) geoJSONMultiPolygon {
	out := geoJSONMultiPolygon{Type: "MultiPolygon", Coordinates: make([][][][]float64, 0, len(mp))}
	for _, poly := range mp {
		rings := make([][][]float64, 0, 1+len(poly.Holes))
		rings = append(rings, ringToGeoJSON(poly.Outer))
		for _, h := range poly.Holes {
			rings = append(rings, ringToGeoJSON(h))
		}
		out.Coordinates = append(out.Coordinates, rings)
	}
	return out
}

func ringToGeoJSON(r geom.Ring) [][]float64 {
	pts := make([][]float64, 0, len(r))
	for _, p := range r {
		pts = append(pts, []float64{p.Lon, p.Lat})
	}
	return pts
}
