// Package geom implements the small polygon engine cosmogony substitutes for
// a native GEOS binding: point-in-polygon containment, area, centroid, and a
// best-effort validity repair, all in WGS84 longitude/latitude.
//
// The predicates here are deterministic across platforms (pure floating
// point comparisons, no library-dependent rounding), which the hierarchy
// builder's tie-breaking depends on.
package geom

import "math"

// Point is a WGS84 coordinate pair, longitude first to match GeoJSON order.
type Point struct {
	Lon, Lat float64
}

// BBox is a (minLon, minLat, maxLon, maxLat) envelope.
type BBox struct {
	MinLon, MinLat, MaxLon, MaxLat float64
}

// Empty reports whether the box was never extended by a point.
func (b BBox) Empty() bool {
	return b.MinLon > b.MaxLon || b.MinLat > b.MaxLat
}

// EmptyBBox returns a box in a state ready for repeated Extend calls.
func EmptyBBox() BBox {
	return BBox{
		MinLon: math.Inf(1), MinLat: math.Inf(1),
		MaxLon: math.Inf(-1), MaxLat: math.Inf(-1),
	}
}

// Extend grows the box to include p.
func (b BBox) Extend(p Point) BBox {
	if p.Lon < b.MinLon {
		b.MinLon = p.Lon
	}
	if p.Lat < b.MinLat {
		b.MinLat = p.Lat
	}
	if p.Lon > b.MaxLon {
		b.MaxLon = p.Lon
	}
	if p.Lat > b.MaxLat {
		b.MaxLat = p.Lat
	}
	return b
}

// Union returns the smallest box containing both b and o.
func (b BBox) Union(o BBox) BBox {
	if b.Empty() {
		return o
	}
	if o.Empty() {
		return b
	}
	return BBox{
		MinLon: math.Min(b.MinLon, o.MinLon),
		MinLat: math.Min(b.MinLat, o.MinLat),
		MaxLon: math.Max(b.MaxLon, o.MaxLon),
		MaxLat: math.Max(b.MaxLat, o.MaxLat),
	}
}

// Contains reports whether p falls within the box, inclusive of the edges.
func (b BBox) Contains(p Point) bool {
	return p.Lon >= b.MinLon && p.Lon <= b.MaxLon && p.Lat >= b.MinLat && p.Lat <= b.MaxLat
}

// Intersects reports whether the two boxes overlap.
func (b BBox) Intersects(o BBox) bool {
	return b.MinLon <= o.MaxLon && b.MaxLon >= o.MinLon && b.MinLat <= o.MaxLat && b.MaxLat >= o.MinLat
}

// Ring is a closed loop of points; by convention the first and last points
// are equal.
type Ring []Point

// Closed reports whether the ring's first and last points coincide.
func (r Ring) Closed() bool {
	if len(r) < 2 {
		return false
	}
	first, last := r[0], r[len(r)-1]
	return first.Lon == last.Lon && first.Lat == last.Lat
}

// close appends the first point if needed so the ring satisfies Closed.
func (r Ring) close() Ring {
	if r.Closed() {
		return r
	}
	return append(append(Ring{}, r...), r[0])
}

// area returns the signed shoelace area of the ring; positive for
// counter-clockwise winding.
func (r Ring) area() float64 {
	if len(r) < 4 {
		return 0
	}
	var sum float64
	for i := 0; i < len(r)-1; i++ {
		sum += r[i].Lon*r[i+1].Lat - r[i+1].Lon*r[i].Lat
	}
	return sum / 2
}

// Area returns the unsigned planar (degrees²) area of the ring. This is not
// a geodesic area; it is used only for relative comparisons (tie-breaking
// "smallest enclosing area"), which are scale-invariant.
func (r Ring) Area() float64 {
	return math.Abs(r.area())
}

// Contains implements a ray-casting point-in-polygon test against a single
// ring, ignoring holes. Points exactly on an edge are treated as contained,
// matching the "shared border" tie-break note in the design notes.
func (r Ring) Contains(p Point) bool {
	return r.contains(p)
}

func (r Ring) contains(p Point) bool {
	if len(r) < 4 {
		return false
	}
	inside := false
	j := len(r) - 1
	for i := 0; i < len(r); i++ {
		pi, pj := r[i], r[j]
		if onSegment(pi, pj, p) {
			return true
		}
		if (pi.Lat > p.Lat) != (pj.Lat > p.Lat) {
			x := (pj.Lon-pi.Lon)*(p.Lat-pi.Lat)/(pj.Lat-pi.Lat) + pi.Lon
			if p.Lon < x {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

func onSegment(a, b, p Point) bool {
	cross := (p.Lon-a.Lon)*(b.Lat-a.Lat) - (p.Lat-a.Lat)*(b.Lon-a.Lon)
	const eps = 1e-9
	if math.Abs(cross) > eps {
		return false
	}
	if p.Lon < math.Min(a.Lon, b.Lon)-eps || p.Lon > math.Max(a.Lon, b.Lon)+eps {
		return false
	}
	if p.Lat < math.Min(a.Lat, b.Lat)-eps || p.Lat > math.Max(a.Lat, b.Lat)+eps {
		return false
	}
	return true
}

func (r Ring) bbox() BBox {
	b := EmptyBBox()
	for _, p := range r {
		b = b.Extend(p)
	}
	return b
}

func (r Ring) valid() bool {
	return len(r) >= 4 && r.Closed()
}

// Polygon is an outer ring plus zero or more hole rings.
type Polygon struct {
	Outer Ring
	Holes []Ring
}

// Contains reports whether p lies within the outer ring and outside every hole.
func (poly Polygon) Contains(p Point) bool {
	if !poly.Outer.contains(p) {
		return false
	}
	for _, h := range poly.Holes {
		if h.contains(p) {
			return false
		}
	}
	return true
}

// Area returns the outer ring's area minus the holes'.
func (poly Polygon) Area() float64 {
	a := poly.Outer.Area()
	for _, h := range poly.Holes {
		a -= h.Area()
	}
	if a < 0 {
		return 0
	}
	return a
}

// Centroid returns the area-weighted centroid of the outer ring (holes are
// not subtracted from the centroid computation; for cosmogony's purposes —
// picking a representative interior point — this approximation is enough,
// and it degrades to the standard polygon centroid formula when there are
// no holes).
func (poly Polygon) Centroid() Point {
	r := poly.Outer
	if len(r) < 4 {
		if len(r) > 0 {
			return r[0]
		}
		return Point{}
	}
	var cx, cy, a float64
	for i := 0; i < len(r)-1; i++ {
		cross := r[i].Lon*r[i+1].Lat - r[i+1].Lon*r[i].Lat
		a += cross
		cx += (r[i].Lon + r[i+1].Lon) * cross
		cy += (r[i].Lat + r[i+1].Lat) * cross
	}
	a /= 2
	if a == 0 {
		return r[0]
	}
	cx /= 6 * a
	cy /= 6 * a
	return Point{Lon: cx, Lat: cy}
}

func (poly Polygon) bbox() BBox {
	return poly.Outer.bbox()
}

func (poly Polygon) valid() bool {
	if !poly.Outer.valid() {
		return false
	}
	for _, h := range poly.Holes {
		if !h.valid() {
			return false
		}
	}
	return true
}

// MakeValid closes an unclosed outer ring/holes and drops holes with fewer
// than 3 points, mirroring GEOS's `make_valid` closing/repair behaviour for
// the class of defects OSM ring assembly actually produces (unclosed rings
// from a missing final segment).
func (poly Polygon) MakeValid() (Polygon, bool) {
	out := Polygon{Outer: poly.Outer.close()}
	for _, h := range poly.Holes {
		if len(h) < 3 {
			continue
		}
		out.Holes = append(out.Holes, h.close())
	}
	return out, out.valid()
}

// MultiPolygon is an ordered set of Polygons, each independently valid.
type MultiPolygon []Polygon

// Contains reports whether p lies inside any member polygon.
func (mp MultiPolygon) Contains(p Point) bool {
	for _, poly := range mp {
		if poly.Contains(p) {
			return true
		}
	}
	return false
}

// Area sums the member polygons' areas.
func (mp MultiPolygon) Area() float64 {
	var a float64
	for _, poly := range mp {
		a += poly.Area()
	}
	return a
}

// Centroid returns the area-weighted centroid across all member polygons,
// falling back to the first polygon's centroid when total area is zero
// (degenerate geometry, e.g. a single point-like ring).
func (mp MultiPolygon) Centroid() Point {
	if len(mp) == 0 {
		return Point{}
	}
	var cx, cy, total float64
	for _, poly := range mp {
		a := poly.Area()
		c := poly.Centroid()
		cx += c.Lon * a
		cy += c.Lat * a
		total += a
	}
	if total == 0 {
		return mp[0].Centroid()
	}
	return Point{Lon: cx / total, Lat: cy / total}
}

// BBox returns the envelope of every member polygon.
func (mp MultiPolygon) BBox() BBox {
	b := EmptyBBox()
	for _, poly := range mp {
		b = b.Union(poly.bbox())
	}
	return b
}

// IsValid reports whether every member polygon is individually valid and the
// set is non-empty.
func (mp MultiPolygon) IsValid() bool {
	if len(mp) == 0 {
		return false
	}
	for _, poly := range mp {
		if !poly.valid() {
			return false
		}
	}
	return true
}

// MakeValid repairs each member polygon, dropping any that remain invalid
// after repair. It returns the repaired set and whether anything survived.
func (mp MultiPolygon) MakeValid() (MultiPolygon, bool) {
	out := make(MultiPolygon, 0, len(mp))
	for _, poly := range mp {
		if len(poly.Outer) < 3 {
			continue
		}
		fixed, ok := poly.MakeValid()
		if ok {
			out = append(out, fixed)
		}
	}
	return out, len(out) > 0
}
