package h3

import "math"

// dblEpsilon is the gap between 1 and the next float64.
const dblEpsilon = 0x1p-52

// GeoLoop is a closed ring of vertices. The last vertex connects back to the
// first and is not repeated.
type GeoLoop []LatLng

// GeoPolygon is an outer loop with optional holes.
type GeoPolygon struct {
	GeoLoop GeoLoop
	Holes   []GeoLoop
}

// BBox is a latitude/longitude rectangle in radians. East is less than West
// when the box crosses the antimeridian.
type BBox struct {
	North, South, East, West float64
}

// IsTransmeridian reports whether b crosses the antimeridian.
func (b BBox) IsTransmeridian() bool {
	return b.East < b.West
}

// Contains reports whether g is inside b.
func (b BBox) Contains(g LatLng) bool {
	if g.Lat < b.South || g.Lat > b.North {
		return false
	}
	if b.IsTransmeridian() {
		return g.Lng >= b.West || g.Lng <= b.East
	}
	return g.Lng >= b.West && g.Lng <= b.East
}

// BBox returns the bounding box of l. A loop with an edge longer than π in
// longitude is assumed to cross the antimeridian.
func (l GeoLoop) BBox() BBox {
	if len(l) == 0 {
		return BBox{}
	}

	b := BBox{North: -math.MaxFloat64, South: math.MaxFloat64, East: -math.MaxFloat64, West: math.MaxFloat64}
	minPosLng := math.MaxFloat64
	maxNegLng := -math.MaxFloat64
	transmeridian := false

	for i, v := range l {
		next := l[(i+1)%len(l)]

		b.South = math.Min(b.South, v.Lat)
		b.West = math.Min(b.West, v.Lng)
		b.North = math.Max(b.North, v.Lat)
		b.East = math.Max(b.East, v.Lng)

		if v.Lng > 0 && v.Lng < minPosLng {
			minPosLng = v.Lng
		}
		if v.Lng < 0 && v.Lng > maxNegLng {
			maxNegLng = v.Lng
		}
		if math.Abs(v.Lng-next.Lng) > math.Pi {
			transmeridian = true
		}
	}

	if transmeridian {
		b.East = maxNegLng
		b.West = minPosLng
	}
	return b
}

// normalizeLng shifts negative longitudes east of the antimeridian when the
// shape crosses it.
func normalizeLng(lng float64, transmeridian bool) float64 {
	if transmeridian && lng < 0 {
		return lng + 2*math.Pi
	}
	return lng
}

// contains reports whether g is inside l by ray casting. bbox must be the
// bounding box of l.
func (l GeoLoop) contains(bbox BBox, g LatLng) bool {
	if len(l) == 0 || !bbox.Contains(g) {
		return false
	}
	transmeridian := bbox.IsTransmeridian()
	inside := false

	lat := g.Lat
	lng := normalizeLng(g.Lng, transmeridian)

	for i := range l {
		a := l[i]
		b := l[(i+1)%len(l)]

		// the ray test needs a below b
		if a.Lat > b.Lat {
			a, b = b, a
		}
		if lat < a.Lat || lat > b.Lat {
			continue
		}

		aLng := normalizeLng(a.Lng, transmeridian)
		bLng := normalizeLng(b.Lng, transmeridian)

		// points exactly on a vertex longitude are nudged west
		if aLng == lng || bLng == lng {
			lng -= dblEpsilon
		}

		ratio := (lat - a.Lat) / (b.Lat - a.Lat)
		testLng := normalizeLng(aLng+(bLng-aLng)*ratio, transmeridian)
		if testLng > lng {
			inside = !inside
		}
	}
	return inside
}

// Contains reports whether g is inside l.
func (l GeoLoop) Contains(g LatLng) bool {
	return l.contains(l.BBox(), g)
}

// isClockwise reports the winding of l using the signed area of its edges.
func (l GeoLoop) isClockwise() bool {
	return l.windingSum(false) > 0
}

func (l GeoLoop) windingSum(transmeridian bool) float64 {
	sum := 0.0
	for i := range l {
		a := l[i]
		b := l[(i+1)%len(l)]
		if !transmeridian && math.Abs(a.Lng-b.Lng) > math.Pi {
			return l.windingSum(true)
		}
		sum += (normalizeLng(b.Lng, transmeridian) - normalizeLng(a.Lng, transmeridian)) * (b.Lat + a.Lat)
	}
	return sum
}

// polygonBBoxes holds the bounding box of every loop of a polygon, outer
// loop first.
type polygonBBoxes []BBox

func (p GeoPolygon) bboxes() polygonBBoxes {
	out := make(polygonBBoxes, 0, 1+len(p.Holes))
	out = append(out, p.GeoLoop.BBox())
	for _, h := range p.Holes {
		out = append(out, h.BBox())
	}
	return out
}

func (p GeoPolygon) contains(bboxes polygonBBoxes, g LatLng) bool {
	if !p.GeoLoop.contains(bboxes[0], g) {
		return false
	}
	for i, h := range p.Holes {
		if h.contains(bboxes[i+1], g) {
			return false
		}
	}
	return true
}

// Contains reports whether g is inside the outer loop of p and outside all
// of its holes.
func (p GeoPolygon) Contains(g LatLng) bool {
	return p.contains(p.bboxes(), g)
}
