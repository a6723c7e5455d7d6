// Package h3geom converts between grid shapes and orb geometries. Orb
// geometries are in degrees with longitude first.
package h3geom

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"

	"github.com/hexatiles/hexgrid/h3"
)

// ErrUnsupportedGeometry is returned for geometries that do not bound an area.
var ErrUnsupportedGeometry = errors.New("geometry is not a polygon or multipolygon")

// Point returns g as an orb point.
func Point(g h3.LatLng) orb.Point {
	lat, lng := h3.Degrees(g)
	return orb.Point{lng, lat}
}

// PolygonFromCell returns the GeoJSON polygon representing the boundary of a
// cell. Longitudes are unwrapped so that cells on the antimeridian stay
// contiguous.
func PolygonFromCell(cell h3.Cell) (orb.Polygon, error) {
	boundary, err := cell.Boundary()
	if err != nil {
		return nil, fmt.Errorf("compute boundary: %w", err)
	}
	if len(boundary) == 0 {
		return nil, fmt.Errorf("empty boundary for cell %s", cell)
	}
	return orb.Polygon{closedRing(boundary)}, nil
}

// LineFromEdge returns the shared boundary of a directed edge as a line.
func LineFromEdge(edge h3.DirectedEdge) (orb.LineString, error) {
	boundary, err := edge.Boundary()
	if err != nil {
		return nil, fmt.Errorf("compute edge boundary: %w", err)
	}
	line := make(orb.LineString, 0, len(boundary))
	for _, v := range unwrap(boundary) {
		line = append(line, v)
	}
	return line, nil
}

// MultiPolygonFromCells traces the outline of cells, which must share one
// resolution.
func MultiPolygonFromCells(cells []h3.Cell) (orb.MultiPolygon, error) {
	polys, err := h3.CellsToMultiPolygon(cells)
	if err != nil {
		return nil, fmt.Errorf("trace outline: %w", err)
	}
	out := make(orb.MultiPolygon, 0, len(polys))
	for _, p := range polys {
		poly := orb.Polygon{closedRing(p.GeoLoop)}
		for _, h := range p.Holes {
			poly = append(poly, closedRing(h))
		}
		out = append(out, poly)
	}
	return out, nil
}

// GeoPolygons converts a polygon or multipolygon to grid polygons.
func GeoPolygons(g orb.Geometry) ([]h3.GeoPolygon, error) {
	switch v := g.(type) {
	case orb.Polygon:
		return []h3.GeoPolygon{GeoPolygon(v)}, nil
	case orb.MultiPolygon:
		out := make([]h3.GeoPolygon, 0, len(v))
		for _, p := range v {
			out = append(out, GeoPolygon(p))
		}
		return out, nil
	case orb.Bound:
		return []h3.GeoPolygon{GeoPolygon(v.ToPolygon())}, nil
	case nil:
		return nil, ErrUnsupportedGeometry
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedGeometry, g.GeoJSONType())
	}
}

// GeoPolygon converts an orb polygon. The first ring is the outer loop and
// the rest are holes.
func GeoPolygon(p orb.Polygon) h3.GeoPolygon {
	var out h3.GeoPolygon
	for i, ring := range p {
		loop := geoLoop(ring)
		if i == 0 {
			out.GeoLoop = loop
			continue
		}
		out.Holes = append(out.Holes, loop)
	}
	return out
}

func geoLoop(ring orb.Ring) h3.GeoLoop {
	if ringClosed(ring) {
		ring = ring[:len(ring)-1]
	}
	loop := make(h3.GeoLoop, 0, len(ring))
	for _, pt := range ring {
		loop = append(loop, h3.NewLatLng(pt.Lat(), pt.Lon()))
	}
	return loop
}

func closedRing(verts []h3.LatLng) orb.Ring {
	ring := make(orb.Ring, 0, len(verts)+1)
	for _, v := range unwrap(verts) {
		ring = append(ring, v)
	}
	if len(ring) > 0 && !ringClosed(ring) {
		ring = append(ring, ring[0])
	}
	return ring
}

// unwrap converts verts to degrees, shifting each longitude by whole turns
// so that it lies within 180 degrees of its predecessor.
func unwrap(verts []h3.LatLng) []orb.Point {
	out := make([]orb.Point, 0, len(verts))
	for i, v := range verts {
		pt := Point(v)
		if i > 0 {
			prev := out[i-1][0]
			for pt[0]-prev > 180 {
				pt[0] -= 360
			}
			for prev-pt[0] > 180 {
				pt[0] += 360
			}
		}
		out = append(out, pt)
	}
	return out
}

func ringClosed(ring orb.Ring) bool {
	if len(ring) < 2 {
		return false
	}
	first := ring[0]
	last := ring[len(ring)-1]
	return first[0] == last[0] && first[1] == last[1]
}
