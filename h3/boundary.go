package h3

import "github.com/hexatiles/hexgrid/internal/faceijk"

// CellBoundary is the ccw list of vertices around a cell. Cells whose edges
// cross an icosahedron edge carry an extra vertex at every crossing, so a
// boundary holds up to ten points.
type CellBoundary []LatLng

// CellToBoundary returns the boundary of c.
func CellToBoundary(c Cell) (CellBoundary, error) {
	if err := c.check(); err != nil {
		return nil, err
	}
	return c.boundary(0, c.numVerts()), nil
}

// Boundary is CellToBoundary.
func (c Cell) Boundary() (CellBoundary, error) {
	return CellToBoundary(c)
}

func (c Cell) numVerts() int {
	if c.IsPentagon() {
		return faceijk.NumPentVerts
	}
	return faceijk.NumHexVerts
}

// boundary returns length topological vertices of c starting at start,
// together with any distortion vertices between them.
func (c Cell) boundary(start, length int) CellBoundary {
	f := c.faceIJK()
	if c.IsPentagon() {
		return f.PentagonBoundary(c.Resolution(), start, length)
	}
	return f.Boundary(c.Resolution(), start, length)
}
