package h3

import (
	"fmt"

	"github.com/hexatiles/hexgrid/internal/coordijk"
)

// DirectedEdge is the index of the edge from one cell to a neighbor. It is
// the origin index with edge mode set and the direction to the destination
// stored in the reserved bits.
type DirectedEdge uint64

// vertexEpsilon is the tolerance, in radians, for two cells sharing a
// boundary vertex.
const vertexEpsilon = 1e-9

// CellsToDirectedEdge returns the edge from origin to its neighbor dest.
func CellsToDirectedEdge(origin, dest Cell) (DirectedEdge, error) {
	if err := origin.check(); err != nil {
		return 0, err
	}
	if err := dest.check(); err != nil {
		return 0, err
	}
	if origin == dest || origin.Resolution() != dest.Resolution() {
		return 0, fmt.Errorf("%w: %s and %s", ErrNotNeighbors, origin, dest)
	}
	d := directionTo(origin, dest)
	if d == coordijk.InvalidDirection {
		return 0, fmt.Errorf("%w: %s and %s", ErrNotNeighbors, origin, dest)
	}
	return DirectedEdge(origin.withMode(modeDirectedEdge).withReserved(int(d))), nil
}

// OriginToDirectedEdges returns the edges leaving origin: six for a hexagon,
// five for a pentagon.
func OriginToDirectedEdges(origin Cell) ([]DirectedEdge, error) {
	if err := origin.check(); err != nil {
		return nil, err
	}
	pentagon := origin.IsPentagon()
	out := make([]DirectedEdge, 0, 6)
	for d := coordijk.KAxes; d < coordijk.InvalidDirection; d++ {
		if pentagon && d == coordijk.KAxes {
			continue
		}
		out = append(out, DirectedEdge(origin.withMode(modeDirectedEdge).withReserved(int(d))))
	}
	return out, nil
}

func (e DirectedEdge) direction() coordijk.Direction {
	return coordijk.Direction(Cell(e).reserved())
}

func (e DirectedEdge) origin() Cell {
	return Cell(e).withMode(modeCell).withReserved(0)
}

// IsValid reports whether e is a well formed directed edge.
func (e DirectedEdge) IsValid() bool {
	return e.check() == nil
}

func (e DirectedEdge) check() error {
	if Cell(e).mode() != modeDirectedEdge {
		return fmt.Errorf("%w: %s is not an edge", ErrMalformedIndex, e)
	}
	d := e.direction()
	if d <= coordijk.Center || d >= coordijk.InvalidDirection {
		return fmt.Errorf("%w: edge direction %d", ErrMalformedIndex, d)
	}
	o := e.origin()
	if err := o.check(); err != nil {
		return err
	}
	if o.IsPentagon() && d == coordijk.KAxes {
		return fmt.Errorf("%w: pentagon edge in deleted direction", ErrMalformedIndex)
	}
	return nil
}

// String returns the lowercase hexadecimal form of e.
func (e DirectedEdge) String() string {
	return IndexToString(uint64(e))
}

// Origin returns the cell e starts from.
func (e DirectedEdge) Origin() (Cell, error) {
	if err := e.check(); err != nil {
		return 0, err
	}
	return e.origin(), nil
}

// Destination returns the cell e points to.
func (e DirectedEdge) Destination() (Cell, error) {
	if err := e.check(); err != nil {
		return 0, err
	}
	return neighbor(e.origin(), e.direction())
}

// Cells returns the origin and destination of e.
func (e DirectedEdge) Cells() (origin, dest Cell, err error) {
	if origin, err = e.Origin(); err != nil {
		return 0, 0, err
	}
	if dest, err = e.Destination(); err != nil {
		return 0, 0, err
	}
	return origin, dest, nil
}

// Boundary returns the vertices of the edge in the ccw order of its origin:
// two points, or three when the edge crosses an icosahedron edge.
func (e DirectedEdge) Boundary() (CellBoundary, error) {
	origin, dest, err := e.Cells()
	if err != nil {
		return nil, err
	}
	return sharedBoundary(origin.boundary(0, origin.numVerts()), dest.boundary(0, dest.numVerts())), nil
}

// DirectedEdgeToBoundary is DirectedEdge.Boundary.
func DirectedEdgeToBoundary(e DirectedEdge) (CellBoundary, error) {
	return e.Boundary()
}

// sharedBoundary returns the contiguous run of vertices of a that also lie
// on b, in the order of a.
func sharedBoundary(a, b CellBoundary) CellBoundary {
	shared := make([]bool, len(a))
	for i, v := range a {
		for _, w := range b {
			if GreatCircleDistanceRads(v, w) < vertexEpsilon {
				shared[i] = true
				break
			}
		}
	}

	// start at the first shared vertex whose predecessor is not shared
	start := -1
	for i := range a {
		prev := (i + len(a) - 1) % len(a)
		if shared[i] && !shared[prev] {
			start = i
			break
		}
	}
	if start < 0 {
		return nil
	}

	var out CellBoundary
	for i := 0; i < len(a); i++ {
		j := (start + i) % len(a)
		if !shared[j] {
			break
		}
		out = append(out, a[j])
	}
	return out
}

// EdgeLengthRads returns the length of e along its boundary.
func (e DirectedEdge) EdgeLengthRads() (float64, error) {
	b, err := e.Boundary()
	if err != nil {
		return 0, err
	}
	length := 0.0
	for i := 1; i < len(b); i++ {
		length += GreatCircleDistanceRads(b[i-1], b[i])
	}
	return length, nil
}

// EdgeLengthKm is EdgeLengthRads on the earth.
func (e DirectedEdge) EdgeLengthKm() (float64, error) {
	l, err := e.EdgeLengthRads()
	return l * EarthRadiusKm, err
}
