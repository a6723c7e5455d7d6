// Package basecell holds the static tables describing the 122 resolution 0
// cells and how they sit on the icosahedron faces.
package basecell

import (
	"github.com/hexatiles/hexgrid/internal/coordijk"
	"github.com/hexatiles/hexgrid/internal/faceijk"
)

const (
	// NumBaseCells is the number of resolution 0 cells.
	NumBaseCells = 122
	// NumPentagons is the number of pentagon base cells.
	NumPentagons = 12
	// Invalid marks a missing base cell neighbor.
	Invalid = 127

	// maxFaceCoord is the largest coordinate of a resolution 0 cell center on
	// a face.
	maxFaceCoord = 2
)

// Data describes the home face of a base cell. Pentagons also list the two
// faces on which they are offset clockwise.
type Data struct {
	Home         faceijk.FaceIJK
	Pentagon     bool
	CwOffsetPent [2]int
}

type orientation struct {
	baseCell int
	ccwRot60 int
}

// Valid reports whether b is a base cell number.
func Valid(b int) bool {
	return b >= 0 && b < NumBaseCells
}

// Get returns the table entry for base cell b.
func Get(b int) Data {
	return data[b]
}

// IsPentagon reports whether base cell b is a pentagon.
func IsPentagon(b int) bool {
	if !Valid(b) {
		return false
	}
	return data[b].Pentagon
}

// IsPolarPentagon reports whether b is one of the two pentagons centered on
// the poles' faces.
func IsPolarPentagon(b int) bool {
	return b == 4 || b == 117
}

// IsCwOffset reports whether pentagon b is offset clockwise on face.
func IsCwOffset(b, face int) bool {
	if !IsPentagon(b) {
		return false
	}
	return data[b].CwOffsetPent[0] == face || data[b].CwOffsetPent[1] == face
}

// FromFaceIJK returns the base cell containing a resolution 0 face
// coordinate and the ccw rotations into its frame. ok is false when the
// coordinate is off the face table.
func FromFaceIJK(f faceijk.FaceIJK) (baseCell, ccwRot60 int, ok bool) {
	c := f.Coord
	if c.I > maxFaceCoord || c.J > maxFaceCoord || c.K > maxFaceCoord ||
		c.I < 0 || c.J < 0 || c.K < 0 || f.Face < 0 || f.Face >= faceijk.NumFaces {
		return Invalid, 0, false
	}
	o := faceIjkBaseCells[f.Face][c.I][c.J][c.K]
	return o.baseCell, o.ccwRot60, true
}

// Neighbor returns the base cell next to b in direction d, or Invalid.
func Neighbor(b int, d coordijk.Direction) int {
	if !Valid(b) || !d.Valid() {
		return Invalid
	}
	return neighbors[b][d]
}

// NeighborRotations returns the ccw rotations from b's frame into the frame
// of its neighbor in direction d, or -1.
func NeighborRotations(b int, d coordijk.Direction) int {
	if !Valid(b) || !d.Valid() {
		return -1
	}
	return neighbor60CCWRots[b][d]
}

// Direction returns the direction from origin to its neighbor base cell, or
// InvalidDirection when the two are not adjacent.
func Direction(origin, neighbor int) coordijk.Direction {
	if !Valid(origin) {
		return coordijk.InvalidDirection
	}
	for d := coordijk.Center; d < coordijk.InvalidDirection; d++ {
		if neighbors[origin][d] == neighbor {
			return d
		}
	}
	return coordijk.InvalidDirection
}
