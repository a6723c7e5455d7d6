// Package faceijk projects between the sphere and the hexagonal lattices laid
// over the twenty faces of an icosahedron.
package faceijk

import (
	"math"

	"github.com/hexatiles/hexgrid/internal/coordijk"
)

const (
	// NumFaces is the number of icosahedron faces.
	NumFaces = 20

	res0UGnomonic = 0.38196601125010500003
	ap7RotRads    = 0.333473172251832115336090755351601070065900389
	sqrt7         = 2.6457513110645905905016157536392604257102
)

// Quadrant directions within faceNeighbors.
const (
	center = 0
	ij     = 1
	ki     = 2
	jk     = 3
)

// Overage reports whether a coordinate falls off its face.
type Overage int

const (
	NoOverage Overage = iota
	FaceEdge
	NewFace
)

// FaceIJK is a lattice coordinate on a specific face.
type FaceIJK struct {
	Face  int
	Coord coordijk.CoordIJK
}

type faceOrient struct {
	face      int
	translate coordijk.CoordIJK
	ccwRot60  int
}

// maxDimByCIIRes is the maximum i+j+k on a face for each Class II resolution.
var maxDimByCIIRes = [17]int{
	2, -1, 14, -1, 98, -1, 686, -1, 4802, -1, 33614, -1, 235298, -1, 1647086, -1, 11529602,
}

// unitScaleByCIIRes is the translation scale of a face neighbor for each
// Class II resolution.
var unitScaleByCIIRes = [17]int{
	1, -1, 7, -1, 49, -1, 343, -1, 2401, -1, 16807, -1, 117649, -1, 823543, -1, 5764801,
}

// IsClassIII reports whether res has a Class III lattice orientation.
func IsClassIII(res int) bool {
	return res%2 == 1
}

// ClosestFace returns the face whose center is nearest to g and the squared
// euclidean distance to it. Ties go to the lowest face number.
func ClosestFace(g LatLng) (int, float64) {
	return nearest(toVec3(g), faceCenterPoint[:])
}

// nearest returns the index of the unit vector in points closest to v.
func nearest(v vec3, points []vec3) (int, float64) {
	best := 0
	// no two unit vectors are farther apart than 4 squared
	sqd := 5.0
	for i, p := range points {
		if d := squareDistance(p, v); d < sqd {
			best = i
			sqd = d
		}
	}
	return best, sqd
}

// GeoToHex2d projects g onto its closest face at the given resolution.
func GeoToHex2d(g LatLng, res int) (int, coordijk.Vec2d) {
	face, sqd := ClosestFace(g)

	// cos(r) = 1 - 2 * sin^2(r/2) = 1 - 2 * (sqd / 4) = 1 - sqd/2
	r := math.Acos(1 - sqd/2)
	if r < epsilon {
		return face, coordijk.Vec2d{}
	}

	theta := PosAngle(faceAxesAzRadsCII[face][0] - PosAngle(Azimuth(faceCenterGeo[face], g)))
	if IsClassIII(res) {
		theta = PosAngle(theta - ap7RotRads)
	}

	// gnomonic scaling
	r = math.Tan(r)
	r /= res0UGnomonic
	for i := 0; i < res; i++ {
		r *= sqrt7
	}

	return face, coordijk.Vec2d{X: r * math.Cos(theta), Y: r * math.Sin(theta)}
}

// Hex2dToGeo is the inverse of GeoToHex2d. A substrate vector lies on the
// aperture 3 grid used for cell vertices.
func Hex2dToGeo(v coordijk.Vec2d, face, res int, substrate bool) LatLng {
	r := v.Magnitude()
	if r < epsilon {
		return faceCenterGeo[face]
	}

	theta := math.Atan2(v.Y, v.X)

	for i := 0; i < res; i++ {
		r /= sqrt7
	}
	if substrate {
		r /= 3.0
		if IsClassIII(res) {
			r /= sqrt7
		}
	}

	r *= res0UGnomonic
	r = math.Atan(r)

	// a substrate grid is already oriented for Class III
	if !substrate && IsClassIII(res) {
		theta = PosAngle(theta + ap7RotRads)
	}

	theta = PosAngle(faceAxesAzRadsCII[face][0] - theta)
	return AzDistance(faceCenterGeo[face], theta, r)
}

// FromGeo returns the face lattice coordinate containing g at res.
func FromGeo(g LatLng, res int) FaceIJK {
	face, v := GeoToHex2d(g, res)
	return FaceIJK{Face: face, Coord: coordijk.FromHex2d(v)}
}

// ToGeo returns the center point of the cell at f.
func (f FaceIJK) ToGeo(res int) LatLng {
	return Hex2dToGeo(f.Coord.ToHex2d(), f.Face, res, false)
}

// FaceCenter returns the center of face.
func FaceCenter(face int) LatLng {
	return faceCenterGeo[face]
}

// AdjustOverageClassII moves f onto the adjacent face when its coordinate
// lies beyond the edge of its own face. The resolution must be Class II.
// pentLeading4 marks a pentagon cell whose leading digit is I.
func (f *FaceIJK) AdjustOverageClassII(res int, pentLeading4, substrate bool) Overage {
	overage := NoOverage

	maxDim := maxDimByCIIRes[res]
	if substrate {
		maxDim *= 3
	}

	sum := f.Coord.I + f.Coord.J + f.Coord.K
	if substrate && sum == maxDim {
		return FaceEdge
	}
	if sum <= maxDim {
		return overage
	}

	overage = NewFace

	var orient faceOrient
	switch {
	case f.Coord.K > 0 && f.Coord.J > 0:
		orient = faceNeighbors[f.Face][jk]
	case f.Coord.K > 0:
		orient = faceNeighbors[f.Face][ki]

		// adjust for the pentagonal missing sequence
		if pentLeading4 {
			origin := coordijk.CoordIJK{I: maxDim}
			f.Coord = f.Coord.Sub(origin).Rotate60cw().Add(origin)
		}
	default:
		orient = faceNeighbors[f.Face][ij]
	}

	f.Face = orient.face

	for i := 0; i < orient.ccwRot60; i++ {
		f.Coord = f.Coord.Rotate60ccw()
	}

	unitScale := unitScaleByCIIRes[res]
	if substrate {
		unitScale *= 3
	}
	f.Coord = f.Coord.Add(orient.translate.Scale(unitScale)).Normalize()

	// overage points on pentagon boundaries can end up on edges
	if substrate && f.Coord.I+f.Coord.J+f.Coord.K == maxDim {
		overage = FaceEdge
	}
	return overage
}

// AdjustPentVertOverage repeats AdjustOverageClassII on a substrate vertex
// until it settles on a face.
func (f *FaceIJK) AdjustPentVertOverage(res int) Overage {
	for {
		overage := f.AdjustOverageClassII(res, false, true)
		if overage != NewFace {
			return overage
		}
	}
}

// adjacentFaceDir returns the quadrant of from that borders to, center for
// the same face and -1 when the faces do not touch.
func adjacentFaceDir(from, to int) int {
	if from == to {
		return center
	}
	for q := ij; q <= jk; q++ {
		if faceNeighbors[from][q].face == to {
			return q
		}
	}
	return -1
}
