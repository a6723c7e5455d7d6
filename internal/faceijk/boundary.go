package faceijk

import "github.com/hexatiles/hexgrid/internal/coordijk"

const (
	// NumHexVerts is the number of vertices of a hexagon.
	NumHexVerts = 6
	// NumPentVerts is the number of vertices of a pentagon.
	NumPentVerts = 5
)

// Vertices of an origin-centered cell on the aperture 33r substrate grid,
// listed ccw from the i axis. Class III cells add a 7r step to reach the
// Class II substrate.
var (
	vertsCII = [NumHexVerts]coordijk.CoordIJK{
		{I: 2, J: 1, K: 0}, {I: 1, J: 2, K: 0}, {I: 0, J: 2, K: 1}, {I: 0, J: 1, K: 2}, {I: 1, J: 0, K: 2}, {I: 2, J: 0, K: 1},
	}
	vertsCIII = [NumHexVerts]coordijk.CoordIJK{
		{I: 5, J: 4, K: 0}, {I: 1, J: 5, K: 0}, {I: 0, J: 5, K: 4}, {I: 0, J: 1, K: 5}, {I: 4, J: 0, K: 5}, {I: 5, J: 0, K: 1},
	}
)

// substrate moves the center of f onto the Class II substrate grid and
// returns it with the adjusted resolution and the vertex offsets to apply.
func (f FaceIJK) substrate(res int) (FaceIJK, int, *[NumHexVerts]coordijk.CoordIJK) {
	verts := &vertsCII
	if IsClassIII(res) {
		verts = &vertsCIII
	}

	f.Coord = f.Coord.DownAp3().DownAp3r()
	if IsClassIII(res) {
		f.Coord = f.Coord.DownAp7r()
		res++
	}
	return f, res, verts
}

// Vertices returns the substrate vertices of the hexagon centered at f,
// along with the substrate resolution.
func (f FaceIJK) Vertices(res int) ([NumHexVerts]FaceIJK, int) {
	c, adjRes, verts := f.substrate(res)
	var out [NumHexVerts]FaceIJK
	for v := 0; v < NumHexVerts; v++ {
		out[v] = FaceIJK{Face: c.Face, Coord: c.Coord.Add(verts[v]).Normalize()}
	}
	return out, adjRes
}

// PentagonVertices returns the substrate vertices of the pentagon centered
// at f, along with the substrate resolution.
func (f FaceIJK) PentagonVertices(res int) ([NumPentVerts]FaceIJK, int) {
	c, adjRes, verts := f.substrate(res)
	var out [NumPentVerts]FaceIJK
	for v := 0; v < NumPentVerts; v++ {
		out[v] = FaceIJK{Face: c.Face, Coord: c.Coord.Add(verts[v]).Normalize()}
	}
	return out, adjRes
}

// faceEdge returns the end points of the icosahedron edge in the given
// quadrant of a face, on the substrate grid of adjRes.
func faceEdge(quadrant, adjRes int) (coordijk.Vec2d, coordijk.Vec2d) {
	maxDim := float64(maxDimByCIIRes[adjRes])
	v0 := coordijk.Vec2d{X: 3.0 * maxDim, Y: 0.0}
	v1 := coordijk.Vec2d{X: -1.5 * maxDim, Y: 3.0 * coordijk.Sqrt3Over2 * maxDim}
	v2 := coordijk.Vec2d{X: -1.5 * maxDim, Y: -3.0 * coordijk.Sqrt3Over2 * maxDim}

	switch quadrant {
	case ij:
		return v0, v1
	case jk:
		return v1, v2
	default:
		return v2, v0
	}
}

// Boundary returns length vertices of the hexagon centered at f, starting at
// vertex start. Edges that cross an icosahedron edge gain an extra vertex at
// the crossing.
func (f FaceIJK) Boundary(res, start, length int) []LatLng {
	verts, adjRes := f.Vertices(res)

	// one more iteration catches a distortion vertex on the closing edge
	extra := 0
	if length == NumHexVerts {
		extra = 1
	}

	out := make([]LatLng, 0, length+NumHexVerts)
	lastFace := -1
	lastOverage := NoOverage
	for vert := start; vert < start+length+extra; vert++ {
		v := vert % NumHexVerts

		fijk := verts[v]
		overage := fijk.AdjustOverageClassII(adjRes, false, true)

		// Class II edges keep their vertices on the face edge, so only
		// Class III edges can cross it.
		if IsClassIII(res) && vert > start && fijk.Face != lastFace && lastOverage != FaceEdge {
			lastV := (v + 5) % NumHexVerts
			orig0 := verts[lastV].Coord.ToHex2d()
			orig1 := verts[v].Coord.ToHex2d()

			face2 := lastFace
			if lastFace == f.Face {
				face2 = fijk.Face
			}
			edge0, edge1 := faceEdge(adjacentFaceDir(f.Face, face2), adjRes)

			inter := coordijk.Intersect(orig0, orig1, edge0, edge1)
			// a crossing at a hexagon vertex needs no extra point
			if !orig0.AlmostEqual(inter) && !orig1.AlmostEqual(inter) {
				out = append(out, Hex2dToGeo(inter, f.Face, adjRes, true))
			}
		}

		if vert < start+NumHexVerts {
			out = append(out, Hex2dToGeo(fijk.Coord.ToHex2d(), fijk.Face, adjRes, true))
		}

		lastFace = fijk.Face
		lastOverage = overage
	}
	return out
}

// PentagonBoundary is Boundary for pentagon cells. Every Class III pentagon
// edge crosses an icosahedron edge.
func (f FaceIJK) PentagonBoundary(res, start, length int) []LatLng {
	verts, adjRes := f.PentagonVertices(res)

	extra := 0
	if length == NumPentVerts {
		extra = 1
	}

	out := make([]LatLng, 0, 2*NumPentVerts)
	var last FaceIJK
	for vert := start; vert < start+length+extra; vert++ {
		v := vert % NumPentVerts

		fijk := verts[v]
		fijk.AdjustPentVertOverage(adjRes)

		if IsClassIII(res) && vert > start {
			// express the current vertex on the last vertex's face
			tmp := fijk
			orig0 := last.Coord.ToHex2d()

			orient := faceNeighbors[tmp.Face][adjacentFaceDir(tmp.Face, last.Face)]
			tmp.Face = orient.face
			for i := 0; i < orient.ccwRot60; i++ {
				tmp.Coord = tmp.Coord.Rotate60ccw()
			}
			trans := orient.translate.Scale(unitScaleByCIIRes[adjRes] * 3)
			tmp.Coord = tmp.Coord.Add(trans).Normalize()

			orig1 := tmp.Coord.ToHex2d()
			edge0, edge1 := faceEdge(adjacentFaceDir(tmp.Face, fijk.Face), adjRes)

			inter := coordijk.Intersect(orig0, orig1, edge0, edge1)
			out = append(out, Hex2dToGeo(inter, tmp.Face, adjRes, true))
		}

		if vert < start+NumPentVerts {
			out = append(out, Hex2dToGeo(fijk.Coord.ToHex2d(), fijk.Face, adjRes, true))
		}

		last = fijk
	}
	return out
}
