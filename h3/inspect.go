package h3

import (
	"slices"

	"github.com/hexatiles/hexgrid/internal/faceijk"
)

// IsResClassIII reports whether res is a Class III resolution.
func IsResClassIII(res int) bool {
	return faceijk.IsClassIII(res)
}

// GetIcosahedronFaces returns the sorted faces that c overlaps.
func GetIcosahedronFaces(c Cell) ([]int, error) {
	if err := c.check(); err != nil {
		return nil, err
	}
	return c.faces(), nil
}

func (c Cell) faces() []int {
	res := c.Resolution()
	pentagon := c.IsPentagon()

	// every vertex of a Class II pentagon sits on a face edge, but its
	// center child crosses the same faces
	if pentagon && !faceijk.IsClassIII(res) {
		return c.withResolution(res+1).withDigit(res+1, 0).faces()
	}

	f := c.faceIJK()
	var out []int
	add := func(face int) {
		if !slices.Contains(out, face) {
			out = append(out, face)
		}
	}

	if pentagon {
		verts, adjRes := f.PentagonVertices(res)
		for _, v := range verts {
			v.AdjustPentVertOverage(adjRes)
			add(v.Face)
		}
	} else {
		verts, adjRes := f.Vertices(res)
		for _, v := range verts {
			v.AdjustOverageClassII(adjRes, false, true)
			add(v.Face)
		}
	}
	slices.Sort(out)
	return out
}
