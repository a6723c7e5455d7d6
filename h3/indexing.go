package h3

import (
	"fmt"

	"github.com/hexatiles/hexgrid/internal/basecell"
	"github.com/hexatiles/hexgrid/internal/coordijk"
	"github.com/hexatiles/hexgrid/internal/faceijk"
)

// LatLngToCell returns the cell containing g at res.
func LatLngToCell(g LatLng, res int) (Cell, error) {
	if res < 0 || res > MaxResolution {
		return 0, fmt.Errorf("%w: %d", ErrInvalidResolution, res)
	}
	if !finite(g) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidLatLng, g)
	}
	c := faceIJKToCell(faceijk.FromGeo(g, res), res)
	if c == 0 {
		return 0, fmt.Errorf("%w: no cell for %v", ErrMalformedIndex, g)
	}
	return c, nil
}

// CellToLatLng returns the center of c.
func CellToLatLng(c Cell) (LatLng, error) {
	if err := c.check(); err != nil {
		return LatLng{}, err
	}
	return c.center(), nil
}

// LatLng returns the center of c.
func (c Cell) LatLng() (LatLng, error) {
	return CellToLatLng(c)
}

func (c Cell) center() LatLng {
	return c.faceIJK().ToGeo(c.Resolution())
}

// faceIJKToCell encodes the cell at f. It returns 0 when f is off the
// lattice of its face.
func faceIJKToCell(f faceijk.FaceIJK, res int) Cell {
	c := newCell(res, 0)

	if res == 0 {
		b, _, ok := basecell.FromFaceIJK(f)
		if !ok {
			return 0
		}
		return c.withBaseCell(b)
	}

	// climb to resolution 0, recording a digit at every step
	ijk := f.Coord
	for r := res - 1; r >= 0; r-- {
		last := ijk
		var lastCenter coordijk.CoordIJK
		if faceijk.IsClassIII(r + 1) {
			ijk = ijk.UpAp7()
			lastCenter = ijk.DownAp7()
		} else {
			ijk = ijk.UpAp7r()
			lastCenter = ijk.DownAp7r()
		}
		c = c.withDigit(r+1, last.Sub(lastCenter).Normalize().ToDigit())
	}

	b, rots, ok := basecell.FromFaceIJK(faceijk.FaceIJK{Face: f.Face, Coord: ijk})
	if !ok {
		return 0
	}
	c = c.withBaseCell(b)

	if basecell.IsPentagon(b) {
		// a K leading digit is the deleted subsequence
		if c.leadingNonZeroDigit() == coordijk.KAxes {
			if basecell.IsCwOffset(b, f.Face) {
				c = c.rotate60cw()
			} else {
				c = c.rotate60ccw()
			}
		}
		for i := 0; i < rots; i++ {
			c = c.rotatePent60ccw()
		}
	} else {
		for i := 0; i < rots; i++ {
			c = c.rotate60ccw()
		}
	}
	return c
}

// digitsToIJK applies the digits of c to the coordinate of its base cell
// center, without any face adjustment. It reports whether the result may
// lie off the face.
func (c Cell) digitsToIJK(ijk coordijk.CoordIJK) (coordijk.CoordIJK, bool) {
	res := c.Resolution()

	possibleOverage := true
	if !basecell.IsPentagon(c.BaseCell()) && (res == 0 || ijk == (coordijk.CoordIJK{})) {
		possibleOverage = false
	}

	for r := 1; r <= res; r++ {
		if faceijk.IsClassIII(r) {
			ijk = ijk.DownAp7()
		} else {
			ijk = ijk.DownAp7r()
		}
		ijk = ijk.Neighbor(c.digit(r))
	}
	return ijk, possibleOverage
}

// faceIJK returns the face coordinate of a valid cell.
func (c Cell) faceIJK() faceijk.FaceIJK {
	b := c.BaseCell()
	pentagon := basecell.IsPentagon(b)

	// the IK leading digit of a pentagon is rotated into its home frame
	if pentagon && c.leadingNonZeroDigit() == coordijk.IKAxes {
		c = c.rotate60cw()
	}

	home := basecell.Get(b).Home
	ijk, possibleOverage := c.digitsToIJK(home.Coord)
	f := faceijk.FaceIJK{Face: home.Face, Coord: ijk}
	if !possibleOverage {
		return f
	}

	orig := f
	res := c.Resolution()
	if faceijk.IsClassIII(res) {
		f.Coord = f.Coord.DownAp7r()
		res++
	}

	pentLeading4 := pentagon && c.leadingNonZeroDigit() == coordijk.IAxes
	if f.AdjustOverageClassII(res, pentLeading4, false) != faceijk.NoOverage {
		if pentagon {
			for f.AdjustOverageClassII(res, false, false) != faceijk.NoOverage {
			}
		}
		if res != c.Resolution() {
			f.Coord = f.Coord.UpAp7r()
		}
	} else if res != c.Resolution() {
		f = orig
	}
	return f
}
