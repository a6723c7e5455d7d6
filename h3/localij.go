package h3

import (
	"fmt"

	"github.com/hexatiles/hexgrid/internal/basecell"
	"github.com/hexatiles/hexgrid/internal/coordijk"
	"github.com/hexatiles/hexgrid/internal/faceijk"
)

// CoordIJ is a cell position in the local two axis frame of an origin cell.
type CoordIJ struct {
	I, J int
}

// Rotation tables used when a local frame spans a pentagon. Rows are the
// leading digit of the pentagon side, columns the direction crossed. -1
// marks the deleted subsequence.
var (
	pentagonRotations = [7][7]int{
		{0, -1, 0, 0, 0, 0, 0},
		{-1, -1, -1, -1, -1, -1, -1},
		{0, -1, 0, 0, 0, 1, 0},
		{0, -1, 0, 0, 1, 1, 0},
		{0, -1, 0, 5, 0, 0, 0},
		{0, -1, 5, 5, 0, 0, 0},
		{0, -1, 0, 0, 0, 0, 0},
	}
	pentagonRotationsReverse = [7][7]int{
		{0, 0, 0, 0, 0, 0, 0},
		{-1, -1, -1, -1, -1, -1, -1},
		{0, 1, 0, 0, 0, 0, 0},
		{0, 1, 0, 0, 0, 1, 0},
		{0, 5, 0, 0, 0, 0, 0},
		{0, 5, 0, 5, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
	}
	pentagonRotationsReverseNonPolar = [7][7]int{
		{0, 0, 0, 0, 0, 0, 0},
		{-1, -1, -1, -1, -1, -1, -1},
		{0, 1, 0, 0, 0, 0, 0},
		{0, 1, 0, 0, 0, 1, 0},
		{0, 5, 0, 0, 0, 0, 0},
		{0, 1, 0, 5, 1, 1, 0},
		{0, 0, 0, 0, 0, 0, 0},
	}
	pentagonRotationsReversePolar = [7][7]int{
		{0, 0, 0, 0, 0, 0, 0},
		{-1, -1, -1, -1, -1, -1, -1},
		{0, 1, 1, 1, 1, 1, 1},
		{0, 1, 0, 0, 0, 1, 0},
		{0, 1, 0, 0, 1, 1, 1},
		{0, 1, 0, 5, 1, 1, 0},
		{0, 1, 1, 0, 1, 1, 1},
	}

	// failedDirections marks pairs that cannot be unfolded across a pentagon.
	failedDirections = [7][7]bool{
		{},
		{},
		{4: true, 5: true},
		{4: true, 6: true},
		{2: true, 3: true},
		{2: true, 6: true},
		{3: true, 5: true},
	}
)

// CellToLocalIJ returns the position of c in the local frame of origin.
// Both cells must share a resolution and lie on the same or neighboring base
// cells.
func CellToLocalIJ(origin, c Cell) (CoordIJ, error) {
	if err := origin.check(); err != nil {
		return CoordIJ{}, err
	}
	if err := c.check(); err != nil {
		return CoordIJ{}, err
	}
	ijk, err := cellToLocalIJK(origin, c)
	if err != nil {
		return CoordIJ{}, err
	}
	i, j := ijk.ToIJ()
	return CoordIJ{I: i, J: j}, nil
}

// LocalIJToCell is the inverse of CellToLocalIJ.
func LocalIJToCell(origin Cell, ij CoordIJ) (Cell, error) {
	if err := origin.check(); err != nil {
		return 0, err
	}
	return localIJKToCell(origin, coordijk.FromIJ(ij.I, ij.J))
}

func cellToLocalIJK(origin, c Cell) (coordijk.CoordIJK, error) {
	res := origin.Resolution()
	if res != c.Resolution() {
		return coordijk.CoordIJK{}, fmt.Errorf("%w: resolutions %d and %d", ErrIncompatible, res, c.Resolution())
	}

	originBaseCell := origin.BaseCell()
	baseCell := c.BaseCell()

	dir := coordijk.Center
	revDir := coordijk.Center
	if originBaseCell != baseCell {
		dir = basecell.Direction(originBaseCell, baseCell)
		if dir == coordijk.InvalidDirection {
			return coordijk.CoordIJK{}, fmt.Errorf("%w: base cells %d and %d are not adjacent", ErrIncompatible, originBaseCell, baseCell)
		}
		revDir = basecell.Direction(baseCell, originBaseCell)
	}

	originOnPent := basecell.IsPentagon(originBaseCell)
	indexOnPent := basecell.IsPentagon(baseCell)

	// rotate c into the frame of the origin base cell
	if dir != coordijk.Center {
		rots := basecell.NeighborRotations(originBaseCell, dir)
		for i := 0; i < rots; i++ {
			if indexOnPent {
				c = c.rotatePent60cw()
				revDir = revDir.Rotate60cw()
				if revDir == coordijk.KAxes {
					revDir = revDir.Rotate60cw()
				}
			} else {
				c = c.rotate60cw()
				revDir = revDir.Rotate60cw()
			}
		}
	}

	ijk, _ := c.digitsToIJK(coordijk.CoordIJK{})

	switch {
	case dir != coordijk.Center:
		pentRots := 0
		dirRots := 0
		if originOnPent {
			lead := origin.leadingNonZeroDigit()
			if failedDirections[lead][dir] {
				return coordijk.CoordIJK{}, fmt.Errorf("%w: cannot unfold across pentagon", ErrPentagon)
			}
			dirRots = pentagonRotations[lead][dir]
			pentRots = dirRots
		} else if indexOnPent {
			lead := c.leadingNonZeroDigit()
			if failedDirections[lead][revDir] {
				return coordijk.CoordIJK{}, fmt.Errorf("%w: cannot unfold across pentagon", ErrPentagon)
			}
			pentRots = pentagonRotations[revDir][lead]
		}
		if pentRots < 0 || dirRots < 0 {
			return coordijk.CoordIJK{}, fmt.Errorf("%w: deleted subsequence", ErrPentagon)
		}

		for i := 0; i < pentRots; i++ {
			ijk = ijk.Rotate60cw()
		}

		// offset of the neighboring base cell at this resolution
		offset := coordijk.CoordIJK{}.Neighbor(dir)
		for r := res - 1; r >= 0; r-- {
			if faceijk.IsClassIII(r + 1) {
				offset = offset.DownAp7()
			} else {
				offset = offset.DownAp7r()
			}
		}
		for i := 0; i < dirRots; i++ {
			offset = offset.Rotate60cw()
		}
		ijk = ijk.Add(offset).Normalize()

	case originOnPent && indexOnPent:
		originLead := origin.leadingNonZeroDigit()
		lead := c.leadingNonZeroDigit()
		if failedDirections[originLead][lead] {
			return coordijk.CoordIJK{}, fmt.Errorf("%w: cannot unfold across pentagon", ErrPentagon)
		}
		rots := pentagonRotations[originLead][lead]
		if rots < 0 {
			return coordijk.CoordIJK{}, fmt.Errorf("%w: deleted subsequence", ErrPentagon)
		}
		for i := 0; i < rots; i++ {
			ijk = ijk.Rotate60cw()
		}
	}
	return ijk, nil
}

func localIJKToCell(origin Cell, ijk coordijk.CoordIJK) (Cell, error) {
	res := origin.Resolution()
	originBaseCell := origin.BaseCell()
	originOnPent := basecell.IsPentagon(originBaseCell)

	out := newCell(res, 0)

	if res == 0 {
		if ijk.I > 1 || ijk.J > 1 || ijk.K > 1 {
			return 0, fmt.Errorf("%w: coordinate out of range", ErrIncompatible)
		}
		nb := basecell.Neighbor(originBaseCell, ijk.ToDigit())
		if nb == basecell.Invalid {
			return 0, fmt.Errorf("%w: deleted subsequence", ErrPentagon)
		}
		return out.withBaseCell(nb), nil
	}

	// climb to the base cell, recording digits relative to the origin's
	// base cell center
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
		out = out.withDigit(r+1, last.Sub(lastCenter).Normalize().ToDigit())
	}

	if ijk.I > 1 || ijk.J > 1 || ijk.K > 1 {
		return 0, fmt.Errorf("%w: coordinate out of range", ErrIncompatible)
	}

	dir := ijk.ToDigit()
	baseCell := basecell.Neighbor(originBaseCell, dir)
	indexOnPent := baseCell != basecell.Invalid && basecell.IsPentagon(baseCell)

	switch {
	case dir != coordijk.Center:
		pentRots := 0
		if originOnPent {
			pentRots = pentagonRotationsReverse[origin.leadingNonZeroDigit()][dir]
			for i := 0; i < pentRots; i++ {
				dir = dir.Rotate60ccw()
			}
			if dir == coordijk.KAxes {
				return 0, fmt.Errorf("%w: deleted subsequence", ErrPentagon)
			}
			// pentagons never border each other
			baseCell = basecell.Neighbor(originBaseCell, dir)
		}
		if baseCell == basecell.Invalid {
			return 0, fmt.Errorf("%w: deleted subsequence", ErrPentagon)
		}

		baseCellRots := basecell.NeighborRotations(originBaseCell, dir)
		if indexOnPent {
			revDir := basecell.Direction(baseCell, originBaseCell)
			for i := 0; i < baseCellRots; i++ {
				out = out.rotate60ccw()
			}

			table := &pentagonRotationsReverseNonPolar
			if basecell.IsPolarPentagon(baseCell) {
				table = &pentagonRotationsReversePolar
			}
			rots := table[revDir][out.leadingNonZeroDigit()]
			if rots < 0 {
				return 0, fmt.Errorf("%w: deleted subsequence", ErrPentagon)
			}
			for i := 0; i < rots; i++ {
				out = out.rotatePent60ccw()
			}
		} else {
			for i := 0; i < pentRots; i++ {
				out = out.rotate60ccw()
			}
			for i := 0; i < baseCellRots; i++ {
				out = out.rotate60ccw()
			}
		}

	case originOnPent && indexOnPent:
		rots := pentagonRotationsReverse[origin.leadingNonZeroDigit()][out.leadingNonZeroDigit()]
		if rots < 0 {
			return 0, fmt.Errorf("%w: deleted subsequence", ErrPentagon)
		}
		for i := 0; i < rots; i++ {
			out = out.rotate60ccw()
		}
	}

	if indexOnPent && out.leadingNonZeroDigit() == coordijk.KAxes {
		return 0, fmt.Errorf("%w: deleted subsequence", ErrPentagon)
	}
	return out.withBaseCell(baseCell), nil
}
