package h3

import (
	"github.com/hexatiles/hexgrid/internal/basecell"
	"github.com/hexatiles/hexgrid/internal/coordijk"
	"github.com/hexatiles/hexgrid/internal/faceijk"
)

// Digit replacement tables for a step in a direction, indexed by the old
// digit and the direction. newDigit is the digit at the current resolution
// and newAdjustment is the direction still to apply at the coarser one.
var (
	newDigitII = [7][7]coordijk.Direction{
		{0, 1, 2, 3, 4, 5, 6},
		{1, 2, 3, 4, 5, 6, 0},
		{2, 3, 4, 5, 6, 0, 1},
		{3, 4, 5, 6, 0, 1, 2},
		{4, 5, 6, 0, 1, 2, 3},
		{5, 6, 0, 1, 2, 3, 4},
		{6, 0, 1, 2, 3, 4, 5},
	}
	newAdjustmentII = [7][7]coordijk.Direction{
		{0, 0, 0, 0, 0, 0, 0},
		{0, 1, 0, 3, 0, 1, 0},
		{0, 0, 2, 2, 0, 0, 6},
		{0, 3, 2, 3, 0, 0, 0},
		{0, 0, 0, 0, 4, 5, 4},
		{0, 1, 0, 0, 5, 5, 0},
		{0, 0, 6, 0, 4, 0, 6},
	}
	newDigitIII = [7][7]coordijk.Direction{
		{0, 1, 2, 3, 4, 5, 6},
		{1, 4, 3, 6, 5, 2, 0},
		{2, 3, 1, 4, 6, 0, 5},
		{3, 6, 4, 5, 0, 1, 2},
		{4, 5, 6, 0, 2, 3, 1},
		{5, 2, 0, 1, 3, 6, 4},
		{6, 0, 5, 2, 1, 4, 3},
	}
	newAdjustmentIII = [7][7]coordijk.Direction{
		{0, 0, 0, 0, 0, 0, 0},
		{0, 1, 0, 1, 0, 5, 0},
		{0, 0, 2, 3, 0, 0, 2},
		{0, 1, 3, 3, 0, 0, 0},
		{0, 0, 0, 0, 4, 4, 6},
		{0, 5, 0, 0, 4, 5, 0},
		{0, 0, 2, 0, 6, 0, 6},
	}
)

// neighborRotations returns the neighbor of c in direction dir after
// rotating dir ccw by rotations steps, together with the updated rotation
// count for continuing a walk in the same frame. It fails with ErrPentagon
// when the step falls into the deleted subsequence of a pentagon.
func neighborRotations(c Cell, dir coordijk.Direction, rotations int) (Cell, int, error) {
	out := c

	rotations %= 6
	for i := 0; i < rotations; i++ {
		dir = dir.Rotate60ccw()
	}

	newRotations := 0
	oldBaseCell := c.BaseCell()
	oldLeading := c.leadingNonZeroDigit()

	// walk up the hierarchy until the step is absorbed
	r := c.Resolution() - 1
	for {
		if r == -1 {
			out = out.withBaseCell(basecell.Neighbor(oldBaseCell, dir))
			newRotations = basecell.NeighborRotations(oldBaseCell, dir)

			if out.BaseCell() == basecell.Invalid {
				// the deleted K direction of a pentagon is covered by IK
				out = out.withBaseCell(basecell.Neighbor(oldBaseCell, coordijk.IKAxes))
				newRotations = basecell.NeighborRotations(oldBaseCell, coordijk.IKAxes)

				out = out.rotate60ccw()
				rotations++
			}
			break
		}

		old := out.digit(r + 1)
		var next coordijk.Direction
		if faceijk.IsClassIII(r + 1) {
			out = out.withDigit(r+1, newDigitIII[old][dir])
			next = newAdjustmentIII[old][dir]
		} else {
			out = out.withDigit(r+1, newDigitII[old][dir])
			next = newAdjustmentII[old][dir]
		}

		if next == coordijk.Center {
			break
		}
		dir = next
		r--
	}

	newBaseCell := out.BaseCell()
	if basecell.IsPentagon(newBaseCell) {
		alreadyAdjusted := false

		if out.leadingNonZeroDigit() == coordijk.KAxes {
			if oldBaseCell != newBaseCell {
				// moved into the deleted subsequence from another base cell
				if basecell.IsCwOffset(newBaseCell, basecell.Get(oldBaseCell).Home.Face) {
					out = out.rotate60cw()
				} else {
					out = out.rotate60ccw()
				}
				alreadyAdjusted = true
			} else {
				switch oldLeading {
				case coordijk.Center:
					return 0, 0, ErrPentagon
				case coordijk.JKAxes:
					out = out.rotate60ccw()
					rotations++
				case coordijk.IKAxes:
					out = out.rotate60cw()
					rotations += 5
				default:
					return 0, 0, ErrPentagon
				}
			}
		}

		for i := 0; i < newRotations; i++ {
			out = out.rotatePent60ccw()
		}

		if oldBaseCell != newBaseCell {
			if basecell.IsPolarPentagon(newBaseCell) {
				// 118 and 8 are the only base cells that enter a polar
				// pentagon without an extra rotation
				if oldBaseCell != 118 && oldBaseCell != 8 && out.leadingNonZeroDigit() != coordijk.JKAxes {
					rotations++
				}
			} else if out.leadingNonZeroDigit() == coordijk.IKAxes && !alreadyAdjusted {
				rotations++
			}
		}
	} else {
		for i := 0; i < newRotations; i++ {
			out = out.rotate60ccw()
		}
	}

	rotations = (rotations + newRotations) % 6
	return out, rotations, nil
}

// neighbor returns the neighbor of c in direction dir.
func neighbor(c Cell, dir coordijk.Direction) (Cell, error) {
	n, _, err := neighborRotations(c, dir, 0)
	return n, err
}

// directionTo returns the direction from origin to its neighbor dest, or
// InvalidDirection when they are not adjacent.
func directionTo(origin, dest Cell) coordijk.Direction {
	start := coordijk.KAxes
	if origin.IsPentagon() {
		start = coordijk.JAxes
	}
	for d := start; d < coordijk.InvalidDirection; d++ {
		n, err := neighbor(origin, d)
		if err == nil && n == dest {
			return d
		}
	}
	return coordijk.InvalidDirection
}
