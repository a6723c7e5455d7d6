package h3

import (
	"fmt"

	"github.com/hexatiles/hexgrid/internal/basecell"
	"github.com/hexatiles/hexgrid/internal/coordijk"
	"github.com/hexatiles/hexgrid/internal/faceijk"
)

// Cell is a 64-bit hierarchical cell index.
//
// Bit layout, high to low: 1 reserved bit, 4 mode bits, 3 reserved bits
// (the direction of a directed edge), 4 resolution bits, 7 base cell bits and
// fifteen 3-bit digits. Digits past the resolution are set to 7.
type Cell uint64

const (
	// MaxResolution is the finest supported resolution.
	MaxResolution = 15
	// NumBaseCells is the number of resolution 0 cells.
	NumBaseCells = basecell.NumBaseCells
	// NumPentagons is the number of pentagons at every resolution.
	NumPentagons = basecell.NumPentagons
)

const (
	modeOffset     = 59
	reservedOffset = 56
	resOffset      = 52
	baseCellOffset = 45
	digitBits      = 3

	highBitMask  uint64 = 1 << 63
	modeMask     uint64 = 15 << modeOffset
	reservedMask uint64 = 7 << reservedOffset
	resMask      uint64 = 15 << resOffset
	baseCellMask uint64 = 127 << baseCellOffset
	digitMask    uint64 = 7

	// initBits has every digit set to 7 and all other fields zero.
	initBits uint64 = 35184372088831

	modeCell         = 1
	modeDirectedEdge = 2
)

func newCell(res, baseCell int) Cell {
	c := Cell(initBits)
	c = c.withMode(modeCell).withResolution(res).withBaseCell(baseCell)
	return c
}

// Resolution returns the resolution field of c.
func (c Cell) Resolution() int {
	return int((uint64(c) & resMask) >> resOffset)
}

// BaseCell returns the base cell field of c.
func (c Cell) BaseCell() int {
	return int((uint64(c) & baseCellMask) >> baseCellOffset)
}

func (c Cell) mode() int {
	return int((uint64(c) & modeMask) >> modeOffset)
}

func (c Cell) reserved() int {
	return int((uint64(c) & reservedMask) >> reservedOffset)
}

func (c Cell) digit(r int) coordijk.Direction {
	shift := uint((MaxResolution - r) * digitBits)
	return coordijk.Direction((uint64(c) >> shift) & digitMask)
}

func (c Cell) withDigit(r int, d coordijk.Direction) Cell {
	shift := uint((MaxResolution - r) * digitBits)
	return Cell((uint64(c) &^ (digitMask << shift)) | (uint64(d) << shift))
}

func (c Cell) withMode(m int) Cell {
	return Cell((uint64(c) &^ modeMask) | uint64(m)<<modeOffset)
}

func (c Cell) withReserved(v int) Cell {
	return Cell((uint64(c) &^ reservedMask) | uint64(v)<<reservedOffset)
}

func (c Cell) withResolution(res int) Cell {
	return Cell((uint64(c) &^ resMask) | uint64(res)<<resOffset)
}

func (c Cell) withBaseCell(b int) Cell {
	return Cell((uint64(c) &^ baseCellMask) | uint64(b)<<baseCellOffset)
}

// leadingNonZeroDigit returns the first digit that is not Center, or Center
// when there is none.
func (c Cell) leadingNonZeroDigit() coordijk.Direction {
	res := c.Resolution()
	for r := 1; r <= res; r++ {
		if d := c.digit(r); d != coordijk.Center {
			return d
		}
	}
	return coordijk.Center
}

func (c Cell) rotate60ccw() Cell {
	res := c.Resolution()
	for r := 1; r <= res; r++ {
		c = c.withDigit(r, c.digit(r).Rotate60ccw())
	}
	return c
}

func (c Cell) rotate60cw() Cell {
	res := c.Resolution()
	for r := 1; r <= res; r++ {
		c = c.withDigit(r, c.digit(r).Rotate60cw())
	}
	return c
}

// rotatePent60ccw rotates a cell on a pentagon base cell, skipping over the
// deleted K subsequence.
func (c Cell) rotatePent60ccw() Cell {
	found := false
	res := c.Resolution()
	for r := 1; r <= res; r++ {
		c = c.withDigit(r, c.digit(r).Rotate60ccw())
		if !found && c.digit(r) != coordijk.Center {
			found = true
			if c.leadingNonZeroDigit() == coordijk.KAxes {
				c = c.rotate60ccw()
			}
		}
	}
	return c
}

func (c Cell) rotatePent60cw() Cell {
	found := false
	res := c.Resolution()
	for r := 1; r <= res; r++ {
		c = c.withDigit(r, c.digit(r).Rotate60cw())
		if !found && c.digit(r) != coordijk.Center {
			found = true
			if c.leadingNonZeroDigit() == coordijk.KAxes {
				c = c.rotate60cw()
			}
		}
	}
	return c
}

// IsValid reports whether c is a well formed cell index.
func (c Cell) IsValid() bool {
	return c.check() == nil
}

// check reports why c is not a well formed cell index.
func (c Cell) check() error {
	if uint64(c)&highBitMask != 0 || c.mode() != modeCell || c.reserved() != 0 {
		return fmt.Errorf("%w: %s", ErrMalformedIndex, c)
	}
	if !basecell.Valid(c.BaseCell()) {
		return fmt.Errorf("%w: %w %d", ErrMalformedIndex, ErrInvalidBaseCell, c.BaseCell())
	}

	res := c.Resolution()
	pentagon := basecell.IsPentagon(c.BaseCell())
	leading := false
	for r := 1; r <= res; r++ {
		d := c.digit(r)
		if d == coordijk.InvalidDirection {
			return fmt.Errorf("%w: %w at resolution %d", ErrMalformedIndex, ErrInvalidDigit, r)
		}
		if !leading && d != coordijk.Center {
			leading = true
			if pentagon && d == coordijk.KAxes {
				return fmt.Errorf("%w: %w: deleted pentagon subsequence", ErrMalformedIndex, ErrInvalidDigit)
			}
		}
	}
	for r := res + 1; r <= MaxResolution; r++ {
		if c.digit(r) != coordijk.InvalidDirection {
			return fmt.Errorf("%w: unused digit %d is set", ErrMalformedIndex, r)
		}
	}
	return nil
}

// IsPentagon reports whether c is one of the twelve pentagons at its
// resolution.
func (c Cell) IsPentagon() bool {
	return basecell.IsPentagon(c.BaseCell()) && c.leadingNonZeroDigit() == coordijk.Center
}

// IsResClassIII reports whether c has a Class III resolution.
func (c Cell) IsResClassIII() bool {
	return faceijk.IsClassIII(c.Resolution())
}

// Encode builds a cell from its resolution, base cell and one digit per
// resolution step.
func Encode(res, baseCell int, digits []int) (Cell, error) {
	if res < 0 || res > MaxResolution {
		return 0, fmt.Errorf("%w: %d", ErrInvalidResolution, res)
	}
	if !basecell.Valid(baseCell) {
		return 0, fmt.Errorf("%w: %d", ErrInvalidBaseCell, baseCell)
	}
	if len(digits) != res {
		return 0, fmt.Errorf("%w: got %d digits for resolution %d", ErrInvalidDigit, len(digits), res)
	}

	c := newCell(res, baseCell)
	leading := false
	for i, d := range digits {
		dir := coordijk.Direction(d)
		if !dir.Valid() {
			return 0, fmt.Errorf("%w: %d at resolution %d", ErrInvalidDigit, d, i+1)
		}
		if !leading && dir != coordijk.Center {
			leading = true
			if basecell.IsPentagon(baseCell) && dir == coordijk.KAxes {
				return 0, fmt.Errorf("%w: deleted pentagon subsequence", ErrInvalidDigit)
			}
		}
		c = c.withDigit(i+1, dir)
	}
	return c, nil
}

// Decode splits a cell into the parts accepted by Encode.
func Decode(c Cell) (res, baseCell int, digits []int, err error) {
	if err := c.check(); err != nil {
		return 0, 0, nil, err
	}
	res = c.Resolution()
	digits = make([]int, res)
	for r := 1; r <= res; r++ {
		digits[r-1] = int(c.digit(r))
	}
	return res, c.BaseCell(), digits, nil
}

// GetResolution returns the resolution of a valid cell.
func GetResolution(c Cell) (int, error) {
	if err := c.check(); err != nil {
		return 0, err
	}
	return c.Resolution(), nil
}

// GetBaseCell returns the base cell of a valid cell.
func GetBaseCell(c Cell) (int, error) {
	if err := c.check(); err != nil {
		return 0, err
	}
	return c.BaseCell(), nil
}
