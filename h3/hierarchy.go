package h3

import (
	"fmt"

	"github.com/hexatiles/hexgrid/internal/coordijk"
)

// CellToParent returns the ancestor of c at parentRes. A cell is its own
// parent at its resolution.
func CellToParent(c Cell, parentRes int) (Cell, error) {
	if err := c.check(); err != nil {
		return 0, err
	}
	if parentRes < 0 || parentRes > c.Resolution() {
		return 0, fmt.Errorf("%w: parent resolution %d for cell at %d", ErrInvalidResolution, parentRes, c.Resolution())
	}
	return c.parent(parentRes), nil
}

// Parent is CellToParent.
func (c Cell) Parent(res int) (Cell, error) {
	return CellToParent(c, res)
}

// parent truncates c to res, which must not be finer than c.
func (c Cell) parent(res int) Cell {
	childRes := c.Resolution()
	p := c.withResolution(res)
	for r := res + 1; r <= childRes; r++ {
		p = p.withDigit(r, coordijk.InvalidDirection)
	}
	return p
}

// CellToChildrenSize returns the number of descendants of c at childRes.
func CellToChildrenSize(c Cell, childRes int) (int64, error) {
	if err := c.check(); err != nil {
		return 0, err
	}
	if childRes < c.Resolution() || childRes > MaxResolution {
		return 0, fmt.Errorf("%w: child resolution %d for cell at %d", ErrInvalidResolution, childRes, c.Resolution())
	}
	return c.childrenSize(childRes), nil
}

func (c Cell) childrenSize(childRes int) int64 {
	n := childRes - c.Resolution()
	hexagons := ipow(7, n)
	if c.IsPentagon() {
		// one central pentagon plus five hexagon wedges
		return 1 + 5*(hexagons-1)/6
	}
	return hexagons
}

// CellToChildren returns every descendant of c at childRes, in ascending
// digit order.
func CellToChildren(c Cell, childRes int) ([]Cell, error) {
	size, err := CellToChildrenSize(c, childRes)
	if err != nil {
		return nil, err
	}
	out := make([]Cell, 0, size)
	return c.appendChildren(out, childRes), nil
}

// Children is CellToChildren.
func (c Cell) Children(res int) ([]Cell, error) {
	return CellToChildren(c, res)
}

func (c Cell) appendChildren(out []Cell, childRes int) []Cell {
	res := c.Resolution()
	if res == childRes {
		return append(out, c)
	}

	pentagon := c.IsPentagon()
	next := c.withResolution(res + 1)
	for d := coordijk.Center; d < coordijk.InvalidDirection; d++ {
		if pentagon && d == coordijk.KAxes {
			continue
		}
		out = next.withDigit(res+1, d).appendChildren(out, childRes)
	}
	return out
}

// CellToCenterChild returns the descendant of c at childRes that shares its
// center.
func CellToCenterChild(c Cell, childRes int) (Cell, error) {
	if err := c.check(); err != nil {
		return 0, err
	}
	if childRes < c.Resolution() || childRes > MaxResolution {
		return 0, fmt.Errorf("%w: child resolution %d for cell at %d", ErrInvalidResolution, childRes, c.Resolution())
	}
	child := c.withResolution(childRes)
	for r := c.Resolution() + 1; r <= childRes; r++ {
		child = child.withDigit(r, coordijk.Center)
	}
	return child, nil
}

func ipow(base, exp int) int64 {
	result := int64(1)
	b := int64(base)
	for exp > 0 {
		if exp&1 == 1 {
			result *= b
		}
		b *= b
		exp >>= 1
	}
	return result
}
