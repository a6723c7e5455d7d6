package h3

import (
	"fmt"
	"slices"

	"github.com/hexatiles/hexgrid/internal/cellset"
)

// CompactCells replaces every complete group of siblings with their parent,
// repeatedly, so that the result covers the same area with the fewest cells.
// The input may mix resolutions but must not contain a cell together with
// one of its ancestors. The result is sorted.
func CompactCells(cells []Cell) ([]Cell, error) {
	if len(cells) == 0 {
		return nil, nil
	}

	set := cellset.New[Cell]()
	byRes := make([][]Cell, MaxResolution+1)
	for _, c := range cells {
		if err := c.check(); err != nil {
			return nil, err
		}
		if !set.Add(c) {
			return nil, fmt.Errorf("%w: %s appears twice", ErrDuplicateOrOverlap, c)
		}
		byRes[c.Resolution()] = append(byRes[c.Resolution()], c)
	}
	for _, c := range cells {
		for r := c.Resolution() - 1; r >= 0; r-- {
			if p := c.parent(r); set.Contains(p) {
				return nil, fmt.Errorf("%w: %s is inside %s", ErrDuplicateOrOverlap, c, p)
			}
		}
	}

	var out []Cell
	for res := MaxResolution; res > 0; res-- {
		level := byRes[res]
		if len(level) == 0 {
			continue
		}

		counts := make(map[Cell]int64, len(level)/7+1)
		for _, c := range level {
			counts[c.parent(res-1)]++
		}
		for _, c := range level {
			p := c.parent(res - 1)
			if counts[p] == p.childrenSize(res) {
				continue
			}
			out = append(out, c)
		}
		for p, n := range counts {
			if n == p.childrenSize(res) {
				byRes[res-1] = append(byRes[res-1], p)
			}
		}
	}
	out = append(out, byRes[0]...)

	slices.Sort(out)
	return out, nil
}

// UncompactCells expands every cell to its descendants at res. Cells finer
// than res are rejected. The result is sorted.
func UncompactCells(cells []Cell, res int) ([]Cell, error) {
	total, err := UncompactCellsSize(cells, res)
	if err != nil {
		return nil, err
	}

	out := make([]Cell, 0, total)
	for _, c := range cells {
		out = c.appendChildren(out, res)
	}
	slices.Sort(out)
	return out, nil
}

// UncompactCellsSize returns the length UncompactCells would return.
func UncompactCellsSize(cells []Cell, res int) (int64, error) {
	if res < 0 || res > MaxResolution {
		return 0, fmt.Errorf("%w: %d", ErrInvalidResolution, res)
	}
	var total int64
	for _, c := range cells {
		if err := c.check(); err != nil {
			return 0, err
		}
		if c.Resolution() > res {
			return 0, fmt.Errorf("%w: %s is finer than resolution %d", ErrInvalidResolution, c, res)
		}
		total += c.childrenSize(res)
	}
	return total, nil
}
