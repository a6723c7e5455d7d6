package h3

import (
	"errors"
	"fmt"

	"github.com/hexatiles/hexgrid/internal/coordijk"
)

// ring walking order: the sides of a ring are traversed in these directions
// after stepping out along nextRingDirection.
var ringDirections = [6]coordijk.Direction{
	coordijk.JAxes, coordijk.JKAxes, coordijk.KAxes, coordijk.IKAxes, coordijk.IAxes, coordijk.IJAxes,
}

const nextRingDirection = coordijk.IAxes

// MaxGridDiskSize returns the number of cells in a disk of radius k around a
// hexagon.
func MaxGridDiskSize(k int) int {
	if k < 0 {
		return 0
	}
	return 3*k*(k+1) + 1
}

// GridDisk returns every cell within k steps of origin, origin first. Cells
// are grouped by increasing distance.
func GridDisk(origin Cell, k int) ([]Cell, error) {
	out, _, err := GridDiskDistances(origin, k)
	return out, err
}

// GridDiskDistances is GridDisk that also reports the distance of each cell.
// It works around pentagons.
func GridDiskDistances(origin Cell, k int) ([]Cell, []int, error) {
	if k < 0 {
		return nil, nil, fmt.Errorf("%w: %d", ErrNegativeK, k)
	}
	if err := origin.check(); err != nil {
		return nil, nil, err
	}

	out, dist, err := gridDiskUnsafe(origin, k)
	if err == nil {
		return out, dist, nil
	}
	if !errors.Is(err, ErrPentagon) {
		return nil, nil, err
	}
	return gridDiskSearch(origin, k)
}

// gridDiskSearch finds a disk by breadth-first search over neighbors.
func gridDiskSearch(origin Cell, k int) ([]Cell, []int, error) {
	seen := map[Cell]struct{}{origin: {}}
	out := []Cell{origin}
	dist := []int{0}

	frontier := []Cell{origin}
	for ring := 1; ring <= k; ring++ {
		var next []Cell
		for _, c := range frontier {
			for d := coordijk.KAxes; d < coordijk.InvalidDirection; d++ {
				n, err := neighbor(c, d)
				if err != nil {
					// the deleted direction of a pentagon has no cell
					continue
				}
				if _, ok := seen[n]; ok {
					continue
				}
				seen[n] = struct{}{}
				out = append(out, n)
				dist = append(dist, ring)
				next = append(next, n)
			}
		}
		frontier = next
	}
	return out, dist, nil
}

// GridDiskUnsafe returns the cells within k steps of origin in spiral order:
// origin first, then each ring starting from the step in the I direction. It
// fails with ErrPentagon when a pentagon is encountered.
func GridDiskUnsafe(origin Cell, k int) ([]Cell, error) {
	if k < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeK, k)
	}
	if err := origin.check(); err != nil {
		return nil, err
	}
	out, _, err := gridDiskUnsafe(origin, k)
	return out, err
}

// GridDiskDistancesUnsafe is GridDiskUnsafe with the ring of every cell.
func GridDiskDistancesUnsafe(origin Cell, k int) ([]Cell, []int, error) {
	if k < 0 {
		return nil, nil, fmt.Errorf("%w: %d", ErrNegativeK, k)
	}
	if err := origin.check(); err != nil {
		return nil, nil, err
	}
	return gridDiskUnsafe(origin, k)
}

func gridDiskUnsafe(origin Cell, k int) ([]Cell, []int, error) {
	out := make([]Cell, 0, MaxGridDiskSize(k))
	dist := make([]int, 0, MaxGridDiskSize(k))
	out = append(out, origin)
	dist = append(dist, 0)

	if origin.IsPentagon() {
		return nil, nil, ErrPentagon
	}

	var err error
	rotations := 0
	c := origin
	for ring := 1; ring <= k; ring++ {
		c, rotations, err = neighborRotations(c, nextRingDirection, rotations)
		if err != nil {
			return nil, nil, err
		}
		if c.IsPentagon() {
			return nil, nil, ErrPentagon
		}

		for side := 0; side < 6; side++ {
			for i := 0; i < ring; i++ {
				c, rotations, err = neighborRotations(c, ringDirections[side], rotations)
				if err != nil {
					return nil, nil, err
				}
				out = append(out, c)
				dist = append(dist, ring)
				if c.IsPentagon() {
					return nil, nil, ErrPentagon
				}
			}
		}
	}
	return out, dist, nil
}

// GridDisksUnsafe returns the unsafe disk of every origin, one slice per
// origin.
func GridDisksUnsafe(origins []Cell, k int) ([][]Cell, error) {
	out := make([][]Cell, len(origins))
	for i, o := range origins {
		disk, err := GridDiskUnsafe(o, k)
		if err != nil {
			return nil, fmt.Errorf("origin %s: %w", o, err)
		}
		out[i] = disk
	}
	return out, nil
}

// GridRingUnsafe returns the hollow ring of cells exactly k steps from
// origin, in walking order. It fails with ErrPentagon near pentagons.
func GridRingUnsafe(origin Cell, k int) ([]Cell, error) {
	if k < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeK, k)
	}
	if err := origin.check(); err != nil {
		return nil, err
	}
	if k == 0 {
		return []Cell{origin}, nil
	}
	if origin.IsPentagon() {
		return nil, ErrPentagon
	}

	var err error
	rotations := 0
	c := origin
	for ring := 0; ring < k; ring++ {
		c, rotations, err = neighborRotations(c, nextRingDirection, rotations)
		if err != nil {
			return nil, err
		}
		if c.IsPentagon() {
			return nil, ErrPentagon
		}
	}

	first := c
	out := make([]Cell, 0, 6*k)
	out = append(out, c)
	for side := 0; side < 6; side++ {
		for pos := 0; pos < k; pos++ {
			c, rotations, err = neighborRotations(c, ringDirections[side], rotations)
			if err != nil {
				return nil, err
			}
			// the final step returns to the first cell
			if pos != k-1 || side != 5 {
				out = append(out, c)
				if c.IsPentagon() {
					return nil, ErrPentagon
				}
			}
		}
	}

	if c != first {
		return nil, ErrPentagon
	}
	return out, nil
}

// GridRing returns the cells exactly k steps from origin, falling back to a
// search when a pentagon is in the way. The order is only defined for the
// unsafe path.
func GridRing(origin Cell, k int) ([]Cell, error) {
	out, err := GridRingUnsafe(origin, k)
	if err == nil || !errors.Is(err, ErrPentagon) {
		return out, err
	}

	cells, dist, err := gridDiskSearch(origin, k)
	if err != nil {
		return nil, err
	}
	var ring []Cell
	for i, c := range cells {
		if dist[i] == k {
			ring = append(ring, c)
		}
	}
	return ring, nil
}

// AreNeighbors reports whether a and b share an edge.
func AreNeighbors(a, b Cell) (bool, error) {
	if err := a.check(); err != nil {
		return false, err
	}
	if err := b.check(); err != nil {
		return false, err
	}
	if a == b || a.Resolution() != b.Resolution() {
		return false, nil
	}
	return directionTo(a, b) != coordijk.InvalidDirection, nil
}
