package h3

import (
	"fmt"

	"github.com/hexatiles/hexgrid/internal/coordijk"
)

// GridDistance returns the number of grid steps between a and b. It fails
// with ErrIncompatible when the cells are too far apart or on different
// resolutions to share a local frame.
func GridDistance(a, b Cell) (int, error) {
	if err := a.check(); err != nil {
		return 0, err
	}
	if err := b.check(); err != nil {
		return 0, err
	}

	originIJK, err := cellToLocalIJK(a, a)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrIncompatible, err)
	}
	ijk, err := cellToLocalIJK(a, b)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrIncompatible, err)
	}
	return coordijk.Distance(originIJK, ijk), nil
}

// GridPathSize returns the number of cells on the path from a to b.
func GridPathSize(a, b Cell) (int, error) {
	d, err := GridDistance(a, b)
	if err != nil {
		return 0, err
	}
	return d + 1, nil
}

// GridPath returns the cells on a straight grid line from a to b, both
// included. Consecutive cells are neighbors.
func GridPath(a, b Cell) ([]Cell, error) {
	if err := a.check(); err != nil {
		return nil, err
	}
	if err := b.check(); err != nil {
		return nil, err
	}

	start, err := cellToLocalIJK(a, a)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIncompatible, err)
	}
	end, err := cellToLocalIJK(a, b)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIncompatible, err)
	}

	distance := coordijk.Distance(start, end)

	// interpolate in cube space, which keeps the rounding symmetric
	start = start.ToCube()
	end = end.ToCube()

	var iStep, jStep, kStep float64
	if distance > 0 {
		iStep = float64(end.I-start.I) / float64(distance)
		jStep = float64(end.J-start.J) / float64(distance)
		kStep = float64(end.K-start.K) / float64(distance)
	}

	out := make([]Cell, 0, distance+1)
	for n := 0; n <= distance; n++ {
		cube := coordijk.CubeRound(
			float64(start.I)+iStep*float64(n),
			float64(start.J)+jStep*float64(n),
			float64(start.K)+kStep*float64(n),
		)
		c, err := localIJKToCell(a, coordijk.FromCube(cube))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrIncompatible, err)
		}
		out = append(out, c)
	}
	return out, nil
}
