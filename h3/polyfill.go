package h3

import (
	"fmt"
	"math"

	"github.com/hexatiles/hexgrid/internal/cellset"
)

// PolygonToCells returns the cells at res whose centers lie inside p. Holes
// are excluded. An empty outer loop yields no cells.
//
// The fill is seeded with the cells along every edge of p and flooded
// inward through neighbors, so the work grows with the result rather than
// with the bounding box.
func PolygonToCells(p GeoPolygon, res int) ([]Cell, error) {
	if res < 0 || res > MaxResolution {
		return nil, fmt.Errorf("%w: %d", ErrInvalidResolution, res)
	}
	if len(p.GeoLoop) == 0 {
		return nil, nil
	}
	for _, g := range p.GeoLoop {
		if !finite(g) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidLatLng, g)
		}
	}

	bboxes := p.bboxes()

	search := cellset.New[Cell]()
	if err := traceLoop(search, p.GeoLoop, res); err != nil {
		return nil, err
	}
	for _, h := range p.Holes {
		if err := traceLoop(search, h, res); err != nil {
			return nil, err
		}
	}

	found := cellset.New[Cell]()
	frontier := search.Slice()
	for len(frontier) > 0 {
		var next []Cell
		for _, c := range frontier {
			ring, err := GridDisk(c, 1)
			if err != nil {
				return nil, err
			}
			for _, n := range ring {
				if found.Contains(n) {
					continue
				}
				if !p.contains(bboxes, n.center()) {
					continue
				}
				found.Add(n)
				next = append(next, n)
			}
		}
		frontier = next
	}
	return found.Slice(), nil
}

// traceLoop adds the cells along every edge of l to set.
func traceLoop(set *cellset.Set[Cell], l GeoLoop, res int) error {
	for i := range l {
		from := l[i]
		to := l[(i+1)%len(l)]

		// walk across the antimeridian rather than around the globe
		if to.Lng-from.Lng > math.Pi {
			to.Lng -= 2 * math.Pi
		} else if from.Lng-to.Lng > math.Pi {
			to.Lng += 2 * math.Pi
		}

		n := lineCellEstimate(from, to, res)
		for j := 0; j < n; j++ {
			t := float64(j) / float64(n)
			g := LatLng{
				Lat: from.Lat*(1-t) + to.Lat*t,
				Lng: from.Lng*(1-t) + to.Lng*t,
			}
			c, err := LatLngToCell(g, res)
			if err != nil {
				return err
			}
			set.Add(c)
		}
	}
	return nil
}

// lineCellEstimate returns the number of samples needed to touch every cell
// crossed by the segment from a to b. Pentagons are the smallest cells, so
// their radius gives an upper bound.
func lineCellEstimate(a, b LatLng, res int) int {
	pentRadius := pentagonRadiusRads(res)
	n := int(math.Ceil(GreatCircleDistanceRads(a, b) / (2 * pentRadius)))
	if n < 1 {
		n = 1
	}
	return n
}

func pentagonRadiusRads(res int) float64 {
	p := newCell(res, pentagonBaseCells[0])
	for r := 1; r <= res; r++ {
		p = p.withDigit(r, 0)
	}
	verts := p.boundary(0, 1)
	return GreatCircleDistanceRads(p.center(), verts[0])
}
