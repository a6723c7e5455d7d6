package h3

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/hexatiles/hexgrid/internal/cellset"
)

var errUnassignedHole = errors.New("h3: hole outside every outer loop")

// CellsToMultiPolygon traces the outline of a set of cells at one
// resolution. Every connected group becomes a polygon whose outer loop is
// ccw; enclosed gaps become its holes.
func CellsToMultiPolygon(cells []Cell) ([]GeoPolygon, error) {
	if len(cells) == 0 {
		return nil, nil
	}

	sorted := slices.Clone(cells)
	slices.Sort(sorted)

	seen := cellset.New[Cell]()
	res := sorted[0].Resolution()
	for _, c := range sorted {
		if err := c.check(); err != nil {
			return nil, err
		}
		if c.Resolution() != res {
			return nil, fmt.Errorf("%w: mixed resolutions %d and %d", ErrInvalidResolution, res, c.Resolution())
		}
		if !seen.Add(c) {
			return nil, fmt.Errorf("%w: %s appears twice", ErrDuplicateOrOverlap, c)
		}
	}

	g := newVertexGraph(len(sorted) * 6)
	for _, c := range sorted {
		b := c.boundary(0, c.numVerts())
		for i := range b {
			from := b[i]
			to := b[(i+1)%len(b)]
			// an edge shared by two cells is seen once in each direction
			if idx := g.find(to, from); idx >= 0 {
				g.remove(idx)
			} else {
				g.add(from, to)
			}
		}
	}

	return normalizeLoops(g.loops())
}

// CellsToPolygon is CellsToMultiPolygon for a set that must form a single
// polygon. It fails with ErrDisconnectedSet otherwise.
func CellsToPolygon(cells []Cell) (GeoPolygon, error) {
	polys, err := CellsToMultiPolygon(cells)
	if err != nil {
		return GeoPolygon{}, err
	}
	switch len(polys) {
	case 0:
		return GeoPolygon{}, nil
	case 1:
		return polys[0], nil
	default:
		return GeoPolygon{}, fmt.Errorf("%w: %d polygons", ErrDisconnectedSet, len(polys))
	}
}

// normalizeLoops sorts traced loops into outer loops and holes, and assigns
// every hole to the innermost outer loop that contains it.
func normalizeLoops(loops []GeoLoop) ([]GeoPolygon, error) {
	var polys []GeoPolygon
	var bboxes []BBox
	var holes []GeoLoop
	for _, l := range loops {
		if l.isClockwise() {
			holes = append(holes, l)
			continue
		}
		polys = append(polys, GeoPolygon{GeoLoop: l})
		bboxes = append(bboxes, l.BBox())
	}

	for _, h := range holes {
		var candidates []int
		for i := range polys {
			if polys[i].GeoLoop.contains(bboxes[i], h[0]) {
				candidates = append(candidates, i)
			}
		}
		if len(candidates) == 0 {
			return nil, errUnassignedHole
		}

		// nested candidates: the innermost is inside all the others
		best, most := candidates[0], -1
		for _, i := range candidates {
			depth := 0
			for _, j := range candidates {
				if i != j && polys[j].GeoLoop.contains(bboxes[j], polys[i].GeoLoop[0]) {
					depth++
				}
			}
			if depth > most {
				best, most = i, depth
			}
		}
		polys[best].Holes = append(polys[best].Holes, h)
	}
	return polys, nil
}

type vertexKey struct {
	lat, lng int64
}

func keyOf(g LatLng) vertexKey {
	return vertexKey{lat: int64(math.Round(g.Lat / vertexEpsilon)), lng: int64(math.Round(g.Lng / vertexEpsilon))}
}

func sameVertex(a, b LatLng) bool {
	return math.Abs(a.Lat-b.Lat) < vertexEpsilon && math.Abs(a.Lng-b.Lng) < vertexEpsilon
}

type vertexEdge struct {
	from, to LatLng
	removed  bool
}

// vertexGraph is a set of directed boundary edges looked up by their start
// vertex. Edges keep insertion order so tracing is deterministic.
type vertexGraph struct {
	edges  []vertexEdge
	byFrom map[vertexKey][]int
	live   int
	cursor int
}

func newVertexGraph(capacity int) *vertexGraph {
	return &vertexGraph{
		edges:  make([]vertexEdge, 0, capacity),
		byFrom: make(map[vertexKey][]int, capacity),
	}
}

func (g *vertexGraph) add(from, to LatLng) {
	k := keyOf(from)
	g.byFrom[k] = append(g.byFrom[k], len(g.edges))
	g.edges = append(g.edges, vertexEdge{from: from, to: to})
	g.live++
}

func (g *vertexGraph) remove(idx int) {
	g.edges[idx].removed = true
	g.live--
}

// candidates calls fn with every live edge whose start vertex is near from,
// stopping when fn returns true.
func (g *vertexGraph) candidates(from LatLng, fn func(idx int) bool) {
	k := keyOf(from)
	for dLat := int64(-1); dLat <= 1; dLat++ {
		for dLng := int64(-1); dLng <= 1; dLng++ {
			for _, idx := range g.byFrom[vertexKey{lat: k.lat + dLat, lng: k.lng + dLng}] {
				if g.edges[idx].removed || !sameVertex(g.edges[idx].from, from) {
					continue
				}
				if fn(idx) {
					return
				}
			}
		}
	}
}

// find returns the live edge from -> to, or -1.
func (g *vertexGraph) find(from, to LatLng) int {
	found := -1
	g.candidates(from, func(idx int) bool {
		if sameVertex(g.edges[idx].to, to) {
			found = idx
			return true
		}
		return false
	})
	return found
}

// findFrom returns any live edge starting at from, or -1.
func (g *vertexGraph) findFrom(from LatLng) int {
	found := -1
	g.candidates(from, func(idx int) bool {
		found = idx
		return true
	})
	return found
}

func (g *vertexGraph) first() int {
	for ; g.cursor < len(g.edges); g.cursor++ {
		if !g.edges[g.cursor].removed {
			return g.cursor
		}
	}
	return -1
}

// loops walks the remaining edges into closed loops.
func (g *vertexGraph) loops() []GeoLoop {
	var out []GeoLoop
	for g.live > 0 {
		idx := g.first()
		if idx < 0 {
			break
		}
		var loop GeoLoop
		for idx >= 0 {
			e := g.edges[idx]
			loop = append(loop, e.from)
			g.remove(idx)
			idx = g.findFrom(e.to)
		}
		out = append(out, loop)
	}
	return out
}
