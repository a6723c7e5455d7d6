package h3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertSameLatLng(t *testing.T, want, got LatLng) {
	t.Helper()
	assert.InDelta(t, want.Lat, got.Lat, 1e-12)
	assert.InDelta(t, want.Lng, got.Lng, 1e-12)
}

func TestCellToBoundary(t *testing.T) {
	want := [][2]float64{
		{37.271356, -121.91508},
		{37.353926, -121.862223},
		{37.428341, -121.92355},
		{37.420129, -122.037735},
		{37.337556, -122.090429},
		{37.263198, -122.029101},
	}
	b, err := CellToBoundary(sfCellRes5)
	require.NoError(t, err)
	require.Len(t, b, len(want))
	for i, v := range b {
		lat, lng := Degrees(v)
		assert.InDelta(t, want[i][0], lat, 1e-6, "vertex %d", i)
		assert.InDelta(t, want[i][1], lng, 1e-6, "vertex %d", i)
	}

	_, err = CellToBoundary(0)
	assert.ErrorIs(t, err, ErrMalformedIndex)
}

func TestBoundaryVertexCounts(t *testing.T) {
	tests := []struct {
		name string
		c    Cell
		want int
	}{
		{"Hexagon", sfCell, 6},
		{"Res0Pentagon", 0x8009fffffffffff, 5},
		{"Res1Pentagon", res1Pentagon, 10},
		{"Res0Hexagon", 0x8001fffffffffff, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := tt.c.Boundary()
			require.NoError(t, err)
			assert.Len(t, b, tt.want)
		})
	}
}

func TestBoundaryIsCounterClockwise(t *testing.T) {
	b, err := sfCell.Boundary()
	require.NoError(t, err)
	assert.False(t, GeoLoop(b).isClockwise())

	center, err := sfCell.LatLng()
	require.NoError(t, err)
	assert.True(t, GeoLoop(b).Contains(center))
}

func TestNeighborsShareBoundary(t *testing.T) {
	cells, err := GridDisk(res1Pentagon, 1)
	require.NoError(t, err)
	cells = append(cells, sfRing1...)
	cells = append(cells, sfCell)

	for _, c := range cells {
		edges, err := OriginToDirectedEdges(c)
		require.NoError(t, err)
		for _, e := range edges {
			b, err := e.Boundary()
			require.NoError(t, err)
			assert.GreaterOrEqual(t, len(b), 2, "%s", e)
			assert.LessOrEqual(t, len(b), 3, "%s", e)
		}
	}
}

func TestCellsToDirectedEdge(t *testing.T) {
	for _, n := range sfRing1 {
		e, err := CellsToDirectedEdge(sfCell, n)
		require.NoError(t, err)
		assert.True(t, e.IsValid())

		o, d, err := e.Cells()
		require.NoError(t, err)
		assert.Equal(t, sfCell, o)
		assert.Equal(t, n, d)

		o, err = e.Origin()
		require.NoError(t, err)
		assert.Equal(t, sfCell, o)
		d, err = e.Destination()
		require.NoError(t, err)
		assert.Equal(t, n, d)

		// the reverse edge walks the same vertices the other way
		rev, err := CellsToDirectedEdge(n, sfCell)
		require.NoError(t, err)
		fwd, err := DirectedEdgeToBoundary(e)
		require.NoError(t, err)
		back, err := rev.Boundary()
		require.NoError(t, err)
		require.Len(t, fwd, 2)
		require.Len(t, back, 2)
		assertSameLatLng(t, fwd[0], back[1])
		assertSameLatLng(t, fwd[1], back[0])

		length, err := e.EdgeLengthKm()
		require.NoError(t, err)
		assert.InDelta(t, edgeLengthKm[9], length, edgeLengthKm[9]*0.35)
	}

	_, err := CellsToDirectedEdge(sfCell, sfRing2[0])
	assert.ErrorIs(t, err, ErrNotNeighbors)
	_, err = CellsToDirectedEdge(sfCell, sfCell)
	assert.ErrorIs(t, err, ErrNotNeighbors)
	_, err = CellsToDirectedEdge(sfCell, 0)
	assert.ErrorIs(t, err, ErrMalformedIndex)
}

func TestOriginToDirectedEdges(t *testing.T) {
	edges, err := OriginToDirectedEdges(sfCell)
	require.NoError(t, err)
	require.Len(t, edges, 6)

	var dests []Cell
	for _, e := range edges {
		d, err := e.Destination()
		require.NoError(t, err)
		dests = append(dests, d)
	}
	assert.Equal(t, sorted(sfRing1), sorted(dests))

	edges, err = OriginToDirectedEdges(res1Pentagon)
	require.NoError(t, err)
	assert.Len(t, edges, 5)
	for _, e := range edges {
		assert.True(t, e.IsValid(), "%s", e)
	}
}

func TestDirectedEdgeValidity(t *testing.T) {
	e, err := CellsToDirectedEdge(sfCell, sfRing1[0])
	require.NoError(t, err)
	assert.Equal(t, 16, len(e.String()))

	assert.False(t, DirectedEdge(sfCell).IsValid())
	assert.False(t, DirectedEdge(Cell(e).withReserved(0)).IsValid())
	assert.False(t, DirectedEdge(Cell(e).withReserved(7)).IsValid())

	pentEdge := DirectedEdge(res1Pentagon.withMode(modeDirectedEdge).withReserved(1))
	assert.False(t, pentEdge.IsValid())
	_, err = pentEdge.Boundary()
	assert.ErrorIs(t, err, ErrMalformedIndex)
}
