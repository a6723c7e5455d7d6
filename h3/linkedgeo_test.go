package h3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellsToMultiPolygon(t *testing.T) {
	ring1, err := GridRing(sfCell, 1)
	require.NoError(t, err)
	ring12, err := GridDisk(sfCell, 2)
	require.NoError(t, err)
	ring12 = ring12[1:]
	ring2 := ring12[6:]
	disk1, err := GridDisk(sfCell, 1)
	require.NoError(t, err)

	tests := []struct {
		name  string
		cells []Cell
		outer int
		holes []int
	}{
		{"SingleCell", []Cell{sfCell}, 6, nil},
		{"Disk", disk1, 18, nil},
		{"Ring", ring1, 18, []int{6}},
		{"WideRing", ring2, 30, []int{18}},
		{"ThickRing", ring12, 30, []int{6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			polys, err := CellsToMultiPolygon(tt.cells)
			require.NoError(t, err)
			require.Len(t, polys, 1)

			p := polys[0]
			assert.Len(t, p.GeoLoop, tt.outer)
			assert.False(t, p.GeoLoop.isClockwise())
			require.Len(t, p.Holes, len(tt.holes))
			for i, h := range p.Holes {
				assert.Len(t, h, tt.holes[i])
				assert.True(t, h.isClockwise())
			}

			for _, c := range tt.cells {
				center, err := c.LatLng()
				require.NoError(t, err)
				assert.True(t, p.Contains(center), "%s", c)
			}
		})
	}
}

func TestCellsToMultiPolygonHoleExcludesCenter(t *testing.T) {
	ring, err := GridRing(sfCell, 1)
	require.NoError(t, err)
	p, err := CellsToPolygon(ring)
	require.NoError(t, err)

	center, err := sfCell.LatLng()
	require.NoError(t, err)
	assert.False(t, p.Contains(center))
	assert.True(t, p.GeoLoop.Contains(center))
}

func TestCellsToMultiPolygonPentagon(t *testing.T) {
	disk, err := GridDisk(res1Pentagon, 1)
	require.NoError(t, err)
	polys, err := CellsToMultiPolygon(disk)
	require.NoError(t, err)
	require.Len(t, polys, 1)
	assert.Empty(t, polys[0].Holes)
}

func TestCellsToMultiPolygonDisjoint(t *testing.T) {
	cells := []Cell{sfCell, sfRing2[0]}
	polys, err := CellsToMultiPolygon(cells)
	require.NoError(t, err)
	require.Len(t, polys, 2)
	for _, p := range polys {
		assert.Len(t, p.GeoLoop, 6)
	}

	_, err = CellsToPolygon(cells)
	assert.ErrorIs(t, err, ErrDisconnectedSet)

	p, err := CellsToPolygon([]Cell{sfCell})
	require.NoError(t, err)
	assert.Len(t, p.GeoLoop, 6)
}

func TestCellsToMultiPolygonWholeSphere(t *testing.T) {
	// every edge is shared, so nothing is left to trace
	polys, err := CellsToMultiPolygon(Res0Cells())
	require.NoError(t, err)
	assert.Empty(t, polys)
}

func TestCellsToMultiPolygonErrors(t *testing.T) {
	polys, err := CellsToMultiPolygon(nil)
	require.NoError(t, err)
	assert.Empty(t, polys)

	_, err = CellsToMultiPolygon([]Cell{sfCell, sfCell})
	assert.ErrorIs(t, err, ErrDuplicateOrOverlap)

	_, err = CellsToMultiPolygon([]Cell{sfCell, sfCellRes5})
	assert.ErrorIs(t, err, ErrInvalidResolution)

	_, err = CellsToMultiPolygon([]Cell{sfCell, 0})
	assert.ErrorIs(t, err, ErrMalformedIndex)
}
