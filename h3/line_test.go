package h3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalIJRoundTrip(t *testing.T) {
	cells, err := GridDisk(sfCell, 5)
	require.NoError(t, err)

	for _, c := range cells {
		ij, err := CellToLocalIJ(sfCell, c)
		require.NoError(t, err, "%s", c)
		back, err := LocalIJToCell(sfCell, ij)
		require.NoError(t, err, "%s", c)
		assert.Equal(t, c, back)
	}
}

func TestLocalIJAcrossBaseCells(t *testing.T) {
	for _, c := range Res0Cells() {
		if c.IsPentagon() {
			continue
		}
		disk, err := GridDisk(c, 1)
		require.NoError(t, err)
		for _, n := range disk {
			ij, err := CellToLocalIJ(c, n)
			require.NoError(t, err, "%s -> %s", c, n)
			back, err := LocalIJToCell(c, ij)
			require.NoError(t, err)
			assert.Equal(t, n, back)
		}
	}
}

func TestLocalIJErrors(t *testing.T) {
	parent, err := CellToParent(sfCell, 5)
	require.NoError(t, err)
	_, err = CellToLocalIJ(sfCell, parent)
	assert.ErrorIs(t, err, ErrIncompatible)

	far, err := LatLngToCell(NewLatLng(-33.8688, 151.2093), 9)
	require.NoError(t, err)
	_, err = CellToLocalIJ(sfCell, far)
	assert.ErrorIs(t, err, ErrIncompatible)

	_, err = CellToLocalIJ(0, sfCell)
	assert.ErrorIs(t, err, ErrMalformedIndex)
}

func TestGridDistance(t *testing.T) {
	cells, dist, err := GridDiskDistances(sfCell, 6)
	require.NoError(t, err)
	for i, c := range cells {
		d, err := GridDistance(sfCell, c)
		require.NoError(t, err)
		assert.Equal(t, dist[i], d, "%s", c)

		back, err := GridDistance(c, sfCell)
		require.NoError(t, err)
		assert.Equal(t, d, back, "%s", c)
	}

	far, err := LatLngToCell(NewLatLng(-33.8688, 151.2093), 9)
	require.NoError(t, err)
	_, err = GridDistance(sfCell, far)
	assert.ErrorIs(t, err, ErrIncompatible)
}

func TestGridPath(t *testing.T) {
	ring, err := GridRing(sfCell, 6)
	require.NoError(t, err)

	for _, end := range ring {
		path, err := GridPath(sfCell, end)
		require.NoError(t, err)
		require.Len(t, path, 7)
		assert.Equal(t, sfCell, path[0])
		assert.Equal(t, end, path[len(path)-1])

		for i := 1; i < len(path); i++ {
			ok, err := AreNeighbors(path[i-1], path[i])
			require.NoError(t, err)
			assert.True(t, ok, "%s -> %s", path[i-1], path[i])
		}

		size, err := GridPathSize(sfCell, end)
		require.NoError(t, err)
		assert.Equal(t, len(path), size)
	}

	path, err := GridPath(sfCell, sfCell)
	require.NoError(t, err)
	assert.Equal(t, []Cell{sfCell}, path)
}

func TestGridPathAcrossCity(t *testing.T) {
	a, err := LatLngToCell(NewLatLng(37.7955, -122.3937), 9)
	require.NoError(t, err)
	b, err := LatLngToCell(NewLatLng(37.7599, -122.4869), 9)
	require.NoError(t, err)

	d, err := GridDistance(a, b)
	require.NoError(t, err)
	path, err := GridPath(a, b)
	require.NoError(t, err)
	assert.Len(t, path, d+1)

	seen := make(map[Cell]bool)
	for _, c := range path {
		assert.False(t, seen[c], "repeated %s", c)
		seen[c] = true
	}
}
