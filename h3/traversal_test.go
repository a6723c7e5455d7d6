package h3

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	sfRing1 = []Cell{
		0x89283082803ffff, 0x8928308280bffff, 0x89283082873ffff,
		0x89283082877ffff, 0x8928308283bffff, 0x89283082807ffff,
	}
	sfRing2 = []Cell{
		0x89283082813ffff, 0x8928308281bffff, 0x89283082857ffff, 0x89283082847ffff,
		0x8928308287bffff, 0x89283082863ffff, 0x89283082867ffff, 0x8928308282bffff,
		0x89283082823ffff, 0x89283082833ffff, 0x892830828abffff, 0x89283082817ffff,
	}
	res1Pentagon Cell = 0x81083ffffffffff
)

func sorted(cells []Cell) []Cell {
	out := slices.Clone(cells)
	slices.Sort(out)
	return out
}

func TestMaxGridDiskSize(t *testing.T) {
	assert.Equal(t, 1, MaxGridDiskSize(0))
	assert.Equal(t, 7, MaxGridDiskSize(1))
	assert.Equal(t, 19, MaxGridDiskSize(2))
	assert.Equal(t, 0, MaxGridDiskSize(-1))
}

func TestGridDisk(t *testing.T) {
	disk, err := GridDisk(sfCell, 1)
	require.NoError(t, err)
	require.Len(t, disk, 7)
	assert.Equal(t, sfCell, disk[0])
	assert.Equal(t, sorted(sfRing1), sorted(disk[1:]))

	cells, dist, err := GridDiskDistances(sfCell, 2)
	require.NoError(t, err)
	require.Len(t, cells, 19)
	var ring2 []Cell
	for i, c := range cells {
		if dist[i] == 2 {
			ring2 = append(ring2, c)
		}
	}
	assert.Equal(t, sorted(sfRing2), sorted(ring2))

	disk, err = GridDisk(sfCell, 0)
	require.NoError(t, err)
	assert.Equal(t, []Cell{sfCell}, disk)
}

func TestGridDiskErrors(t *testing.T) {
	_, err := GridDisk(sfCell, -1)
	assert.ErrorIs(t, err, ErrNegativeK)
	assert.NotErrorIs(t, err, ErrIncompatible)
	_, err = GridDisk(0, 1)
	assert.ErrorIs(t, err, ErrMalformedIndex)
	_, err = GridDiskUnsafe(sfCell, -2)
	assert.ErrorIs(t, err, ErrNegativeK)
	_, err = GridRing(sfCell, -1)
	assert.ErrorIs(t, err, ErrNegativeK)
}

func TestGridDiskAroundPentagon(t *testing.T) {
	cells, dist, err := GridDiskDistances(res1Pentagon, 2)
	require.NoError(t, err)
	assert.Len(t, cells, 16)
	assert.Equal(t, res1Pentagon, cells[0])

	var ring1 []Cell
	for i, c := range cells {
		if dist[i] == 1 {
			ring1 = append(ring1, c)
		}
	}
	assert.Equal(t, []Cell{
		0x8108bffffffffff, 0x8108fffffffffff, 0x81093ffffffffff, 0x81097ffffffffff, 0x8109bffffffffff,
	}, sorted(ring1))

	_, err = GridDiskUnsafe(res1Pentagon, 1)
	assert.ErrorIs(t, err, ErrPentagon)
	_, err = GridRingUnsafe(res1Pentagon, 1)
	assert.ErrorIs(t, err, ErrPentagon)

	ring, err := GridRing(res1Pentagon, 1)
	require.NoError(t, err)
	assert.Equal(t, sorted(ring1), sorted(ring))
}

func TestGridDiskUnsafeOrder(t *testing.T) {
	disk, err := GridDiskUnsafe(sfCell, 1)
	require.NoError(t, err)
	// the walk ends back on the first cell of the ring
	want := append([]Cell{sfCell}, sfRing1[1:]...)
	want = append(want, sfRing1[0])
	assert.Equal(t, want, disk)

	cells, dist, err := GridDiskDistancesUnsafe(sfCell, 2)
	require.NoError(t, err)
	assert.Len(t, cells, 19)
	assert.Equal(t, 0, dist[0])
	assert.Equal(t, 2, dist[18])

	disks, err := GridDisksUnsafe([]Cell{sfCell, sfRing1[0]}, 1)
	require.NoError(t, err)
	require.Len(t, disks, 2)
	assert.Equal(t, disk, disks[0])
	assert.Equal(t, sfRing1[0], disks[1][0])

	_, err = GridDisksUnsafe([]Cell{sfCell, res1Pentagon}, 1)
	assert.ErrorIs(t, err, ErrPentagon)
}

func TestGridRing(t *testing.T) {
	tests := []struct {
		name string
		k    int
		want []Cell
	}{
		{"Zero", 0, []Cell{sfCell}},
		{"One", 1, sfRing1},
		{"Two", 2, sfRing2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GridRingUnsafe(sfCell, tt.k)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			got, err = GridRing(sfCell, tt.k)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	ring, err := GridRing(sfCell, 5)
	require.NoError(t, err)
	assert.Len(t, ring, 30)
}

func TestRingMatchesDiskDistances(t *testing.T) {
	cells, dist, err := GridDiskDistances(sfCell, 4)
	require.NoError(t, err)
	for k := 0; k <= 4; k++ {
		var want []Cell
		for i, c := range cells {
			if dist[i] == k {
				want = append(want, c)
			}
		}
		got, err := GridRing(sfCell, k)
		require.NoError(t, err)
		assert.Equal(t, sorted(want), sorted(got), "k %d", k)
	}
}

func TestAreNeighbors(t *testing.T) {
	for _, n := range sfRing1 {
		ok, err := AreNeighbors(sfCell, n)
		require.NoError(t, err)
		assert.True(t, ok, "%s", n)

		ok, err = AreNeighbors(n, sfCell)
		require.NoError(t, err)
		assert.True(t, ok, "%s", n)
	}
	for _, n := range sfRing2 {
		ok, err := AreNeighbors(sfCell, n)
		require.NoError(t, err)
		assert.False(t, ok, "%s", n)
	}

	ok, err := AreNeighbors(sfCell, sfCell)
	require.NoError(t, err)
	assert.False(t, ok)

	parent, err := CellToParent(sfCell, 8)
	require.NoError(t, err)
	ok, err = AreNeighbors(sfCell, parent)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = AreNeighbors(sfCell, 0)
	assert.ErrorIs(t, err, ErrMalformedIndex)
}

func TestNeighborsAreSymmetric(t *testing.T) {
	for _, c := range Res0Cells() {
		disk, err := GridDisk(c, 1)
		require.NoError(t, err)
		if c.IsPentagon() {
			assert.Len(t, disk, 6)
		} else {
			assert.Len(t, disk, 7)
		}
		for _, n := range disk[1:] {
			ok, err := AreNeighbors(n, c)
			require.NoError(t, err)
			assert.True(t, ok, "%s -> %s", n, c)
		}
	}
}
