package h3

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexatiles/hexgrid/internal/basecell"
)

func TestNumCells(t *testing.T) {
	tests := []struct {
		res  int
		want int64
	}{
		{0, 122},
		{1, 842},
		{2, 5882},
		{15, 569707381193162},
	}
	for _, tt := range tests {
		got, err := NumCells(tt.res)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "res %d", tt.res)
	}

	_, err := NumCells(16)
	assert.ErrorIs(t, err, ErrInvalidResolution)
}

func TestRes0Cells(t *testing.T) {
	cells := Res0Cells()
	require.Len(t, cells, NumBaseCells)
	for b, c := range cells {
		assert.True(t, c.IsValid())
		assert.Equal(t, b, c.BaseCell())
		assert.Equal(t, 0, c.Resolution())
	}
}

func TestPentagons(t *testing.T) {
	for b := range pentagonBaseCells {
		assert.True(t, basecell.IsPentagon(pentagonBaseCells[b]))
	}

	res0, err := Pentagons(0)
	require.NoError(t, err)
	assert.Equal(t, []Cell{
		0x8009fffffffffff, 0x801dfffffffffff, 0x8031fffffffffff, 0x804dfffffffffff,
		0x8063fffffffffff, 0x8075fffffffffff, 0x807ffffffffffff, 0x8091fffffffffff,
		0x80a7fffffffffff, 0x80c3fffffffffff, 0x80d7fffffffffff, 0x80ebfffffffffff,
	}, res0)

	res1, err := Pentagons(1)
	require.NoError(t, err)
	assert.Equal(t, []Cell{
		0x81083ffffffffff, 0x811c3ffffffffff, 0x81303ffffffffff, 0x814c3ffffffffff,
		0x81623ffffffffff, 0x81743ffffffffff, 0x817e3ffffffffff, 0x81903ffffffffff,
		0x81a63ffffffffff, 0x81c23ffffffffff, 0x81d63ffffffffff, 0x81ea3ffffffffff,
	}, res1)

	for res := 0; res <= MaxResolution; res++ {
		pents, err := Pentagons(res)
		require.NoError(t, err)
		require.Len(t, pents, NumPentagons)
		for _, p := range pents {
			assert.True(t, p.IsPentagon(), "%s", p)
			assert.True(t, p.IsValid(), "%s", p)
		}
	}

	_, err = Pentagons(-1)
	assert.ErrorIs(t, err, ErrInvalidResolution)
}

func TestAveragesAreMonotonic(t *testing.T) {
	for res := 1; res <= MaxResolution; res++ {
		a, err := HexagonAreaAvgKm2(res)
		require.NoError(t, err)
		prev, err := HexagonAreaAvgKm2(res - 1)
		require.NoError(t, err)
		assert.Less(t, a, prev)

		l, err := HexagonEdgeLengthAvgKm(res)
		require.NoError(t, err)
		prevL, err := HexagonEdgeLengthAvgKm(res - 1)
		require.NoError(t, err)
		assert.Less(t, l, prevL)
	}

	m2, err := HexagonAreaAvgM2(9)
	require.NoError(t, err)
	assert.InDelta(t, 105332.5, m2, 1)
	m, err := HexagonEdgeLengthAvgM(9)
	require.NoError(t, err)
	assert.InDelta(t, 174.375668, m, 1e-6)

	_, err = HexagonAreaAvgKm2(16)
	assert.ErrorIs(t, err, ErrInvalidResolution)
	_, err = HexagonEdgeLengthAvgM(-1)
	assert.ErrorIs(t, err, ErrInvalidResolution)
}

func TestCellAreasCoverSphere(t *testing.T) {
	for _, res := range []int{0, 1} {
		cells, err := UncompactCells(Res0Cells(), res)
		require.NoError(t, err)

		total := 0.0
		for _, c := range cells {
			a, err := CellAreaRads2(c)
			require.NoError(t, err)
			assert.Greater(t, a, 0.0)
			total += a
		}
		assert.InDelta(t, 4*math.Pi, total, 1e-9, "res %d", res)
	}
}

func TestCellArea(t *testing.T) {
	a, err := CellAreaKm2(sfCell)
	require.NoError(t, err)
	assert.InDelta(t, 0.109398, a, 1e-5)

	_, err = CellAreaKm2(0)
	assert.ErrorIs(t, err, ErrMalformedIndex)
}

func TestGetIcosahedronFaces(t *testing.T) {
	faces, err := GetIcosahedronFaces(sfCell)
	require.NoError(t, err)
	assert.Equal(t, []int{sfCell.faceIJK().Face}, faces)

	for _, res := range []int{0, 1, 2, 5} {
		pents, err := Pentagons(res)
		require.NoError(t, err)
		for _, p := range pents {
			faces, err := GetIcosahedronFaces(p)
			require.NoError(t, err)
			assert.Len(t, faces, 5, "%s", p)
		}
	}

	for _, c := range Res0Cells() {
		faces, err := GetIcosahedronFaces(c)
		require.NoError(t, err)
		assert.NotEmpty(t, faces)
		assert.IsIncreasing(t, faces)
	}

	_, err = GetIcosahedronFaces(0)
	assert.ErrorIs(t, err, ErrMalformedIndex)
}
