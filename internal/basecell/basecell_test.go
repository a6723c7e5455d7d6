package basecell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexatiles/hexgrid/internal/coordijk"
	"github.com/hexatiles/hexgrid/internal/faceijk"
)

func TestPentagons(t *testing.T) {
	var got []int
	for b := 0; b < NumBaseCells; b++ {
		if IsPentagon(b) {
			got = append(got, b)
		}
	}
	assert.Equal(t, []int{4, 14, 24, 38, 49, 58, 63, 72, 83, 97, 107, 117}, got)
	assert.Len(t, got, NumPentagons)

	assert.True(t, IsPolarPentagon(4))
	assert.True(t, IsPolarPentagon(117))
	assert.False(t, IsPolarPentagon(14))
	assert.False(t, IsPentagon(-1))
	assert.False(t, IsPentagon(NumBaseCells))
}

func TestHomeFaceLookup(t *testing.T) {
	for b := 0; b < NumBaseCells; b++ {
		got, rot, ok := FromFaceIJK(Get(b).Home)
		require.True(t, ok, "base cell %d", b)
		assert.Equal(t, b, got)
		assert.Equal(t, 0, rot, "base cell %d", b)
	}

	_, _, ok := FromFaceIJK(faceijk.FaceIJK{Coord: coordijk.CoordIJK{I: 3}})
	assert.False(t, ok)
}

func TestNeighbors(t *testing.T) {
	for b := 0; b < NumBaseCells; b++ {
		assert.Equal(t, b, Neighbor(b, coordijk.Center))
		assert.Equal(t, 0, NeighborRotations(b, coordijk.Center))

		for d := coordijk.KAxes; d < coordijk.InvalidDirection; d++ {
			n := Neighbor(b, d)
			if n == Invalid {
				// only the deleted direction of a pentagon is missing
				assert.True(t, IsPentagon(b))
				assert.Equal(t, coordijk.KAxes, d)
				continue
			}
			assert.True(t, Valid(n))
			assert.Equal(t, d, Direction(b, n))
			assert.NotEqual(t, coordijk.InvalidDirection, Direction(n, b), "%d -> %d", b, n)

			rot := NeighborRotations(b, d)
			assert.GreaterOrEqual(t, rot, 0)
			assert.Less(t, rot, 6)
		}
	}

	assert.Equal(t, Invalid, Neighbor(0, coordijk.InvalidDirection))
	assert.Equal(t, -1, NeighborRotations(NumBaseCells, coordijk.KAxes))
}

func TestCwOffset(t *testing.T) {
	for b := 0; b < NumBaseCells; b++ {
		d := Get(b)
		if !d.Pentagon {
			assert.False(t, IsCwOffset(b, d.Home.Face))
			continue
		}
		for _, f := range d.CwOffsetPent {
			if f >= 0 {
				assert.True(t, IsCwOffset(b, f))
			}
		}
	}
}
