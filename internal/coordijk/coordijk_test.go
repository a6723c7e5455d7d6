package coordijk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   CoordIJK
		want CoordIJK
	}{
		{CoordIJK{0, 0, 0}, CoordIJK{0, 0, 0}},
		{CoordIJK{2, 3, 4}, CoordIJK{0, 1, 2}},
		{CoordIJK{-1, 0, 0}, CoordIJK{0, 1, 1}},
		{CoordIJK{1, 1, 1}, CoordIJK{0, 0, 0}},
		{CoordIJK{-2, -3, 0}, CoordIJK{1, 0, 3}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.in.Normalize(), "%v", tt.in)
	}
}

func TestUnitVecsToDigit(t *testing.T) {
	for d := Center; d < InvalidDirection; d++ {
		assert.Equal(t, d, UnitVecs[d].ToDigit())
	}
	assert.Equal(t, InvalidDirection, CoordIJK{2, 0, 0}.ToDigit())
}

func TestApertureRoundTrip(t *testing.T) {
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			c := CoordIJK{I: i, J: j}.Normalize()
			assert.Equal(t, c, c.DownAp7().UpAp7(), "ap7 %v", c)
			assert.Equal(t, c, c.DownAp7r().UpAp7r(), "ap7r %v", c)
		}
	}
}

func TestRotationCycles(t *testing.T) {
	c := CoordIJK{3, 1, 0}
	ccw, cw := c, c
	for i := 0; i < 6; i++ {
		ccw = ccw.Rotate60ccw()
		cw = cw.Rotate60cw()
	}
	assert.Equal(t, c, ccw)
	assert.Equal(t, c, cw)
	assert.Equal(t, c, c.Rotate60ccw().Rotate60cw())

	for d := Center; d < InvalidDirection; d++ {
		assert.Equal(t, d, d.Rotate60ccw().Rotate60cw())
		assert.Equal(t, UnitVecs[d.Rotate60ccw()], UnitVecs[d].Rotate60ccw())
	}
	assert.Equal(t, InvalidDirection, InvalidDirection.Rotate60ccw())
}

func TestDistance(t *testing.T) {
	origin := CoordIJK{}
	for d := KAxes; d < InvalidDirection; d++ {
		assert.Equal(t, 1, Distance(origin, origin.Neighbor(d)))
	}
	assert.Equal(t, 0, Distance(origin, origin))
	assert.Equal(t, 3, Distance(CoordIJK{3, 0, 0}, origin))
	assert.Equal(t, 5, Distance(CoordIJK{3, 0, 0}, CoordIJK{0, 2, 0}))
}

func TestHex2dRoundTrip(t *testing.T) {
	for i := -4; i <= 4; i++ {
		for j := -4; j <= 4; j++ {
			c := FromIJ(i, j)
			assert.Equal(t, c, FromHex2d(c.ToHex2d()), "%d,%d", i, j)
		}
	}
}

func TestIJAndCube(t *testing.T) {
	for i := -3; i <= 3; i++ {
		for j := -3; j <= 3; j++ {
			c := FromIJ(i, j)
			gi, gj := c.ToIJ()
			assert.Equal(t, [2]int{i, j}, [2]int{gi, gj})

			cube := c.ToCube()
			assert.Equal(t, 0, cube.I+cube.J+cube.K)
			assert.Equal(t, c, FromCube(cube))
		}
	}
}

func TestCubeRound(t *testing.T) {
	assert.Equal(t, CoordIJK{1, -1, 0}, CubeRound(0.9, -1.1, 0.2))
	assert.Equal(t, CoordIJK{0, 0, 0}, CubeRound(0.1, 0.2, -0.3))
	r := CubeRound(1.6, -0.7, -0.9)
	assert.Equal(t, 0, r.I+r.J+r.K)
}

func TestIntersect(t *testing.T) {
	p := Intersect(Vec2d{0, 0}, Vec2d{2, 2}, Vec2d{0, 2}, Vec2d{2, 0})
	assert.True(t, p.AlmostEqual(Vec2d{1, 1}))
	assert.InDelta(t, 5.0, Vec2d{3, 4}.Magnitude(), 1e-12)
}
