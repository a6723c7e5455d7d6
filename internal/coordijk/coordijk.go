// Package coordijk implements the three-axis IJK coordinate system of a
// hexagonal lattice on a single icosahedron face, and the aperture 3 and 7
// transforms between lattices of adjacent resolutions.
package coordijk

import "math"

// Sqrt3Over2 is sin(60°).
const Sqrt3Over2 = 0.8660254037844386467637231707529361834714

// CoordIJK is a lattice coordinate on the i, j and k axes, which are 120°
// apart. A normalized coordinate has no negative component and at least one
// zero component.
type CoordIJK struct {
	I, J, K int
}

// Vec2d is a point in the 2D plane of a face.
type Vec2d struct {
	X, Y float64
}

// Add returns c + o.
func (c CoordIJK) Add(o CoordIJK) CoordIJK {
	return CoordIJK{c.I + o.I, c.J + o.J, c.K + o.K}
}

// Sub returns c - o.
func (c CoordIJK) Sub(o CoordIJK) CoordIJK {
	return CoordIJK{c.I - o.I, c.J - o.J, c.K - o.K}
}

// Scale multiplies every component by factor.
func (c CoordIJK) Scale(factor int) CoordIJK {
	return CoordIJK{c.I * factor, c.J * factor, c.K * factor}
}

// Normalize returns the canonical form of c.
func (c CoordIJK) Normalize() CoordIJK {
	if c.I < 0 {
		c.J -= c.I
		c.K -= c.I
		c.I = 0
	}
	if c.J < 0 {
		c.I -= c.J
		c.K -= c.J
		c.J = 0
	}
	if c.K < 0 {
		c.I -= c.K
		c.J -= c.K
		c.K = 0
	}

	m := min(c.I, c.J, c.K)
	if m > 0 {
		c.I -= m
		c.J -= m
		c.K -= m
	}
	return c
}

// Neighbor returns the normalized coordinate one step away in direction d.
// Center and invalid directions return c unchanged.
func (c CoordIJK) Neighbor(d Direction) CoordIJK {
	if d > Center && d < InvalidDirection {
		return c.Add(UnitVecs[d]).Normalize()
	}
	return c
}

// ToDigit returns the direction matching a unit vector, or InvalidDirection.
func (c CoordIJK) ToDigit() Direction {
	n := c.Normalize()
	for d := Center; d < InvalidDirection; d++ {
		if n == UnitVecs[d] {
			return d
		}
	}
	return InvalidDirection
}

func (c CoordIJK) linear(iVec, jVec, kVec CoordIJK) CoordIJK {
	return iVec.Scale(c.I).Add(jVec.Scale(c.J)).Add(kVec.Scale(c.K)).Normalize()
}

// UpAp7 returns the parent coordinate in a counter-clockwise aperture 7 grid.
func (c CoordIJK) UpAp7() CoordIJK {
	i := c.I - c.K
	j := c.J - c.K
	return CoordIJK{
		I: int(math.Round(float64(3*i-j) / 7.0)),
		J: int(math.Round(float64(i+2*j) / 7.0)),
	}.Normalize()
}

// UpAp7r returns the parent coordinate in a clockwise aperture 7 grid.
func (c CoordIJK) UpAp7r() CoordIJK {
	i := c.I - c.K
	j := c.J - c.K
	return CoordIJK{
		I: int(math.Round(float64(2*i+j) / 7.0)),
		J: int(math.Round(float64(3*j-i) / 7.0)),
	}.Normalize()
}

// DownAp7 returns the center child coordinate in a counter-clockwise
// aperture 7 grid.
func (c CoordIJK) DownAp7() CoordIJK {
	return c.linear(CoordIJK{3, 0, 1}, CoordIJK{1, 3, 0}, CoordIJK{0, 1, 3})
}

// DownAp7r returns the center child coordinate in a clockwise aperture 7 grid.
func (c CoordIJK) DownAp7r() CoordIJK {
	return c.linear(CoordIJK{3, 1, 0}, CoordIJK{0, 3, 1}, CoordIJK{1, 0, 3})
}

// DownAp3 returns the center coordinate in a counter-clockwise aperture 3
// grid.
func (c CoordIJK) DownAp3() CoordIJK {
	return c.linear(CoordIJK{2, 0, 1}, CoordIJK{1, 2, 0}, CoordIJK{0, 1, 2})
}

// DownAp3r returns the center coordinate in a clockwise aperture 3 grid.
func (c CoordIJK) DownAp3r() CoordIJK {
	return c.linear(CoordIJK{2, 1, 0}, CoordIJK{0, 2, 1}, CoordIJK{1, 0, 2})
}

// Rotate60ccw rotates c 60° counter-clockwise about the origin.
func (c CoordIJK) Rotate60ccw() CoordIJK {
	return c.linear(CoordIJK{1, 1, 0}, CoordIJK{0, 1, 1}, CoordIJK{1, 0, 1})
}

// Rotate60cw rotates c 60° clockwise about the origin.
func (c CoordIJK) Rotate60cw() CoordIJK {
	return c.linear(CoordIJK{1, 0, 1}, CoordIJK{1, 1, 0}, CoordIJK{0, 1, 1})
}

// Distance returns the lattice distance between a and b.
func Distance(a, b CoordIJK) int {
	d := a.Sub(b).Normalize()
	return max(abs(d.I), abs(d.J), abs(d.K))
}

// ToHex2d returns the center point of c in the face plane.
func (c CoordIJK) ToHex2d() Vec2d {
	i := float64(c.I - c.K)
	j := float64(c.J - c.K)
	return Vec2d{X: i - 0.5*j, Y: j * Sqrt3Over2}
}

// FromHex2d returns the lattice coordinate of the cell containing v.
func FromHex2d(v Vec2d) CoordIJK {
	a1 := math.Abs(v.X)
	a2 := math.Abs(v.Y)

	// reverse the conversion into the first sextant
	x2 := a2 / Sqrt3Over2
	x1 := a1 + x2/2.0

	m1 := int(x1)
	m2 := int(x2)

	r1 := x1 - float64(m1)
	r2 := x2 - float64(m2)

	var h CoordIJK
	if r1 < 0.5 {
		if r1 < 1.0/3.0 {
			if r2 < (1.0+r1)/2.0 {
				h.I, h.J = m1, m2
			} else {
				h.I, h.J = m1, m2+1
			}
		} else {
			if r2 < (1.0 - r1) {
				h.J = m2
			} else {
				h.J = m2 + 1
			}
			if (1.0-r1) <= r2 && r2 < (2.0*r1) {
				h.I = m1 + 1
			} else {
				h.I = m1
			}
		}
	} else {
		if r1 < 2.0/3.0 {
			if r2 < (1.0 - r1) {
				h.J = m2
			} else {
				h.J = m2 + 1
			}
			if (2.0*r1-1.0) < r2 && r2 < (1.0-r1) {
				h.I = m1
			} else {
				h.I = m1 + 1
			}
		} else {
			if r2 < (r1 / 2.0) {
				h.I, h.J = m1+1, m2
			} else {
				h.I, h.J = m1+1, m2+1
			}
		}
	}

	// fold across the axes if necessary
	if v.X < 0.0 {
		if h.J%2 == 0 {
			axisi := h.J / 2
			diff := h.I - axisi
			h.I -= 2 * diff
		} else {
			axisi := (h.J + 1) / 2
			diff := h.I - axisi
			h.I -= 2*diff + 1
		}
	}
	if v.Y < 0.0 {
		h.I -= (2*h.J + 1) / 2
		h.J = -h.J
	}

	return h.Normalize()
}

// ToIJ converts c to the two-axis IJ form.
func (c CoordIJK) ToIJ() (i, j int) {
	return c.I - c.K, c.J - c.K
}

// FromIJ converts a two-axis IJ coordinate to normalized IJK.
func FromIJ(i, j int) CoordIJK {
	return CoordIJK{I: i, J: j}.Normalize()
}

// ToCube converts c to cube coordinates, where i + j + k == 0.
func (c CoordIJK) ToCube() CoordIJK {
	i := -c.I + c.K
	j := c.J - c.K
	return CoordIJK{I: i, J: j, K: -i - j}
}

// FromCube converts cube coordinates back to normalized IJK.
func FromCube(c CoordIJK) CoordIJK {
	return CoordIJK{I: -c.I, J: c.J}.Normalize()
}

// CubeRound returns the cube coordinate nearest to the fractional cube
// coordinate (i, j, k).
func CubeRound(i, j, k float64) CoordIJK {
	ri := math.Round(i)
	rj := math.Round(j)
	rk := math.Round(k)

	iDiff := math.Abs(ri - i)
	jDiff := math.Abs(rj - j)
	kDiff := math.Abs(rk - k)

	// the component with the largest rounding error is recomputed
	switch {
	case iDiff > jDiff && iDiff > kDiff:
		ri = -rj - rk
	case jDiff > kDiff:
		rj = -ri - rk
	default:
		rk = -ri - rj
	}
	return CoordIJK{I: int(ri), J: int(rj), K: int(rk)}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
