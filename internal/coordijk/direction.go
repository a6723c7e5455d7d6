package coordijk

import "math"

// Direction is a digit of a cell index: the unit vector from a parent's
// center child to one of its seven children.
type Direction int

const (
	Center Direction = iota
	KAxes
	JAxes
	JKAxes
	IAxes
	IKAxes
	IJAxes
	InvalidDirection
)

// UnitVecs holds the unit vector of every direction.
var UnitVecs = [7]CoordIJK{
	{0, 0, 0}, // Center
	{0, 0, 1}, // KAxes
	{0, 1, 0}, // JAxes
	{0, 1, 1}, // JKAxes
	{1, 0, 0}, // IAxes
	{1, 0, 1}, // IKAxes
	{1, 1, 0}, // IJAxes
}

var rotate60ccw = [8]Direction{Center, IKAxes, JKAxes, KAxes, IJAxes, IAxes, JAxes, InvalidDirection}

var rotate60cw = [8]Direction{Center, JKAxes, IJAxes, JAxes, IKAxes, KAxes, IAxes, InvalidDirection}

// Rotate60ccw rotates d 60° counter-clockwise.
func (d Direction) Rotate60ccw() Direction {
	if d < Center || d > InvalidDirection {
		return InvalidDirection
	}
	return rotate60ccw[d]
}

// Rotate60cw rotates d 60° clockwise.
func (d Direction) Rotate60cw() Direction {
	if d < Center || d > InvalidDirection {
		return InvalidDirection
	}
	return rotate60cw[d]
}

// Valid reports whether d is one of the seven digits.
func (d Direction) Valid() bool {
	return d >= Center && d < InvalidDirection
}

const epsilon = 1.1920929e-7

// AlmostEqual reports whether two points coincide within float32 precision.
func (v Vec2d) AlmostEqual(o Vec2d) bool {
	return math.Abs(v.X-o.X) < epsilon && math.Abs(v.Y-o.Y) < epsilon
}

// Magnitude returns the length of v.
func (v Vec2d) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Intersect returns the intersection of the lines through p0, p1 and
// through p2, p3.
func Intersect(p0, p1, p2, p3 Vec2d) Vec2d {
	s1 := Vec2d{X: p1.X - p0.X, Y: p1.Y - p0.Y}
	s2 := Vec2d{X: p3.X - p2.X, Y: p3.Y - p2.Y}

	t := (s2.X*(p0.Y-p2.Y) - s2.Y*(p0.X-p2.X)) / (-s2.X*s1.Y + s1.X*s2.Y)
	return Vec2d{X: p0.X + t*s1.X, Y: p0.Y + t*s1.Y}
}
