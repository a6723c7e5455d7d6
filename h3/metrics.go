package h3

import (
	"fmt"
	"math"
)

var pentagonBaseCells = [NumPentagons]int{4, 14, 24, 38, 49, 58, 63, 72, 83, 97, 107, 117}

// Average hexagon metrics per resolution.
var (
	hexAreaKm2 = [MaxResolution + 1]float64{
		4250546.848, 607220.9782, 86745.85403, 12392.26486,
		1770.323552, 252.9033645, 36.1290521, 5.1612932,
		0.7373276, 0.1053325, 0.0150475, 0.0021496,
		0.0003071, 0.0000439, 0.0000063, 0.0000009,
	}
	edgeLengthKm = [MaxResolution + 1]float64{
		1107.712591, 418.6760055, 158.2446558, 59.81085794,
		22.6063794, 8.544408276, 3.229482772, 1.220629759,
		0.461354684, 0.174375668, 0.065907807, 0.024910561,
		0.009415526, 0.003559893, 0.001348575, 0.000509713,
	}
)

func checkRes(res int) error {
	if res < 0 || res > MaxResolution {
		return fmt.Errorf("%w: %d", ErrInvalidResolution, res)
	}
	return nil
}

// HexagonAreaAvgKm2 returns the average hexagon area at res.
func HexagonAreaAvgKm2(res int) (float64, error) {
	if err := checkRes(res); err != nil {
		return 0, err
	}
	return hexAreaKm2[res], nil
}

// HexagonAreaAvgM2 returns the average hexagon area at res in square meters.
func HexagonAreaAvgM2(res int) (float64, error) {
	a, err := HexagonAreaAvgKm2(res)
	return a * 1e6, err
}

// HexagonEdgeLengthAvgKm returns the average hexagon edge length at res.
func HexagonEdgeLengthAvgKm(res int) (float64, error) {
	if err := checkRes(res); err != nil {
		return 0, err
	}
	return edgeLengthKm[res], nil
}

// HexagonEdgeLengthAvgM returns the average hexagon edge length at res in
// meters.
func HexagonEdgeLengthAvgM(res int) (float64, error) {
	l, err := HexagonEdgeLengthAvgKm(res)
	return l * 1000, err
}

// NumCells returns the number of cells at res: 2 + 120 * 7^res.
func NumCells(res int) (int64, error) {
	if err := checkRes(res); err != nil {
		return 0, err
	}
	return 2 + 120*ipow(7, res), nil
}

// Res0Cells returns the 122 base cells in order.
func Res0Cells() []Cell {
	out := make([]Cell, NumBaseCells)
	for b := range out {
		out[b] = newCell(0, b)
	}
	return out
}

// Pentagons returns the twelve pentagons at res.
func Pentagons(res int) ([]Cell, error) {
	if err := checkRes(res); err != nil {
		return nil, err
	}
	out := make([]Cell, 0, NumPentagons)
	for _, b := range pentagonBaseCells {
		p := newCell(res, b)
		for r := 1; r <= res; r++ {
			p = p.withDigit(r, 0)
		}
		out = append(out, p)
	}
	return out, nil
}

// CellAreaRads2 returns the exact area of c on the unit sphere, summing the
// spherical triangles between its center and boundary edges.
func CellAreaRads2(c Cell) (float64, error) {
	if err := c.check(); err != nil {
		return 0, err
	}
	center := c.center()
	b := c.boundary(0, c.numVerts())

	area := 0.0
	for i := range b {
		area += triangleArea(b[i], b[(i+1)%len(b)], center)
	}
	return area, nil
}

// CellAreaKm2 is CellAreaRads2 on the earth.
func CellAreaKm2(c Cell) (float64, error) {
	a, err := CellAreaRads2(c)
	return a * EarthRadiusKm * EarthRadiusKm, err
}

// triangleArea returns the spherical excess of the triangle abc using
// l'Huilier's theorem.
func triangleArea(a, b, c LatLng) float64 {
	ab := GreatCircleDistanceRads(a, b)
	bc := GreatCircleDistanceRads(b, c)
	ca := GreatCircleDistanceRads(c, a)

	s := (ab + bc + ca) / 2
	x := (s - ab) / 2
	y := (s - bc) / 2
	z := (s - ca) / 2
	s /= 2
	return 4 * math.Atan(math.Sqrt(math.Tan(s)*math.Tan(x)*math.Tan(y)*math.Tan(z)))
}
