package h3

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	sfLoop = GeoLoop{
		{Lat: 0.659966917655, Lng: -2.1364398519396},
		{Lat: 0.6595011102219, Lng: -2.1359434279405},
		{Lat: 0.6583348114025, Lng: -2.1354884206045},
		{Lat: 0.6581220034068, Lng: -2.1382437718946},
		{Lat: 0.6594479998527, Lng: -2.1384597563896},
		{Lat: 0.6599990002976, Lng: -2.1376771158464},
	}
	sfHole = GeoLoop{
		{Lat: 0.6595072188743, Lng: -2.1371053983433},
		{Lat: 0.6591482046471, Lng: -2.1373141048153},
		{Lat: 0.6592295020837, Lng: -2.1365222838402},
	}
)

func bruteForceFill(t *testing.T, p GeoPolygon, seed LatLng, res, k int) []Cell {
	t.Helper()
	origin, err := LatLngToCell(seed, res)
	require.NoError(t, err)
	disk, err := GridDisk(origin, k)
	require.NoError(t, err)

	var out []Cell
	for _, c := range disk {
		center, err := c.LatLng()
		require.NoError(t, err)
		if p.Contains(center) {
			out = append(out, c)
		}
	}
	return sorted(out)
}

func TestPolygonToCells(t *testing.T) {
	tests := []struct {
		name string
		p    GeoPolygon
		res  int
		want int
	}{
		{"Res9", GeoPolygon{GeoLoop: sfLoop}, 9, 1253},
		{"Res9WithHole", GeoPolygon{GeoLoop: sfLoop, Holes: []GeoLoop{sfHole}}, 9, 1214},
		{"Res7", GeoPolygon{GeoLoop: sfLoop}, 7, 28},
		{"TooCoarse", GeoPolygon{GeoLoop: sfLoop}, 5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PolygonToCells(tt.p, tt.res)
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
			for _, c := range got {
				center, err := c.LatLng()
				require.NoError(t, err)
				assert.True(t, tt.p.Contains(center), "%s", c)
			}
		})
	}
}

func TestPolygonToCellsMatchesScan(t *testing.T) {
	p := GeoPolygon{GeoLoop: sfLoop}
	got, err := PolygonToCells(p, 9)
	require.NoError(t, err)
	want := bruteForceFill(t, p, LatLng{Lat: 0.6590, Lng: -2.1369}, 9, 40)
	assert.Equal(t, want, got)
}

func TestPolygonToCellsTransmeridian(t *testing.T) {
	deg := math.Pi / 180
	p := GeoPolygon{GeoLoop: GeoLoop{
		{Lat: 1 * deg, Lng: 179.5 * deg},
		{Lat: 1 * deg, Lng: -179.5 * deg},
		{Lat: -1 * deg, Lng: -179.5 * deg},
		{Lat: -1 * deg, Lng: 179.5 * deg},
	}}
	assert.True(t, p.GeoLoop.BBox().IsTransmeridian())

	got, err := PolygonToCells(p, 5)
	require.NoError(t, err)
	assert.Len(t, got, 129)

	want := bruteForceFill(t, p, LatLng{Lng: math.Pi}, 5, 20)
	assert.Equal(t, want, got)
}

func TestPolygonToCellsErrors(t *testing.T) {
	got, err := PolygonToCells(GeoPolygon{}, 9)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = PolygonToCells(GeoPolygon{GeoLoop: sfLoop}, 16)
	assert.ErrorIs(t, err, ErrInvalidResolution)

	bad := GeoLoop{{Lat: math.NaN()}, {Lat: 0.1}, {Lng: 0.1}}
	_, err = PolygonToCells(GeoPolygon{GeoLoop: bad}, 3)
	assert.ErrorIs(t, err, ErrInvalidLatLng)
}

func TestPolygonContains(t *testing.T) {
	p := GeoPolygon{GeoLoop: sfLoop, Holes: []GeoLoop{sfHole}}
	assert.True(t, p.Contains(LatLng{Lat: 0.6588, Lng: -2.1375}))
	// inside the hole
	assert.False(t, p.Contains(LatLng{Lat: 0.6593, Lng: -2.1370}))
	assert.False(t, p.Contains(LatLng{Lat: 0.7, Lng: -2.1370}))

	b := sfLoop.BBox()
	assert.False(t, b.IsTransmeridian())
	assert.InDelta(t, 0.6599990002976, b.North, 1e-15)
	assert.InDelta(t, 0.6581220034068, b.South, 1e-15)
	assert.True(t, b.Contains(LatLng{Lat: 0.659, Lng: -2.137}))
}
