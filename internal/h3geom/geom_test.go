package h3geom

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexatiles/hexgrid/h3"
)

const sfCell h3.Cell = 0x8928308280fffff

func TestPolygonFromCell(t *testing.T) {
	poly, err := PolygonFromCell(sfCell)
	require.NoError(t, err)
	require.Len(t, poly, 1)

	ring := poly[0]
	require.Len(t, ring, 7)
	assert.True(t, ringClosed(ring))
	for _, pt := range ring {
		assert.InDelta(t, -122.418, pt.Lon(), 0.01)
		assert.InDelta(t, 37.775, pt.Lat(), 0.01)
	}

	_, err = PolygonFromCell(0)
	assert.ErrorIs(t, err, h3.ErrMalformedIndex)
}

func TestPolygonFromCellAntimeridian(t *testing.T) {
	cell, err := h3.LatLngToCell(h3.NewLatLng(0, 180), 5)
	require.NoError(t, err)

	poly, err := PolygonFromCell(cell)
	require.NoError(t, err)
	b := poly.Bound()
	assert.Less(t, b.Max.Lon()-b.Min.Lon(), 1.0)
}

func TestGeoPolygonRoundTrip(t *testing.T) {
	poly, err := PolygonFromCell(sfCell)
	require.NoError(t, err)

	gp := GeoPolygon(poly)
	assert.Len(t, gp.GeoLoop, 6)
	assert.Empty(t, gp.Holes)

	center, err := sfCell.LatLng()
	require.NoError(t, err)
	assert.True(t, gp.Contains(center))

	cells, err := h3.PolygonToCells(gp, 9)
	require.NoError(t, err)
	assert.Equal(t, []h3.Cell{sfCell}, cells)
}

func TestMultiPolygonFromCells(t *testing.T) {
	ring, err := h3.GridRing(sfCell, 1)
	require.NoError(t, err)

	mp, err := MultiPolygonFromCells(ring)
	require.NoError(t, err)
	require.Len(t, mp, 1)
	require.Len(t, mp[0], 2)
	assert.Len(t, mp[0][0], 19)
	assert.Len(t, mp[0][1], 7)
	assert.Equal(t, orb.CCW, mp[0][0].Orientation())
	assert.Equal(t, orb.CW, mp[0][1].Orientation())

	_, err = MultiPolygonFromCells([]h3.Cell{sfCell, sfCell})
	assert.ErrorIs(t, err, h3.ErrDuplicateOrOverlap)
}

func TestLineFromEdge(t *testing.T) {
	edges, err := h3.OriginToDirectedEdges(sfCell)
	require.NoError(t, err)
	require.Len(t, edges, 6)

	line, err := LineFromEdge(edges[0])
	require.NoError(t, err)
	assert.Len(t, line, 2)
}

func TestGeoPolygons(t *testing.T) {
	poly, err := PolygonFromCell(sfCell)
	require.NoError(t, err)

	tests := []struct {
		name    string
		geom    orb.Geometry
		want    int
		wantErr bool
	}{
		{"Polygon", poly, 1, false},
		{"MultiPolygon", orb.MultiPolygon{poly, poly}, 2, false},
		{"Bound", orb.Bound{Min: orb.Point{-122.5, 37.7}, Max: orb.Point{-122.3, 37.8}}, 1, false},
		{"LineString", orb.LineString{{0, 0}, {1, 1}}, 0, true},
		{"Nil", nil, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GeoPolygons(tt.geom)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedGeometry)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestPoint(t *testing.T) {
	pt := Point(h3.NewLatLng(37.5, -122.25))
	assert.InDelta(t, -122.25, pt.Lon(), 1e-12)
	assert.InDelta(t, 37.5, pt.Lat(), 1e-12)
}
