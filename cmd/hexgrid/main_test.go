package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexatiles/hexgrid/h3"
	"github.com/hexatiles/hexgrid/internal/h3geom"
)

const sfCell h3.Cell = 0x8928308280fffff

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func lines(s string) []string {
	return strings.Fields(s)
}

func TestIndexAndCenter(t *testing.T) {
	center, err := sfCell.LatLng()
	require.NoError(t, err)

	out, err := run(t, "index", "--res", "9", formatLatLng(center))
	require.NoError(t, err)
	assert.Equal(t, sfCell.String()+"\n", out)

	out, err = run(t, "center", sfCell.String())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, sfCell.String()+"\t37.77"))
}

func TestIndexErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"MissingComma", []string{"index", "37.7"}},
		{"BadNumber", []string{"index", "north,-122"}},
		{"BadResolution", []string{"index", "--res", "16", "37.7,-122.4"}},
		{"NoArgs", []string{"index"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestHierarchyCommands(t *testing.T) {
	out, err := run(t, "children", "--res", "10", sfCell.String())
	require.NoError(t, err)
	children := lines(out)
	require.Len(t, children, 7)

	out, err = run(t, append([]string{"compact"}, children...)...)
	require.NoError(t, err)
	assert.Equal(t, []string{sfCell.String()}, lines(out))

	out, err = run(t, "parent", children[3])
	require.NoError(t, err)
	assert.Equal(t, []string{sfCell.String()}, lines(out))

	out, err = run(t, "children", "--center", sfCell.String())
	require.NoError(t, err)
	assert.Equal(t, []string{children[0]}, lines(out))

	out, err = run(t, "uncompact", "--res", "10", sfCell.String())
	require.NoError(t, err)
	assert.Equal(t, children, lines(out))
}

func TestCellFilesRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "children.roar")
	_, err := run(t, "children", "--res", "11", "-o", path, sfCell.String())
	require.NoError(t, err)

	out, err := run(t, "compact", "--in", path)
	require.NoError(t, err)
	assert.Equal(t, []string{sfCell.String()}, lines(out))

	out, err = run(t, "compact", "--in", path, "--format", "zstd")
	require.NoError(t, err)
	assert.NotContains(t, out, sfCell.String())
}

func TestGridCommands(t *testing.T) {
	out, err := run(t, "disk", "-k", "1", sfCell.String())
	require.NoError(t, err)
	disk := lines(out)
	require.Len(t, disk, 7)
	assert.Equal(t, sfCell.String(), disk[0])

	out, err = run(t, "disk", "-k", "1", "--distances", sfCell.String())
	require.NoError(t, err)
	assert.Contains(t, out, sfCell.String()+"\t0\n")

	out, err = run(t, "ring", "-k", "1", sfCell.String())
	require.NoError(t, err)
	ring := lines(out)
	assert.Len(t, ring, 6)
	assert.ElementsMatch(t, disk[1:], ring)

	out, err = run(t, "neighbors", sfCell.String(), ring[0])
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)

	out, err = run(t, "distance", sfCell.String(), ring[0])
	require.NoError(t, err)
	assert.Contains(t, out, "grid distance")
	assert.Contains(t, out, " 1\n")
	assert.Contains(t, out, "angle")

	out, err = run(t, "path", sfCell.String(), ring[0])
	require.NoError(t, err)
	assert.Equal(t, []string{sfCell.String(), ring[0]}, lines(out))

	out, err = run(t, "local-ij", sfCell.String(), ring[0])
	require.NoError(t, err)
	ij := strings.TrimSpace(out)

	out, err = run(t, "local-ij", sfCell.String(), "--ij", ij)
	require.NoError(t, err)
	assert.Equal(t, ring[0]+"\n", out)
}

func TestDiskMergesOrigins(t *testing.T) {
	out, err := run(t, "ring", "-k", "1", sfCell.String())
	require.NoError(t, err)
	neighbor := lines(out)[0]

	out, err = run(t, "disk", "-k", "1", "--threads", "2", sfCell.String(), neighbor)
	require.NoError(t, err)
	cells := lines(out)
	seen := map[string]bool{}
	for _, c := range cells {
		assert.False(t, seen[c], "repeated %s", c)
		seen[c] = true
	}
	// two adjacent disks of radius one share four cells
	assert.Len(t, cells, 10)
}

func TestInspect(t *testing.T) {
	out, err := run(t, "inspect", sfCell.String())
	require.NoError(t, err)
	assert.Contains(t, out, sfCell.String())
	assert.Contains(t, out, "base cell:")
	assert.Contains(t, out, " 20\n")
	assert.Contains(t, out, "9 (class III)")
	assert.Contains(t, out, "pentagon:")

	_, err = run(t, "inspect", "not-a-cell")
	assert.Error(t, err)

	_, err = run(t, "inspect")
	assert.Error(t, err)
}

func TestBoundaryGeoJSON(t *testing.T) {
	out, err := run(t, "boundary", "--geojson", sfCell.String())
	require.NoError(t, err)
	fc, err := geojson.UnmarshalFeatureCollection([]byte(out))
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)
	poly, ok := fc.Features[0].Geometry.(orb.Polygon)
	require.True(t, ok)
	assert.Len(t, poly[0], 7)

	out, err = run(t, "boundary", sfCell.String())
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 7)
}

func TestEdgeCommand(t *testing.T) {
	out, err := run(t, "edge", sfCell.String())
	require.NoError(t, err)
	assert.Equal(t, 6, strings.Count(out, "destination:"))

	out, err = run(t, "edge", "--geojson", sfCell.String())
	require.NoError(t, err)
	fc, err := geojson.UnmarshalFeatureCollection([]byte(out))
	require.NoError(t, err)
	require.Len(t, fc.Features, 6)
	_, ok := fc.Features[0].Geometry.(orb.LineString)
	assert.True(t, ok)

	dest := fc.Features[0].Properties["destination"].(string)
	out, err = run(t, "edge", sfCell.String(), dest)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "destination:"))

	_, err = run(t, "edge", sfCell.String(), sfCell.String())
	assert.ErrorIs(t, err, h3.ErrNotNeighbors)
}

func TestPolyfillAndOutline(t *testing.T) {
	poly, err := h3geom.PolygonFromCell(sfCell)
	require.NoError(t, err)
	fc := geojson.NewFeatureCollection()
	fc.Append(geojson.NewFeature(poly))
	fc.Append(geojson.NewFeature(orb.Point{1, 2}))
	data, err := json.Marshal(fc)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "shape.geojson")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	out, err := run(t, "polyfill", "--geojson", path, "--res", "9")
	require.NoError(t, err)
	assert.Equal(t, []string{sfCell.String()}, lines(out))

	out, err = run(t, "polyfill", "--geojson", path, "--res", "10", "--compact")
	require.NoError(t, err)
	assert.Equal(t, []string{sfCell.String()}, lines(out))

	out, err = run(t, "disk", "-k", "1", sfCell.String())
	require.NoError(t, err)
	out, err = run(t, append([]string{"outline"}, lines(out)...)...)
	require.NoError(t, err)
	feature, err := geojson.UnmarshalFeature([]byte(out))
	require.NoError(t, err)
	mp, ok := feature.Geometry.(orb.MultiPolygon)
	require.True(t, ok)
	assert.Len(t, mp, 1)
	assert.Equal(t, 7.0, feature.Properties["cells"])
}

func TestPolyfillErrors(t *testing.T) {
	dir := t.TempDir()
	points := filepath.Join(dir, "points.geojson")
	require.NoError(t, os.WriteFile(points, []byte(`{"type":"Point","coordinates":[1,2]}`), 0o644))

	tests := []struct {
		name string
		args []string
	}{
		{"NoInput", []string{"polyfill"}},
		{"Both", []string{"polyfill", "--geojson", points, "--bbox", "0,0,1,1"}},
		{"BadBBox", []string{"polyfill", "--bbox", "0,0,1"}},
		{"InvertedBBox", []string{"polyfill", "--bbox", "1,1,0,0"}},
		{"OnlyPoints", []string{"polyfill", "--geojson", points}},
		{"MissingFile", []string{"polyfill", "--geojson", filepath.Join(dir, "nope.geojson")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestPolyfillBBox(t *testing.T) {
	out, err := run(t, "polyfill", "--bbox", "-122.52,37.70,-122.35,37.83", "--res", "6")
	require.NoError(t, err)
	cells := lines(out)
	require.NotEmpty(t, cells)
	for _, s := range cells {
		c, err := h3.ParseCell(s)
		require.NoError(t, err)
		assert.Equal(t, 6, c.Resolution())
	}
}

func TestInfo(t *testing.T) {
	out, err := run(t, "info", "--res", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "resolution 0")
	assert.Contains(t, out, " 122\n")

	out, err = run(t, "info")
	require.NoError(t, err)
	assert.Equal(t, h3.MaxResolution+1, strings.Count(out, "resolution "))
}

func TestSampleSchemaValidateExport(t *testing.T) {
	dir := t.TempDir()
	sample := filepath.Join(dir, "data", "sample.parquet")

	_, err := run(t, "sample", "-o", sample, "-c", "1", "-r", "8")
	require.NoError(t, err)

	out, err := run(t, "schema", "--in", sample)
	require.NoError(t, err)
	assert.Contains(t, out, "score: float")
	assert.Contains(t, out, "category: string")
	assert.Contains(t, out, "r8: 7")

	out, err = run(t, "validate", "--in", sample)
	require.NoError(t, err)
	assert.Contains(t, out, "rows:")
	assert.Contains(t, out, "7 valid: 7")

	out, err = run(t, "export", "--in", sample, "--props", "score", "--attributes", "h3,resolution")
	require.NoError(t, err)
	sc := bufio.NewScanner(strings.NewReader(out))
	count := 0
	for sc.Scan() {
		f, err := geojson.UnmarshalFeature(sc.Bytes())
		require.NoError(t, err)
		assert.Contains(t, f.Properties, "score")
		assert.Equal(t, 8.0, f.Properties["resolution"])
		assert.NotContains(t, f.Properties, "category")
		count++
	}
	assert.Equal(t, 7, count)
}

func TestValidateFailsOnInvalidCells(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cells.txt")
	require.NoError(t, os.WriteFile(path, []byte(sfCell.String()+"\nffffffffffffffff\n"), 0o644))

	out, err := run(t, "validate", "--in", path)
	assert.Error(t, err)
	assert.Contains(t, out, "invalid samples:")
}

func TestLogLevelFromEnvironment(t *testing.T) {
	t.Setenv("HEXGRID_LOG_LEVEL", "loud")
	_, err := run(t, "info", "--res", "0")
	assert.Error(t, err)
}

func TestPreviewHandler(t *testing.T) {
	disk, err := h3.GridDisk(sfCell, 1)
	require.NoError(t, err)
	handler, err := newPreviewHandler(disk, log.New(io.Discard))
	require.NoError(t, err)
	srv := httptest.NewServer(handler)
	defer srv.Close()

	get := func(path string) (*http.Response, []byte) {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp, body
	}

	resp, body := get("/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "hexgrid preview (7 cells)")

	resp, body = get("/cells.geojson")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	fc, err := geojson.UnmarshalFeatureCollection(body)
	require.NoError(t, err)
	assert.Len(t, fc.Features, 7)

	resp, body = get("/cell/" + sfCell.String())
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var attrs map[string]any
	require.NoError(t, json.Unmarshal(body, &attrs))
	assert.Equal(t, sfCell.String(), attrs["h3"])

	resp, _ = get("/cell/zz")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = get("/missing")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestParseHelpers(t *testing.T) {
	g, err := parseLatLng(" 10.5 , -20 ")
	require.NoError(t, err)
	lat, lng := h3.Degrees(g)
	assert.InDelta(t, 10.5, lat, 1e-12)
	assert.InDelta(t, -20, lng, 1e-12)

	b, err := parseBound("-1,-2,3,4")
	require.NoError(t, err)
	assert.Equal(t, orb.Bound{Min: orb.Point{-1, -2}, Max: orb.Point{3, 4}}, b)

	c, err := parseCellArg("0x" + sfCell.String())
	require.NoError(t, err)
	assert.Equal(t, sfCell, c)

	assert.Equal(t, []string{"a", "b", "c"}, parseList([]string{"a, b", ";c"}))
}
