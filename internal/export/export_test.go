package export

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexatiles/hexgrid/h3"
	"github.com/hexatiles/hexgrid/internal/cellio"
	parquetio "github.com/hexatiles/hexgrid/internal/parquet"
)

const sfCell h3.Cell = 0x8928308280fffff

func writeInput(t *testing.T, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644))
	return path
}

func decodeLines(t *testing.T, r io.Reader) []*geojson.Feature {
	t.Helper()
	var out []*geojson.Feature
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 1<<16), 1<<20)
	for sc.Scan() {
		f, err := geojson.UnmarshalFeature(sc.Bytes())
		require.NoError(t, err)
		out = append(out, f)
	}
	require.NoError(t, sc.Err())
	return out
}

func TestRunNDJSONPreservesOrder(t *testing.T) {
	disk, err := h3.GridDisk(sfCell, 3)
	require.NoError(t, err)
	lines := make([]string, 0, len(disk))
	for _, c := range disk {
		lines = append(lines, c.String())
	}
	in := writeInput(t, "cells.txt", lines...)
	out := filepath.Join(t.TempDir(), "out", "cells.ndjson")
	reportPath := filepath.Join(t.TempDir(), "report.html")

	res, err := Run(context.Background(), Options{
		InputPath:     in,
		OutputPath:    out,
		Threads:       4,
		ReportPath:    reportPath,
		MaxResolution: -1,
	})
	require.NoError(t, err)

	m := res.Report.Metrics
	assert.Equal(t, int64(len(disk)), m.TotalRows)
	assert.Equal(t, int64(len(disk)), m.EmittedFeatures)
	assert.Equal(t, map[int]int64{9: int64(len(disk))}, m.ResolutionHistogram)
	assert.Greater(t, m.OutputSize, int64(0))
	total := 0.0
	for _, c := range disk {
		a, err := h3.CellAreaKm2(c)
		require.NoError(t, err)
		total += a
	}
	assert.InDelta(t, total, m.TotalAreaKm2, 1e-9)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	features := decodeLines(t, f)
	require.Len(t, features, len(disk))
	for i, feat := range features {
		assert.Equal(t, disk[i].String(), feat.ID)
		assert.Equal(t, disk[i].String(), feat.Properties["h3"])
		poly, ok := feat.Geometry.(orb.Polygon)
		require.True(t, ok)
		assert.Len(t, poly[0], 7)
		assert.NotNil(t, feat.BBox)
	}

	_, err = os.Stat(reportPath)
	assert.NoError(t, err)
}

func TestRunDropsAndWarnings(t *testing.T) {
	parent, err := sfCell.Parent(2)
	require.NoError(t, err)
	in := writeInput(t, "cells.txt",
		sfCell.String(),
		"not-a-cell",
		sfCell.String(),
		parent.String(),
	)

	var stdout bytes.Buffer
	res, err := Run(context.Background(), Options{
		InputPath:     in,
		OutputPath:    "-",
		Stdout:        &stdout,
		Geometry:      GeometryCenter,
		Attributes:    []string{"h3", "center_lat"},
		QuantizeSpec:  "center_lat=0.5",
		MinResolution: 5,
		MaxResolution: -1,
		Dedupe:        true,
		Threads:       2,
	})
	require.NoError(t, err)

	m := res.Report.Metrics
	assert.Equal(t, int64(4), m.TotalRows)
	assert.Equal(t, int64(1), m.EmittedFeatures)
	assert.Equal(t, int64(1), m.DroppedInvalid)
	assert.Equal(t, int64(1), m.DroppedDuplicate)
	assert.Equal(t, int64(1), m.DroppedResolution)
	assert.True(t, m.QuantizeApplied)
	assert.Equal(t, 2, m.MinResolutionSeen)
	assert.Equal(t, 9, m.MaxResolutionSeen)
	assert.Len(t, m.Warnings, 2)

	features := decodeLines(t, &stdout)
	require.Len(t, features, 1)
	_, ok := features[0].Geometry.(orb.Point)
	assert.True(t, ok)
	assert.Len(t, features[0].Properties, 2)
	assert.Equal(t, 38.0, features[0].Properties["center_lat"])
}

func TestRunParquetWithProperties(t *testing.T) {
	in := filepath.Join(t.TempDir(), "in.parquet")
	w, err := parquetio.NewWriter(in)
	require.NoError(t, err)
	require.NoError(t, w.Write([]parquetio.CellRecord{
		{H3: sfCell.String(), Resolution: 1},
		{H3: "8009fffffffffff", Resolution: 2},
	}))
	require.NoError(t, w.Close())

	out := filepath.Join(t.TempDir(), "out.parquet")
	res, err := Run(context.Background(), Options{
		InputPath:       in,
		OutputPath:      out,
		PropertyInclude: []string{"resolution"},
		Threads:         1,
		MaxResolution:   -1,
	})
	require.NoError(t, err)
	assert.Equal(t, FormatParquet, res.Report.Config.Format)
	assert.Equal(t, int64(2), res.Report.Metrics.EmittedFeatures)
	assert.Equal(t, int64(1), res.Report.Metrics.Pentagons)

	r, err := parquetio.NewReader(out, parquetio.ReaderOptions{})
	require.NoError(t, err)
	defer r.Close()

	var rows []*parquetio.Row
	for {
		row, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		rows = append(rows, row)
	}
	require.Len(t, rows, 2)
	assert.Equal(t, sfCell, rows[0].Cell)
	assert.Equal(t, int32(9), rows[0].Properties["resolution"])
	assert.Equal(t, `{"resolution":1}`, rows[0].Properties["properties"])
	assert.Equal(t, true, rows[1].Properties["pentagon"])
}

func TestRunPropertyCap(t *testing.T) {
	in := filepath.Join(t.TempDir(), "in.parquet")
	w, err := parquetio.NewWriter(in)
	require.NoError(t, err)
	require.NoError(t, w.Write([]parquetio.CellRecord{
		{H3: sfCell.String(), Properties: strings.Repeat("x", 64)},
	}))
	require.NoError(t, w.Close())

	res, err := Run(context.Background(), Options{
		InputPath:       in,
		OutputPath:      "-",
		Stdout:          io.Discard,
		PropertyInclude: []string{"properties"},
		PropertyByteCap: 32,
		MaxResolution:   -1,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Report.Metrics.DroppedPropertyCap)
	assert.Len(t, res.Report.Metrics.PropertyWarnings, 1)

	res, err = Run(context.Background(), Options{
		InputPath:       in,
		OutputPath:      "-",
		Stdout:          io.Discard,
		PropertyInclude: []string{"properties"},
		PropertyByteCap: -1,
		MaxResolution:   -1,
	})
	require.NoError(t, err)
	assert.Zero(t, res.Report.Metrics.DroppedPropertyCap)
	assert.Equal(t, int64(1), res.Report.Metrics.EmittedFeatures)
}

func TestRunOptionErrors(t *testing.T) {
	in := writeInput(t, "cells.txt", sfCell.String())
	tests := []struct {
		name string
		opts Options
	}{
		{"NoInput", Options{OutputPath: "-"}},
		{"NoOutput", Options{InputPath: in}},
		{"BadFormat", Options{InputPath: in, OutputPath: "-", Format: "csv"}},
		{"ParquetStdout", Options{InputPath: in, OutputPath: "-", Format: FormatParquet}},
		{"BadGeometry", Options{InputPath: in, OutputPath: "-", Geometry: "hull"}},
		{"BadAttribute", Options{InputPath: in, OutputPath: "-", Attributes: []string{"color"}}},
		{"BadQuantize", Options{InputPath: in, OutputPath: "-", QuantizeSpec: "float"}},
		{"MissingInput", Options{InputPath: in + ".missing", OutputPath: "-"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.Stdout = io.Discard
			_, err := Run(context.Background(), tt.opts)
			assert.Error(t, err)
		})
	}
}

func TestRunCancelled(t *testing.T) {
	children, err := h3.CellToChildren(sfCell, 13)
	require.NoError(t, err)
	in := filepath.Join(t.TempDir(), "cells.roar")
	require.NoError(t, cellio.WriteFile(in, cellio.Roaring, children))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Run(ctx, Options{InputPath: in, OutputPath: "-", Stdout: io.Discard, MaxResolution: -1})
	assert.ErrorIs(t, err, context.Canceled)
}
