package parquet

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexatiles/hexgrid/h3"
)

const sfCell h3.Cell = 0x8928308280fffff

func readAll(t *testing.T, r *Reader) []*Row {
	t.Helper()
	var rows []*Row
	for {
		row, err := r.Next()
		if errors.Is(err, io.EOF) {
			return rows
		}
		require.NoError(t, err)
		rows = append(rows, row)
	}
}

func TestWriterReaderRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cells.parquet")

	w, err := NewWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.Write([]CellRecord{
		{H3: sfCell.String(), Resolution: 9, BaseCell: 20, CenterLat: 37.775, CenterLng: -122.418, AreaKm2: 0.1094},
		{H3: "8009fffffffffff", Resolution: 0, BaseCell: 4, Pentagon: true, Properties: `{"k":1}`},
	}))
	assert.Equal(t, int64(2), w.Count())
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	r, err := NewReader(path, ReaderOptions{BatchSize: 1})
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, int64(2), r.TotalRows())
	assert.Contains(t, r.Columns(), "h3")

	rows := readAll(t, r)
	require.Len(t, rows, 2)

	assert.NoError(t, rows[0].Err)
	assert.Equal(t, sfCell, rows[0].Cell)
	assert.Equal(t, 9, rows[0].Resolution)
	assert.Equal(t, int64(1), rows[0].RowNumber)
	assert.Equal(t, int32(20), rows[0].Properties["base_cell"])
	assert.Equal(t, -122.418, rows[0].Properties["center_lng"])
	assert.NotContains(t, rows[0].Properties, "h3")

	assert.Equal(t, h3.Cell(0x8009fffffffffff), rows[1].Cell)
	assert.Equal(t, true, rows[1].Properties["pentagon"])
	assert.Equal(t, `{"k":1}`, rows[1].Properties["properties"])
}

type sampleRow struct {
	H3       string
	Score    float64
	Category string
}

type intRow struct {
	CellID int64 `parquet:"cell_id"`
}

func writeRows[T any](t *testing.T, rows []T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.parquet")
	f, err := os.Create(path)
	require.NoError(t, err)
	w := parquet.NewGenericWriter[T](f)
	_, err = w.Write(rows)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
	return path
}

func TestReaderDetectsColumns(t *testing.T) {
	path := writeRows(t, []sampleRow{
		{H3: "0x8928308280fffff", Score: 0.5, Category: "demo"},
		{H3: "not-a-cell", Score: 0.1},
		{H3: "", Score: 0.2},
		{H3: "8928308280fffff0", Score: 0.3},
	})

	r, err := NewReader(path, ReaderOptions{})
	require.NoError(t, err)
	defer r.Close()

	rows := readAll(t, r)
	require.Len(t, rows, 4)

	assert.NoError(t, rows[0].Err)
	assert.Equal(t, sfCell, rows[0].Cell)
	assert.Equal(t, "demo", rows[0].Properties["Category"])
	assert.Equal(t, 0.5, rows[0].Properties["Score"])

	assert.ErrorIs(t, rows[1].Err, h3.ErrParse)
	assert.Equal(t, "not-a-cell", rows[1].CellString)
	assert.Equal(t, -1, rows[1].Resolution)

	assert.ErrorIs(t, rows[2].Err, ErrNoCellColumn)
	assert.ErrorIs(t, rows[3].Err, h3.ErrMalformedIndex)
}

func TestReaderIntegerColumn(t *testing.T) {
	path := writeRows(t, []intRow{{CellID: int64(sfCell)}, {CellID: -5}})

	r, err := NewReader(path, ReaderOptions{})
	require.NoError(t, err)
	defer r.Close()

	rows := readAll(t, r)
	require.Len(t, rows, 2)
	assert.Equal(t, sfCell, rows[0].Cell)
	assert.Equal(t, sfCell.String(), rows[0].CellString)
	assert.Error(t, rows[1].Err)
}

func TestReaderExplicitColumn(t *testing.T) {
	path := writeRows(t, []sampleRow{{H3: sfCell.String(), Category: "x"}})

	r, err := NewReader(path, ReaderOptions{Column: "Category"})
	require.NoError(t, err)
	rows := readAll(t, r)
	require.Len(t, rows, 1)
	assert.ErrorIs(t, rows[0].Err, h3.ErrParse)
	require.NoError(t, r.Close())

	r, err = NewReader(path, ReaderOptions{Column: "missing"})
	require.NoError(t, err)
	rows = readAll(t, r)
	require.Len(t, rows, 1)
	assert.ErrorIs(t, rows[0].Err, ErrNoCellColumn)
	require.NoError(t, r.Close())

	_, err = r.Next()
	assert.Error(t, err)
}

func TestNewReaderMissingFile(t *testing.T) {
	_, err := NewReader(filepath.Join(t.TempDir(), "nope.parquet"), ReaderOptions{})
	assert.Error(t, err)
}
