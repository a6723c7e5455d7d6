package parquet

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
)

// CellRecord is one row of an exported cell table.
type CellRecord struct {
	H3         string  `parquet:"h3"`
	Resolution int32   `parquet:"resolution"`
	BaseCell   int32   `parquet:"base_cell"`
	Pentagon   bool    `parquet:"pentagon"`
	CenterLat  float64 `parquet:"center_lat"`
	CenterLng  float64 `parquet:"center_lng"`
	AreaKm2    float64 `parquet:"area_km2"`
	// Properties holds the remaining attributes as a JSON object.
	Properties string `parquet:"properties,optional"`
}

// Writer writes cell records to a Parquet file.
type Writer struct {
	file   *os.File
	writer *parquet.GenericWriter[CellRecord]
	path   string
	count  int64
}

// NewWriter creates the file at path, creating parent directories as needed.
func NewWriter(path string) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create parquet directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create parquet file: %w", err)
	}

	schema := parquet.SchemaOf(CellRecord{})
	return &Writer{
		file:   f,
		writer: parquet.NewGenericWriter[CellRecord](f, schema),
		path:   path,
	}, nil
}

// Write appends records.
func (w *Writer) Write(records []CellRecord) error {
	n, err := w.writer.Write(records)
	w.count += int64(n)
	if err != nil {
		return fmt.Errorf("write parquet rows: %w", err)
	}
	return nil
}

// Count returns how many records have been written.
func (w *Writer) Count() int64 {
	return w.count
}

// Path returns the destination file path.
func (w *Writer) Path() string {
	return w.path
}

// Close flushes the footer and closes the file.
func (w *Writer) Close() error {
	if w.file == nil {
		return nil
	}
	err := w.writer.Close()
	if cerr := w.file.Close(); err == nil {
		err = cerr
	}
	w.file = nil
	if err != nil {
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return nil
}
