// Package cellio reads and writes lists of cells. A list is stored as text
// with one index per line, as zstd-compressed text, as a roaring bitmap or
// as a Parquet table.
package cellio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/hexatiles/hexgrid/h3"
	"github.com/hexatiles/hexgrid/internal/cellset"
	parquetio "github.com/hexatiles/hexgrid/internal/parquet"
)

// Format selects the on-disk layout of a cell list.
type Format int

const (
	Text Format = iota
	TextZstd
	Roaring
	Parquet
)

func (f Format) String() string {
	switch f {
	case Text:
		return "text"
	case TextZstd:
		return "zstd"
	case Roaring:
		return "roaring"
	case Parquet:
		return "parquet"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat accepts the names returned by Format.String.
func ParseFormat(s string) (Format, error) {
	for _, f := range []Format{Text, TextZstd, Roaring, Parquet} {
		if strings.EqualFold(s, f.String()) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown cell format %q", s)
}

// FormatOf infers the format from the extension of path.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst", ".zstd":
		return TextZstd
	case ".roar", ".roaring":
		return Roaring
	case ".parquet", ".pq":
		return Parquet
	default:
		return Text
	}
}

// Record is one entry of a cell list. Err is set when the entry could not
// be decoded; the remaining fields still describe where it came from.
type Record struct {
	Line       int64
	Cell       h3.Cell
	Text       string
	Properties map[string]any
	Err        error
}

// Source yields records until io.EOF.
type Source interface {
	Next() (*Record, error)
	Close() error
}

// Options tunes Open.
type Options struct {
	// Column names the Parquet cell column.
	Column    string
	BatchSize int
}

// Open opens path for reading in the format implied by its extension. The
// path "-" reads text from standard input.
func Open(path string, opts Options) (Source, error) {
	if path == "-" {
		return NewTextSource(os.Stdin), nil
	}

	switch FormatOf(path) {
	case Parquet:
		r, err := parquetio.NewReader(path, parquetio.ReaderOptions{BatchSize: opts.BatchSize, Column: opts.Column})
		if err != nil {
			return nil, err
		}
		return &parquetSource{r: r}, nil
	case Roaring:
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open cell file: %w", err)
		}
		defer f.Close()
		set := cellset.New[h3.Cell]()
		if _, err := set.ReadFrom(bufio.NewReader(f)); err != nil {
			return nil, fmt.Errorf("read roaring cells: %w", err)
		}
		return &sliceSource{cells: set.Slice()}, nil
	case TextZstd:
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open cell file: %w", err)
		}
		dec, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("open zstd stream: %w", err)
		}
		src := NewTextSource(dec)
		src.closer = func() error {
			dec.Close()
			return f.Close()
		}
		return src, nil
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open cell file: %w", err)
		}
		src := NewTextSource(f)
		src.closer = f.Close
		return src, nil
	}
}

// TextSource parses one cell per line. Blank lines and lines starting with
// '#' are skipped; only the first field of a line is read.
type TextSource struct {
	scanner *bufio.Scanner
	line    int64
	closer  func() error
}

// NewTextSource reads text records from r.
func NewTextSource(r io.Reader) *TextSource {
	return &TextSource{scanner: bufio.NewScanner(r)}
}

// Next returns the next record.
func (s *TextSource) Next() (*Record, error) {
	for s.scanner.Scan() {
		s.line++
		fields := strings.Fields(s.scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		text := fields[0]
		rec := &Record{Line: s.line, Text: text}
		cell, err := h3.ParseCell(text)
		switch {
		case err != nil:
			rec.Err = fmt.Errorf("line %d: %w", s.line, err)
		case !cell.IsValid():
			rec.Err = fmt.Errorf("line %d: %w: %s", s.line, h3.ErrMalformedIndex, text)
		default:
			rec.Cell = cell
		}
		return rec, nil
	}
	if err := s.scanner.Err(); err != nil {
		return nil, fmt.Errorf("read cells: %w", err)
	}
	return nil, io.EOF
}

// Close closes the underlying file, if any.
func (s *TextSource) Close() error {
	if s.closer == nil {
		return nil
	}
	err := s.closer()
	s.closer = nil
	return err
}

type sliceSource struct {
	cells []h3.Cell
	next  int
}

// NewSliceSource yields cells in order.
func NewSliceSource(cells []h3.Cell) Source {
	return &sliceSource{cells: cells}
}

func (s *sliceSource) Next() (*Record, error) {
	if s.next >= len(s.cells) {
		return nil, io.EOF
	}
	c := s.cells[s.next]
	s.next++
	rec := &Record{Line: int64(s.next), Cell: c, Text: c.String()}
	if !c.IsValid() {
		rec.Cell = 0
		rec.Err = fmt.Errorf("entry %d: %w: %s", s.next, h3.ErrMalformedIndex, rec.Text)
	}
	return rec, nil
}

func (s *sliceSource) Close() error { return nil }

type parquetSource struct {
	r *parquetio.Reader
}

func (s *parquetSource) Next() (*Record, error) {
	row, err := s.r.Next()
	if err != nil {
		return nil, err
	}
	return &Record{
		Line:       row.RowNumber,
		Cell:       row.Cell,
		Text:       row.CellString,
		Properties: row.Properties,
		Err:        row.Err,
	}, nil
}

func (s *parquetSource) Close() error { return s.r.Close() }

// ReadAll drains src, stopping at the first record that fails to decode.
func ReadAll(src Source) ([]h3.Cell, error) {
	var cells []h3.Cell
	for {
		rec, err := src.Next()
		if errors.Is(err, io.EOF) {
			return cells, nil
		}
		if err != nil {
			return nil, err
		}
		if rec.Err != nil {
			return nil, rec.Err
		}
		cells = append(cells, rec.Cell)
	}
}

// ReadFile opens path and reads every cell from it.
func ReadFile(path string, opts Options) ([]h3.Cell, error) {
	src, err := Open(path, opts)
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return ReadAll(src)
}

// WriteText writes one cell per line.
func WriteText(w io.Writer, cells []h3.Cell) error {
	bw := bufio.NewWriter(w)
	for _, c := range cells {
		bw.WriteString(c.String())
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// WriteFile writes cells to path in format f. The roaring format stores a
// set, so duplicates collapse and the order becomes ascending.
func WriteFile(path string, f Format, cells []h3.Cell) (err error) {
	if f == Parquet {
		return writeParquet(path, cells)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create cell file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()
	return Write(file, f, cells)
}

// Write encodes cells to w in a streaming format.
func Write(w io.Writer, f Format, cells []h3.Cell) error {
	switch f {
	case Text:
		return WriteText(w, cells)
	case TextZstd:
		enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return fmt.Errorf("open zstd stream: %w", err)
		}
		if err := WriteText(enc, cells); err != nil {
			enc.Close()
			return err
		}
		return enc.Close()
	case Roaring:
		_, err := cellset.Of(cells...).WriteTo(w)
		return err
	default:
		return fmt.Errorf("format %s cannot be streamed", f)
	}
}

func writeParquet(path string, cells []h3.Cell) error {
	records := make([]parquetio.CellRecord, 0, len(cells))
	for _, c := range cells {
		rec, err := NewCellRecord(c)
		if err != nil {
			return err
		}
		records = append(records, rec)
	}

	w, err := parquetio.NewWriter(path)
	if err != nil {
		return err
	}
	if err := w.Write(records); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// NewCellRecord fills the computed columns of a Parquet row for c.
func NewCellRecord(c h3.Cell) (parquetio.CellRecord, error) {
	center, err := c.LatLng()
	if err != nil {
		return parquetio.CellRecord{}, err
	}
	area, err := h3.CellAreaKm2(c)
	if err != nil {
		return parquetio.CellRecord{}, err
	}
	lat, lng := h3.Degrees(center)
	return parquetio.CellRecord{
		H3:         c.String(),
		Resolution: int32(c.Resolution()),
		BaseCell:   int32(c.BaseCell()),
		Pentagon:   c.IsPentagon(),
		CenterLat:  lat,
		CenterLng:  lng,
		AreaKm2:    area,
	}, nil
}
