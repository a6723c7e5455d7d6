package parquet

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/parquet-go/parquet-go"

	"github.com/hexatiles/hexgrid/h3"
)

// ReaderOptions controls how Parquet rows are streamed.
type ReaderOptions struct {
	// BatchSize controls how many rows are fetched per request.
	BatchSize int
	// Column names the cell column. When empty the first column whose name
	// looks like a cell column is used.
	Column string
}

// Row represents a decoded Parquet row that contains a cell index and optional properties.
type Row struct {
	RowNumber  int64
	Cell       h3.Cell
	CellString string
	Resolution int
	Properties map[string]any
	Err        error
}

// Reader streams cell rows from a Parquet file.
type Reader struct {
	opts      ReaderOptions
	filePath  string
	file      *os.File
	reader    *parquet.Reader
	columns   []string
	totalRows int64

	mu     sync.Mutex
	rows   []parquet.Row
	buffer []*Row
	cursor int
	read   int64
}

// ErrNoCellColumn is returned when a row carries no recognizable cell column.
var ErrNoCellColumn = errors.New("parquet file missing required cell column")

// NewReader opens a Parquet file and prepares it for streaming rows.
func NewReader(path string, opts ReaderOptions) (*Reader, error) {
	if opts.BatchSize <= 0 {
		opts.BatchSize = 4096
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open parquet file: %w", err)
	}

	reader := parquet.NewReader(file)

	var columns []string
	for _, path := range reader.Schema().Columns() {
		columns = append(columns, strings.Join(path, "."))
	}

	return &Reader{
		opts:      opts,
		filePath:  filepath.Clean(path),
		file:      file,
		reader:    reader,
		columns:   columns,
		totalRows: reader.NumRows(),
	}, nil
}

// Close releases Parquet reader resources.
func (r *Reader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.reader == nil {
		return nil
	}
	err := errors.Join(r.reader.Close(), r.file.Close())
	r.reader = nil
	r.file = nil
	r.buffer = nil
	return err
}

// Path returns the cleaned input path.
func (r *Reader) Path() string {
	return r.filePath
}

// Columns returns the leaf column names of the file schema.
func (r *Reader) Columns() []string {
	return slices.Clone(r.columns)
}

// Next returns the next decoded row. It returns io.EOF when all rows are consumed.
func (r *Reader) Next() (*Row, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.reader == nil {
		return nil, fmt.Errorf("reader closed")
	}

	if r.cursor >= len(r.buffer) {
		if err := r.fillBuffer(); err != nil {
			return nil, err
		}
	}
	if r.cursor >= len(r.buffer) {
		return nil, io.EOF
	}

	row := r.buffer[r.cursor]
	r.cursor++
	return row, nil
}

func (r *Reader) fillBuffer() error {
	if r.read >= r.totalRows {
		return io.EOF
	}

	toRead := min(r.opts.BatchSize, int(r.totalRows-r.read))
	if cap(r.rows) < toRead {
		r.rows = make([]parquet.Row, toRead)
	}
	rows := r.rows[:toRead]

	n, err := r.reader.ReadRows(rows)
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read parquet rows: %w", err)
	}
	if n == 0 {
		return io.EOF
	}

	r.buffer = r.buffer[:0]
	r.cursor = 0

	for i := range n {
		r.read++
		r.buffer = append(r.buffer, r.decode(r.read, rows[i]))
	}
	return nil
}

func (r *Reader) decode(rowNumber int64, row parquet.Row) *Row {
	values := make(map[string]any, len(row))
	for _, v := range row {
		col := v.Column()
		if col < 0 || col >= len(r.columns) {
			continue
		}
		values[r.columns[col]] = valueOf(v)
	}

	key := r.cellColumn(values)
	props := extractProperties(values, key)
	if key == "" {
		return &Row{
			RowNumber:  rowNumber,
			Resolution: -1,
			Properties: props,
			Err:        fmt.Errorf("row %d: %w", rowNumber, ErrNoCellColumn),
		}
	}

	cell, cellString, err := parseCell(values[key])
	if err == nil && cell == 0 {
		err = ErrNoCellColumn
	}
	if err == nil && !cell.IsValid() {
		err = fmt.Errorf("%w: %s", h3.ErrMalformedIndex, cellString)
	}
	if err != nil {
		return &Row{
			RowNumber:  rowNumber,
			CellString: cellString,
			Resolution: -1,
			Properties: props,
			Err:        fmt.Errorf("row %d: column %s: %w", rowNumber, key, err),
		}
	}

	return &Row{
		RowNumber:  rowNumber,
		Cell:       cell,
		CellString: cellString,
		Resolution: cell.Resolution(),
		Properties: props,
	}
}

// TotalRows returns the number of rows reported by the Parquet footer.
func (r *Reader) TotalRows() int64 {
	return r.totalRows
}

var possibleCellNames = []string{"h3", "h3_id", "h3index", "h3_index", "h3id", "cell", "cell_id"}

func (r *Reader) cellColumn(values map[string]any) string {
	if r.opts.Column != "" {
		if _, ok := values[r.opts.Column]; ok {
			return r.opts.Column
		}
		return ""
	}
	for _, name := range r.columns {
		if _, ok := values[name]; ok && isCellColumn(name) {
			return name
		}
	}
	return ""
}

func isCellColumn(name string) bool {
	return slices.Contains(possibleCellNames, strings.ToLower(name))
}

func valueOf(v parquet.Value) any {
	if v.IsNull() {
		return nil
	}
	switch v.Kind() {
	case parquet.Boolean:
		return v.Boolean()
	case parquet.Int32:
		return v.Int32()
	case parquet.Int64:
		return v.Int64()
	case parquet.Float:
		return v.Float()
	case parquet.Double:
		return v.Double()
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return string(v.ByteArray())
	default:
		return v.String()
	}
}

func parseCell(value any) (h3.Cell, string, error) {
	switch v := value.(type) {
	case nil:
		return 0, "", nil
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, "", nil
		}
		cell, err := stringToCell(trimmed)
		if err != nil {
			return 0, trimmed, err
		}
		return cell, cell.String(), nil
	case int32:
		return intToCell(int64(v))
	case int64:
		return intToCell(v)
	case float32:
		return intToCell(int64(v))
	case float64:
		return intToCell(int64(v))
	default:
		return 0, fmt.Sprint(v), fmt.Errorf("unsupported cell value of type %T", v)
	}
}

func intToCell(v int64) (h3.Cell, string, error) {
	if v < 0 {
		return 0, strconv.FormatInt(v, 10), fmt.Errorf("negative integer %d", v)
	}
	cell := h3.Cell(uint64(v))
	return cell, cell.String(), nil
}

func stringToCell(s string) (h3.Cell, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
	}
	cell, err := h3.ParseCell(s)
	if err == nil {
		return cell, nil
	}
	// Longer than any hex index, so it may be decimal.
	value, derr := strconv.ParseUint(s, 10, 64)
	if derr != nil {
		return 0, err
	}
	return h3.Cell(value), nil
}

func extractProperties(values map[string]any, skip string) map[string]any {
	props := make(map[string]any, len(values))
	for key, v := range values {
		if key == skip {
			continue
		}
		props[key] = v
	}
	return props
}
