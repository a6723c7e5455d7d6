package ndjson

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Feature represents a GeoJSON feature destined for NDJSON output.
type Feature struct {
	ID         string
	Geometry   orb.Geometry
	Properties map[string]any
	BBox       *orb.Bound
}

func init() {
	geojson.CustomJSONMarshaler = unescapedMarshaler{}
}

// unescapedMarshaler keeps <, > and & literal in property strings. orb
// marshals nested features and geometries through it, so an encoder's
// SetEscapeHTML alone never reaches them.
type unescapedMarshaler struct{}

func (unescapedMarshaler) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Writer streams GeoJSON features as newline-delimited JSON.
type Writer struct {
	mu      sync.Mutex
	buf     *bufio.Writer
	closer  io.Closer
	encoder *json.Encoder
	path    string
	count   int64
	bytes   int64
}

// NewWriter creates a writer that outputs to the specified path, creating parent directories as needed.
func NewWriter(path string) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create NDJSON directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create NDJSON file: %w", err)
	}

	w := NewStreamWriter(f)
	w.closer = f
	w.path = path
	return w, nil
}

// NewStreamWriter writes features to out. Close flushes but does not close out.
func NewStreamWriter(out io.Writer) *Writer {
	w := &Writer{path: "-"}
	w.buf = bufio.NewWriter(countingWriter{w: out, n: &w.bytes})
	w.encoder = json.NewEncoder(w.buf)
	w.encoder.SetEscapeHTML(false)
	return w
}

type countingWriter struct {
	w io.Writer
	n *int64
}

func (c countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	*c.n += int64(n)
	return n, err
}

// Close flushes buffered output and closes the underlying file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.encoder == nil {
		return nil
	}
	w.encoder = nil

	err := w.buf.Flush()
	if w.closer != nil {
		if cerr := w.closer.Close(); err == nil {
			err = cerr
		}
		w.closer = nil
	}
	return err
}

// Path returns the destination file path, or "-" for a stream.
func (w *Writer) Path() string {
	return w.path
}

// Count returns how many features have been written.
func (w *Writer) Count() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}

// Bytes returns the bytes flushed to the destination so far.
func (w *Writer) Bytes() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.bytes
}

// WriteFeature appends a feature as a single NDJSON line.
func (w *Writer) WriteFeature(feature Feature) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.encoder == nil {
		return fmt.Errorf("writer closed")
	}

	if err := w.encoder.Encode(toGeoJSON(feature)); err != nil {
		return fmt.Errorf("encode feature: %w", err)
	}
	w.count++
	return nil
}

// MarshalFeature returns the JSON encoding of a feature suitable for diagnostics or size estimation.
func MarshalFeature(feature Feature) ([]byte, error) {
	return toGeoJSON(feature).MarshalJSON()
}

func toGeoJSON(feature Feature) *geojson.Feature {
	payload := geojson.NewFeature(feature.Geometry)
	if feature.Properties != nil {
		payload.Properties = feature.Properties
	}
	if feature.BBox != nil {
		payload.BBox = geojson.NewBBox(*feature.BBox)
	}
	if feature.ID != "" {
		payload.ID = feature.ID
	}
	return payload
}

// Collection gathers features into a single GeoJSON FeatureCollection.
func Collection(features []Feature) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, f := range features {
		fc.Append(toGeoJSON(f))
	}
	return fc
}
