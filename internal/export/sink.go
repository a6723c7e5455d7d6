package export

import (
	"os"

	"github.com/hexatiles/hexgrid/internal/ndjson"
	parquetio "github.com/hexatiles/hexgrid/internal/parquet"
)

type sink interface {
	Write(fr *featureResult) error
	Close() error
	Bytes() int64
}

func newSink(opts Options) (sink, error) {
	if opts.OutputPath == "-" {
		return &ndjsonSink{w: ndjson.NewStreamWriter(opts.Stdout)}, nil
	}

	path, err := resolveOutput(opts.OutputPath)
	if err != nil {
		return nil, err
	}
	if opts.Format == FormatParquet {
		w, err := parquetio.NewWriter(path)
		if err != nil {
			return nil, err
		}
		return &parquetSink{w: w}, nil
	}
	w, err := ndjson.NewWriter(path)
	if err != nil {
		return nil, err
	}
	return &ndjsonSink{w: w}, nil
}

type ndjsonSink struct {
	w *ndjson.Writer
}

func (s *ndjsonSink) Write(fr *featureResult) error { return s.w.WriteFeature(fr.Feature) }
func (s *ndjsonSink) Close() error                  { return s.w.Close() }
func (s *ndjsonSink) Bytes() int64                  { return s.w.Bytes() }

const parquetBatch = 1024

type parquetSink struct {
	w     *parquetio.Writer
	batch []parquetio.CellRecord
	size  int64
}

func (s *parquetSink) Write(fr *featureResult) error {
	s.batch = append(s.batch, fr.Record)
	if len(s.batch) < parquetBatch {
		return nil
	}
	return s.flush()
}

func (s *parquetSink) flush() error {
	if len(s.batch) == 0 {
		return nil
	}
	err := s.w.Write(s.batch)
	s.batch = s.batch[:0]
	return err
}

func (s *parquetSink) Close() error {
	if s.w == nil {
		return nil
	}
	err := s.flush()
	if cerr := s.w.Close(); err == nil {
		err = cerr
	}
	if info, statErr := os.Stat(s.w.Path()); statErr == nil {
		s.size = info.Size()
	}
	s.w = nil
	return err
}

func (s *parquetSink) Bytes() int64 { return s.size }
