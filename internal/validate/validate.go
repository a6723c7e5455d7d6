package validate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/hexatiles/hexgrid/h3"
	"github.com/hexatiles/hexgrid/internal/cellio"
	"github.com/hexatiles/hexgrid/internal/cellset"
)

// Options configures a validation run.
type Options struct {
	InputPath     string
	Column        string
	MinResolution int
	MaxResolution int
	SampleLimit   int
	BatchSize     int
}

// Issue captures an invalid row sample.
type Issue struct {
	RowNumber int64
	H3        string
	Message   string
}

// Result summarises validation findings for a single input.
type Result struct {
	TotalRows           int64
	ValidRows           int64
	InvalidCells        int64
	Duplicates          int64
	ResolutionFiltered  int64
	Pentagons           int64
	BaseCells           int
	ResolutionHistogram map[int]int64
	InvalidSamples      []Issue
	MinResolutionSeen   int
	MaxResolutionSeen   int
	// Overlapping reports whether some valid cell lies inside another.
	Overlapping bool
	Duration    time.Duration
}

// Run opens InputPath and validates every record in it.
func Run(ctx context.Context, opts Options) (*Result, error) {
	src, err := cellio.Open(opts.InputPath, cellio.Options{Column: opts.Column, BatchSize: opts.BatchSize})
	if err != nil {
		return nil, fmt.Errorf("open cell input: %w", err)
	}
	defer src.Close()
	return Check(ctx, src, opts)
}

// Check validates the records of src. Resolution bounds below zero are ignored.
func Check(ctx context.Context, src cellio.Source, opts Options) (*Result, error) {
	if opts.SampleLimit <= 0 {
		opts.SampleLimit = 10
	}

	res := &Result{
		ResolutionHistogram: make(map[int]int64),
		MinResolutionSeen:   -1,
		MaxResolutionSeen:   -1,
	}

	start := time.Now()
	seen := cellset.New[h3.Cell]()
	var baseCells [h3.NumBaseCells]bool

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rec, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read cell record: %w", err)
		}

		res.TotalRows++

		if rec.Err != nil {
			res.InvalidCells++
			if len(res.InvalidSamples) < opts.SampleLimit {
				res.InvalidSamples = append(res.InvalidSamples, Issue{
					RowNumber: rec.Line,
					H3:        rec.Text,
					Message:   rec.Err.Error(),
				})
			}
			continue
		}

		r := rec.Cell.Resolution()
		if (opts.MinResolution >= 0 && r < opts.MinResolution) || (opts.MaxResolution >= 0 && r > opts.MaxResolution) {
			res.ResolutionFiltered++
			continue
		}

		if !seen.Add(rec.Cell) {
			res.Duplicates++
			continue
		}

		res.ValidRows++
		res.ResolutionHistogram[r]++
		if rec.Cell.IsPentagon() {
			res.Pentagons++
		}
		baseCells[rec.Cell.BaseCell()] = true
		if res.MinResolutionSeen == -1 || r < res.MinResolutionSeen {
			res.MinResolutionSeen = r
		}
		if res.MaxResolutionSeen == -1 || r > res.MaxResolutionSeen {
			res.MaxResolutionSeen = r
		}
	}

	for _, b := range baseCells {
		if b {
			res.BaseCells++
		}
	}
	if res.MinResolutionSeen != res.MaxResolutionSeen {
		res.Overlapping = overlapping(seen, res.MinResolutionSeen)
	}

	res.Duration = time.Since(start)
	return res, nil
}

// overlapping reports whether any cell of s has an ancestor in s.
func overlapping(s *cellset.Set[h3.Cell], minRes int) bool {
	for c := range s.All() {
		for r := c.Resolution() - 1; r >= minRes; r-- {
			p, err := c.Parent(r)
			if err == nil && s.Contains(p) {
				return true
			}
		}
	}
	return false
}
