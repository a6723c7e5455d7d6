// Package export turns a list of cells into GeoJSON or Parquet features.
package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/hexatiles/hexgrid/h3"
	"github.com/hexatiles/hexgrid/internal/cellio"
	"github.com/hexatiles/hexgrid/internal/cellset"
	"github.com/hexatiles/hexgrid/internal/h3geom"
	"github.com/hexatiles/hexgrid/internal/ndjson"
	parquetio "github.com/hexatiles/hexgrid/internal/parquet"
	"github.com/hexatiles/hexgrid/internal/props"
	"github.com/hexatiles/hexgrid/internal/report"
)

// Output formats.
const (
	FormatNDJSON  = "ndjson"
	FormatParquet = "parquet"
)

// Geometry modes for NDJSON features.
const (
	GeometryBoundary = "boundary"
	GeometryCenter   = "center"
	GeometryNone     = "none"
)

// DefaultPropertyByteCap bounds the encoded properties of one feature.
const DefaultPropertyByteCap = 2 * 1024

// Options describe an export invocation.
type Options struct {
	InputPath string
	// OutputPath "-" streams NDJSON to Stdout.
	OutputPath string
	Format     string
	Geometry   string
	Column     string

	// A negative bound disables that side of the resolution filter.
	MinResolution int
	MaxResolution int
	Dedupe        bool

	PropertyInclude []string
	PropertyDrop    []string
	// Attributes selects computed cell attributes; empty keeps them all.
	Attributes   []string
	QuantizeSpec string
	// PropertyByteCap zero selects DefaultPropertyByteCap; negative disables it.
	PropertyByteCap int

	Threads    int
	ReportPath string

	Stdout io.Writer
	Logger *log.Logger
}

// Result contains the report produced by the export.
type Result struct {
	Report *report.Report
}

// Run reads InputPath and writes one feature per accepted cell.
func Run(ctx context.Context, opts Options) (*Result, error) {
	opts, err := normalize(opts)
	if err != nil {
		return nil, err
	}

	quantizer, err := props.ParseQuantizer(opts.QuantizeSpec)
	if err != nil {
		return nil, fmt.Errorf("parse quantize spec: %w", err)
	}

	src, err := cellio.Open(opts.InputPath, cellio.Options{Column: opts.Column})
	if err != nil {
		return nil, fmt.Errorf("open cell input: %w", err)
	}
	defer src.Close()

	out, err := newSink(opts)
	if err != nil {
		return nil, err
	}
	defer out.Close()

	rep := &report.Report{
		Config: report.Config{
			InputPath:        opts.InputPath,
			OutputPath:       opts.OutputPath,
			Format:           opts.Format,
			Geometry:         opts.Geometry,
			MinResolution:    opts.MinResolution,
			MaxResolution:    opts.MaxResolution,
			ResolutionFilter: opts.MinResolution >= 0 || opts.MaxResolution >= 0,
			QuantizeSpec:     opts.QuantizeSpec,
			PropsKeep:        append([]string(nil), opts.PropertyInclude...),
			PropsDrop:        append([]string(nil), opts.PropertyDrop...),
			Attributes:       attributeNames(opts.Attributes),
			Threads:          opts.Threads,
			PropertyByteCap:  opts.PropertyByteCap,
		},
		Metrics: report.Metrics{StartedAt: time.Now()},
	}

	cfg := processConfig{
		Options:    opts,
		Quantizer:  quantizer,
		Filter:     props.NewFilter(opts.PropertyInclude, opts.PropertyDrop, false),
		Attributes: attributeFilter(opts.Attributes),
		Report:     rep,
	}
	if err := processRows(ctx, src, out, cfg); err != nil {
		return nil, err
	}

	if err := out.Close(); err != nil {
		return nil, fmt.Errorf("close %s output: %w", opts.Format, err)
	}
	rep.Metrics.OutputPath = opts.OutputPath
	rep.Metrics.OutputSize = out.Bytes()
	rep.Finish()

	opts.Logger.Info("export finished",
		"features", rep.Metrics.EmittedFeatures,
		"rows", rep.Metrics.TotalRows,
		"output", opts.OutputPath,
		"duration", rep.Metrics.Duration.Truncate(time.Millisecond))

	if opts.ReportPath != "" {
		if err := rep.WriteFile(opts.ReportPath); err != nil {
			return nil, err
		}
	}
	return &Result{Report: rep}, nil
}

func normalize(opts Options) (Options, error) {
	if opts.InputPath == "" {
		return opts, fmt.Errorf("input path is required")
	}
	if opts.OutputPath == "" {
		return opts, fmt.Errorf("output path is required")
	}
	if opts.Format == "" {
		opts.Format = FormatNDJSON
		if cellio.FormatOf(opts.OutputPath) == cellio.Parquet {
			opts.Format = FormatParquet
		}
	}
	switch opts.Format {
	case FormatNDJSON:
	case FormatParquet:
		if opts.OutputPath == "-" {
			return opts, fmt.Errorf("parquet output cannot be streamed to stdout")
		}
	default:
		return opts, fmt.Errorf("unknown output format %q", opts.Format)
	}
	if opts.Geometry == "" {
		opts.Geometry = GeometryBoundary
	}
	switch opts.Geometry {
	case GeometryBoundary, GeometryCenter, GeometryNone:
	default:
		return opts, fmt.Errorf("unknown geometry mode %q", opts.Geometry)
	}
	for _, a := range opts.Attributes {
		if !isComputedKey(a) {
			return opts, fmt.Errorf("unknown attribute %q (want one of %s)", a, strings.Join(props.ComputedKeys, ", "))
		}
	}
	if opts.Threads <= 0 {
		opts.Threads = runtime.NumCPU()
	}
	if opts.PropertyByteCap == 0 {
		opts.PropertyByteCap = DefaultPropertyByteCap
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return opts, nil
}

func isComputedKey(key string) bool {
	for _, k := range props.ComputedKeys {
		if k == key {
			return true
		}
	}
	return false
}

func attributeNames(attrs []string) []string {
	if len(attrs) == 0 {
		return append([]string(nil), props.ComputedKeys...)
	}
	return append([]string(nil), attrs...)
}

func attributeFilter(attrs []string) *props.Filter {
	if len(attrs) == 0 {
		return nil
	}
	return props.NewFilter(attrs, nil, false)
}

type processConfig struct {
	Options    Options
	Quantizer  props.Quantizer
	Filter     *props.Filter
	Attributes *props.Filter
	Report     *report.Report
}

type job struct {
	seq int64
	rec *cellio.Record
}

func processRows(parent context.Context, src cellio.Source, out sink, cfg processConfig) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	jobs := make(chan job)
	results := make(chan featureResult, cfg.Options.Threads*2)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		for seq := int64(1); ; seq++ {
			rec, err := src.Next()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("read cells: %w", err)
			}
			select {
			case <-gctx.Done():
				return gctx.Err()
			case jobs <- job{seq: seq, rec: rec}:
			}
		}
	})

	var workers errgroup.Group
	for range cfg.Options.Threads {
		workers.Go(func() error {
			return workerLoop(gctx, jobs, results, cfg)
		})
	}
	g.Go(func() error {
		defer close(results)
		return workers.Wait()
	})

	collectErr := collect(results, out, cfg)
	if collectErr != nil {
		cancel()
	}
	for range results {
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if err := parent.Err(); err != nil {
		return err
	}
	return collectErr
}

const (
	propertyWarningLimit       = 20
	propertyWarnCountThreshold = 15
	propertyWarnBytesThreshold = 20 * 1024
	invalidSampleLimit         = 10
	progressEvery              = 100_000
)

func collect(results <-chan featureResult, out sink, cfg processConfig) error {
	rep := cfg.Report
	logger := cfg.Options.Logger

	expected := int64(1)
	pending := make(map[int64]featureResult)
	propertyWarnings := 0
	var invalidSamples []string
	var seen *cellset.Set[h3.Cell]
	if cfg.Options.Dedupe {
		seen = cellset.New[h3.Cell]()
	}

	for res := range results {
		if res.Err != nil {
			return res.Err
		}
		pending[res.Seq] = res

		for {
			fr, ok := pending[expected]
			if !ok {
				break
			}
			delete(pending, expected)
			expected++

			rep.Metrics.TotalRows++
			if rep.Metrics.TotalRows%progressEvery == 0 {
				logger.Debug("export progress", "rows", rep.Metrics.TotalRows, "features", rep.Metrics.EmittedFeatures)
			}
			if fr.Resolution >= 0 {
				rep.IncrementHistogram(fr.Resolution)
			}

			if fr.DropReason == "" && seen != nil && !seen.Add(fr.Cell) {
				fr.DropReason = dropDuplicate
			}

			switch fr.DropReason {
			case "":
			case dropResolution:
				rep.Metrics.DroppedResolution++
				continue
			case dropDuplicate:
				rep.Metrics.DroppedDuplicate++
				continue
			case dropPropertyCap:
				rep.Metrics.DroppedPropertyCap++
				if propertyWarnings < propertyWarningLimit {
					rep.AddPropertyWarning(report.PropertyWarning{
						RowNumber:     fr.RowNumber,
						H3:            fr.CellString,
						PropertyCount: fr.PropertyCount,
						PropertyBytes: fr.PropertyBytes,
						Message:       fmt.Sprintf("dropped: property payload %d bytes exceeds cap %d bytes", fr.PropertyBytes, cfg.Options.PropertyByteCap),
					})
				}
				propertyWarnings++
				continue
			case dropInvalid:
				rep.Metrics.DroppedInvalid++
				if len(invalidSamples) < invalidSampleLimit {
					invalidSamples = append(invalidSamples, fmt.Sprintf("row %d (%s): %s", fr.RowNumber, fr.CellString, fr.DropDetail))
				}
				continue
			}

			if err := out.Write(&fr); err != nil {
				return fmt.Errorf("write %s feature: %w", cfg.Options.Format, err)
			}

			rep.Metrics.EmittedFeatures++
			rep.Metrics.TotalAreaKm2 += fr.AreaKm2
			if fr.Pentagon {
				rep.Metrics.Pentagons++
			}
			if fr.QuantResult.Changes > 0 {
				rep.Metrics.QuantizeApplied = true
				rep.Metrics.QuantizeChanges += int64(fr.QuantResult.Changes)
				rep.Metrics.QuantizeTotalError += fr.QuantResult.TotalAbsError
			}

			if fr.PropertyCount > propertyWarnCountThreshold || fr.PropertyBytes > propertyWarnBytesThreshold {
				if propertyWarnings < propertyWarningLimit {
					rep.AddPropertyWarning(report.PropertyWarning{
						RowNumber:     fr.RowNumber,
						H3:            fr.CellString,
						PropertyCount: fr.PropertyCount,
						PropertyBytes: fr.PropertyBytes,
						Message:       fmt.Sprintf("large property payload (%d props, %d bytes)", fr.PropertyCount, fr.PropertyBytes),
					})
				}
				propertyWarnings++
			}
		}
	}

	if len(pending) != 0 {
		return fmt.Errorf("incomplete processing: %d features pending", len(pending))
	}

	m := &rep.Metrics
	if m.ResolutionHistogram != nil && m.MaxResolutionSeen-m.MinResolutionSeen >= 5 {
		rep.AddWarning(fmt.Sprintf("mixed resolutions detected: r%d-r%d", m.MinResolutionSeen, m.MaxResolutionSeen))
		logger.Warn("mixed resolutions", "min", m.MinResolutionSeen, "max", m.MaxResolutionSeen)
	}
	if len(invalidSamples) > 0 {
		msg := fmt.Sprintf("invalid cells encountered: %s", strings.Join(invalidSamples, "; "))
		if m.DroppedInvalid > int64(len(invalidSamples)) {
			msg += fmt.Sprintf(" (and %d more)", m.DroppedInvalid-int64(len(invalidSamples)))
		}
		rep.AddWarning(msg)
		logger.Warn("invalid cells dropped", "count", m.DroppedInvalid)
	}
	if propertyWarnings > propertyWarningLimit {
		rep.AddWarning(fmt.Sprintf("property warnings truncated (%d total)", propertyWarnings))
	}
	return nil
}

const (
	dropInvalid     = "invalid_cell"
	dropResolution  = "resolution"
	dropDuplicate   = "duplicate"
	dropPropertyCap = "property_cap"
)

type featureResult struct {
	Seq           int64
	RowNumber     int64
	Cell          h3.Cell
	CellString    string
	Resolution    int
	Pentagon      bool
	AreaKm2       float64
	Feature       ndjson.Feature
	Record        parquetio.CellRecord
	PropertyBytes int
	PropertyCount int
	QuantResult   props.Result
	DropReason    string
	DropDetail    string
	Err           error
}

func workerLoop(ctx context.Context, jobs <-chan job, results chan<- featureResult, cfg processConfig) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case j, ok := <-jobs:
			if !ok {
				return nil
			}
			fr := buildFeature(j, cfg)
			select {
			case results <- fr:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

func buildFeature(j job, cfg processConfig) featureResult {
	rec := j.rec
	result := featureResult{
		Seq:        j.seq,
		RowNumber:  rec.Line,
		Cell:       rec.Cell,
		CellString: rec.Text,
		Resolution: -1,
	}

	if rec.Err != nil {
		result.DropReason = dropInvalid
		result.DropDetail = rec.Err.Error()
		return result
	}

	cell := rec.Cell
	result.CellString = cell.String()
	result.Resolution = cell.Resolution()
	result.Pentagon = cell.IsPentagon()

	opts := cfg.Options
	if (opts.MinResolution >= 0 && result.Resolution < opts.MinResolution) ||
		(opts.MaxResolution >= 0 && result.Resolution > opts.MaxResolution) {
		result.DropReason = dropResolution
		return result
	}

	user := cfg.Filter.Apply(rec.Properties)
	if user == nil {
		user = make(map[string]any)
	}
	computed, err := props.CellAttributes(cell, cfg.Attributes)
	if err != nil {
		result.Err = fmt.Errorf("row %d: %w", rec.Line, err)
		return result
	}
	if area, err := h3.CellAreaKm2(cell); err == nil {
		result.AreaKm2 = area
	}

	quant := cfg.Quantizer.Apply(user)
	quant.Merge(cfg.Quantizer.Apply(computed))
	result.QuantResult = quant

	userJSON, err := json.Marshal(user)
	if err != nil {
		result.Err = fmt.Errorf("marshal properties: %w", err)
		return result
	}
	result.PropertyBytes = len(userJSON)
	result.PropertyCount = len(user)
	if opts.PropertyByteCap > 0 && result.PropertyBytes > opts.PropertyByteCap {
		result.DropReason = dropPropertyCap
		return result
	}

	if opts.Format == FormatParquet {
		record, err := cellio.NewCellRecord(cell)
		if err != nil {
			result.Err = fmt.Errorf("row %d: %w", rec.Line, err)
			return result
		}
		applyQuantized(&record, computed)
		if len(user) > 0 {
			record.Properties = string(userJSON)
		}
		result.Record = record
		return result
	}

	// Computed attributes win over input columns of the same name.
	for k, v := range computed {
		user[k] = v
	}

	feature := ndjson.Feature{ID: result.CellString, Properties: user}
	switch opts.Geometry {
	case GeometryBoundary:
		polygon, err := h3geom.PolygonFromCell(cell)
		if err != nil {
			result.Err = fmt.Errorf("polygonize %s: %w", result.CellString, err)
			return result
		}
		bound := polygon.Bound()
		feature.Geometry = polygon
		feature.BBox = &bound
	case GeometryCenter:
		center, err := cell.LatLng()
		if err != nil {
			result.Err = fmt.Errorf("center of %s: %w", result.CellString, err)
			return result
		}
		feature.Geometry = h3geom.Point(center)
	}
	result.Feature = feature
	return result
}

// applyQuantized copies rounded computed values back onto a Parquet record.
func applyQuantized(record *parquetio.CellRecord, computed map[string]any) {
	if v, ok := computed[props.KeyAreaKm2].(float64); ok {
		record.AreaKm2 = v
	}
	if v, ok := computed[props.KeyCenterLat].(float64); ok {
		record.CenterLat = v
	}
	if v, ok := computed[props.KeyCenterLng].(float64); ok {
		record.CenterLng = v
	}
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}

func resolveOutput(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve output path: %w", err)
	}
	if err := removeIfExists(abs); err != nil {
		return "", err
	}
	return abs, nil
}
