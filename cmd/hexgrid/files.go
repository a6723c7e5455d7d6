package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/parquet-go/parquet-go"
	"github.com/spf13/cobra"

	"github.com/hexatiles/hexgrid/h3"
	"github.com/hexatiles/hexgrid/internal/cellio"
	"github.com/hexatiles/hexgrid/internal/export"
	"github.com/hexatiles/hexgrid/internal/report"
	"github.com/hexatiles/hexgrid/internal/validate"
)

func newValidateCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate cell files",
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, _ := cmd.Flags().GetStringArray("in")
			if len(inputs) == 0 {
				return fmt.Errorf("no input files provided")
			}
			column, _ := cmd.Flags().GetString("column")
			minRes, _ := cmd.Flags().GetInt("min-res")
			maxRes, _ := cmd.Flags().GetInt("max-res")
			sampleLimit, _ := cmd.Flags().GetInt("sample")

			hasErrors := false
			out := cmd.OutOrStdout()
			for _, path := range inputs {
				res, err := validate.Run(cmd.Context(), validate.Options{
					InputPath:     path,
					Column:        column,
					MinResolution: minRes,
					MaxResolution: maxRes,
					SampleLimit:   sampleLimit,
				})
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				a.logger.Debug("validated input", "path", path, "rows", res.TotalRows, "duration", res.Duration)

				fields := []field{
					{"rows", fmt.Sprintf("%d valid: %d invalid: %d filtered: %d", res.TotalRows, res.ValidRows, res.InvalidCells, res.ResolutionFiltered)},
					{"duplicates", strconv.FormatInt(res.Duplicates, 10)},
					{"pentagons", strconv.FormatInt(res.Pentagons, 10)},
					{"base cells", strconv.Itoa(res.BaseCells)},
				}
				if res.MinResolutionSeen >= 0 {
					fields = append(fields, field{"resolutions", fmt.Sprintf("r%d -> r%d", res.MinResolutionSeen, res.MaxResolutionSeen)})
				}
				fields = append(fields,
					field{"overlapping", strconv.FormatBool(res.Overlapping)},
					field{"duration", formatDuration(res.Duration)},
				)
				printFields(out, path, fields)

				if res.InvalidCells > 0 {
					hasErrors = true
					fmt.Fprintf(out, "  invalid samples:\n")
					for _, sample := range res.InvalidSamples {
						fmt.Fprintf(out, "    row %d (%s): %s\n", sample.RowNumber, sample.H3, sample.Message)
					}
					if int64(len(res.InvalidSamples)) < res.InvalidCells {
						fmt.Fprintf(out, "    ... %d more\n", res.InvalidCells-int64(len(res.InvalidSamples)))
					}
				}
			}

			if hasErrors {
				return fmt.Errorf("validation failed: invalid cells detected")
			}
			return nil
		},
	}

	cmd.Flags().StringArray("in", nil, "Input cell files (text, .zst, .roar or .parquet)")
	cmd.Flags().String("column", "", "Parquet column holding the cells (default: detected)")
	cmd.Flags().Int("min-res", -1, "Minimum allowed resolution")
	cmd.Flags().Int("max-res", -1, "Maximum allowed resolution")
	cmd.Flags().Int("sample", 5, "Number of invalid samples to display")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

func newExportCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Convert cell files into GeoJSON features or enriched Parquet",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, _ := cmd.Flags().GetString("in")
			output, _ := cmd.Flags().GetString("out")
			format, _ := cmd.Flags().GetString("format")
			geometry, _ := cmd.Flags().GetString("geometry")
			column, _ := cmd.Flags().GetString("column")
			minRes, _ := cmd.Flags().GetInt("min-res")
			maxRes, _ := cmd.Flags().GetInt("max-res")
			dedupe, _ := cmd.Flags().GetBool("dedupe")
			propsKeep, _ := cmd.Flags().GetStringSlice("props")
			propsDrop, _ := cmd.Flags().GetStringSlice("props-drop")
			attributes, _ := cmd.Flags().GetStringSlice("attributes")
			quantizeSpec, _ := cmd.Flags().GetString("quantize")
			propertyCap, _ := cmd.Flags().GetInt("property-cap")
			reportPath, _ := cmd.Flags().GetString("report")

			result, err := export.Run(cmd.Context(), export.Options{
				InputPath:       input,
				OutputPath:      output,
				Format:          format,
				Geometry:        geometry,
				Column:          column,
				MinResolution:   minRes,
				MaxResolution:   maxRes,
				Dedupe:          dedupe,
				PropertyInclude: parseList(propsKeep),
				PropertyDrop:    parseList(propsDrop),
				Attributes:      parseList(attributes),
				QuantizeSpec:    quantizeSpec,
				PropertyByteCap: propertyCap,
				Threads:         a.cfg.Threads,
				ReportPath:      reportPath,
				Stdout:          cmd.OutOrStdout(),
				Logger:          a.logger,
			})
			if err != nil {
				return err
			}

			m := result.Report.Metrics
			dropped := m.TotalRows - m.EmittedFeatures
			a.logger.Info("export complete",
				"duration", formatDuration(m.Duration),
				"features", m.EmittedFeatures,
				"dropped", dropped,
				"output", m.OutputPath,
				"size", report.FormatBytes(m.OutputSize),
			)
			if output != "-" {
				printWarnings(cmd.ErrOrStderr(), m.Warnings)
			}
			return nil
		},
	}

	cmd.Flags().String("in", "", "Input cell file (text, .zst, .roar or .parquet; - for stdin)")
	cmd.Flags().StringP("out", "o", "-", "Output file (- for stdout)")
	cmd.Flags().String("format", "", "Output format: ndjson or parquet (default: from extension)")
	cmd.Flags().String("geometry", export.GeometryBoundary, "Feature geometry: boundary, center or none")
	cmd.Flags().String("column", "", "Parquet column holding the cells (default: detected)")
	cmd.Flags().Int("min-res", -1, "Minimum allowed resolution")
	cmd.Flags().Int("max-res", -1, "Maximum allowed resolution")
	cmd.Flags().Bool("dedupe", false, "Drop repeated cells")
	cmd.Flags().StringSlice("props", nil, "Input properties to keep (globs)")
	cmd.Flags().StringSlice("props-drop", nil, "Input properties to drop (globs)")
	cmd.Flags().StringSlice("attributes", nil, "Computed attributes to add (default: all)")
	cmd.Flags().String("quantize", "", "Quantization directives (float=0.01,int=1,field=step)")
	cmd.Flags().Int("property-cap", export.DefaultPropertyByteCap, "Maximum property bytes per feature (negative to disable)")
	cmd.Flags().String("report", "", "Write a run report (.json or .html)")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

type propertyInfo struct {
	Type    string
	Example string
	Count   int
	Mixed   bool
}

func newSchemaCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Sample a cell file and describe its properties and resolutions",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, _ := cmd.Flags().GetString("in")
			column, _ := cmd.Flags().GetString("column")
			sampleLimit, _ := cmd.Flags().GetInt("sample")

			src, err := cellio.Open(input, cellio.Options{Column: column})
			if err != nil {
				return fmt.Errorf("open cell input: %w", err)
			}
			defer src.Close()

			props := make(map[string]*propertyInfo)
			resHistogram := make(map[int]int64)
			invalidSamples := make([]string, 0, 5)
			invalidRows := int64(0)
			sampled := 0

			for sampled < sampleLimit {
				rec, err := src.Next()
				if errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					return fmt.Errorf("read record: %w", err)
				}
				sampled++

				if rec.Err != nil {
					invalidRows++
					if len(invalidSamples) < cap(invalidSamples) {
						invalidSamples = append(invalidSamples, rec.Err.Error())
					}
					continue
				}
				resHistogram[rec.Cell.Resolution()]++

				for key, value := range rec.Properties {
					info := props[key]
					valueType := detectType(value)
					if info == nil {
						info = &propertyInfo{Type: valueType}
						props[key] = info
					}
					if info.Type != valueType {
						info.Mixed = true
					}
					info.Count++
					if info.Example == "" && value != nil {
						info.Example = formatExample(value)
					}
				}
			}

			out := cmd.OutOrStdout()
			printFields(out, input, []field{
				{"format", cellio.FormatOf(input).String()},
				{"sampled rows", fmt.Sprintf("%d (limit %d)", sampled, sampleLimit)},
				{"invalid rows", strconv.FormatInt(invalidRows, 10)},
			})
			if len(invalidSamples) > 0 {
				fmt.Fprintf(out, "  invalid samples:\n")
				for _, sample := range invalidSamples {
					fmt.Fprintf(out, "    %s\n", sample)
				}
				if invalidRows > int64(len(invalidSamples)) {
					fmt.Fprintf(out, "    ... %d more\n", invalidRows-int64(len(invalidSamples)))
				}
			}

			if len(props) > 0 {
				fmt.Fprintf(out, "  properties:\n")
				for _, name := range sortedKeys(props) {
					info := props[name]
					typ := info.Type
					if info.Mixed {
						typ += " (mixed)"
					}
					example := info.Example
					if example == "" {
						example = "n/a"
					}
					fmt.Fprintf(out, "    %s: %s (%d samples, example %s)\n", name, typ, info.Count, example)
				}
			} else {
				fmt.Fprintf(out, "  properties: none\n")
			}

			if len(resHistogram) > 0 {
				fmt.Fprintf(out, "  resolutions:\n")
				for _, res := range sortedKeys(resHistogram) {
					fmt.Fprintf(out, "    r%d: %d\n", res, resHistogram[res])
				}
			}
			return nil
		},
	}

	cmd.Flags().String("in", "", "Input cell file")
	cmd.Flags().String("column", "", "Parquet column holding the cells (default: detected)")
	cmd.Flags().Int("sample", 5000, "Number of rows to sample")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

func sortedKeys[K int | string, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func detectType(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "bool"
	case int, int32, int64, uint, uint32, uint64:
		return "int"
	case float32, float64:
		return "float"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func formatExample(value any) string {
	if s, ok := value.(string); ok {
		if len(s) > 48 {
			s = s[:45] + "..."
		}
		return strconv.Quote(s)
	}
	s := fmt.Sprint(value)
	if len(s) > 48 {
		return s[:45] + "..."
	}
	return s
}

func newSampleCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Generate a sample Parquet file of cells for testing",
		Long:  "Generate a sample Parquet file containing cells in rings around Boston Common with demo data (score, category, ring).",
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("out")
			count, _ := cmd.Flags().GetInt("count")
			resolution, _ := cmd.Flags().GetInt("res")

			n, err := generateSampleData(output, count, resolution)
			if err != nil {
				return err
			}
			a.logger.Info("generated sample data", "cells", n, "resolution", resolution, "path", output)
			return nil
		},
	}

	cmd.Flags().StringP("out", "o", "dist/sample.parquet", "Output Parquet file path")
	cmd.Flags().IntP("count", "c", 5, "Number of rings around the center")
	cmd.Flags().IntP("res", "r", 8, "Resolution (0-15)")
	return cmd
}

// SampleRow is one row of the sample Parquet file.
type SampleRow struct {
	H3       string  `parquet:"h3"`
	Score    float64 `parquet:"score"`
	Category string  `parquet:"category"`
	Ring     int32   `parquet:"ring"`
}

func generateSampleData(outputPath string, rings, resolution int) (int, error) {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return 0, fmt.Errorf("failed to create output directory: %w", err)
	}

	center, err := h3.LatLngToCell(h3.NewLatLng(42.355, -71.065), resolution)
	if err != nil {
		return 0, fmt.Errorf("failed to index sample center: %w", err)
	}
	cells, dist, err := h3.GridDiskDistances(center, rings)
	if err != nil {
		return 0, fmt.Errorf("failed to generate grid disk: %w", err)
	}

	rows := make([]SampleRow, 0, len(cells))
	for i, c := range cells {
		category := "demo"
		if i%2 == 1 {
			category = "test"
		}
		rows = append(rows, SampleRow{
			H3:       c.String(),
			Score:    float64(i%10) * 0.1,
			Category: category,
			Ring:     int32(dist[i]),
		})
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create parquet file: %w", err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[SampleRow](file, parquet.SchemaOf(SampleRow{}))
	if _, err := writer.Write(rows); err != nil {
		return 0, fmt.Errorf("failed to write parquet data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return 0, fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return len(rows), file.Close()
}
