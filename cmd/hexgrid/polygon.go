package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/hexatiles/hexgrid/h3"
	"github.com/hexatiles/hexgrid/internal/cellset"
	"github.com/hexatiles/hexgrid/internal/h3geom"
)

func newPolyfillCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "polyfill",
		Short: "Fill polygons with the cells whose centers they contain",
		Example: "  hexgrid polyfill --geojson city.geojson --res 8 -o city.roar\n" +
			"  hexgrid polyfill --bbox -122.52,37.70,-122.35,37.83 --res 7",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, _ := cmd.Flags().GetInt("res")
			path, _ := cmd.Flags().GetString("geojson")
			bbox, _ := cmd.Flags().GetString("bbox")
			compact, _ := cmd.Flags().GetBool("compact")

			var geoms []orb.Geometry
			switch {
			case path != "" && bbox != "":
				return fmt.Errorf("use either --geojson or --bbox")
			case path != "":
				var err error
				if geoms, err = readGeometries(path, cmd.InOrStdin()); err != nil {
					return err
				}
			case bbox != "":
				b, err := parseBound(bbox)
				if err != nil {
					return err
				}
				geoms = []orb.Geometry{b}
			default:
				return fmt.Errorf("no polygon given: use --geojson or --bbox")
			}

			var polygons []h3.GeoPolygon
			for _, g := range geoms {
				polys, err := h3geom.GeoPolygons(g)
				if errors.Is(err, h3geom.ErrUnsupportedGeometry) {
					a.logger.Warn("skipping geometry", "type", geometryType(g))
					continue
				}
				if err != nil {
					return err
				}
				polygons = append(polygons, polys...)
			}
			if len(polygons) == 0 {
				return fmt.Errorf("no polygons in input")
			}

			cells, err := fillPolygons(cmd, a, polygons, res)
			if err != nil {
				return err
			}
			a.logger.Info("filled polygons", "polygons", len(polygons), "cells", len(cells), "resolution", res)
			if compact {
				if cells, err = h3.CompactCells(cells); err != nil {
					return err
				}
			}
			return writeCells(cmd, cells)
		},
	}
	cmd.Flags().IntP("res", "r", 9, "Target resolution (0-15)")
	cmd.Flags().String("geojson", "", "GeoJSON file holding a geometry, feature or feature collection (- for stdin)")
	cmd.Flags().String("bbox", "", "Bounding box as minLng,minLat,maxLng,maxLat")
	cmd.Flags().Bool("compact", false, "Compact the filled cells")
	addOutputFlags(cmd)
	return cmd
}

// fillPolygons fills every polygon concurrently and merges the results in
// input order without repeats.
func fillPolygons(cmd *cobra.Command, a *app, polygons []h3.GeoPolygon, res int) ([]h3.Cell, error) {
	filled := make([][]h3.Cell, len(polygons))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(max(a.cfg.Threads, 1))
	for i, p := range polygons {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			cells, err := h3.PolygonToCells(p, res)
			if err != nil {
				return fmt.Errorf("polygon %d: %w", i, err)
			}
			filled[i] = cells
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	set := cellset.New[h3.Cell]()
	var out []h3.Cell
	for _, cells := range filled {
		for _, c := range cells {
			if set.Add(c) {
				out = append(out, c)
			}
		}
	}
	return out, nil
}

// readGeometries decodes a GeoJSON document of any top-level type.
func readGeometries(path string, stdin io.Reader) ([]orb.Geometry, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read geojson: %w", err)
	}

	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decode geojson %s: %w", path, err)
	}

	switch head.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, fmt.Errorf("decode geojson %s: %w", path, err)
		}
		geoms := make([]orb.Geometry, 0, len(fc.Features))
		for _, f := range fc.Features {
			geoms = append(geoms, f.Geometry)
		}
		return geoms, nil
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, fmt.Errorf("decode geojson %s: %w", path, err)
		}
		return []orb.Geometry{f.Geometry}, nil
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, fmt.Errorf("decode geojson %s: %w", path, err)
		}
		return []orb.Geometry{g.Geometry()}, nil
	}
}

func parseBound(s string) (orb.Bound, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return orb.Bound{}, fmt.Errorf("bbox %q: want minLng,minLat,maxLng,maxLat", s)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return orb.Bound{}, fmt.Errorf("bbox %q: %w", s, err)
		}
		v[i] = f
	}
	if v[0] > v[2] || v[1] > v[3] {
		return orb.Bound{}, fmt.Errorf("bbox %q: min exceeds max", s)
	}
	return orb.Bound{Min: orb.Point{v[0], v[1]}, Max: orb.Point{v[2], v[3]}}, nil
}

func geometryType(g orb.Geometry) string {
	if g == nil {
		return "null"
	}
	return g.GeoJSONType()
}

func newOutlineCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "outline [CELL...]",
		Short: "Print the outline of a set of cells as a GeoJSON feature",
		RunE: func(cmd *cobra.Command, args []string) error {
			cells, err := inputCells(cmd, args)
			if err != nil {
				return err
			}
			mp, err := h3geom.MultiPolygonFromCells(cells)
			if err != nil {
				return err
			}
			a.logger.Debug("traced outline", "cells", len(cells), "polygons", len(mp))

			feature := geojson.NewFeature(mp)
			feature.Properties["cells"] = len(cells)
			feature.Properties["polygons"] = len(mp)
			feature.BBox = geojson.NewBBox(mp.Bound())

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(feature)
		},
	}
	addInputFlags(cmd)
	return cmd
}

func newInfoCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Print grid statistics for resolutions",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, _ := cmd.Flags().GetInt("res")
			lo, hi := 0, h3.MaxResolution
			if res >= 0 {
				lo, hi = res, res
			}
			out := cmd.OutOrStdout()
			for r := lo; r <= hi; r++ {
				if r > lo {
					fmt.Fprintln(out)
				}
				fields, err := describeResolution(r)
				if err != nil {
					return err
				}
				printFields(out, "resolution "+strconv.Itoa(r), fields)
			}
			return nil
		},
	}
	cmd.Flags().IntP("res", "r", -1, "Resolution (default: all)")
	return cmd
}

func describeResolution(res int) ([]field, error) {
	count, err := h3.NumCells(res)
	if err != nil {
		return nil, err
	}
	area, err := h3.HexagonAreaAvgKm2(res)
	if err != nil {
		return nil, err
	}
	edge, err := h3.HexagonEdgeLengthAvgKm(res)
	if err != nil {
		return nil, err
	}
	class := "II"
	if h3.IsResClassIII(res) {
		class = "III"
	}
	return []field{
		{"cells", strconv.FormatInt(count, 10)},
		{"pentagons", strconv.Itoa(h3.NumPentagons)},
		{"class", class},
		{"avg area", strconv.FormatFloat(area, 'g', 10, 64) + " km²"},
		{"avg edge", strconv.FormatFloat(edge, 'g', 10, 64) + " km"},
	}, nil
}
