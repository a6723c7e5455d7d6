package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hexatiles/hexgrid/h3"
	"github.com/hexatiles/hexgrid/internal/h3geom"
	"github.com/hexatiles/hexgrid/internal/ndjson"
	"github.com/hexatiles/hexgrid/internal/props"
)

func newIndexCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index LAT,LNG...",
		Short: "Index coordinates into cells",
		Example: "  hexgrid index --res 9 37.7749,-122.4194\n" +
			"  hexgrid index --res 5 -- -33.86,151.21",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, _ := cmd.Flags().GetInt("res")
			cells := make([]h3.Cell, 0, len(args))
			for _, arg := range args {
				g, err := parseLatLng(arg)
				if err != nil {
					return err
				}
				c, err := h3.LatLngToCell(g, res)
				if err != nil {
					return fmt.Errorf("index %s: %w", arg, err)
				}
				cells = append(cells, c)
			}
			a.logger.Debug("indexed coordinates", "count", len(cells), "resolution", res)
			return writeCells(cmd, cells)
		},
	}
	cmd.Flags().IntP("res", "r", 9, "Target resolution (0-15)")
	addOutputFlags(cmd)
	return cmd
}

func newCenterCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "center [CELL...]",
		Short: "Print the center coordinate of cells",
		RunE: func(cmd *cobra.Command, args []string) error {
			cells, err := inputCells(cmd, args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, c := range cells {
				g, err := c.LatLng()
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s\t%s\n", c, formatLatLng(g))
			}
			return nil
		},
	}
	addInputFlags(cmd)
	return cmd
}

func newBoundaryCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "boundary [CELL...]",
		Short: "Print the boundary vertices of cells",
		RunE: func(cmd *cobra.Command, args []string) error {
			cells, err := inputCells(cmd, args)
			if err != nil {
				return err
			}
			asGeoJSON, _ := cmd.Flags().GetBool("geojson")
			out := cmd.OutOrStdout()

			if asGeoJSON {
				features := make([]ndjson.Feature, 0, len(cells))
				for _, c := range cells {
					poly, err := h3geom.PolygonFromCell(c)
					if err != nil {
						return err
					}
					bound := poly.Bound()
					features = append(features, ndjson.Feature{
						ID:         c.String(),
						Geometry:   poly,
						Properties: map[string]any{props.KeyCell: c.String(), props.KeyResolution: c.Resolution()},
						BBox:       &bound,
					})
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(ndjson.Collection(features))
			}

			for _, c := range cells {
				boundary, err := c.Boundary()
				if err != nil {
					return err
				}
				fmt.Fprintln(out, c)
				for _, v := range boundary {
					fmt.Fprintf(out, "  %s\n", formatLatLng(v))
				}
			}
			return nil
		},
	}
	cmd.Flags().Bool("geojson", false, "Print a GeoJSON FeatureCollection")
	addInputFlags(cmd)
	return cmd
}

func newInspectCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [CELL...]",
		Short: "Describe cells: resolution, base cell, faces, center and area",
		RunE: func(cmd *cobra.Command, args []string) error {
			cells, err := inputCells(cmd, args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, c := range cells {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fields, err := describeCell(c)
				if err != nil {
					return err
				}
				printFields(out, c.String(), fields)
			}
			return nil
		},
	}
	addInputFlags(cmd)
	return cmd
}

func describeCell(c h3.Cell) ([]field, error) {
	center, err := c.LatLng()
	if err != nil {
		return nil, err
	}
	boundary, err := c.Boundary()
	if err != nil {
		return nil, err
	}
	faces, err := h3.GetIcosahedronFaces(c)
	if err != nil {
		return nil, err
	}
	area, err := h3.CellAreaKm2(c)
	if err != nil {
		return nil, err
	}
	faceNames := make([]string, len(faces))
	for i, f := range faces {
		faceNames[i] = strconv.Itoa(f)
	}

	class := "II"
	if c.IsResClassIII() {
		class = "III"
	}
	fields := []field{
		{"resolution", fmt.Sprintf("%d (class %s)", c.Resolution(), class)},
		{"base cell", strconv.Itoa(c.BaseCell())},
		{"pentagon", strconv.FormatBool(c.IsPentagon())},
		{"faces", strings.Join(faceNames, ", ")},
		{"center", formatLatLng(center)},
		{"vertices", strconv.Itoa(len(boundary))},
		{"area", fmt.Sprintf("%.6f km²", area)},
	}
	if res := c.Resolution(); res > 0 {
		parent, err := c.Parent(res - 1)
		if err != nil {
			return nil, err
		}
		fields = append(fields, field{"parent", parent.String()})
	}
	return fields, nil
}

func newParentCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parent [CELL...]",
		Short: "Print the ancestor of cells at a coarser resolution",
		RunE: func(cmd *cobra.Command, args []string) error {
			cells, err := inputCells(cmd, args)
			if err != nil {
				return err
			}
			res, _ := cmd.Flags().GetInt("res")
			parents := make([]h3.Cell, 0, len(cells))
			for _, c := range cells {
				target := res
				if target < 0 {
					target = c.Resolution() - 1
				}
				p, err := h3.CellToParent(c, target)
				if err != nil {
					return fmt.Errorf("parent of %s: %w", c, err)
				}
				parents = append(parents, p)
			}
			return writeCells(cmd, parents)
		},
	}
	cmd.Flags().IntP("res", "r", -1, "Parent resolution (default: one coarser)")
	addInputFlags(cmd)
	addOutputFlags(cmd)
	return cmd
}

func newChildrenCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "children [CELL...]",
		Short: "Print the descendants of cells at a finer resolution",
		RunE: func(cmd *cobra.Command, args []string) error {
			cells, err := inputCells(cmd, args)
			if err != nil {
				return err
			}
			res, _ := cmd.Flags().GetInt("res")
			center, _ := cmd.Flags().GetBool("center")

			var out []h3.Cell
			for _, c := range cells {
				target := res
				if target < 0 {
					target = c.Resolution() + 1
				}
				if center {
					child, err := h3.CellToCenterChild(c, target)
					if err != nil {
						return fmt.Errorf("center child of %s: %w", c, err)
					}
					out = append(out, child)
					continue
				}
				children, err := h3.CellToChildren(c, target)
				if err != nil {
					return fmt.Errorf("children of %s: %w", c, err)
				}
				out = append(out, children...)
			}
			a.logger.Debug("expanded cells", "inputs", len(cells), "children", len(out))
			return writeCells(cmd, out)
		},
	}
	cmd.Flags().IntP("res", "r", -1, "Child resolution (default: one finer)")
	cmd.Flags().Bool("center", false, "Print only the center child")
	addInputFlags(cmd)
	addOutputFlags(cmd)
	return cmd
}

func newCompactCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compact [CELL...]",
		Short: "Replace complete groups of siblings by their parent",
		RunE: func(cmd *cobra.Command, args []string) error {
			cells, err := inputCells(cmd, args)
			if err != nil {
				return err
			}
			compacted, err := h3.CompactCells(cells)
			if err != nil {
				return err
			}
			a.logger.Info("compacted cells", "in", len(cells), "out", len(compacted))
			return writeCells(cmd, compacted)
		},
	}
	addInputFlags(cmd)
	addOutputFlags(cmd)
	return cmd
}

func newUncompactCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uncompact [CELL...]",
		Short: "Expand cells to a single resolution",
		RunE: func(cmd *cobra.Command, args []string) error {
			cells, err := inputCells(cmd, args)
			if err != nil {
				return err
			}
			res, _ := cmd.Flags().GetInt("res")
			expanded, err := h3.UncompactCells(cells, res)
			if err != nil {
				return err
			}
			a.logger.Info("uncompacted cells", "in", len(cells), "out", len(expanded), "resolution", res)
			return writeCells(cmd, expanded)
		},
	}
	cmd.Flags().IntP("res", "r", 0, "Target resolution")
	_ = cmd.MarkFlagRequired("res")
	addInputFlags(cmd)
	addOutputFlags(cmd)
	return cmd
}
