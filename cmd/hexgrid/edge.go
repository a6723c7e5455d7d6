package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hexatiles/hexgrid/h3"
	"github.com/hexatiles/hexgrid/internal/h3geom"
	"github.com/hexatiles/hexgrid/internal/ndjson"
)

func newEdgeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edge ORIGIN [DESTINATION]",
		Short: "Describe the directed edges leaving a cell",
		Long: "With one cell, lists every directed edge leaving it. With two neighboring cells, " +
			"describes the edge from the first to the second.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			origin, err := parseCellArg(args[0])
			if err != nil {
				return err
			}

			var edges []h3.DirectedEdge
			if len(args) == 2 {
				dest, err := parseCellArg(args[1])
				if err != nil {
					return err
				}
				edge, err := h3.CellsToDirectedEdge(origin, dest)
				if err != nil {
					return err
				}
				edges = []h3.DirectedEdge{edge}
			} else if edges, err = h3.OriginToDirectedEdges(origin); err != nil {
				return err
			}

			asGeoJSON, _ := cmd.Flags().GetBool("geojson")
			if asGeoJSON {
				return writeEdgeCollection(cmd, edges)
			}

			out := cmd.OutOrStdout()
			for i, edge := range edges {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fields, err := describeEdge(edge)
				if err != nil {
					return err
				}
				printFields(out, edge.String(), fields)
			}
			return nil
		},
	}
	cmd.Flags().Bool("geojson", false, "Print a GeoJSON FeatureCollection of edge lines")
	return cmd
}

func describeEdge(edge h3.DirectedEdge) ([]field, error) {
	origin, dest, err := edge.Cells()
	if err != nil {
		return nil, err
	}
	length, err := edge.EdgeLengthKm()
	if err != nil {
		return nil, err
	}
	boundary, err := edge.Boundary()
	if err != nil {
		return nil, err
	}
	fields := []field{
		{"origin", origin.String()},
		{"destination", dest.String()},
		{"length", fmt.Sprintf("%.6f km", length)},
	}
	for _, v := range boundary {
		fields = append(fields, field{"vertex", formatLatLng(v)})
	}
	return fields, nil
}

func writeEdgeCollection(cmd *cobra.Command, edges []h3.DirectedEdge) error {
	features := make([]ndjson.Feature, 0, len(edges))
	for _, edge := range edges {
		line, err := h3geom.LineFromEdge(edge)
		if err != nil {
			return err
		}
		origin, dest, err := edge.Cells()
		if err != nil {
			return err
		}
		length, err := edge.EdgeLengthKm()
		if err != nil {
			return err
		}
		features = append(features, ndjson.Feature{
			ID:       edge.String(),
			Geometry: line,
			Properties: map[string]any{
				"origin":      origin.String(),
				"destination": dest.String(),
				"length_km":   length,
			},
		})
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(ndjson.Collection(features))
}
