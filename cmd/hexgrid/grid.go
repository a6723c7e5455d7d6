package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/hexatiles/hexgrid/h3"
	"github.com/hexatiles/hexgrid/internal/cellset"
)

func newDiskCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "disk [CELL...]",
		Short: "Print every cell within k steps of each origin",
		RunE: func(cmd *cobra.Command, args []string) error {
			origins, err := inputCells(cmd, args)
			if err != nil {
				return err
			}
			k, _ := cmd.Flags().GetInt("k")
			distances, _ := cmd.Flags().GetBool("distances")

			if distances {
				out := cmd.OutOrStdout()
				for _, origin := range origins {
					cells, dist, err := h3.GridDiskDistances(origin, k)
					if err != nil {
						return fmt.Errorf("disk around %s: %w", origin, err)
					}
					for i, c := range cells {
						fmt.Fprintf(out, "%s\t%d\n", c, dist[i])
					}
				}
				return nil
			}

			disks, err := gridDisks(cmd, a, origins, k)
			if err != nil {
				return err
			}
			set := cellset.New[h3.Cell]()
			var merged []h3.Cell
			for _, disk := range disks {
				for _, c := range disk {
					if set.Add(c) {
						merged = append(merged, c)
					}
				}
			}
			a.logger.Debug("grid disk", "origins", len(origins), "k", k, "cells", len(merged))
			return writeCells(cmd, merged)
		},
	}
	cmd.Flags().IntP("k", "k", 1, "Grid distance")
	cmd.Flags().Bool("distances", false, "Print the distance of every cell from its origin")
	addInputFlags(cmd)
	addOutputFlags(cmd)
	return cmd
}

// gridDisks computes the disk around every origin on a bounded pool of
// workers. The result keeps the order of origins.
func gridDisks(cmd *cobra.Command, a *app, origins []h3.Cell, k int) ([][]h3.Cell, error) {
	out := make([][]h3.Cell, len(origins))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(max(a.cfg.Threads, 1))
	for i, origin := range origins {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			disk, err := h3.GridDisk(origin, k)
			if err != nil {
				return fmt.Errorf("disk around %s: %w", origin, err)
			}
			out[i] = disk
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func newRingCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ring CELL",
		Short: "Print the cells exactly k steps from an origin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			origin, err := parseCellArg(args[0])
			if err != nil {
				return err
			}
			k, _ := cmd.Flags().GetInt("k")
			ring, err := h3.GridRing(origin, k)
			if err != nil {
				return err
			}
			return writeCells(cmd, ring)
		},
	}
	cmd.Flags().IntP("k", "k", 1, "Grid distance")
	addOutputFlags(cmd)
	return cmd
}

func newDistanceCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "distance CELL CELL",
		Short: "Print the grid distance and great circle distance between two cells",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := parseCellPair(args)
			if err != nil {
				return err
			}
			steps, err := h3.GridDistance(from, to)
			if err != nil {
				return err
			}
			fromCenter, err := from.LatLng()
			if err != nil {
				return err
			}
			toCenter, err := to.LatLng()
			if err != nil {
				return err
			}
			angle := h3.GreatCircleAngle(fromCenter, toCenter)
			printFields(cmd.OutOrStdout(), from.String()+" → "+to.String(), []field{
				{"grid distance", strconv.Itoa(steps)},
				{"great circle", fmt.Sprintf("%.6f km", angle.Radians()*h3.EarthRadiusKm)},
				{"angle", fmt.Sprintf("%.6f°", angle.Degrees())},
			})
			return nil
		},
	}
}

func newPathCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "path CELL CELL",
		Short: "Print a line of adjacent cells between two cells",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := parseCellPair(args)
			if err != nil {
				return err
			}
			path, err := h3.GridPath(from, to)
			if err != nil {
				return err
			}
			return writeCells(cmd, path)
		},
	}
	addOutputFlags(cmd)
	return cmd
}

func newLocalIJCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "local-ij ORIGIN CELL | ORIGIN --ij I,J",
		Short: "Convert between cells and IJ coordinates local to an origin",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			origin, err := parseCellArg(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if ij, _ := cmd.Flags().GetIntSlice("ij"); len(ij) > 0 {
				if len(ij) != 2 {
					return fmt.Errorf("--ij wants two values, got %d", len(ij))
				}
				c, err := h3.LocalIJToCell(origin, h3.CoordIJ{I: ij[0], J: ij[1]})
				if err != nil {
					return err
				}
				fmt.Fprintln(out, c)
				return nil
			}

			if len(args) != 2 {
				return fmt.Errorf("need a cell or --ij")
			}
			c, err := parseCellArg(args[1])
			if err != nil {
				return err
			}
			ij, err := h3.CellToLocalIJ(origin, c)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%d,%d\n", ij.I, ij.J)
			return nil
		},
	}
	cmd.Flags().IntSlice("ij", nil, "Local coordinate to convert back to a cell")
	return cmd
}

func newNeighborsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "neighbors CELL CELL",
		Short: "Report whether two cells share an edge",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := parseCellPair(args)
			if err != nil {
				return err
			}
			ok, err := h3.AreNeighbors(from, to)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ok)
			return nil
		},
	}
}

func parseCellPair(args []string) (h3.Cell, h3.Cell, error) {
	from, err := parseCellArg(args[0])
	if err != nil {
		return 0, 0, err
	}
	to, err := parseCellArg(args[1])
	if err != nil {
		return 0, 0, err
	}
	return from, to, nil
}
