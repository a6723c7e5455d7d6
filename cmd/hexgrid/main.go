package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/hexatiles/hexgrid/h3"
	"github.com/hexatiles/hexgrid/internal/cellio"
	"github.com/hexatiles/hexgrid/internal/config"
)

// These variables are set via ldflags during build
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := fang.Execute(
		context.Background(),
		newRootCommand(),
		fang.WithVersion(fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

// app carries the settings resolved before any subcommand runs.
type app struct {
	cfg    config.Config
	logger *log.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{cfg: config.Default(), logger: log.New(io.Discard)}

	cmd := &cobra.Command{
		Use:   "hexgrid",
		Short: "hexgrid: hierarchical hexagonal grid toolkit",
		Long: "hexgrid indexes coordinates into a hierarchical hexagonal grid on the sphere, " +
			"walks grid neighborhoods and hierarchies, fills polygons with cells and exports cells as GeoJSON or Parquet.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			lvl, err := cfg.Level()
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
				Prefix:          "hexgrid",
				Level:           lvl,
				ReportTimestamp: lvl <= log.DebugLevel,
			})
			return nil
		},
	}

	cmd.PersistentFlags().String("config", "", "Configuration file (yaml, toml or json); env HEXGRID_CONFIG")
	cmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().Int("threads", 0, "Number of worker threads (default: runtime.NumCPU())")

	cmd.AddCommand(
		newIndexCommand(a),
		newCenterCommand(a),
		newBoundaryCommand(a),
		newInspectCommand(a),
		newParentCommand(a),
		newChildrenCommand(a),
		newCompactCommand(a),
		newUncompactCommand(a),
		newDiskCommand(a),
		newRingCommand(a),
		newDistanceCommand(a),
		newPathCommand(a),
		newLocalIJCommand(a),
		newNeighborsCommand(a),
		newEdgeCommand(a),
		newPolyfillCommand(a),
		newOutlineCommand(a),
		newInfoCommand(a),
		newValidateCommand(a),
		newExportCommand(a),
		newSchemaCommand(a),
		newSampleCommand(a),
		newPreviewCommand(a),
	)
	return cmd
}

// parseLatLng reads "lat,lng" in degrees.
func parseLatLng(s string) (h3.LatLng, error) {
	latStr, lngStr, ok := strings.Cut(s, ",")
	if !ok {
		return h3.LatLng{}, fmt.Errorf("coordinate %q: want lat,lng", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return h3.LatLng{}, fmt.Errorf("coordinate %q: %w", s, err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngStr), 64)
	if err != nil {
		return h3.LatLng{}, fmt.Errorf("coordinate %q: %w", s, err)
	}
	return h3.NewLatLng(lat, lng), nil
}

func formatLatLng(g h3.LatLng) string {
	lat, lng := h3.Degrees(g)
	return strconv.FormatFloat(lat, 'f', 9, 64) + "," + strconv.FormatFloat(lng, 'f', 9, 64)
}

// inputCells returns the cells named in args, or read from --in when no
// argument is given.
func inputCells(cmd *cobra.Command, args []string) ([]h3.Cell, error) {
	if len(args) > 0 {
		cells := make([]h3.Cell, 0, len(args))
		for _, arg := range args {
			c, err := parseCellArg(arg)
			if err != nil {
				return nil, err
			}
			cells = append(cells, c)
		}
		return cells, nil
	}

	in, _ := cmd.Flags().GetString("in")
	if in == "" {
		return nil, fmt.Errorf("no cells given: pass indexes as arguments or use --in")
	}
	column, _ := cmd.Flags().GetString("column")
	return cellio.ReadFile(in, cellio.Options{Column: column})
}

func parseCellArg(s string) (h3.Cell, error) {
	c, err := h3.ParseCell(strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X"))
	if err != nil {
		return 0, err
	}
	if !c.IsValid() {
		return 0, fmt.Errorf("%w: %s", h3.ErrMalformedIndex, s)
	}
	return c, nil
}

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().String("in", "", "Read cells from a file (text, .zst, .roar or .parquet; - for stdin)")
	cmd.Flags().String("column", "", "Parquet column holding the cells (default: detected)")
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("out", "o", "", "Write cells to a file instead of stdout")
	cmd.Flags().String("format", "", "Output format: text, zstd, roaring or parquet (default: from extension)")
}

// writeCells prints cells, one per line, or stores them in --out.
func writeCells(cmd *cobra.Command, cells []h3.Cell) error {
	out, _ := cmd.Flags().GetString("out")
	formatName, _ := cmd.Flags().GetString("format")
	if out == "" || out == "-" {
		f := cellio.Text
		if formatName != "" {
			var err error
			if f, err = cellio.ParseFormat(formatName); err != nil {
				return err
			}
		}
		return cellio.Write(cmd.OutOrStdout(), f, cells)
	}

	f := cellio.FormatOf(out)
	if formatName != "" {
		var err error
		if f, err = cellio.ParseFormat(formatName); err != nil {
			return err
		}
	}
	return cellio.WriteFile(out, f, cells)
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "n/a"
	}
	return d.Truncate(time.Millisecond).String()
}

func parseList(values []string) []string {
	var out []string
	for _, value := range values {
		for _, f := range strings.FieldsFunc(value, func(r rune) bool { return r == ',' || r == ';' }) {
			if trimmed := strings.TrimSpace(f); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}
