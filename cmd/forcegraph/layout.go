package main

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/forcegraph/config"
	"github.com/lixenwraith/forcegraph/session"
	"github.com/lixenwraith/forcegraph/snapshot"
)

var (
	layoutOutput string
	layoutFormat string
	layoutSteps  int
	layoutWidth  int
	layoutHeight int
	layoutStats  bool
	layoutSeed   uint64
)

var layoutCmd = &cobra.Command{
	Use:   "layout <graph.json>",
	Short: "Compute a layout without a terminal and write a snapshot",
	Long: `Run the simulation headless until it settles and write the drawn positions.

The output carries the netwulf stylized-network fields (x, y, x_canvas, y_canvas,
radius, color per node; width and weight per link) so other tools can replot it.`,
	Args: cobra.ExactArgs(1),
	RunE: runLayout,
}

func init() {
	f := layoutCmd.Flags()
	f.StringVarP(&layoutOutput, "output", "o", "-", "Output file, - for stdout")
	f.StringVarP(&layoutFormat, "format", "f", "", "json or yaml; default from the output extension, then config")
	f.IntVar(&layoutSteps, "steps", session.DefaultMaxSteps, "Step limit")
	f.IntVar(&layoutWidth, "width", 80, "Canvas width in cells")
	f.IntVar(&layoutHeight, "height", 24, "Canvas height in cells")
	f.BoolVar(&layoutStats, "stats", false, "Print layout statistics to stderr")
	f.Uint64Var(&layoutSeed, "seed", 0, "Seed for initial placement, 0 keeps the configured value")
}

func runLayout(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if layoutSeed != 0 {
		cfg.Physics.Seed = layoutSeed
	}

	g, err := readGraph(args[0])
	if err != nil {
		return err
	}

	format, err := outputFormat(cfg, layoutOutput, layoutFormat)
	if err != nil {
		return err
	}

	snap, err := session.Layout(cfg, g, session.LayoutOptions{
		Width:    layoutWidth,
		Height:   layoutHeight,
		MaxSteps: layoutSteps,
	})
	stderr := cmd.ErrOrStderr()
	switch {
	case errors.Is(err, session.ErrNotSettled):
		fmt.Fprintln(stderr, errorStyle.Sprint("warning: ")+fmt.Sprintf("stopped at step limit %d", layoutSteps))
	case err != nil:
		return err
	}

	if layoutOutput == "-" {
		if err := snapshot.Encode(cmd.OutOrStdout(), snap, format); err != nil {
			return err
		}
	} else {
		if err := snapshot.WriteFileAs(layoutOutput, snap, format); err != nil {
			return err
		}
		fmt.Fprintln(stderr, goodStyle.Sprint("wrote ")+layoutOutput)
	}

	if layoutStats {
		printStats(stderr, snapshot.ComputeStats(snap), snap.Iteration)
	}
	return nil
}

// outputFormat resolves the flag, then a file extension, then the configured default
func outputFormat(cfg config.Config, output, flag string) (snapshot.Format, error) {
	if flag != "" {
		return snapshot.ParseFormat(flag)
	}
	if output != "-" {
		return snapshot.FormatFor(output), nil
	}
	return cfg.SnapshotFormat(), nil
}

func printStats(w io.Writer, st snapshot.Stats, iterations int) {
	row := func(name, format string, args ...any) {
		fmt.Fprintf(w, "  %s %s\n", dimStyle.Sprintf("%-12s", name), infoStyle.Sprintf(format, args...))
	}
	row("iterations", "%d", iterations)
	row("nodes", "%d", st.Nodes)
	row("links", "%d", st.Links)
	row("link length", "%.2f ± %.2f (min %.2f, max %.2f)",
		st.MeanLinkLength, st.StdDevLinkLength, st.MinLinkLength, st.MaxLinkLength)
	row("extent", "[%.1f, %.1f] x [%.1f, %.1f]", st.MinX, st.MaxX, st.MinY, st.MaxY)
	log.Printf("layout: %d nodes settled in %d iterations", st.Nodes, iterations)
}

