package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chanroute/pkg/pipeline"
)

// routeCommand is the root command: route a pin spec and write the wires as a
// geometry file.
func (c *CLI) routeCommand() *cobra.Command {
	var geom geometryFlags

	cmd := &cobra.Command{
		Use:   "chanroute <pin_spec> <output>",
		Short: "Route nets across a two-row channel",
		Long: `chanroute connects the nets of two facing terminal rows with horizontal and
vertical wire segments and writes them as .begin/.H/.V/.end blocks.

The pin spec has two lines of integers, top row first; 0 marks an empty column.`,
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.pipelineOptions()
			geom.apply(cmd, &opts)
			opts.Formats = []string{pipeline.FormatGeometry}
			return c.runRoute(cmd, args[0], args[1], opts)
		},
	}
	geom.register(cmd)
	return cmd
}

func (c *CLI) runRoute(cmd *cobra.Command, input, output string, opts pipeline.Options) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	ch, err := pipeline.ParseFile(ctx, input)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Pin count: %d\n", ch.Columns())

	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(loggerFromContext(ctx))
	plan, err := runner.Route(ctx, ch, opts)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Track count: %d\n", plan.TrackCount())

	artifacts, err := runner.Render(ctx, plan, ch, opts)
	if err != nil {
		return err
	}
	if err := writeFile(output, artifacts[pipeline.FormatGeometry]); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Routed %d nets into %s", len(plan.Nets()), output))
	return nil
}

// geometryFlags overrides the configured column and track spacing.
type geometryFlags struct {
	columnWidth int
	trackHeight int
}

func (g *geometryFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&g.columnWidth, "column-width", 0, "distance between terminal columns (default from config, 1)")
	cmd.Flags().IntVar(&g.trackHeight, "track-height", 0, "distance between tracks (default from config, 1)")
}

// apply copies only the flags the user set, so config values survive.
func (g *geometryFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	if cmd.Flags().Changed("column-width") {
		opts.ColumnWidth = g.columnWidth
	}
	if cmd.Flags().Changed("track-height") {
		opts.TrackHeight = g.trackHeight
	}
}
