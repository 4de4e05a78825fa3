package cli

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chanroute/pkg/errors"
	"github.com/matzehuels/chanroute/pkg/pipeline"
)

// renderFlags holds the command-line flags for the render command.
type renderFlags struct {
	output  string // output file (single format) or base path
	formats string // comma-separated formats
	scale   float64
	labels  bool
	grid    bool
	geom    geometryFlags
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render <pin_spec>",
		Short: "Route a channel and write drawings or plan files",
		Long: `Route a channel and write it in one or more formats:

  geometry  .begin/.H/.V/.end blocks
  json      plan with geometry and track count
  svg       channel drawing
  png, pdf  channel drawing, converted with rsvg-convert`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.pipelineOptions()
			flags.geom.apply(cmd, &opts)
			opts.Formats = parseFormats(flags.formats)
			if cmd.Flags().Changed("scale") {
				opts.Scale = flags.scale
			}
			if cmd.Flags().Changed("labels") {
				opts.Labels = flags.labels
			}
			if cmd.Flags().Changed("grid") {
				opts.Grid = flags.grid
			}
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], flags.output, opts)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json, geometry (comma-separated)")
	cmd.Flags().Float64Var(&flags.scale, "scale", pipeline.DefaultScale, "pixels per channel unit")
	cmd.Flags().BoolVar(&flags.labels, "labels", true, "label terminals and nets")
	cmd.Flags().BoolVar(&flags.grid, "grid", false, "draw track lines")
	flags.geom.register(cmd)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input, output string, opts pipeline.Options) error {
	ch, err := pipeline.ParseFile(ctx, input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	var spinner *Spinner
	if slices.Contains(opts.Formats, pipeline.FormatPNG) || slices.Contains(opts.Formats, pipeline.FormatPDF) {
		spinner = newSpinnerWithContext(ctx, "Rendering...")
		spinner.Start()
	}
	result, err := runner.Execute(ctx, ch, opts)
	if err != nil {
		if spinner != nil {
			spinner.StopWithError("Rendering failed")
		}
		return err
	}
	if spinner != nil {
		spinner.Stop()
	}

	printSuccess("Routed %s", StyleValue.Render(filepath.Base(input)))
	printStats(result.Stats, result.CacheInfo.RouteHit && result.CacheInfo.RenderHit)

	paths := outputPaths(input, output, opts.Formats)
	for _, format := range opts.Formats {
		if err := writeFile(paths[format], result.Artifacts[format]); err != nil {
			return err
		}
		printFile(paths[format])
	}
	return nil
}

// outputPaths picks one file per format. A single format writes to output
// as given; several formats share output (or the input name) as base path.
func outputPaths(input, output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
	} else {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	for _, f := range formats {
		paths[f] = base + pipeline.Extensions[f]
	}
	return paths
}

// writeFile writes data to path, reporting failures as WRITE_FAILED.
func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, err, "write %s", path)
	}
	return nil
}
