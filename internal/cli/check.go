package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chanroute/pkg/channel"
	"github.com/matzehuels/chanroute/pkg/errors"
	pkgio "github.com/matzehuels/chanroute/pkg/io"
	"github.com/matzehuels/chanroute/pkg/pipeline"
)

// checkCommand verifies a routing: either one read from a geometry file, or
// the router's own output when no file is given.
func (c *CLI) checkCommand() *cobra.Command {
	var geom geometryFlags

	cmd := &cobra.Command{
		Use:   "check <pin_spec> [routing]",
		Short: "Verify that a routing connects every net without shorts",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.pipelineOptions()
			geom.apply(cmd, &opts)
			if err := opts.ValidateForRoute(); err != nil {
				return err
			}

			ctx := cmd.Context()
			ch, err := pipeline.ParseFile(ctx, args[0])
			if err != nil {
				return err
			}

			var plan *channel.Plan
			if len(args) == 2 {
				nets, err := pkgio.ImportGeometry(args[1])
				if err != nil {
					return err
				}
				plan = channel.FromWires(ch, opts.Geometry(), nets)
			} else {
				runner, err := c.newRunner(ctx)
				if err != nil {
					return err
				}
				defer runner.Close()
				if plan, err = runner.Route(ctx, ch, opts); err != nil {
					return err
				}
			}

			report := channel.Check(plan, ch)
			if report.OK() {
				printSuccess("%s", report)
				return nil
			}
			fmt.Println(violationTable(report.Violations))
			return errors.New(errors.ErrCodeViolation, "%d violations", len(report.Violations))
		},
	}
	geom.register(cmd)
	return cmd
}

// violationTable renders violations as a bordered table.
func violationTable(vs []channel.Violation) string {
	rows := make([][]string, 0, len(vs))
	for _, v := range vs {
		other := ""
		if v.Kind == channel.Overlap {
			other = strconv.Itoa(int(v.Other))
		}
		rows = append(rows, []string{string(v.Kind), strconv.Itoa(int(v.Net)), other, v.Detail})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Kind", "Net", "Other", "Detail").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorRed).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Render()
}
