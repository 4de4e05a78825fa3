package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chanroute/pkg/pipeline"
)

// inspectCommand routes a channel and opens an interactive net browser.
func (c *CLI) inspectCommand() *cobra.Command {
	var geom geometryFlags

	cmd := &cobra.Command{
		Use:   "inspect <pin_spec>",
		Short: "Browse the routed nets interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.pipelineOptions()
			geom.apply(cmd, &opts)

			ctx := cmd.Context()
			ch, err := pipeline.ParseFile(ctx, args[0])
			if err != nil {
				return err
			}
			runner, err := c.newRunner(ctx)
			if err != nil {
				return err
			}
			defer runner.Close()

			plan, err := runner.Route(ctx, ch, opts)
			if err != nil {
				return err
			}

			p := tea.NewProgram(NewNetListModel(ch, plan), tea.WithContext(ctx), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
	geom.register(cmd)
	return cmd
}
