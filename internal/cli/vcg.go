package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chanroute/pkg/channel"
	"github.com/matzehuels/chanroute/pkg/pipeline"
	"github.com/matzehuels/chanroute/pkg/render"
)

// vcgCommand reports the vertical constraint graph of a channel.
func (c *CLI) vcgCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "vcg <pin_spec>",
		Short: "Show the vertical constraint graph and its cycles",
		Long: `Build the vertical constraint graph: an edge a → b means net a has a top
terminal above a bottom terminal of net b, so a track-sharing router would have
to place a above b. Cycles make such an order impossible without doglegs.

With -o the graph is written as DOT (.dot) or rendered with Graphviz (.svg).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ch, err := pipeline.ParseFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			vcg := channel.NewConstraints(ch)

			printKeyValue("Nets", fmt.Sprint(len(vcg.Nets())))
			printKeyValue("Constraints", fmt.Sprint(len(vcg.Edges())))
			if order, err := vcg.Order(); err == nil {
				printKeyValue("Order", netList(order))
			} else {
				for _, cycle := range vcg.Cycles() {
					printWarning("cycle %s", netList(append(cycle, cycle[0])))
				}
			}

			if output == "" {
				return nil
			}
			return writeVCG(output, vcg)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the graph to a .dot or .svg file")
	return cmd
}

func writeVCG(path string, vcg *channel.Constraints) error {
	dot := vcg.DOT()
	var data []byte
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		svg, err := render.RenderDOTSVG(dot)
		if err != nil {
			return err
		}
		data = svg
	default:
		data = []byte(dot)
	}
	if err := writeFile(path, data); err != nil {
		return err
	}
	printFile(path)
	return nil
}

func netList(nets []channel.Net) string {
	parts := make([]string, len(nets))
	for i, n := range nets {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, " → ")
}
