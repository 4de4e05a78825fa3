package pipeline

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/chanroute/pkg/channel"
	pkgio "github.com/matzehuels/chanroute/pkg/io"
	"github.com/matzehuels/chanroute/pkg/render"
)

// Render produces every requested format of plan. ch supplies the terminal
// rows for drawings and may be nil.
func Render(plan *channel.Plan, ch *channel.Channel, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	var svg []byte
	drawing := func() []byte {
		if svg == nil {
			svg = render.RenderSVG(plan, buildSVGOptions(ch, opts)...)
		}
		return svg
	}

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatGeometry:
			var buf bytes.Buffer
			err = pkgio.WriteGeometry(plan, &buf)
			data = buf.Bytes()
		case FormatJSON:
			data, err = pkgio.MarshalPlan(plan)
		case FormatSVG:
			data = drawing()
		case FormatPNG:
			data, err = render.ToPNG(drawing(), PNGScale)
		case FormatPDF:
			data, err = render.ToPDF(drawing())
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func buildSVGOptions(ch *channel.Channel, opts Options) []render.SVGOption {
	svgOpts := []render.SVGOption{render.WithScale(opts.Scale)}
	if ch != nil {
		svgOpts = append(svgOpts, render.WithChannel(ch))
	}
	if opts.Labels {
		svgOpts = append(svgOpts, render.WithLabels())
	}
	if opts.Grid {
		svgOpts = append(svgOpts, render.WithGrid())
	}
	return svgOpts
}
