// Package render draws routed channels and constraint graphs.
//
// # Overview
//
// The package turns a [channel.Plan] into pictures:
//
//   - [RenderSVG] draws the channel: terminal rows, tracks, and every net's
//     wires in its own colour
//   - [RenderDOTSVG] lays out a vertical constraint graph with Graphviz
//   - [ToPDF] and [ToPNG] convert any SVG with the external rsvg-convert tool
//
// # Channel Drawings
//
//	svg := render.RenderSVG(plan, render.WithChannel(ch), render.WithLabels())
//	png, err := render.ToPNG(svg, 2.0) // 2x scale
//
// Channel coordinates grow upward; the drawing flips them so the bottom
// terminal row sits at the bottom of the image. Horizontal wires are drawn
// solid and vertical wires slightly thinner, mirroring the two routing layers.
//
// # Constraint Graphs
//
//	dot := channel.NewConstraints(ch).DOT()
//	svg, err := render.RenderDOTSVG(dot)
//
// [channel.Plan]: github.com/matzehuels/chanroute/pkg/channel.Plan
package render
