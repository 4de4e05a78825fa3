package render

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/chanroute/pkg/channel"
)

const (
	defaultScale = 20.0
	margin       = 1.5 // in channel units
	pinSize      = 0.3
)

// palette holds distinguishable stroke colours; nets cycle through it in
// plan order.
var palette = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	scale  float64
	labels bool
	grid   bool
	ch     *channel.Channel
}

// WithScale sets the number of pixels per channel unit.
func WithScale(s float64) SVGOption {
	return func(r *svgRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithLabels prints net ids next to terminals and at the start of each
// horizontal wire.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.labels = true } }

// WithGrid draws every track and the top rail as a faint dashed line.
func WithGrid() SVGOption { return func(r *svgRenderer) { r.grid = true } }

// WithChannel draws the terminal rows of ch, including empty columns.
func WithChannel(ch *channel.Channel) SVGOption { return func(r *svgRenderer) { r.ch = ch } }

// NetColor returns the stroke colour used for the i-th net of a plan.
func NetColor(i int) string { return palette[i%len(palette)] }

// RenderSVG draws p as a standalone SVG document.
func RenderSVG(p *channel.Plan, opts ...SVGOption) []byte {
	r := svgRenderer{scale: defaultScale}
	for _, opt := range opts {
		opt(&r)
	}

	rail := p.RailY()
	width := (float64(p.Width()) + 2*margin) * r.scale
	height := (float64(rail) + 2*margin) * r.scale

	px := func(x int) float64 { return (margin + float64(x)) * r.scale }
	py := func(y int) float64 { return (margin + float64(rail-y)) * r.scale }

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="white"/>`+"\n")

	if r.grid {
		r.renderGrid(&buf, p, px, py)
	}
	if r.ch != nil {
		r.renderTerminals(&buf, p, px, py)
	}

	for i, nw := range p.All() {
		color := NetColor(i)
		fmt.Fprintf(&buf, `  <g id="net-%d" stroke="%s" stroke-linecap="square">`+"\n", nw.Net, color)
		for _, h := range nw.Horizontal {
			fmt.Fprintf(&buf, `    <line class="h" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke-width="%.1f"/>`+"\n",
				px(h.LeftX), py(h.Y), px(h.RightX), py(h.Y), r.scale*0.18)
		}
		for _, v := range nw.Vertical {
			fmt.Fprintf(&buf, `    <line class="v" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke-width="%.1f"/>`+"\n",
				px(v.X), py(v.BottomY), px(v.X), py(v.TopY), r.scale*0.1)
		}
		if r.labels && len(nw.Horizontal) > 0 {
			h := nw.Horizontal[0]
			fmt.Fprintf(&buf, `    <text x="%.1f" y="%.1f" font-size="%.1f" fill="%s" stroke="none">%d</text>`+"\n",
				px(h.LeftX)+r.scale*0.2, py(h.Y)-r.scale*0.2, r.scale*0.5, color, nw.Net)
		}
		buf.WriteString("  </g>\n")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) renderGrid(buf *bytes.Buffer, p *channel.Plan, px, py func(int) float64) {
	th := p.Geometry().TrackHeight
	buf.WriteString(`  <g class="grid" stroke="#dddddd" stroke-dasharray="2,3">` + "\n")
	for t := 1; t <= p.TrackCount()+1; t++ {
		y := t * th
		fmt.Fprintf(buf, `    <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n", px(0), py(y), px(p.Width()), py(y))
	}
	buf.WriteString("  </g>\n")
}

func (r *svgRenderer) renderTerminals(buf *bytes.Buffer, p *channel.Plan, px, py func(int) float64) {
	cw := p.Geometry().ColumnWidth
	half := pinSize * r.scale / 2
	rows := []struct {
		pins []channel.Pin
		y    int
		dy   float64
	}{
		{r.ch.Bottom, 0, r.scale * 0.9},
		{r.ch.Top, p.RailY(), -r.scale * 0.6},
	}

	buf.WriteString(`  <g class="terminals" font-size="` + fmt.Sprintf("%.1f", r.scale*0.5) + `" text-anchor="middle">` + "\n")
	for _, row := range rows {
		for i, pin := range row.pins {
			x, y := px(i*cw), py(row.y)
			if !pin.Present {
				fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="#bbbbbb"/>`+"\n",
					x-half, y-half, 2*half, 2*half)
				continue
			}
			fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="black"/>`+"\n",
				x-half, y-half, 2*half, 2*half)
			if r.labels {
				fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f">%d</text>`+"\n", x, y+row.dy, pin.Net)
			}
		}
	}
	buf.WriteString("  </g>\n")
}
