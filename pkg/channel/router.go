package channel

import (
	"io"

	"github.com/charmbracelet/log"
)

// Option configures [Route].
type Option func(*router)

// WithGeometry sets column and track spacing. An invalid geometry is ignored
// and the default unit spacing is kept.
func WithGeometry(g Geometry) Option {
	return func(r *router) {
		if g.Validate() == nil {
			r.geom = g
		}
	}
}

// WithLogger makes the router trace track allocations at debug level.
func WithLogger(l *log.Logger) Option {
	return func(r *router) {
		if l != nil {
			r.logger = l
		}
	}
}

// runner is an open horizontal wire of a bottom net, stretched one column at
// every step of the bottom sweep until it is finalised.
type runner struct {
	net    Net
	leftX  int
	y      int
	rightX int
}

type router struct {
	ch     *Channel
	geom   Geometry
	logger *log.Logger
	plan   *Plan

	tracks  int // tracks allocated so far
	lastCol int // rightmost column index used by any vertical wire

	runners  []runner    // open runners in opening order
	runnerOf map[Net]int // net -> index into runners
	topY     map[Net]int // resolved top-side track height per net
}

// Route wires every net of ch and returns the resulting plan.
//
// Route cannot fail: a [Channel] always has rows of equal length. The plan's
// nets are reported in [Channel.Nets] order.
func Route(ch *Channel, opts ...Option) *Plan {
	r := &router{
		ch:       ch,
		geom:     DefaultGeometry,
		logger:   log.NewWithOptions(io.Discard, log.Options{}),
		runnerOf: make(map[Net]int),
		topY:     make(map[Net]int),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.plan = newPlan(ch.Columns(), r.geom)

	r.sweepBottom()
	r.sweepTop()
	r.connectTop()

	r.plan.tracks = r.tracks
	for _, n := range ch.Nets() {
		if _, ok := r.plan.wires[n]; ok {
			r.plan.order = append(r.plan.order, n)
		}
	}
	r.logger.Debug("routed channel",
		"columns", ch.Columns(),
		"nets", len(r.plan.order),
		"tracks", r.tracks,
		"wires", r.plan.WireCount())
	return r.plan
}

// allocTrack claims the next unused track and returns its height.
func (r *router) allocTrack(n Net, side string) int {
	r.tracks++
	y := r.tracks * r.geom.TrackHeight
	r.logger.Debug("allocated track", "net", n, "side", side, "track", r.tracks)
	return y
}

func (r *router) sweepBottom() {
	w := r.geom.ColumnWidth
	for i, p := range r.ch.Bottom {
		r.lastCol = i
		for j := range r.runners {
			r.runners[j].rightX += w
		}
		if !p.Present {
			continue
		}
		x := i * w
		if j, ok := r.runnerOf[p.Net]; ok {
			r.plan.addV(p.Net, x, 0, r.runners[j].y)
			continue
		}
		y := r.allocTrack(p.Net, "bottom")
		r.plan.addV(p.Net, x, 0, y)
		r.runnerOf[p.Net] = len(r.runners)
		r.runners = append(r.runners, runner{net: p.Net, leftX: x, y: y, rightX: (i + 1) * w})
	}

	// Nets that never reach the top row keep their runner exactly as stretched.
	top := netSet(r.ch.Top)
	for _, rn := range r.runners {
		if !top[rn.net] {
			r.plan.addH(rn.net, rn.leftX, rn.y, rn.rightX)
		}
	}
}

func (r *router) sweepTop() {
	w := r.geom.ColumnWidth
	for i := len(r.ch.Top) - 1; i >= 0; i-- {
		p := r.ch.Top[i]
		if !p.Present {
			continue
		}
		if _, done := r.topY[p.Net]; done {
			continue
		}
		minX, maxX := r.topSpan(p.Net)

		j, fromBottom := r.runnerOf[p.Net]
		y := r.allocTrack(p.Net, "top")
		if !fromBottom {
			r.plan.addH(p.Net, minX, y, maxX)
		} else {
			rn := r.runners[j]
			x := (r.lastCol + 1) * w
			r.plan.addH(p.Net, rn.leftX, rn.y, x)
			r.plan.addV(p.Net, x, rn.y, y)
			r.plan.addH(p.Net, minX, y, x)
			r.lastCol++
		}
		r.topY[p.Net] = y
	}
}

// topSpan returns the x coordinates of the leftmost and rightmost top
// terminals of net n.
func (r *router) topSpan(n Net) (int, int) {
	lo, hi := -1, -1
	for i, p := range r.ch.Top {
		if !p.Present || p.Net != n {
			continue
		}
		if lo < 0 {
			lo = i
		}
		hi = i
	}
	return lo * r.geom.ColumnWidth, hi * r.geom.ColumnWidth
}

func (r *router) connectTop() {
	rail := (r.tracks + 1) * r.geom.TrackHeight
	for i, p := range r.ch.Top {
		if !p.Present {
			continue
		}
		r.plan.addV(p.Net, i*r.geom.ColumnWidth, r.topY[p.Net], rail)
	}
}
