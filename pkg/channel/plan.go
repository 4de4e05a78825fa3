package channel

// Plan is the result of routing a channel: wires grouped by net plus the
// number of tracks consumed. A Plan is never modified after construction.
type Plan struct {
	columns  int
	geometry Geometry
	tracks   int
	order    []Net
	wires    map[Net]*NetWires
}

// NewPlan assembles a plan from already-known wires, e.g. wires decoded from
// a geometry or JSON file. Nets are kept in the order given.
func NewPlan(columns, tracks int, geom Geometry, nets []NetWires) *Plan {
	p := newPlan(columns, geom)
	p.tracks = tracks
	for _, w := range nets {
		nw := w.clone()
		if _, ok := p.wires[w.Net]; !ok {
			p.order = append(p.order, w.Net)
		}
		p.wires[w.Net] = &nw
	}
	return p
}

func newPlan(columns int, geom Geometry) *Plan {
	return &Plan{
		columns:  columns,
		geometry: geom,
		wires:    make(map[Net]*NetWires),
	}
}

// Columns returns the channel width in columns.
func (p *Plan) Columns() int { return p.columns }

// Geometry returns the spacing the plan was routed with.
func (p *Plan) Geometry() Geometry { return p.geometry }

// TrackCount returns the number of tracks allocated during routing. The top
// rail is not counted.
func (p *Plan) TrackCount() int { return p.tracks }

// RailY returns the height of the top terminal rail.
func (p *Plan) RailY() int { return (p.tracks + 1) * p.geometry.TrackHeight }

// Nets returns the routed nets in first-seen order.
func (p *Plan) Nets() []Net { return append([]Net(nil), p.order...) }

// Wires returns a copy of the wires of net n. The second result is false when
// the plan has no wires for n.
func (p *Plan) Wires(n Net) (NetWires, bool) {
	w, ok := p.wires[n]
	if !ok {
		return NetWires{Net: n}, false
	}
	return w.clone(), true
}

// All returns every net's wires in [Plan.Nets] order.
func (p *Plan) All() []NetWires {
	out := make([]NetWires, 0, len(p.order))
	for _, n := range p.order {
		out = append(out, p.wires[n].clone())
	}
	return out
}

// WireCount returns the total number of segments over all nets.
func (p *Plan) WireCount() int {
	n := 0
	for _, w := range p.wires {
		n += w.Len()
	}
	return n
}

// Width returns the rightmost x coordinate touched by any wire, which can lie
// past the last terminal column.
func (p *Plan) Width() int {
	right := 0
	if p.columns > 0 {
		right = (p.columns - 1) * p.geometry.ColumnWidth
	}
	for _, w := range p.wires {
		for _, h := range w.Horizontal {
			right = max(right, h.RightX)
		}
		for _, v := range w.Vertical {
			right = max(right, v.X)
		}
	}
	return right
}

func (p *Plan) entry(n Net) *NetWires {
	w, ok := p.wires[n]
	if !ok {
		w = &NetWires{Net: n}
		p.wires[n] = w
	}
	return w
}

func (p *Plan) addH(n Net, leftX, y, rightX int) {
	w := p.entry(n)
	w.Horizontal = append(w.Horizontal, HWire{Net: n, LeftX: leftX, Y: y, RightX: rightX})
}

func (p *Plan) addV(n Net, x, bottomY, topY int) {
	w := p.entry(n)
	w.Vertical = append(w.Vertical, VWire{Net: n, X: x, BottomY: bottomY, TopY: topY})
}

// FromWires rebuilds a plan for ch from wires that were routed elsewhere, such
// as a geometry file. An invalid geometry falls back to [DefaultGeometry].
//
// The track count is inferred from the rail: the highest point reached by a
// vertical wire standing on one of its net's top terminal columns. Wires above
// that rail do not raise the count, so [Check] reports them as out of bounds.
// Without top terminals the highest wire is taken as the last track.
func FromWires(ch *Channel, geom Geometry, nets []NetWires) *Plan {
	if geom.Validate() != nil {
		geom = DefaultGeometry
	}

	topCols := make(map[Net]map[int]bool)
	for i, p := range ch.Top {
		if !p.Present {
			continue
		}
		if topCols[p.Net] == nil {
			topCols[p.Net] = make(map[int]bool)
		}
		topCols[p.Net][i*geom.ColumnWidth] = true
	}

	highest, rail := 0, 0
	for _, w := range nets {
		for _, h := range w.Horizontal {
			highest = max(highest, h.Y)
		}
		for _, v := range w.Vertical {
			highest = max(highest, v.TopY)
			if topCols[w.Net][v.X] {
				rail = max(rail, v.TopY)
			}
		}
	}

	var tracks int
	switch {
	case len(topCols) == 0:
		tracks = highest / geom.TrackHeight
	case rail > 0:
		tracks = max(rail/geom.TrackHeight-1, 0)
	default:
		// No stub reaches a top terminal; Check reports them as unreached.
		tracks = max(highest/geom.TrackHeight-1, 0)
	}
	return NewPlan(ch.Columns(), tracks, geom, nets)
}
