package channel

import (
	"fmt"
	"slices"
	"strings"
)

// ViolationKind classifies a problem found by [Check].
type ViolationKind string

const (
	// Overlap means two nets share geometry on the same layer.
	Overlap ViolationKind = "overlap"
	// Disconnected means a net's wires split into several islands.
	Disconnected ViolationKind = "disconnected"
	// Unreached means a terminal is not touched by any wire of its net.
	Unreached ViolationKind = "unreached"
	// Missing means a net with terminals has no wires at all.
	Missing ViolationKind = "missing"
	// OutOfBounds means a wire leaves the channel between bottom row and rail.
	OutOfBounds ViolationKind = "out-of-bounds"
)

// Violation is one problem in a plan.
type Violation struct {
	Kind   ViolationKind
	Net    Net
	Other  Net // second net for Overlap
	Detail string
}

func (v Violation) String() string {
	if v.Kind == Overlap {
		return fmt.Sprintf("%s: nets %d and %d: %s", v.Kind, v.Net, v.Other, v.Detail)
	}
	return fmt.Sprintf("%s: net %d: %s", v.Kind, v.Net, v.Detail)
}

// Report collects the violations found in a plan.
type Report struct {
	Nets       int
	Wires      int
	Violations []Violation
}

// OK reports whether the plan is free of violations.
func (r Report) OK() bool { return len(r.Violations) == 0 }

// Count returns the number of violations of the given kind.
func (r Report) Count(kind ViolationKind) int {
	n := 0
	for _, v := range r.Violations {
		if v.Kind == kind {
			n++
		}
	}
	return n
}

func (r Report) String() string {
	if r.OK() {
		return fmt.Sprintf("ok: %d nets, %d wires", r.Nets, r.Wires)
	}
	lines := make([]string, len(r.Violations))
	for i, v := range r.Violations {
		lines[i] = v.String()
	}
	return strings.Join(lines, "\n")
}

// Check verifies a plan against the channel it was routed for. Horizontal and
// vertical wires live on different layers, so only same-orientation overlaps
// between different nets count as shorts.
func Check(p *Plan, ch *Channel) Report {
	rep := Report{Nets: len(p.order), Wires: p.WireCount()}
	rep.Violations = append(rep.Violations, checkOverlaps(p)...)

	rail := p.RailY()
	w := p.geometry.ColumnWidth
	for _, n := range ch.Nets() {
		nw, ok := p.wires[n]
		if !ok || nw.Len() == 0 {
			rep.Violations = append(rep.Violations, Violation{Kind: Missing, Net: n, Detail: "no wires"})
			continue
		}
		rep.Violations = append(rep.Violations, checkBounds(nw, rail)...)
		if islands := countIslands(nw); islands > 1 {
			rep.Violations = append(rep.Violations, Violation{
				Kind:   Disconnected,
				Net:    n,
				Detail: fmt.Sprintf("%d separate wire groups", islands),
			})
		}
		for i, pin := range ch.Bottom {
			if pin.Present && pin.Net == n && !touches(nw, i*w, 0) {
				rep.Violations = append(rep.Violations, Violation{
					Kind: Unreached, Net: n, Detail: fmt.Sprintf("bottom terminal at column %d", i),
				})
			}
		}
		for i, pin := range ch.Top {
			if pin.Present && pin.Net == n && !touches(nw, i*w, rail) {
				rep.Violations = append(rep.Violations, Violation{
					Kind: Unreached, Net: n, Detail: fmt.Sprintf("top terminal at column %d", i),
				})
			}
		}
	}
	return rep
}

func checkOverlaps(p *Plan) []Violation {
	var hs []HWire
	var vs []VWire
	for _, n := range p.order {
		hs = append(hs, p.wires[n].Horizontal...)
		vs = append(vs, p.wires[n].Vertical...)
	}
	slices.SortFunc(hs, func(a, b HWire) int {
		if a.Y != b.Y {
			return a.Y - b.Y
		}
		return a.LeftX - b.LeftX
	})
	slices.SortFunc(vs, func(a, b VWire) int {
		if a.X != b.X {
			return a.X - b.X
		}
		return a.BottomY - b.BottomY
	})

	var out []Violation
	for i := range hs {
		for j := i + 1; j < len(hs) && hs[j].Y == hs[i].Y && hs[j].LeftX <= hs[i].RightX; j++ {
			if hs[i].Net != hs[j].Net {
				out = append(out, Violation{
					Kind: Overlap, Net: hs[i].Net, Other: hs[j].Net,
					Detail: fmt.Sprintf("horizontal at y=%d, x=%d..%d", hs[i].Y, hs[j].LeftX, min(hs[i].RightX, hs[j].RightX)),
				})
			}
		}
	}
	for i := range vs {
		for j := i + 1; j < len(vs) && vs[j].X == vs[i].X && vs[j].BottomY <= vs[i].TopY; j++ {
			if vs[i].Net != vs[j].Net {
				out = append(out, Violation{
					Kind: Overlap, Net: vs[i].Net, Other: vs[j].Net,
					Detail: fmt.Sprintf("vertical at x=%d, y=%d..%d", vs[i].X, vs[j].BottomY, min(vs[i].TopY, vs[j].TopY)),
				})
			}
		}
	}
	return out
}

func checkBounds(nw *NetWires, rail int) []Violation {
	var out []Violation
	for _, h := range nw.Horizontal {
		if h.Y < 0 || h.Y > rail || h.LeftX > h.RightX {
			out = append(out, Violation{Kind: OutOfBounds, Net: nw.Net,
				Detail: fmt.Sprintf("horizontal %d %d %d", h.LeftX, h.Y, h.RightX)})
		}
	}
	for _, v := range nw.Vertical {
		if v.BottomY < 0 || v.TopY > rail || v.BottomY > v.TopY {
			out = append(out, Violation{Kind: OutOfBounds, Net: nw.Net,
				Detail: fmt.Sprintf("vertical %d %d %d", v.X, v.BottomY, v.TopY)})
		}
	}
	return out
}

// segment is a wire of either orientation as a closed axis-aligned box.
type segment struct{ x0, y0, x1, y1 int }

func segments(nw *NetWires) []segment {
	segs := make([]segment, 0, nw.Len())
	for _, h := range nw.Horizontal {
		segs = append(segs, segment{h.LeftX, h.Y, h.RightX, h.Y})
	}
	for _, v := range nw.Vertical {
		segs = append(segs, segment{v.X, v.BottomY, v.X, v.TopY})
	}
	return segs
}

func (a segment) touches(b segment) bool {
	return a.x0 <= b.x1 && b.x0 <= a.x1 && a.y0 <= b.y1 && b.y0 <= a.y1
}

func (a segment) contains(x, y int) bool {
	return a.x0 <= x && x <= a.x1 && a.y0 <= y && y <= a.y1
}

func touches(nw *NetWires, x, y int) bool {
	for _, s := range segments(nw) {
		if s.contains(x, y) {
			return true
		}
	}
	return false
}

// countIslands returns the number of connected groups among a net's wires.
func countIslands(nw *NetWires) int {
	segs := segments(nw)
	parent := make([]int, len(segs))
	for i := range parent {
		parent[i] = i
	}
	find := func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	groups := len(segs)
	for i := range segs {
		for j := i + 1; j < len(segs); j++ {
			if !segs[i].touches(segs[j]) {
				continue
			}
			if a, b := find(i), find(j); a != b {
				parent[a] = b
				groups--
			}
		}
	}
	return groups
}
