package channel

import (
	"bytes"
	"cmp"
	"fmt"
	"slices"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/matzehuels/chanroute/pkg/errors"
)

// Constraint says that Upper must be routed on a track above Lower because
// they face each other across Column.
type Constraint struct {
	Upper  Net
	Lower  Net
	Column int // first column where the constraint arises
}

// Constraints is the vertical constraint graph of a channel: an edge
// top -> bottom for every column whose two terminals belong to different
// nets. The greedy router does not need it, since every net gets tracks of
// its own, but a cyclic graph is what forces doglegs in track-sharing routers,
// so it is reported as a diagnostic.
type Constraints struct {
	g     *simple.DirectedGraph
	nets  []Net
	edges []Constraint
}

// NewConstraints builds the vertical constraint graph of ch.
func NewConstraints(ch *Channel) *Constraints {
	c := &Constraints{g: simple.NewDirectedGraph(), nets: ch.Nets()}
	for _, n := range c.nets {
		c.g.AddNode(simple.Node(n))
	}
	for i := range ch.Top {
		t, b := ch.Top[i], ch.Bottom[i]
		if !t.Present || !b.Present || t.Net == b.Net {
			continue
		}
		if c.g.HasEdgeFromTo(int64(t.Net), int64(b.Net)) {
			continue
		}
		c.g.SetEdge(c.g.NewEdge(simple.Node(t.Net), simple.Node(b.Net)))
		c.edges = append(c.edges, Constraint{Upper: t.Net, Lower: b.Net, Column: i})
	}
	return c
}

// Nets returns the graph's vertices in first-seen order.
func (c *Constraints) Nets() []Net { return append([]Net(nil), c.nets...) }

// Edges returns the constraints in column order.
func (c *Constraints) Edges() []Constraint { return append([]Constraint(nil), c.edges...) }

// Above reports whether upper is directly constrained to sit above lower.
func (c *Constraints) Above(upper, lower Net) bool {
	return c.g.HasEdgeFromTo(int64(upper), int64(lower))
}

// Cycles returns every elementary cycle, each rotated to start at its
// smallest net and sorted for stable output.
func (c *Constraints) Cycles() [][]Net {
	var out [][]Net
	for _, cyc := range topo.DirectedCyclesIn(c.g) {
		// gonum closes each cycle by repeating its first node.
		nodes := cyc[:len(cyc)-1]
		nets := make([]Net, len(nodes))
		for i, n := range nodes {
			nets[i] = Net(n.ID())
		}
		start := slices.Index(nets, slices.Min(nets))
		out = append(out, slices.Concat(nets[start:], nets[:start]))
	}
	slices.SortFunc(out, func(a, b []Net) int {
		if d := cmp.Compare(len(a), len(b)); d != 0 {
			return d
		}
		return slices.Compare(a, b)
	})
	return out
}

// Acyclic reports whether the constraints admit a top-to-bottom track order.
func (c *Constraints) Acyclic() bool {
	return len(topo.DirectedCyclesIn(c.g)) == 0
}

// Order returns the nets from top to bottom in an order that honours every
// constraint. Ties are broken by net id so the result is deterministic.
func (c *Constraints) Order() ([]Net, error) {
	sorted, err := topo.SortStabilized(c.g, func(nodes []graph.Node) {
		slices.SortFunc(nodes, func(a, b graph.Node) int { return cmp.Compare(a.ID(), b.ID()) })
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "vertical constraints are cyclic: %v", c.Cycles())
	}
	order := make([]Net, len(sorted))
	for i, n := range sorted {
		order[i] = Net(n.ID())
	}
	return order, nil
}

// DOT returns the graph in Graphviz DOT syntax, with nets on a cycle drawn
// in red.
func (c *Constraints) DOT() string {
	onCycle := make(map[Net]bool)
	for _, cyc := range c.Cycles() {
		for _, n := range cyc {
			onCycle[n] = true
		}
	}

	var buf bytes.Buffer
	buf.WriteString("digraph VCG {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=14];\n")
	buf.WriteString("\n")
	for _, n := range c.nets {
		if onCycle[n] {
			fmt.Fprintf(&buf, "  \"%d\" [color=red, fontcolor=red];\n", n)
		} else {
			fmt.Fprintf(&buf, "  \"%d\";\n", n)
		}
	}
	buf.WriteString("\n")
	for _, e := range c.edges {
		fmt.Fprintf(&buf, "  \"%d\" -> \"%d\" [label=\"c%d\"];\n", e.Upper, e.Lower, e.Column)
	}
	buf.WriteString("}\n")
	return buf.String()
}
