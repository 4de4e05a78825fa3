package channel

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/chanroute/pkg/errors"
)

func TestConstraintsAcyclic(t *testing.T) {
	ch := mustChannel(t, []int{1, 2, 0, 2}, []int{2, 3, 1, 3})
	c := NewConstraints(ch)

	if !c.Above(1, 2) || !c.Above(2, 3) {
		t.Errorf("missing expected constraints: %+v", c.Edges())
	}
	if c.Above(2, 1) {
		t.Error("unexpected constraint 2 above 1")
	}
	want := []Constraint{{Upper: 1, Lower: 2, Column: 0}, {Upper: 2, Lower: 3, Column: 1}}
	if diff := cmp.Diff(want, c.Edges()); diff != "" {
		t.Errorf("Edges() mismatch (-want +got):\n%s", diff)
	}
	if !c.Acyclic() {
		t.Error("Acyclic() = false")
	}
	order, err := c.Order()
	if err != nil {
		t.Fatalf("Order: %v", err)
	}
	if diff := cmp.Diff([]Net{1, 2, 3}, order); diff != "" {
		t.Errorf("Order() mismatch (-want +got):\n%s", diff)
	}
}

func TestConstraintsCycle(t *testing.T) {
	ch := mustChannel(t, []int{1, 2}, []int{2, 1})
	c := NewConstraints(ch)

	if c.Acyclic() {
		t.Fatal("Acyclic() = true for crossing nets")
	}
	if diff := cmp.Diff([][]Net{{1, 2}}, c.Cycles()); diff != "" {
		t.Errorf("Cycles() mismatch (-want +got):\n%s", diff)
	}
	if _, err := c.Order(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Order() error = %v, want %v", err, errors.ErrCodeInvalidInput)
	}

	dot := c.DOT()
	if !strings.Contains(dot, `"1" -> "2"`) || !strings.Contains(dot, "color=red") {
		t.Errorf("DOT() missing edge or cycle marking:\n%s", dot)
	}
}

func TestConstraintsSkipsSameNetAndEmpty(t *testing.T) {
	ch := mustChannel(t, []int{1, 0, 3}, []int{1, 2, 0})
	c := NewConstraints(ch)
	if len(c.Edges()) != 0 {
		t.Errorf("Edges() = %+v, want none", c.Edges())
	}
	if diff := cmp.Diff([]Net{1, 3, 2}, c.Nets()); diff != "" {
		t.Errorf("Nets() mismatch (-want +got):\n%s", diff)
	}
}
