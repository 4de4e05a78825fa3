package render

import (
	"strings"
	"testing"

	"github.com/matzehuels/chanroute/pkg/channel"
)

func TestRenderDOTSVG(t *testing.T) {
	ch, _ := routed(t, []int{1, 2, 0}, []int{2, 1, 3})
	svg, err := RenderDOTSVG(channel.NewConstraints(ch).DOT())
	if err != nil {
		t.Fatalf("RenderDOTSVG: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("output is not SVG")
	}
}

func TestRenderDOTSVGInvalid(t *testing.T) {
	if _, err := RenderDOTSVG("digraph {"); err == nil {
		t.Error("expected parse error")
	}
}
