package buildinfo

import (
	"runtime"
	"strings"
	"testing"
)

func TestTemplate(t *testing.T) {
	Version, Commit, Date = "v0.3.0", "abc1234", "2026-10-19"
	t.Cleanup(func() { Version, Commit, Date = "dev", "none", "unknown" })

	want := "{{.Name}} v0.3.0\nabc1234 built 2026-10-19 with " + runtime.Version() + "\n"
	if got := Template(); got != want {
		t.Errorf("Template() = %q, want %q", got, want)
	}
	if !strings.Contains(Template(), "{{.Name}}") {
		t.Error("template must keep the command name placeholder")
	}
}
