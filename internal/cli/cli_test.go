package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/chanroute/pkg/errors"
	"github.com/matzehuels/chanroute/pkg/observability"
)

// runCLI executes the root command with args in an isolated environment and
// returns what the command wrote to its output.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	stdout, _, err := runCLILogged(t, log.InfoLevel, args...)
	return stdout, err
}

// runCLILogged is runCLI with a chosen log level; it also returns the log.
func runCLILogged(t *testing.T, level log.Level, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Cleanup(observability.Reset)

	var logs, out bytes.Buffer
	c := New(&logs, level)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&logs)
	err := root.ExecuteContext(context.Background())
	return out.String(), logs.String(), err
}

func writeTemp(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRouteCommand(t *testing.T) {
	pins := writeTemp(t, "pins.txt", "1 0 2\n0 1 2\n")
	output := filepath.Join(t.TempDir(), "out.geo")

	stdout, err := runCLI(t, pins, output)
	if err != nil {
		t.Fatalf("route: %v", err)
	}
	if diff := cmp.Diff("Pin count: 3\nTrack count: 4\n", stdout); diff != "" {
		t.Errorf("stdout (-want +got):\n%s", diff)
	}

	got, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		".begin 1",
		".H 1 1 4",
		".H 0 4 4",
		".V 1 0 1",
		".V 4 1 4",
		".V 0 4 5",
		".end",
		".begin 2",
		".H 2 2 3",
		".H 2 3 3",
		".V 2 0 2",
		".V 3 2 3",
		".V 2 3 5",
		".end",
	}, "\n") + "\n"
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("geometry (-want +got):\n%s", diff)
	}
}

func TestRouteCommandColumnWidth(t *testing.T) {
	pins := writeTemp(t, "pins.txt", "1 1\n0 0\n")
	output := filepath.Join(t.TempDir(), "out.geo")

	if _, err := runCLI(t, "--column-width", "2", pins, output); err != nil {
		t.Fatalf("route: %v", err)
	}
	got, _ := os.ReadFile(output)
	if want := ".begin 1\n.H 0 1 2\n.V 0 1 2\n.V 2 1 2\n.end\n"; string(got) != want {
		t.Errorf("geometry = %q, want %q", got, want)
	}
}

func TestRouteCommandErrors(t *testing.T) {
	output := filepath.Join(t.TempDir(), "out.geo")
	tests := []struct {
		name     string
		pins     string
		wantCode errors.Code
		wantExit int
	}{
		{"row mismatch", "1 2 3\n1 2\n", errors.ErrCodeRowMismatch, errors.ExitFailure},
		{"bad token", "1 a\n0 0\n", errors.ErrCodeInvalidInput, errors.ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, writeTemp(t, "pins.txt", tt.pins), output)
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("error = %v, want %s", err, tt.wantCode)
			}
			if got := errors.ExitCode(err); got != tt.wantExit {
				t.Errorf("exit = %d, want %d", got, tt.wantExit)
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := runCLI(t, filepath.Join(t.TempDir(), "absent.txt"), output)
		if got := errors.ExitCode(err); got != errors.ExitNotFound {
			t.Errorf("exit = %d, want %d (err %v)", got, errors.ExitNotFound, err)
		}
	})
}

func TestRouteCommandConfig(t *testing.T) {
	cfg := writeTemp(t, "config.toml", "[geometry]\ntrack_height = 2\n")
	pins := writeTemp(t, "pins.txt", "1 1\n0 0\n")
	output := filepath.Join(t.TempDir(), "out.geo")

	if _, err := runCLI(t, "--config", cfg, pins, output); err != nil {
		t.Fatalf("route: %v", err)
	}
	got, _ := os.ReadFile(output)
	if want := ".begin 1\n.H 0 2 1\n.V 0 2 4\n.V 1 2 4\n.end\n"; string(got) != want {
		t.Errorf("geometry = %q, want %q", got, want)
	}

	_, err := runCLI(t, "--config", filepath.Join(t.TempDir(), "nope.toml"), pins, output)
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing explicit config: error = %v", err)
	}
}

func TestRenderCommand(t *testing.T) {
	pins := writeTemp(t, "pins.txt", "1 0 2\n0 1 2\n")
	base := filepath.Join(t.TempDir(), "chan")

	if _, err := runCLI(t, "render", pins, "-f", "svg,json,geometry", "-o", base); err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, ext := range []string{".svg", ".json", ".geo"} {
		if _, err := os.Stat(base + ext); err != nil {
			t.Errorf("missing %s output: %v", ext, err)
		}
	}
	svg, _ := os.ReadFile(base + ".svg")
	if !bytes.HasPrefix(svg, []byte("<svg")) {
		t.Error("svg output is not an SVG document")
	}
}

func TestRenderCommandRejectsFormat(t *testing.T) {
	pins := writeTemp(t, "pins.txt", "1\n1\n")
	_, err := runCLI(t, "render", pins, "-f", "gif")
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error = %v, want INVALID_CONFIG", err)
	}
}

func TestCheckCommand(t *testing.T) {
	pins := writeTemp(t, "pins.txt", "1 2 2 0\n3 1 0 3\n")
	if _, err := runCLI(t, "check", pins); err != nil {
		t.Errorf("check of routed plan: %v", err)
	}

	short := writeTemp(t, "short.geo", strings.Join([]string{
		".begin 1", ".H 0 1 1", ".V 0 0 1", ".V 1 0 1", ".end",
		".begin 2", ".H 0 1 1", ".V 0 1 2", ".V 1 1 2", ".end",
	}, "\n")+"\n")
	twoNets := writeTemp(t, "two.txt", "2 2\n1 1\n")
	_, err := runCLI(t, "check", twoNets, short)
	if !errors.Is(err, errors.ErrCodeViolation) {
		t.Errorf("check of shorted routing: error = %v, want ROUTING_VIOLATION", err)
	}
}

func TestVCGCommandWritesDOT(t *testing.T) {
	pins := writeTemp(t, "pins.txt", "1 2\n2 1\n")
	out := filepath.Join(t.TempDir(), "vcg.dot")

	if _, err := runCLI(t, "vcg", pins, "-o", out); err != nil {
		t.Fatalf("vcg: %v", err)
	}
	dot, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(dot), "digraph") {
		t.Errorf("output is not DOT: %q", dot)
	}
}

func TestCachePathCommand(t *testing.T) {
	stdout, err := runCLI(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(strings.TrimSpace(stdout), appName) {
		t.Errorf("cache path = %q", stdout)
	}
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		output  string
		formats []string
		want    map[string]string
	}{
		{"single with output", "pins.txt", "out.svg", []string{"svg"}, map[string]string{"svg": "out.svg"}},
		{"single default", "dir/pins.txt", "", []string{"png"}, map[string]string{"png": "dir/pins.png"}},
		{"multiple with base", "pins.txt", "out.svg", []string{"svg", "json"},
			map[string]string{"svg": "out.svg", "json": "out.json"}},
		{"multiple default", "pins.txt", "", []string{"geometry", "pdf"},
			map[string]string{"geometry": "pins.geo", "pdf": "pins.pdf"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPaths(tt.input, tt.output, tt.formats)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("outputPaths (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseFormats(t *testing.T) {
	if diff := cmp.Diff([]string{"svg"}, parseFormats("")); diff != "" {
		t.Errorf("default formats (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"svg", "png"}, parseFormats("svg, png,")); diff != "" {
		t.Errorf("parsed formats (-want +got):\n%s", diff)
	}
}

func TestVersionFlag(t *testing.T) {
	stdout, err := runCLI(t, "--version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(stdout, "chanroute dev\n") {
		t.Errorf("version output = %q", stdout)
	}
}
