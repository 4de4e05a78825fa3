package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chanroute/pkg/channel"
)

func TestRouterTracesFollowLevel(t *testing.T) {
	ch, err := channel.FromNets([]int{1, 0, 2}, []int{0, 1, 2})
	if err != nil {
		t.Fatal(err)
	}

	for _, tt := range []struct {
		level log.Level
		want  int
	}{
		{log.InfoLevel, 0},
		{log.DebugLevel, 4},
	} {
		t.Run(tt.level.String(), func(t *testing.T) {
			var buf bytes.Buffer
			channel.Route(ch, channel.WithLogger(newLogger(&buf, tt.level)))
			if got := strings.Count(buf.String(), "allocated track"); got != tt.want {
				t.Errorf("allocated track lines = %d, want %d:\n%s", got, tt.want, buf.String())
			}
		})
	}
}

func TestLoggerTimestampFormat(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, log.InfoLevel).Info("Track count", "tracks", 4)

	if !regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{2} `).MatchString(buf.String()) {
		t.Errorf("line does not start with an HH:MM:SS.cc stamp: %q", buf.String())
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	newProgress(newLogger(&buf, log.InfoLevel)).done("Routed 2 nets into out.geo")

	line := strings.TrimSpace(buf.String())
	if !regexp.MustCompile(`Routed 2 nets into out\.geo \(\d+(ms|s)\)$`).MatchString(line) {
		t.Errorf("progress line = %q", line)
	}
}

func TestProgressSilentAboveInfo(t *testing.T) {
	var buf bytes.Buffer
	newProgress(newLogger(&buf, log.WarnLevel)).done("Routed 1 nets into x.geo")
	if buf.Len() != 0 {
		t.Errorf("progress logged at warn level: %q", buf.String())
	}
}

func TestLoggerFromContext(t *testing.T) {
	custom := newLogger(&bytes.Buffer{}, log.DebugLevel)

	if got := loggerFromContext(withLogger(context.Background(), custom)); got != custom {
		t.Error("attached logger not returned")
	}
	if got := loggerFromContext(context.Background()); got != log.Default() {
		t.Error("bare context should fall back to the default logger")
	}
}

func TestRouteCommandLogs(t *testing.T) {
	pins := writeTemp(t, "pins.txt", "1 0 2\n0 1 2\n")
	output := filepath.Join(t.TempDir(), "out.geo")

	_, logs, err := runCLILogged(t, log.InfoLevel, pins, output)
	if err != nil {
		t.Fatalf("route: %v", err)
	}
	if !strings.Contains(logs, "Routed 2 nets into "+output) {
		t.Errorf("missing progress line in:\n%s", logs)
	}
	if strings.Contains(logs, "allocated track") {
		t.Errorf("router traces logged at info level:\n%s", logs)
	}

	_, logs, err = runCLILogged(t, log.DebugLevel, pins, output)
	if err != nil {
		t.Fatalf("verbose route: %v", err)
	}
	if got := strings.Count(logs, "allocated track"); got != 4 {
		t.Errorf("allocated track lines = %d, want 4:\n%s", got, logs)
	}
}
