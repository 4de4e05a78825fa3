package pipeline

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/chanroute/pkg/cache"
	"github.com/matzehuels/chanroute/pkg/channel"
	"github.com/matzehuels/chanroute/pkg/errors"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"geometry", false},
		{"json", false},
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "geometry"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	err := ValidateFormats([]string{"svg", "invalid"})
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Invalid format error = %v, want INVALID_CONFIG", err)
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if got := opts.Geometry(); got != channel.DefaultGeometry {
		t.Errorf("Geometry = %+v, want %+v", got, channel.DefaultGeometry)
	}
	if diff := cmp.Diff([]string{FormatGeometry}, opts.Formats); diff != "" {
		t.Errorf("Formats (-want +got):\n%s", diff)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale = %v, want %v", opts.Scale, DefaultScale)
	}
	if opts.Logger == nil {
		t.Error("Logger not defaulted")
	}
}

func TestOptionsRejectInvalid(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"negative column width", Options{ColumnWidth: -1}},
		{"negative track height", Options{TrackHeight: -2}},
		{"negative scale", Options{Scale: -1}},
		{"unknown format", Options{Formats: []string{"gif"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestArtifactKeyOptsIgnoresDrawingForText(t *testing.T) {
	opts := Options{Scale: 30, Labels: true, Grid: true}
	if got := opts.ArtifactKeyOpts(FormatGeometry); got != (cache.ArtifactKeyOpts{Format: FormatGeometry}) {
		t.Errorf("geometry key opts = %+v", got)
	}
	want := cache.ArtifactKeyOpts{Format: FormatSVG, Scale: 30, Labels: true, Grid: true}
	if got := opts.ArtifactKeyOpts(FormatSVG); got != want {
		t.Errorf("svg key opts = %+v, want %+v", got, want)
	}
}

func TestParse(t *testing.T) {
	ch, err := Parse(context.Background(), strings.NewReader("1 0 2\n0 1 2\n"), "test")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if ch.PinCount() != 4 {
		t.Errorf("PinCount = %d, want 4", ch.PinCount())
	}
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile(context.Background(), "/nonexistent/pins.txt")
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestRenderTextFormats(t *testing.T) {
	ch := mustChannel(t, []int{1, 1}, []int{0, 0})
	plan := channel.Route(ch)

	opts := Options{Formats: []string{FormatGeometry, FormatJSON, FormatSVG}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	artifacts, err := Render(plan, ch, opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	wantGeo := ".begin 1\n.H 0 1 1\n.V 0 1 2\n.V 1 1 2\n.end\n"
	if diff := cmp.Diff(wantGeo, string(artifacts[FormatGeometry])); diff != "" {
		t.Errorf("geometry (-want +got):\n%s", diff)
	}
	if !strings.Contains(string(artifacts[FormatJSON]), `"track_count":1`) {
		t.Errorf("json missing track count: %s", artifacts[FormatJSON])
	}
	if !strings.HasPrefix(string(artifacts[FormatSVG]), "<svg") {
		t.Error("svg artifact is not an SVG document")
	}
}

func TestRunnerCachesPlan(t *testing.T) {
	ctx := context.Background()
	mem := newMemCache()
	runner := NewRunner(mem, nil, nil)
	ch := mustChannel(t, []int{1, 0, 2}, []int{0, 1, 2})

	first, hit, err := runner.RouteWithCacheInfo(ctx, ch, Options{})
	if err != nil {
		t.Fatalf("first route: %v", err)
	}
	if hit {
		t.Error("first route should miss")
	}

	second, hit, err := runner.RouteWithCacheInfo(ctx, ch, Options{})
	if err != nil {
		t.Fatalf("second route: %v", err)
	}
	if !hit {
		t.Error("second route should hit")
	}
	if diff := cmp.Diff(first.All(), second.All()); diff != "" {
		t.Errorf("cached plan differs (-routed +cached):\n%s", diff)
	}
	if second.TrackCount() != first.TrackCount() {
		t.Errorf("cached tracks = %d, want %d", second.TrackCount(), first.TrackCount())
	}

	// Refresh bypasses the cache; a different geometry is a different key.
	if _, hit, _ := runner.RouteWithCacheInfo(ctx, ch, Options{Refresh: true}); hit {
		t.Error("refresh should not hit")
	}
	if _, hit, _ := runner.RouteWithCacheInfo(ctx, ch, Options{ColumnWidth: 2}); hit {
		t.Error("different geometry should not hit")
	}
}

func TestRunnerTTL(t *testing.T) {
	ctx := context.Background()
	ch := mustChannel(t, []int{1, 1}, []int{0, 0})

	for _, tt := range []struct {
		name string
		ttl  time.Duration
		want time.Duration
	}{
		{"default", 0, cache.TTLPlan},
		{"override", time.Hour, time.Hour},
	} {
		t.Run(tt.name, func(t *testing.T) {
			mem := newMemCache()
			runner := NewRunner(mem, nil, nil)
			runner.TTL = tt.ttl
			if _, err := runner.Route(ctx, ch, Options{}); err != nil {
				t.Fatal(err)
			}
			if len(mem.ttls) != 1 {
				t.Fatalf("cache entries = %d, want 1", len(mem.ttls))
			}
			for _, got := range mem.ttls {
				if got != tt.want {
					t.Errorf("ttl = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestRunnerExecute(t *testing.T) {
	ctx := context.Background()
	mem := newMemCache()
	runner := NewRunner(mem, nil, nil)
	ch := mustChannel(t, []int{1, 0, 2}, []int{0, 1, 2})

	opts := Options{Formats: []string{FormatGeometry, FormatSVG}}
	result, err := runner.Execute(ctx, ch, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Stats.Tracks != 4 || result.Stats.Nets != 2 || result.Stats.Pins != 4 {
		t.Errorf("Stats = %+v", result.Stats)
	}
	if result.CacheInfo.RouteHit || result.CacheInfo.RenderHit {
		t.Errorf("first run CacheInfo = %+v", result.CacheInfo)
	}
	if len(result.Artifacts) != 2 {
		t.Errorf("artifacts = %d, want 2", len(result.Artifacts))
	}
	if result.PlanHash == "" {
		t.Error("PlanHash not set")
	}

	again, err := runner.Execute(ctx, ch, opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !again.CacheInfo.RouteHit || !again.CacheInfo.RenderHit {
		t.Errorf("second run CacheInfo = %+v", again.CacheInfo)
	}
	if diff := cmp.Diff(result.Artifacts, again.Artifacts); diff != "" {
		t.Errorf("cached artifacts differ (-first +second):\n%s", diff)
	}
	if result.PlanHash != again.PlanHash {
		t.Error("PlanHash changed between runs")
	}
}

func TestRunnerExecuteInvalidOptions(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	ch := mustChannel(t, []int{1}, []int{1})
	_, err := runner.Execute(context.Background(), ch, Options{Formats: []string{"bmp"}})
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error = %v, want INVALID_CONFIG", err)
	}
}

func mustChannel(t *testing.T, top, bottom []int) *channel.Channel {
	t.Helper()
	ch, err := channel.FromNets(top, bottom)
	if err != nil {
		t.Fatalf("FromNets: %v", err)
	}
	return ch
}

// memCache is an in-memory cache.Cache for tests.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	ttls map[string]time.Duration
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]byte), ttls: make(map[string]time.Duration)}
}

func (m *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.data[key]
	return d, ok, nil
}

func (m *memCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = data
	m.ttls[key] = ttl
	return nil
}

func (m *memCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memCache) Close() error { return nil }
