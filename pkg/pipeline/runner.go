package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chanroute/pkg/cache"
	"github.com/matzehuels/chanroute/pkg/channel"
	pkgio "github.com/matzehuels/chanroute/pkg/io"
	"github.com/matzehuels/chanroute/pkg/observability"
)

// Runner executes the pipeline with caching. It keeps no per-run state, so
// one Runner may serve concurrent runs with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides the lifetime of cached plans and artifacts when positive.
	TTL time.Duration
}

// NewRunner creates a runner. A nil keyer uses the DefaultKeyer; a nil cache
// disables caching.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute routes ch and renders every requested format.
func (r *Runner) Execute(ctx context.Context, ch *channel.Channel, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{Channel: ch}

	routeStart := time.Now()
	plan, routeHit, err := r.RouteWithCacheInfo(ctx, ch, opts)
	if err != nil {
		return nil, fmt.Errorf("route: %w", err)
	}
	result.Plan = plan
	result.Stats = Stats{
		Columns:   ch.Columns(),
		Pins:      ch.PinCount(),
		Nets:      len(plan.Nets()),
		Tracks:    plan.TrackCount(),
		Wires:     plan.WireCount(),
		RouteTime: time.Since(routeStart),
	}
	result.CacheInfo.RouteHit = routeHit
	if data, err := pkgio.MarshalPlan(plan); err == nil {
		result.PlanHash = cache.Hash(data)
	}

	r.Logger.Info("routed channel",
		"nets", result.Stats.Nets,
		"tracks", result.Stats.Tracks,
		"duration", result.Stats.RouteTime)

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, plan, ch, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// RouteWithCacheInfo routes ch, reusing a cached plan when one exists, and
// reports whether the cache was hit.
func (r *Runner) RouteWithCacheInfo(ctx context.Context, ch *channel.Channel, opts Options) (*channel.Plan, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRoute(); err != nil {
		return nil, false, err
	}

	key := r.Keyer.PlanKey(pinsHash(ch), opts.PlanKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if plan, err := pkgio.UnmarshalPlan(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "plan")
				return plan, true, nil
			}
			r.Logger.Debug("discarding unreadable cached plan", "key", key)
		}
		observability.Cache().OnCacheMiss(ctx, "plan")
	}

	hooks := observability.Pipeline()
	hooks.OnRouteStart(ctx, ch.Columns())
	start := time.Now()
	plan := channel.Route(ch,
		channel.WithGeometry(opts.Geometry()),
		channel.WithLogger(opts.Logger))
	hooks.OnRouteComplete(ctx, plan.TrackCount(), time.Since(start), nil)

	if data, err := pkgio.MarshalPlan(plan); err == nil {
		if err := r.Cache.Set(ctx, key, data, r.ttl(cache.TTLPlan)); err != nil {
			r.Logger.Warn("cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "plan", len(data))
		}
	}
	return plan, false, nil
}

// Route is RouteWithCacheInfo without the cache hit flag.
func (r *Runner) Route(ctx context.Context, ch *channel.Channel, opts Options) (*channel.Plan, error) {
	plan, _, err := r.RouteWithCacheInfo(ctx, ch, opts)
	return plan, err
}

// RenderWithCacheInfo renders plan in every requested format. Cached
// artifacts are used only when all formats are present.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, plan *channel.Plan, ch *channel.Channel, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	planData, err := pkgio.MarshalPlan(plan)
	if err != nil {
		return nil, false, fmt.Errorf("serialize plan for cache key: %w", err)
	}
	planHash := cache.Hash(planData)

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, hit, err := r.Cache.Get(ctx, r.Keyer.ArtifactKey(planHash, opts.ArtifactKeyOpts(format)))
		if err != nil || !hit {
			break
		}
		artifacts[format] = data
	}
	if len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := Render(plan, ch, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(planHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, r.ttl(cache.TTLArtifact)); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return rendered, false, nil
}

// Render is RenderWithCacheInfo without the cache hit flag.
func (r *Runner) Render(ctx context.Context, plan *channel.Plan, ch *channel.Channel, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, plan, ch, opts)
	return artifacts, err
}

// Close releases the runner's cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}
