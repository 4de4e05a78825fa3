// Package pipeline runs the parse → route → render pipeline for chanroute.
//
// The CLI and the HTTP server both go through a [Runner], so that caching,
// defaults, and validation behave the same at every entry point.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	ch, err := pipeline.Parse(ctx, r, "pins.txt")
//	result, err := runner.Execute(ctx, ch, pipeline.Options{
//	    Formats: []string{"geometry", "svg"},
//	})
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	plan, err := runner.Route(ctx, ch, opts)
//	artifacts, err := runner.Render(ctx, plan, ch, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chanroute/pkg/cache"
	"github.com/matzehuels/chanroute/pkg/channel"
	"github.com/matzehuels/chanroute/pkg/errors"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultScale is the number of SVG pixels per channel unit.
	DefaultScale = 20.0

	// PNGScale is the rasterisation factor applied on top of the SVG size.
	PNGScale = 2.0
)

// Format constants for output formats.
const (
	FormatGeometry = "geometry"
	FormatJSON     = "json"
	FormatSVG      = "svg"
	FormatPNG      = "png"
	FormatPDF      = "pdf"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatGeometry: true,
	FormatJSON:     true,
	FormatSVG:      true,
	FormatPNG:      true,
	FormatPDF:      true,
}

// Extensions maps each format to its output file extension.
var Extensions = map[string]string{
	FormatGeometry: ".geo",
	FormatJSON:     ".json",
	FormatSVG:      ".svg",
	FormatPNG:      ".png",
	FormatPDF:      ".pdf",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures a pipeline run. It supports JSON for API requests.
type Options struct {
	// Route options
	ColumnWidth int  `json:"column_width,omitempty"`
	TrackHeight int  `json:"track_height,omitempty"`
	Refresh     bool `json:"refresh,omitempty"` // bypass cached plans

	// Render options
	Formats []string `json:"formats,omitempty"`
	Scale   float64  `json:"scale,omitempty"`
	Labels  bool     `json:"labels,omitempty"`
	Grid    bool     `json:"grid,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	validated bool
}

// Result holds the outputs of a pipeline run.
type Result struct {
	Channel *channel.Channel
	Plan    *channel.Plan

	// PlanHash is the content hash of the JSON plan.
	PlanHash string

	// Artifacts holds rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Columns    int
	Pins       int // present terminals on both rows
	Nets       int
	Tracks     int
	Wires      int
	RouteTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	RouteHit  bool
	RenderHit bool // all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidConfig,
			"invalid format: %q (must be one of: geometry, json, svg, png, pdf)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every option and fills in defaults. Calling it
// again has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForRoute(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForRoute applies geometry defaults and rejects non-positive spacing.
func (o *Options) ValidateForRoute() error {
	if o.ColumnWidth == 0 {
		o.ColumnWidth = channel.DefaultGeometry.ColumnWidth
	}
	if o.TrackHeight == 0 {
		o.TrackHeight = channel.DefaultGeometry.TrackHeight
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return o.Geometry().Validate()
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatGeometry}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := errors.ValidateDimension("scale", o.Scale); err != nil {
		return err
	}
	return ValidateFormats(o.Formats)
}

// Geometry returns the channel geometry selected by the options.
func (o *Options) Geometry() channel.Geometry {
	return channel.Geometry{ColumnWidth: o.ColumnWidth, TrackHeight: o.TrackHeight}
}

// PlanKeyOpts returns cache key options for routing.
func (o *Options) PlanKeyOpts() cache.PlanKeyOpts {
	return cache.PlanKeyOpts{ColumnWidth: o.ColumnWidth, TrackHeight: o.TrackHeight}
}

// ArtifactKeyOpts returns cache key options for one rendered format. Drawing
// options only matter to the formats that draw.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatSVG, FormatPNG, FormatPDF:
		k.Scale = o.Scale
		k.Labels = o.Labels
		k.Grid = o.Grid
	}
	return k
}
