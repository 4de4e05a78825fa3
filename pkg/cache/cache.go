// Package cache stores routing plans and rendered artifacts between runs.
//
// A [Cache] is a byte store with per-entry expiry. Three backends exist:
//   - [FileCache]: one JSON file per entry, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP server
//   - [NullCache]: stores nothing, for --no-cache and tests
//
// Keys are built by a [Keyer] so that every component derives the same key
// for the same input. [ScopedKeyer] adds a prefix to isolate namespaces that
// share one backend.
package cache

import (
	"context"
	"time"
)

// Default entry lifetimes.
const (
	TTLPlan     = 7 * 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// Cache is a byte store with optional expiry. Implementations are safe for
// concurrent use.
type Cache interface {
	// Get returns the stored bytes and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A non-positive ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

// PlanKeyOpts holds the routing inputs that change a plan besides the pins.
type PlanKeyOpts struct {
	ColumnWidth int `json:"column_width"`
	TrackHeight int `json:"track_height"`
}

// ArtifactKeyOpts holds the rendering inputs that change an artifact.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Scale  float64 `json:"scale,omitempty"`
	Labels bool    `json:"labels,omitempty"`
	Grid   bool    `json:"grid,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// PlanKey identifies a routed plan by the hash of its pin spec.
	PlanKey(pinsHash string, opts PlanKeyOpts) string
	// ArtifactKey identifies a rendered artifact by the hash of its plan.
	ArtifactKey(planHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes every key component into a fixed-length key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// PlanKey implements Keyer.
func (DefaultKeyer) PlanKey(pinsHash string, opts PlanKeyOpts) string {
	return hashKey("plan", pinsHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(planHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", planHash, opts)
}
