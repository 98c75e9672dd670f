// Package cache provides the caching layer for hive plot layouts and
// rendered artifacts.
//
// # Backends
//
//   - [NullCache]: never stores anything (--no-cache)
//   - [FileCache]: one JSON file per entry under a local directory (CLI)
//   - [RedisCache]: shared cache for the HTTP server
//   - [MongoCache]: document cache with a TTL index
//
// # Keys
//
// Keys are derived by a [Keyer] from content hashes, never from file names:
//
//	k := cache.NewDefaultKeyer()
//	layoutKey := k.LayoutKey(cache.Hash(graphJSON), cache.LayoutKeyOpts{Scale: 10})
//	svgKey := k.ArtifactKey(cache.Hash(layoutJSON), cache.ArtifactKeyOpts{Format: "svg"})
package cache

import (
	"context"
	"time"
)

// TTLs for cached entries.
const (
	// LayoutTTL is how long a computed layout stays cached.
	LayoutTTL = 7 * 24 * time.Hour

	// ArtifactTTL is how long a rendered artifact stays cached.
	ArtifactTTL = 24 * time.Hour
)

// Cache stores opaque byte values under string keys.
//
// Get reports a miss as (nil, false, nil); errors are reserved for backend
// failures. A zero TTL means the entry does not expire.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}

// =============================================================================
// Keyer
// =============================================================================

// Keyer derives cache keys.
type Keyer interface {
	LayoutKey(graphHash string, opts LayoutKeyOpts) string
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the layout inputs that are not part of the graph document.
type LayoutKeyOpts struct {
	Scale          float64 `json:"scale,omitempty"`
	InternalRadius float64 `json:"internal_radius,omitempty"`
	LineWidth      float64 `json:"line_width,omitempty"`
	MinorAngle     float64 `json:"minor_angle,omitempty"`
	Directed       bool    `json:"directed,omitempty"`
}

// ArtifactKeyOpts are the render inputs that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	PNGScale    float64 `json:"png_scale,omitempty"`
	Margin      float64 `json:"margin,omitempty"`
	Background  string  `json:"background,omitempty"`
	GroupLabels bool    `json:"group_labels,omitempty"`
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey returns "layout:<sha256>" over the graph hash and options.
func (DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}

// ArtifactKey returns "artifact:<sha256>" over the layout hash and options.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
