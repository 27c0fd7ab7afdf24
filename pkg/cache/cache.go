// Package cache stores resolved layouts and rendered artifacts keyed by
// document content.
//
// Resolving a document is a pure function, so any cached result keyed by the
// document's canonical hash stays valid forever; TTLs exist only to bound
// storage. Backends cover the deployment spectrum: file and sqlite for CLI
// usage, memory for embedding, redis and mongo for the hosted service, null
// to disable caching.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present; an absent key is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero stores it without expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Default entry lifetimes. Cached values stay correct indefinitely, so these
// only bound storage growth; artifacts are cheap to re-render and expire
// sooner.
const (
	TTLResult   = 30 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// ArtifactKeyOpts captures everything besides the document that changes a
// rendered artifact.
type ArtifactKeyOpts struct {
	Format string  // "svg", "png", "pdf", "json", "dot"
	System int     // system index within the document, -1 for all
	Scale  float64 // pixels per layout unit, for raster and vector sizing
}

// Keyer generates cache keys. Implementations decide key layout; the default
// layout is stable across releases so long-lived caches stay usable.
type Keyer interface {
	// ResultKey keys a resolved layout by the document's canonical hash.
	ResultKey(docHash string) string

	// ArtifactKey keys a rendered artifact by document hash and render
	// options.
	ArtifactKey(docHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key layout.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ResultKey generates a key for resolved-layout caching.
func (k *DefaultKeyer) ResultKey(docHash string) string {
	return "result:" + docHash
}

// ArtifactKey generates a key for rendered-artifact caching.
// Options are folded into the hash so every variant gets its own entry.
func (k *DefaultKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", docHash, opts)
}
