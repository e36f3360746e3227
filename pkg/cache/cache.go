// Package cache stores rendered chart artifacts.
//
// # Backends
//
//   - [FileCache]: entries as JSON files under a directory (CLI)
//   - [RedisCache]: entries in Redis with native expiry (server)
//   - [NullCache]: caching disabled
//
// Remote backends mark transient failures with [Retryable]; reads retry
// them with a [Backoff].
//
// # Keys
//
// Keys are built by a [Keyer] from the dataset hash and every option that
// changes the output, so a changed setting never serves a stale artifact:
//
//	k := cache.NewDefaultKeyer()
//	key := k.ArtifactKey(ds.Hash(), cache.ArtifactKeyOpts{Format: "svg", ...})
//
// [ScopedKeyer] prefixes every key, which keeps tenants or environments
// sharing one Redis apart.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// TTLs per entry kind.
const (
	TTLLayout   = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte store with per-entry expiry. A miss is (nil, false, nil).
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// LayoutKeyOpts lists the inputs that change the chart geometry.
type LayoutKeyOpts struct {
	Baseline    bool    `json:"baseline"`
	Border      bool    `json:"border"`
	Chart       bool    `json:"chart"`
	Legend      bool    `json:"legend"`
	ValueFormat string  `json:"value_format"`
	Gridlines   int     `json:"gridlines"`
	Ticks       int     `json:"ticks"`
	Height      float64 `json:"height"`
	Width       float64 `json:"width"`
	Margin      float64 `json:"margin"`
	FontSize    float64 `json:"font_size"`
}

// ArtifactKeyOpts lists the inputs that change a rendered artifact.
type ArtifactKeyOpts struct {
	LayoutKeyOpts
	Format  string   `json:"format"`
	Palette []string `json:"palette,omitempty"`
	Scale   float64  `json:"scale,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	LayoutKey(datasetHash string, opts LayoutKeyOpts) string
	ArtifactKey(datasetHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes the dataset hash together with the options.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(datasetHash string, opts LayoutKeyOpts) string {
	return "layout:" + digestJSON(datasetHash, opts)
}

// ArtifactKey returns "artifact:<format>:<sha256>".
func (DefaultKeyer) ArtifactKey(datasetHash string, opts ArtifactKeyOpts) string {
	return "artifact:" + opts.Format + ":" + digestJSON(datasetHash, opts)
}

// digestJSON hashes the JSON encoding of parts. Key option structs only
// hold plain fields, so encoding cannot fail.
func digestJSON(parts ...any) string {
	raw, _ := json.Marshal(parts)
	return digest(string(raw))
}

func digest(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// NullCache never stores anything; every Get is a miss.
type NullCache struct{}

// NewNullCache returns a cache that disables caching.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }
