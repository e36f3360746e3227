package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/colgraph/pkg/cache"
	"github.com/matzehuels/colgraph/pkg/graph"
	"github.com/matzehuels/colgraph/pkg/observability"
	"github.com/matzehuels/colgraph/pkg/render"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different requests.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
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

// Execute runs the layout and render stages with caching.
func (r *Runner) Execute(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	result := &Result{
		RenderID:    uuid.NewString(),
		DatasetHash: req.Dataset.Hash(),
	}
	result.Stats.Series = len(req.Dataset.Series)
	result.Stats.Values = len(req.Dataset.Values())
	logger := r.Logger.With("render_id", result.RenderID)

	// Stage 1: Layout
	layoutStart := time.Now()
	geo, layoutHit, err := r.LayoutWithCacheInfo(ctx, &req, result.DatasetHash)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Geometry = geo
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	logger.Debug("computed layout",
		"series", result.Stats.Series,
		"values", result.Stats.Values,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, &req, result.DatasetHash)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	logger.Info("rendered chart",
		"formats", formatNames(req.Formats),
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo computes the chart geometry with caching and returns
// cache hit info. req must already be validated.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, req *Request, datasetHash string) (geo *graph.Geometry, hit bool, err error) {
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, len(req.Dataset.Series), len(req.Dataset.Values()))
	start := time.Now()
	defer func() { hooks.OnLayoutComplete(ctx, time.Since(start), err) }()

	key := r.Keyer.LayoutKey(datasetHash, req.LayoutKeyOpts())
	if data, ok := r.get(ctx, key, "layout", req.Refresh); ok {
		var cached *graph.Geometry
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, true, nil
		}
		// Unreadable entries fall through and are overwritten.
	}

	geo, err = render.Measure(req.Dataset, req.Settings, req.Options)
	if err != nil {
		return nil, false, err
	}
	if data, err := json.Marshal(geo); err == nil {
		r.set(ctx, key, "layout", data, cache.TTLLayout)
	}
	return geo, false, nil
}

// RenderWithCacheInfo renders every requested format with caching and
// returns whether all of them came from cache. req must already be
// validated.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, req *Request, datasetHash string) (artifacts map[string][]byte, allCached bool, err error) {
	hooks := observability.Pipeline()
	names := formatNames(req.Formats)
	hooks.OnRenderStart(ctx, names)
	start := time.Now()
	defer func() { hooks.OnRenderComplete(ctx, names, time.Since(start), err) }()

	artifacts = make(map[string][]byte, len(req.Formats))
	allCached = true
	for _, f := range req.Formats {
		key := r.Keyer.ArtifactKey(datasetHash, req.ArtifactKeyOpts(f))
		if data, ok := r.get(ctx, key, "artifact", req.Refresh); ok {
			artifacts[string(f)] = data
			continue
		}
		allCached = false

		data, err := render.Render(req.Dataset, req.Settings, req.Options, f)
		if err != nil {
			return nil, false, err
		}
		artifacts[string(f)] = data
		r.set(ctx, key, "artifact", data, cache.TTLArtifact)
	}
	return artifacts, allCached, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// get reads a cache entry. Cache errors are logged and treated as misses.
func (r *Runner) get(ctx context.Context, key, keyType string, refresh bool) ([]byte, bool) {
	if refresh {
		return nil, false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key", key, "error", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return data, true
}

func (r *Runner) set(ctx context.Context, key, keyType string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

func formatNames(formats []render.Format) []string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return names
}
