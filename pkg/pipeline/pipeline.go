// Package pipeline provides the cached render pipeline for colgraph.
//
// The CLI and the HTTP server both render through a [Runner] so that
// validation, caching and instrumentation behave the same at every entry
// point.
//
// # Architecture
//
// A request runs in two stages:
//
//  1. Layout: validate the dataset and settings, then compute the chart
//     geometry (axis range, labels, paddings).
//  2. Render: draw the chart once per requested format (SVG, PNG, PDF, JSON).
//
// Both stages are cached. Keys combine the dataset hash with every setting
// and page option that affects the output.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Request{
//	    Dataset:  ds,
//	    Settings: settings.Default(),
//	    Formats:  []render.Format{render.FormatSVG},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"time"

	"github.com/matzehuels/colgraph/pkg/cache"
	"github.com/matzehuels/colgraph/pkg/dataset"
	"github.com/matzehuels/colgraph/pkg/errors"
	"github.com/matzehuels/colgraph/pkg/graph"
	"github.com/matzehuels/colgraph/pkg/render"
	"github.com/matzehuels/colgraph/pkg/settings"
)

// Request describes one render.
type Request struct {
	Dataset  *dataset.Dataset
	Settings settings.Settings
	Options  render.Options
	// Formats defaults to SVG when empty.
	Formats []render.Format
	// Refresh bypasses cache reads. Results are still written back.
	Refresh bool
}

// Validate checks the request and fills defaults.
func (r *Request) Validate() error {
	if r.Dataset == nil {
		return errors.New(errors.ErrCodeInvalidInput, "dataset is required")
	}
	if err := r.Dataset.Validate(); err != nil {
		return err
	}
	if err := r.Settings.Validate(); err != nil {
		return err
	}
	r.Options.SetDefaults()
	if err := r.Options.Validate(); err != nil {
		return err
	}
	if len(r.Formats) == 0 {
		r.Formats = []render.Format{render.FormatSVG}
	}
	for _, f := range r.Formats {
		if _, err := render.ParseFormat(string(f)); err != nil {
			return err
		}
	}
	return nil
}

// LayoutKeyOpts returns the cache key options for the layout stage.
func (r *Request) LayoutKeyOpts() cache.LayoutKeyOpts {
	st, o := r.Settings, r.Options
	return cache.LayoutKeyOpts{
		Baseline:    st.Baseline,
		Border:      st.Border,
		Chart:       st.Chart,
		Legend:      st.Legend,
		ValueFormat: st.Format.String(),
		Gridlines:   st.Gridlines,
		Ticks:       st.Ticks,
		Height:      st.Height,
		Width:       o.Width,
		Margin:      o.Margin,
		FontSize:    o.FontSize,
	}
}

// ArtifactKeyOpts returns the cache key options for one rendered format.
// Scale only affects PNG output and is left out of the other keys.
func (r *Request) ArtifactKeyOpts(f render.Format) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		LayoutKeyOpts: r.LayoutKeyOpts(),
		Format:        string(f),
		Palette:       r.Options.Palette,
	}
	if f == render.FormatPNG {
		opts.Scale = r.Options.Scale
	}
	return opts
}

// Result holds the outputs of a render.
type Result struct {
	// Artifacts maps format names to encoded output.
	Artifacts map[string][]byte
	// Geometry is nil for an empty dataset.
	Geometry    *graph.Geometry
	DatasetHash string
	// RenderID identifies this execution in logs and responses.
	RenderID  string
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains execution statistics.
type Stats struct {
	Series     int
	Values     int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo reports which stages were served from cache.
type CacheInfo struct {
	LayoutHit bool
	// RenderHit is true only when every requested format was cached.
	RenderHit bool
}
