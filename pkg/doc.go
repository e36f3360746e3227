// Package pkg provides the core libraries for colgraph column charts.
//
// # Overview
//
// colgraph draws a single-series column chart (legend, left-axis grid,
// columns and a category baseline) onto a drawing surface. The pkg
// directory is organized into three areas:
//
//  1. Domain - [dataset], [settings], [format] and [graph] hold the chart
//     model and its layout rules
//  2. Drawing - [surface] abstracts the page (SVG, PNG, op recorder) and
//     [render] turns a chart into output bytes
//  3. Infrastructure - [pipeline], [cache], [store], [server] and
//     [observability] run renders for the CLI and the HTTP API
//
// # Architecture
//
// The typical data flow through colgraph:
//
//	dataset (JSON, TOML, CSV, XLSX) + settings (TOML, JSON, flags)
//	         ↓
//	    [graph] package (bounds, labels, drawing steps)
//	         ↓
//	    [surface] package (cursor + bounding boxes over a device)
//	         ↓
//	    SVG/PNG/PDF/JSON output
//
// # Quick Start
//
//	ds, _ := dataset.Load("visits.json")
//	st, _ := settings.Load("chart.toml")
//
//	opts := render.Options{}
//	opts.SetDefaults()
//	svg, err := render.Render(ds, st, opts, render.FormatSVG)
//
// The [pipeline] package wraps the same steps with caching:
//
//	fc, _ := cache.NewFileCache(dir)
//	runner := pipeline.NewRunner(fc, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Request{
//	    Dataset:  ds,
//	    Settings: st,
//	    Formats:  []render.Format{render.FormatSVG, render.FormatPNG},
//	})
//
// # Testing
//
//	go test ./pkg/...
//	go test ./pkg/graph/...
//
// [dataset]: https://pkg.go.dev/github.com/matzehuels/colgraph/pkg/dataset
// [settings]: https://pkg.go.dev/github.com/matzehuels/colgraph/pkg/settings
// [format]: https://pkg.go.dev/github.com/matzehuels/colgraph/pkg/format
// [graph]: https://pkg.go.dev/github.com/matzehuels/colgraph/pkg/graph
// [surface]: https://pkg.go.dev/github.com/matzehuels/colgraph/pkg/surface
// [render]: https://pkg.go.dev/github.com/matzehuels/colgraph/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/colgraph/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/colgraph/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/colgraph/pkg/store
// [server]: https://pkg.go.dev/github.com/matzehuels/colgraph/pkg/server
// [observability]: https://pkg.go.dev/github.com/matzehuels/colgraph/pkg/observability
package pkg
