// Package render turns a dataset and settings into chart artifacts.
//
// # Overview
//
// [Render] lays out a [graph.Graph] on a page and writes it in one of the
// supported formats:
//
//   - svg: vector output through go-chart's SVG renderer
//   - png: raster output through gg, at [Options.Scale] times page size
//   - pdf: the SVG converted with rsvg-convert (see [ToPDF])
//   - json: the ordered list of drawing operations, for tests and tools
//
// The page is [Options.Width] wide and the chart height plus two margins
// tall:
//
//	out, err := render.Render(ds, settings.Default(), render.Options{}, render.FormatSVG)
//
// [Measure] returns the computed chart geometry without producing output.
//
// # PDF Output
//
// [ToPDF] requires librsvg to be installed:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
package render
