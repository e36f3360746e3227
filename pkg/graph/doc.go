// Package graph lays out and draws a single column chart.
//
// # Overview
//
// A [Graph] combines a [dataset.Dataset] and [settings.Settings] and draws
// them onto a [surface.Surface]. Drawing happens inside one bounding box
// that spans the surface width and the configured height, starting at the
// current cursor. Within that box the graph draws, in order:
//
//  1. Legend: the series names, right-aligned in a band at the top
//  2. Grid: one horizontal line and left-axis label per tick (gridlines > 0)
//  3. Baseline: the category axis and its labels under the columns
//  4. Chart: one filled column per value of the first series
//  5. Border: a thin outline around the whole region
//
// Each step can be switched off through settings. The order is fixed and
// exposed through [Graph.Steps].
//
// # Geometry
//
// The shared geometry is computed once per draw by [Graph.Layout]:
//
//   - Left is the width of the widest left-axis label at the font size
//   - PaddingTop is one legend band of headroom, two with a legend
//   - PaddingBottom is one line of text when the baseline is drawn
//   - ChartTop and ChartHeight are the bounds minus those paddings
//
// The axis range comes from [Graph.MinMax], which always includes 0 and the
// gridline count and rounds both ends to two significant digits, so that
// sparse or single-valued data still has a usable axis.
//
// # Columns
//
// [Chart] divides the width right of the axis into one slot per value and
// insets each column by an eighth of its slot on both sides. Values map to
// heights through a constant height-per-unit; negative values hang below
// the zero line. Absent values keep their slot empty.
//
// # Errors
//
// Drawing an empty dataset does nothing. A chart with no values or with an
// empty value range fails with a DOMAIN_ERROR from [errors.Domain].
//
// [errors.Domain]: github.com/matzehuels/colgraph/pkg/errors.Domain
package graph
