// Package surface provides the page-like drawing surface a chart is laid
// out on.
//
// # Coordinates
//
// [Surface] uses y-up page units with the origin at the bottom-left of the
// current bounds. [Surface.BoundingBox] opens a nested region whose top-left
// corner is given relative to the parent's origin; inside it, [Surface.Bounds]
// and [Surface.Cursor] describe the nested region, and once the callback
// returns the parent cursor sits just below the box:
//
//	s.BoundingBox(surface.Point{X: 0, Y: s.Cursor()}, w, h, func() error {
//	    s.FillRectangle(surface.Point{X: 0, Y: s.Bounds().Top}, 10, 10)
//	    return nil
//	})
//
// # Devices
//
// A [Canvas] translates surface calls into y-down [Device] calls:
//
//   - [SVGDevice]: vector output through go-chart's SVG renderer, on a
//     whole-pixel grid
//   - [PNGDevice]: raster output through gg
//   - [Recorder]: an ordered list of primitive operations, encodable as JSON
//
// go-chart only accepts integer coordinates, so SVG output rounds each
// point to the nearest pixel while PNG and the Recorder keep fractions.
//
// Text is measured with [Metrics] (Go Regular), so layout depends only on
// the font size and never on the device.
package surface
