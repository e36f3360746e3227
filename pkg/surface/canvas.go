package surface

import (
	"io"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Defaults for a new Canvas.
const (
	DefaultFontSize  = 10.0
	DefaultLineWidth = 1.0
	DefaultColor     = "000000"
)

// Device receives primitive drawing calls in y-down device coordinates.
// Rectangles are given by their top-left corner.
type Device interface {
	FillRect(x, y, w, h float64, c drawing.Color)
	StrokeRect(x, y, w, h, lineWidth float64, c drawing.Color)
	Line(x1, y1, x2, y2, lineWidth float64, c drawing.Color)
	// Text draws s with its baseline starting at (x, y).
	Text(s string, x, y, size float64, c drawing.Color)
	Save(w io.Writer) error
}

// region is a bounding box in absolute page coordinates (y-up).
type region struct {
	x, y   float64 // bottom-left corner
	w, h   float64
	cursor float64 // relative to y
}

// Canvas implements [Surface] on top of a [Device].
// A Canvas is not safe for concurrent use.
type Canvas struct {
	dev     Device
	metrics *Metrics

	pageHeight float64
	fontSize   float64
	lineWidth  float64
	fill       drawing.Color
	stroke     drawing.Color

	stack []region
}

// CanvasOption configures a Canvas.
type CanvasOption func(*Canvas)

// WithMetrics sets the text metrics. Defaults to [DefaultMetrics].
func WithMetrics(m *Metrics) CanvasOption {
	return func(c *Canvas) { c.metrics = m }
}

// NewCanvas creates a canvas for a page of the given size. The drawable
// bounds are inset by margin on every side and the cursor starts at their top.
func NewCanvas(dev Device, width, height, margin, fontSize float64, opts ...CanvasOption) *Canvas {
	if fontSize <= 0 {
		fontSize = DefaultFontSize
	}
	c := &Canvas{
		dev:        dev,
		pageHeight: height,
		fontSize:   fontSize,
		lineWidth:  DefaultLineWidth,
		fill:       parseColor(DefaultColor),
		stroke:     parseColor(DefaultColor),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.metrics == nil {
		c.metrics = DefaultMetrics()
	}

	inner := region{x: margin, y: margin, w: width - 2*margin, h: height - 2*margin}
	inner.cursor = inner.h
	c.stack = []region{inner}
	return c
}

// Device returns the underlying device.
func (c *Canvas) Device() Device { return c.dev }

// Save writes the device output to w.
func (c *Canvas) Save(w io.Writer) error { return c.dev.Save(w) }

func (c *Canvas) current() *region { return &c.stack[len(c.stack)-1] }

// Bounds returns the current region.
func (c *Canvas) Bounds() Rectangle {
	r := c.current()
	return Rectangle{Width: r.w, Height: r.h, Top: r.h, Right: r.w}
}

// Cursor returns the current vertical position.
func (c *Canvas) Cursor() float64 { return c.current().cursor }

// Depth reports how many bounding boxes are open.
func (c *Canvas) Depth() int { return len(c.stack) - 1 }

// BoundingBox runs fn inside a nested region. The region is closed even if
// fn fails, and the parent cursor moves below the box.
func (c *Canvas) BoundingBox(at Point, width, height float64, fn func() error) error {
	parent := c.current()
	child := region{
		x:      parent.x + at.X,
		y:      parent.y + at.Y - height,
		w:      width,
		h:      height,
		cursor: height,
	}

	c.stack = append(c.stack, child)
	err := fn()
	c.stack = c.stack[:len(c.stack)-1]

	c.current().cursor = at.Y - height
	return err
}

// WidthOf returns the width of text at the given font size.
func (c *Canvas) WidthOf(text string, size float64) float64 {
	return c.metrics.WidthOf(text, size)
}

// TextHeight returns the line height at the current font size.
func (c *Canvas) TextHeight() float64 { return c.metrics.Height(c.fontSize) }

// FontSize returns the current font size.
func (c *Canvas) FontSize() float64 { return c.fontSize }

// FillRectangle fills a rectangle hanging down from topLeft.
func (c *Canvas) FillRectangle(topLeft Point, width, height float64) {
	x, top := topLeft.X, topLeft.Y
	if width < 0 {
		x, width = x+width, -width
	}
	if height < 0 {
		top, height = top-height, -height
	}
	dx, dy := c.device(Point{X: x, Y: top})
	c.dev.FillRect(dx, dy, width, height, c.fill)
}

// StrokeLine draws a line with the current stroke color and width.
func (c *Canvas) StrokeLine(from, to Point) {
	x1, y1 := c.device(from)
	x2, y2 := c.device(to)
	c.dev.Line(x1, y1, x2, y2, c.lineWidth, c.stroke)
}

// StrokeBounds outlines the current region.
func (c *Canvas) StrokeBounds() {
	r := c.current()
	x, y := c.device(Point{X: 0, Y: r.h})
	c.dev.StrokeRect(x, y, r.w, r.h, c.lineWidth, c.stroke)
}

// WithLineWidth runs fn with a temporary line width.
func (c *Canvas) WithLineWidth(width float64, fn func()) {
	prev := c.lineWidth
	c.lineWidth = width
	defer func() { c.lineWidth = prev }()
	fn()
}

// SetFillColor sets the fill and text color from a hex string like "2e578c".
func (c *Canvas) SetFillColor(hex string) { c.fill = parseColor(hex) }

// SetStrokeColor sets the stroke color from a hex string.
func (c *Canvas) SetStrokeColor(hex string) { c.stroke = parseColor(hex) }

// Text draws a single line of text in a box whose top edge is at.Y.
func (c *Canvas) Text(text string, at Point, width float64, align Align) {
	x := at.X
	switch align {
	case AlignCenter:
		x += (width - c.WidthOf(text, c.fontSize)) / 2
	case AlignRight:
		x += width - c.WidthOf(text, c.fontSize)
	}
	baseline := Point{X: x, Y: at.Y - c.metrics.Ascent(c.fontSize)}
	dx, dy := c.device(baseline)
	c.dev.Text(text, dx, dy, c.fontSize, c.fill)
}

// parseColor accepts hex colors with or without a leading '#'.
func parseColor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

// device converts a point in the current region to device coordinates.
func (c *Canvas) device(p Point) (float64, float64) {
	r := c.current()
	return r.x + p.X, c.pageHeight - (r.y + p.Y)
}
