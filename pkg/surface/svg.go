package surface

import (
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// svgDPI keeps one page unit equal to one SVG pixel.
const svgDPI = 72

// SVGDevice draws through go-chart's vector renderer. The renderer's path
// and text calls take integer coordinates, so every point is rounded to the
// nearest pixel: fractional column widths and insets are quantised and
// adjacent columns may differ by 1px. PNGDevice keeps sub-pixel geometry.
type SVGDevice struct {
	r chart.Renderer
}

// NewSVGDevice creates an SVG device for a page of the given size with a
// white background.
func NewSVGDevice(width, height float64) (*SVGDevice, error) {
	r, err := chart.SVG(int(math.Ceil(width)), int(math.Ceil(height)))
	if err != nil {
		return nil, err
	}
	r.SetDPI(svgDPI)
	if f, err := chart.GetDefaultFont(); err == nil {
		r.SetFont(f)
	}

	d := &SVGDevice{r: r}
	d.FillRect(0, 0, width, height, drawing.ColorWhite)
	return d, nil
}

func (d *SVGDevice) FillRect(x, y, w, h float64, c drawing.Color) {
	d.r.ResetStyle()
	d.r.SetFillColor(c)
	d.r.SetStrokeWidth(0)
	d.rect(x, y, w, h)
	d.r.Fill()
}

func (d *SVGDevice) StrokeRect(x, y, w, h, lineWidth float64, c drawing.Color) {
	d.r.ResetStyle()
	d.r.SetStrokeColor(c)
	d.r.SetStrokeWidth(lineWidth)
	d.rect(x, y, w, h)
	d.r.Stroke()
}

func (d *SVGDevice) Line(x1, y1, x2, y2, lineWidth float64, c drawing.Color) {
	d.r.ResetStyle()
	d.r.SetStrokeColor(c)
	d.r.SetStrokeWidth(lineWidth)
	d.r.MoveTo(px(x1), px(y1))
	d.r.LineTo(px(x2), px(y2))
	d.r.Stroke()
}

func (d *SVGDevice) Text(s string, x, y, size float64, c drawing.Color) {
	d.r.ResetStyle()
	d.r.SetFontColor(c)
	d.r.SetFontSize(size)
	d.r.Text(s, px(x), px(y))
}

func (d *SVGDevice) Save(w io.Writer) error {
	return d.r.Save(w)
}

func (d *SVGDevice) rect(x, y, w, h float64) {
	d.r.MoveTo(px(x), px(y))
	d.r.LineTo(px(x+w), px(y))
	d.r.LineTo(px(x+w), px(y+h))
	d.r.LineTo(px(x), px(y+h))
	d.r.Close()
}

// px rounds to the integer grid the vector renderer works on.
func px(v float64) int {
	return int(math.Round(v))
}
