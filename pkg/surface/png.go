package surface

import (
	"io"
	"math"

	"github.com/fogleman/gg"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// DefaultPNGScale renders PNGs at twice the page resolution.
const DefaultPNGScale = 2.0

// PNGDevice rasterizes through gg.
type PNGDevice struct {
	dc      *gg.Context
	metrics *Metrics
	size    float64
}

// NewPNGDevice creates a raster device for a page of the given size.
// The image is scale times larger than the page.
func NewPNGDevice(width, height, scale float64, metrics *Metrics) *PNGDevice {
	if scale <= 0 {
		scale = DefaultPNGScale
	}
	if metrics == nil {
		metrics = DefaultMetrics()
	}
	dc := gg.NewContext(int(math.Ceil(width*scale)), int(math.Ceil(height*scale)))
	dc.SetColor(drawing.ColorWhite)
	dc.Clear()
	dc.Scale(scale, scale)
	return &PNGDevice{dc: dc, metrics: metrics}
}

func (d *PNGDevice) FillRect(x, y, w, h float64, c drawing.Color) {
	d.dc.SetColor(c)
	d.dc.DrawRectangle(x, y, w, h)
	d.dc.Fill()
}

func (d *PNGDevice) StrokeRect(x, y, w, h, lineWidth float64, c drawing.Color) {
	d.dc.SetColor(c)
	d.dc.SetLineWidth(lineWidth)
	d.dc.DrawRectangle(x, y, w, h)
	d.dc.Stroke()
}

func (d *PNGDevice) Line(x1, y1, x2, y2, lineWidth float64, c drawing.Color) {
	d.dc.SetColor(c)
	d.dc.SetLineWidth(lineWidth)
	d.dc.DrawLine(x1, y1, x2, y2)
	d.dc.Stroke()
}

func (d *PNGDevice) Text(s string, x, y, size float64, c drawing.Color) {
	if size != d.size {
		d.dc.SetFontFace(d.metrics.NewFace(size))
		d.size = size
	}
	d.dc.SetColor(c)
	d.dc.DrawString(s, x, y)
}

func (d *PNGDevice) Save(w io.Writer) error {
	return d.dc.EncodePNG(w)
}
