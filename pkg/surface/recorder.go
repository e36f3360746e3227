package surface

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Op is one recorded drawing call.
type Op struct {
	Op        string  `json:"op"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	X2        float64 `json:"x2,omitempty"`
	Y2        float64 `json:"y2,omitempty"`
	W         float64 `json:"w,omitempty"`
	H         float64 `json:"h,omitempty"`
	Text      string  `json:"text,omitempty"`
	Size      float64 `json:"size,omitempty"`
	LineWidth float64 `json:"line_width,omitempty"`
	Color     string  `json:"color"`
}

// Recorder is a device that keeps every call in order. Its JSON output is
// the "json" render format.
type Recorder struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Ops    []Op    `json:"ops"`
}

// NewRecorder creates a recorder for a page of the given size.
func NewRecorder(width, height float64) *Recorder {
	return &Recorder{Width: width, Height: height, Ops: []Op{}}
}

func (r *Recorder) FillRect(x, y, w, h float64, c drawing.Color) {
	r.Ops = append(r.Ops, Op{Op: "fill_rect", X: x, Y: y, W: w, H: h, Color: hex(c)})
}

func (r *Recorder) StrokeRect(x, y, w, h, lineWidth float64, c drawing.Color) {
	r.Ops = append(r.Ops, Op{Op: "stroke_rect", X: x, Y: y, W: w, H: h, LineWidth: lineWidth, Color: hex(c)})
}

func (r *Recorder) Line(x1, y1, x2, y2, lineWidth float64, c drawing.Color) {
	r.Ops = append(r.Ops, Op{Op: "line", X: x1, Y: y1, X2: x2, Y2: y2, LineWidth: lineWidth, Color: hex(c)})
}

func (r *Recorder) Text(s string, x, y, size float64, c drawing.Color) {
	r.Ops = append(r.Ops, Op{Op: "text", X: x, Y: y, Text: s, Size: size, Color: hex(c)})
}

// Filter returns the recorded ops of the given kind.
func (r *Recorder) Filter(op string) []Op {
	var out []Op
	for _, o := range r.Ops {
		if o.Op == op {
			out = append(out, o)
		}
	}
	return out
}

func (r *Recorder) Save(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func hex(c drawing.Color) string {
	return fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B)
}
