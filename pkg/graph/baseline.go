package graph

import "github.com/matzehuels/colgraph/pkg/surface"

const (
	baselineColor = "555555"
	tickLength    = 3.0
)

// BaselineOptions positions the baseline.
type BaselineOptions struct {
	Left  float64
	Ticks int
}

// Baseline draws the category axis one text line above the bottom of the
// region, with the category names centered under their column slots.
type Baseline struct {
	categories []string
	opts       BaselineOptions
}

// NewBaseline creates a baseline for the given categories.
func NewBaseline(categories []string, opts BaselineOptions) *Baseline {
	return &Baseline{categories: categories, opts: opts}
}

func (b *Baseline) Draw(s surface.Surface) error {
	bounds := s.Bounds()
	y := s.TextHeight()
	left := b.opts.Left + ChartPadding

	s.SetStrokeColor(baselineColor)
	s.StrokeLine(surface.Point{X: b.opts.Left, Y: y}, surface.Point{X: bounds.Right, Y: y})

	for _, x := range b.TickXs(bounds) {
		s.StrokeLine(surface.Point{X: x, Y: y}, surface.Point{X: x, Y: y - tickLength})
	}

	if len(b.categories) == 0 {
		return nil
	}
	slot := (bounds.Right - left) / float64(len(b.categories))
	s.SetFillColor(textColor)
	for i, c := range b.categories {
		s.Text(c, surface.Point{X: left + float64(i)*slot, Y: y}, slot, surface.AlignCenter)
	}
	return nil
}

// TickXs returns the x positions of the ticks: Ticks equal intervals from
// the first column slot to the right edge, so Ticks+1 marks. No ticks are
// drawn when Ticks is 0.
func (b *Baseline) TickXs(bounds surface.Rectangle) []float64 {
	if b.opts.Ticks <= 0 {
		return nil
	}
	left := b.opts.Left + ChartPadding
	step := (bounds.Right - left) / float64(b.opts.Ticks)
	xs := make([]float64, b.opts.Ticks+1)
	for i := range xs {
		xs[i] = left + float64(i)*step
	}
	return xs
}
