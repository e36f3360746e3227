package graph

import "github.com/matzehuels/colgraph/pkg/surface"

const gridColor = "dddddd"

// Grid draws one horizontal line per label, evenly spaced from the top of
// the chart area to its bottom, with the label right-aligned left of it.
type Grid struct {
	labels []Label
	opts   *GridOptions
}

// NewGrid creates a grid. Only Left, Height and Top of opts are used.
func NewGrid(labels []Label, opts *GridOptions) *Grid {
	return &Grid{labels: labels, opts: opts}
}

func (g *Grid) Draw(s surface.Surface) error {
	right := s.Bounds().Right
	half := s.TextHeight() / 2
	for i, label := range g.labels {
		y := g.Y(i)
		s.SetStrokeColor(gridColor)
		s.StrokeLine(surface.Point{X: g.opts.Left, Y: y}, surface.Point{X: right, Y: y})
		s.SetFillColor(textColor)
		s.Text(label.Left, surface.Point{X: 0, Y: y + half}, g.opts.Left, surface.AlignRight)
	}
	return nil
}

// Y is the vertical position of line i.
func (g *Grid) Y(i int) float64 {
	if len(g.labels) < 2 {
		return g.opts.Top
	}
	return g.opts.Top - float64(i)*g.opts.Height/float64(len(g.labels)-1)
}
