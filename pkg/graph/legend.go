package graph

import "github.com/matzehuels/colgraph/pkg/surface"

const (
	legendSquare  = 7.0
	legendSpacing = 4.0
	legendGap     = 15.0
	textColor     = "555555"
)

// Legend draws the series names right-aligned in the top band of the
// region, each after a square in the series color.
type Legend struct {
	names   []string
	palette []string
}

// NewLegend creates a legend for the given series names.
func NewLegend(names []string, palette []string) *Legend {
	return &Legend{names: names, palette: palette}
}

func (l *Legend) Draw(s surface.Surface) error {
	b := s.Bounds()
	size := s.FontSize()
	textTop := b.Top - (LegendHeight-s.TextHeight())/2
	squareTop := b.Top - (LegendHeight-legendSquare)/2

	right := b.Right
	for i := len(l.names) - 1; i >= 0; i-- {
		name := l.names[i]
		w := s.WidthOf(name, size)

		right -= w
		s.SetFillColor(textColor)
		s.Text(name, surface.Point{X: right, Y: textTop}, w, surface.AlignLeft)

		right -= legendSpacing + legendSquare
		s.SetFillColor(l.color(i))
		s.FillRectangle(surface.Point{X: right, Y: squareTop}, legendSquare, legendSquare)

		right -= legendGap
	}
	return nil
}

func (l *Legend) color(i int) string {
	if len(l.palette) == 0 {
		return DefaultPalette[i%len(DefaultPalette)]
	}
	return l.palette[i%len(l.palette)]
}
