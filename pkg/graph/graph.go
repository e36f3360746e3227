package graph

import (
	"fmt"
	"math"

	"github.com/matzehuels/colgraph/pkg/dataset"
	"github.com/matzehuels/colgraph/pkg/format"
	"github.com/matzehuels/colgraph/pkg/settings"
	"github.com/matzehuels/colgraph/pkg/surface"
)

// LegendHeight is the height of the legend band, and of the headroom kept
// above the grid for values past the axis maximum.
const LegendHeight = 15.0

// BorderWidth is the line width of the border.
const BorderWidth = 0.5

// DefaultPalette colors the series in order.
var DefaultPalette = []string{"2e578c", "5d9648", "e7a13d", "bc2d30", "6f3d79", "7d807f"}

// Label is one row of axis labels. Only the left axis is used today.
type Label struct {
	Left string `json:"left"`
}

// GridOptions is the geometry shared by the grid and the chart. It is built
// once per draw and never modified.
type GridOptions struct {
	Left   float64 `json:"left"`
	Height float64 `json:"height"`
	Top    float64 `json:"top"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Geometry is everything [Graph.Layout] derives for one draw.
type Geometry struct {
	Bounds        surface.Rectangle `json:"bounds"`
	Left          float64           `json:"left"`
	PaddingTop    float64           `json:"padding_top"`
	PaddingBottom float64           `json:"padding_bottom"`
	ChartTop      float64           `json:"chart_top"`
	ChartHeight   float64           `json:"chart_height"`
	Min           float64           `json:"min"`
	Max           float64           `json:"max"`
	Labels        []Label           `json:"labels"`
}

// GridOptions returns the geometry handed to the grid and the chart.
func (g *Geometry) GridOptions() *GridOptions {
	return &GridOptions{
		Left:   g.Left,
		Height: g.ChartHeight,
		Top:    g.ChartTop,
		Min:    g.Min,
		Max:    g.Max,
	}
}

// Option configures a Graph.
type Option func(*Graph)

// WithPalette sets the series colors as hex strings. The first color fills
// the columns.
func WithPalette(colors ...string) Option {
	return func(g *Graph) {
		if len(colors) > 0 {
			g.palette = colors
		}
	}
}

// Graph draws a column chart with its legend, grid, baseline and border.
type Graph struct {
	data      *dataset.Dataset
	settings  settings.Settings
	formatter *format.Formatter
	palette   []string
}

// New creates a Graph. Settings are validated here so that a draw never
// starts with an invalid configuration.
func New(data *dataset.Dataset, st settings.Settings, opts ...Option) (*Graph, error) {
	if err := st.Validate(); err != nil {
		return nil, err
	}
	f, err := format.New(st.Format)
	if err != nil {
		return nil, err
	}
	g := &Graph{data: data, settings: st, formatter: f, palette: DefaultPalette}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Settings returns the settings the graph was created with.
func (g *Graph) Settings() settings.Settings { return g.settings }

// Draw draws the graph at the current cursor. Empty datasets draw nothing.
func (g *Graph) Draw(s surface.Surface) error {
	if g.data.Empty() {
		return nil
	}
	return g.region(s, func() error {
		geo := g.Layout(s)
		for _, step := range g.Steps(s, geo) {
			if !step.Enabled {
				continue
			}
			if err := step.Draw(); err != nil {
				return fmt.Errorf("draw %s: %w", step.Name, err)
			}
		}
		return nil
	})
}

// Measure returns the geometry Draw would use, without drawing anything.
// It returns nil for an empty dataset.
func (g *Graph) Measure(s surface.Surface) (*Geometry, error) {
	if g.data.Empty() {
		return nil, nil
	}
	var geo *Geometry
	err := g.region(s, func() error {
		geo = g.Layout(s)
		return nil
	})
	return geo, err
}

func (g *Graph) region(s surface.Surface, fn func() error) error {
	at := surface.Point{X: 0, Y: s.Cursor()}
	return s.BoundingBox(at, s.Bounds().Width, g.settings.Height, fn)
}

// Layout derives the geometry for the current bounds of s.
func (g *Graph) Layout(s surface.Surface) *Geometry {
	bounds := s.Bounds()
	values := g.data.Values()

	min, max := g.MinMax(values)
	leftLabels := g.LabelsFor(values)
	labels := make([]Label, len(leftLabels))
	for i, l := range leftLabels {
		labels[i] = Label{Left: l}
	}

	top, bottom := g.PaddingTop(), g.PaddingBottom(s)
	return &Geometry{
		Bounds:        bounds,
		Left:          maxWidthOf(s, leftLabels),
		PaddingTop:    top,
		PaddingBottom: bottom,
		ChartTop:      bounds.Top - top,
		ChartHeight:   bounds.Height - top - bottom,
		Min:           min,
		Max:           max,
		Labels:        labels,
	}
}

// Step is one gated part of the draw sequence.
type Step struct {
	Name    string
	Enabled bool
	Draw    func() error
}

// Steps returns the draw sequence in order: legend, grid, baseline, chart,
// border.
func (g *Graph) Steps(s surface.Surface, geo *Geometry) []Step {
	return []Step{
		{
			Name:    "legend",
			Enabled: g.settings.Legend,
			Draw:    func() error { return NewLegend(g.data.Names(), g.palette).Draw(s) },
		},
		{
			Name:    "grid",
			Enabled: g.Grid(),
			Draw:    func() error { return NewGrid(geo.Labels, geo.GridOptions()).Draw(s) },
		},
		{
			Name:    "baseline",
			Enabled: g.settings.Baseline,
			Draw: func() error {
				return NewBaseline(g.data.Categories(), BaselineOptions{Left: geo.Left, Ticks: g.settings.Ticks}).Draw(s)
			},
		},
		{
			Name:    "chart",
			Enabled: g.settings.Chart,
			Draw:    func() error { return NewChart(g.data.Values(), geo.GridOptions(), g.palette[0]).Draw(s) },
		},
		{
			Name:    "border",
			Enabled: g.settings.Border,
			Draw: func() error {
				s.WithLineWidth(BorderWidth, s.StrokeBounds)
				return nil
			},
		},
	}
}

// Grid reports whether the grid is drawn.
func (g *Graph) Grid() bool {
	return g.settings.Gridlines > 0
}

// PaddingTop is the space between the top of the region and the grid.
// There is always one legend band of headroom for values above the axis,
// plus one more when the legend itself is drawn.
func (g *Graph) PaddingTop() float64 {
	if g.settings.Legend {
		return LegendHeight * 2
	}
	return LegendHeight
}

// PaddingBottom is the space below the grid, reserved for category labels
// when the baseline is drawn.
func (g *Graph) PaddingBottom(s surface.Surface) float64 {
	if g.settings.Baseline {
		return s.TextHeight()
	}
	return 0
}

// MinMax returns the axis range for values. Absent values are ignored, 0
// always counts as a candidate minimum and the gridline count as a candidate
// maximum. Both ends are rounded with [format.Approximate].
func (g *Graph) MinMax(values []*float64) (min, max float64) {
	min, max = 0, float64(g.settings.Gridlines)
	for _, v := range values {
		if v == nil {
			continue
		}
		min = math.Min(min, *v)
		max = math.Max(max, *v)
	}
	return format.Approximate(min), format.Approximate(max)
}

// TickValues returns the axis values from max down to min in gridlines equal
// steps, so gridlines+1 values in all. Without gridlines only max is
// returned.
func (g *Graph) TickValues(values []*float64) []float64 {
	min, max := g.MinMax(values)
	n := g.settings.Gridlines
	if n == 0 {
		return []float64{max}
	}
	gap := (min - max) / float64(n)
	ticks := make([]float64, n+1)
	for i := range ticks {
		ticks[i] = max + float64(i)*gap
	}
	ticks[n] = min
	return ticks
}

// LabelsFor returns the formatted axis labels for values.
func (g *Graph) LabelsFor(values []*float64) []string {
	ticks := g.TickValues(values)
	labels := make([]string, len(ticks))
	for i, v := range ticks {
		labels[i] = g.FormatFor(v)
	}
	return labels
}

// FormatFor formats a value with the configured format.
func (g *Graph) FormatFor(v float64) string {
	return g.formatter.Format(v)
}

func maxWidthOf(s surface.Surface, labels []string) float64 {
	var w float64
	for _, l := range labels {
		w = math.Max(w, s.WidthOf(l, s.FontSize()))
	}
	return w
}
