package graph

import (
	"github.com/matzehuels/colgraph/pkg/errors"
	"github.com/matzehuels/colgraph/pkg/surface"
)

// ChartPadding separates the first column from the left axis.
const ChartPadding = 5.0

// Column is the rectangle drawn for one value. (X, Y) is the top-left
// corner; Height is negative for values below zero.
type Column struct {
	Index  int     `json:"index"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Chart draws one column per value.
type Chart struct {
	values []*float64
	opts   *GridOptions
	color  string
}

// NewChart creates a chart for values using the shared grid geometry.
func NewChart(values []*float64, opts *GridOptions, color string) *Chart {
	return &Chart{values: values, opts: opts, color: color}
}

// Draw fills every column.
func (c *Chart) Draw(s surface.Surface) error {
	cols, err := c.Columns(s.Bounds())
	if err != nil {
		return err
	}
	s.SetFillColor(c.color)
	for _, col := range cols {
		s.FillRectangle(surface.Point{X: col.X, Y: col.Y}, col.Width, col.Height)
	}
	return nil
}

// Columns computes the column rectangles within bounds. Absent values get
// no column but keep their slot.
func (c *Chart) Columns(bounds surface.Rectangle) ([]Column, error) {
	if len(c.values) == 0 {
		return nil, errors.Domain("chart requires at least one value")
	}
	hpu, err := c.HeightPerUnit()
	if err != nil {
		return nil, err
	}

	left := c.Left()
	slot := c.SlotWidth(bounds)
	pad := slot / 8
	zero := c.zeroY(hpu)

	cols := make([]Column, 0, len(c.values))
	x := left
	for i, v := range c.values {
		if v != nil {
			h := hpu * *v
			cols = append(cols, Column{
				Index:  i,
				X:      x + pad,
				Y:      zero + h,
				Width:  slot - 2*pad,
				Height: h,
			})
		}
		x += slot
	}
	return cols, nil
}

// Left is the x position of the first slot.
func (c *Chart) Left() float64 {
	return c.opts.Left + ChartPadding
}

// SlotWidth is the horizontal space given to each value.
func (c *Chart) SlotWidth(bounds surface.Rectangle) float64 {
	return (bounds.Right - c.Left()) / float64(len(c.values))
}

// HeightPerUnit converts values to heights.
func (c *Chart) HeightPerUnit() (float64, error) {
	if c.opts.Max <= c.opts.Min {
		return 0, errors.Domain("chart requires max > min")
	}
	return c.opts.Height / (c.opts.Max - c.opts.Min), nil
}

// ZeroY is the y position of the value 0: min sits at the bottom of the
// chart area and max at its top.
func (c *Chart) ZeroY() (float64, error) {
	hpu, err := c.HeightPerUnit()
	if err != nil {
		return 0, err
	}
	return c.zeroY(hpu), nil
}

func (c *Chart) zeroY(hpu float64) float64 {
	return c.opts.Top - c.opts.Height - c.opts.Min*hpu
}
