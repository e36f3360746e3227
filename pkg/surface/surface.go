package surface

// Point is a position in page units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rectangle describes the current drawing bounds. Top and Right are the
// coordinates of the top and right edges relative to the bounds origin.
type Rectangle struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
}

// Align positions text horizontally inside its box.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Surface is the drawing surface consumed by the chart layout.
type Surface interface {
	// Bounds returns the current region.
	Bounds() Rectangle
	// Cursor returns the current vertical position inside Bounds.
	Cursor() float64
	// BoundingBox runs fn inside a nested region with the given top-left
	// corner and size. Regions nest.
	BoundingBox(at Point, width, height float64, fn func() error) error

	WidthOf(text string, size float64) float64
	TextHeight() float64
	FontSize() float64

	// FillRectangle fills a rectangle hanging down from topLeft. A negative
	// height extends the rectangle upward instead.
	FillRectangle(topLeft Point, width, height float64)
	StrokeLine(from, to Point)
	StrokeBounds()
	WithLineWidth(width float64, fn func())
	SetFillColor(hex string)
	SetStrokeColor(hex string)
	// Text draws a single line inside a box of the given width whose top
	// edge is at.Y, using the fill color.
	Text(text string, at Point, width float64, align Align)
}
