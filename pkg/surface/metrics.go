package surface

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Metrics measures text set in Go Regular. It is safe for concurrent use.
type Metrics struct {
	font *opentype.Font

	mu    sync.Mutex
	faces map[float64]font.Face
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the shared Metrics instance.
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		defaultMetrics = NewMetrics()
	})
	return defaultMetrics
}

// NewMetrics parses the embedded font. If parsing fails every face falls
// back to the fixed 7x13 bitmap face.
func NewMetrics() *Metrics {
	f, _ := opentype.Parse(goregular.TTF)
	return &Metrics{font: f, faces: make(map[float64]font.Face)}
}

// NewFace returns a fresh face at the given size. Faces are not safe for
// concurrent use, so each device owns its own. The bitmap fallback is
// always 7x13; Metrics scales its measurements, drawing does not.
func (m *Metrics) NewFace(size float64) font.Face {
	if m.font == nil {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(m.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}

// WidthOf returns the advance width of text at the given size.
func (m *Metrics) WidthOf(text string, size float64) float64 {
	var w fixed.Int26_6
	m.with(size, func(face font.Face) {
		w = font.MeasureString(face, text)
	})
	return fromFixed(w) * m.scale(size)
}

// Height returns the line height at the given size.
func (m *Metrics) Height(size float64) float64 {
	var h fixed.Int26_6
	m.with(size, func(face font.Face) {
		h = face.Metrics().Height
	})
	return fromFixed(h) * m.scale(size)
}

// Ascent returns the distance from the top of a line to its baseline.
func (m *Metrics) Ascent(size float64) float64 {
	var a fixed.Int26_6
	m.with(size, func(face font.Face) {
		a = face.Metrics().Ascent
	})
	return fromFixed(a) * m.scale(size)
}

// fallbackSize is the pixel height of the 7x13 bitmap face.
const fallbackSize = 13

// scale converts measurements of the bitmap fallback to the requested
// size. Go Regular faces are built at that size already.
func (m *Metrics) scale(size float64) float64 {
	if m.font != nil {
		return 1
	}
	return size / fallbackSize
}

func (m *Metrics) with(size float64, fn func(font.Face)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	face, ok := m.faces[size]
	if !ok {
		face = m.NewFace(size)
		m.faces[size] = face
	}
	fn(face)
}

func fromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
