package render

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/matzehuels/colgraph/pkg/dataset"
	"github.com/matzehuels/colgraph/pkg/errors"
	"github.com/matzehuels/colgraph/pkg/graph"
	"github.com/matzehuels/colgraph/pkg/settings"
	"github.com/matzehuels/colgraph/pkg/surface"
)

// Format is an output format.
type Format string

// Output formats.
const (
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
	FormatPDF  Format = "pdf"
	FormatJSON Format = "json"
)

// Formats lists every output format.
var Formats = []Format{FormatSVG, FormatPNG, FormatPDF, FormatJSON}

var contentTypes = map[Format]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
	FormatJSON: "application/json",
}

// ParseFormat validates a single format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := contentTypes[f]; !ok {
		return "", errors.New(errors.ErrCodeInvalidOutput, "invalid output format %q (must be one of: svg, png, pdf, json)", s)
	}
	return f, nil
}

// ParseFormats parses a comma-separated list of formats. An empty string
// selects SVG. Duplicates are dropped.
func ParseFormats(s string) ([]Format, error) {
	if strings.TrimSpace(s) == "" {
		return []Format{FormatSVG}, nil
	}
	var out []Format
	seen := make(map[Format]bool)
	for _, part := range strings.Split(s, ",") {
		f, err := ParseFormat(part)
		if err != nil {
			return nil, err
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out, nil
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string { return contentTypes[f] }

// Extension returns the file extension, including the dot.
func (f Format) Extension() string { return "." + string(f) }

// Default page options.
const (
	DefaultWidth    = 800.0
	DefaultMargin   = 10.0
	DefaultFontSize = surface.DefaultFontSize
)

var hexColor = regexp.MustCompile(`^#?[0-9a-fA-F]{6}$`)

// Options configures the page a chart is drawn on.
type Options struct {
	Width    float64  `json:"width,omitempty"`
	Margin   float64  `json:"margin,omitempty"`
	FontSize float64  `json:"font_size,omitempty"`
	Palette  []string `json:"palette,omitempty"`
	// Scale multiplies the PNG resolution.
	Scale float64 `json:"scale,omitempty"`
}

// SetDefaults fills unset options.
func (o *Options) SetDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Margin == 0 {
		o.Margin = DefaultMargin
	}
	if o.FontSize == 0 {
		o.FontSize = DefaultFontSize
	}
	if len(o.Palette) == 0 {
		o.Palette = graph.DefaultPalette
	}
	if o.Scale == 0 {
		o.Scale = surface.DefaultPNGScale
	}
}

// Validate checks option values. Call SetDefaults first.
func (o *Options) Validate() error {
	if o.Margin < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "margin must be >= 0 (got %g)", o.Margin)
	}
	if o.Width <= 2*o.Margin {
		return errors.New(errors.ErrCodeInvalidInput, "width must exceed twice the margin (got %g)", o.Width)
	}
	if o.FontSize <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "font size must be > 0 (got %g)", o.FontSize)
	}
	if o.Scale <= 0 || o.Scale > 8 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be in (0, 8] (got %g)", o.Scale)
	}
	for _, c := range o.Palette {
		if !hexColor.MatchString(c) {
			return errors.New(errors.ErrCodeInvalidInput, "invalid palette color %q", c)
		}
	}
	return nil
}

// PageHeight returns the page height for a chart of the given settings.
func (o Options) PageHeight(st settings.Settings) float64 {
	return st.Height + 2*o.Margin
}

// Render draws the chart and encodes it in format f.
func Render(ds *dataset.Dataset, st settings.Settings, opts Options, f Format) ([]byte, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if f == FormatPDF {
		svg, err := Render(ds, st, opts, FormatSVG)
		if err != nil {
			return nil, err
		}
		return ToPDF(svg)
	}

	g, err := graph.New(ds, st, graph.WithPalette(opts.Palette...))
	if err != nil {
		return nil, err
	}

	width, height := opts.Width, opts.PageHeight(st)
	dev, err := newDevice(f, width, height, opts.Scale)
	if err != nil {
		return nil, err
	}
	canvas := surface.NewCanvas(dev, width, height, opts.Margin, opts.FontSize)
	if err := g.Draw(canvas); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := canvas.Save(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode %s", f)
	}
	return buf.Bytes(), nil
}

// Measure returns the geometry the chart would be drawn with. It returns
// nil for an empty dataset.
func Measure(ds *dataset.Dataset, st settings.Settings, opts Options) (*graph.Geometry, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	g, err := graph.New(ds, st)
	if err != nil {
		return nil, err
	}
	width, height := opts.Width, opts.PageHeight(st)
	canvas := surface.NewCanvas(surface.NewRecorder(width, height), width, height, opts.Margin, opts.FontSize)
	return g.Measure(canvas)
}

func newDevice(f Format, width, height, scale float64) (surface.Device, error) {
	switch f {
	case FormatSVG:
		return surface.NewSVGDevice(width, height)
	case FormatPNG:
		return surface.NewPNGDevice(width, height, scale, nil), nil
	case FormatJSON:
		return surface.NewRecorder(width, height), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidOutput, "invalid output format %q", string(f))
}
