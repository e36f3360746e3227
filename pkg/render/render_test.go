package render

import (
	"bytes"
	"encoding/json"
	"os/exec"
	"strings"
	"testing"

	"github.com/matzehuels/colgraph/pkg/dataset"
	"github.com/matzehuels/colgraph/pkg/errors"
	"github.com/matzehuels/colgraph/pkg/settings"
	"github.com/matzehuels/colgraph/pkg/surface"
)

func sample() *dataset.Dataset {
	return dataset.New("Visits",
		[]string{"Mon", "Tue", "Wed"},
		[]float64{120, 80, 150})
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in      string
		want    []Format
		wantErr bool
	}{
		{"", []Format{FormatSVG}, false},
		{"png", []Format{FormatPNG}, false},
		{"svg, PNG,json", []Format{FormatSVG, FormatPNG, FormatJSON}, false},
		{"svg,svg", []Format{FormatSVG}, false},
		{"pdf", []Format{FormatPDF}, false},
		{"gif", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormats(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormats(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, errors.ErrCodeInvalidOutput) {
					t.Errorf("ParseFormats(%q) code = %v", tt.in, errors.GetCode(err))
				}
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ParseFormats(%q) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ParseFormats(%q)[%d] = %v, want %v", tt.in, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestFormatMetadata(t *testing.T) {
	if FormatSVG.ContentType() != "image/svg+xml" {
		t.Errorf("ContentType() = %q", FormatSVG.ContentType())
	}
	if FormatPNG.Extension() != ".png" {
		t.Errorf("Extension() = %q", FormatPNG.Extension())
	}
}

func TestOptionsDefaults(t *testing.T) {
	var o Options
	o.SetDefaults()
	if o.Width != DefaultWidth || o.Margin != DefaultMargin || o.FontSize != DefaultFontSize {
		t.Errorf("SetDefaults() = %+v", o)
	}
	if o.Scale != surface.DefaultPNGScale || len(o.Palette) == 0 {
		t.Errorf("SetDefaults() = %+v", o)
	}
	if err := o.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
	if got := o.PageHeight(settings.Default()); got != 270 {
		t.Errorf("PageHeight() = %v, want 270", got)
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"narrow", Options{Width: 10, Margin: 5}},
		{"negative margin", Options{Margin: -1}},
		{"bad color", Options{Palette: []string{"red"}}},
		{"huge scale", Options{Scale: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := tt.opts
			o.SetDefaults()
			if err := o.Validate(); !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Validate() error = %v, want %s", err, errors.ErrCodeInvalidInput)
			}
		})
	}
}

func TestRenderJSON(t *testing.T) {
	out, err := Render(sample(), settings.Default(), Options{}, FormatJSON)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	var rec surface.Recorder
	if err := json.Unmarshal(out, &rec); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if rec.Width != DefaultWidth || rec.Height != 270 {
		t.Errorf("page = %vx%v, want 800x270", rec.Width, rec.Height)
	}
	// One legend square plus three columns.
	if got := len(rec.Filter("fill_rect")); got != 4 {
		t.Errorf("fill_rect ops = %d, want 4", got)
	}
	for _, op := range rec.Filter("fill_rect") {
		if op.Y+op.H > 270-DefaultMargin+0.001 {
			t.Errorf("column %+v extends past the bottom margin", op)
		}
	}
}

func TestRenderDeterministic(t *testing.T) {
	a, err := Render(sample(), settings.Default(), Options{}, FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Render(sample(), settings.Default(), Options{}, FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("Render() output differs between runs")
	}
}

func TestRenderSVG(t *testing.T) {
	out, err := Render(sample(), settings.Default(), Options{}, FormatSVG)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	s := string(out)
	if !strings.Contains(s, "<svg") || !strings.Contains(s, "Visits") || !strings.Contains(s, "Wed") {
		t.Errorf("SVG missing expected content: %.200s", s)
	}
}

func TestRenderPNG(t *testing.T) {
	out, err := Render(sample(), settings.Default(), Options{Scale: 1}, FormatPNG)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("\x89PNG")) {
		t.Error("PNG output missing magic header")
	}
}

func TestRenderPDF(t *testing.T) {
	_, err := Render(sample(), settings.Default(), Options{}, FormatPDF)
	if _, lookErr := exec.LookPath("rsvg-convert"); lookErr != nil {
		if !errors.Is(err, errors.ErrCodeUnsupported) {
			t.Errorf("Render(pdf) without rsvg-convert error = %v, want %s", err, errors.ErrCodeUnsupported)
		}
		return
	}
	if err != nil {
		t.Errorf("Render(pdf) error: %v", err)
	}
}

func TestRenderEmptyDataset(t *testing.T) {
	out, err := Render(&dataset.Dataset{}, settings.Default(), Options{}, FormatJSON)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	var rec surface.Recorder
	if err := json.Unmarshal(out, &rec); err != nil {
		t.Fatal(err)
	}
	if len(rec.Ops) != 0 {
		t.Errorf("empty dataset drew %d ops", len(rec.Ops))
	}
}

func TestRenderErrors(t *testing.T) {
	flat := dataset.New("Flat", []string{"a"}, []float64{0})
	st := settings.Default()
	st.Gridlines = 0
	if _, err := Render(flat, st, Options{}, FormatJSON); !errors.Is(err, errors.ErrCodeDomain) {
		t.Errorf("Render(flat) error = %v, want %s", err, errors.ErrCodeDomain)
	}

	bad := settings.Default()
	bad.Height = -1
	if _, err := Render(sample(), bad, Options{}, FormatJSON); !errors.Is(err, errors.ErrCodeInvalidSettings) {
		t.Errorf("Render(bad settings) error = %v, want %s", err, errors.ErrCodeInvalidSettings)
	}

	if _, err := Render(sample(), settings.Default(), Options{}, Format("gif")); !errors.Is(err, errors.ErrCodeInvalidOutput) {
		t.Errorf("Render(gif) error = %v, want %s", err, errors.ErrCodeInvalidOutput)
	}
}

func TestMeasure(t *testing.T) {
	geo, err := Measure(sample(), settings.Default(), Options{})
	if err != nil {
		t.Fatalf("Measure() error: %v", err)
	}
	if geo == nil {
		t.Fatal("Measure() = nil")
	}
	if geo.Min != 0 || geo.Max != 150 {
		t.Errorf("Min/Max = %v/%v, want 0/150", geo.Min, geo.Max)
	}
	if len(geo.Labels) != 5 {
		t.Errorf("labels = %d, want 5", len(geo.Labels))
	}
	if geo.Bounds.Width != DefaultWidth-2*DefaultMargin {
		t.Errorf("Bounds.Width = %v, want %v", geo.Bounds.Width, DefaultWidth-2*DefaultMargin)
	}

	empty, err := Measure(&dataset.Dataset{}, settings.Default(), Options{})
	if err != nil || empty != nil {
		t.Errorf("Measure(empty) = %v, %v, want nil, nil", empty, err)
	}
}
