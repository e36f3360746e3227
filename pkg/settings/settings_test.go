package settings

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/colgraph/pkg/errors"
	"github.com/matzehuels/colgraph/pkg/format"
)

func TestDefault(t *testing.T) {
	s := Default()
	if !s.Baseline || !s.Chart || !s.Legend || s.Border {
		t.Errorf("Default() toggles = %+v", s)
	}
	if s.Format != format.Integer {
		t.Errorf("Format = %q, want %q", s.Format, format.Integer)
	}
	if s.Gridlines != 4 || s.Height != 250 || s.Ticks != 0 {
		t.Errorf("Default() = %+v", s)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Default().Validate() error: %v", err)
	}
	if !s.Grid() {
		t.Error("Grid() = false, want true")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Settings)
		code   errors.Code
	}{
		{"bad format", func(s *Settings) { s.Format = "roman" }, errors.ErrCodeInvalidFormat},
		{"negative gridlines", func(s *Settings) { s.Gridlines = -1 }, errors.ErrCodeInvalidSettings},
		{"zero height", func(s *Settings) { s.Height = 0 }, errors.ErrCodeInvalidSettings},
		{"negative ticks", func(s *Settings) { s.Ticks = -2 }, errors.ErrCodeInvalidSettings},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.modify(&s)
			err := s.Validate()
			if !errors.Is(err, tt.code) {
				t.Errorf("Validate() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestGridDisabled(t *testing.T) {
	s := Default()
	s.Gridlines = 0
	if s.Grid() {
		t.Error("Grid() = true, want false")
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
}

func TestDecodeTOML(t *testing.T) {
	s, err := DecodeTOML(strings.NewReader("format = \"seconds\"\ngridlines = 6\nborder = true\n"))
	if err != nil {
		t.Fatalf("DecodeTOML() error: %v", err)
	}
	if s.Format != format.Seconds || s.Gridlines != 6 || !s.Border {
		t.Errorf("DecodeTOML() = %+v", s)
	}
	if s.Height != DefaultHeight || !s.Legend {
		t.Errorf("omitted keys should keep defaults, got %+v", s)
	}
}

func TestDecodeTOMLErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unknown key", "colour = \"red\"\n"},
		{"bad format", "format = \"roman\"\n"},
		{"wrong type", "gridlines = \"four\"\n"},
		{"invalid value", "height = -1.0\n"},
		{"syntax", "format = \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeTOML(strings.NewReader(tt.input)); err == nil {
				t.Errorf("DecodeTOML(%q) expected error", tt.input)
			}
		})
	}
}

func TestDecodeTOMLUnknownKeyCode(t *testing.T) {
	_, err := DecodeTOML(strings.NewReader("colour = \"red\"\n"))
	if !errors.Is(err, errors.ErrCodeInvalidSettings) {
		t.Errorf("DecodeTOML() error = %v, want %s", err, errors.ErrCodeInvalidSettings)
	}
}

func TestDecodeJSON(t *testing.T) {
	s, err := DecodeJSON(nil)
	if err != nil {
		t.Fatalf("DecodeJSON(nil) error: %v", err)
	}
	if s != Default() {
		t.Errorf("DecodeJSON(nil) = %+v, want defaults", s)
	}

	s, err = DecodeJSON([]byte(`{"format":"percentage","legend":false,"ticks":3}`))
	if err != nil {
		t.Fatalf("DecodeJSON() error: %v", err)
	}
	if s.Format != format.Percentage || s.Legend || s.Ticks != 3 {
		t.Errorf("DecodeJSON() = %+v", s)
	}
	if s.Gridlines != DefaultGridlines {
		t.Errorf("Gridlines = %d, want %d", s.Gridlines, DefaultGridlines)
	}

	if _, err := DecodeJSON([]byte(`{"colour":"red"}`)); !errors.Is(err, errors.ErrCodeInvalidSettings) {
		t.Errorf("DecodeJSON(unknown) error = %v, want %s", err, errors.ErrCodeInvalidSettings)
	}
	if _, err := DecodeJSON([]byte(`{"gridlines":-1}`)); !errors.Is(err, errors.ErrCodeInvalidSettings) {
		t.Errorf("DecodeJSON(gridlines) error = %v, want %s", err, errors.ErrCodeInvalidSettings)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}

	path := filepath.Join(dir, "chart.toml")
	if err := os.WriteFile(path, []byte("ticks = 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if s.Ticks != 4 {
		t.Errorf("Ticks = %d, want 4", s.Ticks)
	}
}

func TestEncodeTOMLRoundTrip(t *testing.T) {
	in := Default()
	in.Format = format.Currency
	in.Height = 120

	var buf bytes.Buffer
	if err := in.EncodeTOML(&buf); err != nil {
		t.Fatalf("EncodeTOML() error: %v", err)
	}
	out, err := DecodeTOML(&buf)
	if err != nil {
		t.Fatalf("DecodeTOML() error: %v", err)
	}
	if out != in {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}
