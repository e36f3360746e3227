package format

import (
	"encoding/json"
	"testing"

	"github.com/matzehuels/colgraph/pkg/errors"
)

func TestApproximate(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{99.67, 100},
		{1234, 1200},
		{0.0034, 0.0034},
		{0, 0},
		{5, 5},
		{125, 130},
		{-125, -130},
		{-99.67, -100},
		{999.99, 1000},
		{0.00347, 0.0035},
		{87654321, 88000000},
		{1.45, 1.5},
		{0.145, 0.15},
		{9.95, 10},
		{0.285, 0.29},
		{-1.45, -1.5},
		{1.234e20, 1.2e20},
	}

	for _, tt := range tests {
		if got := Approximate(tt.in); got != tt.want {
			t.Errorf("Approximate(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", Integer, false},
		{"percentage", Percentage, false},
		{"Currency", Currency, false},
		{" seconds ", Seconds, false},
		{"float", Float, false},
		{"integer", Integer, false},
		{"hex", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("Parse(%q) code = %v, want %v", tt.in, errors.GetCode(err), errors.ErrCodeInvalidFormat)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	_, err := New(Format("roman"))
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Fatalf("New(roman) error = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		in     float64
		want   string
	}{
		{"seconds over two minutes", Seconds, 125, "2:05"},
		{"seconds over a minute", Seconds, 65, "1:05"},
		{"seconds rounds first", Seconds, 119.6, "2:00"},
		{"seconds zero", Seconds, 0, "0:00"},
		{"percentage half", Percentage, 0.5, "50.0%"},
		{"percentage small", Percentage, 0.123, "12.3%"},
		{"percentage negative", Percentage, -0.25, "-25.0%"},
		{"integer grouped", Integer, 1234567, "1,234,567"},
		{"integer truncates", Integer, 99.9, "99"},
		{"integer truncates toward zero", Integer, -99.9, "-99"},
		{"integer beyond int64", Integer, 1e19, "10,000,000,000,000,000,000"},
		{"integer large negative", Integer, -1.2e20, "-120,000,000,000,000,000,000"},
		{"integer negative fraction", Integer, -0.5, "0"},
		{"percentage rounds to zero", Percentage, -0.0001, "0.0%"},
		{"float grouped", Float, 1234.5, "1,234.5"},
		{"float whole", Float, 1200, "1,200"},
		{"float negative", Float, -0.25, "-0.25"},
		{"currency", Currency, 1234.5, "$1,234.50"},
		{"currency negative", Currency, -3, "-$3.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := New(tt.format)
			if err != nil {
				t.Fatalf("New(%s) error: %v", tt.format, err)
			}
			if got := f.Format(tt.in); got != tt.want {
				t.Errorf("Format(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCurrencySymbol(t *testing.T) {
	f, err := New(Currency, WithCurrencySymbol("€"))
	if err != nil {
		t.Fatal(err)
	}
	if got := f.Format(10); got != "€10.00" {
		t.Errorf("Format(10) = %q, want %q", got, "€10.00")
	}
}

func TestFormatUnmarshalText(t *testing.T) {
	var cfg struct {
		Format Format `json:"format"`
	}
	if err := json.Unmarshal([]byte(`{"format":"seconds"}`), &cfg); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if cfg.Format != Seconds {
		t.Errorf("Format = %q, want %q", cfg.Format, Seconds)
	}

	if err := json.Unmarshal([]byte(`{"format":"bogus"}`), &cfg); err == nil {
		t.Error("Unmarshal should reject unknown formats")
	}
}
