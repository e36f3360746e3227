// Package format turns axis values into labels.
//
// A [Format] names one of the supported value styles (percentage, currency,
// seconds, float, integer). A [Formatter] applies it with locale-aware digit
// grouping from golang.org/x/text:
//
//	f, err := format.New(format.Seconds)
//	f.Format(125) // "2:05"
//
// [Approximate] rounds a value to two significant digits so that axis
// bounds read cleanly (99.67 becomes 100, 1234 becomes 1200).
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/matzehuels/colgraph/pkg/errors"
)

// Format selects how numeric values are rendered as labels.
type Format string

// Supported formats.
const (
	Percentage Format = "percentage"
	Currency   Format = "currency"
	Seconds    Format = "seconds"
	Float      Format = "float"
	Integer    Format = "integer"
)

// Default is the format used when none is configured.
const Default = Integer

// DefaultCurrencySymbol prefixes currency values.
const DefaultCurrencySymbol = "$"

// Formats lists every supported format in a stable order.
var Formats = []Format{Percentage, Currency, Seconds, Float, Integer}

// Parse converts a format name into a Format.
// The empty string selects [Default].
func Parse(s string) (Format, error) {
	if s == "" {
		return Default, nil
	}
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if !f.Valid() {
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", s)
	}
	return f, nil
}

// Valid reports whether f is one of the supported formats.
func (f Format) Valid() bool {
	switch f {
	case Percentage, Currency, Seconds, Float, Integer:
		return true
	}
	return false
}

// String returns the format name.
func (f Format) String() string { return string(f) }

// MarshalText implements encoding.TextMarshaler.
func (f Format) MarshalText() ([]byte, error) {
	return []byte(f), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so that TOML and JSON
// settings reject unknown formats while decoding.
func (f *Format) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithLanguage sets the locale used for digit grouping.
func WithLanguage(tag language.Tag) Option {
	return func(f *Formatter) { f.printer = message.NewPrinter(tag) }
}

// WithCurrencySymbol sets the symbol placed before currency amounts.
func WithCurrencySymbol(symbol string) Option {
	return func(f *Formatter) { f.symbol = symbol }
}

// Formatter renders values in a single Format.
// A Formatter is safe for concurrent use.
type Formatter struct {
	format  Format
	printer *message.Printer
	symbol  string
}

// New creates a Formatter for the given format.
func New(f Format, opts ...Option) (*Formatter, error) {
	if f == "" {
		f = Default
	}
	if !f.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", string(f))
	}
	fm := &Formatter{
		format:  f,
		printer: message.NewPrinter(language.English),
		symbol:  DefaultCurrencySymbol,
	}
	for _, opt := range opts {
		opt(fm)
	}
	return fm, nil
}

// Kind returns the format applied by the Formatter.
func (f *Formatter) Kind() Format { return f.format }

// Format renders v as a label.
func (f *Formatter) Format(v float64) string {
	switch f.format {
	case Percentage:
		return percent(v)
	case Currency:
		return f.currency(v)
	case Seconds:
		return minutesAndSeconds(v)
	case Float:
		return f.delimited(v)
	default:
		return f.printer.Sprintf("%.0f", positiveZero(math.Trunc(v)))
	}
}

// percent renders v×100 with one decimal. Values that round to zero print
// as "0.0%" whatever their sign.
func percent(v float64) string {
	out := strconv.FormatFloat(v*100, 'f', 1, 64)
	if out == "-0.0" {
		out = "0.0"
	}
	return out + "%"
}

// positiveZero maps -0 to 0 so that no label reads "-0".
func positiveZero(v float64) float64 {
	if v == 0 {
		return 0
	}
	return v
}

// currency renders v with two decimals after the currency symbol; the sign
// goes in front of the symbol.
func (f *Formatter) currency(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
	}
	return sign + f.symbol + f.printer.Sprintf("%.2f", math.Abs(v))
}

// delimited groups the integer digits of v and keeps the shortest decimal
// fraction that round-trips.
func (f *Formatter) delimited(v float64) string {
	abs := math.Abs(v)
	digits := strconv.FormatFloat(abs, 'f', -1, 64)
	_, frac, _ := strings.Cut(digits, ".")

	out := f.printer.Sprintf(fmt.Sprintf("%%.%df", len(frac)), abs)
	if v < 0 {
		return "-" + out
	}
	return out
}

// minutesAndSeconds renders a duration in seconds as m:ss.
func minutesAndSeconds(v float64) string {
	total := math.Round(v)
	minutes := math.Floor(total / 60)
	seconds := total - minutes*60
	return fmt.Sprintf("%d:%02d", int64(minutes), int64(seconds))
}
