// Package settings holds the chart configuration.
//
// Settings is an immutable value: callers start from [Default], override
// fields (struct literal, TOML file, JSON body or CLI flags), and call
// [Settings.Validate] before rendering. Decoders only touch the keys that
// are present, so omitted options keep their defaults:
//
//	st, err := settings.Load("chart.toml")
//
// with chart.toml:
//
//	format    = "percentage"
//	gridlines = 5
//	legend    = false
package settings

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/colgraph/pkg/errors"
	"github.com/matzehuels/colgraph/pkg/format"
)

// Default values.
const (
	DefaultGridlines = 4
	DefaultHeight    = 250.0
	DefaultTicks     = 0
)

// Settings configures a single chart render.
type Settings struct {
	// Baseline draws the category axis under the columns.
	Baseline bool `toml:"baseline" json:"baseline" bson:"baseline"`
	// Border strokes the chart region once everything else is drawn.
	Border bool `toml:"border" json:"border" bson:"border"`
	// Chart draws the columns themselves.
	Chart bool `toml:"chart" json:"chart" bson:"chart"`
	// Format selects how axis values are labelled.
	Format format.Format `toml:"format" json:"format" bson:"format"`
	// Gridlines is the number of horizontal steps on the left axis.
	// Zero disables the grid.
	Gridlines int `toml:"gridlines" json:"gridlines" bson:"gridlines"`
	// Height is the height of the chart region in page units.
	Height float64 `toml:"height" json:"height" bson:"height"`
	// Legend draws the series names above the chart.
	Legend bool `toml:"legend" json:"legend" bson:"legend"`
	// Ticks is the number of equal baseline intervals marked with ticks.
	// Zero disables ticks.
	Ticks int `toml:"ticks" json:"ticks" bson:"ticks"`
}

// Default returns the settings used when nothing is configured.
func Default() Settings {
	return Settings{
		Baseline:  true,
		Border:    false,
		Chart:     true,
		Format:    format.Default,
		Gridlines: DefaultGridlines,
		Height:    DefaultHeight,
		Legend:    true,
		Ticks:     DefaultTicks,
	}
}

// Validate checks that every option holds a usable value.
func (s Settings) Validate() error {
	if !s.Format.Valid() {
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", string(s.Format))
	}
	if s.Gridlines < 0 {
		return errors.New(errors.ErrCodeInvalidSettings, "gridlines must be >= 0 (got %d)", s.Gridlines)
	}
	if s.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidSettings, "height must be > 0 (got %g)", s.Height)
	}
	if s.Ticks < 0 {
		return errors.New(errors.ErrCodeInvalidSettings, "ticks must be >= 0 (got %d)", s.Ticks)
	}
	return nil
}

// Grid reports whether the reference grid should be drawn.
func (s Settings) Grid() bool {
	return s.Gridlines > 0
}

// Load reads settings from a TOML file on top of the defaults.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Settings{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "settings file %s", path)
	}
	if err != nil {
		return Settings{}, err
	}
	return DecodeTOML(bytes.NewReader(data))
}

// DecodeTOML reads TOML settings from r on top of the defaults.
func DecodeTOML(r io.Reader) (Settings, error) {
	s := Default()
	md, err := toml.NewDecoder(r).Decode(&s)
	if err != nil {
		return Settings{}, decodeError(err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Settings{}, errors.New(errors.ErrCodeInvalidSettings, "unknown setting %q", undecoded[0].String())
	}
	return s, s.Validate()
}

// DecodeJSON reads JSON settings on top of the defaults.
// An empty document yields the defaults.
func DecodeJSON(data []byte) (Settings, error) {
	s := Default()
	if len(bytes.TrimSpace(data)) == 0 {
		return s, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return Settings{}, decodeError(err)
	}
	return s, s.Validate()
}

// EncodeTOML writes s as TOML.
func (s Settings) EncodeTOML(w io.Writer) error {
	return toml.NewEncoder(w).Encode(s)
}

func decodeError(err error) error {
	if errors.GetCode(err) != "" {
		return err
	}
	return errors.Wrap(errors.ErrCodeInvalidSettings, err, "decode settings")
}
