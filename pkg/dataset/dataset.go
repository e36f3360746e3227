package dataset

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"math"

	"github.com/matzehuels/colgraph/pkg/errors"
)

// Entry is a single category/value pair. A nil Value is absent.
type Entry struct {
	Category string   `json:"category" bson:"category"`
	Value    *float64 `json:"value" bson:"value,omitempty"`
}

// Series is a named, ordered list of entries.
type Series struct {
	Name    string  `json:"name" bson:"name"`
	Entries []Entry `json:"entries" bson:"entries"`
}

// Dataset is an ordered list of series.
//
// Dataset encodes to and from JSON as an object of objects (see the package
// documentation), not as its Go struct layout.
type Dataset struct {
	Series []Series `bson:"series"`
}

// New builds a single-series dataset from parallel category and value slices.
// Missing trailing values are absent.
func New(name string, categories []string, values []float64) *Dataset {
	s := Series{Name: name, Entries: make([]Entry, len(categories))}
	for i, c := range categories {
		s.Entries[i] = Entry{Category: c}
		if i < len(values) {
			s.Entries[i].Value = Float(values[i])
		}
	}
	return &Dataset{Series: []Series{s}}
}

// Float returns a pointer to v, for building entries inline.
func Float(v float64) *float64 { return &v }

// Empty reports whether the dataset has no series.
func (d *Dataset) Empty() bool {
	return d == nil || len(d.Series) == 0
}

// First returns the first series, or the zero Series when d is empty.
func (d *Dataset) First() Series {
	if d.Empty() {
		return Series{}
	}
	return d.Series[0]
}

// Names returns the series names in order.
func (d *Dataset) Names() []string {
	if d.Empty() {
		return nil
	}
	names := make([]string, len(d.Series))
	for i, s := range d.Series {
		names[i] = s.Name
	}
	return names
}

// Categories returns the categories of the first series in order.
func (d *Dataset) Categories() []string {
	return d.First().Categories()
}

// Values returns the values of the first series in order.
func (d *Dataset) Values() []*float64 {
	return d.First().Values()
}

// Categories returns the category names of s in order.
func (s Series) Categories() []string {
	out := make([]string, len(s.Entries))
	for i, e := range s.Entries {
		out[i] = e.Category
	}
	return out
}

// Values returns the values of s in order; absent values are nil.
func (s Series) Values() []*float64 {
	out := make([]*float64, len(s.Entries))
	for i, e := range s.Entries {
		out[i] = e.Value
	}
	return out
}

// Validate checks names and values. Series names must be unique, and
// categories must be unique within a series.
func (d *Dataset) Validate() error {
	if d == nil {
		return nil
	}
	seen := make(map[string]bool, len(d.Series))
	for _, s := range d.Series {
		if err := errors.ValidateName("series", s.Name); err != nil {
			return err
		}
		if seen[s.Name] {
			return errors.New(errors.ErrCodeInvalidDataset, "duplicate series %q", s.Name)
		}
		seen[s.Name] = true

		cats := make(map[string]bool, len(s.Entries))
		for _, e := range s.Entries {
			if err := errors.ValidateName("category", e.Category); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidDataset, err, "series %q", s.Name)
			}
			if cats[e.Category] {
				return errors.New(errors.ErrCodeInvalidDataset, "series %q: duplicate category %q", s.Name, e.Category)
			}
			cats[e.Category] = true
			if e.Value != nil && (math.IsNaN(*e.Value) || math.IsInf(*e.Value, 0)) {
				return errors.New(errors.ErrCodeInvalidDataset, "series %q category %q: value must be finite", s.Name, e.Category)
			}
		}
	}
	return nil
}

// Hash returns a stable SHA-256 of the dataset content. Two datasets with
// the same series, categories, values and order hash identically.
func (d *Dataset) Hash() string {
	var buf bytes.Buffer
	_ = WriteJSON(d, &buf)
	sum := sha256.Sum256(buf.Bytes())
	return hex.EncodeToString(sum[:])
}
