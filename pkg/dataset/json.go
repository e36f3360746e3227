package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/colgraph/pkg/errors"
)

// ReadJSON decodes a dataset from r.
//
// The input must be a JSON object whose keys are series names and whose
// values are objects mapping category names to numbers or null. Key order
// is preserved for both series and categories. ReadJSON returns an
// INVALID_DATASET error for malformed JSON, non-numeric values, duplicate
// names or nested objects. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Dataset, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	ds, err := decodeObject(dec)
	if err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New(errors.ErrCodeInvalidDataset, "unexpected data after dataset object")
	}
	return ds, ds.Validate()
}

// ImportJSON reads a JSON dataset file at path.
func ImportJSON(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, openError(path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// WriteJSON encodes d as an indented, ordered JSON object.
// The output can be read back with [ReadJSON].
func WriteJSON(d *Dataset, w io.Writer) error {
	var raw []byte
	if d == nil {
		raw = []byte("{}")
	} else {
		var err error
		if raw, err = d.MarshalJSON(); err != nil {
			return err
		}
	}

	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	out.WriteByte('\n')
	_, err := w.Write(out.Bytes())
	return err
}

// ExportJSON writes d to a JSON file at path.
func ExportJSON(d *Dataset, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(d, f)
}

// MarshalJSON encodes the dataset as an ordered object of objects.
func (d Dataset) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, s := range d.Series {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeKey(&buf, s.Name); err != nil {
			return nil, err
		}
		buf.WriteByte('{')
		for j, e := range s.Entries {
			if j > 0 {
				buf.WriteByte(',')
			}
			if err := writeKey(&buf, e.Category); err != nil {
				return nil, err
			}
			if e.Value == nil {
				buf.WriteString("null")
				continue
			}
			v, err := json.Marshal(*e.Value)
			if err != nil {
				return nil, fmt.Errorf("series %q category %q: %w", s.Name, e.Category, err)
			}
			buf.Write(v)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an ordered object of objects.
func (d *Dataset) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	ds, err := decodeObject(dec)
	if err != nil {
		return err
	}
	*d = *ds
	return nil
}

func writeKey(buf *bytes.Buffer, key string) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	return nil
}

func decodeObject(dec *json.Decoder) (*Dataset, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	ds := &Dataset{}
	for dec.More() {
		name, err := readKey(dec)
		if err != nil {
			return nil, err
		}
		if err := expectDelim(dec, '{'); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "series %q", name)
		}

		s := Series{Name: name}
		for dec.More() {
			cat, err := readKey(dec)
			if err != nil {
				return nil, err
			}
			tok, err := dec.Token()
			if err != nil {
				return nil, invalidJSON(err)
			}
			e := Entry{Category: cat}
			switch v := tok.(type) {
			case nil:
			case json.Number:
				f, err := v.Float64()
				if err != nil {
					return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "series %q category %q", name, cat)
				}
				e.Value = &f
			default:
				return nil, errors.New(errors.ErrCodeInvalidDataset,
					"series %q category %q: value must be a number or null", name, cat)
			}
			s.Entries = append(s.Entries, e)
		}
		if err := expectDelim(dec, '}'); err != nil {
			return nil, err
		}
		ds.Series = append(ds.Series, s)
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return ds, nil
}

func readKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", invalidJSON(err)
	}
	key, ok := tok.(string)
	if !ok {
		return "", errors.New(errors.ErrCodeInvalidDataset, "expected object key, got %v", tok)
	}
	return key, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return invalidJSON(err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return errors.New(errors.ErrCodeInvalidDataset, "expected %q, got %v", want, tok)
	}
	return nil
}

func invalidJSON(err error) error {
	return errors.Wrap(errors.ErrCodeInvalidDataset, err, "decode json")
}
