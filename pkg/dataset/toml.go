package dataset

import (
	"io"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/colgraph/pkg/errors"
)

// ReadTOML decodes a dataset with one table per series. Series and
// categories keep their document order. TOML has no null, so absent values
// are simply omitted.
func ReadTOML(r io.Reader) (*Dataset, error) {
	var raw map[string]any
	md, err := toml.NewDecoder(r).Decode(&raw)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "decode toml")
	}

	ds := &Dataset{}
	index := make(map[string]int)
	series := func(name string) *Series {
		i, ok := index[name]
		if !ok {
			i = len(ds.Series)
			index[name] = i
			ds.Series = append(ds.Series, Series{Name: name})
		}
		return &ds.Series[i]
	}

	for _, key := range md.Keys() {
		switch len(key) {
		case 1:
			if _, ok := raw[key[0]].(map[string]any); !ok {
				return nil, errors.New(errors.ErrCodeInvalidDataset, "%q must be a table of category values", key[0])
			}
			series(key[0])
		case 2:
			table, _ := raw[key[0]].(map[string]any)
			v, err := tomlNumber(table[key[1]])
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "series %q category %q", key[0], key[1])
			}
			s := series(key[0])
			s.Entries = append(s.Entries, Entry{Category: key[1], Value: &v})
		default:
			return nil, errors.New(errors.ErrCodeInvalidDataset, "nested key %q is not supported", key.String())
		}
	}
	return ds, ds.Validate()
}

func tomlNumber(v any) (float64, error) {
	switch n := v.(type) {
	case int64:
		return float64(n), nil
	case float64:
		return n, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidDataset, "value must be a number, got %T", v)
}
