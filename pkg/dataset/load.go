package dataset

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/colgraph/pkg/errors"
)

// Extensions lists the file extensions [Load] understands.
var Extensions = []string{".json", ".toml", ".csv", ".xlsx"}

// Load reads a dataset file, choosing the reader from its extension.
func Load(path string) (*Dataset, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !supported(ext) {
		return nil, errors.New(errors.ErrCodeUnsupported,
			"unsupported dataset file %q (want one of %s)", path, strings.Join(Extensions, ", "))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, openError(path, err)
	}
	defer f.Close()

	switch ext {
	case ".toml":
		return ReadTOML(f)
	case ".csv":
		return ReadCSV(f)
	case ".xlsx":
		return ReadXLSX(f, "")
	default:
		return ReadJSON(f)
	}
}

func supported(ext string) bool {
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

func openError(path string, err error) error {
	if os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "dataset file %s", path)
	}
	return errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
}
