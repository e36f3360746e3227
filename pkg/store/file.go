package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/matzehuels/colgraph/pkg/errors"
)

// FileStore keeps each chart in <dir>/<id>.json. It suits a single server
// process; concurrent servers sharing a directory should use MongoStore.
type FileStore struct {
	dir string
}

// NewFileStore creates dir if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create chart dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Path returns the chart directory.
func (s *FileStore) Path() string { return s.dir }

func (s *FileStore) file(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// Save writes the chart with O_EXCL so that an existing ID is never
// overwritten, even by a concurrent Save.
func (s *FileStore) Save(_ context.Context, c *Chart) error {
	if err := errors.ValidateChartID(c.ID); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encode chart: %w", err)
	}

	f, err := os.OpenFile(s.file(c.ID), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return exists(c.ID)
		}
		return fmt.Errorf("create chart file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return fmt.Errorf("write chart file: %w", err)
	}
	return f.Close()
}

func (s *FileStore) Get(_ context.Context, id string) (*Chart, error) {
	if errors.ValidateChartID(id) != nil {
		return nil, notFound(id)
	}
	data, err := os.ReadFile(s.file(id))
	switch {
	case os.IsNotExist(err):
		return nil, notFound(id)
	case err != nil:
		return nil, fmt.Errorf("read chart file: %w", err)
	}

	c := new(Chart)
	if err := json.Unmarshal(data, c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode chart %s", id)
	}
	return c, nil
}

// Delete ignores IDs that are missing or malformed.
func (s *FileStore) Delete(_ context.Context, id string) error {
	if errors.ValidateChartID(id) != nil {
		return nil
	}
	if err := os.Remove(s.file(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove chart file: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

var _ Store = (*FileStore)(nil)
