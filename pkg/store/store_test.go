package store

import (
	"context"
	"testing"
	"time"

	"github.com/matzehuels/colgraph/pkg/dataset"
	"github.com/matzehuels/colgraph/pkg/errors"
	"github.com/matzehuels/colgraph/pkg/format"
	"github.com/matzehuels/colgraph/pkg/render"
	"github.com/matzehuels/colgraph/pkg/settings"
)

func sampleChart() *Chart {
	ds := &dataset.Dataset{Series: []dataset.Series{
		{Name: "Latency", Entries: []dataset.Entry{
			{Category: "p50", Value: dataset.Float(95)},
			{Category: "p90"},
			{Category: "p99", Value: dataset.Float(410)},
		}},
	}}
	st := settings.Default()
	st.Format = format.Seconds
	return NewChart(ds, st, render.Options{Width: 640})
}

func testStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	c := sampleChart()

	if err := s.Save(ctx, c); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if err := s.Save(ctx, c); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Save(duplicate) error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}

	got, err := s.Get(ctx, c.ID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.ID != c.ID || got.Settings != c.Settings || got.Options.Width != 640 {
		t.Errorf("Get() = %+v, want %+v", got, c)
	}
	if got.Dataset.Hash() != c.Dataset.Hash() {
		t.Error("stored dataset differs from saved dataset")
	}
	if !got.CreatedAt.Equal(c.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, c.CreatedAt)
	}

	if err := s.Delete(ctx, c.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := s.Get(ctx, c.ID); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Get(deleted) error = %v, want %s", err, errors.ErrCodeNotFound)
	}
	if err := s.Delete(ctx, c.ID); err != nil {
		t.Errorf("Delete(missing) error: %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}
	testStore(t, s)
}

func TestSaveRejectsInvalidID(t *testing.T) {
	c := sampleChart()
	c.ID = "../escape"

	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for name, s := range map[string]Store{"memory": NewMemoryStore(), "file": fs} {
		t.Run(name, func(t *testing.T) {
			if err := s.Save(context.Background(), c); !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Save() error = %v, want %s", err, errors.ErrCodeInvalidInput)
			}
		})
	}
}

func TestFileStoreGetInvalidID(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get(context.Background(), "../../etc/passwd"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Get() error = %v, want %s", err, errors.ErrCodeNotFound)
	}
}

func TestMemoryStoreCopies(t *testing.T) {
	s := NewMemoryStore()
	c := sampleChart()
	if err := s.Save(context.Background(), c); err != nil {
		t.Fatal(err)
	}
	c.Settings.Gridlines = 99

	got, err := s.Get(context.Background(), c.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Settings.Gridlines == 99 {
		t.Error("MemoryStore should not alias saved charts")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestNewChart(t *testing.T) {
	a, b := sampleChart(), sampleChart()
	if a.ID == b.ID {
		t.Error("NewChart() IDs should be unique")
	}
	if err := errors.ValidateChartID(a.ID); err != nil {
		t.Errorf("NewChart() ID %q invalid: %v", a.ID, err)
	}
	if a.CreatedAt.IsZero() || a.CreatedAt.Location() != time.UTC {
		t.Errorf("CreatedAt = %v, want UTC timestamp", a.CreatedAt)
	}
}

func TestNewMongoStoreErrors(t *testing.T) {
	if _, err := NewMongoStore(context.Background(), MongoOptions{}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("NewMongoStore(no URI) error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := NewMongoStore(ctx, MongoOptions{URI: "mongodb://127.0.0.1:1", Timeout: time.Second})
	if err == nil {
		t.Error("NewMongoStore() should fail for an unreachable server")
	}
}
