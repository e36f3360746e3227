// Package store persists chart definitions for the HTTP API.
//
// A [Chart] is a dataset plus the settings and page options needed to
// render it again later. Charts are immutable once saved and addressed by a
// UUID.
//
// # Backends
//
//   - [MemoryStore]: in-process map, for development and tests
//   - [FileStore]: one JSON file per chart under a directory
//   - [MongoStore]: a MongoDB collection, for multi-instance deployments
//
// All backends return an [errors.ErrCodeNotFound] error for unknown IDs.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/colgraph/pkg/dataset"
	"github.com/matzehuels/colgraph/pkg/errors"
	"github.com/matzehuels/colgraph/pkg/render"
	"github.com/matzehuels/colgraph/pkg/settings"
)

// Chart is a stored chart definition.
type Chart struct {
	ID        string            `json:"id" bson:"_id"`
	Dataset   *dataset.Dataset  `json:"dataset" bson:"dataset"`
	Settings  settings.Settings `json:"settings" bson:"settings"`
	Options   render.Options    `json:"options" bson:"options"`
	CreatedAt time.Time         `json:"created_at" bson:"created_at"`
}

// NewChart creates a chart with a fresh ID.
func NewChart(ds *dataset.Dataset, st settings.Settings, opts render.Options) *Chart {
	return &Chart{
		ID:        uuid.NewString(),
		Dataset:   ds,
		Settings:  st,
		Options:   opts,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
}

// Store is the interface for chart storage backends.
type Store interface {
	// Save stores a chart. Saving an existing ID is an error.
	Save(ctx context.Context, c *Chart) error

	// Get retrieves a chart by ID.
	Get(ctx context.Context, id string) (*Chart, error)

	// Delete removes a chart. Deleting a missing chart is not an error.
	Delete(ctx context.Context, id string) error

	Close() error
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeNotFound, "chart %s not found", id)
}

func exists(id string) error {
	return errors.New(errors.ErrCodeInvalidInput, "chart %s already exists", id)
}
