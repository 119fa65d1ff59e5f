package storage

import (
	"context"
	"errors"

	"github.com/julianstephens/daycard/internal/models"
)

// ErrNotLoaded is returned by providers used before Init or Load.
var ErrNotLoaded = errors.New("storage not loaded")

// Gateway is the durable key/value store of saved day slots. Keys are
// opaque; the application keys records by their date.
type Gateway interface {
	// GetAll returns every saved slot with ID set to its key and provenance
	// set to persisted.
	GetAll(ctx context.Context) ([]models.DaySlot, error)
	// Upsert creates or replaces the record stored under key.
	Upsert(ctx context.Context, key string, slot models.DaySlot) error
	// Delete removes the record stored under key. Deleting a missing key is
	// not an error.
	Delete(ctx context.Context, key string) error
}

type Provider interface {
	Gateway

	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Utils
	GetConfigPath() string
}
