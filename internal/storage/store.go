package storage

import (
	"context"

	"github.com/formpulse/survey-intake-backend/internal/config"
	"github.com/formpulse/survey-intake-backend/internal/models"
	"github.com/pkg/errors"
)

// Store is the append-only submission store. Records are never updated
// or deleted; the store only grows.
type Store interface {
	// AppendIfNew persists the record unless an existing record matches
	// it on the dedupe key. It reports whether the record was actually
	// appended; recognizing a duplicate is not an error.
	AppendIfNew(ctx context.Context, rec *models.StorageRecord) (bool, error)

	// Each invokes fn for every stored record, oldest first. It is
	// restartable: every call rereads from the start. A store that does
	// not exist yet yields nothing. A non-nil error from fn stops the
	// iteration and is returned unchanged.
	Each(ctx context.Context, fn func(*models.StorageRecord) error) error

	// Close releases the backing resources.
	Close() error
}

// Open builds the store selected by the configuration.
func Open(ctx context.Context, cfg config.Config) (Store, error) {
	switch cfg.StoreBackend {
	case config.StoreFile:
		return NewFileStore(cfg.DataFile), nil
	case config.StoreSQLite:
		return NewSQLiteStore(cfg.SQLiteFile)
	case config.StoreMongo:
		return NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
	default:
		return nil, errors.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
