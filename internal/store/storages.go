package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/cryptpix/internal/config"
	"github.com/MKhiriev/cryptpix/internal/logger"
)

// Storages bundles every persistence dependency of the service layer.
type Storages struct {
	ImageRepository ImageRepository
	BlobStorage     BlobStorage

	db *DB
}

// NewStorages connects to the configured database, applies migrations and
// opens the blob store.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	var (
		db  *DB
		err error
	)

	switch cfg.DB.Driver {
	case config.DriverPostgres:
		db, err = NewConnectPostgres(ctx, cfg.DB, log)
	case config.DriverSQLite:
		db, err = NewConnectSQLite(ctx, cfg.DB, log)
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.DB.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(); err != nil {
		_ = db.Close()
		log.Err(err).Str("func", "store.NewStorages").Msg("error applying migrations")
		return nil, err
	}

	blobs, err := NewFileBlobStorage(cfg.Files.Dir, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Storages{
		ImageRepository: NewImageRepository(db, log),
		BlobStorage:     blobs,
		db:              db,
	}, nil
}

// Close releases the database connection pool.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
