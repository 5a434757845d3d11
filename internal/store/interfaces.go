package store

import (
	"context"

	"github.com/MKhiriev/cryptpix/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// ImageRepository persists [models.ImageRecord] metadata. Records are
// immutable once created: there is no update operation.
type ImageRepository interface {
	// Create inserts record and returns it as stored.
	Create(ctx context.Context, record models.ImageRecord) (models.ImageRecord, error)

	// Get returns the record with the given id or [ErrImageNotFound].
	Get(ctx context.Context, id string) (models.ImageRecord, error)

	// Delete removes the record with the given id or returns [ErrImageNotFound].
	Delete(ctx context.Context, id string) error
}

// BlobStorage stores the binary source image and its derivatives.
// Locators returned by Store are opaque to callers and only meaningful to
// the same BlobStorage.
type BlobStorage interface {
	// Store writes data under a unique locator derived from name.
	Store(ctx context.Context, data []byte, name string) (string, error)

	// Open returns a seekable stream of the blob or [ErrBlobNotFound].
	Open(ctx context.Context, locator string) (*models.LayerStream, error)

	// Delete removes the blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, locator string) error
}

// ErrorClassificator decides whether a failed database call may be retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
