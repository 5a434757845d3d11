package service

import (
	"context"
	"time"

	"github.com/MKhiriev/cryptpix/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// TokenService mints and checks layer capability tokens.
type TokenService interface {
	// Issue returns a URL-path-safe token granting sessionID access to layerID.
	Issue(ctx context.Context, layerID, sessionID string) (string, error)

	// Verify returns the layer ID embedded in token if it was issued for
	// expectedSessionID less than ttl ago. Every failure is [ErrInvalidToken].
	Verify(ctx context.Context, token, expectedSessionID string, ttl time.Duration) (string, error)
}

// IngestService turns uploads into stored records and derivative layers.
type IngestService interface {
	Ingest(ctx context.Context, req models.IngestRequest) (models.ImageRecord, error)
	Get(ctx context.Context, id string) (models.ImageRecord, error)

	// Delete removes the record and then every blob it owns.
	Delete(ctx context.Context, id string) error
}

// DeliveryGate is the only path from a token to stored bytes.
type DeliveryGate interface {
	// Resolve returns the layer addressed by token. It fails with
	// [ErrForbidden] for a token that does not verify against sessionID and
	// with [ErrNotFound] for anything that cannot be served.
	Resolve(ctx context.Context, token, sessionID string) (*models.LayerStream, error)

	// LayerURL mints a fresh fetch URL for one layer of a record.
	LayerURL(ctx context.Context, recordID string, layer models.Layer, sessionID string) (string, error)
}

// PresentationService renders the markup that recombines delivered layers.
type PresentationService interface {
	Compose(ctx context.Context, recordID, sessionID string, opts models.PresentationOptions) (models.Presentation, error)
	Stylesheet() string
}

// AppInfoService reports what binary is serving requests.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.BuildInfo
}
