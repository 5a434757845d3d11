// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/MKhiriev/cryptpix/internal/config"
	"github.com/MKhiriev/cryptpix/internal/logger"
	"github.com/MKhiriev/cryptpix/internal/store"
	"github.com/MKhiriev/cryptpix/models"
)

// SecureImagePath is the route prefix under which layer tokens are served.
const SecureImagePath = "/secure-image/"

type deliveryGate struct {
	images store.ImageRepository
	blobs  store.BlobStorage
	tokens TokenService

	ttl           time.Duration
	allowOriginal bool
	baseURL       string

	logger *logger.Logger
}

func NewDeliveryGate(images store.ImageRepository, blobs store.BlobStorage, tokens TokenService, cfg config.App, logger *logger.Logger) DeliveryGate {
	return &deliveryGate{
		images:        images,
		blobs:         blobs,
		tokens:        tokens,
		ttl:           cfg.TokenTTL,
		allowOriginal: cfg.AllowOriginalLayer,
		baseURL:       strings.TrimRight(cfg.PublicBaseURL, "/"),
		logger:        logger,
	}
}

// Resolve implements [DeliveryGate].
//
// Once the token verifies, every other failure (malformed layer ID,
// missing record, layer absent under the record's policy, storage error)
// is reported as ErrNotFound.
func (g *deliveryGate) Resolve(ctx context.Context, token, sessionID string) (*models.LayerStream, error) {
	log := logger.FromContext(ctx)

	layerID, err := g.tokens.Verify(ctx, token, sessionID, g.ttl)
	if err != nil {
		return nil, ErrForbidden
	}

	recordID, layer, err := models.ParseLayerID(layerID)
	if err != nil {
		log.Warn().Str("func", "*deliveryGate.Resolve").Str("layer_id", layerID).Msg("verified token with malformed layer id")
		return nil, ErrNotFound
	}
	if layer == models.LayerOriginal && !g.allowOriginal {
		return nil, ErrNotFound
	}

	record, err := g.images.Get(ctx, recordID)
	if err != nil {
		log.Debug().Err(err).Str("func", "*deliveryGate.Resolve").Str("id", recordID).Msg("record lookup failed")
		return nil, ErrNotFound
	}

	locator := record.Locator(layer)
	if locator == "" {
		return nil, ErrNotFound
	}

	stream, err := g.blobs.Open(ctx, locator)
	if err != nil {
		log.Err(err).Str("func", "*deliveryGate.Resolve").Str("id", recordID).Int("layer", int(layer)).Msg("error opening layer")
		return nil, ErrNotFound
	}
	if _, err = stream.Content.Seek(0, io.SeekStart); err != nil {
		_ = stream.Content.Close()
		log.Err(err).Str("func", "*deliveryGate.Resolve").Str("id", recordID).Msg("error rewinding layer")
		return nil, ErrNotFound
	}

	return stream, nil
}

// LayerURL implements [DeliveryGate].
func (g *deliveryGate) LayerURL(ctx context.Context, recordID string, layer models.Layer, sessionID string) (string, error) {
	token, err := g.tokens.Issue(ctx, models.LayerID(recordID, layer), sessionID)
	if err != nil {
		return "", fmt.Errorf("error minting layer url: %w", err)
	}
	return g.baseURL + SecureImagePath + token, nil
}
