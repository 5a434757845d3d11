package service

import (
	"fmt"

	"github.com/MKhiriev/cryptpix/internal/config"
	"github.com/MKhiriev/cryptpix/internal/crypto"
	"github.com/MKhiriev/cryptpix/internal/logger"
	"github.com/MKhiriev/cryptpix/internal/obfuscate"
	"github.com/MKhiriev/cryptpix/internal/store"
	"github.com/MKhiriev/cryptpix/internal/validators"
)

type Services struct {
	TokenService        TokenService
	IngestService       IngestService
	DeliveryGate        DeliveryGate
	PresentationService PresentationService
	AppInfoService      AppInfoService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	keys, err := crypto.NewKeyRing(cfg.App.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("error creating key ring: %w", err)
	}

	appInfo, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	validator := validators.NewImageValidator(cfg.App.MaxUploadSize)
	builder := obfuscate.NewBuilder(obfuscate.WithBleedPasses(cfg.App.BleedPasses))

	tokens := NewTokenService(keys, cfg.App, logger)
	ingest := NewIngestValidationService(validator).Wrap(
		NewIngestService(storages.ImageRepository, storages.BlobStorage, builder, logger),
	)
	gate := NewDeliveryGate(storages.ImageRepository, storages.BlobStorage, tokens, cfg.App, logger)

	presentation, err := NewPresentationService(storages.ImageRepository, gate, validator, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		TokenService:        tokens,
		IngestService:       ingest,
		DeliveryGate:        gate,
		PresentationService: presentation,
		AppInfoService:      appInfo,
	}, nil
}
