package http

import (
	"time"

	"github.com/MKhiriev/cryptpix/internal/config"
	"github.com/MKhiriev/cryptpix/internal/logger"
	"github.com/MKhiriev/cryptpix/internal/service"
	"github.com/MKhiriev/cryptpix/internal/utils"
)

// multipartOverhead is allowed on top of the upload limit for form
// boundaries and the policy fields.
const multipartOverhead = 1 << 20

type Handler struct {
	services *service.Services

	requestTimeout       time.Duration
	maxUploadSize        int64
	defaultUseSplit      bool
	defaultUseDistortion bool

	ids *utils.UUIDGenerator

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:             services,
		requestTimeout:       cfg.Server.RequestTimeout,
		maxUploadSize:        cfg.App.MaxUploadSize,
		defaultUseSplit:      cfg.App.UseSplitByDefault(),
		defaultUseDistortion: cfg.App.UseDistortionByDefault(),
		ids:                  utils.NewUUIDGenerator(),
		logger:               logger,
	}
}
