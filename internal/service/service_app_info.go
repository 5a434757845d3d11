package service

import (
	"context"
	"runtime"

	"github.com/MKhiriev/cryptpix/internal/config"
	"github.com/MKhiriev/cryptpix/internal/logger"
	"github.com/MKhiriev/cryptpix/models"
)

// unknownBuildValue replaces build metadata that was not injected.
const unknownBuildValue = "N/A"

type appInfoService struct {
	info models.BuildInfo

	logger *logger.Logger
}

// NewAppInfoService captures the build metadata and token lifetime from cfg.
// A version is mandatory; date and commit fall back to "N/A".
func NewAppInfoService(cfg config.App, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		info: models.BuildInfo{
			Version:         cfg.Version,
			Date:            orUnknown(cfg.BuildDate),
			Commit:          orUnknown(cfg.BuildCommit),
			GoVersion:       runtime.Version(),
			TokenTTLSeconds: cfg.TokenTTL.Seconds(),
		},
		logger: logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.info.Version
}

func (s *appInfoService) GetBuildInfo(ctx context.Context) models.BuildInfo {
	return s.info
}

func orUnknown(v string) string {
	if v == "" {
		return unknownBuildValue
	}
	return v
}
