package service

import (
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/cryptpix/internal/config"
	"github.com/MKhiriev/cryptpix/internal/logger"
)

func TestNewAppInfoService_RequiresVersion(t *testing.T) {
	svc, err := NewAppInfoService(config.App{BuildCommit: "abc1234"}, logger.Nop())

	assert.Nil(t, svc)
	assert.ErrorIs(t, err, ErrVersionIsNotSpecified)
}

func TestAppInfoService_ReportsInjectedBuild(t *testing.T) {
	cfg := config.App{
		Version:     "v1.4.0",
		BuildDate:   "2026-10-01T09:30:00Z",
		BuildCommit: "3f9c2ab",
		TokenTTL:    90 * time.Second,
	}

	svc, err := NewAppInfoService(cfg, logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, "v1.4.0", svc.GetAppVersion(bg))

	info := svc.GetBuildInfo(bg)
	assert.Equal(t, "v1.4.0", info.Version)
	assert.Equal(t, "2026-10-01T09:30:00Z", info.Date)
	assert.Equal(t, "3f9c2ab", info.Commit)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, 90.0, info.TokenTTLSeconds)
}

func TestAppInfoService_MissingBuildMetadata(t *testing.T) {
	svc, err := NewAppInfoService(config.App{Version: "dev"}, logger.Nop())
	require.NoError(t, err)

	info := svc.GetBuildInfo(bg)
	assert.Equal(t, unknownBuildValue, info.Date)
	assert.Equal(t, unknownBuildValue, info.Commit)
	assert.Zero(t, info.TokenTTLSeconds)
}
