// Package grpc implements the gRPC transport of cryptpix. It exposes the
// standard grpc.health.v1 service so orchestrators can probe the server
// without touching the HTTP surface.
package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/MKhiriev/cryptpix/internal/logger"
	"github.com/MKhiriev/cryptpix/internal/service"
)

// ServiceName is the health service name reported alongside the overall
// ("") status.
const ServiceName = "cryptpix"

// Handler is the root gRPC transport handler.
//
// It stores references to the service layer and structured logger. A handler
// instance is created once at startup and shared by the gRPC server.
type Handler struct {
	// services provides access to all application business operations.
	services *service.Services

	health *health.Server

	// logger is used for diagnostic log output.
	logger *logger.Logger
}

// NewHandler constructs a [Handler] with the provided service container and
// logger. Health is reported as NOT_SERVING until [Handler.Register] runs.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	return &Handler{
		services: services,
		health:   hs,
		logger:   logger,
	}
}

// Register attaches the health service to s and marks the server SERVING.
func (h *Handler) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, h.health)

	h.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	h.health.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	version := ""
	if h.services != nil && h.services.AppInfoService != nil {
		version = h.services.AppInfoService.GetAppVersion(context.Background())
	}
	h.logger.Info().Str("version", version).Msg("gRPC health service registered")
}

// Shutdown flips every status to NOT_SERVING and ignores later updates.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}
