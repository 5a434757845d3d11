package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/MKhiriev/cryptpix/internal/config"
	"github.com/MKhiriev/cryptpix/internal/handler"
	myGRPC "github.com/MKhiriev/cryptpix/internal/handler/grpc"
	"github.com/MKhiriev/cryptpix/internal/logger"
	"github.com/MKhiriev/cryptpix/internal/service"
)

func TestNewServer_NoAddresses(t *testing.T) {
	s, err := NewServer(&handler.Handlers{}, config.Server{}, logger.Nop())

	require.ErrorIs(t, err, errNoServersAreCreated)
	assert.Nil(t, s)
}

func TestNewHTTPServer_Configured(t *testing.T) {
	router := http.NewServeMux()
	s := newHTTPServer(router, config.Server{HTTPAddress: "127.0.0.1:8080"}, logger.Nop())

	assert.Equal(t, "127.0.0.1:8080", s.server.Addr)
	assert.Equal(t, router, s.server.Handler)
	assert.NotZero(t, s.server.ReadHeaderTimeout)
}

func TestHTTPServer_ShutdownBeforeRun(t *testing.T) {
	s := newHTTPServer(http.NewServeMux(), config.Server{HTTPAddress: "127.0.0.1:0"}, logger.Nop())

	s.Shutdown()
	// a closed server returns immediately instead of listening
	done := make(chan struct{})
	go func() {
		s.RunServer()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("RunServer kept running after Shutdown")
	}
}

func TestGRPCServer_ServesHealth(t *testing.T) {
	h := myGRPC.NewHandler(&service.Services{}, logger.Nop())
	s, err := newGRPCServer(h, config.Server{GRPCAddress: "127.0.0.1:0"}, logger.Nop())
	require.NoError(t, err)

	go s.RunServer()
	defer s.Shutdown()

	conn, err := grpc.NewClient(s.gRPCNetListener.Addr().String(),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{Service: myGRPC.ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}

func TestNewGRPCServer_ListenError(t *testing.T) {
	h := myGRPC.NewHandler(&service.Services{}, logger.Nop())

	_, err := newGRPCServer(h, config.Server{GRPCAddress: "256.0.0.1:bad"}, logger.Nop())

	assert.Error(t, err)
}
