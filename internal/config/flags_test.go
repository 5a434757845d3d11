package config

import (
	"flag"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func TestNetAddress_String(t *testing.T) {
	tests := []struct {
		name     string
		addr     NetAddress
		expected string
	}{
		{"empty address", NetAddress{}, ""},
		{"localhost with port", NetAddress{Host: "localhost", Port: 8080}, "localhost:8080"},
		{"IP address with port", NetAddress{Host: "127.0.0.1", Port: 9090}, "127.0.0.1:9090"},
		{"only port no host", NetAddress{Port: 8080}, ":8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.addr.String())
		})
	}
}

func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
		want        NetAddress
	}{
		{"localhost", "localhost:8080", false, NetAddress{Host: "localhost", Port: 8080}},
		{"ipv4", "0.0.0.0:9090", false, NetAddress{Host: "0.0.0.0", Port: 9090}},
		{"all interfaces", ":8080", false, NetAddress{Port: 8080}},
		{"missing port", "localhost", true, NetAddress{}},
		{"non numeric port", "localhost:http", true, NetAddress{}},
		{"zero port", "localhost:0", true, NetAddress{}},
		{"port too large", "localhost:70000", true, NetAddress{}},
		{"hostname", "example.com:80", true, NetAddress{}},
		{"too many colons", "a:b:c", true, NetAddress{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var addr NetAddress
			err := addr.Set(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, addr)
		})
	}
}

func TestParseFlags(t *testing.T) {
	cfg, err := parseFlags(newTestFlagSet(), []string{
		"-a", "localhost:8080",
		"-grpc-address", "127.0.0.1:9090",
		"-d", "file:test.db",
		"-driver", "sqlite",
		"-f", "/srv/media",
		"-config", "/etc/cryptpix.json",
		"-secret-key", "s3cret",
		"-token-issuer", "iss",
		"-token-ttl", "20m",
		"-allow-original-layer",
		"-bleed-passes", "3",
		"-max-upload-size", "1024",
		"-public-base-url", "https://img.example.com",
		"-request-timeout", "15s",
	})
	require.NoError(t, err)

	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.GRPCAddress)
	assert.Equal(t, 15*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "file:test.db", cfg.Storage.DB.DSN)
	assert.Equal(t, DriverSQLite, cfg.Storage.DB.Driver)
	assert.Equal(t, "/srv/media", cfg.Storage.Files.Dir)
	assert.Equal(t, "/etc/cryptpix.json", cfg.JSONFilePath)
	assert.Equal(t, "s3cret", cfg.App.SecretKey)
	assert.Equal(t, "iss", cfg.App.TokenIssuer)
	assert.Equal(t, 20*time.Minute, cfg.App.TokenTTL)
	assert.True(t, cfg.App.AllowOriginalLayer)
	assert.Equal(t, 3, cfg.App.BleedPasses)
	assert.Equal(t, int64(1024), cfg.App.MaxUploadSize)
	assert.Equal(t, "https://img.example.com", cfg.App.PublicBaseURL)
}

func TestParseFlags_Empty(t *testing.T) {
	cfg, err := parseFlags(newTestFlagSet(), nil)
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestParseFlags_InvalidAddress(t *testing.T) {
	_, err := parseFlags(newTestFlagSet(), []string{"-a", "not-an-address"})
	assert.Error(t, err)
}
