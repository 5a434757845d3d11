package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/cryptpix/internal/config"
	"github.com/MKhiriev/cryptpix/internal/crypto"
	"github.com/MKhiriev/cryptpix/internal/logger"
)

const (
	testRecordID = "0191f0c4-5d2e-7c41-9a77-3c2f1e0b9d11"
	testSession  = "session-a"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testAppConfig() config.App {
	return config.App{
		SecretKey:   "test-secret",
		TokenIssuer: "cryptpix-test",
		TokenTTL:    5 * time.Minute,
	}
}

// newTestTokenService returns a token service whose clock is read from *now.
func newTestTokenService(t *testing.T, now *time.Time) *tokenService {
	t.Helper()
	keys, err := crypto.NewKeyRing("test-secret")
	require.NoError(t, err)

	svc := NewTokenService(keys, testAppConfig(), logger.Nop()).(*tokenService)
	svc.now = func() time.Time { return *now }
	return svc
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 7), G: uint8(y * 5), B: uint8(x + y), A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// seekableBuffer is an in-memory io.ReadSeekCloser.
type seekableBuffer struct {
	*bytes.Reader
	closed bool
}

func newSeekableBuffer(data []byte) *seekableBuffer {
	return &seekableBuffer{Reader: bytes.NewReader(data)}
}

func (b *seekableBuffer) Close() error {
	b.closed = true
	return nil
}

func ptr(v int) *int { return &v }

var bg = context.Background()
