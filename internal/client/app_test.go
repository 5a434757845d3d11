package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/cryptpix/internal/adapter"
	"github.com/MKhiriev/cryptpix/internal/logger"
	"github.com/MKhiriev/cryptpix/models"
)

const testID = "0191f0c4-5d2e-7c41-9a77-3c2f1e0b9d11"

// fakeAdapter records the last request of each kind.
type fakeAdapter struct {
	upload  adapter.UploadRequest
	opts    models.PresentationOptions
	deleted string
	err     error
	markup  string
	version string
}

func (f *fakeAdapter) GetVersion(context.Context) (string, error) {
	return f.version, f.err
}

func (f *fakeAdapter) UploadImage(_ context.Context, req adapter.UploadRequest) (models.ImageResponse, error) {
	f.upload = req
	return models.ImageResponse{ImageRecord: models.ImageRecord{ID: testID, SourceName: req.FileName}}, f.err
}

func (f *fakeAdapter) GetImage(_ context.Context, id string) (models.ImageResponse, error) {
	return models.ImageResponse{ImageRecord: models.ImageRecord{ID: id}}, f.err
}

func (f *fakeAdapter) DeleteImage(_ context.Context, id string) error {
	f.deleted = id
	return f.err
}

func (f *fakeAdapter) GetPresentation(_ context.Context, id string, opts models.PresentationOptions) (models.Presentation, error) {
	f.opts = opts
	return models.Presentation{RecordID: id, HTML: f.markup}, f.err
}

func (f *fakeAdapter) FetchLayer(context.Context, string) ([]byte, error) {
	return nil, f.err
}

func newTestApp(f *fakeAdapter) (*App, *bytes.Buffer, *string) {
	out := &bytes.Buffer{}
	var copied string

	a := NewApp(f, logger.Nop())
	a.stdout = out
	a.readFile = func(string) ([]byte, error) { return []byte("png-bytes"), nil }
	a.copyToClipboard = func(s string) error {
		copied = s
		return nil
	}
	return a, out, &copied
}

func TestRun_Upload(t *testing.T) {
	f := &fakeAdapter{}
	a, out, _ := newTestApp(f)

	err := a.Run(context.Background(), []string{"upload", "-file", "/tmp/photos/cat.png", "-split", "false"})

	require.NoError(t, err)
	assert.Equal(t, "cat.png", f.upload.FileName)
	assert.Equal(t, []byte("png-bytes"), f.upload.Data)
	require.NotNil(t, f.upload.UseSplit)
	assert.False(t, *f.upload.UseSplit)
	assert.Nil(t, f.upload.UseDistortion, "unset flag must defer to the server")

	var got models.ImageResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, testID, got.ID)
}

func TestRun_UploadFlagErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing file", []string{"upload"}},
		{"bad split", []string{"upload", "-file", "a.png", "-split", "sometimes"}},
		{"unknown flag", []string{"upload", "-nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _, _ := newTestApp(&fakeAdapter{})
			assert.Error(t, a.Run(context.Background(), tt.args))
		})
	}
}

func TestRun_RenderCopiesMarkup(t *testing.T) {
	f := &fakeAdapter{markup: `<div class="image-stack"></div>`}
	a, out, copied := newTestApp(f)

	err := a.Run(context.Background(), []string{"render", "-id", testID, "-width", "320", "-parent", "-copy"})

	require.NoError(t, err)
	assert.Equal(t, models.PresentationOptions{Width: "320", ParentSize: true}, f.opts)
	assert.Equal(t, `<div class="image-stack"></div>`, *copied)
	assert.Equal(t, "<div class=\"image-stack\"></div>\n", out.String())
}

func TestRun_RenderJSON(t *testing.T) {
	a, out, copied := newTestApp(&fakeAdapter{markup: "<div></div>"})

	require.NoError(t, a.Run(context.Background(), []string{"render", "-id", testID, "-json"}))

	var p models.Presentation
	require.NoError(t, json.Unmarshal(out.Bytes(), &p))
	assert.Equal(t, testID, p.RecordID)
	assert.Empty(t, *copied)
}

func TestRun_DeleteAndVersion(t *testing.T) {
	f := &fakeAdapter{version: "v2.0.0"}
	a, out, _ := newTestApp(f)

	require.NoError(t, a.Run(context.Background(), []string{"delete", "-id", testID}))
	assert.Equal(t, testID, f.deleted)

	out.Reset()
	require.NoError(t, a.Run(context.Background(), []string{"version"}))
	assert.Equal(t, "v2.0.0\n", out.String())
}

func TestRun_AdapterErrorPropagates(t *testing.T) {
	a, _, _ := newTestApp(&fakeAdapter{err: adapter.ErrNotFound})

	err := a.Run(context.Background(), []string{"get", "-id", testID})

	assert.ErrorIs(t, err, adapter.ErrNotFound)
}

func TestRun_UnknownCommand(t *testing.T) {
	a, out, _ := newTestApp(&fakeAdapter{})

	err := a.Run(context.Background(), []string{"frobnicate"})

	assert.True(t, errors.Is(err, ErrUnknownCommand))
	assert.Contains(t, out.String(), "usage:")

	assert.ErrorIs(t, a.Run(context.Background(), nil), ErrUnknownCommand)
}
