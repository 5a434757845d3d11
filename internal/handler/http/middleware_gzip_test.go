// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gunzip(t *testing.T, r io.Reader) string {
	t.Helper()
	zr, err := gzip.NewReader(r)
	require.NoError(t, err, "failed to create gzip reader")
	defer zr.Close()

	data, err := io.ReadAll(zr)
	require.NoError(t, err, "failed to decompress response")
	return string(data)
}

func TestGZip_Responses(t *testing.T) {
	tests := []struct {
		name           string
		acceptEncoding string
		contentType    string
		status         int
		body           string
		wantGzipped    bool
	}{
		{
			name:           "json is compressed",
			acceptEncoding: "gzip",
			contentType:    "application/json",
			status:         http.StatusOK,
			body:           `{"urls":["/secure-image/a","/secure-image/b"]}`,
			wantGzipped:    true,
		},
		{
			name:           "html with charset is compressed",
			acceptEncoding: "deflate, gzip, br",
			contentType:    "text/html; charset=utf-8",
			status:         http.StatusOK,
			body:           strings.Repeat(`<img src="x">`, 200),
			wantGzipped:    true,
		},
		{
			name:           "css with quality values is compressed",
			acceptEncoding: "gzip;q=1.0, identity;q=0.5",
			contentType:    "text/css; charset=utf-8",
			status:         http.StatusOK,
			body:           ".image-stack{position:relative}",
			wantGzipped:    true,
		},
		{
			name:           "error json is compressed",
			acceptEncoding: "gzip",
			contentType:    "application/json",
			status:         http.StatusNotFound,
			body:           `{"error":"not found"}`,
			wantGzipped:    true,
		},
		{
			name:           "client without gzip",
			acceptEncoding: "",
			contentType:    "application/json",
			status:         http.StatusOK,
			body:           `{"id":"x"}`,
			wantGzipped:    false,
		},
		{
			name:           "png passes through",
			acceptEncoding: "gzip",
			contentType:    "image/png",
			status:         http.StatusOK,
			body:           "\x89PNG\r\n\x1a\n",
			wantGzipped:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", tt.contentType)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			req := httptest.NewRequest(http.MethodGet, "/api/images/x", nil)
			if tt.acceptEncoding != "" {
				req.Header.Set("Accept-Encoding", tt.acceptEncoding)
			}
			rr := httptest.NewRecorder()
			withGZip(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.status, rr.Code)
			if tt.wantGzipped {
				assert.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))
				assert.Equal(t, "Accept-Encoding", rr.Header().Get("Vary"))
				assert.Equal(t, tt.body, gunzip(t, rr.Body))
			} else {
				assert.Empty(t, rr.Header().Get("Content-Encoding"))
				assert.Equal(t, tt.body, rr.Body.String())
			}
		})
	}
}

func TestGZip_NoContentStaysEmpty(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodDelete, "/api/images/x", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	withGZip(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Header().Get("Content-Encoding"))
	assert.Zero(t, rr.Body.Len())
}

func TestGZip_ImplicitHeaderSniffsType(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("plain words"))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/version/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	withGZip(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))
	assert.Equal(t, "plain words", gunzip(t, rr.Body))
}

func TestGZip_RequestBodies(t *testing.T) {
	tests := []struct {
		name            string
		contentEncoding string
		compress        bool
		wantStatus      int
	}{
		{name: "gzipped body is decoded", contentEncoding: "gzip", compress: true, wantStatus: http.StatusOK},
		{name: "multiple encodings including gzip", contentEncoding: "gzip, deflate", compress: true, wantStatus: http.StatusOK},
		{name: "invalid gzip body", contentEncoding: "gzip", compress: false, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := []byte("multipart payload")

			var body io.Reader = bytes.NewReader(payload)
			if tt.compress {
				var buf bytes.Buffer
				zw := gzip.NewWriter(&buf)
				_, err := zw.Write(payload)
				require.NoError(t, err)
				require.NoError(t, zw.Close())
				body = &buf
			}

			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				got, err := io.ReadAll(r.Body)
				require.NoError(t, err)
				assert.Equal(t, payload, got)
				assert.Empty(t, r.Header.Get("Content-Encoding"))
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/api/images", body)
			req.Header.Set("Content-Encoding", tt.contentEncoding)
			rr := httptest.NewRecorder()
			withGZip(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantStatus == http.StatusOK, called)
		})
	}
}
