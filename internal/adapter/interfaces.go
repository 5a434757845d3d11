// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client-side transport used by the cryptpix
// CLI to talk to a server.
//
// The primary abstraction is [ServerAdapter]. The package ships an HTTP/REST
// implementation ([NewHTTPServerAdapter]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] (e.g. [ErrNotFound] for
// 404, [ErrTooLarge] for 413).
package adapter

import (
	"context"

	"github.com/MKhiriev/cryptpix/models"
)

// UploadRequest is one image sent to POST /api/images. Nil policy fields
// leave the choice to the server defaults.
type UploadRequest struct {
	FileName string
	Data     []byte

	UseSplit      *bool
	UseDistortion *bool
}

// ServerAdapter defines communication with a cryptpix server. The adapter
// keeps the viewer session cookie between calls, so layer URLs returned by
// GetPresentation can be fetched with FetchLayer.
type ServerAdapter interface {
	// GetVersion returns the server version string.
	GetVersion(ctx context.Context) (string, error)

	// UploadImage ingests one image and returns the created record.
	UploadImage(ctx context.Context, req UploadRequest) (models.ImageResponse, error)

	// GetImage returns the metadata of an existing record.
	GetImage(ctx context.Context, id string) (models.ImageResponse, error)

	// DeleteImage removes a record and its stored layers.
	DeleteImage(ctx context.Context, id string) error

	// GetPresentation asks the server for freshly signed markup.
	GetPresentation(ctx context.Context, id string, opts models.PresentationOptions) (models.Presentation, error)

	// FetchLayer downloads one layer URL as returned in a presentation.
	FetchLayer(ctx context.Context, layerURL string) ([]byte, error)
}
