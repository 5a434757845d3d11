// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"

	"github.com/MKhiriev/cryptpix/internal/app"
)

// Sentinel errors raised while reading request input. Callers can match
// against them with [errors.Is].
var (
	// ErrNoImageFile is returned when a multipart upload has no "image" part.
	ErrNoImageFile = errors.New("multipart field `image` is required")

	// ErrInvalidPolicyField is returned when use_split or use_distortion is
	// not a boolean.
	ErrInvalidPolicyField = errors.New("invalid policy field")

	// ErrInvalidQuery is returned for malformed presentation query parameters.
	ErrInvalidQuery = errors.New("invalid query parameter")

	// ErrUploadTooLarge is returned when the request body exceeds the limit.
	ErrUploadTooLarge = errors.New("upload is too large")
)

// Plain-text bodies of the fetch route.
const (
	msgForbidden = app.MsgInvalidOrExpiredLink
	msgNotFound  = app.MsgImageNotFound
)
