// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// cryptpix server handlers and the CLI client.
//
// The Msg* constants are the exact plain-text bodies of the fetch route.
// Clients compare against them, so the wording must not change.
package app

const (
	// MsgInvalidOrExpiredLink is the 403 body for a token that does not
	// verify: bad signature, wrong session, or past its lifetime.
	MsgInvalidOrExpiredLink = "Invalid or expired link."

	// MsgImageNotFound is the 404 body for a valid token whose layer
	// cannot be served.
	MsgImageNotFound = "Image not found."
)
