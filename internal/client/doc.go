// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the cryptpix command-line client.
//
// Each subcommand maps to one server call made through the adapter package:
// upload, get, delete, render and version. Output goes to stdout so that the
// rendered markup can be piped; diagnostics go to the logger.
package client
