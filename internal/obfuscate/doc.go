// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package obfuscate implements the image transforms behind cryptpix.
//
// A source image is optionally colour-distorted (hue rotation followed by
// inversion) and optionally split into two complementary checkerboard layers.
// Neither output is meaningful on its own; a browser recombines them by
// stacking the layers and applying the inverse paint filter
// invert(100%) hue-rotate(-Ndeg) once to the container.
//
// All transforms are pure and synchronous. Large images are processed in
// parallel row bands; the output never depends on the scheduling.
package obfuscate
