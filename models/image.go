// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// ImageRecord is the persisted state of one ingested source image together
// with the derivative layers generated from it.
//
// UseSplit and UseDistortion are fixed when the record is created and are
// never updated afterwards: presentation instructions already handed out to
// clients depend on them.
type ImageRecord struct {
	// ID is the server-assigned identifier (UUIDv7 string).
	ID string `json:"id"`

	// SourceName is the original file name supplied at upload time.
	SourceName string `json:"source_name"`

	// SourceLocator references the untouched upload in blob storage.
	SourceLocator string `json:"-"`

	// Layer1Locator references the primary derivative. Always present.
	Layer1Locator string `json:"-"`

	// Layer2Locator references the secondary split layer. Empty unless
	// UseSplit is true.
	Layer2Locator string `json:"-"`

	UseSplit      bool `json:"use_split"`
	UseDistortion bool `json:"use_distortion"`

	// TileSize is the checkerboard tile edge in pixels; nil when not split.
	TileSize *int `json:"tile_size"`

	// ImageWidth and ImageHeight are the natural dimensions of the
	// derivative layers.
	ImageWidth  *int `json:"image_width"`
	ImageHeight *int `json:"image_height"`

	// HueRotation is the degree value used by the colour distortion; nil
	// when distortion is disabled.
	HueRotation *int `json:"hue_rotation"`

	CreatedAt time.Time `json:"created_at"`
}

// Locator returns the blob locator backing the given layer, or an empty
// string if the record has no such layer under its stored policy.
func (r ImageRecord) Locator(layer Layer) string {
	switch layer {
	case LayerOriginal:
		return r.SourceLocator
	case LayerPrimary:
		return r.Layer1Locator
	case LayerSecondary:
		if !r.UseSplit {
			return ""
		}
		return r.Layer2Locator
	default:
		return ""
	}
}

// Locators returns every non-empty blob locator owned by the record.
func (r ImageRecord) Locators() []string {
	locators := make([]string, 0, 3)
	for _, l := range []string{r.SourceLocator, r.Layer1Locator, r.Layer2Locator} {
		if l != "" {
			locators = append(locators, l)
		}
	}
	return locators
}

// IngestRequest carries an uploaded source image into the ingestion service.
type IngestRequest struct {
	// Name is the client-supplied file name, used to derive blob names.
	Name string

	// Data is the raw encoded image.
	Data []byte

	UseSplit      bool
	UseDistortion bool
}
