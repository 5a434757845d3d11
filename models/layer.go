package models

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"time"
)

// Layer selects one stored image of a record.
type Layer int

const (
	// LayerOriginal is the untouched source upload.
	LayerOriginal Layer = 0
	// LayerPrimary is the first derivative; present for every record.
	LayerPrimary Layer = 1
	// LayerSecondary is the complementary split layer; present only when
	// the record was created with UseSplit.
	LayerSecondary Layer = 2
)

// ErrMalformedLayerID is returned by [ParseLayerID] when the identifier is
// not of the form "<recordID>_<layer>".
var ErrMalformedLayerID = errors.New("malformed layer identifier")

// LayerID builds the opaque identifier embedded into capability tokens,
// e.g. "0191f0c4-..._2".
func LayerID(recordID string, layer Layer) string {
	return recordID + "_" + strconv.Itoa(int(layer))
}

// ParseLayerID splits a layer identifier back into record ID and layer.
func ParseLayerID(layerID string) (string, Layer, error) {
	parts := strings.Split(layerID, "_")
	if len(parts) != 2 || parts[0] == "" {
		return "", 0, ErrMalformedLayerID
	}

	n, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", 0, ErrMalformedLayerID
	}

	return parts[0], Layer(n), nil
}

// LayerStream is a readable stored layer returned by the delivery gate.
// Content is positioned at offset zero and must be closed by the caller.
type LayerStream struct {
	Content     io.ReadSeekCloser
	ContentType string
	Name        string
	Size        int64
	ModTime     time.Time
}
