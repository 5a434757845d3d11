package obfuscate

import (
	"errors"
	"fmt"
)

var (
	// ErrDecode matches every [DecodeError] via [errors.Is].
	ErrDecode = errors.New("source image cannot be decoded")

	// ErrEncode is returned when a derivative cannot be encoded as PNG.
	ErrEncode = errors.New("derivative cannot be encoded")

	// ErrInvalidTileSize is returned by [Split] for tile sizes below 1.
	ErrInvalidTileSize = errors.New("tile size must be positive")

	// ErrEmptyImage is returned when the source has no pixels.
	ErrEmptyImage = errors.New("image has no pixels")
)

// DecodeError reports that ingestion failed because the source bytes are not
// a readable image. No derivative is produced when it is returned.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: %v", ErrDecode, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is reports whether target is [ErrDecode].
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}
