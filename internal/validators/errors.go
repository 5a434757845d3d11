package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyName         = errors.New("file name is required")
	ErrNameTooLong       = errors.New("file name is too long")
	ErrEmptyData         = errors.New("image data is required")
	ErrDataTooLarge      = errors.New("image data exceeds the upload limit")
	ErrInvalidRecordID   = errors.New("invalid record ID")
	ErrInvalidDimension  = errors.New("invalid dimension")
	ErrInvalidBreakpoint = errors.New("invalid breakpoint")
	ErrTooManyBreakpoint = errors.New("too many breakpoints")
)
