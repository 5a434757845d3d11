package validators

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/MKhiriev/cryptpix/models"
)

const (
	FieldName        = "name"
	FieldData        = "data"
	FieldSize        = "size"
	FieldRecordID    = "record_id"
	FieldWidth       = "width"
	FieldHeight      = "height"
	FieldBreakpoints = "breakpoints"
)

const (
	maxNameLen     = 255
	maxBreakpoints = 16
)

// dimensionPattern accepts "320", "320px" and "50%".
var dimensionPattern = regexp.MustCompile(`^[0-9]{1,5}(px|%)?$`)

type ImageValidator struct {
	maxUploadSize int64
}

// NewImageValidator returns a [Validator] for [models.IngestRequest],
// [models.PresentationOptions] and record ID strings. maxUploadSize <= 0
// disables the size check.
func NewImageValidator(maxUploadSize int64) Validator {
	return &ImageValidator{maxUploadSize: maxUploadSize}
}

func (v *ImageValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.IngestRequest:
		return v.validateIngestRequest(ctx, value, fields...)
	case *models.IngestRequest:
		return v.validateIngestRequest(ctx, *value, fields...)

	case models.PresentationOptions:
		return v.validatePresentationOptions(ctx, value, fields...)
	case *models.PresentationOptions:
		return v.validatePresentationOptions(ctx, *value, fields...)

	case string:
		return v.validateRecordID(ctx, value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *ImageValidator) validateIngestRequest(_ context.Context, req models.IngestRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldData, FieldSize}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			name := strings.TrimSpace(req.Name)
			if name == "" {
				return ErrEmptyName
			}
			if len(name) > maxNameLen || !utf8.ValidString(name) || strings.ContainsRune(name, 0) {
				return ErrNameTooLong
			}
		case FieldData:
			if len(req.Data) == 0 {
				return ErrEmptyData
			}
		case FieldSize:
			if v.maxUploadSize > 0 && int64(len(req.Data)) > v.maxUploadSize {
				return ErrDataTooLarge
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ImageValidator) validatePresentationOptions(_ context.Context, opts models.PresentationOptions, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldWidth, FieldHeight, FieldBreakpoints}
	}

	for _, f := range fields {
		switch f {
		case FieldWidth:
			if !validDimension(opts.Width) {
				return fmt.Errorf("%w: width %q", ErrInvalidDimension, opts.Width)
			}
		case FieldHeight:
			if !validDimension(opts.Height) {
				return fmt.Errorf("%w: height %q", ErrInvalidDimension, opts.Height)
			}
		case FieldBreakpoints:
			if len(opts.Breakpoints) > maxBreakpoints {
				return ErrTooManyBreakpoint
			}
			for i, bp := range opts.Breakpoints {
				if bp.MaxWidth <= 0 || bp.Width == "" || !validDimension(bp.Width) {
					return fmt.Errorf("%w at index %d", ErrInvalidBreakpoint, i)
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ImageValidator) validateRecordID(_ context.Context, id string, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldRecordID}
	}

	for _, f := range fields {
		switch f {
		case FieldRecordID:
			if err := uuid.Validate(id); err != nil {
				return ErrInvalidRecordID
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validDimension reports whether s is empty or a pixel/percent size.
func validDimension(s string) bool {
	return s == "" || dimensionPattern.MatchString(s)
}
