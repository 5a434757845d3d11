package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/cryptpix/internal/validators"
	"github.com/MKhiriev/cryptpix/models"
)

// IngestServiceWrapper defines middleware composition for IngestService.
// It is kept out of interfaces.go so that the generated mocks never depend
// on this package.
type IngestServiceWrapper interface {
	Wrap(IngestService) IngestService
}

// IngestValidationService rejects malformed uploads and record IDs before
// they reach the wrapped IngestService.
type IngestValidationService struct {
	inner     IngestService
	validator validators.Validator
}

func NewIngestValidationService(validator validators.Validator) IngestServiceWrapper {
	return &IngestValidationService{validator: validator}
}

func (v *IngestValidationService) Wrap(inner IngestService) IngestService {
	v.inner = inner
	return v
}

func (v *IngestValidationService) Ingest(ctx context.Context, req models.IngestRequest) (models.ImageRecord, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.ImageRecord{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.Ingest(ctx, req)
}

func (v *IngestValidationService) Get(ctx context.Context, id string) (models.ImageRecord, error) {
	if err := v.validator.Validate(ctx, id, validators.FieldRecordID); err != nil {
		return models.ImageRecord{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.Get(ctx, id)
}

func (v *IngestValidationService) Delete(ctx context.Context, id string) error {
	if err := v.validator.Validate(ctx, id, validators.FieldRecordID); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.Delete(ctx, id)
}
