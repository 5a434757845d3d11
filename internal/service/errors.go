package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidToken is the single verdict for every failed token check:
	// bad signature, wrong issuer or algorithm, expiry, session mismatch.
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrTokenCreationFailed = errors.New("token creation failed")

	ErrForbidden = errors.New("forbidden")
	ErrNotFound  = errors.New("image not found")

	ErrIngestionFailed = errors.New("image ingestion failed")
	ErrPresentation    = errors.New("error rendering presentation")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
