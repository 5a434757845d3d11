// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/cryptpix/internal/config"
	"github.com/MKhiriev/cryptpix/internal/crypto"
	"github.com/MKhiriev/cryptpix/internal/logger"
	"github.com/MKhiriev/cryptpix/internal/utils"
)

// valueSeparator joins the layer ID and the session digest in the signed
// payload. Neither part can contain it.
const valueSeparator = ":"

// tokenService is the concrete implementation of TokenService.
//
// A token is an HS256 JWT whose "val" claim is
//
//	<layerID>:<HMAC-SHA256(sessionID)>
//
// The raw session identifier never leaves the server. Lifetime is not
// stored in the token: Verify compares iat against the TTL it is given.
type tokenService struct {
	keys crypto.KeyRing

	// issuer is the "iss" claim written and required on every token.
	issuer string

	// now is the clock used for both iat and age checks.
	now func() time.Time

	logger *logger.Logger
}

// NewTokenService constructs a TokenService signing with keys.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewTokenService(keys crypto.KeyRing, cfg config.App, logger *logger.Logger) TokenService {
	return &tokenService{
		keys:   keys,
		issuer: cfg.TokenIssuer,
		now:    time.Now,
		logger: logger,
	}
}

// Issue implements [TokenService].
//
// Returns ErrTokenCreationFailed if either identifier is empty or the
// layer ID contains the value separator.
func (s *tokenService) Issue(ctx context.Context, layerID, sessionID string) (string, error) {
	log := logger.FromContext(ctx)

	if layerID == "" || sessionID == "" || strings.Contains(layerID, valueSeparator) {
		log.Error().Str("func", "*tokenService.Issue").Str("layer_id", layerID).Msg("invalid token params")
		return "", fmt.Errorf("%w: %w", ErrTokenCreationFailed, utils.ErrInvalidTokenParams)
	}

	value := layerID + valueSeparator + s.keys.SessionDigest(sessionID)
	token, err := utils.GenerateLayerToken(s.issuer, value, s.now(), s.keys.SigningKey())
	if err != nil {
		log.Err(err).Str("func", "*tokenService.Issue").Str("layer_id", layerID).Msg("error signing layer token")
		return "", fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// Verify implements [TokenService].
//
// Every check is evaluated before the verdict so that the work done does
// not depend on which check fails. The token is valid iff the signature,
// algorithm and issuer are correct, 0 <= now - iat_ns < ttl, and the embedded
// session digest equals the digest of expectedSessionID.
func (s *tokenService) Verify(ctx context.Context, token, expectedSessionID string, ttl time.Duration) (string, error) {
	now := s.now()

	claims, parseErr := utils.ValidateLayerToken(token, s.keys.SigningKey(), s.issuer, func() time.Time { return now })

	var (
		value    string
		issuedAt time.Time
	)
	if parseErr == nil {
		value = claims.Value
		issuedAt = claims.IssuedTime()
	}

	layerID, digest, found := cutLast(value, valueSeparator)
	sessionOK := utils.EqualDigests(digest, s.keys.SessionDigest(expectedSessionID))
	age := now.Sub(issuedAt)
	fresh := ttl > 0 && age >= 0 && age < ttl

	if parseErr != nil || !found || layerID == "" || expectedSessionID == "" || !sessionOK || !fresh {
		logger.FromContext(ctx).Debug().
			Str("func", "*tokenService.Verify").
			AnErr("parse_error", parseErr).
			Bool("session_ok", sessionOK).
			Bool("fresh", fresh).
			Msg("layer token rejected")
		return "", ErrInvalidToken
	}

	return layerID, nil
}

// cutLast slices s around the last instance of sep.
func cutLast(s, sep string) (before, after string, found bool) {
	i := strings.LastIndex(s, sep)
	if i < 0 {
		return "", "", false
	}
	return s[:i], s[i+len(sep):], true
}
