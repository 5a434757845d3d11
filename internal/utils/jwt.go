package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/cryptpix/models"
	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidTokenParams is returned by GenerateLayerToken for missing inputs.
var ErrInvalidTokenParams = errors.New("invalid params for generating layer token")

// layerTokenMethod is the only accepted signing algorithm.
var layerTokenMethod = jwt.SigningMethodHS256

// GenerateLayerToken creates a compact HMAC-SHA256 JWT carrying value.
//
// The token includes the following claims:
//   - Issuer   (iss): identifies the deployment that issued the token
//   - IssuedAt (iat): issuedAt, truncated to whole seconds
//   - iat_ns        : issuedAt in Unix nanoseconds, used for age checks
//   - val           : the canonical payload the token vouches for
//
// No exp claim is written: the lifetime is decided by the verifier, which
// compares iat against its own TTL.
//
// Example usage:
//
//	signed, err := utils.GenerateLayerToken("cryptpix", "rec_1:digest", time.Now(), key)
func GenerateLayerToken(issuer, value string, issuedAt time.Time, signKey []byte) (string, error) {
	if issuer == "" || value == "" || len(signKey) == 0 {
		return "", ErrInvalidTokenParams
	}

	claims := &models.LayerClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   issuer,
			IssuedAt: jwt.NewNumericDate(issuedAt),
		},
		Value:        value,
		IssuedAtNano: issuedAt.UnixNano(),
	}

	signed, err := jwt.NewWithClaims(layerTokenMethod, claims).SignedString(signKey)
	if err != nil {
		return "", fmt.Errorf("error occurred during signing layer token: %w", err)
	}
	return signed, nil
}

// ValidateLayerToken verifies the signature, algorithm and issuer of
// tokenString and returns its claims.
//
// Validation includes:
//   - Signature verification with signKey, HS256 only
//   - Issuer (iss) claim check against issuer
//   - Presence of iat, which must not lie in the future according to now
//   - Presence of iat_ns, within the same second as iat
//   - Presence of the val claim
//
// now may be nil, in which case time.Now is used.
func ValidateLayerToken(tokenString string, signKey []byte, issuer string, now func() time.Time) (*models.LayerClaims, error) {
	if now == nil {
		now = time.Now
	}

	claims := &models.LayerClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return signKey, nil
	},
		jwt.WithValidMethods([]string{layerTokenMethod.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(now),
	)
	if err != nil {
		return nil, fmt.Errorf("error occurred validating layer token: %w", err)
	}

	if claims.IssuedAt == nil {
		return nil, errors.New("layer token has no iat claim")
	}
	issued := claims.IssuedTime()
	if issued.IsZero() || issued.Unix() != claims.IssuedAt.Unix() {
		return nil, errors.New("layer token has no valid iat_ns claim")
	}
	if claims.Value == "" {
		return nil, errors.New("layer token has no val claim")
	}

	return claims, nil
}
