package utils

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/cryptpix/models"
	"github.com/golang-jwt/jwt/v5"
)

var testSignKey = []byte("0123456789abcdef0123456789abcdef")

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestGenerateLayerToken_RoundTrip(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	signed, err := GenerateLayerToken("cryptpix", "rec_1:abc", issuedAt, testSignKey)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if signed == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := ValidateLayerToken(signed, testSignKey, "cryptpix", fixedNow(issuedAt.Add(time.Minute)))
	if err != nil {
		t.Fatalf("expected valid token, got: %v", err)
	}
	if claims.Value != "rec_1:abc" {
		t.Errorf("expected val 'rec_1:abc', got %q", claims.Value)
	}
	if !claims.IssuedAt.Time.Equal(issuedAt) {
		t.Errorf("expected iat %v, got %v", issuedAt, claims.IssuedAt.Time)
	}
}

func TestGenerateLayerToken_KeepsSubSecondIssueTime(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 900_000_000, time.UTC)

	signed, err := GenerateLayerToken("cryptpix", "rec_1:abc", issuedAt, testSignKey)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	claims, err := ValidateLayerToken(signed, testSignKey, "cryptpix", fixedNow(issuedAt.Add(50*time.Millisecond)))
	if err != nil {
		t.Fatalf("expected valid token, got: %v", err)
	}
	if !claims.IssuedTime().Equal(issuedAt) {
		t.Errorf("expected exact issue time %v, got %v", issuedAt, claims.IssuedTime())
	}
	if claims.IssuedAt.Time.Equal(issuedAt) {
		t.Error("registered iat is expected to be whole seconds")
	}
}

func TestGenerateLayerToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name   string
		issuer string
		value  string
		key    []byte
	}{
		{"empty issuer", "", "v", testSignKey},
		{"empty value", "iss", "", testSignKey},
		{"empty key", "iss", "v", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateLayerToken(tt.issuer, tt.value, time.Now(), tt.key)
			if !errors.Is(err, ErrInvalidTokenParams) {
				t.Errorf("expected ErrInvalidTokenParams, got %v", err)
			}
		})
	}
}

func TestValidateLayerToken_Rejects(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	valid, _ := GenerateLayerToken("cryptpix", "rec_1:abc", issuedAt, testSignKey)

	noneToken, _ := jwt.NewWithClaims(jwt.SigningMethodNone, &models.LayerClaims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "cryptpix", IssuedAt: jwt.NewNumericDate(issuedAt)},
		Value:            "rec_1:abc",
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)

	hs512, _ := jwt.NewWithClaims(jwt.SigningMethodHS512, &models.LayerClaims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "cryptpix", IssuedAt: jwt.NewNumericDate(issuedAt)},
		Value:            "rec_1:abc",
	}).SignedString(testSignKey)

	noIat, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, &models.LayerClaims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "cryptpix"},
		Value:            "rec_1:abc",
	}).SignedString(testSignKey)

	noIatNano, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, &models.LayerClaims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "cryptpix", IssuedAt: jwt.NewNumericDate(issuedAt)},
		Value:            "rec_1:abc",
	}).SignedString(testSignKey)

	skewedNano, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, &models.LayerClaims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "cryptpix", IssuedAt: jwt.NewNumericDate(issuedAt)},
		Value:            "rec_1:abc",
		IssuedAtNano:     issuedAt.Add(-time.Hour).UnixNano(),
	}).SignedString(testSignKey)

	parts := strings.Split(valid, ".")
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	tests := []struct {
		name   string
		token  string
		key    []byte
		issuer string
		now    time.Time
	}{
		{"wrong key", valid, []byte("another-key-another-key-another-k"), "cryptpix", issuedAt},
		{"wrong issuer", valid, testSignKey, "someone-else", issuedAt},
		{"tampered payload", tampered, testSignKey, "cryptpix", issuedAt},
		{"garbage", "not-a-token", testSignKey, "cryptpix", issuedAt},
		{"empty", "", testSignKey, "cryptpix", issuedAt},
		{"alg none", noneToken, testSignKey, "cryptpix", issuedAt},
		{"other hmac alg", hs512, testSignKey, "cryptpix", issuedAt},
		{"issued in the future", valid, testSignKey, "cryptpix", issuedAt.Add(-time.Minute)},
		{"missing iat", noIat, testSignKey, "cryptpix", issuedAt},
		{"missing iat_ns", noIatNano, testSignKey, "cryptpix", issuedAt},
		{"iat_ns outside iat second", skewedNano, testSignKey, "cryptpix", issuedAt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ValidateLayerToken(tt.token, tt.key, tt.issuer, fixedNow(tt.now)); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}
