package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/keyring_mock.go -package=mock

// KeyRing holds the server-side key material derived from the configured
// secret. It knows nothing about tokens, layers or HTTP.
//
// Two independent subkeys are derived so that a leak of session digests can
// never help forge a signature:
//
//	signing key = HKDF(secret, "cryptpix layer token")
//	session key = HKDF(secret, "cryptpix session digest")
type KeyRing interface {
	// SigningKey returns the HMAC key used to sign layer tokens.
	SigningKey() []byte

	// SessionDigest returns the hex HMAC-SHA256 of sessionID under the
	// session key. The digest is embedded in tokens instead of the raw
	// session identifier.
	SessionDigest(sessionID string) string
}
