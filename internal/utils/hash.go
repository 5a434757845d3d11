package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Hash computes an HMAC-SHA256 digest of data under key.
//
// A new HMAC instance is created on each call, so Hash is safe for
// concurrent use.
//
// Example usage:
//
//	digest := utils.Hash([]byte("some data"), key)
func Hash(data, key []byte) []byte {
	hasher := hmac.New(sha256.New, key)
	hasher.Write(data)
	return hasher.Sum(nil)
}

// HashString computes an HMAC-SHA256 digest of data under key and returns
// it hex-encoded.
//
// Example usage:
//
//	digest := utils.HashString(sessionID, sessionKey)
func HashString(data string, key []byte) string {
	return hex.EncodeToString(Hash([]byte(data), key))
}

// EqualDigests reports whether two hex digests are equal, in constant time.
func EqualDigests(a, b string) bool {
	return hmac.Equal([]byte(a), []byte(b))
}
