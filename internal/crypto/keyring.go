// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"github.com/MKhiriev/cryptpix/internal/utils"
	"golang.org/x/crypto/hkdf"
)

const (
	// keyLen is the length of every derived subkey (256 bits).
	keyLen = 32

	hkdfSalt          = "cryptpix"
	signingKeyInfo    = "cryptpix layer token"
	sessionDigestInfo = "cryptpix session digest"
)

// ErrEmptySecret is returned by [NewKeyRing] for an empty secret.
var ErrEmptySecret = errors.New("secret key is empty")

// keyRing is the private implementation of [KeyRing].
type keyRing struct {
	signingKey []byte
	sessionKey []byte
}

// NewKeyRing derives the signing and session subkeys from secret using
// HKDF-SHA256. The same secret always yields the same keys, so tokens stay
// valid across restarts of a deployment.
func NewKeyRing(secret string) (KeyRing, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	signingKey, err := derive(secret, signingKeyInfo)
	if err != nil {
		return nil, fmt.Errorf("derive signing key: %w", err)
	}
	sessionKey, err := derive(secret, sessionDigestInfo)
	if err != nil {
		return nil, fmt.Errorf("derive session key: %w", err)
	}

	return &keyRing{signingKey: signingKey, sessionKey: sessionKey}, nil
}

// SigningKey implements [KeyRing].
func (k *keyRing) SigningKey() []byte {
	return k.signingKey
}

// SessionDigest implements [KeyRing].
func (k *keyRing) SessionDigest(sessionID string) string {
	return utils.HashString(sessionID, k.sessionKey)
}

func derive(secret, info string) ([]byte, error) {
	key := make([]byte, keyLen)
	r := hkdf.New(sha256.New, []byte(secret), []byte(hkdfSalt), []byte(info))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, err
	}
	return key, nil
}
