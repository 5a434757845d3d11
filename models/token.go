package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// LayerClaims is the claim set of a layer capability token.
//
// It embeds [jwt.RegisteredClaims] for the issuer and issued-at claims and
// adds Value, the canonical "<layerID>:<session digest>" string that binds
// the token to exactly one layer and one session.
type LayerClaims struct {
	jwt.RegisteredClaims

	// Value is the signed canonical payload.
	Value string `json:"val"`

	// IssuedAtNano is the exact issue instant in Unix nanoseconds. The
	// registered iat claim only carries whole seconds.
	IssuedAtNano int64 `json:"iat_ns"`
}

// IssuedTime returns the exact issue instant, or the zero time if the
// claim is missing.
func (c *LayerClaims) IssuedTime() time.Time {
	if c.IssuedAtNano <= 0 {
		return time.Time{}
	}
	return time.Unix(0, c.IssuedAtNano)
}
