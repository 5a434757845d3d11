// Package utils provides general-purpose helpers used across the server and
// the client: type-safe context keys, keyed hashing, layer token signing,
// identifier generation, HTTP response writing and HTTP client setup.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// A dedicated type prevents collisions with string keys set by other packages.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// SessionIDCtxKey is the key under which the viewer's session identifier is
// stored in the request context by the session middleware.
var SessionIDCtxKey = contextKey("sessionID")

// WithSessionID returns a copy of ctx carrying sessionID.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, SessionIDCtxKey, sessionID)
}

// GetSessionIDFromContext retrieves the session identifier from the context.
//
// Returns ok == false when the value is missing, empty or of an unexpected
// type.
//
// Example usage:
//
//	sessionID, ok := utils.GetSessionIDFromContext(ctx)
//	if !ok {
//	    // no viewer session, refuse to mint tokens
//	}
func GetSessionIDFromContext(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(SessionIDCtxKey).(string)
	return sessionID, ok && sessionID != ""
}
