// Package http implements the HTTP transport layer of cryptpix.
//
// It exposes route wiring, request handlers, and middleware. Cross-cutting
// concerns such as viewer sessions, request tracing, access logging and
// response compression are handled in this package before requests are
// delegated to the service layer.
//
// The only route that returns image bytes is /secure-image/{token}. It
// answers with plain text on failure and never says why a token was
// rejected.
package http
