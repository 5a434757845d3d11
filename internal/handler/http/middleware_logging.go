package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/MKhiriev/cryptpix/internal/logger"
)

// withLogging writes one access log entry per request. Token path segments
// are not logged verbatim: a layer URL is a bearer capability.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		start := time.Now()

		uri := redactURI(r.URL.Path)
		method := r.Method

		lw := &responseWriter{
			ResponseWriter: w,
		}

		next.ServeHTTP(lw, r)

		duration := time.Since(start)

		log.Info().
			Str("uri", uri).
			Str("method", method).
			Int("status", lw.status).
			Dur("duration", duration).
			Int("size", lw.size).
			Send()
	})
}

func redactURI(path string) string {
	if strings.HasPrefix(path, secureImagePrefix) {
		return secureImagePrefix + "{token}"
	}
	return path
}
