package http

import (
	"net/http"

	"github.com/MKhiriev/cryptpix/internal/utils"
)

const sessionCookieName = "cryptpix_session"

// withSession makes sure every request carries a viewer session ID. An
// absent or malformed cookie is replaced with a fresh one; layer tokens
// minted for the old value then stop verifying.
func (h *Handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sessionID string
		if cookie, err := r.Cookie(sessionCookieName); err == nil && h.ids.Valid(cookie.Value) {
			sessionID = cookie.Value
		} else {
			sessionID = h.ids.Generate()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookieName,
				Value:    sessionID,
				Path:     "/",
				HttpOnly: true,
				Secure:   r.TLS != nil,
				SameSite: http.SameSiteLaxMode,
			})
		}

		next.ServeHTTP(w, r.WithContext(utils.WithSessionID(r.Context(), sessionID)))
	})
}
