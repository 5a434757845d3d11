// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/cryptpix/internal/logger"
	"github.com/MKhiriev/cryptpix/internal/service"
	"github.com/MKhiriev/cryptpix/internal/utils"
)

const secureImagePrefix = service.SecureImagePath

// secureImage streams the layer addressed by the token in the path. Every
// failure is answered in plain text with no detail on which check failed.
func (h *Handler) secureImage(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r).With().Str("func", "*Handler.secureImage").Logger()

	token := chi.URLParam(r, "token")
	sessionID, _ := utils.GetSessionIDFromContext(r.Context())

	w.Header().Set("Cache-Control", "private, no-store")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	stream, err := h.services.DeliveryGate.Resolve(r.Context(), token, sessionID)
	switch {
	case errors.Is(err, service.ErrForbidden):
		_, _ = utils.WriteText(w, msgForbidden, http.StatusForbidden)
		return
	case err != nil:
		if !errors.Is(err, service.ErrNotFound) {
			log.Err(err).Msg("layer could not be resolved")
		}
		_, _ = utils.WriteText(w, msgNotFound, http.StatusNotFound)
		return
	}
	defer func() {
		if cerr := stream.Content.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("closing layer stream")
		}
	}()

	w.Header().Set("Content-Type", stream.ContentType)
	http.ServeContent(w, r, stream.Name, stream.ModTime, stream.Content)
}
