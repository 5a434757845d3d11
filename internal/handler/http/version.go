package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/cryptpix/internal/utils"
)

// getServerVersion answers with the bare version string, or with the full
// build info when the client asks for JSON.
func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		_, _ = utils.WriteJSON(w, h.services.AppInfoService.GetBuildInfo(r.Context()), http.StatusOK)
		return
	}

	serverVersion := h.services.AppInfoService.GetAppVersion(r.Context())
	_, _ = utils.WriteText(w, serverVersion, http.StatusOK)
}
