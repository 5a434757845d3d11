package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/cryptpix/internal/logger"
	"github.com/MKhiriev/cryptpix/internal/obfuscate"
	"github.com/MKhiriev/cryptpix/internal/service"
	"github.com/MKhiriev/cryptpix/internal/store"
	"github.com/MKhiriev/cryptpix/internal/utils"
	"github.com/MKhiriev/cryptpix/internal/validators"
	"github.com/MKhiriev/cryptpix/models"
)

// errorStatuses is checked in order; more specific errors come first since
// one error may wrap several sentinels.
var errorStatuses = []struct {
	err    error
	status int
}{
	{ErrUploadTooLarge, http.StatusRequestEntityTooLarge},
	{validators.ErrDataTooLarge, http.StatusRequestEntityTooLarge},
	{ErrNoImageFile, http.StatusBadRequest},
	{ErrInvalidPolicyField, http.StatusBadRequest},
	{ErrInvalidQuery, http.StatusBadRequest},
	{service.ErrInvalidDataProvided, http.StatusBadRequest},

	{obfuscate.ErrDecode, http.StatusUnprocessableEntity},
	{obfuscate.ErrEmptyImage, http.StatusUnprocessableEntity},

	{service.ErrForbidden, http.StatusForbidden},
	{service.ErrInvalidToken, http.StatusForbidden},
	{service.ErrNotFound, http.StatusNotFound},
	{store.ErrImageNotFound, http.StatusNotFound},
	{store.ErrImageAlreadyExists, http.StatusConflict},

	{service.ErrIngestionFailed, http.StatusInternalServerError},
	{service.ErrPresentation, http.StatusInternalServerError},
	{store.ErrBuildingSQLQuery, http.StatusInternalServerError},
	{store.ErrExecutingQuery, http.StatusInternalServerError},
	{store.ErrExecutingStatement, http.StatusInternalServerError},
	{store.ErrScanningRow, http.StatusInternalServerError},
}

func statusFromError(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// writeError answers an API request with a JSON error body. Server-side
// failures are reported with the generic status text only.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)

	message := err.Error()
	if status >= http.StatusInternalServerError {
		logger.FromRequest(r).Err(err).Int("status", status).Msg("request failed")
		message = http.StatusText(status)
	} else {
		logger.FromRequest(r).Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	_, _ = utils.WriteJSON(w, models.ErrorResponse{Error: message}, status)
}
