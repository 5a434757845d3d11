package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/cryptpix/internal/logger"
	"github.com/MKhiriev/cryptpix/internal/utils"
	"github.com/MKhiriev/cryptpix/models"
)

const (
	formFieldImage         = "image"
	formFieldUseSplit      = "use_split"
	formFieldUseDistortion = "use_distortion"

	formatJSON = "json"
	formatHTML = "html"
)

func presentationPath(recordID string) string {
	return "/api/images/" + recordID + "/presentation"
}

func (h *Handler) uploadImage(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r).With().Str("func", "*Handler.uploadImage").Logger()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+multipartOverhead)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, ErrUploadTooLarge)
			return
		}
		writeError(w, r, fmt.Errorf("%w: %w", ErrNoImageFile, err))
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	file, header, err := r.FormFile(formFieldImage)
	if err != nil {
		writeError(w, r, ErrNoImageFile)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Err(err).Msg("error reading uploaded file")
		writeError(w, r, err)
		return
	}

	useSplit, err := formBool(r, formFieldUseSplit, h.defaultUseSplit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	useDistortion, err := formBool(r, formFieldUseDistortion, h.defaultUseDistortion)
	if err != nil {
		writeError(w, r, err)
		return
	}

	record, err := h.services.IngestService.Ingest(r.Context(), models.IngestRequest{
		Name:          header.Filename,
		Data:          data,
		UseSplit:      useSplit,
		UseDistortion: useDistortion,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Str("record_id", record.ID).Bool("use_split", useSplit).
		Bool("use_distortion", useDistortion).Msg("image ingested")

	_, _ = utils.WriteJSON(w, models.ImageResponse{
		ImageRecord:     record,
		PresentationURL: presentationPath(record.ID),
	}, http.StatusCreated)
}

func (h *Handler) getImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	record, err := h.services.IngestService.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, models.ImageResponse{
		ImageRecord:     record,
		PresentationURL: presentationPath(record.ID),
	}, http.StatusOK)
}

func (h *Handler) deleteImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.services.IngestService.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// getPresentation composes fresh layer URLs for the caller's session. The
// answer is never cacheable since the URLs expire.
func (h *Handler) getPresentation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sessionID, _ := utils.GetSessionIDFromContext(r.Context())

	opts, format, err := parsePresentationQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	presentation, err := h.services.PresentationService.Compose(r.Context(), id, sessionID, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	if format == formatHTML {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, presentation.HTML)
		return
	}

	_, _ = utils.WriteJSON(w, presentation, http.StatusOK)
}

func (h *Handler) getStylesheet(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, h.services.PresentationService.Stylesheet())
}

// formBool reads an optional boolean form field. An absent or empty field
// yields def.
func formBool(r *http.Request, field string, def bool) (bool, error) {
	raw := r.FormValue(field)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s=%q", ErrInvalidPolicyField, field, raw)
	}
	return v, nil
}

// parsePresentationQuery maps the query string onto presentation options.
// Sizes are checked by the presentation service validator.
func parsePresentationQuery(r *http.Request) (models.PresentationOptions, string, error) {
	q := r.URL.Query()

	opts := models.PresentationOptions{
		Width:  q.Get("width"),
		Height: q.Get("height"),
		Alt:    q.Get("alt"),
	}

	if raw := q.Get("parent_size"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return opts, "", fmt.Errorf("%w: parent_size=%q", ErrInvalidQuery, raw)
		}
		opts.ParentSize = v
	}

	if raw := q.Get("breakpoints"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &opts.Breakpoints); err != nil {
			return opts, "", fmt.Errorf("%w: breakpoints: %w", ErrInvalidQuery, err)
		}
	}

	format := q.Get("format")
	switch format {
	case "", formatJSON:
		format = formatJSON
	case formatHTML:
	default:
		return opts, "", fmt.Errorf("%w: format=%q", ErrInvalidQuery, format)
	}

	return opts, format, nil
}
