package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/MKhiriev/cryptpix/internal/config"
	"github.com/MKhiriev/cryptpix/internal/logger"
	"github.com/MKhiriev/cryptpix/internal/utils"
	"github.com/MKhiriev/cryptpix/models"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises adapterCfg.HTTPAddress and configures the
// underlying client with the resolved base URL and request timeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout)

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyAddress
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) GetVersion(ctx context.Context) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		Get("/api/version/")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}

// UploadImage implements [ServerAdapter]. The image is sent as the "image"
// part of a multipart form; policy fields are only sent when set.
func (h *httpServerAdapter) UploadImage(ctx context.Context, req UploadRequest) (models.ImageResponse, error) {
	form := map[string]string{}
	if req.UseSplit != nil {
		form["use_split"] = strconv.FormatBool(*req.UseSplit)
	}
	if req.UseDistortion != nil {
		form["use_distortion"] = strconv.FormatBool(*req.UseDistortion)
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetFileReader("image", req.FileName, bytes.NewReader(req.Data)).
		SetFormData(form).
		Post("/api/images")
	if err != nil {
		return models.ImageResponse{}, fmt.Errorf("upload request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ImageResponse{}, err
	}

	var record models.ImageResponse
	if err = json.Unmarshal(resp.Body(), &record); err != nil {
		return models.ImageResponse{}, fmt.Errorf("decode upload response: %w", err)
	}

	h.logger.Debug().Str("record_id", record.ID).Msg("image uploaded")
	return record, nil
}

func (h *httpServerAdapter) GetImage(ctx context.Context, id string) (models.ImageResponse, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("id", id).
		Get("/api/images/{id}")
	if err != nil {
		return models.ImageResponse{}, fmt.Errorf("get image request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ImageResponse{}, err
	}

	var record models.ImageResponse
	if err = json.Unmarshal(resp.Body(), &record); err != nil {
		return models.ImageResponse{}, fmt.Errorf("decode image response: %w", err)
	}
	return record, nil
}

func (h *httpServerAdapter) DeleteImage(ctx context.Context, id string) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("id", id).
		Delete("/api/images/{id}")
	if err != nil {
		return fmt.Errorf("delete image request: %w", err)
	}

	return mapHTTPError(resp)
}

// GetPresentation implements [ServerAdapter]. Layer URLs in the result are
// bound to this adapter's session cookie.
func (h *httpServerAdapter) GetPresentation(ctx context.Context, id string, opts models.PresentationOptions) (models.Presentation, error) {
	query, err := presentationQuery(opts)
	if err != nil {
		return models.Presentation{}, err
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("id", id).
		SetQueryParamsFromValues(query).
		Get("/api/images/{id}/presentation")
	if err != nil {
		return models.Presentation{}, fmt.Errorf("presentation request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Presentation{}, err
	}

	var p models.Presentation
	if err = json.Unmarshal(resp.Body(), &p); err != nil {
		return models.Presentation{}, fmt.Errorf("decode presentation response: %w", err)
	}
	return p, nil
}

func (h *httpServerAdapter) FetchLayer(ctx context.Context, layerURL string) ([]byte, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		Get(layerURL)
	if err != nil {
		return nil, fmt.Errorf("fetch layer request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return resp.Body(), nil
}

func presentationQuery(opts models.PresentationOptions) (url.Values, error) {
	q := url.Values{}
	q.Set("format", "json")
	if opts.Width != "" {
		q.Set("width", opts.Width)
	}
	if opts.Height != "" {
		q.Set("height", opts.Height)
	}
	if opts.ParentSize {
		q.Set("parent_size", "true")
	}
	if opts.Alt != "" {
		q.Set("alt", opts.Alt)
	}
	if len(opts.Breakpoints) > 0 {
		raw, err := json.Marshal(opts.Breakpoints)
		if err != nil {
			return nil, fmt.Errorf("encode breakpoints: %w", err)
		}
		q.Set("breakpoints", string(raw))
	}
	return q, nil
}
