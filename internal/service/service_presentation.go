package service

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"

	"github.com/MKhiriev/cryptpix/internal/logger"
	"github.com/MKhiriev/cryptpix/internal/obfuscate"
	"github.com/MKhiriev/cryptpix/internal/store"
	"github.com/MKhiriev/cryptpix/internal/validators"
	"github.com/MKhiriev/cryptpix/models"
)

var (
	//go:embed templates/presentation.html.tmpl
	presentationTemplate string

	//go:embed templates/stack.css
	stackStylesheet string
)

// presentationView is the data handed to the markup template.
type presentationView struct {
	URLs        []string
	Alt         string
	Width       int
	Height      int
	TileSize    int
	Style       template.CSS
	Breakpoints string
	Options     models.PresentationOptions
}

type presentationService struct {
	images    store.ImageRepository
	gate      DeliveryGate
	validator validators.Validator
	tmpl      *template.Template

	logger *logger.Logger
}

func NewPresentationService(images store.ImageRepository, gate DeliveryGate, validator validators.Validator, logger *logger.Logger) (PresentationService, error) {
	tmpl, err := template.New("presentation").Parse(presentationTemplate)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPresentation, err)
	}

	return &presentationService{
		images:    images,
		gate:      gate,
		validator: validator,
		tmpl:      tmpl,
		logger:    logger,
	}, nil
}

// Compose implements [PresentationService].
//
// Layer URLs are minted on every call and are bound to sessionID. The
// distortion filter, when present, is applied once to the container and
// never to individual layers.
func (s *presentationService) Compose(ctx context.Context, recordID, sessionID string, opts models.PresentationOptions) (models.Presentation, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, recordID, validators.FieldRecordID); err != nil {
		return models.Presentation{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	if err := s.validator.Validate(ctx, opts); err != nil {
		return models.Presentation{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	record, err := s.images.Get(ctx, recordID)
	if errors.Is(err, store.ErrImageNotFound) {
		return models.Presentation{}, ErrNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*presentationService.Compose").Str("id", recordID).Msg("error loading image record")
		return models.Presentation{}, fmt.Errorf("%w: %w", ErrPresentation, err)
	}

	layers := []models.Layer{models.LayerPrimary}
	if record.UseSplit {
		layers = append(layers, models.LayerSecondary)
	}

	urls := make([]string, 0, len(layers))
	for _, layer := range layers {
		url, err := s.gate.LayerURL(ctx, record.ID, layer, sessionID)
		if err != nil {
			log.Err(err).Str("func", "*presentationService.Compose").Str("id", record.ID).Msg("error minting layer url")
			return models.Presentation{}, fmt.Errorf("%w: %w", ErrPresentation, err)
		}
		urls = append(urls, url)
	}

	p := models.Presentation{
		RecordID: record.ID,
		URLs:     urls,
		Width:    deref(record.ImageWidth),
		Height:   deref(record.ImageHeight),
	}
	if record.UseSplit {
		p.TileSize = record.TileSize
	}
	if record.UseDistortion && record.HueRotation != nil {
		p.Filter = obfuscate.CSSFilter(*record.HueRotation)
	}

	view := presentationView{
		URLs:     urls,
		Alt:      opts.Alt,
		Width:    p.Width,
		Height:   p.Height,
		TileSize: deref(p.TileSize),
		Options:  opts,
	}
	if p.Filter != "" {
		// built from an integer only, safe to mark as CSS
		view.Style = template.CSS("filter: " + p.Filter + ";")
	}
	if len(opts.Breakpoints) > 0 {
		raw, err := json.Marshal(opts.Breakpoints)
		if err != nil {
			return models.Presentation{}, fmt.Errorf("%w: %w", ErrPresentation, err)
		}
		view.Breakpoints = string(raw)
	}

	var buf bytes.Buffer
	if err = s.tmpl.Execute(&buf, view); err != nil {
		log.Err(err).Str("func", "*presentationService.Compose").Str("id", record.ID).Msg("error executing template")
		return models.Presentation{}, fmt.Errorf("%w: %w", ErrPresentation, err)
	}
	p.HTML = buf.String()

	return p, nil
}

// Stylesheet implements [PresentationService].
func (s *presentationService) Stylesheet() string {
	return stackStylesheet
}

func deref(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
