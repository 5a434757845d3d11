package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/MKhiriev/cryptpix/internal/logger"
	"github.com/MKhiriev/cryptpix/internal/obfuscate"
	"github.com/MKhiriev/cryptpix/internal/store"
	"github.com/MKhiriev/cryptpix/internal/utils"
	"github.com/MKhiriev/cryptpix/models"
)

// ingestService runs the two-phase ingestion pipeline: derivatives are
// built in memory first, then blobs are stored and the record is inserted.
// Failure in the second phase removes every blob already written.
type ingestService struct {
	images  store.ImageRepository
	blobs   store.BlobStorage
	builder *obfuscate.Builder
	ids     *utils.UUIDGenerator
	now     func() time.Time

	logger *logger.Logger
}

func NewIngestService(images store.ImageRepository, blobs store.BlobStorage, builder *obfuscate.Builder, logger *logger.Logger) IngestService {
	return &ingestService{
		images:  images,
		blobs:   blobs,
		builder: builder,
		ids:     utils.NewUUIDGenerator(),
		now:     time.Now,
		logger:  logger,
	}
}

// Ingest implements [IngestService].
//
// Decode failures are returned wrapped so that errors.Is(err,
// obfuscate.ErrDecode) holds; nothing is stored in that case.
func (s *ingestService) Ingest(ctx context.Context, req models.IngestRequest) (models.ImageRecord, error) {
	log := logger.FromContext(ctx)

	policy := obfuscate.Policy{UseSplit: req.UseSplit, UseDistortion: req.UseDistortion}
	set, err := s.builder.BuildFromReader(bytes.NewReader(req.Data), policy)
	if err != nil {
		log.Err(err).Str("func", "*ingestService.Ingest").Str("name", req.Name).Msg("error building derivatives")
		return models.ImageRecord{}, fmt.Errorf("%w: %w", ErrIngestionFailed, err)
	}

	var stored []string
	rollback := func() {
		// the request context may already be done
		cleanupCtx := context.WithoutCancel(ctx)
		for _, locator := range stored {
			if err := s.blobs.Delete(cleanupCtx, locator); err != nil {
				log.Err(err).Str("func", "*ingestService.Ingest").Str("locator", locator).Msg("error rolling back blob")
			}
		}
	}
	save := func(data []byte, name string) (string, error) {
		locator, err := s.blobs.Store(ctx, data, name)
		if err != nil {
			return "", err
		}
		stored = append(stored, locator)
		return locator, nil
	}

	base := baseName(req.Name)
	record := models.ImageRecord{
		ID:            s.ids.Generate(),
		SourceName:    req.Name,
		UseSplit:      set.UseSplit,
		UseDistortion: set.UseDistortion,
		TileSize:      set.TileSize,
		ImageWidth:    &set.Width,
		ImageHeight:   &set.Height,
		HueRotation:   set.HueRotation,
		CreatedAt:     s.now().UTC().Truncate(time.Microsecond),
	}

	if record.SourceLocator, err = save(req.Data, req.Name); err == nil {
		if record.Layer1Locator, err = save(set.Layer1, base+"_layer1.png"); err == nil && set.Layer2 != nil {
			record.Layer2Locator, err = save(set.Layer2, base+"_layer2.png")
		}
	}
	if err != nil {
		log.Err(err).Str("func", "*ingestService.Ingest").Str("id", record.ID).Msg("error storing blobs")
		rollback()
		return models.ImageRecord{}, fmt.Errorf("%w: %w", ErrIngestionFailed, err)
	}

	created, err := s.images.Create(ctx, record)
	if err != nil {
		log.Err(err).Str("func", "*ingestService.Ingest").Str("id", record.ID).Msg("error saving image record")
		rollback()
		return models.ImageRecord{}, fmt.Errorf("%w: %w", ErrIngestionFailed, err)
	}

	log.Info().
		Str("func", "*ingestService.Ingest").
		Str("id", created.ID).
		Bool("use_split", created.UseSplit).
		Bool("use_distortion", created.UseDistortion).
		Msg("image ingested")
	return created, nil
}

// Get implements [IngestService].
func (s *ingestService) Get(ctx context.Context, id string) (models.ImageRecord, error) {
	record, err := s.images.Get(ctx, id)
	if errors.Is(err, store.ErrImageNotFound) {
		return models.ImageRecord{}, ErrNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*ingestService.Get").Str("id", id).Msg("error loading image record")
		return models.ImageRecord{}, fmt.Errorf("error loading image record: %w", err)
	}
	return record, nil
}

// Delete implements [IngestService]. The record goes first so that no
// token can resolve to a half-deleted image; blob removal errors are only
// logged.
func (s *ingestService) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	record, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	err = s.images.Delete(ctx, id)
	if errors.Is(err, store.ErrImageNotFound) {
		return ErrNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*ingestService.Delete").Str("id", id).Msg("error deleting image record")
		return fmt.Errorf("error deleting image record: %w", err)
	}

	for _, locator := range record.Locators() {
		if err := s.blobs.Delete(ctx, locator); err != nil {
			log.Warn().Err(err).Str("func", "*ingestService.Delete").Str("locator", locator).Msg("error deleting blob")
		}
	}

	log.Info().Str("func", "*ingestService.Delete").Str("id", id).Msg("image deleted")
	return nil
}

// baseName strips directories and the extension from a client file name.
func baseName(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	base = strings.TrimSuffix(base, path.Ext(base))
	if base == "" || base == "." || base == "/" {
		return "image"
	}
	return base
}
