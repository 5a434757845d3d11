// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"

	"github.com/MKhiriev/cryptpix/internal/logger"
	"github.com/MKhiriev/cryptpix/models"
)

// imageRepository is the SQL implementation of [ImageRepository] over the
// cryptpix_images table. The same code serves PostgreSQL and SQLite; the
// dialect only changes the placeholder format and error classification.
type imageRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewImageRepository constructs an [ImageRepository] backed by db.
func NewImageRepository(db *DB, logger *logger.Logger) ImageRepository {
	logger.Debug().Str("dialect", db.dialect).Msg("creating image repository")
	return &imageRepository{
		db:     db,
		logger: logger,
	}
}

// Create implements [ImageRepository].
//
// Error handling:
//   - duplicate id → [ErrImageAlreadyExists];
//   - zero affected rows → [ErrImageNotSaved];
//   - any other driver error → wrapped [ErrExecutingStatement].
func (r *imageRepository) Create(ctx context.Context, record models.ImageRecord) (models.ImageRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertImageQuery(r.db.builder, record)
	if err != nil {
		log.Err(err).Str("func", "*imageRepository.Create").Msg("error building insert query")
		return models.ImageRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var result sql.Result
	err = r.db.withRetry(ctx, func() error {
		result, err = r.db.ExecContext(ctx, query, args...)
		return err
	})
	if err != nil {
		log.Err(err).Str("func", "*imageRepository.Create").Str("id", record.ID).Msg("error inserting image record")
		if postgresError(err) == pgerrcode.UniqueViolation || isSQLiteConstraintUnique(err) {
			return models.ImageRecord{}, ErrImageAlreadyExists
		}
		return models.ImageRecord{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		log.Error().Str("func", "*imageRepository.Create").Str("id", record.ID).Msg("no rows inserted")
		return models.ImageRecord{}, ErrImageNotSaved
	}

	log.Debug().Str("func", "*imageRepository.Create").Str("id", record.ID).Msg("image record saved")
	return record, nil
}

// Get implements [ImageRepository].
func (r *imageRepository) Get(ctx context.Context, id string) (models.ImageRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectImageQuery(r.db.builder, id)
	if err != nil {
		log.Err(err).Str("func", "*imageRepository.Get").Msg("error building select query")
		return models.ImageRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		rec                             models.ImageRecord
		tileSize, width, height, hueRot sql.NullInt64
	)
	err = r.db.withRetry(ctx, func() error {
		return r.db.QueryRowContext(ctx, query, args...).Scan(
			&rec.ID,
			&rec.SourceName,
			&rec.SourceLocator,
			&rec.Layer1Locator,
			&rec.Layer2Locator,
			&rec.UseSplit,
			&rec.UseDistortion,
			&tileSize,
			&width,
			&height,
			&hueRot,
			&rec.CreatedAt,
		)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.ImageRecord{}, ErrImageNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*imageRepository.Get").Str("id", id).Msg("error selecting image record")
		return models.ImageRecord{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	rec.TileSize = intPtr(tileSize)
	rec.ImageWidth = intPtr(width)
	rec.ImageHeight = intPtr(height)
	rec.HueRotation = intPtr(hueRot)

	return rec, nil
}

// Delete implements [ImageRepository].
func (r *imageRepository) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteImageQuery(r.db.builder, id)
	if err != nil {
		log.Err(err).Str("func", "*imageRepository.Delete").Msg("error building delete query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var result sql.Result
	err = r.db.withRetry(ctx, func() error {
		result, err = r.db.ExecContext(ctx, query, args...)
		return err
	})
	if err != nil {
		log.Err(err).Str("func", "*imageRepository.Delete").Str("id", id).Msg("error deleting image record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrImageNotFound
	}

	return nil
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
