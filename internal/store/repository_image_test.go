package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/cryptpix/internal/logger"
	"github.com/MKhiriev/cryptpix/models"
)

func newTestImageRepo(t *testing.T) (*imageRepository, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	l := logger.Nop()
	db := newDB(conn, "postgres", sq.Dollar, NewPostgresErrorClassifier(), l)
	return NewImageRepository(db, l).(*imageRepository), mock
}

func ptr(v int) *int { return &v }

func sampleRecord() models.ImageRecord {
	return models.ImageRecord{
		ID:            "0191f0c4-5d2e-7c41-9a77-3c2f1e0b9d11",
		SourceName:    "cat.png",
		SourceLocator: "cryptpix/2026-03-01-12-30/cat_aaaaaaaa.png",
		Layer1Locator: "cryptpix/2026-03-01-12-30/cat_layer1_bbbbbbbb.png",
		Layer2Locator: "cryptpix/2026-03-01-12-30/cat_layer2_cccccccc.png",
		UseSplit:      true,
		UseDistortion: false,
		TileSize:      ptr(12),
		ImageWidth:    ptr(100),
		ImageHeight:   ptr(80),
		CreatedAt:     time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC),
	}
}

var imageRowColumns = []string{
	"id", "source_name", "source_locator", "layer1_locator", "layer2_locator",
	"use_split", "use_distortion", "tile_size", "image_width", "image_height",
	"hue_rotation", "created_at",
}

func TestImageRepository_Create(t *testing.T) {
	repo, mock := newTestImageRepo(t)
	rec := sampleRecord()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO cryptpix_images")).
		WithArgs(rec.ID, rec.SourceName, rec.SourceLocator, rec.Layer1Locator, rec.Layer2Locator,
			true, false, 12, 100, 80, nil, rec.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	saved, err := repo.Create(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, rec, saved)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImageRepository_Create_Errors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "duplicate id",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO cryptpix_images").
					WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})
			},
			wantErr: ErrImageAlreadyExists,
		},
		{
			name: "no rows affected",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO cryptpix_images").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: ErrImageNotSaved,
		},
		{
			name: "driver failure",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO cryptpix_images").
					WillReturnError(errors.New("network down"))
			},
			wantErr: ErrExecutingStatement,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestImageRepo(t)
			tt.setup(mock)

			_, err := repo.Create(context.Background(), sampleRecord())
			assert.ErrorIs(t, err, tt.wantErr)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestImageRepository_Create_RetriesTransientErrors(t *testing.T) {
	repo, mock := newTestImageRepo(t)

	mock.ExpectExec("INSERT INTO cryptpix_images").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.SerializationFailure})
	mock.ExpectExec("INSERT INTO cryptpix_images").
		WillReturnResult(sqlmock.NewResult(0, 1))

	_, err := repo.Create(context.Background(), sampleRecord())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImageRepository_Get(t *testing.T) {
	repo, mock := newTestImageRepo(t)
	rec := sampleRecord()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, source_name")).
		WithArgs(rec.ID).
		WillReturnRows(sqlmock.NewRows(imageRowColumns).AddRow(
			rec.ID, rec.SourceName, rec.SourceLocator, rec.Layer1Locator, rec.Layer2Locator,
			true, false, 12, 100, 80, nil, rec.CreatedAt,
		))

	got, err := repo.Get(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec, got)
	assert.Nil(t, got.HueRotation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImageRepository_Get_NotFound(t *testing.T) {
	repo, mock := newTestImageRepo(t)

	mock.ExpectQuery("SELECT").WithArgs("missing").WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrImageNotFound)
}

func TestImageRepository_Get_ScanError(t *testing.T) {
	repo, mock := newTestImageRepo(t)

	mock.ExpectQuery("SELECT").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("x"))

	_, err := repo.Get(context.Background(), "x")
	assert.ErrorIs(t, err, ErrScanningRow)
}

func TestImageRepository_Delete(t *testing.T) {
	tests := []struct {
		name    string
		result  driverResult
		err     error
		wantErr error
	}{
		{"deleted", driverResult{affected: 1}, nil, nil},
		{"missing", driverResult{affected: 0}, nil, ErrImageNotFound},
		{"driver failure", driverResult{}, errors.New("boom"), ErrExecutingStatement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestImageRepo(t)
			exp := mock.ExpectExec(regexp.QuoteMeta("DELETE FROM cryptpix_images WHERE id = $1")).WithArgs("id-1")
			if tt.err != nil {
				exp.WillReturnError(tt.err)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, tt.result.affected))
			}

			err := repo.Delete(context.Background(), "id-1")
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

type driverResult struct {
	affected int64
}
