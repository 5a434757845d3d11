package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/cryptpix/models"
)

const imagesTable = "cryptpix_images"

// imageColumns is the column order shared by inserts and scans.
var imageColumns = []string{
	"id",
	"source_name",
	"source_locator",
	"layer1_locator",
	"layer2_locator",
	"use_split",
	"use_distortion",
	"tile_size",
	"image_width",
	"image_height",
	"hue_rotation",
	"created_at",
}

func buildInsertImageQuery(b sq.StatementBuilderType, rec models.ImageRecord) (string, []any, error) {
	return b.Insert(imagesTable).
		Columns(imageColumns...).
		Values(
			rec.ID,
			rec.SourceName,
			rec.SourceLocator,
			rec.Layer1Locator,
			rec.Layer2Locator,
			rec.UseSplit,
			rec.UseDistortion,
			rec.TileSize,
			rec.ImageWidth,
			rec.ImageHeight,
			rec.HueRotation,
			rec.CreatedAt,
		).
		ToSql()
}

func buildSelectImageQuery(b sq.StatementBuilderType, id string) (string, []any, error) {
	return b.Select(imageColumns...).
		From(imagesTable).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildDeleteImageQuery(b sq.StatementBuilderType, id string) (string, []any, error) {
	return b.Delete(imagesTable).
		Where(sq.Eq{"id": id}).
		ToSql()
}
