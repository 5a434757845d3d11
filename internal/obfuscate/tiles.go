package obfuscate

import (
	"image"
)

// Tile size thresholds keyed on the larger image dimension.
const (
	largeImageEdge  = 1536
	mediumImageEdge = 768

	largeTileSize  = 48
	mediumTileSize = 24
	smallTileSize  = 12
)

// ChooseTileSize picks the checkerboard tile edge length for an image of the
// given dimensions.
func ChooseTileSize(width, height int) int {
	edge := max(width, height)
	switch {
	case edge > largeImageEdge:
		return largeTileSize
	case edge > mediumImageEdge:
		return mediumTileSize
	default:
		return smallTileSize
	}
}

// LayerOf reports which split layer owns the pixel at (x, y): 0 for the first
// layer, 1 for the second. Horizontally or vertically adjacent tiles always
// belong to different layers.
func LayerOf(x, y, tileSize int) int {
	return (x/tileSize + y/tileSize) % 2
}

// Split partitions img into two complementary checkerboard layers of the same
// dimensions. Every pixel is copied verbatim into the layer that owns its tile
// and is fully transparent in the other one.
//
// Partial tiles on the right and bottom edges are kept; the image is never
// cropped.
func Split(img image.Image, tileSize int) (*image.NRGBA, *image.NRGBA, error) {
	if tileSize < 1 {
		return nil, nil, ErrInvalidTileSize
	}

	src := toNRGBA(img)
	w, h := src.Rect.Dx(), src.Rect.Dy()
	if w == 0 || h == 0 {
		return nil, nil, ErrEmptyImage
	}

	layers := [2]*image.NRGBA{
		image.NewNRGBA(image.Rect(0, 0, w, h)),
		image.NewNRGBA(image.Rect(0, 0, w, h)),
	}

	forEachRowBand(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < w; x++ {
				dst := layers[LayerOf(x, y, tileSize)]
				si := src.PixOffset(x, y)
				di := dst.PixOffset(x, y)
				copy(dst.Pix[di:di+4], src.Pix[si:si+4])
			}
		}
	})

	return layers[0], layers[1], nil
}
