package obfuscate

import (
	"image"
	"slices"
)

// neighbours is the fixed lookup order used when bleeding: left, right, up, down.
var neighbours = [4]image.Point{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Bleed copies the colour of opaque neighbours into fully transparent pixels
// of layer, in place, for the given number of passes. Alpha is never changed,
// so the layer composites exactly as before; only resampling at tile borders
// picks up a matching colour instead of black.
//
// Each pass reads from a snapshot of the previous one, which makes the result
// independent of iteration order. Passes below 1 are a no-op.
func Bleed(layer *image.NRGBA, passes int) {
	if layer == nil || passes < 1 {
		return
	}

	b := layer.Rect
	w, h := b.Dx(), b.Dy()

	filled := make([]bool, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			filled[y*w+x] = layer.Pix[layer.PixOffset(b.Min.X+x, b.Min.Y+y)+3] != 0
		}
	}

	for range passes {
		next := slices.Clone(filled)

		forEachRowBand(h, func(y0, y1 int) {
			for y := y0; y < y1; y++ {
				for x := 0; x < w; x++ {
					if filled[y*w+x] {
						continue
					}
					for _, d := range neighbours {
						nx, ny := x+d.X, y+d.Y
						if nx < 0 || ny < 0 || nx >= w || ny >= h || !filled[ny*w+nx] {
							continue
						}
						si := layer.PixOffset(b.Min.X+nx, b.Min.Y+ny)
						di := layer.PixOffset(b.Min.X+x, b.Min.Y+y)
						copy(layer.Pix[di:di+3], layer.Pix[si:si+3])
						next[y*w+x] = true
						break
					}
				}
			}
		})

		filled = next
	}
}
