package obfuscate

import (
	"image"
	"image/color"
	"math/rand/v2"
)

func randomImage(w, h int, seed uint64, opaque bool) *image.NRGBA {
	rnd := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = uint8(rnd.IntN(256))
		img.Pix[i+1] = uint8(rnd.IntN(256))
		img.Pix[i+2] = uint8(rnd.IntN(256))
		img.Pix[i+3] = 255
		if !opaque {
			img.Pix[i+3] = uint8(1 + rnd.IntN(255))
		}
	}
	return img
}

func solidImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

type fixedRand int

func (f fixedRand) IntN(n int) int { return int(f) % n }

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
