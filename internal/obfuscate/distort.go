package obfuscate

import (
	"fmt"
	"image"
	"math"
	"math/rand/v2"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// Hue rotation bounds in whole degrees, both inclusive.
const (
	MinHueRotation = 30
	MaxHueRotation = 180
)

// Rand is the randomness source used to draw a hue rotation.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// DefaultRand draws from the math/rand/v2 global generator.
var DefaultRand Rand = globalRand{}

// Distort draws a hue rotation uniformly from [MinHueRotation, MaxHueRotation]
// and applies it with [DistortWith]. It returns the distorted copy and the
// degrees used.
func Distort(img image.Image, rnd Rand) (*image.NRGBA, int) {
	if rnd == nil {
		rnd = DefaultRand
	}
	degrees := MinHueRotation + rnd.IntN(MaxHueRotation-MinHueRotation+1)
	return DistortWith(img, degrees), degrees
}

// DistortWith rotates the hue of every pixel forward by degrees and then
// inverts the colour channels. Alpha is preserved. The input is never
// modified.
func DistortWith(img image.Image, degrees int) *image.NRGBA {
	out := imaging.Clone(img)
	shift := float64(degrees)
	mapColour(out, func(r, g, b uint8) (uint8, uint8, uint8) {
		r, g, b = rotateHue(r, g, b, shift)
		return 255 - r, 255 - g, 255 - b
	})
	return out
}

// Restore undoes [DistortWith]: it inverts and then rotates the hue back by
// degrees in HSV. It is the ideal inverse and exact up to 8-bit rounding.
//
// Browsers evaluate hue-rotate() as a luminance-preserving RGB matrix, not
// an HSV rotation, so the picture painted through [CSSFilter] matches
// Restore exactly only for greys. Saturated colours come back with a shifted
// tint.
func Restore(img image.Image, degrees int) *image.NRGBA {
	out := imaging.Clone(img)
	shift := -float64(degrees)
	mapColour(out, func(r, g, b uint8) (uint8, uint8, uint8) {
		return rotateHue(255-r, 255-g, 255-b, shift)
	})
	return out
}

// CSSFilter returns the paint filter that visually reverses a distortion of
// the given degrees. See [Restore] for how closely it does so.
func CSSFilter(degrees int) string {
	return fmt.Sprintf("invert(100%%) hue-rotate(-%ddeg)", degrees)
}

func mapColour(img *image.NRGBA, fn func(r, g, b uint8) (uint8, uint8, uint8)) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	forEachRowBand(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			i := img.PixOffset(img.Rect.Min.X, img.Rect.Min.Y+y)
			for x := 0; x < w; x, i = x+1, i+4 {
				p := img.Pix[i : i+3 : i+3]
				p[0], p[1], p[2] = fn(p[0], p[1], p[2])
			}
		}
	})
}

func rotateHue(r, g, b uint8, degrees float64) (uint8, uint8, uint8) {
	c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	h, s, v := c.Hsv()

	h = math.Mod(h+degrees, 360)
	if h < 0 {
		h += 360
	}

	out := colorful.Hsv(h, s, v)
	return channel(out.R), channel(out.G), channel(out.B)
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
