package obfuscate

import (
	"image"
	"runtime"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"
)

// minBandRows keeps tiny images on a single goroutine.
const minBandRows = 32

// forEachRowBand calls fn for disjoint [y0, y1) row ranges covering
// [0, height) and waits for all of them. fn must only write to rows inside
// its own range.
func forEachRowBand(height int, fn func(y0, y1 int)) {
	if height <= 0 {
		return
	}

	workers := runtime.GOMAXPROCS(0)
	if limit := height / minBandRows; workers > limit {
		workers = max(1, limit)
	}
	if workers == 1 {
		fn(0, height)
		return
	}

	band := (height + workers - 1) / workers

	var g errgroup.Group
	for y0 := 0; y0 < height; y0 += band {
		y1 := min(y0+band, height)
		g.Go(func() error {
			fn(y0, y1)
			return nil
		})
	}
	_ = g.Wait()
}

// toNRGBA returns img as a zero-origin *image.NRGBA. The result may share
// memory with img and must be treated as read-only.
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	return imaging.Clone(img)
}
