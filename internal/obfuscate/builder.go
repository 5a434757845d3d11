package obfuscate

import (
	"fmt"
	"image"
	"io"
)

// Policy selects which transforms ingestion applies to a source image.
type Policy struct {
	UseSplit      bool
	UseDistortion bool
}

// DerivativeSet is the result of building derivatives for one source image.
//
// Layer1 is always set. Layer2 is set only when the policy splits. TileSize
// is recorded only when split and HueRotation only when distorted; Width and
// Height are always the source dimensions.
type DerivativeSet struct {
	Layer1 []byte
	Layer2 []byte

	Width  int
	Height int

	TileSize    *int
	HueRotation *int

	UseSplit      bool
	UseDistortion bool
}

// Builder turns a source image into PNG derivatives according to a [Policy].
// It is safe for concurrent use as long as its Rand is.
type Builder struct {
	bleedPasses int
	rnd         Rand
}

// Option configures a [Builder].
type Option func(*Builder)

// WithBleedPasses enables edge bleeding on split layers. Zero disables it.
func WithBleedPasses(passes int) Option {
	return func(b *Builder) {
		b.bleedPasses = max(0, passes)
	}
}

// WithRand replaces the randomness source used to pick hue rotations.
func WithRand(rnd Rand) Option {
	return func(b *Builder) {
		if rnd != nil {
			b.rnd = rnd
		}
	}
}

// NewBuilder returns a Builder with bleeding disabled and [DefaultRand].
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{rnd: DefaultRand}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build produces the derivative set for src. The result is all-or-nothing:
// on error no partial set is returned.
func (b *Builder) Build(src image.Image, policy Policy) (*DerivativeSet, error) {
	if src == nil {
		return nil, ErrEmptyImage
	}

	working := toNRGBA(src)
	w, h := working.Rect.Dx(), working.Rect.Dy()
	if w == 0 || h == 0 {
		return nil, ErrEmptyImage
	}

	set := &DerivativeSet{
		Width:         w,
		Height:        h,
		UseSplit:      policy.UseSplit,
		UseDistortion: policy.UseDistortion,
	}

	if policy.UseDistortion {
		distorted, degrees := Distort(working, b.rnd)
		working = distorted
		set.HueRotation = &degrees
	}

	if !policy.UseSplit {
		data, err := EncodePNG(working)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEncode, err)
		}
		set.Layer1 = data
		return set, nil
	}

	tileSize := ChooseTileSize(w, h)
	first, second, err := Split(working, tileSize)
	if err != nil {
		return nil, err
	}
	Bleed(first, b.bleedPasses)
	Bleed(second, b.bleedPasses)

	if set.Layer1, err = EncodePNG(first); err != nil {
		return nil, fmt.Errorf("%w: layer 1: %w", ErrEncode, err)
	}
	if set.Layer2, err = EncodePNG(second); err != nil {
		return nil, fmt.Errorf("%w: layer 2: %w", ErrEncode, err)
	}
	set.TileSize = &tileSize

	return set, nil
}

// BuildFromReader decodes r and calls [Builder.Build]. Unreadable input is
// reported as *[DecodeError].
func (b *Builder) BuildFromReader(r io.Reader, policy Policy) (*DerivativeSet, error) {
	img, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return b.Build(img, policy)
}
