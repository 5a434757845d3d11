package obfuscate

import (
	"bytes"
	"image"
	"io"

	"github.com/disintegration/imaging"

	// Extra source formats on top of the stdlib gif, jpeg and png decoders.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Decode reads any registered image format, honouring EXIF orientation.
// Failures are reported as *[DecodeError].
func Decode(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	return img, nil
}

// EncodePNG serialises img as a PNG with its alpha channel intact.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
