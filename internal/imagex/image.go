// Package imagex normalizes uploaded pictures into JPEG originals and
// bounded thumbnails. It is pure and stateless; all policy constants live
// with the callers.
package imagex

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/dmitrijs2005/musefuse/internal/common"
)

// Decode parses raw image bytes in any registered format (JPEG, PNG, GIF,
// TIFF, BMP). Undecodable input is reported as common.ErrUnsupportedImage.
func Decode(raw []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUnsupportedImage, err)
	}
	return img, nil
}

// Normalize converts an image to plain RGB. Alpha is discarded, not
// composited: transparent pixels keep their color values and simply become
// opaque. Palette images are expanded the same way.
func Normalize(img image.Image) *image.NRGBA {
	out := imaging.Clone(img)
	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = 0xff
	}
	return out
}

// EncodeJPEG re-encodes an image as JPEG at the given quality (1-100).
func EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("jpeg encode: %w", err)
	}
	return buf.Bytes(), nil
}

// Thumbnail scales img so that its larger dimension is at most maxDim,
// preserving aspect ratio. Images already within bounds are returned at
// their original size; thumbnails never upscale.
func Thumbnail(img image.Image, maxDim int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() <= maxDim && b.Dy() <= maxDim {
		return imaging.Clone(img)
	}
	return imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
}
