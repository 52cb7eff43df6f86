package document

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	"image/jpeg"
	"image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var ErrEmptyImage = errors.New("image has no data")

// preparedImage holds bytes fpdf can embed directly.
type preparedImage struct {
	data      []byte
	imageType string // "JPG" or "PNG"
	width     int    // pixels
	height    int
}

func (p preparedImage) aspect() float64 {
	return float64(p.height) / float64(p.width)
}

// prepareImage validates raw image bytes and normalizes them for embedding.
// JPEG is passed through; every other decodable format (PNG, GIF, WebP, BMP,
// TIFF) is re-encoded as an 8-bit PNG, which the PDF writer always accepts.
func prepareImage(data []byte) (preparedImage, error) {
	if len(data) == 0 {
		return preparedImage{}, ErrEmptyImage
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return preparedImage{}, fmt.Errorf("failed to decode image header: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return preparedImage{}, fmt.Errorf("invalid image dimensions %dx%d", cfg.Width, cfg.Height)
	}

	if format == "jpeg" {
		// a full decode catches truncated files that DecodeConfig accepts
		if _, err := jpeg.Decode(bytes.NewReader(data)); err != nil {
			return preparedImage{}, fmt.Errorf("failed to decode jpeg: %w", err)
		}
		return preparedImage{data: data, imageType: "JPG", width: cfg.Width, height: cfg.Height}, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return preparedImage{}, fmt.Errorf("failed to decode %s image: %w", format, err)
	}

	bounds := img.Bounds()
	nrgba := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, nrgba); err != nil {
		return preparedImage{}, fmt.Errorf("failed to re-encode %s image: %w", format, err)
	}

	return preparedImage{
		data:      buf.Bytes(),
		imageType: "PNG",
		width:     bounds.Dx(),
		height:    bounds.Dy(),
	}, nil
}

// fitImage scales to widthFraction of the content width, keeping the aspect
// ratio, then caps the height at maxHeight (when positive) and shrinks the
// width to match.
func fitImage(img preparedImage, contentWidth, widthFraction, maxHeight float64) (w, h float64) {
	aspect := img.aspect()
	w = contentWidth * widthFraction
	h = w * aspect
	if maxHeight > 0 && h > maxHeight {
		h = maxHeight
		w = h / aspect
	}
	return w, h
}
