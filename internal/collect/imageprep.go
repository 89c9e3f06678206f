package collect

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/agrosight/agrosight/internal/models"
)

// maxImageDim bounds the long edge of images sent to the vision API.
const maxImageDim = 1024

// PrepareImage decodes a farmer-supplied image, records its metadata and
// downscales anything larger than maxImageDim, re-encoding as JPEG.
func PrepareImage(raw []byte) ([]byte, models.ImageMetadata, error) {
	meta := models.ImageMetadata{SizeBytes: len(raw)}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, meta, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	meta.Width = bounds.Dx()
	meta.Height = bounds.Dy()

	if meta.Width <= maxImageDim && meta.Height <= maxImageDim {
		return raw, meta, nil
	}

	w, h := meta.Width, meta.Height
	if w >= h {
		h = h * maxImageDim / w
		w = maxImageDim
	} else {
		w = w * maxImageDim / h
		h = maxImageDim
	}

	scaled := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: 85}); err != nil {
		return nil, meta, fmt.Errorf("re-encode image: %w", err)
	}
	return buf.Bytes(), meta, nil
}
