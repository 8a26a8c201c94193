package acquirer

import (
	"fmt"
	"os"

	"github.com/disintegration/imaging"
)

// minOCRHeight is the pixel height below which a page image is upscaled
// before recognition; small rasters lose glyph detail the engine needs.
const minOCRHeight = 1200

// preprocessImage grayscales and, when needed, upscales a page image, writing
// the result to a scratch file. The returned cleanup removes the scratch file
// and must be called once recognition is done.
func preprocessImage(path string) (string, func(), error) {
	img, err := imaging.Open(path)
	if err != nil {
		return "", nil, fmt.Errorf("open page image: %w", err)
	}

	gray := imaging.Grayscale(img)
	if gray.Bounds().Dy() < minOCRHeight {
		gray = imaging.Resize(gray, 0, minOCRHeight, imaging.Lanczos)
	}

	tmp, err := os.CreateTemp("", "ocr-page-*.png")
	if err != nil {
		return "", nil, fmt.Errorf("scratch image: %w", err)
	}
	name := tmp.Name()
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return "", nil, fmt.Errorf("scratch image: %w", err)
	}

	if err := imaging.Save(gray, name); err != nil {
		os.Remove(name)
		return "", nil, fmt.Errorf("save preprocessed image: %w", err)
	}
	return name, func() { os.Remove(name) }, nil
}
