package backend

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"

	// Formats the extraction tool writes as side files. TIFF and BMP
	// are re-encoded to PNG before recognition; PNG and JPEG pass
	// through untouched.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// prepareImage loads an image side file and returns bytes in a format
// the OCR engine accepts.
func prepareImage(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		// Unknown container; hand the raw bytes to the engine.
		return data, nil
	}
	if format == "png" || format == "jpeg" {
		return data, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s image: %w", format, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("re-encoding %s image: %w", format, err)
	}
	return buf.Bytes(), nil
}
