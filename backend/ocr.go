//go:build ocr

package backend

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/otiai10/gosseract/v2"

	"github.com/foliodocs/folio/model"
)

// OCR recognizes the text of a single raster image through the
// Tesseract engine. Word positions come from Tesseract's hOCR output,
// so recognized text carries bounding boxes like digitally extracted
// text and is indistinguishable from it at the document level.
//
// Requires Tesseract installed on the system. On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
type OCR struct {
	cfg    OCRConfig
	logger *slog.Logger
}

// NewOCR creates an OCR backend.
func NewOCR(cfg OCRConfig) *OCR {
	cfg.defaults()
	return &OCR{cfg: cfg, logger: cfg.Logger.With("backend", "ocr")}
}

// Run recognizes one image file and returns a single-page document of
// its words.
func (b *OCR) Run(ctx context.Context, imageFile string) (*model.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := prepareImage(imageFile)
	if err != nil {
		return nil, fmt.Errorf("preparing image %s: %w", imageFile, err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(b.cfg.Language); err != nil {
		return nil, fmt.Errorf("setting OCR language: %w", err)
	}
	if err := client.SetImageFromBytes(data); err != nil {
		return nil, fmt.Errorf("setting OCR image: %w", err)
	}

	hocr, err := client.HOCRText()
	if err != nil {
		return nil, fmt.Errorf("OCR failed for %s: %w", imageFile, err)
	}

	pages, err := parseHOCR(hocr)
	if err != nil {
		return nil, &MalformedOutputError{Tool: "tesseract", Reason: err.Error()}
	}

	doc := model.NewDocument(imageFile)
	for _, p := range pages {
		doc.AddPage(p)
	}
	b.logger.Debug("recognized image", "image", imageFile, "pages", len(pages))
	return doc, nil
}
