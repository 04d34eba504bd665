//go:build !ocr

package backend

import (
	"context"
	"log/slog"

	"github.com/foliodocs/folio/model"
)

// OCR is the stub OCR backend compiled when the "ocr" build tag is not
// set. Run always returns ErrOCRNotEnabled; the digital backend treats
// that as "no nested text" rather than a fatal failure.
//
// To enable OCR, rebuild with the "ocr" build tag:
//
//	go build -tags ocr
//
// This requires Tesseract to be installed on the system.
type OCR struct {
	cfg    OCRConfig
	logger *slog.Logger
}

// NewOCR creates a stub OCR backend.
func NewOCR(cfg OCRConfig) *OCR {
	cfg.defaults()
	return &OCR{cfg: cfg, logger: cfg.Logger.With("backend", "ocr")}
}

// Run returns ErrOCRNotEnabled.
func (b *OCR) Run(ctx context.Context, imageFile string) (*model.Document, error) {
	return nil, ErrOCRNotEnabled
}
