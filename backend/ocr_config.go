package backend

import "log/slog"

// OCRConfig configures the OCR backend.
type OCRConfig struct {
	// Language is the Tesseract language hint (default: "eng").
	Language string

	// Logger for diagnostics (default: slog.Default).
	Logger *slog.Logger
}

func (c *OCRConfig) defaults() {
	if c.Language == "" {
		c.Language = "eng"
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}
