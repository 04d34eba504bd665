// Package folio provides a fluent API for converting PDF documents and
// scanned images into structured text, Markdown, or HTML.
//
// Basic usage:
//
//	md, err := folio.Open("document.pdf").Markdown(ctx)
//	if err != nil {
//	    // handle error
//	}
//
// With options:
//
//	doc, err := folio.Open("report.pdf").
//	    WithModules("links").
//	    Timeout(2 * time.Minute).
//	    Run(ctx)
package folio

import (
	"context"
	"fmt"

	"github.com/foliodocs/folio/backend"
	"github.com/foliodocs/folio/clean"
	"github.com/foliodocs/folio/config"
	"github.com/foliodocs/folio/format"
	"github.com/foliodocs/folio/model"
	"github.com/foliodocs/folio/pipeline"
)

// Open prepares a converter for the given file. The input format is
// detected from the file content when a terminal operation runs.
//
// Example:
//
//	doc, err := folio.Open("document.pdf").Run(ctx)
func Open(filename string) *Converter {
	return &Converter{
		filename: filename,
		cfg:      config.DefaultConfig(),
		registry: clean.NewRegistry(),
	}
}

// FromConfig prepares a converter using a loaded run configuration.
//
// Example:
//
//	cfg, err := config.LoadConfig("folio.yaml")
//	if err != nil {
//	    // handle error
//	}
//	doc, err := folio.FromConfig("document.pdf", cfg).Run(ctx)
func FromConfig(filename string, cfg *config.Config) *Converter {
	return &Converter{
		filename: filename,
		cfg:      cfg,
		registry: clean.NewRegistry(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	text := folio.Must(folio.Open("document.pdf").Text(ctx))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// Run converts the input and returns the cleaned document.
func (c *Converter) Run(ctx context.Context) (*model.Document, error) {
	p, err := c.build()
	if err != nil {
		return nil, err
	}
	return p.Run(ctx, c.filename)
}

// Text converts the input and returns its plain text.
func (c *Converter) Text(ctx context.Context) (string, error) {
	doc, err := c.Run(ctx)
	if err != nil {
		return "", err
	}
	return doc.ExtractText(), nil
}

// Markdown converts the input and renders it as Markdown.
func (c *Converter) Markdown(ctx context.Context) (string, error) {
	doc, err := c.Run(ctx)
	if err != nil {
		return "", err
	}
	return format.Markdown(doc), nil
}

// HTML converts the input and renders it as HTML.
func (c *Converter) HTML(ctx context.Context) (string, error) {
	doc, err := c.Run(ctx)
	if err != nil {
		return "", err
	}
	return format.HTML(doc)
}

// build assembles the pipeline for the detected input format.
func (c *Converter) build() (*pipeline.Pipeline, error) {
	inputFormat, err := format.DetectFile(c.filename)
	if err != nil {
		return nil, fmt.Errorf("detecting format of %s: %w", c.filename, err)
	}

	var b backend.Backend
	switch inputFormat {
	case format.PDF:
		b = backend.NewPDFText(backend.PDFTextConfig{
			ToolPath:  c.cfg.ExtractTool,
			ImageDir:  c.cfg.ImageDir,
			Separator: c.cfg.Separator,
			SubRun:    pipeline.NestedRunner(c.ocrConfig()),
			Logger:    c.cfg.Logger,
		})
	case format.Image:
		b = backend.NewOCR(c.ocrConfig())
	default:
		return nil, fmt.Errorf("unsupported input format %s for %s", inputFormat, c.filename)
	}

	chain, err := c.cfg.BuildChain(c.registry)
	if err != nil {
		return nil, err
	}

	return pipeline.New(pipeline.Config{
		Backend: b,
		Chain:   chain,
		Timeout: c.cfg.Timeout,
		Logger:  c.cfg.Logger,
	}), nil
}

func (c *Converter) ocrConfig() backend.OCRConfig {
	return backend.OCRConfig{
		Language: c.cfg.OCRLanguage,
		Logger:   c.cfg.Logger,
	}
}
