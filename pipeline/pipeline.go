// Package pipeline wires one extraction backend and the cleaner chain
// into a run: extract, then clean, under a single cancellation
// boundary. Nested extraction of embedded images is modeled as a child
// pipeline with a restricted configuration (OCR backend, no cleaners),
// built through NestedRunner and injected into the digital backend.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/foliodocs/folio/backend"
	"github.com/foliodocs/folio/clean"
	"github.com/foliodocs/folio/model"
)

// Config configures a pipeline.
type Config struct {
	// Backend performs the extraction. Required.
	Backend backend.Backend

	// Chain is the cleaner chain applied after extraction. Nil means
	// no cleaning, as used by nested image runs.
	Chain *clean.Chain

	// Timeout bounds the whole run, teardown included: on expiry the
	// run context is cancelled, which kills in-flight subprocesses.
	// Zero means no timeout.
	Timeout time.Duration

	// Logger for diagnostics (default: slog.Default).
	Logger *slog.Logger
}

// Pipeline coordinates one extraction backend and one cleaner chain.
// A pipeline is reusable across runs, but each run's document is owned
// exclusively by that run.
type Pipeline struct {
	cfg    Config
	logger *slog.Logger
}

// New creates a pipeline.
func New(cfg Config) *Pipeline {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Pipeline{cfg: cfg, logger: cfg.Logger}
}

// Run extracts the input file and threads the resulting document
// through the cleaner chain. Extraction failures abort the run; the
// cleaner chain is strictly sequential, and a module failure aborts
// the remaining chain without delivering the partial document.
func (p *Pipeline) Run(ctx context.Context, inputFile string) (*model.Document, error) {
	if p.cfg.Backend == nil {
		return nil, fmt.Errorf("pipeline has no extraction backend")
	}

	if p.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.Timeout)
		defer cancel()
	}

	start := time.Now()
	doc, err := p.cfg.Backend.Run(ctx, inputFile)
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", inputFile, err)
	}
	p.logger.Debug("extraction complete", "input", inputFile, "pages", doc.PageCount(), "elapsed", time.Since(start))

	if p.cfg.Chain != nil {
		doc, err = p.cfg.Chain.Apply(ctx, doc)
		if err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// NestedRunner builds the sub-runner used for embedded-image
// extraction: a child pipeline driven by an OCR backend with an empty
// cleaner chain.
func NestedRunner(cfg backend.OCRConfig) backend.SubRunner {
	child := New(Config{Backend: backend.NewOCR(cfg), Logger: cfg.Logger})
	return func(ctx context.Context, imageFile string) (*model.Document, error) {
		return child.Run(ctx, imageFile)
	}
}
