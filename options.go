package folio

import (
	"log/slog"
	"time"

	"github.com/foliodocs/folio/clean"
	"github.com/foliodocs/folio/config"
)

// Converter holds a conversion's input and configuration. Configuration
// methods return a new Converter, so a configured base can be shared:
//
//	base := folio.Open("doc.pdf").Timeout(time.Minute)
//	withLinks := base.WithModules("links")
type Converter struct {
	filename string
	cfg      *config.Config
	registry *clean.Registry
}

// clone creates a deep copy of the Converter and its configuration.
func (c *Converter) clone() *Converter {
	cfg := *c.cfg
	if c.cfg.Modules != nil {
		cfg.Modules = make([]config.Module, len(c.cfg.Modules))
		copy(cfg.Modules, c.cfg.Modules)
	}
	return &Converter{
		filename: c.filename,
		cfg:      &cfg,
		registry: c.registry,
	}
}

// WithModules replaces the cleaner chain with the named modules, run in
// the given order with default options.
//
// Example:
//
//	doc, err := folio.Open("doc.pdf").WithModules("links").Run(ctx)
func (c *Converter) WithModules(names ...string) *Converter {
	newConv := c.clone()
	newConv.cfg.Modules = nil
	for _, name := range names {
		newConv.cfg.Modules = append(newConv.cfg.Modules, config.Module{Name: name})
	}
	return newConv
}

// WithModule appends a cleaner module with per-module options.
//
// Example:
//
//	doc, err := folio.Open("doc.pdf").
//	    WithModules().
//	    WithModule("links", map[string]any{"threshold": 0.8}).
//	    Run(ctx)
func (c *Converter) WithModule(name string, options map[string]any) *Converter {
	newConv := c.clone()
	newConv.cfg.Modules = append(newConv.cfg.Modules, config.Module{Name: name, Options: options})
	return newConv
}

// WithoutCleaning disables the cleaner chain entirely; the raw
// extraction result is returned as-is.
func (c *Converter) WithoutCleaning() *Converter {
	newConv := c.clone()
	newConv.cfg.Modules = nil
	return newConv
}

// Timeout bounds the whole conversion run.
func (c *Converter) Timeout(d time.Duration) *Converter {
	newConv := c.clone()
	newConv.cfg.Timeout = d
	return newConv
}

// ExtractTool overrides the text extraction executable.
func (c *Converter) ExtractTool(path string) *Converter {
	newConv := c.clone()
	newConv.cfg.ExtractTool = path
	return newConv
}

// OCRLanguage sets the language model used for OCR runs.
func (c *Converter) OCRLanguage(lang string) *Converter {
	newConv := c.clone()
	newConv.cfg.OCRLanguage = lang
	return newConv
}

// Separator sets the string inserted between reconstructed words.
func (c *Converter) Separator(s string) *Converter {
	newConv := c.clone()
	newConv.cfg.Separator = s
	return newConv
}

// ImageDir preserves extracted images in the given directory instead of
// a per-run temporary one. The caller owns the directory's lifecycle.
func (c *Converter) ImageDir(dir string) *Converter {
	newConv := c.clone()
	newConv.cfg.ImageDir = dir
	return newConv
}

// Logger sets the logger for the run.
func (c *Converter) Logger(logger *slog.Logger) *Converter {
	newConv := c.clone()
	newConv.cfg.Logger = logger
	return newConv
}

// Registry replaces the cleaner module registry, allowing custom
// modules to be referenced by name.
func (c *Converter) Registry(r *clean.Registry) *Converter {
	newConv := c.clone()
	newConv.registry = r
	return newConv
}
