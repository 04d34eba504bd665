// Package config loads YAML run configuration for the folio pipeline.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/foliodocs/folio/clean"
)

// Module names a cleaner module and carries its per-module options.
// In YAML a module may be given as a bare string or as a mapping:
//
//	modules:
//	  - toc
//	  - name: links
//	    options:
//	      threshold: 0.8
type Module struct {
	Name    string         `yaml:"name"`
	Options map[string]any `yaml:"options"`
}

// UnmarshalYAML accepts both the string shorthand and the full mapping.
func (m *Module) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		return node.Decode(&m.Name)
	}
	type plain Module
	return node.Decode((*plain)(m))
}

// Config holds the full run configuration.
type Config struct {
	// ExtractTool is the text extraction executable.
	ExtractTool string `yaml:"extract_tool"`

	// OCRLanguage is the language model for OCR runs.
	OCRLanguage string `yaml:"ocr_language"`

	// Separator is the string inserted between reconstructed words.
	Separator string `yaml:"separator"`

	// ImageDir, when set, preserves extracted images in the given
	// directory instead of a per-run temporary one.
	ImageDir string `yaml:"image_dir"`

	// Timeout bounds a whole conversion run. Zero means no limit.
	Timeout time.Duration `yaml:"timeout"`

	// Modules is the ordered cleaner chain.
	Modules []Module `yaml:"modules"`

	// Logger for debug/error messages.
	Logger *slog.Logger `yaml:"-"`
}

// DefaultConfig returns the configuration used when no file is given:
// both built-in cleaner modules, in link-then-TOC order.
func DefaultConfig() *Config {
	return &Config{
		OCRLanguage: "eng",
		Separator:   " ",
		Modules: []Module{
			{Name: clean.ModuleLinks},
			{Name: clean.ModuleTOC},
		},
	}
}

// LoadConfig reads and parses a YAML config file, merged over DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	for _, m := range c.Modules {
		if m.Name == "" {
			return fmt.Errorf("module entry without a name")
		}
	}
	return nil
}

// BuildChain resolves the configured module list against a registry.
func (c *Config) BuildChain(registry *clean.Registry) (*clean.Chain, error) {
	logger := c.Logger
	if logger == nil {
		logger = slog.Default()
	}
	modules := make([]clean.Module, 0, len(c.Modules))
	for _, m := range c.Modules {
		module, err := registry.New(m.Name, m.Options)
		if err != nil {
			return nil, fmt.Errorf("building cleaner chain: %w", err)
		}
		modules = append(modules, module)
	}
	return clean.NewChain(logger, modules...), nil
}
