// Package clean implements the cleaner module chain: ordered
// transformations applied to an extracted document before
// serialization. Each module receives exclusive access to the document
// and may mutate elements in place or restructure the element tree;
// modules run strictly in order, and a module failure aborts the rest
// of the chain.
package clean

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/foliodocs/folio/model"
)

// Module is a single cleaner stage. Apply must return a document (the
// same instance or a replacement) before the next module runs.
type Module interface {
	Name() string
	Apply(ctx context.Context, doc *model.Document) (*model.Document, error)
}

// Chain applies modules sequentially. Module N+1 only ever observes
// module N's completed output.
type Chain struct {
	modules []Module
	logger  *slog.Logger
}

// NewChain creates a chain over the given modules, applied in order.
func NewChain(logger *slog.Logger, modules ...Module) *Chain {
	if logger == nil {
		logger = slog.Default()
	}
	return &Chain{modules: modules, logger: logger}
}

// Modules returns the configured modules in application order.
func (c *Chain) Modules() []Module {
	return c.modules
}

// Apply runs every module in order. The first failure aborts the
// remaining chain; the partial document is not returned.
func (c *Chain) Apply(ctx context.Context, doc *model.Document) (*model.Document, error) {
	for _, m := range c.modules {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		c.logger.Debug("applying cleaner module", "module", m.Name())
		out, err := m.Apply(ctx, doc)
		if err != nil {
			return nil, fmt.Errorf("cleaner module %s: %w", m.Name(), err)
		}
		doc = out
	}
	return doc, nil
}

// Factory builds a module from its per-module options record.
type Factory func(options map[string]any) (Module, error)

// Registry maps stable module names to factories. The configuration
// loader resolves its ordered module list against a registry.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates a registry preloaded with the built-in modules.
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]Factory)}
	r.Register(ModuleLinks, func(options map[string]any) (Module, error) {
		return NewLinks(linksConfigFromOptions(options)), nil
	})
	r.Register(ModuleTOC, func(options map[string]any) (Module, error) {
		return NewTOC(tocConfigFromOptions(options)), nil
	})
	return r
}

// Register adds a factory under a stable name, replacing any previous
// registration.
func (r *Registry) Register(name string, f Factory) {
	r.factories[name] = f
}

// New builds the named module with the given options.
func (r *Registry) New(name string, options map[string]any) (Module, error) {
	f, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown cleaner module: %q", name)
	}
	return f(options)
}

// Names returns the registered module names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
