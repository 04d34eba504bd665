package clean

import (
	"context"
	"log/slog"
	"math"
	"strings"

	"github.com/foliodocs/folio/model"
)

// ModuleTOC is the stable name of the table-of-contents module.
const ModuleTOC = "toc"

// TOCConfig configures table-of-contents detection.
type TOCConfig struct {
	// MinEntries is the minimum number of dot-leader lines on a page
	// before they are grouped into a table of contents (default: 2).
	MinEntries int

	// LineTolerance is the vertical distance within which words count
	// as the same line (default: 2 points).
	LineTolerance float64

	// Logger for diagnostics (default: slog.Default).
	Logger *slog.Logger
}

func (c *TOCConfig) defaults() {
	if c.MinEntries <= 0 {
		c.MinEntries = 2
	}
	if c.LineTolerance <= 0 {
		c.LineTolerance = 2.0
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

func tocConfigFromOptions(options map[string]any) TOCConfig {
	var cfg TOCConfig
	if v, ok := options["min_entries"].(int); ok {
		cfg.MinEntries = v
	}
	if v, ok := options["tolerance"].(float64); ok {
		cfg.LineTolerance = v
	}
	return cfg
}

// TOC groups the dot-leader entry lines of a contents page into a
// single TableOfContents composite element. Pages with fewer leader
// lines than the configured minimum are left untouched.
type TOC struct {
	cfg    TOCConfig
	logger *slog.Logger
}

// NewTOC creates the table-of-contents module.
func NewTOC(cfg TOCConfig) *TOC {
	cfg.defaults()
	return &TOC{cfg: cfg, logger: cfg.Logger.With("module", ModuleTOC)}
}

// Name returns the module's stable name.
func (m *TOC) Name() string { return ModuleTOC }

// Apply restructures contents pages in place and returns the same
// document.
func (m *TOC) Apply(ctx context.Context, doc *model.Document) (*model.Document, error) {
	for _, page := range doc.Pages {
		m.applyPage(page)
	}
	return doc, nil
}

func (m *TOC) applyPage(page *model.Page) {
	tocWords := m.entryWords(page)
	if tocWords == nil {
		return
	}

	// Collect members in element order; map iteration order would
	// scramble item derivation.
	content := make([]model.Element, 0, len(tocWords))
	for _, el := range page.Elements {
		if w, ok := el.(*model.Word); ok && tocWords[w] {
			content = append(content, w)
		}
	}
	composite := model.NewTableOfContents(content)

	// Replace the first entry word with the composite; drop the rest.
	replaced := false
	elements := make([]model.Element, 0, len(page.Elements))
	for _, el := range page.Elements {
		if w, ok := el.(*model.Word); ok && tocWords[w] {
			if !replaced {
				elements = append(elements, composite)
				replaced = true
			}
			continue
		}
		elements = append(elements, el)
	}
	page.Elements = elements

	m.logger.Debug("grouped table of contents", "page", page.Number, "items", len(composite.Items()))
}

// entryWords returns the set of words belonging to dot-leader entry
// lines, or nil when the page has too few such lines.
func (m *TOC) entryWords(page *model.Page) map[*model.Word]bool {
	words := model.ElementsOfPage[*model.Word](page, false)
	if len(words) == 0 {
		return nil
	}

	var lines [][]*model.Word
	var current []*model.Word
	currentTop := math.Inf(-1)

	for _, w := range words {
		if current == nil || math.Abs(w.Box.Top-currentTop) > m.cfg.LineTolerance {
			if current != nil {
				lines = append(lines, current)
			}
			current = nil
			currentTop = w.Box.Top
		}
		current = append(current, w)
	}
	if current != nil {
		lines = append(lines, current)
	}

	members := make(map[*model.Word]bool)
	entryLines := 0
	for _, line := range lines {
		if !isEntryLine(line) {
			continue
		}
		entryLines++
		for _, w := range line {
			members[w] = true
		}
	}

	if entryLines < m.cfg.MinEntries {
		return nil
	}
	return members
}

// isEntryLine reports whether a line reads like a contents entry: a
// dot leader with a page number somewhere after it.
func isEntryLine(line []*model.Word) bool {
	leaderAt := -1
	for i, w := range line {
		text := w.GetText()
		if leaderAt < 0 {
			if isLeader(text) {
				leaderAt = i
			}
			continue
		}
		if isPageNumber(text) {
			return true
		}
	}
	return false
}

func isLeader(s string) bool {
	if len(s) < 2 {
		return false
	}
	return strings.Count(s, ".") == len(s)
}

func isPageNumber(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
