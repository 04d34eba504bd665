package clean

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	"github.com/foliodocs/folio/backend"
	"github.com/foliodocs/folio/layout"
	"github.com/foliodocs/folio/model"
)

// ModuleLinks is the stable name of the link-detection module.
const ModuleLinks = "links"

// DefaultMetaTool is the external metadata binary used to read the
// PDF's annotation structure.
const DefaultMetaTool = "dumppdf.py"

// DefaultOverlapThreshold is the minimum overlap ratio between an
// annotation box and a word box for a geometric link match.
const DefaultOverlapThreshold = 0.7

var (
	urlPattern   = regexp.MustCompile(`^(?:https?://|www\.)[^\s]+$`)
	emailPattern = regexp.MustCompile(`^[\w.+-]+@[\w-]+(?:\.[\w-]+)+$`)
)

// LinksConfig configures the link-detection module.
type LinksConfig struct {
	// MetaTool is the metadata binary (default: DefaultMetaTool). Its
	// absence is never fatal: link detection degrades to the textual
	// fallback alone.
	MetaTool string

	// OverlapThreshold is the geometric match cutoff (default: 0.7).
	// A pointer so an explicit zero is distinguishable from unset.
	OverlapThreshold *float64

	// Logger for diagnostics (default: slog.Default).
	Logger *slog.Logger
}

func (c *LinksConfig) defaults() {
	if c.MetaTool == "" {
		c.MetaTool = DefaultMetaTool
	}
	if c.OverlapThreshold == nil {
		v := float64(DefaultOverlapThreshold)
		c.OverlapThreshold = &v
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

func linksConfigFromOptions(options map[string]any) LinksConfig {
	var cfg LinksConfig
	if v, ok := options["tool"].(string); ok {
		cfg.MetaTool = v
	}
	switch v := options["threshold"].(type) {
	case float64:
		cfg.OverlapThreshold = &v
	case int:
		f := float64(v)
		cfg.OverlapThreshold = &f
	}
	return cfg
}

// annotation is one resolved link annotation in model coordinates.
type annotation struct {
	box    model.BBox
	target string
}

// Links reconciles two link-discovery strategies against the
// reconstructed word stream: link annotations from the PDF's metadata
// matched geometrically, then a textual URL/email fallback for words
// the first strategy left untouched. It attaches link facts to Word
// elements and neither adds nor removes elements.
type Links struct {
	cfg    LinksConfig
	logger *slog.Logger
}

// NewLinks creates the link-detection module.
func NewLinks(cfg LinksConfig) *Links {
	cfg.defaults()
	return &Links{cfg: cfg, logger: cfg.Logger.With("module", ModuleLinks)}
}

// Name returns the module's stable name.
func (m *Links) Name() string { return ModuleLinks }

// Apply populates Link on matching words and returns the same
// document.
func (m *Links) Apply(ctx context.Context, doc *model.Document) (*model.Document, error) {
	annotations := m.loadAnnotations(ctx, doc)

	for _, page := range doc.Pages {
		words := model.ElementsOfPage[*model.Word](page, true)
		m.matchGeometric(words, annotations[page.Number])
		m.matchTextual(words)
	}
	return doc, nil
}

// matchGeometric assigns annotation links to words. Every annotation
// is evaluated in list order with no short-circuit, so the final
// assignment is the last annotation whose box sufficiently contains
// the word.
func (m *Links) matchGeometric(words []*model.Word, annotations []annotation) {
	for _, word := range words {
		for _, a := range annotations {
			if a.box.OverlapRatio(word.Box) > *m.cfg.OverlapThreshold {
				word.Link = &model.LinkInfo{
					Markdown: fmt.Sprintf("[%s](%s)", word.GetText(), a.target),
					Target:   a.target,
				}
			}
		}
	}
}

// matchTextual synthesizes links for unmatched words whose text looks
// like a URL or an email address. Words matching neither pattern get
// no link at all.
func (m *Links) matchTextual(words []*model.Word) {
	for _, word := range words {
		if word.Link != nil {
			continue
		}
		text := word.GetText()
		switch {
		case urlPattern.MatchString(text):
			word.Link = &model.LinkInfo{
				Markdown: fmt.Sprintf("[%s](%s)", text, text),
				Target:   text,
			}
		case emailPattern.MatchString(text):
			word.Link = &model.LinkInfo{
				Markdown: fmt.Sprintf("[%s](mailto:%s)", text, text),
				Target:   "mailto:" + text,
			}
		}
	}
}

// loadAnnotations runs the metadata tool and builds the page-keyed
// annotation map. Any failure here is auxiliary: it is logged and
// yields zero annotations, never aborting the module.
func (m *Links) loadAnnotations(ctx context.Context, doc *model.Document) map[int][]annotation {
	tmpDir, err := os.MkdirTemp("", "folio-meta-")
	if err != nil {
		m.logger.Warn("link metadata unavailable", "error", err)
		return nil
	}
	defer os.RemoveAll(tmpDir)

	outPath := filepath.Join(tmpDir, "objects.xml")
	if err := backend.RunTool(ctx, m.cfg.MetaTool, "-a", "-o", outPath, doc.SourceFile); err != nil {
		m.logger.Warn("link metadata unavailable", "tool", m.cfg.MetaTool, "error", err)
		return nil
	}

	f, err := os.Open(outPath)
	if err != nil {
		m.logger.Warn("link metadata unavailable", "error", err)
		return nil
	}
	defer f.Close()

	graph, err := parseObjectGraph(f)
	if err != nil {
		m.logger.Warn("discarding malformed link metadata", "error", err)
		return nil
	}

	return m.annotationsByPage(graph, doc)
}

// annotationsByPage walks Page objects in graph order, pairing them
// with document pages by position, and resolves each page's Annots
// entry. A malformed page entry drops that page's annotations only.
func (m *Links) annotationsByPage(graph *objectGraph, doc *model.Document) map[int][]annotation {
	byPage := make(map[int][]annotation)
	pageNo := 0

	for _, obj := range graph.order {
		if !isPage(obj.Value) {
			continue
		}
		pageNo++

		annots, ok := obj.Value.Dict["Annots"]
		if !ok {
			continue
		}
		page := doc.GetPage(pageNo)
		if page == nil {
			continue
		}

		dicts, err := resolveAnnotationDicts(graph, annots)
		if err != nil {
			m.logger.Warn("discarding annotations for page", "page", pageNo, "error", err)
			continue
		}

		for _, dict := range dicts {
			if a, ok := m.annotationFrom(graph, dict, page.Box.Height); ok {
				byPage[pageNo] = append(byPage[pageNo], a)
			}
		}
	}
	return byPage
}

// annotationFrom extracts the rectangle and action target of one
// annotation dictionary. The rectangle converts from the tool's
// bottom-left space using the page height. A GoTo action yields an
// in-document anchor "#<destination>"; any other action type yields
// the literal string stored under the action-type's own key.
func (m *Links) annotationFrom(graph *objectGraph, dict objValue, pageHeight float64) (annotation, bool) {
	rect, ok := dict.Dict["Rect"]
	if !ok || rect.Kind != kindList || len(rect.List) != 4 {
		return annotation{}, false
	}
	coords := make([]float64, 4)
	for i, v := range rect.List {
		if v.Kind != kindNumber {
			return annotation{}, false
		}
		coords[i] = v.Num
	}
	box := layout.SourceBox{X0: coords[0], Y0: coords[1], X1: coords[2], Y1: coords[3]}.Flip(pageHeight)
	if !box.IsValid() {
		return annotation{}, false
	}

	action := graph.deref(dict.Dict["A"])
	if action.Kind != kindDict {
		return annotation{}, false
	}
	actionType, ok := action.Dict["S"]
	if !ok || actionType.Kind != kindName {
		return annotation{}, false
	}

	var target string
	if actionType.Name == "GoTo" {
		dest := action.Dict["D"]
		switch dest.Kind {
		case kindString:
			target = "#" + dest.Str
		case kindName:
			target = "#" + dest.Name
		default:
			return annotation{}, false
		}
	} else {
		literal, ok := action.Dict[actionType.Name]
		if !ok {
			return annotation{}, false
		}
		switch literal.Kind {
		case kindString:
			target = literal.Str
		case kindName:
			target = literal.Name
		default:
			return annotation{}, false
		}
	}

	return annotation{box: box, target: target}, true
}
