package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/foliodocs/folio/layout"
	"github.com/foliodocs/folio/model"
)

// DefaultExtractTool is the external text-extraction binary the
// digital backend invokes when no tool path is configured.
const DefaultExtractTool = "pdf2txt.py"

// PDFTextConfig configures the digital-text backend.
type PDFTextConfig struct {
	// ToolPath is the extraction binary (default: DefaultExtractTool).
	ToolPath string

	// ImageDir receives embedded-image side files. Empty means a
	// fresh temporary directory per run; the caller owns cleanup of a
	// configured directory.
	ImageDir string

	// Separator is the word-separator character forwarded to the
	// layout engine (default: space).
	Separator string

	// SubRun performs nested extraction of embedded images. Nil
	// disables nested runs: figures still yield Image elements, but
	// no OCR text.
	SubRun SubRunner

	// Logger for diagnostics (default: slog.Default).
	Logger *slog.Logger
}

func (c *PDFTextConfig) defaults() {
	if c.ToolPath == "" {
		c.ToolPath = DefaultExtractTool
	}
	if c.Separator == "" {
		c.Separator = " "
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// PDFText extracts digital text from a PDF by running the external
// extraction tool and reconstructing words from its character stream.
// Embedded figures become Image elements; when a nested runner is
// configured, each figure additionally triggers a recursive OCR
// extraction whose elements are merged into the owning page.
type PDFText struct {
	cfg    PDFTextConfig
	recon  *layout.Reconstructor
	logger *slog.Logger
}

// NewPDFText creates a digital-text backend.
func NewPDFText(cfg PDFTextConfig) *PDFText {
	cfg.defaults()
	return &PDFText{
		cfg:    cfg,
		recon:  layout.NewReconstructorWithConfig(layout.Config{Separator: cfg.Separator}),
		logger: cfg.Logger.With("backend", "pdftext"),
	}
}

// Run extracts the input file into a document. A non-zero tool exit is
// fatal to the run and surfaces as *ExtractionFailedError.
func (b *PDFText) Run(ctx context.Context, inputFile string) (*model.Document, error) {
	tmpDir, err := os.MkdirTemp("", "folio-extract-")
	if err != nil {
		return nil, fmt.Errorf("creating work dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	imageDir := b.cfg.ImageDir
	if imageDir == "" {
		imageDir = filepath.Join(tmpDir, "images")
		if err := os.Mkdir(imageDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating image dir: %w", err)
		}
	}

	outPath := filepath.Join(tmpDir, "extract.xml")
	args := []string{"-t", "xml", "-o", outPath, "--output-dir", imageDir, inputFile}
	b.logger.Debug("running extraction tool", "tool", b.cfg.ToolPath, "input", inputFile)
	if err := RunTool(ctx, b.cfg.ToolPath, args...); err != nil {
		return nil, err
	}

	f, err := os.Open(outPath)
	if err != nil {
		return nil, fmt.Errorf("reading tool output: %w", err)
	}
	parsed, err := decodeExtractionXML(f)
	f.Close()
	if err != nil {
		return nil, &MalformedOutputError{Tool: b.cfg.ToolPath, Reason: err.Error()}
	}

	doc := model.NewDocument(inputFile)
	pages := make([]*model.Page, len(parsed.Pages))

	// Pages build independently; completion order is irrelevant
	// because results land at their index.
	g, gctx := errgroup.WithContext(ctx)
	for i, xpage := range parsed.Pages {
		i, xpage := i, xpage
		g.Go(func() error {
			page, err := b.buildPage(gctx, xpage, imageDir)
			if err != nil {
				return fmt.Errorf("page %d: %w", xpage.ID, err)
			}
			pages[i] = page
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(pages, func(i, j int) bool { return pages[i].Number < pages[j].Number })
	for _, p := range pages {
		doc.AddPage(p)
	}
	return doc, nil
}

// buildPage reconstructs one page: words line by line, then figures,
// then the joined output of all nested image runs.
func (b *PDFText) buildPage(ctx context.Context, xpage xmlPage, imageDir string) (*model.Page, error) {
	srcBox, err := parseSourceBox(xpage.BBox)
	if err != nil {
		return nil, &MalformedOutputError{Tool: b.cfg.ToolPath, Reason: err.Error()}
	}
	pageHeight := srcBox.Y1 - srcBox.Y0

	page := model.NewPage(xpage.ID, srcBox.Flip(pageHeight))

	for _, box := range xpage.TextBoxes {
		for _, line := range box.Lines {
			slots := make([]layout.CharSlot, 0, len(line.Chars))
			for _, c := range line.Chars {
				slots = append(slots, toSlot(c))
			}
			for _, word := range b.recon.Line(slots, pageHeight) {
				page.AddElement(word)
			}
		}
	}

	var imagePaths []string
	for _, fig := range xpage.Figures {
		figBox, err := parseSourceBox(fig.BBox)
		if err != nil {
			b.logger.Warn("skipping figure with bad bbox", "figure", fig.Name, "error", err)
			continue
		}
		for _, img := range fig.Images {
			src := filepath.Join(imageDir, img.Src)
			page.AddElement(&model.Image{Box: figBox.Flip(pageHeight), SourcePath: src})
			imagePaths = append(imagePaths, src)
		}
	}

	nested, err := b.runNested(ctx, imagePaths)
	if err != nil {
		return nil, err
	}
	for _, el := range nested {
		page.AddElement(el)
	}
	return page, nil
}

// runNested launches one nested extraction per embedded image, joins
// them, and returns their elements flattened in image order. A missing
// OCR capability degrades to no nested text; other nested failures are
// fatal to the page.
func (b *PDFText) runNested(ctx context.Context, imagePaths []string) ([]model.Element, error) {
	if b.cfg.SubRun == nil || len(imagePaths) == 0 {
		return nil, nil
	}

	results := make([][]model.Element, len(imagePaths))
	g, gctx := errgroup.WithContext(ctx)
	for i, path := range imagePaths {
		i, path := i, path
		g.Go(func() error {
			sub, err := b.cfg.SubRun(gctx, path)
			if err != nil {
				if errors.Is(err, ErrToolNotFound) || errors.Is(err, ErrOCRNotEnabled) {
					b.logger.Warn("nested image extraction unavailable", "image", path, "error", err)
					return nil
				}
				return fmt.Errorf("nested extraction of %s: %w", path, err)
			}
			var elements []model.Element
			for _, p := range sub.Pages {
				elements = append(elements, p.Elements...)
			}
			results[i] = elements
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var flat []model.Element
	for _, els := range results {
		flat = append(flat, els...)
	}
	return flat, nil
}
