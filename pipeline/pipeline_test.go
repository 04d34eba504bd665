package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/foliodocs/folio/backend"
	"github.com/foliodocs/folio/clean"
	"github.com/foliodocs/folio/model"
)

type fakeBackend struct {
	delay time.Duration
	err   error
}

func (b *fakeBackend) Run(ctx context.Context, inputFile string) (*model.Document, error) {
	if b.delay > 0 {
		select {
		case <-time.After(b.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if b.err != nil {
		return nil, b.err
	}
	doc := model.NewDocument(inputFile)
	doc.AddPage(model.NewPage(1, model.NewBBox(0, 0, 612, 792)))
	return doc, nil
}

type markerModule struct{ applied *bool }

func (m *markerModule) Name() string { return "marker" }

func (m *markerModule) Apply(ctx context.Context, doc *model.Document) (*model.Document, error) {
	*m.applied = true
	return doc, nil
}

func TestRunExtractsAndCleans(t *testing.T) {
	applied := false
	p := New(Config{
		Backend: &fakeBackend{},
		Chain:   clean.NewChain(nil, &markerModule{applied: &applied}),
	})

	doc, err := p.Run(context.Background(), "input.pdf")
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if doc.SourceFile != "input.pdf" || doc.PageCount() != 1 {
		t.Errorf("unexpected document: %+v", doc)
	}
	if !applied {
		t.Error("cleaner chain was not applied")
	}
}

func TestRunWithoutChain(t *testing.T) {
	p := New(Config{Backend: &fakeBackend{}})

	if _, err := p.Run(context.Background(), "input.pdf"); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
}

func TestRunPropagatesExtractionFailure(t *testing.T) {
	wantErr := &backend.ExtractionFailedError{Tool: "pdf2txt.py", ExitCode: 1}
	p := New(Config{Backend: &fakeBackend{err: wantErr}})

	_, err := p.Run(context.Background(), "input.pdf")
	var extractErr *backend.ExtractionFailedError
	if !errors.As(err, &extractErr) {
		t.Fatalf("Run() error = %v, want *ExtractionFailedError", err)
	}
}

func TestRunTimeout(t *testing.T) {
	p := New(Config{
		Backend: &fakeBackend{delay: time.Second},
		Timeout: 10 * time.Millisecond,
	})

	_, err := p.Run(context.Background(), "input.pdf")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Run() error = %v, want deadline exceeded", err)
	}
}

func TestRunRequiresBackend(t *testing.T) {
	if _, err := New(Config{}).Run(context.Background(), "input.pdf"); err == nil {
		t.Fatal("Run() without backend succeeded")
	}
}

// The stub OCR backend makes NestedRunner report ErrOCRNotEnabled,
// which the digital backend downgrades to "no nested text".
func TestNestedRunnerWithoutOCR(t *testing.T) {
	run := NestedRunner(backend.OCRConfig{})

	_, err := run(context.Background(), "image.png")
	if !errors.Is(err, backend.ErrOCRNotEnabled) {
		t.Fatalf("nested run error = %v, want ErrOCRNotEnabled", err)
	}
}
