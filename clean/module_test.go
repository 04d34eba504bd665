package clean

import (
	"context"
	"errors"
	"testing"

	"github.com/foliodocs/folio/model"
)

type recordingModule struct {
	name  string
	log   *[]string
	fail  error
	apply func(doc *model.Document)
}

func (m *recordingModule) Name() string { return m.name }

func (m *recordingModule) Apply(ctx context.Context, doc *model.Document) (*model.Document, error) {
	*m.log = append(*m.log, m.name)
	if m.fail != nil {
		return nil, m.fail
	}
	if m.apply != nil {
		m.apply(doc)
	}
	return doc, nil
}

func TestChainAppliesInOrder(t *testing.T) {
	var log []string
	chain := NewChain(nil,
		&recordingModule{name: "first", log: &log},
		&recordingModule{name: "second", log: &log},
		&recordingModule{name: "third", log: &log},
	)

	doc := model.NewDocument("input.pdf")
	out, err := chain.Apply(context.Background(), doc)
	if err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	if out != doc {
		t.Error("chain returned a different document")
	}

	want := []string{"first", "second", "third"}
	if len(log) != len(want) {
		t.Fatalf("applied %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("applied %v, want %v", log, want)
		}
	}
}

// A failing module aborts the remaining chain; the partial document is
// not delivered.
func TestChainAbortsOnFailure(t *testing.T) {
	var log []string
	boom := errors.New("boom")
	chain := NewChain(nil,
		&recordingModule{name: "first", log: &log},
		&recordingModule{name: "broken", log: &log, fail: boom},
		&recordingModule{name: "never", log: &log},
	)

	out, err := chain.Apply(context.Background(), model.NewDocument("input.pdf"))
	if !errors.Is(err, boom) {
		t.Fatalf("Apply() error = %v, want wrapped boom", err)
	}
	if out != nil {
		t.Error("Apply() returned a partial document on failure")
	}

	if len(log) != 2 || log[1] != "broken" {
		t.Errorf("applied %v, want chain stopped after the failure", log)
	}
}

func TestChainHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var log []string
	chain := NewChain(nil, &recordingModule{name: "never", log: &log})

	_, err := chain.Apply(ctx, model.NewDocument("input.pdf"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Apply() error = %v, want context.Canceled", err)
	}
	if len(log) != 0 {
		t.Errorf("modules ran after cancellation: %v", log)
	}
}

func TestRegistryBuiltins(t *testing.T) {
	r := NewRegistry()

	names := r.Names()
	if len(names) != 2 || names[0] != ModuleLinks || names[1] != ModuleTOC {
		t.Fatalf("Names() = %v", names)
	}

	links, err := r.New(ModuleLinks, map[string]any{"threshold": 0.9, "tool": "alt-dump"})
	if err != nil {
		t.Fatalf("New(links) error: %v", err)
	}
	lm, ok := links.(*Links)
	if !ok {
		t.Fatalf("New(links) returned %T", links)
	}
	if *lm.cfg.OverlapThreshold != 0.9 || lm.cfg.MetaTool != "alt-dump" {
		t.Errorf("links options not applied: %+v", lm.cfg)
	}

	// An int-typed threshold option is accepted too.
	links, err = r.New(ModuleLinks, map[string]any{"threshold": 1})
	if err != nil {
		t.Fatalf("New(links) error: %v", err)
	}
	if got := *links.(*Links).cfg.OverlapThreshold; got != 1.0 {
		t.Errorf("int threshold = %v, want 1.0", got)
	}

	if _, err := r.New("nope", nil); err == nil {
		t.Error("New(unknown) succeeded")
	}
}

func TestRegistryCustomModule(t *testing.T) {
	r := NewRegistry()
	var log []string
	r.Register("custom", func(options map[string]any) (Module, error) {
		return &recordingModule{name: "custom", log: &log}, nil
	})

	m, err := r.New("custom", nil)
	if err != nil {
		t.Fatalf("New(custom) error: %v", err)
	}
	if m.Name() != "custom" {
		t.Errorf("Name() = %q", m.Name())
	}
}
