package clean

import (
	"context"
	"testing"

	"github.com/foliodocs/folio/model"
)

// tocPage lays out a contents page: two entry lines plus a heading.
func tocPage() *model.Page {
	page := model.NewPage(1, model.NewBBox(0, 0, 612, 792))

	page.AddElement(wordAt("Contents", model.NewBBox(50, 40, 80, 14)))

	page.AddElement(wordAt("Introduction", model.NewBBox(50, 80, 100, 10)))
	page.AddElement(wordAt("........", model.NewBBox(160, 80, 300, 10)))
	page.AddElement(wordAt("3", model.NewBBox(470, 80, 10, 10)))

	page.AddElement(wordAt("Methods", model.NewBBox(50, 100, 80, 10)))
	page.AddElement(wordAt("..........", model.NewBBox(140, 100, 320, 10)))
	page.AddElement(wordAt("17", model.NewBBox(470, 100, 15, 10)))

	return page
}

func TestTOCGroupsEntryLines(t *testing.T) {
	doc := model.NewDocument("input.pdf")
	doc.AddPage(tocPage())

	m := NewTOC(TOCConfig{})
	out, err := m.Apply(context.Background(), doc)
	if err != nil {
		t.Fatalf("Apply() error: %v", err)
	}

	page := out.Pages[0]
	// The heading word plus one composite replacing the six entry
	// words.
	if len(page.Elements) != 2 {
		t.Fatalf("page has %d elements, want 2", len(page.Elements))
	}

	tocs := model.ElementsOfPage[*model.TableOfContents](page, false)
	if len(tocs) != 1 {
		t.Fatalf("found %d TableOfContents elements, want 1", len(tocs))
	}

	items := tocs[0].Items()
	if len(items) != 2 {
		t.Fatalf("composite has %d items, want 2", len(items))
	}
	if items[0].Title != "Introduction" || items[0].PageLabel != "3" {
		t.Errorf("first item = %+v", items[0])
	}
	if items[1].Title != "Methods" || items[1].PageLabel != "17" {
		t.Errorf("second item = %+v", items[1])
	}
}

func TestTOCContentPreservesElementOrder(t *testing.T) {
	want := []string{"Introduction", "........", "3", "Methods", "..........", "17"}

	// Repeat to catch any ordering that depends on set iteration.
	for run := 0; run < 10; run++ {
		doc := model.NewDocument("input.pdf")
		doc.AddPage(tocPage())

		if _, err := NewTOC(TOCConfig{}).Apply(context.Background(), doc); err != nil {
			t.Fatal(err)
		}

		tocs := model.ElementsOfPage[*model.TableOfContents](doc.Pages[0], false)
		if len(tocs) != 1 {
			t.Fatalf("found %d TableOfContents elements, want 1", len(tocs))
		}
		content := tocs[0].Content()
		if len(content) != len(want) {
			t.Fatalf("composite holds %d elements, want %d", len(content), len(want))
		}
		for i, el := range content {
			if got := el.GetText(); got != want[i] {
				t.Fatalf("content[%d] = %q, want %q", i, got, want[i])
			}
		}
	}
}

func TestTOCComposedWordsReachableRecursively(t *testing.T) {
	doc := model.NewDocument("input.pdf")
	doc.AddPage(tocPage())

	if _, err := NewTOC(TOCConfig{}).Apply(context.Background(), doc); err != nil {
		t.Fatal(err)
	}

	flat := model.ElementsOf[*model.Word](doc, false)
	if len(flat) != 1 {
		t.Errorf("top-level words = %d, want only the heading", len(flat))
	}
	deep := model.ElementsOf[*model.Word](doc, true)
	if len(deep) != 7 {
		t.Errorf("recursive words = %d, want all 7", len(deep))
	}
}

func TestTOCIgnoresSparsePages(t *testing.T) {
	page := model.NewPage(1, model.NewBBox(0, 0, 612, 792))
	page.AddElement(wordAt("One", model.NewBBox(50, 80, 30, 10)))
	page.AddElement(wordAt("...", model.NewBBox(90, 80, 300, 10)))
	page.AddElement(wordAt("5", model.NewBBox(470, 80, 10, 10)))

	doc := model.NewDocument("input.pdf")
	doc.AddPage(page)

	before := len(page.Elements)
	if _, err := NewTOC(TOCConfig{}).Apply(context.Background(), doc); err != nil {
		t.Fatal(err)
	}

	// A single entry line is below the default minimum; nothing moves.
	if len(page.Elements) != before {
		t.Errorf("sparse page restructured: %d elements", len(page.Elements))
	}
}

func TestTOCIgnoresBodyText(t *testing.T) {
	page := model.NewPage(1, model.NewBBox(0, 0, 612, 792))
	page.AddElement(wordAt("Plain", model.NewBBox(50, 80, 50, 10)))
	page.AddElement(wordAt("text", model.NewBBox(110, 80, 40, 10)))
	page.AddElement(wordAt("here", model.NewBBox(160, 80, 40, 10)))

	doc := model.NewDocument("input.pdf")
	doc.AddPage(page)

	if _, err := NewTOC(TOCConfig{}).Apply(context.Background(), doc); err != nil {
		t.Fatal(err)
	}
	if len(page.Elements) != 3 {
		t.Errorf("body page restructured: %d elements", len(page.Elements))
	}
}
