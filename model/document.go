package model

import "strings"

// Document represents the complete structured output of one extraction
// run. It owns its pages exclusively: a document belongs to exactly one
// in-flight pipeline run, is mutated in place by each cleaner module in
// turn, and is never shared across concurrent runs.
type Document struct {
	SourceFile string
	Pages      []*Page
}

// NewDocument creates a new empty document for the given source file.
func NewDocument(sourceFile string) *Document {
	return &Document{
		SourceFile: sourceFile,
		Pages:      make([]*Page, 0),
	}
}

// AddPage appends a page to the document.
func (d *Document) AddPage(page *Page) {
	d.Pages = append(d.Pages, page)
}

// GetPage returns a page by number (1-indexed), or nil if out of range.
func (d *Document) GetPage(number int) *Page {
	for _, p := range d.Pages {
		if p.Number == number {
			return p
		}
	}
	return nil
}

// PageCount returns the total number of pages.
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// ExtractText returns the text of all pages, separated by blank lines.
func (d *Document) ExtractText() string {
	texts := make([]string, 0, len(d.Pages))
	for _, page := range d.Pages {
		texts = append(texts, page.ExtractText())
	}
	return strings.Join(texts, "\n\n")
}

// ElementsOf returns all elements of type T across all pages, in page
// and element order. With recursive set, composite elements are
// descended into and matching children are included after their parent.
// A method cannot be generic, hence the package-level function.
func ElementsOf[T Element](d *Document, recursive bool) []T {
	var out []T
	for _, page := range d.Pages {
		out = append(out, elementsIn[T](page.Elements, recursive)...)
	}
	return out
}

// ElementsOfPage is ElementsOf restricted to a single page.
func ElementsOfPage[T Element](p *Page, recursive bool) []T {
	return elementsIn[T](p.Elements, recursive)
}

func elementsIn[T Element](elements []Element, recursive bool) []T {
	var out []T
	for _, el := range elements {
		if typed, ok := el.(T); ok {
			out = append(out, typed)
		}
		if !recursive {
			continue
		}
		if comp, ok := el.(CompositeElement); ok {
			out = append(out, elementsIn[T](comp.Content(), recursive)...)
		}
	}
	return out
}
