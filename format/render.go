package format

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/foliodocs/folio/model"
)

// lineTolerance is the vertical slack, in points, within which two
// elements are considered part of the same output line.
const lineTolerance = 2.0

// Markdown renders the document as Markdown. Elements are grouped into
// lines by vertical position, lines into page blocks separated by a
// horizontal rule.
func Markdown(doc *model.Document) string {
	var pages []string
	for _, page := range doc.Pages {
		if block := renderPage(page, func(e model.Element) string { return e.ToMarkdown() }); block != "" {
			pages = append(pages, block)
		}
	}
	return strings.Join(pages, "\n\n---\n\n") + "\n"
}

// HTML renders the document as HTML by converting its Markdown form.
func HTML(doc *model.Document) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(Markdown(doc)), &buf); err != nil {
		return "", fmt.Errorf("rendering HTML: %w", err)
	}
	return buf.String(), nil
}

// renderPage groups a page's elements into lines and renders each
// element with the supplied function.
func renderPage(page *model.Page, render func(model.Element) string) string {
	elements := append([]model.Element{}, page.Elements...)
	sort.SliceStable(elements, func(i, j int) bool {
		bi, bj := elements[i].BoundingBox(), elements[j].BoundingBox()
		if diff := bi.Top - bj.Top; diff < -lineTolerance || diff > lineTolerance {
			return bi.Top < bj.Top
		}
		return bi.Left < bj.Left
	})

	var lines []string
	var current []string
	currentTop := 0.0
	flush := func() {
		if len(current) > 0 {
			lines = append(lines, strings.Join(current, " "))
			current = nil
		}
	}
	for _, e := range elements {
		text := render(e)
		if text == "" {
			continue
		}
		top := e.BoundingBox().Top
		if len(current) > 0 && (top-currentTop > lineTolerance || top-currentTop < -lineTolerance) {
			flush()
		}
		if len(current) == 0 {
			currentTop = top
		}
		current = append(current, text)
	}
	flush()
	return strings.Join(lines, "\n\n")
}
