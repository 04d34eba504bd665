package model

import (
	"strings"
)

// TOCItem is a single entry in a table of contents.
type TOCItem struct {
	// Title is the entry text, without the dot leader or page label.
	Title string
	// PageLabel is the page reference printed after the dot leader,
	// empty when the entry has none.
	PageLabel string
	// Target is the in-document anchor or URL the entry links to,
	// taken from the first linked word in the entry. Empty when the
	// entry carries no link.
	Target string
}

// TableOfContents is a composite element grouping the words of a
// detected table-of-contents region. Items is derived from the content
// and is only recomputed when the content is replaced through
// SetContent; callers must not mutate the slice returned by Content
// and expect Items to stay consistent.
type TableOfContents struct {
	Box BBox

	content []Element
	items   []TOCItem
}

// NewTableOfContents creates a table of contents from its content
// elements, computing the merged box and the derived items.
func NewTableOfContents(content []Element) *TableOfContents {
	toc := &TableOfContents{}
	toc.SetContent(content)
	return toc
}

func (t *TableOfContents) Type() ElementType { return ElementTypeTableOfContents }
func (t *TableOfContents) BoundingBox() BBox { return t.Box }

// Content returns the content elements. The returned slice must be
// treated as read-only; use SetContent to replace it.
func (t *TableOfContents) Content() []Element { return t.content }

// Items returns the derived table-of-contents entries.
func (t *TableOfContents) Items() []TOCItem { return t.items }

// SetContent replaces the content and recomputes the derived items and
// the bounding box.
func (t *TableOfContents) SetContent(content []Element) {
	t.content = content
	t.items = deriveItems(content)

	boxes := make([]BBox, 0, len(content))
	for _, el := range content {
		boxes = append(boxes, el.BoundingBox())
	}
	t.Box = Merge(boxes...)
}

// GetText returns one line per derived item, "Title PageLabel".
func (t *TableOfContents) GetText() string {
	lines := make([]string, 0, len(t.items))
	for _, item := range t.items {
		line := item.Title
		if item.PageLabel != "" {
			line += " " + item.PageLabel
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// ToHTML renders the items as an unordered list.
func (t *TableOfContents) ToHTML() string {
	var sb strings.Builder
	sb.WriteString("<ul>")
	for _, item := range t.items {
		sb.WriteString("<li>")
		if item.Target != "" {
			sb.WriteString(`<a href="` + item.Target + `">` + item.Title + "</a>")
		} else {
			sb.WriteString(item.Title)
		}
		if item.PageLabel != "" {
			sb.WriteString(" " + item.PageLabel)
		}
		sb.WriteString("</li>")
	}
	sb.WriteString("</ul>")
	return sb.String()
}

// ToMarkdown renders the items as a Markdown list.
func (t *TableOfContents) ToMarkdown() string {
	lines := make([]string, 0, len(t.items))
	for _, item := range t.items {
		title := item.Title
		if item.Target != "" {
			title = "[" + title + "](" + item.Target + ")"
		}
		if item.PageLabel != "" {
			title += " " + item.PageLabel
		}
		lines = append(lines, "- "+title)
	}
	return strings.Join(lines, "\n")
}

// deriveItems splits the content at dot-leader words: the words before
// a leader form the entry title, the first numeric word after it the
// page label. Content without leaders yields one item per trailing
// numeric word boundary, or a single item when none exists.
func deriveItems(content []Element) []TOCItem {
	var items []TOCItem
	var current TOCItem
	var titleWords []string
	afterLeader := false

	flush := func() {
		if len(titleWords) == 0 && current.PageLabel == "" {
			return
		}
		current.Title = strings.Join(titleWords, " ")
		items = append(items, current)
		current = TOCItem{}
		titleWords = nil
		afterLeader = false
	}

	for _, el := range content {
		word, ok := el.(*Word)
		if !ok {
			continue
		}
		text := word.GetText()

		switch {
		case isDotLeader(text):
			afterLeader = true
		case afterLeader && isNumeric(text):
			current.PageLabel = text
			flush()
		default:
			if afterLeader {
				// Leader not followed by a page number: close the
				// entry without a label.
				flush()
			}
			if word.Link != nil && current.Target == "" {
				current.Target = word.Link.Target
			}
			titleWords = append(titleWords, text)
		}
	}
	flush()

	return items
}

func isDotLeader(s string) bool {
	if len(s) < 2 {
		return false
	}
	return strings.Count(s, ".") == len(s)
}

func isNumeric(s string) bool {
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
