package model

import (
	"html"
	"strings"
)

// Character is an immutable leaf holding a single extracted glyph with
// its position and font. Characters are owned exclusively by the Word
// that contains them.
type Character struct {
	Box     BBox
	Content string
	Font    Font
}

// LinkInfo holds link facts attached to a Word by the link-detection
// cleaner. Markdown is the fully rendered Markdown link, Target the raw
// link target (URL, mailto address, or in-document anchor).
type LinkInfo struct {
	Markdown string
	Target   string
}

// Word is a run of characters with no internal word boundary. Its box
// is the merge of its characters' boxes and its font the dominant font
// among its characters.
type Word struct {
	Box        BBox
	Characters []Character
	Font       Font

	// Link is set by the link-detection cleaner; nil means no link was
	// found for this word.
	Link *LinkInfo
}

// NewWord builds a Word from its characters, computing the merged box
// and the dominant font. A word with no characters gets a zero box and
// the UndefinedFont sentinel.
func NewWord(chars []Character) *Word {
	w := &Word{Characters: chars}

	if len(chars) == 0 {
		w.Font = UndefinedFont
		return w
	}

	boxes := make([]BBox, len(chars))
	fonts := make([]Font, len(chars))
	for i, c := range chars {
		boxes[i] = c.Box
		fonts[i] = c.Font
	}
	w.Box = Merge(boxes...)
	w.Font = DominantFont(fonts)
	return w
}

func (w *Word) Type() ElementType { return ElementTypeWord }
func (w *Word) BoundingBox() BBox { return w.Box }

// GetText returns the word's text, the concatenation of its characters.
func (w *Word) GetText() string {
	var sb strings.Builder
	for _, c := range w.Characters {
		sb.WriteString(c.Content)
	}
	return sb.String()
}

// ToHTML renders the word as an HTML fragment. Bold and italic fonts
// map to <b> and <i>; a detected link wraps the word in an anchor.
func (w *Word) ToHTML() string {
	text := html.EscapeString(w.GetText())
	if w.Font.Weight == WeightBold {
		text = "<b>" + text + "</b>"
	}
	if w.Font.Italic {
		text = "<i>" + text + "</i>"
	}
	if w.Link != nil {
		text = `<a href="` + html.EscapeString(w.Link.Target) + `">` + text + "</a>"
	}
	return text
}

// ToMarkdown renders the word as Markdown. A detected link renders as
// the cleaner's prepared Markdown link; otherwise bold and italic fonts
// map to ** and * emphasis.
func (w *Word) ToMarkdown() string {
	if w.Link != nil {
		return w.Link.Markdown
	}
	text := w.GetText()
	if w.Font.Weight == WeightBold {
		text = "**" + text + "**"
	}
	if w.Font.Italic {
		text = "*" + text + "*"
	}
	return text
}
