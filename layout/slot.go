package layout

import (
	"strings"

	"github.com/foliodocs/folio/model"
)

// SourceBox is a raw tool-reported bounding box in the extraction
// tool's coordinate space: origin at the bottom-left of the page, Y
// increasing upward, edges given as x0,y0 (lower-left) and x1,y1
// (upper-right).
type SourceBox struct {
	X0, Y0, X1, Y1 float64
}

// Flip converts a source box to the model's top-left coordinate space
// for a page of the given height.
func (s SourceBox) Flip(pageHeight float64) model.BBox {
	height := s.Y1 - s.Y0
	return model.BBox{
		Left:   s.X0,
		Top:    abs(pageHeight-s.Y0) - height,
		Width:  s.X1 - s.X0,
		Height: height,
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// CharSlot is one raw character record of a text line as reported by
// the extraction tool. A slot is either concrete (glyph, box and font
// attributes) or empty: tool separators and artifacts carry no glyph,
// and some carry no font attributes either.
type CharSlot struct {
	// Text is the reported glyph. Empty or whitespace-only text marks
	// an empty slot.
	Text string

	// Box is the glyph's box in source coordinates. Only meaningful
	// for concrete slots.
	Box SourceBox

	// Font holds the slot's font attributes, nil when the tool
	// reported none.
	Font *model.Font
}

// Empty reports whether the slot carries no visible glyph.
func (s CharSlot) Empty() bool {
	return strings.TrimSpace(s.Text) == ""
}

// HasFont reports whether the slot carries font attributes.
func (s CharSlot) HasFont() bool {
	return s.Font != nil
}
