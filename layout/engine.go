// Package layout reconstructs words from the raw positioned character
// stream reported by an extraction tool. The tool reports characters,
// not words: word boundaries must be recovered from empty separator
// slots while tolerating tool artifacts (fake spaces) and invisible
// code points, and coordinates must be flipped from the tool's
// bottom-left origin to the model's top-left origin.
package layout

import (
	"strings"

	"github.com/foliodocs/folio/model"
)

// zeroWidthSpace is dropped from the character stream before any
// boundary detection: it is invisible and would otherwise split words.
const zeroWidthSpace = "​"

// unresolvedPrefix marks glyphs the extraction tool could not map to a
// code point; they render as "?".
const unresolvedPrefix = "(cid:"

// Config holds configuration for word reconstruction.
type Config struct {
	// Separator is the word-separator character (default: space).
	Separator string
}

// DefaultConfig returns the default reconstruction configuration.
func DefaultConfig() Config {
	return Config{Separator: " "}
}

// Reconstructor turns one text line's raw character slots into ordered
// Word elements.
type Reconstructor struct {
	config Config
}

// NewReconstructor creates a reconstructor with default configuration.
func NewReconstructor() *Reconstructor {
	return &Reconstructor{config: DefaultConfig()}
}

// NewReconstructorWithConfig creates a reconstructor with custom
// configuration. An empty separator falls back to the default.
func NewReconstructorWithConfig(config Config) *Reconstructor {
	if config.Separator == "" {
		config.Separator = " "
	}
	return &Reconstructor{config: config}
}

// Line reconstructs the ordered words of one text line. The returned
// slice may be empty: a line holding only separators and artifacts
// yields no words. pageHeight is the source page height used for the
// coordinate flip.
func (r *Reconstructor) Line(slots []CharSlot, pageHeight float64) []*model.Word {
	slots = dropInvisible(slots)
	slots = dropFakeSpaces(slots)
	slots = r.trim(slots)

	if len(slots) == 0 {
		return nil
	}

	boundaries := r.boundaries(slots)

	var words []*model.Word
	var chars []model.Character

	flush := func() {
		if len(chars) > 0 {
			words = append(words, model.NewWord(chars))
			chars = nil
		}
	}

	for i, slot := range slots {
		if boundaries[i] {
			flush()
			continue
		}
		if slot.Empty() {
			continue
		}
		chars = append(chars, toCharacter(slot, pageHeight))
	}
	flush()

	return words
}

// dropInvisible removes slots whose content is an invisible code point.
func dropInvisible(slots []CharSlot) []CharSlot {
	out := make([]CharSlot, 0, len(slots))
	for _, s := range slots {
		if s.Text == zeroWidthSpace {
			continue
		}
		out = append(out, s)
	}
	return out
}

// dropFakeSpaces removes extraction-tool artifacts: an attribute-less
// empty slot immediately followed by an empty slot that does carry
// font attributes is not a real content gap.
func dropFakeSpaces(slots []CharSlot) []CharSlot {
	out := make([]CharSlot, 0, len(slots))
	for i, s := range slots {
		if s.Empty() && !s.HasFont() &&
			i+1 < len(slots) && slots[i+1].Empty() && slots[i+1].HasFont() {
			continue
		}
		out = append(out, s)
	}
	return out
}

// trim drops a leading and a trailing slot that is empty or equals the
// separator.
func (r *Reconstructor) trim(slots []CharSlot) []CharSlot {
	if len(slots) > 0 && r.isSeparator(slots[0]) {
		slots = slots[1:]
	}
	if len(slots) > 0 && r.isSeparator(slots[len(slots)-1]) {
		slots = slots[:len(slots)-1]
	}
	return slots
}

// boundaries marks the word-boundary slots: empty or separator slots,
// excluding the first and final position.
func (r *Reconstructor) boundaries(slots []CharSlot) []bool {
	marks := make([]bool, len(slots))
	for i := 1; i < len(slots)-1; i++ {
		if r.isSeparator(slots[i]) {
			marks[i] = true
		}
	}
	return marks
}

func (r *Reconstructor) isSeparator(s CharSlot) bool {
	return s.Empty() || s.Text == r.config.Separator
}

// toCharacter converts a concrete slot into a model Character, flipping
// the box into top-left coordinates and rendering unresolved glyph
// codes as "?".
func toCharacter(slot CharSlot, pageHeight float64) model.Character {
	content := slot.Text
	if strings.HasPrefix(content, unresolvedPrefix) {
		content = "?"
	}

	var font model.Font
	if slot.Font != nil {
		font = *slot.Font
	}

	return model.Character{
		Box:     slot.Box.Flip(pageHeight),
		Content: content,
		Font:    font,
	}
}
