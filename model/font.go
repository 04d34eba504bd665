package model

// FontWeight represents the weight of a font.
type FontWeight int

const (
	// WeightMedium is the default (regular) weight.
	WeightMedium FontWeight = iota
	// WeightBold is the bold weight.
	WeightBold
)

// String returns a string representation of the weight.
func (w FontWeight) String() string {
	if w == WeightBold {
		return "bold"
	}
	return "medium"
}

// Font describes the typographic attributes of a character or word.
// Font is comparable: two fonts are equal iff every field matches
// exactly. There is no ordering between fonts.
type Font struct {
	Family    string
	Size      float64
	Weight    FontWeight
	Italic    bool
	Underline bool
	ColorHex  string
}

// UndefinedFont is the sentinel font assigned to words that contain no
// characters. It compares unequal to any font produced by extraction.
var UndefinedFont = Font{Family: "\x00undefined"}

// IsUndefined reports whether f is the undefined-font sentinel.
func (f Font) IsUndefined() bool {
	return f == UndefinedFont
}

// DominantFont returns the font shared by the largest group of
// structurally equal fonts in the input. Fonts are bucketed in order:
// each font joins the first bucket whose representative it equals, or
// opens a new bucket. On a tie, the bucket opened earliest wins.
// An empty input returns UndefinedFont.
func DominantFont(fonts []Font) Font {
	if len(fonts) == 0 {
		return UndefinedFont
	}

	type bucket struct {
		font  Font
		count int
	}
	var buckets []bucket

	for _, f := range fonts {
		placed := false
		for i := range buckets {
			if buckets[i].font == f {
				buckets[i].count++
				placed = true
				break
			}
		}
		if !placed {
			buckets = append(buckets, bucket{font: f, count: 1})
		}
	}

	best := buckets[0]
	for _, b := range buckets[1:] {
		if b.count > best.count {
			best = b
		}
	}
	return best.font
}
