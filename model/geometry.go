package model

import "math"

// BBox represents a bounding box (rectangle) in page coordinates.
// The origin is the top-left corner of the page, with Y increasing
// downward.
type BBox struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// NewBBox creates a bounding box from its top-left corner and dimensions.
func NewBBox(left, top, width, height float64) BBox {
	return BBox{Left: left, Top: top, Width: width, Height: height}
}

// Right returns the right edge X coordinate.
func (b BBox) Right() float64 {
	return b.Left + b.Width
}

// Bottom returns the bottom edge Y coordinate.
func (b BBox) Bottom() float64 {
	return b.Top + b.Height
}

// Area returns the area of the bounding box.
func (b BBox) Area() float64 {
	return b.Width * b.Height
}

// IsValid returns true if the bounding box has non-negative dimensions.
func (b BBox) IsValid() bool {
	return b.Width >= 0 && b.Height >= 0
}

// Intersects checks if two bounding boxes intersect.
func (b BBox) Intersects(other BBox) bool {
	return !(b.Right() < other.Left ||
		b.Left > other.Right() ||
		b.Bottom() < other.Top ||
		b.Top > other.Bottom())
}

// Intersection returns the intersection of two bounding boxes, or a
// zero box if they do not intersect.
func (b BBox) Intersection(other BBox) BBox {
	if !b.Intersects(other) {
		return BBox{}
	}

	left := math.Max(b.Left, other.Left)
	top := math.Max(b.Top, other.Top)
	right := math.Min(b.Right(), other.Right())
	bottom := math.Min(b.Bottom(), other.Bottom())

	return BBox{
		Left:   left,
		Top:    top,
		Width:  right - left,
		Height: bottom - top,
	}
}

// Union returns the smallest bounding box covering both boxes.
func (b BBox) Union(other BBox) BBox {
	left := math.Min(b.Left, other.Left)
	top := math.Min(b.Top, other.Top)
	right := math.Max(b.Right(), other.Right())
	bottom := math.Max(b.Bottom(), other.Bottom())

	return BBox{
		Left:   left,
		Top:    top,
		Width:  right - left,
		Height: bottom - top,
	}
}

// Merge returns the smallest bounding box covering all input boxes.
// Each edge of the result equals the corresponding extreme edge among
// the inputs. Merging an empty set returns a zero box.
func Merge(boxes ...BBox) BBox {
	if len(boxes) == 0 {
		return BBox{}
	}

	merged := boxes[0]
	for _, box := range boxes[1:] {
		merged = merged.Union(box)
	}
	return merged
}

// OverlapRatio returns the fraction of b's area covered by other.
// The result is in [0, 1]: 1 when b is fully contained in other, 0 for
// disjoint boxes. Note the asymmetry: b.OverlapRatio(other) and
// other.OverlapRatio(b) generally differ.
func (b BBox) OverlapRatio(other BBox) float64 {
	if b.Area() == 0 {
		return 0
	}
	return b.Intersection(other).Area() / b.Area()
}
