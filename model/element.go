package model

// ElementType represents the type of page element.
type ElementType int

const (
	ElementTypeUnknown ElementType = iota
	ElementTypeWord
	ElementTypeImage
	ElementTypeTableOfContents
)

func (et ElementType) String() string {
	switch et {
	case ElementTypeWord:
		return "Word"
	case ElementTypeImage:
		return "Image"
	case ElementTypeTableOfContents:
		return "TableOfContents"
	default:
		return "Unknown"
	}
}

// Element is the interface for all page elements. Every element knows
// its position on the page and can render itself as HTML, Markdown, or
// plain text.
type Element interface {
	Type() ElementType
	BoundingBox() BBox
	ToHTML() string
	ToMarkdown() string
	GetText() string
}

// CompositeElement is an element that contains other elements.
type CompositeElement interface {
	Element
	Content() []Element
}
