package model

// Page represents a single page of a document. A page owns its
// elements exclusively; no external aliasing is permitted once a
// pipeline run begins.
type Page struct {
	Number   int  // 1-indexed page number
	Box      BBox // media box in top-left coordinates
	Elements []Element
}

// NewPage creates an empty page with the given number and media box.
func NewPage(number int, box BBox) *Page {
	return &Page{
		Number:   number,
		Box:      box,
		Elements: make([]Element, 0),
	}
}

// AddElement appends an element to the page.
func (p *Page) AddElement(elem Element) {
	p.Elements = append(p.Elements, elem)
}

// ExtractText concatenates the text of all elements on the page,
// separated by spaces.
func (p *Page) ExtractText() string {
	var text string
	for _, elem := range p.Elements {
		t := elem.GetText()
		if t == "" {
			continue
		}
		if text != "" {
			text += " "
		}
		text += t
	}
	return text
}
