package backend

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/htmlindex"

	"github.com/foliodocs/folio/layout"
	"github.com/foliodocs/folio/model"
)

// Extraction tool XML schema: pages hold text boxes, text boxes hold
// text lines, text lines hold character slots. Figures reference image
// side files written next to the XML output.

type xmlPages struct {
	XMLName xml.Name  `xml:"pages"`
	Pages   []xmlPage `xml:"page"`
}

type xmlPage struct {
	ID        int          `xml:"id,attr"`
	BBox      string       `xml:"bbox,attr"`
	TextBoxes []xmlTextBox `xml:"textbox"`
	Figures   []xmlFigure  `xml:"figure"`
}

type xmlTextBox struct {
	BBox  string        `xml:"bbox,attr"`
	Lines []xmlTextLine `xml:"textline"`
}

type xmlTextLine struct {
	BBox  string    `xml:"bbox,attr"`
	Chars []xmlText `xml:"text"`
}

type xmlText struct {
	Font    string `xml:"font,attr"`
	BBox    string `xml:"bbox,attr"`
	Size    string `xml:"size,attr"`
	NColour string `xml:"ncolour,attr"`
	Content string `xml:",chardata"`
}

type xmlFigure struct {
	Name   string     `xml:"name,attr"`
	BBox   string     `xml:"bbox,attr"`
	Images []xmlImage `xml:"image"`
}

type xmlImage struct {
	Src    string `xml:"src,attr"`
	Width  int    `xml:"width,attr"`
	Height int    `xml:"height,attr"`
}

// decodeExtractionXML parses the extraction tool's XML output. The
// tool may emit non-UTF-8 encodings; declared charsets resolve through
// the standard encoding index.
func decodeExtractionXML(r io.Reader) (*xmlPages, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		enc, err := htmlindex.Get(charset)
		if err != nil {
			return nil, fmt.Errorf("unsupported charset %q: %w", charset, err)
		}
		return enc.NewDecoder().Reader(input), nil
	}

	var pages xmlPages
	if err := dec.Decode(&pages); err != nil {
		return nil, err
	}
	return &pages, nil
}

// parseSourceBox parses a tool bounding-box attribute "x0,y0,x1,y1"
// (bottom-left origin).
func parseSourceBox(s string) (layout.SourceBox, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return layout.SourceBox{}, fmt.Errorf("bbox %q: want 4 comma-separated values", s)
	}

	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return layout.SourceBox{}, fmt.Errorf("bbox %q: %w", s, err)
		}
		vals[i] = v
	}
	return layout.SourceBox{X0: vals[0], Y0: vals[1], X1: vals[2], Y1: vals[3]}, nil
}

// parseFont derives model font attributes from the tool's font name
// and size. Tool font names look like "BAAAAA+LiberationSerif-Bold":
// an optional subset prefix, the family, and style suffixes.
func parseFont(name string, size string, ncolour string) model.Font {
	family := name
	if idx := strings.Index(family, "+"); idx >= 0 {
		family = family[idx+1:]
	}

	f := model.Font{
		Family:   family,
		ColorHex: colourToHex(ncolour),
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(size), 64); err == nil {
		f.Size = v
	}

	lower := strings.ToLower(name)
	if strings.Contains(lower, "bold") {
		f.Weight = model.WeightBold
	}
	if strings.Contains(lower, "italic") || strings.Contains(lower, "oblique") {
		f.Italic = true
	}
	return f
}

// colourToHex converts the tool's ncolour attribute to "#rrggbb".
// The attribute is either a single gray value or an "(r,g,b)" tuple,
// components in [0,1]. Unparseable input yields black.
func colourToHex(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "(")
	s = strings.TrimSuffix(s, ")")
	if s == "" {
		return "#000000"
	}

	parts := strings.Split(s, ",")
	comps := make([]float64, 0, 3)
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return "#000000"
		}
		comps = append(comps, v)
	}

	var r, g, b float64
	switch len(comps) {
	case 1:
		r, g, b = comps[0], comps[0], comps[0]
	case 3:
		r, g, b = comps[0], comps[1], comps[2]
	default:
		return "#000000"
	}

	return fmt.Sprintf("#%02x%02x%02x", channel(r), channel(g), channel(b))
}

func channel(v float64) int {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return int(v*255 + 0.5)
}

// toSlot converts one XML character record to a layout slot.
func toSlot(x xmlText) layout.CharSlot {
	slot := layout.CharSlot{Text: x.Content}

	if x.BBox != "" {
		if box, err := parseSourceBox(x.BBox); err == nil {
			slot.Box = box
		}
	}
	if x.Font != "" {
		font := parseFont(x.Font, x.Size, x.NColour)
		slot.Font = &font
	}
	return slot
}
