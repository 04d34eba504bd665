package backend

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/foliodocs/folio/model"
)

// hOCR is the HTML-based OCR result format: ocr_page nodes hold
// ocrx_word nodes, each with a "title" attribute carrying the word's
// pixel bounding box ("bbox x0 y0 x1 y1"). hOCR coordinates already use
// a top-left origin, so no flip is needed.

// parseHOCR converts an hOCR document into model pages of Word
// elements.
func parseHOCR(data string) ([]*model.Page, error) {
	root, err := html.Parse(strings.NewReader(data))
	if err != nil {
		return nil, err
	}

	var pages []*model.Page
	walkHOCR(root, func(n *html.Node) {
		if !hasClass(n, "ocr_page") {
			return
		}
		box, ok := titleBBox(n)
		if !ok {
			box = model.BBox{}
		}
		page := model.NewPage(len(pages)+1, box)
		collectWords(n, page)
		pages = append(pages, page)
	})
	return pages, nil
}

// collectWords appends one Word element per ocrx_word node under n.
func collectWords(n *html.Node, page *model.Page) {
	walkHOCR(n, func(node *html.Node) {
		if !hasClass(node, "ocrx_word") {
			return
		}
		text := strings.TrimSpace(nodeText(node))
		if text == "" {
			return
		}
		box, ok := titleBBox(node)
		if !ok {
			return
		}
		page.AddElement(wordFromOCR(text, box))
	})
}

// wordFromOCR builds a Word whose characters divide the word box
// evenly. OCR reports no typography, so characters carry a bare font
// holding only the estimated size.
func wordFromOCR(text string, box model.BBox) *model.Word {
	runes := []rune(text)
	font := model.Font{Size: box.Height}

	charWidth := box.Width / float64(len(runes))
	chars := make([]model.Character, len(runes))
	for i, r := range runes {
		chars[i] = model.Character{
			Box: model.BBox{
				Left:   box.Left + float64(i)*charWidth,
				Top:    box.Top,
				Width:  charWidth,
				Height: box.Height,
			},
			Content: string(r),
			Font:    font,
		}
	}
	return model.NewWord(chars)
}

func walkHOCR(n *html.Node, visit func(*html.Node)) {
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkHOCR(c, visit)
	}
}

func hasClass(n *html.Node, class string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

// titleBBox parses the "bbox x0 y0 x1 y1" clause of an hOCR title
// attribute.
func titleBBox(n *html.Node) (model.BBox, bool) {
	var title string
	for _, attr := range n.Attr {
		if attr.Key == "title" {
			title = attr.Val
			break
		}
	}
	if title == "" {
		return model.BBox{}, false
	}

	for _, clause := range strings.Split(title, ";") {
		fields := strings.Fields(strings.TrimSpace(clause))
		if len(fields) != 5 || fields[0] != "bbox" {
			continue
		}
		vals := make([]float64, 4)
		ok := true
		for i, f := range fields[1:] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				ok = false
				break
			}
			vals[i] = v
		}
		if !ok {
			continue
		}
		return model.BBox{
			Left:   vals[0],
			Top:    vals[1],
			Width:  vals[2] - vals[0],
			Height: vals[3] - vals[1],
		}, true
	}
	return model.BBox{}, false
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(nodeText(c))
	}
	return sb.String()
}
