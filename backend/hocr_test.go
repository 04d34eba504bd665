package backend

import (
	"testing"

	"github.com/foliodocs/folio/model"
)

const sampleHOCR = `<?xml version="1.0" encoding="UTF-8"?>
<html>
<body>
<div class='ocr_page' id='page_1' title='image "img.png"; bbox 0 0 800 600; ppageno 0'>
 <div class='ocr_carea' title='bbox 40 40 760 560'>
  <p class='ocr_par' title='bbox 40 40 760 120'>
   <span class='ocr_line' title='bbox 40 40 760 80; baseline 0 -5'>
    <span class='ocrx_word' title='bbox 40 40 160 80; x_wconf 95'>Scanned</span>
    <span class='ocrx_word' title='bbox 180 40 300 80; x_wconf 93'>page</span>
    <span class='ocrx_word' title='bbox 320 40 340 80; x_wconf 12'> </span>
   </span>
  </p>
 </div>
</div>
</body>
</html>`

func TestParseHOCR(t *testing.T) {
	pages, err := parseHOCR(sampleHOCR)
	if err != nil {
		t.Fatalf("parseHOCR() error: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("parsed %d pages, want 1", len(pages))
	}

	page := pages[0]
	if page.Box != model.NewBBox(0, 0, 800, 600) {
		t.Errorf("page box = %+v", page.Box)
	}

	words := model.ElementsOfPage[*model.Word](page, false)
	if len(words) != 2 {
		t.Fatalf("parsed %d words, want 2 (whitespace-only word dropped)", len(words))
	}
	if words[0].GetText() != "Scanned" || words[1].GetText() != "page" {
		t.Errorf("words = %q, %q", words[0].GetText(), words[1].GetText())
	}
	if words[0].Box != model.NewBBox(40, 40, 120, 40) {
		t.Errorf("first word box = %+v", words[0].Box)
	}
}

func TestParseHOCREmpty(t *testing.T) {
	pages, err := parseHOCR("<html><body></body></html>")
	if err != nil {
		t.Fatalf("parseHOCR() error: %v", err)
	}
	if len(pages) != 0 {
		t.Errorf("parsed %d pages from empty hOCR, want 0", len(pages))
	}
}

func TestWordFromOCRCharacterBoxes(t *testing.T) {
	w := wordFromOCR("abcd", model.NewBBox(0, 10, 40, 12))

	if len(w.Characters) != 4 {
		t.Fatalf("word has %d characters, want 4", len(w.Characters))
	}
	for i, c := range w.Characters {
		want := model.NewBBox(float64(i)*10, 10, 10, 12)
		if c.Box != want {
			t.Errorf("character %d box = %+v, want %+v", i, c.Box, want)
		}
	}
	if w.Box != model.NewBBox(0, 10, 40, 12) {
		t.Errorf("word box = %+v", w.Box)
	}
}
