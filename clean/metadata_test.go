package clean

import (
	"errors"
	"strings"
	"testing"

	"github.com/foliodocs/folio/backend"
	"github.com/foliodocs/folio/model"
)

const sampleGraph = `<?xml version="1.0"?>
<pdf>
<object id="1">
 <dict size="3">
  <key>Type</key><value><name>Page</name></value>
  <key>MediaBox</key><value><list size="4"><number>0</number><number>0</number><number>612</number><number>792</number></list></value>
  <key>Annots</key><value><ref id="5" /></value>
 </dict>
</object>
<object id="5">
 <list size="2"><ref id="6" /><ref id="7" /></list>
</object>
<object id="6">
 <dict size="3">
  <key>Subtype</key><value><name>Link</name></value>
  <key>Rect</key><value><list size="4"><number>100</number><number>700</number><number>200</number><number>712</number></list></value>
  <key>A</key><value><dict size="2"><key>S</key><value><name>URI</name></value><key>URI</key><value><string size="19">https://example.com</string></value></dict></value>
 </dict>
</object>
<object id="7">
 <dict size="3">
  <key>Subtype</key><value><name>Link</name></value>
  <key>Rect</key><value><list size="4"><number>100</number><number>650</number><number>200</number><number>662</number></list></value>
  <key>A</key><value><dict size="2"><key>S</key><value><name>GoTo</name></value><key>D</key><value><string size="9">chapter-1</string></value></dict></value>
 </dict>
</object>
</pdf>
`

func parseSample(t *testing.T) *objectGraph {
	t.Helper()
	graph, err := parseObjectGraph(strings.NewReader(sampleGraph))
	if err != nil {
		t.Fatalf("parseObjectGraph() error: %v", err)
	}
	return graph
}

func TestParseObjectGraph(t *testing.T) {
	graph := parseSample(t)

	if len(graph.order) != 4 {
		t.Fatalf("parsed %d objects, want 4", len(graph.order))
	}
	if !isPage(graph.objects[1]) {
		t.Error("object 1 not recognized as Page")
	}
	if isPage(graph.objects[6]) {
		t.Error("annotation dict recognized as Page")
	}

	annots, ok := graph.objects[1].Dict["Annots"]
	if !ok || annots.Kind != kindRef || annots.Ref != 5 {
		t.Errorf("Annots = %+v, want ref to 5", annots)
	}
}

// Annots resolution follows references through intermediate lists at
// arbitrary depth until every reference lands on a dictionary.
func TestResolveAnnotationDicts(t *testing.T) {
	graph := parseSample(t)

	dicts, err := resolveAnnotationDicts(graph, graph.objects[1].Dict["Annots"])
	if err != nil {
		t.Fatalf("resolveAnnotationDicts() error: %v", err)
	}
	if len(dicts) != 2 {
		t.Fatalf("resolved %d dicts, want 2", len(dicts))
	}

	// List order is preserved through the indirection.
	if dicts[0].Dict["A"].Dict["S"].Name != "URI" {
		t.Errorf("first annotation action = %+v", dicts[0].Dict["A"])
	}
	if dicts[1].Dict["A"].Dict["S"].Name != "GoTo" {
		t.Errorf("second annotation action = %+v", dicts[1].Dict["A"])
	}
}

func TestResolveAnnotationDictsCycle(t *testing.T) {
	cyclic := `<pdf>
<object id="1"><list size="1"><ref id="2" /></list></object>
<object id="2"><list size="1"><ref id="1" /></list></object>
</pdf>`
	graph, err := parseObjectGraph(strings.NewReader(cyclic))
	if err != nil {
		t.Fatalf("parseObjectGraph() error: %v", err)
	}

	_, err = resolveAnnotationDicts(graph, objValue{Kind: kindRef, Ref: 1})
	var malformed *backend.MalformedOutputError
	if !errors.As(err, &malformed) {
		t.Fatalf("error = %v, want *MalformedOutputError for the cycle", err)
	}
}

func TestResolveAnnotationDictsMissingRef(t *testing.T) {
	graph := &objectGraph{objects: map[int]objValue{}}

	dicts, err := resolveAnnotationDicts(graph, objValue{Kind: kindRef, Ref: 42})
	if err != nil {
		t.Fatalf("resolveAnnotationDicts() error: %v", err)
	}
	if len(dicts) != 0 {
		t.Errorf("resolved %d dicts from dangling ref, want 0", len(dicts))
	}
}

func TestAnnotationFrom(t *testing.T) {
	graph := parseSample(t)
	m := NewLinks(LinksConfig{})

	uri, ok := m.annotationFrom(graph, graph.objects[6], 792)
	if !ok {
		t.Fatal("URI annotation not extracted")
	}
	if uri.target != "https://example.com" {
		t.Errorf("target = %q", uri.target)
	}
	// Rect 100,700..200,712 flips to top 80 on a 792pt page.
	want := model.BBox{Left: 100, Top: 80, Width: 100, Height: 12}
	if uri.box != want {
		t.Errorf("box = %+v, want %+v", uri.box, want)
	}

	goTo, ok := m.annotationFrom(graph, graph.objects[7], 792)
	if !ok {
		t.Fatal("GoTo annotation not extracted")
	}
	if goTo.target != "#chapter-1" {
		t.Errorf("GoTo target = %q, want #chapter-1", goTo.target)
	}
}

func TestAnnotationFromRejectsIncomplete(t *testing.T) {
	m := NewLinks(LinksConfig{})
	graph := &objectGraph{objects: map[int]objValue{}}

	noRect := objValue{Kind: kindDict, Dict: map[string]objValue{}}
	if _, ok := m.annotationFrom(graph, noRect, 792); ok {
		t.Error("annotation without Rect accepted")
	}

	noAction := objValue{Kind: kindDict, Dict: map[string]objValue{
		"Rect": {Kind: kindList, List: []objValue{
			{Kind: kindNumber}, {Kind: kindNumber}, {Kind: kindNumber}, {Kind: kindNumber},
		}},
	}}
	if _, ok := m.annotationFrom(graph, noAction, 792); ok {
		t.Error("annotation without action accepted")
	}

	// Inverted Rect coordinates flip to a box with negative extent.
	inverted := objValue{Kind: kindDict, Dict: map[string]objValue{
		"Rect": {Kind: kindList, List: []objValue{
			{Kind: kindNumber, Num: 200}, {Kind: kindNumber, Num: 712},
			{Kind: kindNumber, Num: 100}, {Kind: kindNumber, Num: 700},
		}},
		"A": {Kind: kindDict, Dict: map[string]objValue{
			"S":   {Kind: kindName, Name: "URI"},
			"URI": {Kind: kindString, Str: "https://example.com"},
		}},
	}}
	if _, ok := m.annotationFrom(graph, inverted, 792); ok {
		t.Error("annotation with inverted Rect accepted")
	}
}

func TestAnnotationsByPage(t *testing.T) {
	graph := parseSample(t)
	m := NewLinks(LinksConfig{})

	doc := model.NewDocument("input.pdf")
	doc.AddPage(model.NewPage(1, model.NewBBox(0, 0, 612, 792)))

	byPage := m.annotationsByPage(graph, doc)
	if len(byPage[1]) != 2 {
		t.Fatalf("page 1 has %d annotations, want 2", len(byPage[1]))
	}
	if byPage[1][0].target != "https://example.com" || byPage[1][1].target != "#chapter-1" {
		t.Errorf("annotations = %+v", byPage[1])
	}
}
