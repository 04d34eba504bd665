package clean

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/foliodocs/folio/backend"
)

// The metadata tool emits a generic object-graph XML describing the
// PDF's internal structure: numbered objects holding dictionaries,
// lists, names, strings, numbers, and references to other objects by
// id. Only Page objects and their Annots entries matter here, but the
// parse is generic.

type valueKind int

const (
	kindNull valueKind = iota
	kindName
	kindString
	kindNumber
	kindRef
	kindList
	kindDict
)

// objValue is one node of the parsed object graph.
type objValue struct {
	Kind valueKind
	Name string
	Str  string
	Num  float64
	Ref  int
	List []objValue
	Dict map[string]objValue
}

// graphObject is a top-level numbered object.
type graphObject struct {
	ID    int
	Value objValue
}

// objectGraph holds the parsed graph with objects retrievable by id
// and iterable in document order.
type objectGraph struct {
	order   []graphObject
	objects map[int]objValue
}

// parseObjectGraph decodes the metadata tool's XML output.
func parseObjectGraph(r io.Reader) (*objectGraph, error) {
	dec := xml.NewDecoder(r)
	graph := &objectGraph{objects: make(map[int]objValue)}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "object" {
			continue
		}

		id, err := intAttr(start, "id")
		if err != nil {
			if skipErr := dec.Skip(); skipErr != nil {
				return nil, skipErr
			}
			continue
		}

		value, err := parseObjectBody(dec, start.Name)
		if err != nil {
			return nil, err
		}
		graph.order = append(graph.order, graphObject{ID: id, Value: value})
		graph.objects[id] = value
	}
	return graph, nil
}

// parseObjectBody reads the single value nested in an <object> element
// and consumes the closing tag.
func parseObjectBody(dec *xml.Decoder, objName xml.Name) (objValue, error) {
	value := objValue{}
	haveValue := false

	for {
		tok, err := dec.Token()
		if err != nil {
			return objValue{}, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if haveValue {
				if err := dec.Skip(); err != nil {
					return objValue{}, err
				}
				continue
			}
			value, err = parseValue(dec, t)
			if err != nil {
				return objValue{}, err
			}
			haveValue = true
		case xml.EndElement:
			if t.Name == objName {
				return value, nil
			}
		}
	}
}

// parseValue parses one value element (dict, list, ref, name, string,
// number, or anything else as null), consuming through its end tag.
func parseValue(dec *xml.Decoder, start xml.StartElement) (objValue, error) {
	switch start.Name.Local {
	case "dict":
		return parseDict(dec, start.Name)
	case "list":
		return parseList(dec, start.Name)
	case "ref":
		id, err := intAttr(start, "id")
		if skipErr := dec.Skip(); skipErr != nil {
			return objValue{}, skipErr
		}
		if err != nil {
			return objValue{Kind: kindNull}, nil
		}
		return objValue{Kind: kindRef, Ref: id}, nil
	case "name":
		text, err := elementText(dec)
		if err != nil {
			return objValue{}, err
		}
		return objValue{Kind: kindName, Name: text}, nil
	case "string":
		text, err := elementText(dec)
		if err != nil {
			return objValue{}, err
		}
		return objValue{Kind: kindString, Str: text}, nil
	case "number":
		text, err := elementText(dec)
		if err != nil {
			return objValue{}, err
		}
		num, parseErr := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if parseErr != nil {
			return objValue{Kind: kindNull}, nil
		}
		return objValue{Kind: kindNumber, Num: num}, nil
	default:
		if err := dec.Skip(); err != nil {
			return objValue{}, err
		}
		return objValue{Kind: kindNull}, nil
	}
}

func parseDict(dec *xml.Decoder, dictName xml.Name) (objValue, error) {
	value := objValue{Kind: kindDict, Dict: make(map[string]objValue)}
	var pendingKey string
	haveKey := false

	for {
		tok, err := dec.Token()
		if err != nil {
			return objValue{}, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "key":
				text, err := elementText(dec)
				if err != nil {
					return objValue{}, err
				}
				pendingKey = strings.TrimSpace(text)
				haveKey = true
			case "value":
				inner, err := parseWrappedValue(dec, t.Name)
				if err != nil {
					return objValue{}, err
				}
				if haveKey {
					value.Dict[pendingKey] = inner
					haveKey = false
				}
			default:
				if err := dec.Skip(); err != nil {
					return objValue{}, err
				}
			}
		case xml.EndElement:
			if t.Name == dictName {
				return value, nil
			}
		}
	}
}

// parseWrappedValue parses the value nested inside a <value> wrapper.
func parseWrappedValue(dec *xml.Decoder, wrapper xml.Name) (objValue, error) {
	inner := objValue{Kind: kindNull}
	haveInner := false

	for {
		tok, err := dec.Token()
		if err != nil {
			return objValue{}, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if haveInner {
				if err := dec.Skip(); err != nil {
					return objValue{}, err
				}
				continue
			}
			inner, err = parseValue(dec, t)
			if err != nil {
				return objValue{}, err
			}
			haveInner = true
		case xml.EndElement:
			if t.Name == wrapper {
				return inner, nil
			}
		}
	}
}

func parseList(dec *xml.Decoder, listName xml.Name) (objValue, error) {
	value := objValue{Kind: kindList}

	for {
		tok, err := dec.Token()
		if err != nil {
			return objValue{}, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			item, err := parseValue(dec, t)
			if err != nil {
				return objValue{}, err
			}
			value.List = append(value.List, item)
		case xml.EndElement:
			if t.Name == listName {
				return value, nil
			}
		}
	}
}

func elementText(dec *xml.Decoder) (string, error) {
	var sb strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.StartElement:
			if err := dec.Skip(); err != nil {
				return "", err
			}
		case xml.EndElement:
			return sb.String(), nil
		}
	}
}

func intAttr(start xml.StartElement, name string) (int, error) {
	for _, attr := range start.Attr {
		if attr.Name.Local == name {
			return strconv.Atoi(attr.Value)
		}
	}
	return 0, fmt.Errorf("missing %q attribute", name)
}

// resolveAnnotationDicts dereferences an Annots entry down to concrete
// annotation dictionaries. A reference may point directly to a
// dictionary or to a further list of references, at unbounded depth.
// The traversal is an explicit worklist with a visited set: revisiting
// an id means a reference cycle, which well-formed output never
// contains.
func resolveAnnotationDicts(graph *objectGraph, annots objValue) ([]objValue, error) {
	var dicts []objValue
	work := []objValue{annots}
	visited := make(map[int]bool)

	for len(work) > 0 {
		v := work[0]
		work = work[1:]

		switch v.Kind {
		case kindRef:
			if visited[v.Ref] {
				return nil, &backend.MalformedOutputError{
					Tool:   "metadata",
					Reason: fmt.Sprintf("reference cycle through object %d", v.Ref),
				}
			}
			visited[v.Ref] = true
			target, ok := graph.objects[v.Ref]
			if !ok {
				continue
			}
			// Prepend to keep annotation list order across levels of
			// indirection.
			work = append([]objValue{target}, work...)
		case kindList:
			work = append(append([]objValue{}, v.List...), work...)
		case kindDict:
			dicts = append(dicts, v)
		}
	}
	return dicts, nil
}

// deref resolves a value through at most one level of indirection.
func (g *objectGraph) deref(v objValue) objValue {
	if v.Kind == kindRef {
		if target, ok := g.objects[v.Ref]; ok {
			return target
		}
	}
	return v
}

// isPage reports whether a graph object is a Page dictionary.
func isPage(v objValue) bool {
	if v.Kind != kindDict {
		return false
	}
	t, ok := v.Dict["Type"]
	return ok && t.Kind == kindName && t.Name == "Page"
}
