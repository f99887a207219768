package kml

import (
	"bytes"
	"encoding/json"

	"github.com/KimNorgaard/go-kml/tree"
)

const (
	// MediaType is the media type of KML documents.
	MediaType = "application/vnd.google-earth.kml+xml"
	// Extension is the file name extension of KML documents.
	Extension = ".kml"
	// Header is the XML declaration written ahead of encoded markup.
	Header = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"
)

// Parse converts KML markup to a tree.
func Parse(data []byte, opts ...Option) (*tree.Document, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	return decode(data, o)
}

// Unmarshal converts KML markup and stores the tree in doc.
func Unmarshal(data []byte, doc *tree.Document, opts ...Option) error {
	return NewDecoder(bytes.NewReader(data), opts...).Decode(doc)
}

// Marshal returns the KML markup of v, starting with the XML declaration.
//
// v may be a *tree.Document or tree.Document, the JSON text of a tree as a
// string, []byte or json.RawMessage, or a decoded JSON object of type
// map[string]any. Any other value fails with an *InvalidInputError.
func Marshal(v any, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	e := NewEncoder(&buf, opts...)
	if err := e.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ToJSON converts KML markup to the JSON text of its tree.
func ToJSON(data []byte, opts ...Option) ([]byte, error) {
	doc, err := Parse(data, opts...)
	if err != nil {
		return nil, err
	}
	return doc.MarshalJSON()
}

// Clean removes whitespace-only text from the tree held by v, which may be
// any value accepted by Marshal. Sibling orders are left as they are; call
// Renumber on the result to close the gaps.
func Clean(v any) (*tree.Document, error) {
	doc, err := toDocument(v)
	if err != nil {
		return nil, err
	}
	return doc.Prune(), nil
}

// Indent returns the JSON text of doc indented for reading.
func Indent(doc *tree.Document) ([]byte, error) {
	b, err := doc.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, b, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
