package kml

import (
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/KimNorgaard/go-kml/tree"
)

// ToYAML returns the YAML form of the tree held by v, which may be any value
// accepted by Marshal. It has the same shape as the JSON form.
func ToYAML(v any) ([]byte, error) {
	doc, err := toDocument(v)
	if err != nil {
		return nil, err
	}
	b, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("kml: encoding tree YAML: %w", err)
	}
	return b, nil
}

// FromYAML decodes a tree from its YAML form.
func FromYAML(data []byte) (*tree.Document, error) {
	doc := &tree.Document{}
	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("kml: decoding tree YAML: %w", err)
	}
	return doc, nil
}
