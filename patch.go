package kml

import (
	"cmp"
	"fmt"
	"slices"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/KimNorgaard/go-kml/tree"
)

// Patch applies an RFC 6902 JSON patch to the JSON form of the tree held by
// v, which may be any value accepted by Marshal, and returns the resulting
// tree. Paths address the JSON form, as in
// /kml/children/Document/children/name/children/text0/data.
//
// Attributes that survive the patch keep their original order; added ones
// follow them.
func Patch(v any, patch []byte) (*tree.Document, error) {
	doc, err := toDocument(v)
	if err != nil {
		return nil, err
	}
	ops, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return nil, fmt.Errorf("kml: decoding patch: %w", err)
	}
	d, err := doc.MarshalJSON()
	if err != nil {
		return nil, err
	}
	out, err := ops.Apply(d)
	if err != nil {
		return nil, fmt.Errorf("kml: applying patch: %w", err)
	}
	patched, err := decodeJSON(out)
	if err != nil {
		return nil, err
	}
	if doc.Root != nil && patched.Root != nil && doc.Name == patched.Name {
		keepAttributeOrder(doc.Root, patched.Root)
	}
	return patched, nil
}

// keepAttributeOrder sorts the attributes of patched, and of its children
// found under the same keys in orig, by their position in orig.
func keepAttributeOrder(orig, patched *tree.Element) {
	rank := make(map[string]int, len(orig.Attributes))
	for i, a := range orig.Attributes {
		rank[a.Name] = i
	}
	slices.SortStableFunc(patched.Attributes, func(a, b tree.Attribute) int {
		ra, okA := rank[a.Name]
		rb, okB := rank[b.Name]
		switch {
		case okA && okB:
			return cmp.Compare(ra, rb)
		case okA:
			return -1
		case okB:
			return 1
		}
		return 0
	})

	for _, c := range patched.Children {
		el, ok := c.Node.(*tree.Element)
		if !ok {
			continue
		}
		if o := orig.Children.Element(c.Key); o != nil {
			keepAttributeOrder(o, el)
		}
	}
}
