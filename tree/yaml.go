package tree

import (
	"strconv"

	"github.com/goccy/go-yaml"
)

// MarshalYAML implements yaml.InterfaceMarshaler. The document is emitted
// with the same shape as its JSON encoding, keeping attribute order and
// emitting children in document order.
func (d Document) MarshalYAML() (any, error) {
	if d.Root == nil {
		return yaml.MapSlice{}, nil
	}
	return yaml.MapSlice{{Key: d.Name, Value: d.Root.mapSlice()}}, nil
}

// UnmarshalYAML implements yaml.BytesUnmarshaler by converting the YAML
// source to JSON and decoding that.
func (d *Document) UnmarshalYAML(data []byte) error {
	j, err := yaml.YAMLToJSON(data)
	if err != nil {
		return err
	}
	return d.UnmarshalJSON(j)
}

func (e *Element) mapSlice() yaml.MapSlice {
	attrs := yaml.MapSlice{}
	for _, a := range e.Attributes {
		var v any
		if a.Value != nil {
			v = quoted(*a.Value)
		}
		attrs = append(attrs, yaml.MapItem{Key: a.Name, Value: v})
	}
	children := yaml.MapSlice{}
	for _, c := range e.Children.Sorted() {
		switch n := c.Node.(type) {
		case *Element:
			children = append(children, yaml.MapItem{Key: c.Key, Value: n.mapSlice()})
		case *Text:
			children = append(children, yaml.MapItem{Key: c.Key, Value: yaml.MapSlice{
				{Key: "order", Value: n.Order},
				{Key: "data", Value: quoted(n.Data)},
			}})
		}
	}
	return yaml.MapSlice{
		{Key: "attributes", Value: attrs},
		{Key: "order", Value: e.Order},
		{Key: "children", Value: children},
	}
}

// quoted is emitted as a double-quoted scalar. Plain and block scalars
// would fold or drop whitespace-only text and would retype values such as
// 12.5 or true.
type quoted string

// MarshalYAML implements yaml.BytesMarshaler.
func (q quoted) MarshalYAML() ([]byte, error) {
	return []byte(strconv.Quote(string(q))), nil
}
