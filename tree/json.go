package tree

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMultipleRoots is returned when decoding a document object with more
// than one top-level entry.
var ErrMultipleRoots = errors.New("kml: document must have exactly one root element")

var jsonNull = []byte("null")

// MarshalJSON encodes d as an object with a single entry mapping the root
// tag name to the root element. An empty document encodes as {}.
func (d Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if d.Root != nil {
		if err := writeEntry(&buf, d.Name, d.Root); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a document object. It fails with ErrMultipleRoots
// if the object holds more than one entry.
func (d *Document) UnmarshalJSON(data []byte) error {
	*d = Document{}
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := expectDelim(dec, '{', "document"); err != nil {
		return err
	}
	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return err
		}
		if d.Root != nil {
			return ErrMultipleRoots
		}
		root := &Element{}
		if err := dec.Decode(root); err != nil {
			return fmt.Errorf("kml: decoding root element %q: %w", key, err)
		}
		d.Name, d.Root = key, root
	}
	return expectDelim(dec, '}', "document")
}

// MarshalJSON encodes a as an object in attribute order. Valueless
// attributes encode as null.
func (a Attributes) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, attr := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		var value any
		if attr.Value != nil {
			value = *attr.Value
		}
		if err := writeEntry(&buf, attr.Name, value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an attribute object, keeping key order. String
// values are taken as is, numbers keep their literal text and null marks a
// valueless attribute.
func (a *Attributes) UnmarshalJSON(data []byte) error {
	*a = nil
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := expectDelim(dec, '{', "attributes"); err != nil {
		return err
	}
	for dec.More() {
		name, err := readKey(dec)
		if err != nil {
			return err
		}
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		switch v := tok.(type) {
		case nil:
			a.Set(name, nil)
		case string:
			a.Set(name, String(v))
		case json.Number:
			a.Set(name, String(v.String()))
		default:
			return fmt.Errorf("kml: attribute %q: unsupported value %v", name, tok)
		}
	}
	return expectDelim(dec, '}', "attributes")
}

// MarshalJSON encodes c as an object whose entries appear in document order.
func (c Children) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, child := range c.Sorted() {
		if child.Node == nil {
			return nil, fmt.Errorf("kml: child %q has no node", child.Key)
		}
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeEntry(&buf, child.Key, child.Node); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a children object. Entries under text keys decode
// as *Text, all others as *Element.
func (c *Children) UnmarshalJSON(data []byte) error {
	*c = nil
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := expectDelim(dec, '{', "children"); err != nil {
		return err
	}
	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return err
		}
		var n Node
		if IsTextKey(key) {
			n = &Text{}
		} else {
			n = &Element{}
		}
		if err := dec.Decode(n); err != nil {
			return fmt.Errorf("kml: decoding child %q: %w", key, err)
		}
		c.Set(key, n)
	}
	return expectDelim(dec, '}', "children")
}

func writeEntry(buf *bytes.Buffer, key string, value any) error {
	k, err := marshal(key)
	if err != nil {
		return err
	}
	v, err := marshal(value)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)
	return nil
}

// marshal is json.Marshal without HTML escaping, so that markup kept in
// text data stays readable.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func readKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("kml: expected object key, got %v", tok)
	}
	return key, nil
}

func expectDelim(dec *json.Decoder, want json.Delim, what string) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("kml: reading %s: %w", what, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("kml: %s must be a JSON object, got %v", what, tok)
	}
	return nil
}
