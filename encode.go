package kml

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"sync"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/xml"

	"github.com/KimNorgaard/go-kml/internal/formatter"
	"github.com/KimNorgaard/go-kml/tree"
)

// Encoder writes KML documents to an output stream.
type Encoder struct {
	w    io.Writer
	opts []Option
}

// NewEncoder returns a new encoder that writes to w.
func NewEncoder(w io.Writer, opts ...Option) *Encoder {
	return &Encoder{w: w, opts: opts}
}

// Encode writes the KML markup of v to the stream, starting with the XML
// declaration. See Marshal for the values v may hold. Nothing is written
// when v cannot be encoded.
func (e *Encoder) Encode(v any) error {
	o, err := newOptions(e.opts)
	if err != nil {
		return err
	}
	doc, err := toDocument(v)
	if err != nil {
		return err
	}

	var body bytes.Buffer
	if err := formatter.New(&body, o.restore).Format(doc); err != nil {
		return err
	}
	out := bytes.NewBufferString(Header)
	if o.minify {
		if err := getMinifier().Minify(MediaType, out, &body); err != nil {
			return fmt.Errorf("kml: minifying: %w", err)
		}
	} else {
		out.Write(body.Bytes())
	}
	_, err = out.WriteTo(e.w)
	return err
}

var (
	minifier *minify.M
	once     sync.Once
)

// getMinifier returns the XML minifier (singleton).
func getMinifier() *minify.M {
	once.Do(func() {
		minifier = minify.New()
		minifier.AddFunc(MediaType, xml.Minify)
	})
	return minifier
}

// toDocument converts the values accepted by Marshal to a tree.
func toDocument(v any) (*tree.Document, error) {
	switch v := v.(type) {
	case *tree.Document:
		if v == nil {
			return nil, &InvalidInputError{Type: reflect.TypeOf(v)}
		}
		return v, nil
	case tree.Document:
		return &v, nil
	case string:
		return decodeJSON([]byte(v))
	case []byte:
		return decodeJSON(v)
	case json.RawMessage:
		return decodeJSON(v)
	case map[string]any:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("kml: %w", err)
		}
		return decodeJSON(b)
	default:
		return nil, &InvalidInputError{Type: reflect.TypeOf(v)}
	}
}

func decodeJSON(data []byte) (*tree.Document, error) {
	doc := &tree.Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("kml: decoding tree JSON: %w", err)
	}
	return doc, nil
}
