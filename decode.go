package kml

import (
	"fmt"
	"io"

	"github.com/KimNorgaard/go-kml/lexer"
	"github.com/KimNorgaard/go-kml/parser"
	"github.com/KimNorgaard/go-kml/tree"
)

// Decoder reads and converts KML documents from an input stream.
type Decoder struct {
	r    io.Reader
	opts []Option
}

// NewDecoder returns a new decoder that reads from r.
//
// Functional options can be provided to configure the decoding process,
// such as the handling of literal blocks or a maximum nesting depth.
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	return &Decoder{r: r, opts: opts}
}

// Decode reads a KML document from its input and stores its tree in doc.
//
// Malformed input is recovered from. The recovered problems are logged at
// debug level and, under the Strict option, returned as an
// errors.ParseErrors value, in which case doc is left untouched.
//
// Note: This is a non-streaming implementation. It reads the entire
// reader into memory first before parsing.
func (d *Decoder) Decode(doc *tree.Document) error {
	if d.r == nil {
		return fmt.Errorf("kml: Decode(nil reader)")
	}
	if doc == nil {
		return fmt.Errorf("kml: Decode(nil *tree.Document)")
	}
	o, err := newOptions(d.opts)
	if err != nil {
		return err
	}
	data, err := io.ReadAll(d.r)
	if err != nil {
		return err
	}
	parsed, err := decode(data, o)
	if err != nil {
		return err
	}
	*doc = *parsed
	return nil
}

func decode(data []byte, o *options) (*tree.Document, error) {
	doc, p, err := parse(data, o)
	if err != nil {
		return nil, err
	}
	if diags := p.Errors(); o.strict && len(diags) > 0 {
		return nil, diags
	}
	return doc, nil
}

// parse builds the tree of data and logs what the parser recovered from.
// The parser is returned for what it recorded about the source.
func parse(data []byte, o *options) (*tree.Document, *parser.Parser, error) {
	src := parser.StripProcessingInstructions(data)
	p := parser.New(lexer.New(src), o.parserConfig())
	doc, err := p.Parse()
	if err != nil {
		return nil, nil, err
	}

	for _, e := range p.Errors() {
		o.logger.Debug().
			Int("line", e.Line).
			Int("column", e.Column).
			Msg(e.Message)
	}
	return doc, p, nil
}
