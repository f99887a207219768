package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/KimNorgaard/go-kml/tree"
)

// Formatter writes a tree as KML markup to an output stream.
type Formatter struct {
	w io.Writer
	// restore maps aliased tag names back to the names written.
	restore map[string]string
}

// New returns a new formatter that writes to w. Tag names found in restore
// are written as the name they map to.
func New(w io.Writer, restore map[string]string) *Formatter {
	return &Formatter{w: w, restore: restore}
}

// Format writes the markup of doc, without an XML declaration. An empty
// document writes nothing.
func (f *Formatter) Format(doc *tree.Document) error {
	if doc == nil || doc.Root == nil {
		return nil
	}
	return f.writeElement(doc.Name, doc.Root)
}

func (f *Formatter) write(s string) error {
	_, err := io.WriteString(f.w, s)
	return err
}

func (f *Formatter) writeElement(key string, el *tree.Element) error {
	name := f.tagName(key)
	if err := f.write("<" + name); err != nil {
		return err
	}
	for _, attr := range el.Attributes {
		if err := f.write(formatAttribute(attr)); err != nil {
			return err
		}
	}
	if err := f.write(">"); err != nil {
		return err
	}

	for _, child := range el.Children.Sorted() {
		if err := f.writeNode(child); err != nil {
			return err
		}
	}

	return f.write("</" + name + ">")
}

func (f *Formatter) writeNode(child tree.Child) error {
	switch n := child.Node.(type) {
	case *tree.Element:
		return f.writeElement(child.Key, n)
	case *tree.Text:
		return f.write(n.Data)
	case nil:
		return fmt.Errorf("kml: child %q has no node", child.Key)
	default:
		return fmt.Errorf("kml: unsupported node type for formatting: %T", n)
	}
}

func (f *Formatter) tagName(key string) string {
	name := tree.TagName(key)
	if original, ok := f.restore[name]; ok {
		return original
	}
	return name
}

// formatAttribute renders attr with its leading space. A value holding a
// double quote is single-quoted when it holds no single quote; otherwise its
// double quotes are written as &quot;.
func formatAttribute(attr tree.Attribute) string {
	if attr.Value == nil {
		return " " + attr.Name
	}
	v := *attr.Value
	if !strings.Contains(v, `"`) {
		return " " + attr.Name + `="` + v + `"`
	}
	if !strings.Contains(v, "'") {
		return " " + attr.Name + "='" + v + "'"
	}
	return " " + attr.Name + `="` + strings.ReplaceAll(v, `"`, "&quot;") + `"`
}
