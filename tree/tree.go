// Package tree defines the ordered, attributed tree a KML document is
// converted to and from.
//
// A Document maps a single root tag name to an Element. Every Element keeps
// its attributes in source order and its children under child keys: the
// tag name for the first occurrence of a name, "name--N" for repeats, and
// "textN" for runs of character data. Each child records its position among
// its siblings in Order, which is what fixes document order; the order of
// keys in a JSON object carries no meaning.
package tree

import (
	"cmp"
	"slices"
)

// Node is a child of an Element: either an *Element or a *Text.
type Node interface {
	// Position returns the zero-based position of the node among its siblings.
	Position() int
	setPosition(int)
}

// Document is the root of a converted KML document.
type Document struct {
	// Name is the tag name of the root element.
	Name string
	// Root is nil for a document that holds no element.
	Root *Element
}

// Element represents one tag instance.
type Element struct {
	Attributes Attributes `json:"attributes"`
	Order      int        `json:"order"`
	Children   Children   `json:"children"`
}

func (e *Element) Position() int     { return e.Order }
func (e *Element) setPosition(o int) { e.Order = o }

// Text represents a run of character data, or a literal block, found
// between or around child elements.
type Text struct {
	Order int    `json:"order"`
	Data  string `json:"data"`
}

func (t *Text) Position() int     { return t.Order }
func (t *Text) setPosition(o int) { t.Order = o }

// Renumber reassigns the Order of every child in the document so that each
// sibling list is again a permutation of 0..n-1, keeping relative order.
func (d *Document) Renumber() *Document {
	if d.Root != nil {
		d.Root.Renumber()
	}
	return d
}

// Renumber reassigns the Order of e's children, recursively, so that they
// are numbered 0..n-1 in their current relative order.
func (e *Element) Renumber() {
	n := 0
	for _, c := range e.Children.Sorted() {
		if c.Node == nil {
			continue
		}
		c.Node.setPosition(n)
		n++
		if el, ok := c.Node.(*Element); ok {
			el.Renumber()
		}
	}
}

// Sorted returns a copy of c ordered by ascending position. Children with
// equal positions keep their relative order.
func (c Children) Sorted() Children {
	sorted := slices.Clone(c)
	slices.SortStableFunc(sorted, func(a, b Child) int {
		return cmp.Compare(position(a.Node), position(b.Node))
	})
	return sorted
}

func position(n Node) int {
	if n == nil {
		return 0
	}
	return n.Position()
}
