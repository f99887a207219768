package tree

import "regexp"

// blankRun matches a newline together with the whitespace around it, the
// shape of indentation between element tags.
var blankRun = regexp.MustCompile(`\s*\n\s*`)

// IsBlank reports whether data holds nothing but newline-separated
// indentation. Whitespace without a newline, such as a single space between
// two inline elements, is not blank.
func IsBlank(data string) bool {
	return blankRun.ReplaceAllString(data, "") == ""
}

// Prune removes every blank text child from the document, recursively. The
// positions of the remaining children are left as they are; call Renumber
// to close the gaps.
func (d *Document) Prune() *Document {
	if d.Root != nil {
		d.Root.Prune()
	}
	return d
}

// Prune removes the blank text children of e and of every element below it.
func (e *Element) Prune() {
	kept := make(Children, 0, len(e.Children))
	for _, c := range e.Children {
		switch n := c.Node.(type) {
		case *Text:
			if IsTextKey(c.Key) && IsBlank(n.Data) {
				continue
			}
		case *Element:
			n.Prune()
		}
		kept = append(kept, c)
	}
	if len(kept) == 0 {
		kept = nil
	}
	e.Children = kept
}
