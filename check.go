package kml

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/KimNorgaard/go-kml/errors"
	"github.com/KimNorgaard/go-kml/internal/formatter"
	"github.com/KimNorgaard/go-kml/parser"
)

// Report describes how markup survives a conversion to its tree and back.
type Report struct {
	// Diagnostics lists the malformed constructs the parser recovered from.
	Diagnostics errors.ParseErrors
	// Diffs turns the source, without processing instruction lines, into
	// the markup written back from its tree.
	Diffs []diffpatch.Diff
}

// Lossless reports whether the markup was written back unchanged.
func (r *Report) Lossless() bool {
	for _, d := range r.Diffs {
		if d.Type != diffpatch.DiffEqual {
			return false
		}
	}
	return true
}

// Write prints the report to w. Removed source text is shown as [-text-]
// and added text as {+text+}, in red and green when colored is set.
func (r *Report) Write(w io.Writer, colored bool) error {
	p := newPalette(colored)
	var sb strings.Builder

	if n := len(r.Diagnostics); n > 0 {
		fmt.Fprintf(&sb, "%s\n", p.note("%d recovered problem(s):", n))
		for _, e := range r.Diagnostics {
			fmt.Fprintf(&sb, "\t%s\n", e.Error())
		}
	}

	if r.Lossless() {
		sb.WriteString("round trip: lossless\n")
		_, err := io.WriteString(w, sb.String())
		return err
	}

	changes := 0
	for _, d := range r.Diffs {
		switch d.Type {
		case diffpatch.DiffDelete:
			sb.WriteString(p.del("[-%s-]", d.Text))
			changes++
		case diffpatch.DiffInsert:
			sb.WriteString(p.ins("{+%s+}", d.Text))
			changes++
		case diffpatch.DiffEqual:
			sb.WriteString(d.Text)
		}
	}
	fmt.Fprintf(&sb, "\nround trip: %s\n", p.note("%d change(s)", changes))
	_, err := io.WriteString(w, sb.String())
	return err
}

type palette struct {
	del, ins, note func(format string, a ...any) string
}

func newPalette(colored bool) palette {
	if !colored {
		return palette{del: fmt.Sprintf, ins: fmt.Sprintf, note: fmt.Sprintf}
	}
	mk := func(attrs ...color.Attribute) func(string, ...any) string {
		c := color.New(attrs...)
		c.EnableColor()
		return c.SprintfFunc()
	}
	return palette{
		del:  mk(color.FgRed),
		ins:  mk(color.FgGreen),
		note: mk(color.FgYellow),
	}
}

// Check converts markup to its tree and back and reports the differences.
// Aliased tag names are written back as they were spelled in the source
// unless a RestoreTag option says otherwise, and self-closing tags compare
// equal to the empty elements written for them. The Strict option does not
// apply.
func Check(data []byte, opts ...Option) (*Report, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	doc, p, err := parse(data, o)
	if err != nil {
		return nil, err
	}

	restore := make(map[string]string, len(o.unalias)+len(o.restore))
	for alias, name := range o.unalias {
		restore[alias] = name
	}
	for alias, name := range p.Spellings() {
		restore[alias] = name
	}
	for alias, name := range o.restore {
		restore[alias] = name
	}

	var buf bytes.Buffer
	if err := formatter.New(&buf, restore).Format(doc); err != nil {
		return nil, err
	}

	src := parser.ExpandSelfClosing(parser.StripProcessingInstructions(data), p.SelfClosing())
	source := strings.TrimSpace(string(src))
	written := strings.TrimSpace(buf.String())

	dmp := diffpatch.New()
	diffs := dmp.DiffMain(source, written, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	return &Report{Diagnostics: p.Errors(), Diffs: diffs}, nil
}
