package parser

import (
	"fmt"
	"strings"

	"github.com/KimNorgaard/go-kml/tree"
)

// parseAttributes scans the attribute text of a start tag. It accepts
// name="value", name='value', unquoted name=value and bare names, which are
// valueless. Each attribute is read at the position the scanner reached, so
// a name can never match inside another name or inside a value.
//
// A repeated name keeps its first position and takes the last value. The
// returned messages describe anything that was skipped.
func parseAttributes(s string) (tree.Attributes, []string) {
	var (
		attrs    tree.Attributes
		problems []string
	)
	i, n := 0, len(s)
	skipSpace := func() {
		for i < n && isSpace(rune(s[i])) {
			i++
		}
	}

	for {
		skipSpace()
		if i >= n {
			break
		}

		switch c := s[i]; c {
		case '=', '/':
			problems = append(problems, fmt.Sprintf("unexpected %q in tag", c))
			i++
			continue
		case '"', '\'':
			end := strings.IndexByte(s[i+1:], c)
			if end < 0 {
				i = n
			} else {
				i += end + 2
			}
			problems = append(problems, "quoted text without attribute name")
			continue
		}

		start := i
		for i < n && !isSpace(rune(s[i])) && s[i] != '=' {
			i++
		}
		name := s[start:i]

		skipSpace()
		if i >= n || s[i] != '=' {
			if _, dup := attrs.Get(name); dup {
				problems = append(problems, fmt.Sprintf("duplicate attribute %q", name))
			}
			attrs.Set(name, nil)
			continue
		}
		i++ // '='
		skipSpace()

		var value string
		switch {
		case i >= n:
			problems = append(problems, fmt.Sprintf("attribute %q has no value", name))
		case s[i] == '"' || s[i] == '\'':
			q := s[i]
			end := strings.IndexByte(s[i+1:], q)
			if end < 0 {
				problems = append(problems, fmt.Sprintf("unterminated value of attribute %q", name))
				value, i = s[i+1:], n
			} else {
				value, i = s[i+1:i+1+end], i+end+2
			}
		default:
			start := i
			for i < n && !isSpace(rune(s[i])) {
				i++
			}
			value = s[start:i]
		}

		if _, dup := attrs.Get(name); dup {
			problems = append(problems, fmt.Sprintf("duplicate attribute %q", name))
		}
		attrs.Set(name, tree.String(value))
	}
	return attrs, problems
}
