package parser

import (
	"bytes"
	"strings"

	"github.com/KimNorgaard/go-kml/token"
)

type startTag struct {
	name        string
	attrs       string // everything between the name and the end of the tag
	selfClosing bool
}

// splitStartTag splits the literal of a start tag, such as
// `<Data name="a"/>`, into its parts. The name ends at the first
// whitespace, '/' or '>'.
func splitStartTag(literal string) startTag {
	s := strings.TrimPrefix(literal, "<")
	s = strings.TrimSuffix(s, ">")

	var tag startTag
	if trimmed := strings.TrimRightFunc(s, isSpace); strings.HasSuffix(trimmed, "/") {
		tag.selfClosing = true
		s = trimmed[:len(trimmed)-1]
	}

	end := strings.IndexFunc(s, func(r rune) bool {
		return isSpace(r) || r == '/'
	})
	if end < 0 {
		tag.name = s
		return tag
	}
	tag.name, tag.attrs = s[:end], s[end:]
	return tag
}

// ExpandSelfClosing rewrites the given self-closing start tags of src, as
// returned by Parser.SelfClosing for the same source, into an opening and
// a closing tag: <a x="1" /> becomes <a x="1"></a>.
func ExpandSelfClosing(src []byte, tags []token.Token) []byte {
	var buf bytes.Buffer
	last := 0
	for _, tok := range tags {
		end := tok.Offset + len(tok.Literal)
		if tok.Offset < last || end > len(src) || string(src[tok.Offset:end]) != tok.Literal {
			continue
		}
		tag := splitStartTag(tok.Literal)
		buf.Write(src[last:tok.Offset])
		buf.WriteString("<" + tag.name + strings.TrimRightFunc(tag.attrs, isSpace) + "></" + tag.name + ">")
		last = end
	}
	buf.Write(src[last:])
	return buf.Bytes()
}

// endTagName returns the name in the literal of a closing tag.
func endTagName(literal string) string {
	s := strings.TrimPrefix(literal, "</")
	s = strings.TrimSuffix(s, ">")
	s = strings.TrimLeftFunc(s, isSpace)
	if end := strings.IndexFunc(s, isSpace); end >= 0 {
		return s[:end]
	}
	return s
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
