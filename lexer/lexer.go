package lexer

import (
	"bytes"
	"unicode/utf8"

	"github.com/KimNorgaard/go-kml/token"
)

// Lexer holds the state for tokenizing markup source.
//
// The lexer never rejects input: bytes that do not form markup are returned
// as TEXT and constructs that run into the end of input are returned as
// ILLEGAL tokens carrying the remaining source.
type Lexer struct {
	input        []byte
	position     int
	readPosition int
	ch           rune
	line         int
	column       int
}

// New creates and returns a new Lexer.
func New(input []byte) *Lexer {
	l := &Lexer{input: input, line: 1, column: 1}
	l.readChar()
	return l
}

// NextToken scans the input and returns the next token.
func (l *Lexer) NextToken() token.Token {
	tok := token.Token{Offset: l.position, Line: l.line, Column: l.column}
	if l.atEOF() {
		tok.Type = token.EOF
		return tok
	}

	ok := true
	switch {
	case l.ch != '<' || !l.startsMarkup():
		tok.Type = token.TEXT
		l.readText()
	case l.hasPrefix("<!--"):
		tok.Type = token.COMMENT
		ok = l.skipPast("-->")
	case l.hasPrefix("<![CDATA["):
		tok.Type = token.CDATA
		ok = l.skipPast("]]>")
	case l.hasPrefix("<?"):
		tok.Type = token.PROC_INST
		ok = l.skipPast("?>")
	case l.hasPrefix("<!"):
		tok.Type = token.DIRECTIVE
		ok = l.readTag()
	case l.hasPrefix("</"):
		tok.Type = token.END_TAG
		ok = l.readTag()
	default:
		tok.Type = token.START_TAG
		ok = l.readTag()
	}
	if !ok {
		tok.Type = token.ILLEGAL
	}
	tok.Literal = string(l.input[tok.Offset:l.position])
	return tok
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = len(l.input)
		return
	}
	r, size := utf8.DecodeRune(l.input[l.readPosition:])
	if r == utf8.RuneError {
		l.ch = -1
	} else {
		l.ch = r
	}
	l.position = l.readPosition
	l.readPosition += size
}

func (l *Lexer) advance() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	l.readChar()
	l.column++
}

func (l *Lexer) atEOF() bool {
	return l.position >= len(l.input)
}

func (l *Lexer) peekByte(n int) byte {
	if l.position+n >= len(l.input) {
		return 0
	}
	return l.input[l.position+n]
}

func (l *Lexer) hasPrefix(s string) bool {
	return bytes.HasPrefix(l.input[l.position:], []byte(s))
}

// startsMarkup reports whether the '<' under examination opens a tag,
// comment, literal block, processing instruction or directive. A '<' that
// does not, as in "a < b", is plain text.
func (l *Lexer) startsMarkup() bool {
	switch next := l.peekByte(1); {
	case next == '!' || next == '?':
		return true
	case next == '/':
		return isNameStart(l.peekByte(2))
	default:
		return isNameStart(next)
	}
}

func (l *Lexer) readText() {
	l.advance()
	for !l.atEOF() && (l.ch != '<' || !l.startsMarkup()) {
		l.advance()
	}
}

// skipPast consumes input up to and including delim. It returns false if the
// input ends first.
func (l *Lexer) skipPast(delim string) bool {
	for !l.atEOF() {
		if l.hasPrefix(delim) {
			for range delim {
				l.advance()
			}
			return true
		}
		l.advance()
	}
	return false
}

// readTag consumes a tag up to and including its closing '>'. A '>' inside
// a quoted attribute value does not end the tag.
func (l *Lexer) readTag() bool {
	var quote rune
	var last rune
	for !l.atEOF() {
		switch {
		case quote != 0:
			if l.ch == quote {
				quote = 0
			}
		case (l.ch == '"' || l.ch == '\'') && last == '=':
			quote = l.ch
		case l.ch == '>':
			l.advance()
			return true
		}
		if !isSpace(l.ch) {
			last = l.ch
		}
		l.advance()
	}
	return false
}

func isNameStart(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_' || ch == ':' || ch >= utf8.RuneSelf
}

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}
