// Package parser builds a tree.Document from the tokens of a KML document.
//
// The parser is permissive: unclosed elements are closed at the end of input
// or at an ancestor's closing tag, stray closing tags are skipped and
// unterminated constructs are kept as text. Each recovery is recorded as a
// diagnostic, available from Errors after Parse returns.
package parser

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	kmlerrors "github.com/KimNorgaard/go-kml/errors"
	"github.com/KimNorgaard/go-kml/lexer"
	"github.com/KimNorgaard/go-kml/token"
	"github.com/KimNorgaard/go-kml/tree"
)

// DefaultMaxDepth is the nesting depth used when Config.MaxDepth is zero.
const DefaultMaxDepth = 1000

// ErrMaxDepth is returned when elements nest deeper than the configured limit.
var ErrMaxDepth = errors.New("kml: maximum nesting depth exceeded")

// LiteralPolicy controls what happens to the content that follows a literal
// block such as <![CDATA[...]]>.
type LiteralPolicy int

const (
	// StopAtLiteral keeps the raw remainder of the parent's content, from the
	// literal block up to the parent's closing tag, as a single text child.
	// No further siblings are parsed.
	StopAtLiteral LiteralPolicy = iota
	// ContinueAfterLiteral makes each literal block its own text child and
	// carries on parsing siblings.
	ContinueAfterLiteral
)

const (
	cdataOpen  = "<![CDATA["
	cdataClose = "]]>"
)

// Config holds the parser settings.
type Config struct {
	Literal LiteralPolicy
	// StripLiteral removes the <![CDATA[ and ]]> delimiters from literal text.
	StripLiteral bool
	// Aliases maps lower-cased tag names to the name recorded in the tree.
	Aliases  map[string]string
	MaxDepth int
}

var procInstLine = regexp.MustCompile(`(?m)^<\?(.*?)\?>$`)

// StripProcessingInstructions blanks out every line that consists of a
// single processing instruction, such as the XML declaration. Line breaks are
// kept so that diagnostics report source positions.
func StripProcessingInstructions(src []byte) []byte {
	return procInstLine.ReplaceAll(src, nil)
}

// Parser holds the state of the parser.
type Parser struct {
	l      *lexer.Lexer
	cfg    Config
	errors kmlerrors.ParseErrors

	curToken  token.Token
	peekToken token.Token

	depth int
	// open holds the lower-cased names of the elements being parsed,
	// outermost first.
	open []string

	spellings   map[string]string
	selfClosing []token.Token
}

// New creates a new parser.
func New(l *lexer.Lexer, cfg Config) *Parser {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	p := &Parser{l: l, cfg: cfg}

	// Read two tokens, so curToken and peekToken are both set.
	p.nextToken()
	p.nextToken()

	return p
}

// Errors returns the diagnostics recorded during parsing.
func (p *Parser) Errors() kmlerrors.ParseErrors {
	return p.errors
}

// Spellings maps each alias recorded in the tree to the tag name it replaced,
// as first spelled in the source.
func (p *Parser) Spellings() map[string]string {
	return p.spellings
}

// SelfClosing returns the self-closing start tags that became elements, in
// source order.
func (p *Parser) SelfClosing() []token.Token {
	return p.selfClosing
}

// Parse builds the document from the first start tag of the input. Input
// with no element yields an empty document. The only error returned is
// ErrMaxDepth; everything else is recovered from and recorded in Errors.
func (p *Parser) Parse() (*tree.Document, error) {
	doc := &tree.Document{}

	for !p.curTokenIs(token.EOF) && !p.curTokenIs(token.START_TAG) {
		switch p.curToken.Type {
		case token.END_TAG:
			p.errorf(p.curToken, "unexpected closing tag %s before root element", p.curToken.Literal)
		case token.ILLEGAL:
			p.errorf(p.curToken, "unterminated %s", describe(p.curToken.Literal))
		}
		p.nextToken()
	}
	if p.curTokenIs(token.EOF) {
		return doc, nil
	}

	name, root, err := p.parseElement()
	if err != nil {
		return nil, err
	}
	doc.Name, doc.Root = name, root

	p.skipTrailing()
	return doc, nil
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) errorf(at token.Token, format string, args ...any) {
	p.errors = append(p.errors, kmlerrors.ParseError{
		Message: fmt.Sprintf(format, args...),
		Line:    at.Line,
		Column:  at.Column,
	})
}

// parseElement is entered with curToken on a start tag and returns with
// curToken on the first token after the element. It returns the name to key
// the element by.
func (p *Parser) parseElement() (string, *tree.Element, error) {
	if p.depth >= p.cfg.MaxDepth {
		return "", nil, fmt.Errorf("%w: limit is %d at line %d, column %d",
			ErrMaxDepth, p.cfg.MaxDepth, p.curToken.Line, p.curToken.Column)
	}
	p.depth++
	defer func() { p.depth-- }()

	start := p.curToken
	tag := splitStartTag(start.Literal)

	attrs, problems := parseAttributes(tag.attrs)
	for _, msg := range problems {
		p.errorf(start, "<%s>: %s", tag.name, msg)
	}
	el := &tree.Element{Attributes: attrs}
	name := p.alias(tag.name)

	p.nextToken()
	if tag.selfClosing {
		p.selfClosing = append(p.selfClosing, start)
		return name, el, nil
	}

	p.open = append(p.open, strings.ToLower(tag.name))
	defer func() { p.open = p.open[:len(p.open)-1] }()

	var b childBuilder
	defer func() { el.Children = b.children }()

	for {
		switch p.curToken.Type {
		case token.EOF:
			p.errorf(start, "element <%s> is not closed", tag.name)
			return name, el, nil

		case token.END_TAG:
			closer := endTagName(p.curToken.Literal)
			if strings.EqualFold(closer, tag.name) {
				p.nextToken()
				return name, el, nil
			}
			if p.closesAncestor(closer) {
				p.errorf(start, "element <%s> is closed by </%s>", tag.name, closer)
				return name, el, nil
			}
			p.errorf(p.curToken, "unexpected closing tag </%s>", closer)
			p.nextToken()

		case token.TEXT:
			b.addText(p.curToken.Literal)
			p.nextToken()

		case token.CDATA:
			if p.cfg.Literal == StopAtLiteral {
				b.addText(p.readRemainder(tag.name))
				return name, el, nil
			}
			b.addText(p.literal(p.curToken))
			p.nextToken()

		case token.START_TAG:
			childName, child, err := p.parseElement()
			if err != nil {
				return "", nil, err
			}
			b.addElement(childName, child)

		case token.ILLEGAL:
			p.errorf(p.curToken, "unterminated %s", describe(p.curToken.Literal))
			b.addText(p.curToken.Literal)
			p.nextToken()

		default:
			// comments, processing instructions and directives
			p.nextToken()
		}
	}
}

// readRemainder is entered with curToken on a literal block. It consumes the
// rest of the content of the element named name, including its closing tag,
// and returns that content verbatim.
func (p *Parser) readRemainder(name string) string {
	var sb strings.Builder
	nested := 0
	for {
		switch p.curToken.Type {
		case token.EOF:
			p.errorf(p.curToken, "element <%s> is not closed", name)
			return sb.String()
		case token.START_TAG:
			if tag := splitStartTag(p.curToken.Literal); !tag.selfClosing && strings.EqualFold(tag.name, name) {
				nested++
			}
		case token.END_TAG:
			closer := endTagName(p.curToken.Literal)
			if strings.EqualFold(closer, name) {
				if nested == 0 {
					p.nextToken()
					return sb.String()
				}
				nested--
			} else if nested == 0 && p.closesAncestor(closer) {
				p.errorf(p.curToken, "element <%s> is closed by </%s>", name, closer)
				return sb.String()
			}
		case token.CDATA:
			sb.WriteString(p.literal(p.curToken))
			p.nextToken()
			continue
		}
		sb.WriteString(p.curToken.Literal)
		p.nextToken()
	}
}

func (p *Parser) literal(tok token.Token) string {
	if !p.cfg.StripLiteral {
		return tok.Literal
	}
	s := strings.TrimPrefix(tok.Literal, cdataOpen)
	return strings.TrimSuffix(s, cdataClose)
}

// closesAncestor reports whether closer names an element enclosing the one
// being parsed.
func (p *Parser) closesAncestor(closer string) bool {
	return slices.Contains(p.open[:len(p.open)-1], strings.ToLower(closer))
}

func (p *Parser) alias(name string) string {
	alias, ok := p.cfg.Aliases[strings.ToLower(name)]
	if !ok {
		return name
	}
	if _, seen := p.spellings[alias]; !seen {
		if p.spellings == nil {
			p.spellings = make(map[string]string)
		}
		p.spellings[alias] = name
	}
	return alias
}

// skipTrailing consumes everything after the root element. Anything but
// blank text and trivia is reported once.
func (p *Parser) skipTrailing() {
	reported := false
	for ; !p.curTokenIs(token.EOF); p.nextToken() {
		if reported || p.curToken.Type.IsTrivia() {
			continue
		}
		if p.curTokenIs(token.TEXT) && strings.TrimSpace(p.curToken.Literal) == "" {
			continue
		}
		p.errorf(p.curToken, "content after root element ignored")
		reported = true
	}
}

func describe(literal string) string {
	switch {
	case strings.HasPrefix(literal, "<!--"):
		return "comment"
	case strings.HasPrefix(literal, cdataOpen):
		return "literal block"
	case strings.HasPrefix(literal, "<?"):
		return "processing instruction"
	default:
		return "tag"
	}
}
