package token

// TokenType is the type of a token.
type TokenType string

// Token represents a lexical token.
//
// Literal always holds the exact source bytes of the token, so that a
// sequence of tokens can be stitched back into the original input.
type Token struct {
	Type    TokenType
	Literal string
	Offset  int // byte offset of the first character in the input
	Line    int
	Column  int
}

const (
	// Special tokens
	ILLEGAL TokenType = "ILLEGAL" // an unterminated tag, comment or literal block
	EOF     TokenType = "EOF"

	// Markup
	START_TAG TokenType = "START_TAG" // <Placemark id="a">, <br/>
	END_TAG   TokenType = "END_TAG"   // </Placemark>
	TEXT      TokenType = "TEXT"      // character data between tags
	CDATA     TokenType = "CDATA"     // <![CDATA[ ... ]]>

	// Trivia, dropped by the parser
	COMMENT   TokenType = "COMMENT"   // <!-- ... -->
	PROC_INST TokenType = "PROC_INST" // <?xml ... ?>
	DIRECTIVE TokenType = "DIRECTIVE" // <!DOCTYPE ...>
)

// IsTrivia reports whether tokens of type t carry no content for the tree.
func (t TokenType) IsTrivia() bool {
	return t == COMMENT || t == PROC_INST || t == DIRECTIVE
}
