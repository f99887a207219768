package kml

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/KimNorgaard/go-kml/parser"
)

// Option configures the decoding or encoding of a document. Options that do
// not apply to an operation are ignored by it.
type Option func(*options) error

type options struct {
	literal        parser.LiteralPolicy
	stripLiteral   bool
	aliases        map[string]string
	unalias        map[string]string
	restore        map[string]string
	strict         bool
	maxDepth       int
	minify         bool
	skipValidation bool
	logger         zerolog.Logger
}

func newOptions(opts []Option) (*options, error) {
	o := &options{
		maxDepth: parser.DefaultMaxDepth,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func (o *options) parserConfig() parser.Config {
	return parser.Config{
		Literal:      o.literal,
		StripLiteral: o.stripLiteral,
		Aliases:      o.aliases,
		MaxDepth:     o.maxDepth,
	}
}

// StopAtLiteral keeps everything from a <![CDATA[ block up to the closing
// tag of its parent as one text child. This is the default.
func StopAtLiteral() Option {
	return func(o *options) error {
		o.literal = parser.StopAtLiteral
		return nil
	}
}

// ContinueAfterLiteral makes every <![CDATA[ block a text child of its own
// and keeps parsing the siblings that follow it.
func ContinueAfterLiteral() Option {
	return func(o *options) error {
		o.literal = parser.ContinueAfterLiteral
		return nil
	}
}

// StripLiteralDelimiters removes the <![CDATA[ and ]]> delimiters from
// literal text. Markup written from such a tree no longer holds the block.
func StripLiteralDelimiters() Option {
	return func(o *options) error {
		o.stripLiteral = true
		return nil
	}
}

// AliasTag records elements named name (matched case-insensitively) under
// alias in the tree. Closing tags are still matched against name.
func AliasTag(name, alias string) Option {
	return func(o *options) error {
		if name == "" || alias == "" {
			return fmt.Errorf("kml: tag alias needs a name and an alias")
		}
		if o.aliases == nil {
			o.aliases = make(map[string]string)
		}
		o.aliases[strings.ToLower(name)] = alias
		if o.unalias == nil {
			o.unalias = make(map[string]string)
		}
		o.unalias[alias] = name
		return nil
	}
}

// LegacyStyleAlias records Style elements as kml-style, the way trees stored
// by older converters name them.
func LegacyStyleAlias() Option {
	return AliasTag("Style", "kml-style")
}

// RestoreTag writes elements named alias as name when encoding.
func RestoreTag(alias, name string) Option {
	return func(o *options) error {
		if name == "" || alias == "" {
			return fmt.Errorf("kml: tag restore needs an alias and a name")
		}
		if o.restore == nil {
			o.restore = make(map[string]string)
		}
		o.restore[alias] = name
		return nil
	}
}

// Strict makes decoding fail with the collected errors.ParseErrors when the
// input needed any recovery.
func Strict() Option {
	return func(o *options) error {
		o.strict = true
		return nil
	}
}

// MaxDepth sets the maximum nesting depth of elements accepted when
// decoding. Deeper input fails with ErrMaxDepth.
//
// The depth n must be a positive integer.
func MaxDepth(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return fmt.Errorf("kml: max depth must be a positive integer")
		}
		o.maxDepth = n
		return nil
	}
}

// Minify runs encoded markup through an XML minifier.
func Minify() Option {
	return func(o *options) error {
		o.minify = true
		return nil
	}
}

// SkipFileValidation accepts any file in ReadMarkup and ReadFile regardless
// of its name and media type.
func SkipFileValidation() Option {
	return func(o *options) error {
		o.skipValidation = true
		return nil
	}
}

// WithLogger sets the logger parse diagnostics are written to at debug
// level. By default nothing is logged.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) error {
		o.logger = l
		return nil
	}
}
