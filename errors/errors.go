package errors

import (
	"fmt"
	"strings"
)

// ParseError describes a malformed construct the parser recovered from.
// It includes the position of the construct in the source.
type ParseError struct {
	Message string
	Line    int
	Column  int
}

func (e ParseError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Message)
}

// ParseErrors is a slice of ParseError that implements the error interface.
// This allows reporting every recovered problem of a document at once.
type ParseErrors []ParseError

func (p ParseErrors) Error() string {
	switch len(p) {
	case 0:
		return ""
	case 1:
		return "kml: parsing error at " + p[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "kml: %d parsing errors:", len(p))
	for _, e := range p {
		sb.WriteString("\n\t")
		sb.WriteString(e.Error())
	}
	return sb.String()
}
