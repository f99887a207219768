package kml

import (
	"errors"
	"reflect"

	"github.com/KimNorgaard/go-kml/parser"
	"github.com/KimNorgaard/go-kml/tree"
)

var (
	// ErrMaxDepth is returned when elements nest deeper than MaxDepth allows.
	ErrMaxDepth = parser.ErrMaxDepth
	// ErrMultipleRoots is returned when a tree holds more than one root.
	ErrMultipleRoots = tree.ErrMultipleRoots
	// ErrUnsupportedFile is returned by the readers for files that are not KML.
	ErrUnsupportedFile = errors.New("kml: unsupported file, expected a KML document")
	// ErrNoFile is returned by ReadMarkup when given no file.
	ErrNoFile = errors.New("kml: no file")
)

// An InvalidInputError describes a value of a type that cannot be converted
// to a tree.
type InvalidInputError struct {
	Type reflect.Type
}

func (e *InvalidInputError) Error() string {
	if e.Type == nil {
		return "kml: invalid input (nil)"
	}
	return "kml: invalid input of type " + e.Type.String() + ", expected a tree, JSON text or JSON object"
}

// A ValidationError reports a file that failed validation for a reason other
// than its type.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return "kml: invalid file: " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }
