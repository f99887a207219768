package kml

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// kmlMediaMarker is looked for in the media type of files to read.
const kmlMediaMarker = "vnd.google-earth.kml"

// File is a document handed over for reading, such as an upload.
type File struct {
	// Name is the file name, as in "route.kml".
	Name string `validate:"max=255"`
	// MediaType is the declared media type, possibly empty.
	MediaType string
	Body      []byte
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func fileValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterStructValidation(validateKMLFile, File{})
	})
	return validate
}

// validateKMLFile accepts a file when its media type is a KML one or its
// name has the KML extension.
func validateKMLFile(sl validator.StructLevel) {
	f := sl.Current().Interface().(File)
	if strings.Contains(f.MediaType, kmlMediaMarker) || strings.HasSuffix(f.Name, Extension) {
		return
	}
	sl.ReportError(f.Name, "Name", "Name", "kmlfile", "")
}

// ReadMarkup checks that f is a KML file and returns its markup as UTF-8.
// It fails with ErrNoFile for a nil file, with ErrUnsupportedFile when
// neither the media type nor the name marks the file as KML, and with a
// *ValidationError for other invalid fields. SkipFileValidation disables
// the checks.
//
// Bodies in other encodings, declared by a byte order mark or by the XML
// declaration, are transcoded to UTF-8.
func ReadMarkup(f *File, opts ...Option) (string, error) {
	if f == nil {
		return "", ErrNoFile
	}
	o, err := newOptions(opts)
	if err != nil {
		return "", err
	}
	if !o.skipValidation {
		if err := validateFile(f); err != nil {
			return "", err
		}
	}
	body, err := toUTF8(f.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// ReadFile reads the named file with ReadMarkup. The media type is left
// empty, so the name must carry the KML extension unless validation is
// skipped.
func ReadFile(path string, opts ...Option) (string, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return ReadMarkup(&File{Name: filepath.Base(path), Body: body}, opts...)
}

// WriteFile writes the markup of v, which may be any value accepted by
// Marshal, to the named file. The KML extension is added when missing.
func WriteFile(path string, v any, opts ...Option) error {
	b, err := Marshal(v, opts...)
	if err != nil {
		return err
	}
	if !strings.HasSuffix(path, Extension) {
		path += Extension
	}
	return os.WriteFile(path, b, 0o644)
}

func validateFile(f *File) error {
	err := fileValidator().Struct(f)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if stderrors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Tag() == "kmlfile" {
				return fmt.Errorf("%w: %q", ErrUnsupportedFile, f.Name)
			}
		}
	}
	return &ValidationError{Err: err}
}

var xmlEncoding = regexp.MustCompile(`^\s*<\?xml[^>]*\sencoding\s*=\s*["']([A-Za-z0-9._:-]+)["']`)

// toUTF8 decodes body according to its byte order mark or, failing that,
// the encoding named in its XML declaration. UTF-8 is assumed otherwise.
func toUTF8(body []byte) ([]byte, error) {
	label := "utf-8"
	if m := xmlEncoding.FindSubmatch(body); m != nil {
		label = strings.ToLower(string(m[1]))
	}

	var r io.Reader
	if label == "utf-8" || label == "utf8" || hasBOM(body) {
		r = transform.NewReader(bytes.NewReader(body), unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	} else {
		cr, err := charset.NewReaderLabel(label, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("kml: reading %s body: %w", label, err)
		}
		r = cr
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("kml: decoding %s body: %w", label, err)
	}
	return out, nil
}

func hasBOM(b []byte) bool {
	return bytes.HasPrefix(b, []byte{0xEF, 0xBB, 0xBF}) ||
		bytes.HasPrefix(b, []byte{0xFE, 0xFF}) ||
		bytes.HasPrefix(b, []byte{0xFF, 0xFE})
}
