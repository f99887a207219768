package testutil

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// TestdataFS holds the embedded test data files.
//
//go:embed testdata
var TestdataFS embed.FS

// ReadTestData reads and returns the content of an embedded test file.
func ReadTestData(name string) ([]byte, error) {
	path := fmt.Sprintf("testdata/%s", name)
	data, err := fs.ReadFile(TestdataFS, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read test data file '%s': %w", name, err)
	}
	return data, nil
}

// Samples returns the names of the embedded KML documents, sorted.
func Samples() ([]string, error) {
	matches, err := fs.Glob(TestdataFS, "testdata/*.kml")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, path.Base(m))
	}
	return names, nil
}

// GoldenName returns the name of the golden file holding the tree of the
// named sample.
func GoldenName(sample string) string {
	return strings.TrimSuffix(sample, ".kml") + ".golden.json"
}
