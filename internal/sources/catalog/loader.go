// Package catalog loads the category catalog. Categories are a fixed
// enumeration per deployment: content items reference catalog ids and the
// category filter only understands ids the catalog lists.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Loader handles loading and parsing of categories.yaml.
type Loader struct {
	filePath string
}

// NewLoader creates a catalog loader for the given file.
func NewLoader(filePath string) *Loader {
	return &Loader{filePath: filePath}
}

// Load reads and parses the categories file.
func (l *Loader) Load() (File, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return File{}, fmt.Errorf("failed to read categories file: %w", err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return File{}, fmt.Errorf("failed to parse categories yaml: %w", err)
	}

	return file, nil
}
