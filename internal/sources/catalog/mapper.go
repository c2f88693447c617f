package catalog

import (
	"fmt"
	"strings"

	"github.com/cuelens/cuelens/internal/domain"
)

// Mapper converts the categories.yaml shape into domain categories.
type Mapper struct{}

// NewMapper creates a catalog mapper.
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapCategories validates and converts the file entries. Ids are
// lowercased; blank or duplicate ids are rejected since persisted items
// reference them. The "all" sentinel is reserved for the filter.
func (m *Mapper) MapCategories(file File) ([]domain.Category, error) {
	if len(file.Categories) == 0 {
		return nil, fmt.Errorf("no categories found in file")
	}

	seen := make(map[string]bool, len(file.Categories))
	categories := make([]domain.Category, 0, len(file.Categories))

	for _, entry := range file.Categories {
		id := strings.ToLower(strings.TrimSpace(entry.ID))
		if id == "" {
			return nil, fmt.Errorf("category with empty id (name: %q)", entry.Name)
		}
		if id == domain.CategoryAll {
			return nil, fmt.Errorf("category id %q is reserved", domain.CategoryAll)
		}
		if seen[id] {
			return nil, fmt.Errorf("duplicate category id: %s", id)
		}
		seen[id] = true

		name := strings.TrimSpace(entry.Name)
		if name == "" {
			name = id
		}

		categories = append(categories, domain.Category{
			ID:     id,
			Name:   name,
			Accent: entry.Accent,
		})
	}

	return categories, nil
}

// LoadOrDefault loads the catalog from path, falling back to the built-in
// catalog when path is empty.
func LoadOrDefault(path string) ([]domain.Category, error) {
	if path == "" {
		return domain.DefaultCategories(), nil
	}

	file, err := NewLoader(path).Load()
	if err != nil {
		return nil, err
	}
	return NewMapper().MapCategories(file)
}
