package domain

// Category is one entry of the fixed category catalog.
type Category struct {
	// ID is the stable identifier stored on content items.
	ID string

	// Name is the human-readable label.
	Name string

	// Accent is a presentation hint (CSS class or color token).
	Accent string
}

// DefaultCategories is the built-in catalog, used when no catalog file is
// configured. IDs must stay stable: persisted items reference them.
func DefaultCategories() []Category {
	return []Category{
		{ID: "design", Name: "Design", Accent: "blue"},
		{ID: "selfhelp", Name: "Self Help", Accent: "green"},
		{ID: "finance", Name: "Finance", Accent: "yellow"},
		{ID: "tutorials", Name: "Tutorials", Accent: "purple"},
		{ID: "videos", Name: "Videos", Accent: "red"},
		{ID: "travel", Name: "Travel", Accent: "teal"},
		{ID: "technology", Name: "Technology", Accent: "indigo"},
	}
}

// KnownCategory reports whether id exists in the given catalog.
// The CategoryAll sentinel is a filter value, not a category, and is
// deliberately not accepted here.
func KnownCategory(catalog []Category, id string) bool {
	for _, c := range catalog {
		if c.ID == id {
			return true
		}
	}
	return false
}
