package catalog

// CategoryEntry is a single category in categories.yaml.
type CategoryEntry struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Accent string `yaml:"accent"`
}

// File is the root structure of categories.yaml.
//
//	categories:
//	  - id: design
//	    name: Design
//	    accent: blue
type File struct {
	Categories []CategoryEntry `yaml:"categories"`
}
