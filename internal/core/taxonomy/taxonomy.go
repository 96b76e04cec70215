// Package taxonomy loads the category tree used to constrain classification
package taxonomy

import (
	"os"

	perr "vidqa/internal/platform/errors"

	"gopkg.in/yaml.v3"
)

// Category is one top-level classification bucket
type Category struct {
	Name          string   `yaml:"name"`
	Subcategories []string `yaml:"subcategories"`
}

// Taxonomy is the full category tree supplied to the classifier
type Taxonomy struct {
	Categories []Category `yaml:"categories"`
}

// Load reads a taxonomy YAML file from path.
// A missing file is not an error; classification then runs unconstrained
// with an empty tree
func Load(path string) (Taxonomy, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Taxonomy{}, nil
		}
		return Taxonomy{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "taxonomy read %q", path)
	}
	var t Taxonomy
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return Taxonomy{}, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "taxonomy parse %q", path)
	}
	return t, nil
}

// Empty reports whether the tree carries no categories
func (t Taxonomy) Empty() bool { return len(t.Categories) == 0 }

// Has reports whether category and subcategory name an entry in the tree.
// An empty tree accepts everything
func (t Taxonomy) Has(category, subcategory string) bool {
	if t.Empty() {
		return true
	}
	for _, c := range t.Categories {
		if c.Name != category {
			continue
		}
		if subcategory == "" {
			return true
		}
		for _, s := range c.Subcategories {
			if s == subcategory {
				return true
			}
		}
		return false
	}
	return false
}

// Names returns the top-level category names in tree order
func (t Taxonomy) Names() []string {
	out := make([]string, 0, len(t.Categories))
	for _, c := range t.Categories {
		out = append(out, c.Name)
	}
	return out
}
