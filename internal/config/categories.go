package config

import (
	"strings"
)

// MiscellaneousCategory is the sentinel category for files whose extension
// maps to nothing in the configured tree.
const MiscellaneousCategory = "Miscellaneous"

// Subcategory selects a nested output folder inside a category. A file
// matches when any of the configured conditions holds; conditions are
// evaluated in the order extensions, patterns, EXIF indicators.
type Subcategory struct {
	FolderName     string   `toml:"folder_name"`
	Extensions     []string `toml:"extensions,omitempty"`
	Patterns       []string `toml:"patterns,omitempty"`
	ExifIndicators []string `toml:"exif_indicators,omitempty"`
}

// Category is a top-level classification bucket mapped to one output folder.
type Category struct {
	Name          string        `toml:"name"`
	FolderName    string        `toml:"folder_name"`
	Extensions    []string      `toml:"extensions"`
	Subcategories []Subcategory `toml:"subcategories,omitempty"`
}

// ExtensionMap flattens the category tree into a lookup from lower-cased
// extension to category name. Categories are visited in declaration order and
// a later declaration of the same extension wins, so the resolution is
// deterministic for overlapping configurations.
func (c *Config) ExtensionMap() map[string]string {
	mapping := make(map[string]string)
	for _, category := range c.Categories {
		for _, ext := range category.Extensions {
			ext = strings.ToLower(strings.TrimSpace(ext))
			if ext == "" {
				continue
			}
			mapping[ext] = category.Name
		}
	}
	return mapping
}

// CategoryByName returns the named category from the configured tree.
func (c *Config) CategoryByName(name string) (Category, bool) {
	for _, category := range c.Categories {
		if category.Name == name {
			return category, true
		}
	}
	return Category{}, false
}

func (c *Config) normalizeCategories() {
	if len(c.Categories) == 0 {
		c.Categories = builtinCategories()
	}
	for i := range c.Categories {
		category := &c.Categories[i]
		category.Name = strings.TrimSpace(category.Name)
		if strings.TrimSpace(category.FolderName) == "" {
			category.FolderName = category.Name
		}
		category.Extensions = normalizeExtensions(category.Extensions)
		for j := range category.Subcategories {
			sub := &category.Subcategories[j]
			sub.FolderName = strings.TrimSpace(sub.FolderName)
			sub.Extensions = normalizeExtensions(sub.Extensions)
		}
	}
}

func normalizeExtensions(exts []string) []string {
	if len(exts) == 0 {
		return exts
	}
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		out = append(out, ext)
	}
	return out
}

func (c *Config) validateCategories() error {
	seen := make(map[string]struct{}, len(c.Categories))
	for _, category := range c.Categories {
		if category.Name == "" {
			return errInvalidCategory("categories entries require a name")
		}
		if _, dup := seen[category.Name]; dup {
			return errInvalidCategory("duplicate category name " + category.Name)
		}
		seen[category.Name] = struct{}{}
		for _, sub := range category.Subcategories {
			if sub.FolderName == "" {
				return errInvalidCategory("subcategories of " + category.Name + " require a folder_name")
			}
		}
	}
	return nil
}
