// internal/catalog/catalog.go

// Package catalog holds the configurable category -> feature mapping behind
// option selection. Category and feature order is display- and
// output-significant, so the catalog preserves insertion order end to end,
// including through its JSON file representation (a plain object whose key
// order Go maps would otherwise drop).
package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

type Category struct {
	Name     string
	Features []string
}

type Catalog struct {
	categories []Category
	index      map[string]int // category name -> position in categories
}

func New() *Catalog {
	return &Catalog{index: make(map[string]int)}
}

// Load reads the catalog file. A missing file is not an error: the catalog
// starts empty and is created on first save, matching how the app behaves on
// a fresh install.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}

	c := New()
	if err := c.UnmarshalJSON(data); err != nil {
		return nil, fmt.Errorf("parsing catalog file: %w", err)
	}
	return c, nil
}

// Save rewrites the whole catalog file. Every mutation persists wholesale.
func (c *Catalog) Save(path string) error {
	data, err := c.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing catalog file: %w", err)
	}
	return nil
}

// Categories returns the categories in insertion order. The returned slice
// shares no structure with the catalog.
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	for i, cat := range c.categories {
		out[i] = Category{
			Name:     cat.Name,
			Features: append([]string(nil), cat.Features...),
		}
	}
	return out
}

// Features returns the feature list for one category, or nil if absent.
func (c *Catalog) Features(category string) []string {
	i, ok := c.index[category]
	if !ok {
		return nil
	}
	return append([]string(nil), c.categories[i].Features...)
}

// AllFeatures returns every feature across categories in catalog order.
// This is the canonical ordering for composed options text.
func (c *Catalog) AllFeatures() []string {
	var out []string
	for _, cat := range c.categories {
		out = append(out, cat.Features...)
	}
	return out
}

// AddFeature appends feature to category, creating the category at the end
// of the catalog if it does not exist yet.
func (c *Catalog) AddFeature(category, feature string) {
	i, ok := c.index[category]
	if !ok {
		c.index[category] = len(c.categories)
		c.categories = append(c.categories, Category{Name: category, Features: []string{feature}})
		return
	}
	c.categories[i].Features = append(c.categories[i].Features, feature)
}

// RemoveFeature deletes feature from category, reporting whether anything
// was removed. An emptied category is kept so its position survives.
func (c *Catalog) RemoveFeature(category, feature string) bool {
	i, ok := c.index[category]
	if !ok {
		return false
	}
	features := c.categories[i].Features
	for j, f := range features {
		if f == feature {
			c.categories[i].Features = append(features[:j:j], features[j+1:]...)
			return true
		}
	}
	return false
}

// HasFeature reports whether feature exists in category.
func (c *Catalog) HasFeature(category, feature string) bool {
	i, ok := c.index[category]
	if !ok {
		return false
	}
	for _, f := range c.categories[i].Features {
		if f == feature {
			return true
		}
	}
	return false
}

// Len returns the number of categories.
func (c *Catalog) Len() int {
	return len(c.categories)
}

// MarshalJSON encodes the catalog as a JSON object whose keys appear in
// insertion order.
func (c *Catalog) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, cat := range c.categories {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(cat.Name)
		if err != nil {
			return nil, err
		}
		features := cat.Features
		if features == nil {
			features = []string{}
		}
		list, err := json.Marshal(features)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(list)
	}
	buf.WriteByte('}')

	// Readable on disk; the file is hand-edited in the field.
	var indented bytes.Buffer
	if err := json.Indent(&indented, buf.Bytes(), "", "    "); err != nil {
		return nil, err
	}
	return indented.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, preserving key order by walking the
// token stream instead of round-tripping through a map.
func (c *Catalog) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("catalog: expected JSON object, got %v", tok)
	}

	c.categories = nil
	c.index = make(map[string]int)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("catalog: expected string key, got %v", keyTok)
		}

		var features []string
		if err := dec.Decode(&features); err != nil {
			return fmt.Errorf("catalog: category %q: %w", name, err)
		}

		if _, exists := c.index[name]; exists {
			return fmt.Errorf("catalog: duplicate category %q", name)
		}
		c.index[name] = len(c.categories)
		c.categories = append(c.categories, Category{Name: name, Features: features})
	}

	// consume closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
