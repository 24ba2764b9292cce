// Package personality holds the behavioral style catalogue and the
// 12-dimension vector model used to compare candidates with roles.
package personality

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalogue.yaml
var catalogueYAML []byte

// Style is a named catalogue entry.
type Style struct {
	Name   string `json:"name"`
	Vector Vector `json:"vector"`
}

// Catalogue is an immutable, ordered set of styles. Lookups hand out copies.
type Catalogue struct {
	version int
	styles  []Style
	byName  map[string]int
}

type catalogueFile struct {
	Version int `yaml:"version"`
	Styles  []struct {
		Name   string             `yaml:"name"`
		Vector map[string]float64 `yaml:"vector"`
	} `yaml:"styles"`
}

// Parse decodes a YAML catalogue document.
func Parse(data []byte) (*Catalogue, error) {
	var f catalogueFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalogue: %w", err)
	}
	if len(f.Styles) == 0 {
		return nil, fmt.Errorf("catalogue has no styles")
	}

	c := &Catalogue{
		version: f.Version,
		styles:  make([]Style, 0, len(f.Styles)),
		byName:  make(map[string]int, len(f.Styles)),
	}
	for _, s := range f.Styles {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return nil, fmt.Errorf("catalogue style with empty name")
		}
		if _, dup := c.byName[name]; dup {
			return nil, fmt.Errorf("duplicate catalogue style %q", name)
		}
		v, err := VectorFromMap(s.Vector)
		if err != nil {
			return nil, fmt.Errorf("style %q: %w", name, err)
		}
		c.byName[name] = len(c.styles)
		c.styles = append(c.styles, Style{Name: name, Vector: v})
	}
	return c, nil
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalogue
)

// Default returns the embedded catalogue, parsed once per process.
func Default() *Catalogue {
	defaultOnce.Do(func() {
		c, err := Parse(catalogueYAML)
		if err != nil {
			panic(fmt.Sprintf("embedded personality catalogue: %v", err))
		}
		defaultCat = c
	})
	return defaultCat
}

// Lookup resolves a style name against the embedded catalogue.
func Lookup(styleName string) Vector {
	return Default().Lookup(styleName)
}

// Version identifies the catalogue revision.
func (c *Catalogue) Version() int { return c.version }

// Styles returns a copy of the catalogue entries in catalogue order.
func (c *Catalogue) Styles() []Style {
	out := make([]Style, len(c.styles))
	copy(out, c.styles)
	return out
}

// Resolve finds the catalogue style for styleName. An exact, case-sensitive
// name wins; otherwise the first style (in catalogue order) whose name
// contains styleName, or is contained by it, case-insensitively.
func (c *Catalogue) Resolve(styleName string) (Style, bool) {
	if strings.TrimSpace(styleName) == "" {
		return Style{}, false
	}
	if i, ok := c.byName[styleName]; ok {
		return c.styles[i], true
	}
	needle := strings.ToLower(styleName)
	for _, s := range c.styles {
		key := strings.ToLower(s.Name)
		if strings.Contains(needle, key) || strings.Contains(key, needle) {
			return s, true
		}
	}
	return Style{}, false
}

// Lookup returns the vector for styleName, or the neutral vector when the
// name is empty or matches nothing.
func (c *Catalogue) Lookup(styleName string) Vector {
	if s, ok := c.Resolve(styleName); ok {
		return s.Vector
	}
	return Neutral()
}
