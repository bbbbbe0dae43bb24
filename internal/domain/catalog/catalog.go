// Package catalog holds the immutable list of upstream lookup endpoints.
// The catalog is constructed once at startup and passed by injection; it is
// never mutated afterwards.
package catalog

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"keneviz-panel-go/internal/platform/errors"
)

// Descriptor describes one upstream lookup endpoint: a display name, a URL
// template with `{name}` placeholders, and the parameters callers must
// supply.
type Descriptor struct {
	Name        string   `yaml:"name" json:"ad"`
	URLTemplate string   `yaml:"url" json:"url"`
	Params      []string `yaml:"params" json:"params"`
}

// Catalog is an ordered, immutable set of descriptors indexed by normalized
// name. Ordering is insertion order and only meaningful for display.
type Catalog struct {
	entries []Descriptor
	byNorm  map[string]int
}

// Normalize maps a display name onto its lookup form: lowercased, spaces
// replaced with underscores, parentheses stripped. Requests are matched
// against this form, so "Tapu Sorgulama (Hanedan)" and
// "tapu_sorgulama_hanedan" address the same descriptor.
func Normalize(name string) string {
	n := strings.ToLower(name)
	n = strings.ReplaceAll(n, " ", "_")
	n = strings.ReplaceAll(n, "(", "")
	n = strings.ReplaceAll(n, ")", "")
	return n
}

// New builds a catalog from the given descriptors. Descriptors whose
// normalized names collide are rejected so a request can never ambiguously
// match two entries.
func New(entries []Descriptor) (*Catalog, error) {
	byNorm := make(map[string]int, len(entries))
	for i, entry := range entries {
		if entry.Name == "" {
			return nil, errors.New(errors.KindCatalog, "catalog.new",
				fmt.Sprintf("descriptor %d has an empty name", i))
		}
		if entry.URLTemplate == "" {
			return nil, errors.New(errors.KindCatalog, "catalog.new",
				fmt.Sprintf("descriptor %q has an empty url template", entry.Name))
		}
		norm := Normalize(entry.Name)
		if prev, ok := byNorm[norm]; ok {
			return nil, errors.New(errors.KindCatalog, "catalog.new",
				fmt.Sprintf("descriptors %q and %q normalize to the same name %q",
					entries[prev].Name, entry.Name, norm))
		}
		byNorm[norm] = i
	}

	copied := make([]Descriptor, len(entries))
	copy(copied, entries)
	return &Catalog{entries: copied, byNorm: byNorm}, nil
}

// Load reads descriptors from a YAML file.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.KindCatalog, "catalog.load", "failed to read catalog file", err)
	}
	var entries []Descriptor
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, errors.Wrap(errors.KindCatalog, "catalog.load", "failed to parse catalog file", err)
	}
	return New(entries)
}

// Lookup finds the descriptor matching the requested name after
// normalization.
func (c *Catalog) Lookup(name string) (Descriptor, bool) {
	idx, ok := c.byNorm[Normalize(name)]
	if !ok {
		return Descriptor{}, false
	}
	return c.entries[idx], true
}

// Descriptors returns a copy of the catalog in insertion order.
func (c *Catalog) Descriptors() []Descriptor {
	out := make([]Descriptor, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len reports the number of descriptors.
func (c *Catalog) Len() int {
	return len(c.entries)
}
