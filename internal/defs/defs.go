// Package defs loads the master diagnostic definitions: the externally
// supplied, ordered list of every diagnostic identifier and its default
// (English) text. The definitions fix the identifier space for all
// localization backends; declaration order is identifier order.
package defs

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"locstone/internal/diagid"
)

// Entry is one master definition.
type Entry struct {
	ID  string `yaml:"id"`
	Msg string `yaml:"msg"`
}

// Defs is the parsed master catalog.
type Defs struct {
	entries []Entry
	space   *diagid.Space
}

// Load reads and validates a definitions file.
func Load(path string) (*Defs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definitions: %w", err)
	}
	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Parse validates a definitions document: at least one entry, every id
// non-empty and unique. Default text may legitimately be empty.
func Parse(data []byte) (*Defs, error) {
	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse definitions: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("definitions are empty")
	}

	names := make([]string, len(entries))
	seen := make(map[string]int, len(entries))
	for i, e := range entries {
		if e.ID == "" {
			return nil, fmt.Errorf("definition %d has an empty id", i)
		}
		if prev, dup := seen[e.ID]; dup {
			return nil, fmt.Errorf("duplicate id %q (entries %d and %d)", e.ID, prev, i)
		}
		seen[e.ID] = i
		names[i] = e.ID
	}

	return &Defs{entries: entries, space: diagid.NewSpace(names)}, nil
}

// Len returns the number of definitions.
func (d *Defs) Len() int {
	return len(d.entries)
}

// Space returns the identifier space fixed by these definitions.
func (d *Defs) Space() *diagid.Space {
	return d.space
}

// Names returns the identifier names in declaration order.
func (d *Defs) Names() []string {
	names := make([]string, len(d.entries))
	for i, e := range d.entries {
		names[i] = e.ID
	}
	return names
}

// Messages returns the default texts in declaration order.
func (d *Defs) Messages() []string {
	msgs := make([]string, len(d.entries))
	for i, e := range d.entries {
		msgs[i] = e.Msg
	}
	return msgs
}
