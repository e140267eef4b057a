package localization

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"locstone/internal/diagid"
)

// yamlRecord is one element of the structured-list format: an ordered list
// of {id, msg} mappings.
type yamlRecord struct {
	ID  string `yaml:"id"`
	Msg string `yaml:"msg"`
}

// ParseYAML parses the structured-list format. Records whose id is not in
// the space are returned as UnknownRecords with the message preserved
// verbatim; they never enter the catalog. Input ordering is irrelevant and
// a later record for the same id overwrites an earlier one.
func ParseYAML(data []byte, space *diagid.Space) (Catalog, []UnknownRecord, error) {
	var records []yamlRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, nil, fmt.Errorf("failed to parse structured list: %w", err)
	}

	catalog := NewCatalog(space.Len())
	var unknown []UnknownRecord
	for _, r := range records {
		if id, ok := space.Lookup(r.ID); ok {
			catalog.Set(id, r.Msg)
		} else {
			unknown = append(unknown, UnknownRecord{Name: r.ID, Msg: r.Msg})
		}
	}
	return catalog, unknown, nil
}

// YAMLProducer serves lookups from a structured-list file.
type YAMLProducer struct {
	core
	path    string
	catalog Catalog

	// UnknownIDs holds records whose identifier is outside the current
	// identifier space, populated during initialization. Callers may
	// inspect them for diagnostic reporting.
	UnknownIDs []UnknownRecord
}

// NewYAMLProducer binds a producer to path. The file is not opened until
// the first lookup or enumeration.
func NewYAMLProducer(space *diagid.Space, path string, debugNames bool) *YAMLProducer {
	return &YAMLProducer{
		core: core{space: space, debugNames: debugNames},
		path: path,
	}
}

func (p *YAMLProducer) load() error {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", p.path, err)
	}
	catalog, unknown, err := ParseYAML(data, p.space)
	if err != nil {
		return fmt.Errorf("%s: %w", p.path, err)
	}
	p.catalog = catalog
	p.UnknownIDs = unknown
	return nil
}

func (p *YAMLProducer) MessageOrDefault(id diagid.ID, def string) string {
	p.initOnce(p.load)
	if p.state == FailedInitialization {
		return def
	}
	return p.finish(id, p.catalog.Message(id), def)
}

func (p *YAMLProducer) ForEachAvailable(fn func(id diagid.ID, msg string)) {
	p.initOnce(p.load)
	if p.state == FailedInitialization {
		return
	}
	for i, msg := range p.catalog {
		if msg != "" {
			fn(diagid.ID(i), msg)
		}
	}
}
