package localization

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"locstone/internal/diagid"
)

// The flat-text format is a sequence of records of the exact form
//
//	"<id>" = "<msg>";
//
// optionally interspersed with /* ... */ comments. A `"` inside a message
// is escaped as `\"`; an unescaped `"` must be followed by `;` or the file
// is malformed. Malformed input is a data-integrity error: parsing aborts
// with a *ParseError rather than recovering.

// ParseError reports a malformed flat-text file. Offset is the byte
// position of the offending construct.
type ParseError struct {
	Offset int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed strings file at offset %d: %s", e.Offset, e.Reason)
}

// same trim set as the original format: ASCII whitespace
const stringsSpace = " \t\n\v\f\r"

// ParseStrings scans the flat-text format in a single left-to-right pass.
// Records with an identifier outside the space are reported to warnings as
// "[!] unknown diagnostic: <id>" and discarded; unlike the structured-list
// parser they are not retained. A later record for a known id overwrites an
// earlier one. warnings may be nil to suppress reporting.
func ParseStrings(data []byte, space *diagid.Space, warnings io.Writer) (Catalog, error) {
	if warnings == nil {
		warnings = io.Discard
	}
	catalog := NewCatalog(space.Len())

	buf := data
	pos := func() int { return len(data) - len(buf) }
	for len(buf) > 0 {
		if bytes.HasPrefix(buf, []byte("/*")) {
			end := bytes.Index(buf, []byte("*/"))
			if end < 0 {
				return nil, &ParseError{Offset: pos(), Reason: "unterminated comment"}
			}
			buf = bytes.TrimLeft(buf[end+2:], stringsSpace)
			continue
		}

		if buf[0] != '"' {
			return nil, &ParseError{Offset: pos(), Reason: "expected '\"' at start of record"}
		}
		buf = buf[1:]

		// Identifiers cannot contain '"', so the next quote ends the id.
		idEnd := bytes.IndexByte(buf, '"')
		if idEnd < 0 {
			return nil, &ParseError{Offset: pos(), Reason: "unterminated identifier"}
		}
		name := string(buf[:idEnd])
		buf = bytes.TrimLeft(buf[idEnd+1:], " ")

		if len(buf) == 0 || buf[0] != '=' {
			return nil, &ParseError{Offset: pos(), Reason: "expected '=' after identifier"}
		}
		buf = bytes.TrimLeft(buf[1:], " ")

		if len(buf) == 0 || buf[0] != '"' {
			return nil, &ParseError{Offset: pos(), Reason: "expected '\"' at start of message"}
		}
		buf = buf[1:]

		// Scan for the terminating `";`. An escaped `"` is folded into the
		// message with the escaping backslash removed.
		var msg []byte
		term := -1
		for i := 0; i < len(buf); i++ {
			ch := buf[i]
			if ch != '"' {
				msg = append(msg, ch)
				continue
			}
			if i > 0 && buf[i-1] == '\\' {
				msg[len(msg)-1] = '"'
				continue
			}
			if i+1 < len(buf) && buf[i+1] == ';' {
				term = i
				break
			}
			return nil, &ParseError{Offset: pos() + i, Reason: "unescaped '\"' inside message"}
		}
		if term < 0 {
			return nil, &ParseError{Offset: pos(), Reason: "unterminated message"}
		}
		buf = bytes.TrimLeft(buf[term+2:], stringsSpace)

		if id, ok := space.Lookup(name); ok {
			catalog.Set(id, string(msg))
		} else {
			fmt.Fprintf(warnings, "[!] unknown diagnostic: %s\n", name)
		}
	}
	return catalog, nil
}

// StringsProducer serves lookups from a flat-text file.
type StringsProducer struct {
	core
	path     string
	warnings io.Writer
	catalog  Catalog
}

// NewStringsProducer binds a producer to path. Unknown-identifier notes go
// to warnings, or stderr when warnings is nil. The file is not opened until
// the first lookup or enumeration.
func NewStringsProducer(space *diagid.Space, path string, debugNames bool, warnings io.Writer) *StringsProducer {
	if warnings == nil {
		warnings = os.Stderr
	}
	return &StringsProducer{
		core:     core{space: space, debugNames: debugNames},
		path:     path,
		warnings: warnings,
	}
}

func (p *StringsProducer) load() error {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", p.path, err)
	}
	catalog, err := ParseStrings(data, p.space, p.warnings)
	if err != nil {
		return fmt.Errorf("%s: %w", p.path, err)
	}
	p.catalog = catalog
	return nil
}

func (p *StringsProducer) MessageOrDefault(id diagid.ID, def string) string {
	p.initOnce(p.load)
	if p.state == FailedInitialization {
		return def
	}
	return p.finish(id, p.catalog.Message(id), def)
}

func (p *StringsProducer) ForEachAvailable(fn func(id diagid.ID, msg string)) {
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
