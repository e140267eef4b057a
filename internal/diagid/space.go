package diagid

// ID names one diagnostic message slot. The value is the position of the
// diagnostic in the master enumeration and is stable across backends and
// across builds of the same identifier space.
type ID uint32

// NotADiagnostic is returned by Name for identifiers outside the space.
const NotADiagnostic = "<not a diagnostic>"

// Space is the closed identifier space: an immutable lookup table mapping
// diagnostic names to IDs and back. The master enumeration is supplied
// externally (generated from the definitions file); a Space never grows
// after construction.
type Space struct {
	names    []string
	index    map[string]ID
	suffixes []string // " [<name>]", precomputed for debug-names mode
}

// NewSpace builds a Space from the ordered master name list. The slice is
// copied; later mutation of the argument does not affect the Space.
func NewSpace(names []string) *Space {
	s := &Space{
		names:    make([]string, len(names)),
		index:    make(map[string]ID, len(names)),
		suffixes: make([]string, len(names)),
	}
	copy(s.names, names)
	for i, name := range s.names {
		s.index[name] = ID(i)
		s.suffixes[i] = " [" + name + "]"
	}
	return s
}

// Len returns the number of identifiers in the space.
func (s *Space) Len() int {
	return len(s.names)
}

// Lookup maps a diagnostic name to its ID. The second result is false for
// names outside the space (removed or renamed upstream).
func (s *Space) Lookup(name string) (ID, bool) {
	id, ok := s.index[name]
	return id, ok
}

// Name returns the diagnostic name for id, or NotADiagnostic when id is
// outside the space.
func (s *Space) Name(id ID) string {
	if int(id) >= len(s.names) {
		return NotADiagnostic
	}
	return s.names[id]
}

// DebugSuffix returns the " [<name>]" tag appended to localized messages
// when debug-names mode is on. Empty for ids outside the space.
func (s *Space) DebugSuffix(id ID) string {
	if int(id) >= len(s.suffixes) {
		return ""
	}
	return s.suffixes[id]
}
