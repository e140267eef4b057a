package diagid

import "testing"

func TestSpaceLookup(t *testing.T) {
	s := NewSpace([]string{"err_first", "warn_second", "note_third"})

	if s.Len() != 3 {
		t.Fatalf("unexpected space size: want 3, got %d", s.Len())
	}

	id, ok := s.Lookup("warn_second")
	if !ok || id != 1 {
		t.Fatalf("unexpected lookup result: want (1, true), got (%d, %v)", id, ok)
	}

	if _, ok := s.Lookup("removed_upstream"); ok {
		t.Fatal("lookup of a name outside the space must fail")
	}
}

func TestSpaceName(t *testing.T) {
	s := NewSpace([]string{"err_first"})

	if got := s.Name(0); got != "err_first" {
		t.Fatalf("unexpected name: want err_first, got %q", got)
	}
	if got := s.Name(42); got != NotADiagnostic {
		t.Fatalf("out-of-range id must map to %q, got %q", NotADiagnostic, got)
	}
}

func TestSpaceDebugSuffix(t *testing.T) {
	s := NewSpace([]string{"err_first"})

	if got := s.DebugSuffix(0); got != " [err_first]" {
		t.Fatalf("unexpected debug suffix: %q", got)
	}
	if got := s.DebugSuffix(7); got != "" {
		t.Fatalf("out-of-range suffix must be empty, got %q", got)
	}
}

func TestSpaceIsolatedFromInput(t *testing.T) {
	names := []string{"a", "b"}
	s := NewSpace(names)
	names[0] = "mutated"

	if got := s.Name(0); got != "a" {
		t.Fatalf("space must copy the name list: got %q", got)
	}
}
