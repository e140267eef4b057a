package localization

import (
	"os"
	"path/filepath"
	"testing"

	"locstone/internal/diagid"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestProducerStateIsOneShot(t *testing.T) {
	space := testSpace()
	path := writeTempFile(t, "locale.yaml", "- id: A\n  msg: \"hi\"\n")
	p := NewYAMLProducer(space, path, false)

	if p.State() != NotInitialized {
		t.Fatalf("fresh producer must be NotInitialized, got %v", p.State())
	}
	p.MessageOrDefault(0, "D")
	if p.State() != Initialized {
		t.Fatalf("first query must initialize, got %v", p.State())
	}

	// Deleting the backing file after init must not matter: the state is
	// latched and the catalog immutable.
	if err := os.Remove(path); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if got := p.MessageOrDefault(0, "D"); got != "hi" {
		t.Fatalf("initialized producer must keep serving: %q", got)
	}
}

func TestProducerDebugNames(t *testing.T) {
	space := testSpace()
	path := writeTempFile(t, "locale.yaml", "- id: A\n  msg: \"bonjour\"\n")
	p := NewYAMLProducer(space, path, true)

	if got := p.MessageOrDefault(0, "D"); got != "bonjour [A]" {
		t.Fatalf("debug mode must append the identifier name: %q", got)
	}
	// The suffix is never applied to the fallback default.
	if got := p.MessageOrDefault(1, "D"); got != "D" {
		t.Fatalf("default must pass through unchanged: %q", got)
	}
}

func TestProducerDebugNamesPerBackend(t *testing.T) {
	space := testSpace()

	w := NewWriter()
	w.Insert(2, "ciao")
	dbPath := filepath.Join(t.TempDir(), "it.db")
	if err := w.Emit(dbPath); err != nil {
		t.Fatalf("emit failed: %v", err)
	}
	buf, err := os.ReadFile(dbPath)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	sp := NewSerializedProducer(space, buf, true)
	if got := sp.MessageOrDefault(2, "D"); got != "ciao [C]" {
		t.Fatalf("serialized backend debug name: %q", got)
	}

	stringsPath := writeTempFile(t, "it.strings", "\"C\" = \"ciao\";\r\n")
	tp := NewStringsProducer(space, stringsPath, true, nil)
	if got := tp.MessageOrDefault(2, "D"); got != "ciao [C]" {
		t.Fatalf("strings backend debug name: %q", got)
	}
}

func TestProducerContractAcrossBackends(t *testing.T) {
	// The three backends must agree on lookups for the same catalog.
	space := testSpace()
	entries := map[diagid.ID]string{0: `Hello "World"`, 2: "Bye"}

	dir := t.TempDir()
	w := NewWriter()
	for id, msg := range entries {
		w.Insert(id, msg)
	}
	if err := w.Emit(filepath.Join(dir, "xx.db")); err != nil {
		t.Fatalf("emit failed: %v", err)
	}
	buf, err := os.ReadFile(filepath.Join(dir, "xx.db"))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	yamlPath := filepath.Join(dir, "xx.yaml")
	if err := os.WriteFile(yamlPath,
		[]byte("- id: A\n  msg: \"Hello \\\"World\\\"\"\r\n- id: C\n  msg: \"Bye\"\r\n"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	stringsPath := filepath.Join(dir, "xx.strings")
	if err := os.WriteFile(stringsPath,
		[]byte("\"A\" = \"Hello \\\"World\\\"\";\r\n\"C\" = \"Bye\";\r\n"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	producers := map[string]Producer{
		"serialized": NewSerializedProducer(space, buf, false),
		"yaml":       NewYAMLProducer(space, yamlPath, false),
		"strings":    NewStringsProducer(space, stringsPath, false, nil),
	}
	for name, p := range producers {
		if got := p.MessageOrDefault(0, "D"); got != `Hello "World"` {
			t.Fatalf("%s: slot A: %q", name, got)
		}
		if got := p.MessageOrDefault(1, "default-B"); got != "default-B" {
			t.Fatalf("%s: slot B must fall back: %q", name, got)
		}
		if got := p.MessageOrDefault(2, "D"); got != "Bye" {
			t.Fatalf("%s: slot C: %q", name, got)
		}

		var order []diagid.ID
		p.ForEachAvailable(func(id diagid.ID, msg string) {
			order = append(order, id)
		})
		if len(order) != 2 || order[0] != 0 || order[1] != 2 {
			t.Fatalf("%s: unexpected enumeration order: %v", name, order)
		}
	}
}
