package defs

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleDefs = "- id: err_first\n  msg: \"first default\"\n" +
	"- id: warn_second\n  msg: \"second default\"\n"

func TestParse(t *testing.T) {
	d, err := Parse([]byte(sampleDefs))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if d.Len() != 2 {
		t.Fatalf("unexpected size: want 2, got %d", d.Len())
	}

	names := d.Names()
	if names[0] != "err_first" || names[1] != "warn_second" {
		t.Fatalf("declaration order lost: %v", names)
	}
	msgs := d.Messages()
	if msgs[1] != "second default" {
		t.Fatalf("unexpected default text: %q", msgs[1])
	}

	id, ok := d.Space().Lookup("warn_second")
	if !ok || id != 1 {
		t.Fatalf("space lookup: want (1, true), got (%d, %v)", id, ok)
	}
}

func TestParseRejectsDuplicates(t *testing.T) {
	input := "- id: a\n  msg: \"one\"\n- id: a\n  msg: \"two\"\n"
	if _, err := Parse([]byte(input)); err == nil {
		t.Fatal("duplicate ids must be rejected")
	}
}

func TestParseRejectsEmpty(t *testing.T) {
	if _, err := Parse(nil); err == nil {
		t.Fatal("empty definitions must be rejected")
	}
	if _, err := Parse([]byte("- id: \"\"\n  msg: \"x\"\n")); err == nil {
		t.Fatal("empty id must be rejected")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defs.yaml")
	if err := os.WriteFile(path, []byte(sampleDefs), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	d, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if d.Len() != 2 {
		t.Fatalf("unexpected size: %d", d.Len())
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("missing file must fail")
	}
}
