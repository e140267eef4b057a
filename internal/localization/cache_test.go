package localization

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBuildCacheRoundTrip(t *testing.T) {
	cache := NewBuildCache(t.TempDir())
	out := filepath.Join(t.TempDir(), "fr.db")
	if err := os.WriteFile(out, []byte("table"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	src := HashBytes([]byte("- id: A\n  msg: \"x\"\n"))
	if cache.Fresh("fr", src) {
		t.Fatal("empty cache must not be fresh")
	}
	if err := cache.Record("fr", src, out); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if !cache.Fresh("fr", src) {
		t.Fatal("recorded digest must be fresh")
	}
}

func TestBuildCacheStaleOnSourceChange(t *testing.T) {
	cache := NewBuildCache(t.TempDir())
	out := filepath.Join(t.TempDir(), "fr.db")
	if err := os.WriteFile(out, []byte("table"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if err := cache.Record("fr", HashBytes([]byte("v1")), out); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if cache.Fresh("fr", HashBytes([]byte("v2"))) {
		t.Fatal("changed source must invalidate the entry")
	}
}

func TestBuildCacheStaleOnMissingOutput(t *testing.T) {
	cache := NewBuildCache(t.TempDir())
	out := filepath.Join(t.TempDir(), "fr.db")
	if err := os.WriteFile(out, []byte("table"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	src := HashBytes([]byte("v1"))
	if err := cache.Record("fr", src, out); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if err := os.Remove(out); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if cache.Fresh("fr", src) {
		t.Fatal("missing output must invalidate the entry")
	}
}

func TestBuildCacheDrop(t *testing.T) {
	cache := NewBuildCache(t.TempDir())
	out := filepath.Join(t.TempDir(), "fr.db")
	if err := os.WriteFile(out, []byte("table"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	src := HashBytes([]byte("v1"))
	if err := cache.Record("fr", src, out); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if err := cache.Drop("fr"); err != nil {
		t.Fatalf("drop failed: %v", err)
	}
	if cache.Fresh("fr", src) {
		t.Fatal("dropped entry must not be fresh")
	}
	// Dropping twice is fine.
	if err := cache.Drop("fr"); err != nil {
		t.Fatalf("second drop failed: %v", err)
	}
}
