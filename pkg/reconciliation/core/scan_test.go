package core

import (
	"os"
	"path/filepath"
	"testing"
)

func TestScanFindsFilesAndEmptyDirectories(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "a.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(root, "empty"), 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(root, "nonempty"), 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "nonempty", "b.txt"), []byte("y"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	entries, err := Scan(root, nil, nil)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	if _, ok := entries["a.txt"]; !ok {
		t.Fatalf("expected a.txt in scan results: %+v", entries)
	}
	if _, ok := entries["nonempty/b.txt"]; !ok {
		t.Fatalf("expected nonempty/b.txt in scan results: %+v", entries)
	}
	emptyEntry, ok := entries["empty"]
	if !ok {
		t.Fatalf("expected the empty directory to be recorded as a sentinel: %+v", entries)
	}
	if !emptyEntry.IsDirectory() {
		t.Fatalf("expected the empty directory sentinel to report IsDirectory, got %+v", emptyEntry)
	}
	if _, ok := entries["nonempty"]; ok {
		t.Fatalf("did not expect a sentinel for a non-empty directory: %+v", entries)
	}
}

func TestScanRespectsIgnoreFilter(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "keep.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "skip.tmp"), []byte("x"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, ".git", "HEAD"), []byte("x"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	filter := NewIgnoreFilter([]string{".tmp"}, nil, nil, []string{".git"}, nil)
	entries, err := Scan(root, filter, nil)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	if _, ok := entries["keep.txt"]; !ok {
		t.Fatalf("expected keep.txt to survive filtering: %+v", entries)
	}
	if _, ok := entries["skip.tmp"]; ok {
		t.Fatalf("expected skip.tmp to be filtered out: %+v", entries)
	}
	for path := range entries {
		if path == ".git" || filepath.Dir(path) == ".git" {
			t.Fatalf("expected .git to be entirely filtered out, found %q", path)
		}
	}
}
